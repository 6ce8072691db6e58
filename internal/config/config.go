// Package config loads runtime settings from the environment and the named
// source tables (RSS feeds, scrape sites) from YAML.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

type Config struct {
	// Provider credentials. The primary feed API key is required; the two
	// keyword APIs degrade to empty contributions when their key is unset.
	NewsDataAPIKey   string
	GNewsAPIKey      string
	MediaStackAPIKey string

	// Search defaults
	Language string
	Country  string
	PageSize int

	// Source tables
	SourcesPath string

	// Per-request timeouts. There is no end-to-end deadline; a slow source
	// can delay the response up to its own timeout.
	APITimeout  time.Duration // JSON keyword APIs
	FeedTimeout time.Duration // RSS fetches and page scrapes

	// SnapshotTTL bounds how long a fetched feed or page is reused while
	// the variant fan-out runs.
	SnapshotTTL time.Duration

	// Daily request budgets per provider (0 = unlimited).
	NewsDataDailyLimit   int
	GNewsDailyLimit      int
	MediaStackDailyLimit int

	Debug bool
}

func Load() (*Config, error) {
	cfg := &Config{
		// Default values
		Language:    "en",
		PageSize:    10,
		SourcesPath: "configs/sources.yaml",
		APITimeout:  10 * time.Second,
		FeedTimeout: 5 * time.Second,
		SnapshotTTL: 10 * time.Minute,
	}

	cfg.NewsDataAPIKey = os.Getenv("NEWSDATA_API_KEY")
	cfg.GNewsAPIKey = os.Getenv("GNEWS_API_KEY")
	cfg.MediaStackAPIKey = os.Getenv("MEDIASTACK_API_KEY")

	if v := os.Getenv("NEWS_LANGUAGE"); v != "" {
		cfg.Language = v
	}
	if v := os.Getenv("NEWS_COUNTRY"); v != "" {
		cfg.Country = v
	}
	cfg.SourcesPath = getEnvOrDefault("SOURCES_CONFIG_PATH", cfg.SourcesPath)

	if v := os.Getenv("PAGE_SIZE"); v != "" {
		if val, err := strconv.Atoi(v); err == nil && val > 0 {
			cfg.PageSize = val
		}
	}
	if v := os.Getenv("API_TIMEOUT_SECONDS"); v != "" {
		if val, err := strconv.Atoi(v); err == nil && val > 0 {
			cfg.APITimeout = time.Duration(val) * time.Second
		}
	}
	if v := os.Getenv("FEED_TIMEOUT_SECONDS"); v != "" {
		if val, err := strconv.Atoi(v); err == nil && val > 0 {
			cfg.FeedTimeout = time.Duration(val) * time.Second
		}
	}
	if v := os.Getenv("SNAPSHOT_TTL_MINUTES"); v != "" {
		if val, err := strconv.Atoi(v); err == nil && val > 0 {
			cfg.SnapshotTTL = time.Duration(val) * time.Minute
		}
	}

	cfg.NewsDataDailyLimit = getEnvIntOrDefault("NEWSDATA_DAILY_LIMIT", 0)
	cfg.GNewsDailyLimit = getEnvIntOrDefault("GNEWS_DAILY_LIMIT", 0)
	cfg.MediaStackDailyLimit = getEnvIntOrDefault("MEDIASTACK_DAILY_LIMIT", 0)

	if debug := os.Getenv("DEBUG"); debug == "true" {
		cfg.Debug = true
	}

	return cfg, cfg.Validate()
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func (c *Config) Validate() error {
	if c.NewsDataAPIKey == "" {
		return fmt.Errorf("NEWSDATA_API_KEY is required")
	}
	if c.PageSize <= 0 {
		return fmt.Errorf("PAGE_SIZE must be positive")
	}
	return nil
}
