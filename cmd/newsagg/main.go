package main

import (
	"context"
	"encoding/json"
	"flag"
	"log"
	"net/http"
	"os"
	"strings"

	"github.com/joho/godotenv"

	"newsagg/internal/config"
	"newsagg/internal/gnews"
	"newsagg/internal/logger"
	"newsagg/internal/mediastack"
	"newsagg/internal/metrics"
	"newsagg/internal/model"
	"newsagg/internal/news"
	"newsagg/internal/newsdata"
	"newsagg/internal/ratelimit"
	"newsagg/internal/rss"
	"newsagg/internal/scraper"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	logger.Init(cfg.Debug)

	sources, err := config.LoadSources(cfg.SourcesPath)
	if err != nil {
		log.Fatalf("sources: %v", err)
	}

	if os.Getenv("ENABLE_HTTP_MONITORING") == "true" {
		go startMonitoringServer()
	}

	headlines := flag.Bool("headlines", false, "fetch top headlines instead of running a full search")
	flag.Parse()
	query := strings.Join(flag.Args(), " ")

	svc := buildService(cfg, sources)
	ctx := context.Background()

	if *headlines {
		res := svc.TopHeadlines(ctx, model.FetchParams{
			Query:    query,
			Language: cfg.Language,
			Country:  cfg.Country,
			PageSize: cfg.PageSize,
		})
		printJSON(res)
		return
	}

	if query == "" {
		log.Fatal("usage: newsagg [-headlines] <query>")
	}
	if topics := news.ExtractTopics(query); len(topics) > 0 {
		logger.Debug("query topics", "topics", strings.Join(topics, ","))
	}

	env, err := svc.SearchNews(ctx, model.FetchParams{
		Query:    query,
		Language: cfg.Language,
		PageSize: cfg.PageSize,
	})
	if err != nil {
		log.Fatalf("search: %v", err)
	}
	if env.Error != "" {
		logger.Warn("search completed with soft failure", "err", env.Error)
	}
	printJSON(env)
}

func buildService(cfg *config.Config, sources *config.Sources) *news.Service {
	budget := ratelimit.New(map[string]int{
		"newsdata":   cfg.NewsDataDailyLimit,
		"gnews":      cfg.GNewsDailyLimit,
		"mediastack": cfg.MediaStackDailyLimit,
	})

	return &news.Service{
		Primary:  newsdata.New(cfg.NewsDataAPIKey, cfg.APITimeout, budget),
		KeywordA: mediastack.New(cfg.MediaStackAPIKey, cfg.APITimeout, budget),
		KeywordB: gnews.New(cfg.GNewsAPIKey, cfg.APITimeout, budget),
		RSS:      rss.NewReader(sources.Feeds, cfg.FeedTimeout, cfg.SnapshotTTL),
		Scraper:  scraper.New(sources.Sites, cfg.FeedTimeout, cfg.SnapshotTTL),
	}
}

func printJSON(v any) {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		log.Fatalf("encode output: %v", err)
	}
}

func startMonitoringServer() {
	port := os.Getenv("MONITORING_PORT")
	if port == "" {
		port = "8080"
	}

	http.HandleFunc("/health", healthHandler)
	http.HandleFunc("/metrics", metricsHandler)

	log.Printf("Starting monitoring server on port %s", port)
	if err := http.ListenAndServe(":"+port, nil); err != nil {
		log.Printf("Monitoring server error: %v", err)
	}
}

func healthHandler(w http.ResponseWriter, r *http.Request) {
	stats := metrics.Global.GetStats()

	status := "ok"
	if !stats["is_healthy"].(bool) {
		status = "error"
		w.WriteHeader(http.StatusServiceUnavailable)
	}

	response := map[string]interface{}{
		"status":     status,
		"last_run":   stats["last_run_time"],
		"last_error": stats["last_error"],
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(response)
}

func metricsHandler(w http.ResponseWriter, r *http.Request) {
	stats := metrics.Global.GetStats()

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(stats)
}
