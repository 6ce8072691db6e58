// Package model holds the value types shared by the fetchers and the
// aggregation pipeline.
package model

import (
	"encoding/json"
	"time"
)

// Source identifies the provider an article came from.
type Source struct {
	ID   *string `json:"id"`
	Name string  `json:"name"`
}

// Article is the normalized representation of a single news item from any
// provider. Fetchers produce it fully populated; the pipeline never mutates
// an article afterwards.
type Article struct {
	Source      Source     `json:"source"`
	Author      string     `json:"author,omitempty"`
	Title       string     `json:"title"`
	Description string     `json:"description,omitempty"`
	URL         string     `json:"url"`
	ImageURL    string     `json:"urlToImage,omitempty"`
	PublishedAt *time.Time `json:"publishedAt,omitempty"`
	Content     string     `json:"content,omitempty"`

	// Provider-specific extras, passed through opaquely.
	Keywords  []string        `json:"keywords,omitempty"`
	Sentiment json.RawMessage `json:"sentiment,omitempty"`
	Entities  json.RawMessage `json:"entities,omitempty"`
}

// FetchParams are the common request parameters accepted by every fetcher.
// Query is the only field a fetcher must honor; the rest are optional hints
// that providers map onto their own parameter names.
type FetchParams struct {
	Query    string
	Language string
	Country  string
	Category string
	From     string // ISO date, inclusive
	To       string // ISO date, inclusive
	PageSize int
	SortBy   string
}

// FetchResult is what every fetcher returns. Articles is empty, never nil
// semantics-wise, when a fetch fails; callers can always range over it.
type FetchResult struct {
	Articles     []Article `json:"articles"`
	TotalResults int       `json:"totalResults"`
	NextPage     string    `json:"nextPage,omitempty"`
}

// timeLayouts covers the date formats the providers actually emit.
var timeLayouts = []string{
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	time.RFC1123Z,
	time.RFC1123,
	"2006-01-02",
}

// ParseTime parses a provider timestamp, trying the known layouts in order.
// Returns nil when the string is empty or matches none of them; a missing
// publication date is not an error, it only zeroes the recency score.
func ParseTime(s string) *time.Time {
	if s == "" {
		return nil
	}
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return &t
		}
	}
	return nil
}

// Truncate shortens s to at most n runes. Descriptions are capped around
// 200 characters by convention before entering the pipeline.
func Truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
