// Package mediastack is the adapter for the MediaStack keyword-search API.
package mediastack

import (
	"context"
	"encoding/json"
	"time"

	"github.com/go-resty/resty/v2"

	"newsagg/internal/logger"
	"newsagg/internal/model"
	"newsagg/internal/ratelimit"
)

const (
	endpoint     = "https://api.mediastack.com/v1/news"
	providerName = "mediastack"
	pageLimit    = "15"
)

type Client struct {
	http     *resty.Client
	endpoint string
	apiKey   string
	budget   *ratelimit.Budget
}

func New(apiKey string, timeout time.Duration, budget *ratelimit.Budget) *Client {
	client := resty.New()
	client.SetTimeout(timeout)
	client.SetHeader("User-Agent", "newsagg/1.0")

	return &Client{
		http:     client,
		endpoint: endpoint,
		apiKey:   apiKey,
		budget:   budget,
	}
}

type response struct {
	Pagination struct {
		Total int `json:"total"`
	} `json:"pagination"`
	Data []result `json:"data"`
}

type result struct {
	Author      string          `json:"author"`
	Title       string          `json:"title"`
	Description string          `json:"description"`
	URL         string          `json:"url"`
	Source      string          `json:"source"`
	Image       string          `json:"image"`
	PublishedAt string          `json:"published_at"`
	Sentiment   json.RawMessage `json:"sentiment,omitempty"`
}

// Fetch queries MediaStack and maps the response into the common article
// shape. Every failure degrades to an empty result; Fetch never returns an
// error.
func (c *Client) Fetch(ctx context.Context, params model.FetchParams) (model.FetchResult, error) {
	if c.apiKey == "" {
		logger.Debug("mediastack: no API key configured, skipping")
		return model.FetchResult{}, nil
	}
	if !c.budget.Allow(providerName) {
		return model.FetchResult{}, nil
	}

	query := map[string]string{
		"access_key": c.apiKey,
		"keywords":   params.Query,
		"languages":  "en",
		"limit":      pageLimit,
		"sort":       "published_desc",
	}
	if params.From != "" {
		query["date"] = params.From
	}

	var body response
	resp, err := c.http.R().
		SetContext(ctx).
		SetQueryParams(query).
		SetResult(&body).
		Get(c.endpoint)
	if err != nil {
		logger.Warn("mediastack: request failed", "query", params.Query, "err", err)
		return model.FetchResult{}, nil
	}
	if resp.IsError() {
		logger.Warn("mediastack: unexpected status", "query", params.Query, "status", resp.StatusCode())
		return model.FetchResult{}, nil
	}
	if len(body.Data) == 0 {
		logger.Debug("mediastack: no results", "query", params.Query)
		return model.FetchResult{}, nil
	}

	articles := make([]model.Article, 0, len(body.Data))
	for _, r := range body.Data {
		articles = append(articles, mapResult(r))
	}

	total := body.Pagination.Total
	if total == 0 {
		total = len(articles)
	}
	return model.FetchResult{Articles: articles, TotalResults: total}, nil
}

func mapResult(r result) model.Article {
	sourceName := r.Source
	if sourceName == "" {
		sourceName = "MediaStack"
	}

	author := r.Author
	if author == "" {
		author = sourceName
	}

	return model.Article{
		Source:      model.Source{Name: sourceName},
		Author:      author,
		Title:       r.Title,
		Description: r.Description,
		URL:         r.URL,
		ImageURL:    r.Image,
		PublishedAt: model.ParseTime(r.PublishedAt),
		Content:     r.Description,
		Sentiment:   r.Sentiment,
	}
}
