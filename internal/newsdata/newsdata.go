// Package newsdata is the adapter for the NewsData.io keyword-search API,
// the pipeline's primary structured feed.
package newsdata

import (
	"context"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	"newsagg/internal/logger"
	"newsagg/internal/model"
	"newsagg/internal/ratelimit"
)

const (
	endpoint         = "https://newsdata.io/api/1/news"
	providerName     = "newsdata"
	descriptionLimit = 150
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

// response is the provider-native envelope; it never leaves this package.
type response struct {
	Status   string   `json:"status"`
	Results  []result `json:"results"`
	NextPage string   `json:"nextPage"`
}

type result struct {
	Title       string   `json:"title"`
	Link        string   `json:"link"`
	Description string   `json:"description"`
	Content     string   `json:"content"`
	PubDate     string   `json:"pubDate"`
	ImageURL    string   `json:"image_url"`
	SourceID    string   `json:"source_id"`
	Creator     []string `json:"creator"`
	Keywords    []string `json:"keywords"`
}

// Fetch queries NewsData.io and maps the response into the common article
// shape. Every failure degrades to an empty result; Fetch never returns an
// error.
func (c *Client) Fetch(ctx context.Context, params model.FetchParams) (model.FetchResult, error) {
	if c.apiKey == "" {
		logger.Debug("newsdata: no API key configured, skipping")
		return model.FetchResult{}, nil
	}
	if !c.budget.Allow(providerName) {
		return model.FetchResult{}, nil
	}

	language := params.Language
	if language == "" {
		language = "en"
	}

	query := map[string]string{
		"apikey":   c.apiKey,
		"q":        params.Query,
		"language": language,
	}
	if params.Country != "" {
		query["country"] = params.Country
	}
	if params.Category != "" {
		query["category"] = params.Category
	}
	if params.From != "" {
		query["from_date"] = params.From
	}
	if params.To != "" {
		query["to_date"] = params.To
	}

	var body response
	resp, err := c.http.R().
		SetContext(ctx).
		SetQueryParams(query).
		SetResult(&body).
		Get(c.endpoint)
	if err != nil {
		logger.Warn("newsdata: request failed", "query", params.Query, "err", err)
		return model.FetchResult{}, nil
	}
	if resp.IsError() {
		logger.Warn("newsdata: unexpected status", "query", params.Query, "status", resp.StatusCode())
		return model.FetchResult{}, nil
	}
	if len(body.Results) == 0 {
		logger.Debug("newsdata: no results", "query", params.Query)
		return model.FetchResult{}, nil
	}

	articles := make([]model.Article, 0, len(body.Results))
	for _, r := range body.Results {
		articles = append(articles, mapResult(r))
	}
	return model.FetchResult{
		Articles:     articles,
		TotalResults: len(articles),
		NextPage:     body.NextPage,
	}, nil
}

func mapResult(r result) model.Article {
	sourceName := r.SourceID
	if sourceName == "" {
		sourceName = "NewsData.io"
	}

	description := r.Description
	if description == "" {
		description = model.Truncate(r.Content, descriptionLimit)
	}

	return model.Article{
		Source:      model.Source{Name: sourceName},
		Author:      strings.Join(r.Creator, ", "),
		Title:       r.Title,
		Description: description,
		URL:         r.Link,
		ImageURL:    r.ImageURL,
		PublishedAt: model.ParseTime(r.PubDate),
		Content:     r.Content,
		Keywords:    r.Keywords,
	}
}
