// Package gnews is the adapter for the GNews keyword-search API. Unlike
// the other adapters it may return an error: a failed long-query request is
// retried once with a simplified query, and if the retry also fails the
// error propagates to the caller, which is expected to guard it.
package gnews

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	"newsagg/internal/logger"
	"newsagg/internal/model"
	"newsagg/internal/ratelimit"
)

const (
	endpoint     = "https://gnews.io/api/v4/search"
	providerName = "gnews"
	pageLimit    = "15"

	// Queries longer than this get one retry with their first three words.
	longQueryChars  = 20
	simplifiedWords = 3
)

type Client struct {
	http     *resty.Client
	endpoint string
	apiKey   string
	budget   *ratelimit.Budget
	now      func() time.Time
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
		now:      time.Now,
	}
}

// SetClock overrides the wall clock used for the simplified-retry window.
func (c *Client) SetClock(now func() time.Time) {
	c.now = now
}

type response struct {
	TotalArticles int      `json:"totalArticles"`
	Articles      []result `json:"articles"`
}

type result struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Content     string `json:"content"`
	URL         string `json:"url"`
	Image       string `json:"image"`
	PublishedAt string `json:"publishedAt"`
	Source      struct {
		Name string `json:"name"`
		URL  string `json:"url"`
	} `json:"source"`
}

// Fetch queries GNews. A failed or empty request with a long query is
// retried once with the first three words over the last week; any failure
// after that (or any failure with a short query) is returned as an error.
func (c *Client) Fetch(ctx context.Context, params model.FetchParams) (model.FetchResult, error) {
	res, err := c.search(ctx, params)
	if err == nil {
		return res, nil
	}

	if len(params.Query) > longQueryChars {
		simplified := simplifyQuery(params.Query)
		logger.Info("gnews: retrying with simplified query", "query", simplified)

		retry := params
		retry.Query = simplified
		retry.From = c.now().AddDate(0, 0, -7).UTC().Format("2006-01-02")
		retry.To = c.now().UTC().Format("2006-01-02")

		res, retryErr := c.search(ctx, retry)
		if retryErr != nil {
			return model.FetchResult{}, fmt.Errorf("gnews: simplified retry failed: %w", retryErr)
		}
		return res, nil
	}
	return model.FetchResult{}, err
}

func (c *Client) search(ctx context.Context, params model.FetchParams) (model.FetchResult, error) {
	if c.apiKey == "" {
		return model.FetchResult{}, fmt.Errorf("gnews: no API key configured")
	}
	if !c.budget.Allow(providerName) {
		return model.FetchResult{}, fmt.Errorf("gnews: daily budget exhausted")
	}

	query := map[string]string{
		"q":      params.Query,
		"lang":   "en",
		"max":    pageLimit,
		"sortby": "publishedAt",
		"apikey": c.apiKey,
	}
	if params.From != "" {
		query["from"] = params.From
	}
	if params.To != "" {
		query["to"] = params.To
	}

	var body response
	resp, err := c.http.R().
		SetContext(ctx).
		SetQueryParams(query).
		SetResult(&body).
		Get(c.endpoint)
	if err != nil {
		return model.FetchResult{}, fmt.Errorf("gnews: request: %w", err)
	}
	if resp.IsError() {
		return model.FetchResult{}, fmt.Errorf("gnews: status %d", resp.StatusCode())
	}
	if len(body.Articles) == 0 {
		return model.FetchResult{}, fmt.Errorf("gnews: no results for %q", params.Query)
	}

	articles := make([]model.Article, 0, len(body.Articles))
	for _, r := range body.Articles {
		articles = append(articles, mapResult(r))
	}

	total := body.TotalArticles
	if total == 0 {
		total = len(articles)
	}
	return model.FetchResult{Articles: articles, TotalResults: total}, nil
}

func mapResult(r result) model.Article {
	return model.Article{
		Source:      model.Source{Name: r.Source.Name},
		Author:      r.Source.Name,
		Title:       r.Title,
		Description: r.Description,
		URL:         r.URL,
		ImageURL:    r.Image,
		PublishedAt: model.ParseTime(r.PublishedAt),
		Content:     r.Content,
	}
}

func simplifyQuery(query string) string {
	words := strings.Fields(query)
	if len(words) > simplifiedWords {
		words = words[:simplifiedWords]
	}
	return strings.Join(words, " ")
}
