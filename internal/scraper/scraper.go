// Package scraper extracts article listings from the configured news pages
// using per-site CSS selector sets.
package scraper

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/PuerkitoBio/goquery"

	"newsagg/internal/cache"
	"newsagg/internal/config"
	"newsagg/internal/logger"
	"newsagg/internal/model"
)

const (
	descriptionLimit = 200
	userAgent        = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36"
)

// Scraper fetches every configured site. A failing site only empties its
// own contribution; Fetch never returns an error.
type Scraper struct {
	sites     []config.Site
	client    *http.Client
	snapshots *cache.Snapshots
}

func New(sites []config.Site, timeout, snapshotTTL time.Duration) *Scraper {
	return &Scraper{
		sites:     sites,
		client:    &http.Client{Timeout: timeout},
		snapshots: cache.New(snapshotTTL),
	}
}

// Fetch scrapes all sites concurrently and filters the extracted articles
// by a case-insensitive substring match of the query against the title.
// Extraction results are cached per site; only the filter runs per call.
func (s *Scraper) Fetch(ctx context.Context, params model.FetchParams) (model.FetchResult, error) {
	results := make([][]model.Article, len(s.sites))
	var wg sync.WaitGroup

	for i, site := range s.sites {
		wg.Add(1)
		go func(i int, site config.Site) {
			defer wg.Done()
			results[i] = filterByTitle(s.scrapeSite(ctx, site), params.Query)
		}(i, site)
	}
	wg.Wait()

	var articles []model.Article
	for _, batch := range results {
		articles = append(articles, batch...)
	}

	logger.Debug("scraper: scraped sites", "sites", len(s.sites), "articles", len(articles))
	return model.FetchResult{Articles: articles, TotalResults: len(articles)}, nil
}

func filterByTitle(articles []model.Article, query string) []model.Article {
	if query == "" {
		return articles
	}
	needle := strings.ToLower(query)
	var matched []model.Article
	for _, a := range articles {
		if strings.Contains(strings.ToLower(a.Title), needle) {
			matched = append(matched, a)
		}
	}
	return matched
}

func (s *Scraper) scrapeSite(ctx context.Context, site config.Site) []model.Article {
	if cached, ok := s.snapshots.Get(site.URL); ok {
		return cached
	}

	doc, err := s.fetchDocument(ctx, site.URL)
	if err != nil {
		logger.Warn("scraper: site failed", "source", site.Name, "url", site.URL, "err", err)
		return nil
	}

	articles := extractArticles(doc, site)
	s.snapshots.Put(site.URL, articles)
	return articles
}

func (s *Scraper) fetchDocument(ctx context.Context, pageURL string) (*goquery.Document, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("status %d", resp.StatusCode)
	}

	return goquery.NewDocumentFromReader(resp.Body)
}

func extractArticles(doc *goquery.Document, site config.Site) []model.Article {
	var articles []model.Article

	doc.Find(site.ArticleSelector).Each(func(_ int, sel *goquery.Selection) {
		title := strings.TrimSpace(sel.Find(site.TitleSelector).First().Text())
		if title == "" {
			return
		}

		description := strings.TrimSpace(sel.Find(site.DescriptionSelector).First().Text())
		href, _ := sel.Find("a").First().Attr("href")
		image, _ := sel.Find("img").First().Attr("src")

		date, ok := sel.Find(site.DateSelector).First().Attr("datetime")
		if !ok {
			date = strings.TrimSpace(sel.Find(site.DateSelector).First().Text())
		}

		articles = append(articles, model.Article{
			Source:      model.Source{Name: site.Name},
			Author:      site.Name,
			Title:       title,
			Description: model.Truncate(description, descriptionLimit),
			URL:         resolveLink(site.URL, href),
			ImageURL:    image,
			PublishedAt: model.ParseTime(date),
			Content:     description,
		})
	})

	return articles
}

// resolveLink resolves a possibly relative article link against the origin
// of the scraped page.
func resolveLink(pageURL, href string) string {
	if href == "" || strings.HasPrefix(href, "http") {
		return href
	}
	base, err := url.Parse(pageURL)
	if err != nil {
		return href
	}
	ref, err := url.Parse(href)
	if err != nil {
		return href
	}
	return base.ResolveReference(ref).String()
}
