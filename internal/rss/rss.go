// Package rss fetches the configured RSS/Atom feeds and maps their entries
// into the common article shape.
package rss

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/mmcdole/gofeed"

	"newsagg/internal/cache"
	"newsagg/internal/config"
	"newsagg/internal/logger"
	"newsagg/internal/model"
)

const descriptionLimit = 200

// Reader pulls every configured feed. A failing feed only empties its own
// contribution; Fetch never returns an error.
type Reader struct {
	feeds     []config.Feed
	parser    *gofeed.Parser
	timeout   time.Duration
	snapshots *cache.Snapshots
}

func NewReader(feeds []config.Feed, timeout, snapshotTTL time.Duration) *Reader {
	parser := gofeed.NewParser()
	parser.UserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36"

	return &Reader{
		feeds:     feeds,
		parser:    parser,
		timeout:   timeout,
		snapshots: cache.New(snapshotTTL),
	}
}

// Fetch downloads and maps all feeds concurrently. The returned article
// order follows the configured feed order so downstream deduplication is
// deterministic.
func (r *Reader) Fetch(ctx context.Context, _ model.FetchParams) (model.FetchResult, error) {
	results := make([][]model.Article, len(r.feeds))
	var wg sync.WaitGroup

	for i, feed := range r.feeds {
		wg.Add(1)
		go func(i int, feed config.Feed) {
			defer wg.Done()
			results[i] = r.fetchFeed(ctx, feed)
		}(i, feed)
	}
	wg.Wait()

	var articles []model.Article
	for _, batch := range results {
		articles = append(articles, batch...)
	}

	logger.Debug("rss: fetched feeds", "feeds", len(r.feeds), "articles", len(articles))
	return model.FetchResult{Articles: articles, TotalResults: len(articles)}, nil
}

func (r *Reader) fetchFeed(ctx context.Context, feed config.Feed) []model.Article {
	if cached, ok := r.snapshots.Get(feed.URL); ok {
		return cached
	}

	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	parsed, err := r.parser.ParseURLWithContext(feed.URL, ctx)
	if err != nil {
		logger.Warn("rss: feed failed", "source", feed.Name, "url", feed.URL, "err", err)
		return nil
	}

	articles := make([]model.Article, 0, len(parsed.Items))
	for _, item := range parsed.Items {
		articles = append(articles, mapItem(feed.Name, item))
	}

	r.snapshots.Put(feed.URL, articles)
	return articles
}

func mapItem(source string, item *gofeed.Item) model.Article {
	author := source
	if item.Author != nil && item.Author.Name != "" {
		author = item.Author.Name
	}

	content := item.Content
	if content == "" {
		content = item.Description
	}

	return model.Article{
		Source:      model.Source{Name: source},
		Author:      author,
		Title:       item.Title,
		Description: model.Truncate(item.Description, descriptionLimit),
		URL:         item.Link,
		ImageURL:    itemImage(item, content),
		PublishedAt: publishedAt(item),
		Content:     content,
	}
}

func publishedAt(item *gofeed.Item) *time.Time {
	if item.PublishedParsed != nil {
		return item.PublishedParsed
	}
	return model.ParseTime(item.Published)
}

// itemImage prefers an explicit enclosure or channel image and falls back
// to the first <img src> inside the entry's HTML body.
func itemImage(item *gofeed.Item, content string) string {
	for _, enc := range item.Enclosures {
		if enc.URL != "" && strings.HasPrefix(enc.Type, "image/") {
			return enc.URL
		}
	}
	if item.Image != nil && item.Image.URL != "" {
		return item.Image.URL
	}
	return ImageFromHTML(content)
}

// ImageFromHTML extracts the src of the first <img> tag in an HTML
// fragment, or "" when there is none.
func ImageFromHTML(content string) string {
	if content == "" {
		return ""
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(content))
	if err != nil {
		return ""
	}
	src, _ := doc.Find("img").First().Attr("src")
	return src
}
