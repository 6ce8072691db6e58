package news

import (
	"time"

	"newsagg/internal/model"
)

// GroupByRecency partitions ranked articles into the three recency buckets
// from the article's age at grouping time. The buckets are mutually
// exclusive and exhaustive: an article with no publication date counts as
// infinitely old and lands in Older.
func GroupByRecency(articles []model.Article, now time.Time) model.GroupedArticles {
	const (
		week  = 7 * 24 * time.Hour
		month = 30 * 24 * time.Hour
	)

	var g model.GroupedArticles
	for _, article := range articles {
		switch {
		case article.PublishedAt == nil:
			g.Older = append(g.Older, article)
		case now.Sub(*article.PublishedAt) <= week:
			g.Recent = append(g.Recent, article)
		case now.Sub(*article.PublishedAt) <= month:
			g.LastMonth = append(g.LastMonth, article)
		default:
			g.Older = append(g.Older, article)
		}
	}
	return g
}
