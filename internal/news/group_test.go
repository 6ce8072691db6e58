package news

import (
	"testing"
	"time"

	"newsagg/internal/model"
)

func TestGroupByRecency_Partition(t *testing.T) {
	articles := []model.Article{
		{Title: "two hours old", PublishedAt: published(2 * time.Hour)},
		{Title: "six days old", PublishedAt: published(6 * 24 * time.Hour)},
		{Title: "two weeks old", PublishedAt: published(14 * 24 * time.Hour)},
		{Title: "two months old", PublishedAt: published(60 * 24 * time.Hour)},
		{Title: "undated"},
	}

	g := GroupByRecency(articles, fixedNow)

	if len(g.Recent) != 2 {
		t.Errorf("expected 2 recent articles, got %d", len(g.Recent))
	}
	if len(g.LastMonth) != 1 {
		t.Errorf("expected 1 lastMonth article, got %d", len(g.LastMonth))
	}
	if len(g.Older) != 2 {
		t.Errorf("expected 2 older articles (incl. undated), got %d", len(g.Older))
	}

	// Exhaustive and mutually exclusive: every input article appears in
	// exactly one bucket.
	seen := make(map[string]int)
	for _, bucket := range [][]model.Article{g.Recent, g.LastMonth, g.Older} {
		for _, a := range bucket {
			seen[a.Title]++
		}
	}
	if len(seen) != len(articles) {
		t.Errorf("expected %d distinct articles across buckets, got %d", len(articles), len(seen))
	}
	for title, n := range seen {
		if n != 1 {
			t.Errorf("article %q appears in %d buckets", title, n)
		}
	}
}

func TestGroupByRecency_BoundaryAges(t *testing.T) {
	exactlyWeek := model.Article{Title: "exactly a week", PublishedAt: published(7 * 24 * time.Hour)}
	exactlyMonth := model.Article{Title: "exactly a month", PublishedAt: published(30 * 24 * time.Hour)}

	g := GroupByRecency([]model.Article{exactlyWeek, exactlyMonth}, fixedNow)
	if len(g.Recent) != 1 || g.Recent[0].Title != "exactly a week" {
		t.Errorf("age == 7d belongs to recent, got %+v", g.Recent)
	}
	if len(g.LastMonth) != 1 || g.LastMonth[0].Title != "exactly a month" {
		t.Errorf("age == 30d belongs to lastMonth, got %+v", g.LastMonth)
	}
}
