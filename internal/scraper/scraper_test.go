package scraper

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"newsagg/internal/config"
	"newsagg/internal/model"
)

const testPage = `<html><body>
<article class="story">
  <h2 class="headline">NASA announces new lunar mission</h2>
  <p class="summary">The agency plans a crewed flyby next year.</p>
  <time class="stamp" datetime="2024-03-14T09:30:00Z">yesterday</time>
  <a href="/news/lunar-mission">Read more</a>
  <img src="https://cdn.example.com/moon.jpg">
</article>
<article class="story">
  <h2 class="headline">Markets rally on rate cut hopes</h2>
  <p class="summary">Stocks closed higher across the board.</p>
  <a href="https://example.com/markets">Read more</a>
</article>
<article class="story">
  <h2 class="headline"></h2>
  <p class="summary">A listing without a headline.</p>
</article>
</body></html>`

func testSite(name, pageURL string) config.Site {
	return config.Site{
		Name:                name,
		URL:                 pageURL,
		ArticleSelector:     "article.story",
		TitleSelector:       "h2.headline",
		DescriptionSelector: "p.summary",
		DateSelector:        "time.stamp",
	}
}

func TestFetch_ExtractsConfiguredSelectors(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(testPage))
	}))
	defer srv.Close()

	s := New([]config.Site{testSite("Test Wire", srv.URL)}, 5*time.Second, time.Minute)
	res, err := s.Fetch(context.Background(), model.FetchParams{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(res.Articles) != 2 {
		t.Fatalf("got %d articles, want 2 (titleless listing skipped)", len(res.Articles))
	}

	a := res.Articles[0]
	if a.Title != "NASA announces new lunar mission" {
		t.Errorf("title = %q", a.Title)
	}
	if a.Source.Name != "Test Wire" || a.Author != "Test Wire" {
		t.Errorf("source = %q, author = %q, want site name for both", a.Source.Name, a.Author)
	}
	if a.Description != "The agency plans a crewed flyby next year." {
		t.Errorf("description = %q", a.Description)
	}
	if a.URL != srv.URL+"/news/lunar-mission" {
		t.Errorf("relative link not resolved: %q", a.URL)
	}
	if a.ImageURL != "https://cdn.example.com/moon.jpg" {
		t.Errorf("image = %q", a.ImageURL)
	}
	if a.PublishedAt == nil || !a.PublishedAt.Equal(time.Date(2024, 3, 14, 9, 30, 0, 0, time.UTC)) {
		t.Errorf("publishedAt = %v", a.PublishedAt)
	}

	if res.Articles[1].URL != "https://example.com/markets" {
		t.Errorf("absolute link must pass through, got %q", res.Articles[1].URL)
	}
	if res.Articles[1].PublishedAt != nil {
		t.Errorf("missing date must map to nil, got %v", res.Articles[1].PublishedAt)
	}
}

func TestFetch_FiltersByTitleSubstring(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(testPage))
	}))
	defer srv.Close()

	s := New([]config.Site{testSite("Test Wire", srv.URL)}, 5*time.Second, time.Minute)
	res, err := s.Fetch(context.Background(), model.FetchParams{Query: "LUNAR"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(res.Articles) != 1 || res.Articles[0].Title != "NASA announces new lunar mission" {
		t.Fatalf("case-insensitive filter failed: %+v", res.Articles)
	}
}

func TestFetch_FailingSiteContributesNothing(t *testing.T) {
	good := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(testPage))
	}))
	defer good.Close()
	bad := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "gone", http.StatusGone)
	}))
	defer bad.Close()

	s := New([]config.Site{
		testSite("Good Wire", good.URL),
		testSite("Bad Wire", bad.URL),
	}, 5*time.Second, time.Minute)

	res, err := s.Fetch(context.Background(), model.FetchParams{})
	if err != nil {
		t.Fatalf("site failure must not fail the fetch: %v", err)
	}
	if len(res.Articles) != 2 {
		t.Errorf("got %d articles, want the healthy site's 2", len(res.Articles))
	}
}

func TestFetch_CachesExtraction(t *testing.T) {
	var hits int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
		w.Write([]byte(testPage))
	}))
	defer srv.Close()

	s := New([]config.Site{testSite("Test Wire", srv.URL)}, 5*time.Second, time.Minute)
	for i := 0; i < 3; i++ {
		if _, err := s.Fetch(context.Background(), model.FetchParams{}); err != nil {
			t.Fatalf("fetch %d: %v", i, err)
		}
	}
	if hits != 1 {
		t.Errorf("site fetched %d times within the snapshot TTL, want 1", hits)
	}
}

func TestResolveLink(t *testing.T) {
	tests := []struct {
		page, href, want string
	}{
		{"https://example.com/news", "/story/1", "https://example.com/story/1"},
		{"https://example.com/news", "https://other.com/x", "https://other.com/x"},
		{"https://example.com/news", "", ""},
	}
	for _, tt := range tests {
		if got := resolveLink(tt.page, tt.href); got != tt.want {
			t.Errorf("resolveLink(%q, %q) = %q, want %q", tt.page, tt.href, got, tt.want)
		}
	}
}
