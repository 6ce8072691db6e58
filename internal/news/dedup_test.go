package news

import (
	"reflect"
	"testing"

	"newsagg/internal/model"
)

func titled(title string) model.Article {
	return model.Article{Title: title, URL: "https://example.com/" + title}
}

func TestDedup_CollapsesPunctuationVariants(t *testing.T) {
	// Near-duplicate titles differing only by punctuation must collapse
	// to a single article.
	articles := []model.Article{
		titled("Python rises in popularity"),
		titled("Python rises, in popularity!"),
		titled("Python rises in popularity..."),
		titled("Python: rises in popularity"),
		titled("Python rises in 'popularity'"),
	}

	unique := Dedup(articles)
	if len(unique) != 1 {
		t.Fatalf("expected 1 unique article, got %d", len(unique))
	}
	if unique[0].Title != "Python rises in popularity" {
		t.Errorf("first-seen article must win, got %q", unique[0].Title)
	}
}

func TestDedup_KeepsDistinctStories(t *testing.T) {
	articles := []model.Article{
		titled("Central bank raises interest rates again"),
		titled("Wildfire forces evacuation of coastal town"),
		titled("Champions league final ends in penalty shootout"),
	}

	unique := Dedup(articles)
	if len(unique) != 3 {
		t.Fatalf("distinct stories must all survive, got %d of 3", len(unique))
	}
}

func TestDedup_Soundness(t *testing.T) {
	articles := []model.Article{
		titled("NASA announces new moon mission crew"),
		titled("NASA announces new moon mission crew today"),
		titled("Stock markets close higher on tech rally"),
		titled("markets close slightly higher on tech rally"),
		titled("Completely unrelated story about gardening"),
	}

	unique := Dedup(articles)
	for i := 0; i < len(unique); i++ {
		for j := i + 1; j < len(unique); j++ {
			s := titleSimilarity(normalizeTitle(unique[i].Title), normalizeTitle(unique[j].Title))
			if s > similarityThreshold {
				t.Errorf("retained pair %q / %q with similarity %.2f > %.2f",
					unique[i].Title, unique[j].Title, s, similarityThreshold)
			}
		}
	}
}

func TestDedup_Deterministic(t *testing.T) {
	articles := []model.Article{
		titled("Election results delayed in three states"),
		titled("Election results delayed in three states tonight"),
		titled("Heavy snow closes mountain passes"),
	}

	first := Dedup(articles)
	second := Dedup(articles)
	if !reflect.DeepEqual(first, second) {
		t.Error("dedup must be deterministic for identical input order")
	}
}

func TestDedup_DropsTitlelessArticles(t *testing.T) {
	articles := []model.Article{
		{URL: "https://example.com/no-title"},
		titled("A perfectly ordinary headline"),
	}

	unique := Dedup(articles)
	if len(unique) != 1 {
		t.Fatalf("expected titleless article dropped, got %d articles", len(unique))
	}
	for _, a := range unique {
		if a.Title == "" {
			t.Error("output must not contain titleless articles")
		}
	}
}

func TestTitleSimilarity(t *testing.T) {
	cases := []struct {
		a, b string
		want float64
	}{
		{"a b c d", "a b c d", 1.0},
		{"a b c d", "e f g h", 0.0},
		{"a b c", "a b d", 0.5}, // 2 common, 4 union
		{"", "", 0.0},           // degenerate, not a duplicate
	}
	for _, c := range cases {
		if got := titleSimilarity(c.a, c.b); got != c.want {
			t.Errorf("similarity(%q, %q) = %.2f, want %.2f", c.a, c.b, got, c.want)
		}
	}
}

func TestNormalizeTitle(t *testing.T) {
	got := normalizeTitle("Breaking: NASA's Crew-9 returns!")
	want := "breaking nasas crew9 returns"
	if got != want {
		t.Errorf("normalizeTitle = %q, want %q", got, want)
	}
}
