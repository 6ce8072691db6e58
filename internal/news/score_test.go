package news

import (
	"reflect"
	"testing"
	"time"

	"newsagg/internal/model"
)

func published(ago time.Duration) *time.Time {
	t := fixedNow.Add(-ago)
	return &t
}

func TestIsPersonQuery(t *testing.T) {
	cases := []struct {
		query string
		want  bool
	}{
		{"John Smith", true},
		{"python", false},
		{"Python", true}, // documented false positive: sentence-initial capital
		{"the economy today", false},
		{"who is Sunita Williams", true},
		{"Ab cd", false}, // capitalized token too short to count
	}
	for _, c := range cases {
		if got := IsPersonQuery(c.query); got != c.want {
			t.Errorf("IsPersonQuery(%q) = %v, want %v", c.query, got, c.want)
		}
	}
}

func TestRank_RecentReliableSourceWinsNonPerson(t *testing.T) {
	// Same title keywords; one fresh from a listed outlet, one stale from
	// an unknown outlet. Non-person query: the fresh reliable one must
	// rank strictly higher.
	stale := model.Article{
		Source:      model.Source{Name: "Random Blog"},
		Title:       "storm surge floods harbor district",
		Description: "storm surge floods harbor district",
		PublishedAt: published(10 * 24 * time.Hour),
	}
	fresh := model.Article{
		Source:      model.Source{Name: "BBC News"},
		Title:       "storm surge floods harbor district",
		Description: "storm surge floods harbor district",
		PublishedAt: published(2 * time.Hour),
	}

	ranked := Rank([]model.Article{stale, fresh}, "storm surge floods", fixedNow, RankOptions{})
	if ranked[0].Source.Name != "BBC News" {
		t.Errorf("expected the recent reliable article first, got %q", ranked[0].Source.Name)
	}
}

func TestRank_PersonQueryBioBonus(t *testing.T) {
	biographical := model.Article{
		Title:       "Sunita Williams completes mission, astronaut returns",
		Description: "NASA astronaut status update",
	}
	unrelated := model.Article{
		Title:       "Sunita Williams",
		Description: "short mention",
	}

	ranked := Rank([]model.Article{unrelated, biographical}, "Sunita Williams", fixedNow, RankOptions{})
	if ranked[0].Title != biographical.Title {
		t.Errorf("expected bio-term article first, got %q", ranked[0].Title)
	}
}

func TestRank_StableForEqualScores(t *testing.T) {
	// Identical articles apart from URL score identically; the stable
	// sort must preserve their input order.
	a := model.Article{Title: "identical headline", URL: "https://example.com/a"}
	b := model.Article{Title: "identical headline", URL: "https://example.com/b"}
	c := model.Article{Title: "identical headline", URL: "https://example.com/c"}

	ranked := Rank([]model.Article{a, b, c}, "something else", fixedNow, RankOptions{})
	if ranked[0].URL != a.URL || ranked[1].URL != b.URL || ranked[2].URL != c.URL {
		t.Errorf("equal-score articles reordered: %q %q %q", ranked[0].URL, ranked[1].URL, ranked[2].URL)
	}
}

func TestRank_Deterministic(t *testing.T) {
	articles := []model.Article{
		{Title: "alpha beta gamma", PublishedAt: published(3 * time.Hour)},
		{Title: "delta epsilon", PublishedAt: published(50 * time.Hour)},
		{Title: "alpha gamma delta", Source: model.Source{Name: "Reuters"}},
	}

	first := Rank(articles, "alpha gamma", fixedNow, RankOptions{})
	second := Rank(articles, "alpha gamma", fixedNow, RankOptions{})
	if !reflect.DeepEqual(first, second) {
		t.Error("ranking must be deterministic for fixed inputs and clock")
	}
}

func TestRecencyScore_Breakpoints(t *testing.T) {
	cases := []struct {
		age    time.Duration
		person bool
		want   float64
	}{
		{2 * time.Hour, false, 10},
		{12 * time.Hour, false, 8},
		{36 * time.Hour, false, 6},
		{60 * time.Hour, false, 4},
		{100 * time.Hour, false, 2},
		{12 * time.Hour, true, 10},
		{48 * time.Hour, true, 8},
		{100 * time.Hour, true, 6},
		{400 * time.Hour, true, 4},
		{1000 * time.Hour, true, 2},
	}
	for _, c := range cases {
		if got := recencyScore(published(c.age), c.person, fixedNow); got != c.want {
			t.Errorf("recencyScore(age=%v person=%v) = %v, want %v", c.age, c.person, got, c.want)
		}
	}

	if got := recencyScore(nil, false, fixedNow); got != 0 {
		t.Errorf("missing publishedAt must score 0, got %v", got)
	}
}

func TestSourceScore_InjectedAllowList(t *testing.T) {
	opts := RankOptions{ReliableSources: []string{"Fish Gazette"}}

	if got := sourceScore("The Fish Gazette Daily", false, opts); got != 2 {
		t.Errorf("expected injected allow-list match to score 2, got %v", got)
	}
	if got := sourceScore("BBC", false, opts); got != 0 {
		t.Errorf("injected allow-list must replace the default, got %v", got)
	}
	if got := sourceScore("Fish Gazette", true, opts); got != 4 {
		t.Errorf("person queries weight reliable sources at 4, got %v", got)
	}
}
