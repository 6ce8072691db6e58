package news

import (
	"sort"
	"strings"
	"time"
	"unicode"

	"newsagg/internal/model"
)

// defaultReliableSources is the allow-list of outlet names that earn a
// source-reputation bonus. Matched by substring against the article's
// source name.
var defaultReliableSources = []string{
	"Reuters", "AP", "Associated Press", "BBC", "CNN", "NASA", "Space.com",
	"Al Jazeera", "Bloomberg", "The Guardian", "New York Times", "Washington Post",
}

// defaultBioTerms is the fixed vocabulary that boosts biographical and
// spaceflight coverage for person queries.
var defaultBioTerms = []string{
	"return", "arrived", "landed", "completed", "mission", "astronaut",
	"space", "nasa", "current", "status", "location",
}

// RankOptions carries the injectable scoring tables. Zero value uses the
// defaults above.
type RankOptions struct {
	ReliableSources []string
	BioTerms        []string
}

func (o RankOptions) reliableSources() []string {
	if o.ReliableSources != nil {
		return o.ReliableSources
	}
	return defaultReliableSources
}

func (o RankOptions) bioTerms() []string {
	if o.BioTerms != nil {
		return o.BioTerms
	}
	return defaultBioTerms
}

// IsPersonQuery reports whether the query looks like it is about a named
// individual: any token longer than three characters starting with an
// uppercase letter. Like the preprocessor's heuristic this fires on
// ordinary sentence-initial capitalization too.
func IsPersonQuery(query string) bool {
	for _, term := range strings.Fields(query) {
		runes := []rune(term)
		if len(runes) > 3 && unicode.IsUpper(runes[0]) {
			return true
		}
	}
	return false
}

// scoredArticle pairs an article with its transient combined score. It
// exists only inside ranking and never reaches the public result.
type scoredArticle struct {
	article model.Article
	score   float64
}

// Rank orders articles by a weighted blend of relevance, recency and
// source reputation, highest first. The sort is stable: equal-score
// articles keep their input order, which also carries the dedup precedence
// decided upstream. Rank is a pure function of (articles, query, now).
func Rank(articles []model.Article, query string, now time.Time, opts RankOptions) []model.Article {
	if len(articles) == 0 {
		return nil
	}

	queryLower := strings.ToLower(query)
	var terms []string
	for _, t := range strings.Fields(queryLower) {
		if len(t) > 3 {
			terms = append(terms, t)
		}
	}
	person := IsPersonQuery(query)

	scored := make([]scoredArticle, len(articles))
	for i, article := range articles {
		scored[i] = scoredArticle{
			article: article,
			score:   combinedScore(article, queryLower, terms, person, now, opts),
		}
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].score > scored[j].score
	})

	ranked := make([]model.Article, len(scored))
	for i, s := range scored {
		ranked[i] = s.article
	}
	return ranked
}

func combinedScore(a model.Article, queryLower string, terms []string, person bool, now time.Time, opts RankOptions) float64 {
	relevance := relevanceScore(a, queryLower, terms, person, opts)
	recency := recencyScore(a.PublishedAt, person, now)
	source := sourceScore(a.Source.Name, person, opts)

	if person {
		return relevance*0.6 + recency*0.25 + source*0.15
	}
	return relevance*0.5 + recency*0.4 + source*0.1
}

func relevanceScore(a model.Article, queryLower string, terms []string, person bool, opts RankOptions) float64 {
	title := strings.ToLower(a.Title)
	description := strings.ToLower(a.Description)
	content := strings.ToLower(a.Content)

	var score float64
	if person {
		if strings.Contains(title, queryLower) {
			score += 15
		}
		if strings.Contains(description, queryLower) {
			score += 10
		}
		if strings.Contains(content, queryLower) {
			score += 8
		}
		for _, term := range opts.bioTerms() {
			if strings.Contains(title, term) {
				score += 5
			}
			if strings.Contains(description, term) {
				score += 3
			}
			if strings.Contains(content, term) {
				score += 2
			}
		}
	} else {
		if strings.Contains(title, queryLower) {
			score += 10
		}
		if strings.Contains(description, queryLower) {
			score += 5
		}
		if strings.Contains(content, queryLower) {
			score += 3
		}
	}

	for _, term := range terms {
		if strings.Contains(title, term) {
			score += 3
		}
		if strings.Contains(description, term) {
			score += 2
		}
		if strings.Contains(content, term) {
			score += 1
		}
	}
	return score
}

// recencyScore is a step function of the article's age in hours. A missing
// publication date scores zero, it is not an error.
func recencyScore(publishedAt *time.Time, person bool, now time.Time) float64 {
	if publishedAt == nil {
		return 0
	}
	age := now.Sub(*publishedAt).Hours()

	if person {
		switch {
		case age < 24:
			return 10
		case age < 72:
			return 8
		case age < 168: // one week
			return 6
		case age < 720: // one month
			return 4
		default:
			return 2
		}
	}
	switch {
	case age < 6:
		return 10
	case age < 24:
		return 8
	case age < 48:
		return 6
	case age < 72:
		return 4
	default:
		return 2
	}
}

func sourceScore(sourceName string, person bool, opts RankOptions) float64 {
	if sourceName == "" {
		return 0
	}
	for _, reliable := range opts.reliableSources() {
		if strings.Contains(sourceName, reliable) {
			if person {
				return 4
			}
			return 2
		}
	}
	return 0
}
