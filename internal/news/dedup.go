package news

import (
	"regexp"
	"strings"

	"newsagg/internal/metrics"
	"newsagg/internal/model"
)

// similarityThreshold is the Jaccard similarity above which two titles are
// considered the same story.
const similarityThreshold = 0.70

var nonWord = regexp.MustCompile(`[^\w\s]`)

// normalizeTitle lowercases a title and strips everything that is not a
// word character or whitespace, so punctuation-only differences vanish.
func normalizeTitle(title string) string {
	return nonWord.ReplaceAllString(strings.ToLower(title), "")
}

// titleSimilarity is the Jaccard index over the word sets of two normalized
// titles: |intersection| / |union|.
func titleSimilarity(t1, t2 string) float64 {
	set1 := wordSet(t1)
	set2 := wordSet(t2)

	common := 0
	for word := range set1 {
		if _, ok := set2[word]; ok {
			common++
		}
	}

	union := len(set1) + len(set2) - common
	if union == 0 {
		return 0
	}
	return float64(common) / float64(union)
}

func wordSet(s string) map[string]struct{} {
	words := strings.Fields(s)
	set := make(map[string]struct{}, len(words))
	for _, w := range words {
		set[w] = struct{}{}
	}
	return set
}

// Dedup collapses near-duplicate articles. It scans in input order and
// keeps an article only if its normalized title is at most 70% similar to
// every previously kept title, so the first-seen copy always wins and the
// output is deterministic for a given input order.
//
// Articles without a title are dropped entirely: they cannot take part in
// similarity comparison and could not be scored later either.
func Dedup(articles []model.Article) []model.Article {
	if len(articles) == 0 {
		return nil
	}

	var unique []model.Article
	var seenTitles []string
	var filtered int64

	for _, article := range articles {
		if article.Title == "" {
			filtered++
			continue
		}

		simplified := normalizeTitle(article.Title)
		duplicate := false
		for _, title := range seenTitles {
			if titleSimilarity(title, simplified) > similarityThreshold {
				duplicate = true
				break
			}
		}
		if duplicate {
			filtered++
			continue
		}

		seenTitles = append(seenTitles, simplified)
		unique = append(unique, article)
	}

	if filtered > 0 {
		metrics.Global.AddDuplicatesFiltered(filtered)
	}
	return unique
}
