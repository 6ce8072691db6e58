// Package news implements the aggregation pipeline: query preprocessing,
// concurrent source fan-out, deduplication, relevance ranking and recency
// grouping.
package news

import (
	"fmt"
	"regexp"
	"strings"
	"time"
	"unicode"

	"newsagg/internal/model"
)

var contextAnnotation = regexp.MustCompile(`\[Context:.*?\]`)

// personVariantTemplates are the reformulations appended when the query
// looks like a person's name. The set is fixed and intentionally biased
// towards biographical and spaceflight phrasings.
var personVariantTemplates = []string{
	"%s current location",
	"%s latest news",
	"%s current status",
	"%s recent update",
	"%s whereabouts",
	"%s latest activity",
	"astronaut %s",
	"%s space mission",
	"%s NASA",
	"%s return Earth",
	"%s landing",
	"%s biography",
	"%s career",
	"%s achievements",
}

// Preprocess turns a raw query into normalized variants, entity hints and
// the four historical time windows anchored to now. It is a pure function
// of (query, now) and does no I/O.
//
// Person detection is a deliberate heuristic, not entity recognition: a
// token counts as a person-name candidate when its first character equals
// its own uppercase form, which also fires on ordinary capitalized
// sentence-initial words.
func Preprocess(query string, now time.Time) model.PreprocessedQuery {
	query = strings.TrimSpace(contextAnnotation.ReplaceAllString(query, ""))

	var people []string
	for _, word := range strings.Fields(query) {
		runes := []rune(word)
		if len(runes) > 1 && unicode.ToUpper(runes[0]) == runes[0] {
			people = append(people, word)
		}
	}

	variants := []string{query}
	if len(people) > 0 {
		person := strings.Join(people, " ")
		for _, tpl := range personVariantTemplates {
			variants = append(variants, fmt.Sprintf(tpl, person))
		}
	}

	return model.PreprocessedQuery{
		OriginalQuery:      query,
		QueryVariants:      variants,
		Entities:           model.Entities{People: people},
		TimeRanges:         timeWindows(now),
		IsPerson:           len(people) > 0,
		IsHistoricalSearch: true,
	}
}

// timeWindows returns the four fixed historical windows: last week, then
// week-to-month, month-to-quarter and quarter-to-year.
func timeWindows(now time.Time) []model.TimeRange {
	iso := func(daysAgo int) string {
		return now.AddDate(0, 0, -daysAgo).UTC().Format("2006-01-02")
	}
	return []model.TimeRange{
		{From: iso(7), To: iso(0), Priority: "critical"},
		{From: iso(30), To: iso(7), Priority: "high"},
		{From: iso(90), To: iso(30), Priority: "medium"},
		{From: iso(365), To: iso(90), Priority: "low"},
	}
}
