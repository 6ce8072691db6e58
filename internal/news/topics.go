package news

import "strings"

// topicVocabulary is the fixed set of category and event keywords the
// topic extractor matches against.
var topicVocabulary = []string{
	// Categories
	"politics", "business", "technology", "science", "health",
	"sports", "entertainment", "world", "national", "economy",
	"coronavirus", "covid", "pandemic", "climate", "election",

	// Events
	"earthquake", "hurricane", "tornado", "flood", "disaster",
	"war", "conflict", "attack", "shooting", "protest",
	"summit", "conference", "vote", "bill",
	"legislation", "court", "ruling", "verdict", "investigation",
	"scandal", "controversy", "accident", "crash", "incident",
	"launch", "release", "announcement", "discovery", "breakthrough",
	"award", "ceremony", "festival", "concert", "game",
	"tournament", "championship", "match", "race", "competition",
}

// ExtractTopics returns the vocabulary keywords mentioned in the text, in
// vocabulary order and without duplicates.
func ExtractTopics(text string) []string {
	lower := strings.ToLower(text)

	var topics []string
	seen := make(map[string]struct{})
	for _, keyword := range topicVocabulary {
		if _, dup := seen[keyword]; dup {
			continue
		}
		if strings.Contains(lower, keyword) {
			seen[keyword] = struct{}{}
			topics = append(topics, keyword)
		}
	}
	return topics
}
