package model

// Entities holds the named entities detected during query preprocessing.
// Only People is populated today; the other slots are reserved for a real
// entity recognizer.
type Entities struct {
	People        []string `json:"people"`
	Locations     []string `json:"locations"`
	Organizations []string `json:"organizations"`
	Events        []string `json:"events"`
	Dates         []string `json:"dates"`
}

// TimeRange is a bounded date window used to request historical coverage in
// a separate, parallel call.
type TimeRange struct {
	From     string `json:"from"`
	To       string `json:"to"`
	Priority string `json:"priority"` // critical | high | medium | low
}

// PreprocessedQuery is the enriched form of a raw search query.
type PreprocessedQuery struct {
	OriginalQuery      string      `json:"originalQuery"`
	QueryVariants      []string    `json:"queryVariants"`
	Entities           Entities    `json:"entities"`
	TimeRanges         []TimeRange `json:"timeRanges"`
	IsPerson           bool        `json:"isPerson"`
	IsHistoricalSearch bool        `json:"isHistoricalSearch"`
}

// GroupedArticles partitions a ranked article list into recency buckets.
// The buckets are mutually exclusive and cover every article.
type GroupedArticles struct {
	Recent    []Article `json:"recent"`
	LastMonth []Article `json:"lastMonth"`
	Older     []Article `json:"older"`
}

// SearchEnvelope is the full search output. Error carries a soft failure:
// callers must treat an error-bearing envelope as a legitimate empty answer,
// not as something to retry.
type SearchEnvelope struct {
	Articles     []Article         `json:"articles"`
	Grouped      GroupedArticles   `json:"groupedArticles"`
	TotalResults int               `json:"totalResults"`
	Query        PreprocessedQuery `json:"query"`
	Error        string            `json:"error,omitempty"`
}
