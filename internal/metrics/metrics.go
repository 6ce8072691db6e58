package metrics

import (
	"sync"
	"time"
)

type Metrics struct {
	mu sync.RWMutex

	// Counters
	SearchesRun        int64
	FetchesAttempted   int64
	FetchesFailed      int64
	ArticlesFetched    int64
	DuplicatesFiltered int64

	// Timings
	LastSearchTime    time.Duration
	AverageSearchTime time.Duration
	TotalSearchTime   time.Duration
	SearchCount       int64

	// Status
	LastRunTime   time.Time
	LastErrorTime time.Time
	LastError     string
	IsHealthy     bool
}

var Global = &Metrics{IsHealthy: true}

func (m *Metrics) IncrementSearches() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SearchesRun++
}

// RecordFetch tallies one fetcher call. A failed call is one that degraded
// to an empty result because of a provider error.
func (m *Metrics) RecordFetch(ok bool, articles int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.FetchesAttempted++
	if ok {
		m.ArticlesFetched += int64(articles)
	} else {
		m.FetchesFailed++
	}
}

func (m *Metrics) AddDuplicatesFiltered(n int64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.DuplicatesFiltered += n
}

func (m *Metrics) RecordSearchTime(duration time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.LastSearchTime = duration
	m.TotalSearchTime += duration
	m.SearchCount++

	if m.SearchCount > 0 {
		m.AverageSearchTime = m.TotalSearchTime / time.Duration(m.SearchCount)
	}
}

func (m *Metrics) SetLastRun() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.LastRunTime = time.Now()
	m.IsHealthy = true
}

func (m *Metrics) SetError(err string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.LastError = err
	m.LastErrorTime = time.Now()
	m.IsHealthy = false
}

func (m *Metrics) GetStats() map[string]interface{} {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return map[string]interface{}{
		"searches_run":           m.SearchesRun,
		"fetches_attempted":      m.FetchesAttempted,
		"fetches_failed":         m.FetchesFailed,
		"articles_fetched":       m.ArticlesFetched,
		"duplicates_filtered":    m.DuplicatesFiltered,
		"last_search_time_ms":    m.LastSearchTime.Milliseconds(),
		"average_search_time_ms": m.AverageSearchTime.Milliseconds(),
		"last_run_time":          m.LastRunTime.Format(time.RFC3339),
		"last_error_time":        m.LastErrorTime.Format(time.RFC3339),
		"last_error":             m.LastError,
		"is_healthy":             m.IsHealthy,
	}
}
