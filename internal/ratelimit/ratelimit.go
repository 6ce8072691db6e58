// Package ratelimit tracks daily request budgets for the keyword APIs,
// all of which meter free-tier usage per day.
package ratelimit

import (
	"sync"
	"time"

	"newsagg/internal/logger"
)

// Budget counts outbound requests per provider name and refuses requests
// once a provider's daily budget is spent. A zero or missing limit means
// unlimited.
type Budget struct {
	mu      sync.Mutex
	limits  map[string]int
	used    map[string]int
	resetAt time.Time
}

func New(limits map[string]int) *Budget {
	return &Budget{
		limits:  limits,
		used:    make(map[string]int),
		resetAt: time.Now().Add(24 * time.Hour),
	}
}

// Allow consumes one unit of the provider's budget. It returns false when
// the budget is exhausted; the caller then skips the request and
// contributes an empty result. A nil Budget allows everything.
func (b *Budget) Allow(provider string) bool {
	if b == nil {
		return true
	}
	b.mu.Lock()
	defer b.mu.Unlock()

	if time.Now().After(b.resetAt) {
		b.used = make(map[string]int)
		b.resetAt = time.Now().Add(24 * time.Hour)
	}

	limit := b.limits[provider]
	if limit > 0 && b.used[provider] >= limit {
		logger.Warn("daily request budget exhausted", "provider", provider, "limit", limit)
		return false
	}
	b.used[provider]++
	return true
}

// Stats reports per-provider usage for the monitoring endpoint.
func (b *Budget) Stats() map[string]any {
	if b == nil {
		return map[string]any{}
	}
	b.mu.Lock()
	defer b.mu.Unlock()

	stats := make(map[string]any, len(b.used)+1)
	for provider, n := range b.used {
		stats[provider] = n
	}
	stats["reset_time"] = b.resetAt.Format(time.RFC3339)
	return stats
}
