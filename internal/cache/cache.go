// Package cache memoizes per-URL source snapshots so the query-variant
// fan-out does not refetch the same feed or page once per variant.
package cache

import (
	"sync"
	"time"

	"newsagg/internal/model"
)

type snapshot struct {
	articles  []model.Article
	expiresAt time.Time
}

// Snapshots is a TTL cache keyed by source URL. Entries hold the mapped,
// unfiltered article list for that URL.
type Snapshots struct {
	mu    sync.RWMutex
	ttl   time.Duration
	items map[string]snapshot
}

func New(ttl time.Duration) *Snapshots {
	return &Snapshots{
		ttl:   ttl,
		items: make(map[string]snapshot),
	}
}

func (s *Snapshots) Get(url string) ([]model.Article, bool) {
	s.mu.RLock()
	item, exists := s.items[url]
	s.mu.RUnlock()

	if !exists {
		return nil, false
	}
	if time.Now().After(item.expiresAt) {
		s.mu.Lock()
		delete(s.items, url)
		s.mu.Unlock()
		return nil, false
	}
	return item.articles, true
}

func (s *Snapshots) Put(url string, articles []model.Article) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	for key, item := range s.items {
		if now.After(item.expiresAt) {
			delete(s.items, key)
		}
	}
	s.items[url] = snapshot{
		articles:  articles,
		expiresAt: now.Add(s.ttl),
	}
}
