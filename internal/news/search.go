package news

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"newsagg/internal/logger"
	"newsagg/internal/metrics"
	"newsagg/internal/model"
)

// ErrEmptyQuery is the single precondition failure SearchNews raises
// synchronously. Every other internal failure is swallowed into an empty
// or error-bearing envelope.
var ErrEmptyQuery = errors.New("news: query is required")

// Fetcher is the capability every source adapter provides: fetch articles
// for a keyword and optional date range. Implementations other than the
// guarded keyword API must return an empty FetchResult instead of an error.
type Fetcher interface {
	Fetch(ctx context.Context, params model.FetchParams) (model.FetchResult, error)
}

// Service orchestrates the pipeline across the five source adapters.
type Service struct {
	Primary  Fetcher // structured feed API with date-range support
	KeywordA Fetcher // secondary keyword API
	KeywordB Fetcher // keyword API with the simplified-query retry; may error
	RSS      Fetcher
	Scraper  Fetcher

	Rank RankOptions

	// Now supplies the wall clock for time windows, recency scoring and
	// bucket grouping. Defaults to time.Now; tests inject a fixed clock.
	Now func() time.Time
}

func (s *Service) clock() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

type sourceCall struct {
	fetcher Fetcher
	params  model.FetchParams
}

// SearchNews runs the full pipeline: preprocess, concurrent fan-out over
// all variants and time windows, merge, dedup, rank, group.
//
// Duplicates are collapsed before ranking on this path, so the
// first-fetched copy of a story wins regardless of score; TopHeadlines
// does the opposite (see DESIGN.md). Any unexpected failure past the query
// precondition is converted into an empty envelope with Error set.
func (s *Service) SearchNews(ctx context.Context, params model.FetchParams) (env model.SearchEnvelope, err error) {
	if params.Query == "" {
		return model.SearchEnvelope{}, ErrEmptyQuery
	}

	start := time.Now()
	metrics.Global.IncrementSearches()
	defer func() {
		metrics.Global.RecordSearchTime(time.Since(start))
		metrics.Global.SetLastRun()
		if r := recover(); r != nil {
			logger.Error("searchNews: aggregation failed", "panic", r)
			metrics.Global.SetError(fmt.Sprint(r))
			env = model.SearchEnvelope{
				Articles: []model.Article{},
				Error:    fmt.Sprintf("search failed: %v", r),
			}
			err = nil
		}
	}()

	now := s.clock()
	pre := Preprocess(params.Query, now)
	logger.Debug("searchNews: preprocessed query",
		"original", pre.OriginalQuery,
		"variants", len(pre.QueryVariants),
		"isPerson", pre.IsPerson)

	// Recent phase: every variant against RSS, scraper and the primary
	// feed. Historical phase: every time window against the three keyword
	// APIs. All calls run concurrently and each is individually guarded.
	var calls []sourceCall
	for _, variant := range pre.QueryVariants {
		p := params
		p.Query = variant
		calls = append(calls,
			sourceCall{s.RSS, p},
			sourceCall{s.Scraper, p},
			sourceCall{s.Primary, p},
		)
	}
	for _, window := range pre.TimeRanges {
		p := params
		p.Query = pre.OriginalQuery
		p.From = window.From
		p.To = window.To
		p.SortBy = "relevancy"
		calls = append(calls,
			sourceCall{s.Primary, p},
			sourceCall{s.KeywordA, p},
			sourceCall{s.KeywordB, p},
		)
	}

	// Results land in pre-assigned slots so the flattened order, and with
	// it dedup precedence, does not depend on goroutine completion order.
	results := make([]model.FetchResult, len(calls))
	var wg sync.WaitGroup
	for i, call := range calls {
		wg.Add(1)
		go func(i int, call sourceCall) {
			defer wg.Done()
			results[i] = s.guardedFetch(ctx, call.fetcher, call.params)
		}(i, call)
	}
	// Join barrier: no partial results surface until every branch settled.
	wg.Wait()

	var all []model.Article
	for _, res := range results {
		all = append(all, res.Articles...)
	}
	logger.Debug("searchNews: merged fetches", "calls", len(calls), "articles", len(all))

	unique := Dedup(all)
	ranked := Rank(unique, pre.OriginalQuery, now, s.Rank)
	grouped := GroupByRecency(ranked, now)

	return model.SearchEnvelope{
		Articles:     ranked,
		Grouped:      grouped,
		TotalResults: len(ranked),
		Query:        pre,
	}, nil
}

// TopHeadlines is the simpler lookup entry point. It tries the primary
// feed with top/us defaults first; on an empty answer it walks the backup
// chain. Articles are ranked before duplicates are collapsed here, so the
// higher-scored copy of a duplicate wins. It never returns an error.
func (s *Service) TopHeadlines(ctx context.Context, params model.FetchParams) model.FetchResult {
	p := params
	if p.Category == "" {
		p.Category = "top"
	}
	if p.Country == "" {
		p.Country = "us"
	}

	res := s.guardedFetch(ctx, s.Primary, p)
	if len(res.Articles) > 0 {
		ranked := Rank(res.Articles, params.Query, s.clock(), s.Rank)
		return model.FetchResult{
			Articles:     Dedup(ranked),
			TotalResults: res.TotalResults,
		}
	}

	logger.Info("topHeadlines: no results from primary feed, trying backup chain")
	return s.backupFetch(ctx, params)
}

// backupFetch is the 3-tier fallback chain: keyword API B, then keyword
// API A, then RSS and scraping combined. Always returns a result, possibly
// empty.
func (s *Service) backupFetch(ctx context.Context, params model.FetchParams) model.FetchResult {
	if res := s.guardedFetch(ctx, s.KeywordB, params); len(res.Articles) > 0 {
		return res
	}
	if res := s.guardedFetch(ctx, s.KeywordA, params); len(res.Articles) > 0 {
		return res
	}

	var rssRes, scrapedRes model.FetchResult
	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		rssRes = s.guardedFetch(ctx, s.RSS, params)
	}()
	go func() {
		defer wg.Done()
		scrapedRes = s.guardedFetch(ctx, s.Scraper, params)
	}()
	wg.Wait()

	combined := append(rssRes.Articles, scrapedRes.Articles...)
	return model.FetchResult{Articles: combined, TotalResults: len(combined)}
}

// guardedFetch isolates one fetcher call: an error or panic from a single
// provider empties that provider's contribution and never fails the phase.
func (s *Service) guardedFetch(ctx context.Context, fetcher Fetcher, params model.FetchParams) (res model.FetchResult) {
	defer func() {
		if r := recover(); r != nil {
			logger.Warn("fetch: recovered", "query", params.Query, "panic", r)
			metrics.Global.RecordFetch(false, 0)
			res = model.FetchResult{}
		}
	}()

	if fetcher == nil {
		return model.FetchResult{}
	}

	out, err := fetcher.Fetch(ctx, params)
	if err != nil {
		logger.Warn("fetch: source failed", "query", params.Query, "err", err)
		metrics.Global.RecordFetch(false, 0)
		return model.FetchResult{}
	}
	metrics.Global.RecordFetch(true, len(out.Articles))
	return out
}
