package goAdmin

import (
	"context"
	"sort"
	"sync"
	"time"
)

// ResourceKind names one cached collection. Invalidation is coarse: a
// mutation on any entity of a kind drops every cached query of that kind.
//
//	Docs: docs/cache.md
type ResourceKind string

const (
	// KindUsers is an exported constant or variable used by the moderation client engine.
	KindUsers ResourceKind = "users"
	// KindPosts is an exported constant or variable used by the moderation client engine.
	KindPosts ResourceKind = "posts"
	// KindComments is an exported constant or variable used by the moderation client engine.
	KindComments ResourceKind = "comments"
	// KindReports is an exported constant or variable used by the moderation client engine.
	KindReports ResourceKind = "reports"
	// KindInternships is an exported constant or variable used by the moderation client engine.
	KindInternships ResourceKind = "internships"
	// KindMarketplaces is an exported constant or variable used by the moderation client engine.
	KindMarketplaces ResourceKind = "marketplaces"
	// KindConversations is an exported constant or variable used by the moderation client engine.
	KindConversations ResourceKind = "conversations"
	// KindSchoolDomains is an exported constant or variable used by the moderation client engine.
	KindSchoolDomains ResourceKind = "schooldomains"
	// KindStats is an exported constant or variable used by the moderation client engine.
	KindStats ResourceKind = "stats"
)

// flight is one in-progress fetch. Waiters block on done and read the result
// from the flight itself, so a superseded fetch still delivers to its
// waiters even when its result is discarded from the cache.
type flight struct {
	done  chan struct{}
	value any
	err   error
}

type cacheEntry struct {
	kind      ResourceKind
	key       string
	gen       uint64
	flight    *flight
	value     any
	err       error
	status    QueryStatus
	fetchedAt time.Time
	hadValue  bool
}

// queryCache deduplicates identical in-flight fetches and serves fresh
// results without a network round-trip. Staleness is time-based per entry
// and generation-based per kind: Invalidate bumps the kind generation, which
// both marks existing entries stale and causes results of fetches started
// before the bump to be discarded rather than stored.
type queryCache struct {
	mu       sync.Mutex
	entries  map[string]*cacheEntry
	gens     map[ResourceKind]uint64
	ttl      time.Duration
	disabled bool
	metrics  *Metrics
}

func newQueryCache(cfg CacheConfig, metrics *Metrics) *queryCache {
	return &queryCache{
		entries:  make(map[string]*cacheEntry),
		gens:     make(map[ResourceKind]uint64),
		ttl:      cfg.StaleTTL,
		disabled: cfg.Disabled,
		metrics:  metrics,
	}
}

func (qc *queryCache) fresh(e *cacheEntry, now time.Time) bool {
	if e.status != QuerySuccess {
		return false
	}
	if e.gen != qc.gens[e.kind] {
		return false
	}
	return qc.ttl <= 0 || now.Sub(e.fetchedAt) < qc.ttl
}

// cacheDo runs fetch through the cache: a fresh entry is returned without
// fetching, an identical in-flight fetch is joined, and anything else starts
// a new fetch whose result is stored unless an invalidation superseded it.
func cacheDo[T any](qc *queryCache, ctx context.Context, kind ResourceKind, key string, fetch func(context.Context) (T, error)) (T, error) {
	var zero T

	if qc == nil || qc.disabled {
		return fetch(ctx)
	}

	now := time.Now()

	qc.mu.Lock()
	entry, ok := qc.entries[key]
	if ok && entry.flight == nil && qc.fresh(entry, now) {
		value := entry.value
		qc.mu.Unlock()
		qc.metrics.Inc(MetricCacheHit)
		typed, ok := value.(T)
		if !ok {
			return zero, &APIError{Kind: ErrUnknown, Message: msgUnknown}
		}
		return typed, nil
	}

	if ok && entry.flight != nil {
		f := entry.flight
		qc.mu.Unlock()
		qc.metrics.Inc(MetricCacheHit)
		select {
		case <-f.done:
		case <-ctx.Done():
			return zero, netError(ctx.Err())
		}
		if f.err != nil {
			return zero, f.err
		}
		typed, ok := f.value.(T)
		if !ok {
			return zero, &APIError{Kind: ErrUnknown, Message: msgUnknown}
		}
		return typed, nil
	}

	gen := qc.gens[kind]
	f := &flight{done: make(chan struct{})}
	if !ok {
		entry = &cacheEntry{kind: kind, key: key}
		qc.entries[key] = entry
	}
	entry.gen = gen
	entry.flight = f
	entry.status = QueryPending
	qc.mu.Unlock()

	qc.metrics.Inc(MetricCacheMiss)
	value, err := fetch(ctx)
	f.value = value
	f.err = err

	qc.mu.Lock()
	if entry.flight == f {
		entry.flight = nil
		if qc.gens[kind] != gen {
			// an invalidation raced this fetch; its result may be
			// pre-mutation data, so waiters get it but the cache does not
			qc.metrics.Inc(MetricCacheDiscard)
			if !entry.hadValue {
				delete(qc.entries, key)
			} else {
				entry.status = QuerySuccess
			}
		} else if err != nil {
			entry.status = QueryError
			entry.err = err
		} else {
			entry.status = QuerySuccess
			entry.value = value
			entry.err = nil
			entry.fetchedAt = time.Now()
			entry.hadValue = true
		}
	}
	qc.mu.Unlock()

	close(f.done)

	if err != nil {
		return zero, err
	}
	return value, nil
}

// Invalidate marks every cached query of kind stale. In-flight fetches of
// that kind started before the call will complete but not populate the cache.
func (qc *queryCache) Invalidate(kind ResourceKind) {
	if qc == nil {
		return
	}
	qc.mu.Lock()
	qc.gens[kind]++
	qc.mu.Unlock()
	qc.metrics.Inc(MetricCacheInvalidation)
}

// Patch applies fn to every successfully cached value of kind, in place.
// Used for optimistic updates where the post-mutation shape is known without
// a refetch.
func (qc *queryCache) Patch(kind ResourceKind, fn func(value any) any) {
	if qc == nil || fn == nil {
		return
	}
	qc.mu.Lock()
	for _, entry := range qc.entries {
		if entry.kind != kind || entry.status != QuerySuccess || entry.flight != nil {
			continue
		}
		entry.value = fn(entry.value)
	}
	qc.mu.Unlock()
	qc.metrics.Inc(MetricCachePatch)
}

// Clear drops every entry and resets all generations. Session transitions
// call this so no cached data crosses an identity boundary.
func (qc *queryCache) Clear() {
	if qc == nil {
		return
	}
	qc.mu.Lock()
	qc.entries = make(map[string]*cacheEntry)
	qc.gens = make(map[ResourceKind]uint64)
	qc.mu.Unlock()
}

// Entries returns a point-in-time view of the cache, sorted by key.
func (qc *queryCache) Entries() []CacheEntryInfo {
	if qc == nil {
		return nil
	}

	now := time.Now()

	qc.mu.Lock()
	out := make([]CacheEntryInfo, 0, len(qc.entries))
	for _, entry := range qc.entries {
		info := CacheEntryInfo{
			Kind:    entry.kind,
			Key:     entry.key,
			Status:  entry.status,
			Refetch: entry.hadValue && (entry.flight != nil || entry.status == QueryPending),
			Stale:   entry.status == QuerySuccess && !qc.fresh(entry, now),
		}
		if !entry.fetchedAt.IsZero() {
			info.Age = now.Sub(entry.fetchedAt)
		}
		out = append(out, info)
	}
	qc.mu.Unlock()

	sort.Slice(out, func(i, j int) bool { return out[i].Key < out[j].Key })
	return out
}
