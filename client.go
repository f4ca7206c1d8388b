package goAdmin

import (
	"log/slog"
	"sync"
	"sync/atomic"

	"github.com/AnonymousWall/goAdmin/credential"
	internalaudit "github.com/AnonymousWall/goAdmin/internal/audit"
)

// Client defines a public type used by goAdmin APIs.
//
// Client is the embedding application's single handle on the moderation API:
// it owns the session, the gateway, the query cache, metrics, and the audit
// dispatcher. Construct it through [New]; the zero value is not usable.
// All methods are safe for concurrent use.
type Client struct {
	cfg     Config
	store   credential.Store
	gw      *gateway
	cache   *queryCache
	metrics *Metrics
	logger  *slog.Logger

	dispatcher *internalaudit.Dispatcher

	sessionMu  sync.Mutex
	refreshMu  sync.Mutex
	refreshGen atomic.Uint64

	stateMu  sync.RWMutex
	state    SessionState
	identity *Identity

	subMu   sync.Mutex
	subs    map[uint64]func(SessionEvent)
	nextSub uint64

	closed atomic.Bool
}

func credentialPair(access, refresh string) credential.Credential {
	return credential.Credential{AccessToken: access, RefreshToken: refresh}
}

// Close shuts down the audit dispatcher, draining buffered events. The
// client must not be used after Close.
//
// Close does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (c *Client) Close() {
	if c == nil || !c.closed.CompareAndSwap(false, true) {
		return
	}
	c.dispatcher.Close()
}

// MetricsSnapshot returns a point-in-time copy of all counters and
// histograms.
//
// MetricsSnapshot does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (c *Client) MetricsSnapshot() MetricsSnapshot {
	if c == nil {
		return MetricsSnapshot{Counters: map[MetricID]uint64{}, Histograms: map[MetricID][]uint64{}}
	}
	return c.metrics.Snapshot()
}

// AuditDropped returns the number of audit events dropped under backpressure.
//
// AuditDropped does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (c *Client) AuditDropped() uint64 {
	if c == nil {
		return 0
	}
	return c.dispatcher.Dropped()
}

// InvalidateResource marks every cached query of kind stale, forcing the
// next read to refetch. Mutations call this automatically; it is exposed for
// consumers that mutate out of band.
//
// InvalidateResource does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (c *Client) InvalidateResource(kind ResourceKind) {
	if c == nil {
		return
	}
	c.cache.Invalidate(kind)
}

// CacheEntries returns a read-only view of the query cache, sorted by key.
//
// CacheEntries does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (c *Client) CacheEntries() []CacheEntryInfo {
	if c == nil {
		return nil
	}
	return c.cache.Entries()
}

// Config returns a copy of the effective configuration.
//
// Config does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (c *Client) Config() Config {
	if c == nil {
		return Config{}
	}
	return cloneConfig(c.cfg)
}
