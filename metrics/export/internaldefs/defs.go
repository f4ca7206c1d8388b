package internaldefs

import (
	goAdmin "github.com/AnonymousWall/goAdmin"
)

// CounterDef defines a public type used by goAdmin APIs.
//
// CounterDef instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type CounterDef struct {
	ID   goAdmin.MetricID
	Name string
	Help string
}

// HistogramDef defines a public type used by goAdmin APIs.
//
// HistogramDef instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type HistogramDef struct {
	ID   goAdmin.MetricID
	Name string
	Help string
}

// CounterDefs is an exported constant or variable used by the admin client.
var CounterDefs = []CounterDef{
	{ID: goAdmin.MetricRequestSuccess, Name: "goadmin_request_success_total", Help: "Successful gateway requests."},
	{ID: goAdmin.MetricRequestNetworkError, Name: "goadmin_request_network_error_total", Help: "Gateway requests failed at the transport layer."},
	{ID: goAdmin.MetricRequestUnauthorized, Name: "goadmin_request_unauthorized_total", Help: "Gateway requests rejected with 401."},
	{ID: goAdmin.MetricRequestRetried, Name: "goadmin_request_retried_total", Help: "Gateway requests replayed after a refresh."},
	{ID: goAdmin.MetricRefreshSuccess, Name: "goadmin_refresh_success_total", Help: "Successful token refresh operations."},
	{ID: goAdmin.MetricRefreshFailure, Name: "goadmin_refresh_failure_total", Help: "Failed token refresh operations."},
	{ID: goAdmin.MetricLoginSuccess, Name: "goadmin_login_success_total", Help: "Successful login attempts."},
	{ID: goAdmin.MetricLoginFailure, Name: "goadmin_login_failure_total", Help: "Failed login attempts."},
	{ID: goAdmin.MetricLoginRoleDenied, Name: "goadmin_login_role_denied_total", Help: "Login attempts denied by role gating."},
	{ID: goAdmin.MetricLogout, Name: "goadmin_logout_total", Help: "Logout operations."},
	{ID: goAdmin.MetricSessionRehydrated, Name: "goadmin_session_rehydrated_total", Help: "Sessions restored from persisted credentials."},
	{ID: goAdmin.MetricSessionInvalidated, Name: "goadmin_session_invalidated_total", Help: "Sessions force-invalidated after refresh failure."},
	{ID: goAdmin.MetricCacheHit, Name: "goadmin_cache_hit_total", Help: "Query cache hits."},
	{ID: goAdmin.MetricCacheMiss, Name: "goadmin_cache_miss_total", Help: "Query cache misses."},
	{ID: goAdmin.MetricCacheInvalidation, Name: "goadmin_cache_invalidation_total", Help: "Query cache invalidations."},
	{ID: goAdmin.MetricCachePatch, Name: "goadmin_cache_patch_total", Help: "Optimistic cache patch operations."},
	{ID: goAdmin.MetricCacheDiscard, Name: "goadmin_cache_discard_total", Help: "Superseded fetch results discarded."},
	{ID: goAdmin.MetricMutationSuccess, Name: "goadmin_mutation_success_total", Help: "Successful moderation mutations."},
	{ID: goAdmin.MetricMutationFailure, Name: "goadmin_mutation_failure_total", Help: "Failed moderation mutations."},
}

// HistogramDefs is an exported constant or variable used by the admin client.
var HistogramDefs = []HistogramDef{
	{ID: goAdmin.MetricRequestLatency, Name: "goadmin_request_latency_seconds", Help: "Gateway request latency histogram."},
}

// HistogramBounds is an exported constant or variable used by the admin client.
var HistogramBounds = []string{
	"0.005",
	"0.01",
	"0.025",
	"0.05",
	"0.1",
	"0.25",
	"0.5",
	"+Inf",
}

// HistogramBoundSuffix is an exported constant or variable used by the admin client.
var HistogramBoundSuffix = []string{
	"0_005",
	"0_01",
	"0_025",
	"0_05",
	"0_1",
	"0_25",
	"0_5",
	"inf",
}

// NormalizeBuckets describes the normalizebuckets operation and its observable behavior.
//
// NormalizeBuckets does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func NormalizeBuckets(raw []uint64) [8]uint64 {
	var out [8]uint64
	for i := 0; i < len(out) && i < len(raw); i++ {
		out[i] = raw[i]
	}
	return out
}

// CumulativeBuckets describes the cumulativebuckets operation and its observable behavior.
//
// CumulativeBuckets does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func CumulativeBuckets(raw [8]uint64) [8]uint64 {
	var out [8]uint64
	var running uint64
	for i := 0; i < len(raw); i++ {
		running += raw[i]
		out[i] = running
	}
	return out
}
