// Package flows contains pure-function orchestrators for session operations.
//
// Each flow function (RunLogin, RunRefresh, RunRehydrate, RunLogout) accepts a
// typed dependency struct and returns results without side-effects beyond those
// dependencies. This design enables exhaustive unit testing with mock
// dependencies and keeps the Client type thin.
//
// # Architecture boundaries
//
// Flow functions coordinate calls to the gateway, credential store, claims
// decoder, audit dispatcher, and metrics. They do NOT own any of these
// resources — ownership stays with the Client.
//
// # What this package must NOT do
//
//   - Hold mutable state between calls.
//   - Import goAdmin (to avoid import cycles).
//   - Perform I/O directly — all I/O is mediated through dependency functions.
package flows
