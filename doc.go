// Package goAdmin provides an authenticated client engine for the
// AnonymousWall moderation API: bearer-token lifecycle with refresh-on-401,
// durable credential storage, role-gated session control, and a cached,
// de-duplicated paginated resource layer covering every moderation entity
// (users, posts, comments, reports, internships, marketplace listings,
// conversations, school domains).
//
// The package is designed for concurrent consumers: Client methods are safe
// to call from multiple goroutines after initialization through
// [Builder.Build].
//
// # Architecture boundaries
//
// goAdmin is the public surface. It exposes [Client], [Builder], [Config],
// the error taxonomy, and the entity value types. All internal coordination —
// flow orchestration, audit dispatch — lives under internal/ and is never
// exported. Credential persistence is pluggable through [credential.Store].
//
// # What this package must NOT do
//
//   - Perform navigation or any other UI side effect: forced session
//     invalidation is reported through the session observer interface and
//     acted on by the embedding application, never by the library.
//   - Re-implement server-side moderation rules. Every decision beyond the
//     advisory login role gate belongs to the backend.
//   - Perform network I/O anywhere except the HTTP gateway.
//
// # Trust model
//
// The role claim is decoded from the access token without signature
// verification, because the client holds no verification key. The decode
// gates dashboard access only; the backend re-authorizes every request.
package goAdmin
