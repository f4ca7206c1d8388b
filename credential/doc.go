// Package credential persists the current bearer credential and the
// serialized identity attached to it.
//
// A [Store] is the single source of truth for the active credential: at most
// one credential exists per store, Set atomically replaces it, and Clear
// removes the access token, the refresh token, and the persisted identity
// together. Reads are best-effort — a corrupt or unreadable backend is
// reported as "no credential" and the offending keys are proactively
// cleared, so a damaged store can never prevent startup.
//
// Three implementations are provided: [MemoryStore] for tests and ephemeral
// processes, [FileStore] for CLI-style durable storage, and [RedisStore] for
// server-hosted deployments that share a session across replicas.
package credential
