package credential

import (
	"context"
	"sync"
)

// Credential defines a public type used by goAdmin APIs.
//
// Credential instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type Credential struct {
	AccessToken  string
	RefreshToken string
}

// Empty reports whether the credential carries no access token.
func (c Credential) Empty() bool {
	return c.AccessToken == ""
}

// Store is the durable credential backend. Implementations must make Set
// atomic with respect to Get (a reader observes either the old or the new
// credential, never a mix) and must make Clear idempotent.
type Store interface {
	Get(ctx context.Context) (Credential, bool)
	Set(ctx context.Context, cred Credential) error
	Clear(ctx context.Context) error
	GetIdentity(ctx context.Context) ([]byte, bool)
	SetIdentity(ctx context.Context, raw []byte) error
}

// MemoryStore defines a public type used by goAdmin APIs.
//
// MemoryStore instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type MemoryStore struct {
	mu       sync.RWMutex
	cred     Credential
	has      bool
	identity []byte
}

// NewMemoryStore describes the newmemorystore operation and its observable behavior.
//
// NewMemoryStore does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

// Get describes the get operation and its observable behavior.
//
// Get does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (s *MemoryStore) Get(ctx context.Context) (Credential, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.has {
		return Credential{}, false
	}
	return s.cred, true
}

// Set describes the set operation and its observable behavior.
//
// Set may return an error when input validation, dependency calls, or security checks fail.
// Set does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (s *MemoryStore) Set(ctx context.Context, cred Credential) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cred = cred
	s.has = true
	return nil
}

// Clear describes the clear operation and its observable behavior.
//
// Clear may return an error when input validation, dependency calls, or security checks fail.
// Clear does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (s *MemoryStore) Clear(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cred = Credential{}
	s.has = false
	s.identity = nil
	return nil
}

// GetIdentity describes the getidentity operation and its observable behavior.
//
// GetIdentity does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (s *MemoryStore) GetIdentity(ctx context.Context) ([]byte, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.identity == nil {
		return nil, false
	}
	out := make([]byte, len(s.identity))
	copy(out, s.identity)
	return out, true
}

// SetIdentity describes the setidentity operation and its observable behavior.
//
// SetIdentity may return an error when input validation, dependency calls, or security checks fail.
// SetIdentity does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (s *MemoryStore) SetIdentity(ctx context.Context, raw []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.identity = make([]byte, len(raw))
	copy(s.identity, raw)
	return nil
}
