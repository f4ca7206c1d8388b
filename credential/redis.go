package credential

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

const defaultRedisPrefix = "goadmin:credential"

// RedisStore keeps the credential in Redis so multiple processes can share
// one session. Token rotation performed by one process is visible to the
// others on their next Get.
type RedisStore struct {
	client redis.UniversalClient
	prefix string
	ttl    time.Duration
}

// RedisOption configures a RedisStore.
type RedisOption func(*RedisStore)

// WithRedisPrefix overrides the key prefix. Useful when several dashboards
// share one Redis database.
func WithRedisPrefix(prefix string) RedisOption {
	return func(s *RedisStore) { s.prefix = prefix }
}

// WithRedisTTL sets an expiry on stored keys. Zero means no expiry.
func WithRedisTTL(ttl time.Duration) RedisOption {
	return func(s *RedisStore) { s.ttl = ttl }
}

// NewRedisStore describes the newredisstore operation and its observable behavior.
//
// NewRedisStore may return an error when input validation, dependency calls, or security checks fail.
// NewRedisStore does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func NewRedisStore(client redis.UniversalClient, opts ...RedisOption) (*RedisStore, error) {
	if client == nil {
		return nil, errors.New("redis client required")
	}
	s := &RedisStore{client: client, prefix: defaultRedisPrefix}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

func (s *RedisStore) accessKey() string   { return s.prefix + ":token" }
func (s *RedisStore) refreshKey() string  { return s.prefix + ":refresh" }
func (s *RedisStore) identityKey() string { return s.prefix + ":identity" }

// Get describes the get operation and its observable behavior.
//
// Get does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (s *RedisStore) Get(ctx context.Context) (Credential, bool) {
	access, err := s.client.Get(ctx, s.accessKey()).Result()
	if err != nil || access == "" {
		return Credential{}, false
	}
	refresh, err := s.client.Get(ctx, s.refreshKey()).Result()
	if err != nil && !errors.Is(err, redis.Nil) {
		return Credential{}, false
	}
	return Credential{AccessToken: access, RefreshToken: refresh}, true
}

// Set describes the set operation and its observable behavior.
//
// Set may return an error when input validation, dependency calls, or security checks fail.
// Set does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (s *RedisStore) Set(ctx context.Context, cred Credential) error {
	pipe := s.client.TxPipeline()
	pipe.Set(ctx, s.accessKey(), cred.AccessToken, s.ttl)
	pipe.Set(ctx, s.refreshKey(), cred.RefreshToken, s.ttl)
	_, err := pipe.Exec(ctx)
	return err
}

// Clear describes the clear operation and its observable behavior.
//
// Clear may return an error when input validation, dependency calls, or security checks fail.
// Clear does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (s *RedisStore) Clear(ctx context.Context) error {
	return s.client.Del(ctx, s.accessKey(), s.refreshKey(), s.identityKey()).Err()
}

// GetIdentity describes the getidentity operation and its observable behavior.
//
// GetIdentity does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (s *RedisStore) GetIdentity(ctx context.Context) ([]byte, bool) {
	raw, err := s.client.Get(ctx, s.identityKey()).Bytes()
	if err != nil || len(raw) == 0 {
		return nil, false
	}
	return raw, true
}

// SetIdentity describes the setidentity operation and its observable behavior.
//
// SetIdentity may return an error when input validation, dependency calls, or security checks fail.
// SetIdentity does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (s *RedisStore) SetIdentity(ctx context.Context, raw []byte) error {
	return s.client.Set(ctx, s.identityKey(), raw, s.ttl).Err()
}
