package goAdmin

import (
	"context"
	"encoding/json"
	"time"

	"github.com/AnonymousWall/goAdmin/claims"
	internalaudit "github.com/AnonymousWall/goAdmin/internal/audit"
	"github.com/AnonymousWall/goAdmin/internal/flows"
)

// Login exchanges credentials for a session. The decoded role must be in
// Auth.AllowedRoles or the attempt fails with [ErrRoleNotAllowed] and nothing
// is persisted. On success the session is SessionAuthenticated and observers
// receive a SessionEventLogin.
//
// Login may return an error when input validation, dependency calls, or security checks fail.
// Login does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (c *Client) Login(ctx context.Context, email, password string) (*Identity, error) {
	if c == nil || c.gw == nil {
		return nil, ErrEngineNotReady
	}

	c.sessionMu.Lock()
	defer c.sessionMu.Unlock()

	c.setState(SessionLoading, nil)

	var persisted *Identity

	result := flows.RunLogin(ctx, email, password, flows.LoginDeps{
		CallLogin: func(ctx context.Context, email, password string) (string, string, []byte, error) {
			var resp loginResponse
			body := map[string]string{"email": email, "password": password}
			if err := c.gw.bare(ctx, "POST", c.cfg.Auth.LoginPath, body, &resp); err != nil {
				return "", "", nil, err
			}
			raw, err := json.Marshal(resp.User)
			if err != nil {
				return "", "", nil, err
			}
			return resp.AccessToken, resp.RefreshToken, raw, nil
		},
		RoleFromToken: claims.Role,
		RoleAllowed: func(role string) bool {
			return c.cfg.roleAllowed(Role(role))
		},
		PersistCredential: func(ctx context.Context, access, refresh string) error {
			return c.store.Set(ctx, credentialPair(access, refresh))
		},
		PersistIdentity: func(ctx context.Context, raw []byte, role string) error {
			var ident Identity
			if err := json.Unmarshal(raw, &ident); err != nil {
				return err
			}
			ident.Role = Role(role)
			merged, err := json.Marshal(&ident)
			if err != nil {
				return err
			}
			if err := c.store.SetIdentity(ctx, merged); err != nil {
				return err
			}
			persisted = &ident
			return nil
		},
	})

	switch result.Failure {
	case flows.LoginFailureNone:
		c.metrics.Inc(MetricLoginSuccess)
		c.setState(SessionAuthenticated, persisted)
		c.emitAudit(ctx, "login", email, persisted.ID, true, nil)
		c.notify(SessionEvent{Type: SessionEventLogin, State: SessionAuthenticated, Identity: persisted})
		c.cache.Clear()
		return persisted, nil

	case flows.LoginFailureRoleDenied:
		c.metrics.Inc(MetricLoginRoleDenied)
		c.setState(SessionUnauthenticated, nil)
		err := &APIError{Kind: ErrRoleNotAllowed, Message: msgForbidden}
		c.emitAudit(ctx, "login", email, "", false, err)
		return nil, err

	case flows.LoginFailureCall:
		c.metrics.Inc(MetricLoginFailure)
		c.setState(SessionUnauthenticated, nil)
		c.emitAudit(ctx, "login", email, "", false, result.Err)
		return nil, result.Err

	case flows.LoginFailurePersistIdentity:
		// the credential landed before the identity failed; clear it so
		// storage matches the unauthenticated state we settle to
		c.metrics.Inc(MetricLoginFailure)
		if cerr := c.store.Clear(ctx); cerr != nil {
			c.warn("goAdmin: credential clear failed after identity persist failure")
		}
		c.setState(SessionUnauthenticated, nil)
		err := &APIError{Kind: ErrUnknown, Message: msgUnknown, cause: result.Err}
		c.emitAudit(ctx, "login", email, "", false, err)
		return nil, err

	default:
		c.metrics.Inc(MetricLoginFailure)
		c.setState(SessionUnauthenticated, nil)
		err := &APIError{Kind: ErrUnknown, Message: msgUnknown, cause: result.Err}
		c.emitAudit(ctx, "login", email, "", false, err)
		return nil, err
	}
}

// Logout clears the persisted session and resets state. It performs no
// network call — the backend holds no revocable session for this client —
// and is safe to call when already signed out.
//
// Logout does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (c *Client) Logout(ctx context.Context) {
	if c == nil || c.gw == nil {
		return
	}

	c.sessionMu.Lock()
	defer c.sessionMu.Unlock()

	flows.RunLogout(ctx, flows.LogoutDeps{
		ClearAll: c.store.Clear,
		Warn:     c.warn,
	})

	c.metrics.Inc(MetricLogout)
	c.cache.Clear()
	c.setState(SessionUnauthenticated, nil)
	c.emitAudit(ctx, "logout", "", "", true, nil)
	c.notify(SessionEvent{Type: SessionEventLogout, State: SessionUnauthenticated})
}

// LoadSession restores a previously persisted session from the credential
// store without a network round-trip. A stored credential with missing or
// undecodable identity is treated as corrupt storage and cleared. An expired
// access token still rehydrates: the first request will run the refresh
// protocol.
//
// LoadSession may return an error when input validation, dependency calls, or security checks fail.
// LoadSession does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (c *Client) LoadSession(ctx context.Context) (*Identity, error) {
	if c == nil || c.gw == nil {
		return nil, ErrEngineNotReady
	}

	c.sessionMu.Lock()
	defer c.sessionMu.Unlock()

	c.setState(SessionLoading, nil)

	var restored *Identity

	result := flows.RunRehydrate(ctx, flows.RehydrateDeps{
		LoadCredential: func(ctx context.Context) (string, bool) {
			cred, ok := c.store.Get(ctx)
			return cred.AccessToken, ok
		},
		LoadIdentity: c.store.GetIdentity,
		DecodeIdentity: func(raw []byte) error {
			var ident Identity
			if err := json.Unmarshal(raw, &ident); err != nil {
				return err
			}
			restored = &ident
			return nil
		},
		ClearAll: c.store.Clear,
	})

	switch result.Outcome {
	case flows.RehydrateAuthenticated:
		c.metrics.Inc(MetricSessionRehydrated)
		c.setState(SessionAuthenticated, restored)
		c.emitAudit(ctx, "rehydrate", restored.Email, restored.ID, true, nil)
		c.notify(SessionEvent{Type: SessionEventRehydrated, State: SessionAuthenticated, Identity: restored})
		return restored, nil

	case flows.RehydrateCorrupt:
		c.setState(SessionUnauthenticated, nil)
		c.emitAudit(ctx, "rehydrate", "", "", false, result.Err)
		return nil, nil

	default:
		c.setState(SessionUnauthenticated, nil)
		return nil, nil
	}
}

// State returns the current session state.
//
// State does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (c *Client) State() SessionState {
	if c == nil {
		return SessionUnauthenticated
	}
	c.stateMu.RLock()
	defer c.stateMu.RUnlock()
	return c.state
}

// CurrentIdentity returns the identity of the signed-in moderator, or nil
// when unauthenticated.
//
// CurrentIdentity does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (c *Client) CurrentIdentity() *Identity {
	if c == nil {
		return nil
	}
	c.stateMu.RLock()
	defer c.stateMu.RUnlock()
	if c.identity == nil {
		return nil
	}
	ident := *c.identity
	return &ident
}

// Subscribe registers an observer for session lifecycle events and returns a
// cancel function. Events are delivered synchronously on the goroutine that
// triggered the transition; observers must not block.
//
// Subscribe does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (c *Client) Subscribe(fn func(SessionEvent)) func() {
	if c == nil || fn == nil {
		return func() {}
	}

	c.subMu.Lock()
	id := c.nextSub
	c.nextSub++
	c.subs[id] = fn
	c.subMu.Unlock()

	return func() {
		c.subMu.Lock()
		delete(c.subs, id)
		c.subMu.Unlock()
	}
}

func (c *Client) setState(state SessionState, ident *Identity) {
	c.stateMu.Lock()
	c.state = state
	c.identity = ident
	c.stateMu.Unlock()
}

func (c *Client) notify(event SessionEvent) {
	c.subMu.Lock()
	observers := make([]func(SessionEvent), 0, len(c.subs))
	for _, fn := range c.subs {
		observers = append(observers, fn)
	}
	c.subMu.Unlock()

	for _, fn := range observers {
		fn(event)
	}
}

// runRefresh is the gateway's refresh hook. Concurrent 401s collapse into a
// single token exchange: the refresh generation is captured before the lock,
// and a caller that finds it advanced rides the rotation another goroutine
// already completed.
func (c *Client) runRefresh(ctx context.Context) error {
	gen := c.refreshGen.Load()

	c.refreshMu.Lock()
	defer c.refreshMu.Unlock()

	if c.refreshGen.Load() != gen {
		return nil
	}

	result := flows.RunRefresh(ctx, flows.RefreshDeps{
		CurrentRefreshToken: func(ctx context.Context) (string, bool) {
			cred, ok := c.store.Get(ctx)
			return cred.RefreshToken, ok
		},
		CallRefresh: func(ctx context.Context, refreshToken string) (string, string, error) {
			var resp refreshResponse
			body := map[string]string{"refreshToken": refreshToken}
			if err := c.gw.bare(ctx, "POST", c.cfg.Auth.RefreshPath, body, &resp); err != nil {
				return "", "", err
			}
			access := resp.AccessToken
			rotated := resp.RefreshToken
			if rotated == "" {
				// deployment without refresh rotation keeps the old token
				rotated = refreshToken
			}
			return access, rotated, nil
		},
		PersistCredential: func(ctx context.Context, access, refresh string) error {
			return c.store.Set(ctx, credentialPair(access, refresh))
		},
		Warn: c.warn,
	})

	switch result.Failure {
	case flows.RefreshFailureNone:
		c.metrics.Inc(MetricRefreshSuccess)
		c.refreshGen.Add(1)
		return nil

	case flows.RefreshFailureNoToken:
		c.metrics.Inc(MetricRefreshFailure)
		return &APIError{Kind: ErrNoRefreshToken, Message: msgUnauthorized}

	case flows.RefreshFailurePersist:
		// the rotation itself succeeded; in-memory requests can proceed
		c.metrics.Inc(MetricRefreshSuccess)
		c.refreshGen.Add(1)
		return nil

	default:
		c.metrics.Inc(MetricRefreshFailure)
		return result.Err
	}
}

// forceInvalidate is the gateway's forced-logout hook, run when refresh fails
// or a replayed request comes back 401 again. It clears storage and cache,
// flips to unauthenticated, and notifies observers with a reason wrapping
// [ErrSessionInvalidated]. Idempotent under concurrent 401 storms.
func (c *Client) forceInvalidate(ctx context.Context, reason error) {
	c.sessionMu.Lock()
	defer c.sessionMu.Unlock()

	c.stateMu.RLock()
	alreadyOut := c.state == SessionUnauthenticated
	c.stateMu.RUnlock()
	if alreadyOut {
		return
	}

	if err := c.store.Clear(ctx); err != nil {
		c.warn("goAdmin: credential clear failed on invalidation")
	}
	c.cache.Clear()
	c.metrics.Inc(MetricSessionInvalidated)
	c.setState(SessionUnauthenticated, nil)
	c.emitAudit(ctx, "session_invalidated", "", "", false, reason)
	c.notify(SessionEvent{
		Type:   SessionEventInvalidated,
		State:  SessionUnauthenticated,
		Reason: &APIError{Kind: ErrSessionInvalidated, Message: msgUnauthorized, cause: reason},
	})
}

func (c *Client) warn(msg string, args ...any) {
	if c.logger != nil {
		c.logger.Warn(msg, args...)
	}
}

func (c *Client) emitAudit(ctx context.Context, eventType, email, userID string, success bool, opErr error) {
	if c.dispatcher == nil {
		return
	}
	event := internalaudit.Event{
		Timestamp: time.Now().UTC(),
		EventType: eventType,
		Email:     email,
		UserID:    userID,
		Success:   success,
	}
	if opErr != nil {
		event.Error = opErr.Error()
	}
	c.dispatcher.Emit(ctx, event)
}
