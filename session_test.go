package goAdmin

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/AnonymousWall/goAdmin/credential"
)

func TestLoginHappyPath(t *testing.T) {
	api := newTestAPI(t)
	client, store := newTestClient(t, api, nil)

	var loginEvent *SessionEvent
	cancel := client.Subscribe(func(event SessionEvent) {
		if event.Type == SessionEventLogin {
			e := event
			loginEvent = &e
		}
	})
	defer cancel()

	identity := mustLogin(t, client)

	if identity.Email != "mod@example.edu" {
		t.Fatalf("unexpected identity email %q", identity.Email)
	}
	if identity.Role != RoleModerator {
		t.Fatalf("expected role merged from token claims, got %q", identity.Role)
	}
	if client.State() != SessionAuthenticated {
		t.Fatalf("expected authenticated state")
	}
	if loginEvent == nil || loginEvent.Identity == nil {
		t.Fatalf("expected login event with identity")
	}

	cred, ok := store.Get(context.Background())
	if !ok || cred.RefreshToken != "refresh-1" {
		t.Fatalf("expected persisted credential, got %+v ok=%v", cred, ok)
	}
	raw, ok := store.GetIdentity(context.Background())
	if !ok || len(raw) == 0 {
		t.Fatalf("expected persisted identity")
	}
}

func TestLoginRoleGateDeniesUser(t *testing.T) {
	api := newTestAPI(t)
	client, store := newTestClient(t, api, nil)

	_, err := client.Login(context.Background(), "user@example.edu", "password")
	if !errors.Is(err, ErrRoleNotAllowed) {
		t.Fatalf("expected ErrRoleNotAllowed, got %v", err)
	}
	if client.State() != SessionUnauthenticated {
		t.Fatalf("expected unauthenticated state after role denial")
	}
	if _, ok := store.Get(context.Background()); ok {
		t.Fatalf("denied login must not persist a credential")
	}
	if _, ok := store.GetIdentity(context.Background()); ok {
		t.Fatalf("denied login must not persist an identity")
	}
}

func TestLoginInvalidCredentials(t *testing.T) {
	api := newTestAPI(t)
	api.loginStatus = http.StatusUnauthorized
	client, _ := newTestClient(t, api, nil)

	_, err := client.Login(context.Background(), "mod@example.edu", "wrong")
	if !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
	if client.State() != SessionUnauthenticated {
		t.Fatalf("expected unauthenticated state")
	}
}

// brokenIdentityStore accepts the credential but fails the identity write,
// the shape of a disk filling up mid-login.
type brokenIdentityStore struct {
	*credential.MemoryStore
}

func (s *brokenIdentityStore) SetIdentity(ctx context.Context, raw []byte) error {
	return errors.New("disk full")
}

func TestLoginIdentityPersistFailureClearsCredential(t *testing.T) {
	api := newTestAPI(t)

	cfg := DefaultConfig()
	cfg.Gateway.BaseURL = api.srv.URL
	store := &brokenIdentityStore{MemoryStore: credential.NewMemoryStore()}
	client, err := New().WithConfig(cfg).WithCredentialStore(store).Build()
	if err != nil {
		t.Fatalf("build client: %v", err)
	}
	defer client.Close()

	_, err = client.Login(context.Background(), "mod@example.edu", "password")
	if err == nil {
		t.Fatalf("expected login failure")
	}
	if client.State() != SessionUnauthenticated {
		t.Fatalf("expected unauthenticated state")
	}
	if _, ok := store.Get(context.Background()); ok {
		t.Fatalf("credential must not outlive a failed login")
	}
}

func TestLogoutIsLocalAndIdempotent(t *testing.T) {
	api := newTestAPI(t)
	client, store := newTestClient(t, api, nil)
	mustLogin(t, client)

	logouts := 0
	cancel := client.Subscribe(func(event SessionEvent) {
		if event.Type == SessionEventLogout {
			logouts++
		}
	})
	defer cancel()

	client.Logout(context.Background())
	client.Logout(context.Background())

	if client.State() != SessionUnauthenticated {
		t.Fatalf("expected unauthenticated after logout")
	}
	if _, ok := store.Get(context.Background()); ok {
		t.Fatalf("expected credential cleared")
	}
	if client.CurrentIdentity() != nil {
		t.Fatalf("expected no identity after logout")
	}
	if logouts != 2 {
		t.Fatalf("expected an event per logout call, got %d", logouts)
	}
	if got := api.count("POST /auth/logout"); got != 0 {
		t.Fatalf("logout must not call the network, got %d requests", got)
	}
}

func TestLoadSessionRehydrates(t *testing.T) {
	api := newTestAPI(t)
	client, store := newTestClient(t, api, nil)
	mustLogin(t, client)

	// a second client sharing the store picks up the session without login
	cfg := DefaultConfig()
	cfg.Gateway.BaseURL = api.srv.URL
	fresh, err := New().WithConfig(cfg).WithCredentialStore(store).Build()
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	defer fresh.Close()

	rehydrated := false
	cancel := fresh.Subscribe(func(event SessionEvent) {
		if event.Type == SessionEventRehydrated {
			rehydrated = true
		}
	})
	defer cancel()

	identity, err := fresh.LoadSession(context.Background())
	if err != nil {
		t.Fatalf("load session: %v", err)
	}
	if identity == nil || identity.Email != "mod@example.edu" {
		t.Fatalf("expected restored identity, got %+v", identity)
	}
	if fresh.State() != SessionAuthenticated {
		t.Fatalf("expected authenticated state")
	}
	if !rehydrated {
		t.Fatalf("expected rehydrated event")
	}
	if got := api.count("POST /auth/login/password"); got != 1 {
		t.Fatalf("rehydrate must not log in again, got %d login calls", got)
	}
}

func TestLoadSessionEmptyStore(t *testing.T) {
	api := newTestAPI(t)
	client, _ := newTestClient(t, api, nil)

	identity, err := client.LoadSession(context.Background())
	if err != nil {
		t.Fatalf("load session: %v", err)
	}
	if identity != nil {
		t.Fatalf("expected nil identity from empty store")
	}
	if client.State() != SessionUnauthenticated {
		t.Fatalf("expected unauthenticated state")
	}
}

func TestLoadSessionCorruptIdentityClearsStore(t *testing.T) {
	api := newTestAPI(t)
	client, store := newTestClient(t, api, nil)
	mustLogin(t, client)

	if err := store.SetIdentity(context.Background(), []byte("{not json")); err != nil {
		t.Fatalf("seed corrupt identity: %v", err)
	}

	identity, err := client.LoadSession(context.Background())
	if err != nil {
		t.Fatalf("load session: %v", err)
	}
	if identity != nil {
		t.Fatalf("corrupt storage must rehydrate to signed out")
	}
	if _, ok := store.Get(context.Background()); ok {
		t.Fatalf("expected corrupt store cleared")
	}
}

func TestSubscribeCancelStopsDelivery(t *testing.T) {
	api := newTestAPI(t)
	client, _ := newTestClient(t, api, nil)

	seen := 0
	cancel := client.Subscribe(func(SessionEvent) { seen++ })

	mustLogin(t, client)
	if seen != 1 {
		t.Fatalf("expected one event before cancel, got %d", seen)
	}

	cancel()
	client.Logout(context.Background())
	if seen != 1 {
		t.Fatalf("expected no delivery after cancel, got %d", seen)
	}
}
