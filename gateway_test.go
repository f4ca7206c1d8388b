package goAdmin

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"testing"
	"time"
)

func TestGatewayAttachesBearer(t *testing.T) {
	api := newTestAPI(t)
	client, store := newTestClient(t, api, nil)
	mustLogin(t, client)

	cred, ok := store.Get(context.Background())
	if !ok || cred.AccessToken == "" {
		t.Fatalf("expected credential after login")
	}

	if _, err := client.ListUsers(context.Background(), UserListQuery{}); err != nil {
		t.Fatalf("list users failed: %v", err)
	}
	if got := api.count("GET /admin/users"); got != 1 {
		t.Fatalf("expected 1 users request, got %d", got)
	}
}

func TestGatewayNormalizesStatuses(t *testing.T) {
	api := newTestAPI(t)
	client, _ := newTestClient(t, api, func(cfg *Config) {
		cfg.Cache.Disabled = true
	})
	mustLogin(t, client)

	var notFound User
	err := client.gw.get(context.Background(), "/admin/missing", nil, &notFound)
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if !strings.Contains(err.Error(), "no such thing") {
		t.Fatalf("expected body message to win, got %q", err.Error())
	}

	err = client.gw.get(context.Background(), "/admin/broken", nil, &notFound)
	if !errors.Is(err, ErrServer) {
		t.Fatalf("expected ErrServer, got %v", err)
	}
	if !strings.Contains(err.Error(), "Server error") {
		t.Fatalf("expected default server message, got %q", err.Error())
	}
}

func TestGatewayNetworkErrors(t *testing.T) {
	api := newTestAPI(t)
	client, _ := newTestClient(t, api, nil)
	mustLogin(t, client)

	api.srv.Close()

	_, err := client.ListUsers(context.Background(), UserListQuery{})
	if !errors.Is(err, ErrNetwork) {
		t.Fatalf("expected ErrNetwork, got %v", err)
	}
}

func TestGatewayRefreshesAndReplaysOnce(t *testing.T) {
	api := newTestAPI(t)
	client, store := newTestClient(t, api, nil)
	mustLogin(t, client)

	before, _ := store.Get(context.Background())
	api.revokeAll()

	page, err := client.ListUsers(context.Background(), UserListQuery{})
	if err != nil {
		t.Fatalf("expected replay to succeed, got %v", err)
	}
	if len(page.Data) != 2 {
		t.Fatalf("expected 2 users, got %d", len(page.Data))
	}

	if got := api.count("POST /auth/refresh"); got != 1 {
		t.Fatalf("expected exactly 1 refresh call, got %d", got)
	}
	if got := api.count("GET /admin/users"); got != 2 {
		t.Fatalf("expected original plus one replay, got %d requests", got)
	}

	after, _ := store.Get(context.Background())
	if after.AccessToken == before.AccessToken {
		t.Fatalf("expected rotated access token")
	}
	if after.RefreshToken != "refresh-2" {
		t.Fatalf("expected rotated refresh token, got %q", after.RefreshToken)
	}
	if client.State() != SessionAuthenticated {
		t.Fatalf("session should stay authenticated across refresh")
	}
}

func TestGatewayRefreshFailureForcesLogout(t *testing.T) {
	api := newTestAPI(t)
	client, store := newTestClient(t, api, nil)
	mustLogin(t, client)

	var invalidated SessionEvent
	events := 0
	cancel := client.Subscribe(func(event SessionEvent) {
		if event.Type == SessionEventInvalidated {
			invalidated = event
			events++
		}
	})
	defer cancel()

	api.revokeAll()
	api.setRefreshFail(true)

	_, err := client.ListUsers(context.Background(), UserListQuery{})
	if !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}

	if client.State() != SessionUnauthenticated {
		t.Fatalf("expected forced logout")
	}
	if _, ok := store.Get(context.Background()); ok {
		t.Fatalf("expected credential cleared")
	}
	if events != 1 {
		t.Fatalf("expected one invalidation event, got %d", events)
	}
	if !errors.Is(invalidated.Reason, ErrSessionInvalidated) {
		t.Fatalf("expected reason wrapping ErrSessionInvalidated, got %v", invalidated.Reason)
	}
}

func TestGatewaySecondUnauthorizedAfterRefreshForcesLogout(t *testing.T) {
	api := newTestAPI(t)
	client, store := newTestClient(t, api, nil)
	mustLogin(t, client)

	invalidations := 0
	cancel := client.Subscribe(func(event SessionEvent) {
		if event.Type == SessionEventInvalidated {
			invalidations++
		}
	})
	defer cancel()

	// rotation succeeds but the backend rejects the new token too, the shape
	// of a blocked moderator account: one refresh, one replay, then out
	api.setAdminRejects(true)

	_, err := client.ListUsers(context.Background(), UserListQuery{})
	if !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}

	if got := api.count("POST /auth/refresh"); got != 1 {
		t.Fatalf("expected exactly 1 refresh, got %d", got)
	}
	if got := api.count("GET /admin/users"); got != 2 {
		t.Fatalf("expected original plus one replay, got %d requests", got)
	}
	if client.State() != SessionUnauthenticated {
		t.Fatalf("expected forced logout after second 401")
	}
	if _, ok := store.Get(context.Background()); ok {
		t.Fatalf("expected credential cleared")
	}
	if invalidations != 1 {
		t.Fatalf("expected one invalidation event, got %d", invalidations)
	}
}

func TestGatewayConcurrent401sRefreshOnce(t *testing.T) {
	api := newTestAPI(t)
	client, _ := newTestClient(t, api, func(cfg *Config) {
		cfg.Cache.Disabled = true
	})
	mustLogin(t, client)

	api.revokeAll()

	const workers = 8
	errs := make(chan error, workers)
	for i := 0; i < workers; i++ {
		go func() {
			_, err := client.ListUsers(context.Background(), UserListQuery{})
			errs <- err
		}()
	}
	for i := 0; i < workers; i++ {
		if err := <-errs; err != nil {
			t.Fatalf("worker failed: %v", err)
		}
	}

	// the refresh generation collapses the storm; anything near the worker
	// count means the single-flight guard is broken
	if got := api.count("POST /auth/refresh"); got > 2 {
		t.Fatalf("expected collapsed refresh calls, got %d", got)
	}
}

func TestGatewayHonorsContextTimeout(t *testing.T) {
	api := newTestAPI(t)
	client, _ := newTestClient(t, api, nil)
	mustLogin(t, client)

	ctx, cancel := context.WithTimeout(context.Background(), time.Nanosecond)
	defer cancel()
	time.Sleep(time.Millisecond)

	_, err := client.ListUsers(ctx, UserListQuery{})
	if !errors.Is(err, ErrNetwork) {
		t.Fatalf("expected ErrNetwork on timeout, got %v", err)
	}
}

func TestGatewayRequestIDAndUserAgent(t *testing.T) {
	api := newTestAPI(t)

	var requestID, userAgent string
	orig := api.srv.Config.Handler
	api.srv.Config.Handler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/admin/users" {
			requestID = r.Header.Get("X-Request-ID")
			userAgent = r.Header.Get("User-Agent")
		}
		orig.ServeHTTP(w, r)
	})

	client, _ := newTestClient(t, api, nil)
	mustLogin(t, client)

	if _, err := client.ListUsers(context.Background(), UserListQuery{}); err != nil {
		t.Fatalf("list users failed: %v", err)
	}
	if requestID == "" {
		t.Fatalf("expected X-Request-ID header")
	}
	if userAgent != "goAdmin" {
		t.Fatalf("expected goAdmin user agent, got %q", userAgent)
	}
}
