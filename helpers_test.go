package goAdmin

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/AnonymousWall/goAdmin/credential"
)

// testAPI is an in-process moderation backend. Tokens issued by login and
// refresh are tracked in validTokens; revokeAll expires every outstanding
// token so the next authenticated request draws a 401.
type testAPI struct {
	t *testing.T

	mu           sync.Mutex
	counts       map[string]int
	validTokens  map[string]bool
	loginStatus  int
	refreshFail  bool
	adminRejects bool
	hiddenPosts  map[string]bool
	issued       int

	srv *httptest.Server
}

func newTestAPI(t *testing.T) *testAPI {
	t.Helper()

	api := &testAPI{
		t:           t,
		counts:      make(map[string]int),
		validTokens: make(map[string]bool),
		hiddenPosts: make(map[string]bool),
		loginStatus: http.StatusOK,
	}
	api.srv = httptest.NewServer(http.HandlerFunc(api.handle))
	t.Cleanup(api.srv.Close)
	return api
}

func (a *testAPI) issue(role string) string {
	a.issued++
	claims := jwt.MapClaims{
		"role":  role,
		"email": "mod@example.edu",
		"exp":   time.Now().Add(time.Hour).Unix(),
		"jti":   strconv.Itoa(a.issued),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	if err != nil {
		a.t.Fatalf("sign token: %v", err)
	}
	a.validTokens[token] = true
	return token
}

func (a *testAPI) revokeAll() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.validTokens = make(map[string]bool)
}

func (a *testAPI) setRefreshFail(fail bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.refreshFail = fail
}

// setAdminRejects makes every /admin request 401 even with a freshly rotated
// token, the shape of a server-side account lockout.
func (a *testAPI) setAdminRejects(reject bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.adminRejects = reject
}

func (a *testAPI) count(key string) int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.counts[key]
}

func (a *testAPI) handle(w http.ResponseWriter, r *http.Request) {
	a.mu.Lock()
	a.counts[r.Method+" "+r.URL.Path]++
	a.mu.Unlock()

	switch {
	case r.Method == http.MethodPost && r.URL.Path == "/auth/login/password":
		a.mu.Lock()
		status := a.loginStatus
		var token string
		if status == http.StatusOK {
			token = a.issue(roleFor(r))
		}
		a.mu.Unlock()

		if status != http.StatusOK {
			writeTestJSON(w, status, map[string]string{"error": "invalid credentials"})
			return
		}
		writeTestJSON(w, http.StatusOK, map[string]any{
			"user": map[string]any{
				"id": "mod-1", "email": "mod@example.edu", "profileName": "mod",
				"verified": true,
			},
			"accessToken":  token,
			"refreshToken": "refresh-1",
		})

	case r.Method == http.MethodPost && r.URL.Path == "/auth/refresh":
		a.mu.Lock()
		fail := a.refreshFail
		var token string
		if !fail {
			token = a.issue("MODERATOR")
		}
		a.mu.Unlock()

		if fail {
			writeTestJSON(w, http.StatusUnauthorized, map[string]string{"error": "refresh token expired"})
			return
		}
		writeTestJSON(w, http.StatusOK, map[string]any{
			"accessToken":  token,
			"refreshToken": "refresh-2",
		})

	default:
		a.handleAdmin(w, r)
	}
}

func (a *testAPI) handleAdmin(w http.ResponseWriter, r *http.Request) {
	bearer := strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer ")
	a.mu.Lock()
	ok := bearer != "" && a.validTokens[bearer] && !a.adminRejects
	a.mu.Unlock()
	if !ok {
		writeTestJSON(w, http.StatusUnauthorized, map[string]string{"error": "token expired"})
		return
	}

	switch {
	case r.Method == http.MethodGet && r.URL.Path == "/admin/users":
		writeTestJSON(w, http.StatusOK, map[string]any{
			"data": []map[string]any{
				{"id": "u1", "email": "a@example.edu", "profileName": "a"},
				{"id": "u2", "email": "b@example.edu", "profileName": "b", "blocked": true},
			},
			"pagination": map[string]int{"page": 1, "limit": 20, "total": 2, "totalPages": 1},
		})

	case r.Method == http.MethodGet && r.URL.Path == "/admin/posts":
		a.mu.Lock()
		hidden := a.hiddenPosts["p1"]
		a.mu.Unlock()
		writeTestJSON(w, http.StatusOK, map[string]any{
			"data": []map[string]any{
				{"id": "p1", "userId": "u1", "title": "hello", "content": "world", "hidden": hidden},
			},
			"pagination": map[string]int{"page": 1, "limit": 20, "total": 1, "totalPages": 1},
		})

	case r.Method == http.MethodGet && r.URL.Path == "/admin/reports":
		writeTestJSON(w, http.StatusOK, map[string]any{
			"postReports": []map[string]any{
				{"id": "r1", "postId": "p1", "reason": "spam", "status": "PENDING"},
			},
			"commentReports": []map[string]any{
				{"id": "r2", "commentId": "c1", "reason": "abuse", "status": "PENDING"},
			},
			"pagination": map[string]int{"page": 1, "limit": 20, "total": 2, "totalPages": 1},
		})

	case r.Method == http.MethodGet && r.URL.Path == "/admin/missing":
		writeTestJSON(w, http.StatusNotFound, map[string]string{"error": "no such thing"})

	case r.Method == http.MethodGet && r.URL.Path == "/admin/broken":
		writeTestJSON(w, http.StatusInternalServerError, map[string]string{})

	case r.Method == http.MethodPut && strings.HasPrefix(r.URL.Path, "/admin/posts/") && strings.HasSuffix(r.URL.Path, "/hide"):
		id := strings.TrimSuffix(strings.TrimPrefix(r.URL.Path, "/admin/posts/"), "/hide")
		a.mu.Lock()
		a.hiddenPosts[id] = true
		a.mu.Unlock()
		writeTestJSON(w, http.StatusOK, map[string]string{"message": "ok"})

	case r.Method == http.MethodPut && strings.HasPrefix(r.URL.Path, "/admin/posts/") && strings.HasSuffix(r.URL.Path, "/unhide"):
		id := strings.TrimSuffix(strings.TrimPrefix(r.URL.Path, "/admin/posts/"), "/unhide")
		a.mu.Lock()
		a.hiddenPosts[id] = false
		a.mu.Unlock()
		writeTestJSON(w, http.StatusOK, map[string]string{"message": "ok"})

	case r.Method == http.MethodPut, r.Method == http.MethodDelete, r.Method == http.MethodPost:
		writeTestJSON(w, http.StatusOK, map[string]string{"message": "ok"})

	default:
		writeTestJSON(w, http.StatusNotFound, map[string]string{"error": "not found"})
	}
}

func roleFor(r *http.Request) string {
	var body struct {
		Email string `json:"email"`
	}
	_ = json.NewDecoder(r.Body).Decode(&body)
	if strings.HasPrefix(body.Email, "user") {
		return "USER"
	}
	return "MODERATOR"
}

func writeTestJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func newTestClient(t *testing.T, api *testAPI, mutate func(*Config)) (*Client, *credential.MemoryStore) {
	t.Helper()

	cfg := DefaultConfig()
	cfg.Gateway.BaseURL = api.srv.URL
	if mutate != nil {
		mutate(&cfg)
	}

	store := credential.NewMemoryStore()
	client, err := New().
		WithConfig(cfg).
		WithCredentialStore(store).
		Build()
	if err != nil {
		t.Fatalf("build client: %v", err)
	}
	t.Cleanup(client.Close)
	return client, store
}

func mustLogin(t *testing.T, client *Client) *Identity {
	t.Helper()
	identity, err := client.Login(context.Background(), "mod@example.edu", "password")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	return identity
}
