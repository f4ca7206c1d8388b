package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"math/rand"
	"net"
	"net/http"
	"os"
	"sort"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	goAdmin "github.com/AnonymousWall/goAdmin"
	"github.com/golang-jwt/jwt/v5"
)

type mockUser struct {
	ID          string `json:"id"`
	Email       string `json:"email"`
	ProfileName string `json:"profileName"`
	Blocked     bool   `json:"blocked"`
}

// mockAPI is a minimal in-process rendition of the moderation backend, just
// enough surface for the load phases: login, refresh, user listing, block.
type mockAPI struct {
	mu     sync.RWMutex
	users  []mockUser
	secret []byte
}

func (m *mockAPI) token(role string, ttl time.Duration) string {
	claims := jwt.MapClaims{
		"role":  role,
		"email": "loadtest@example.edu",
		"exp":   time.Now().Add(ttl).Unix(),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
	if err != nil {
		panic(err)
	}
	return signed
}

func (m *mockAPI) handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("/api/v1/auth/login/password", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{
			"user":         map[string]any{"id": "admin-1", "email": "loadtest@example.edu", "profileName": "loadtest"},
			"accessToken":  m.token("ADMIN", time.Hour),
			"refreshToken": "refresh-seed",
		})
	})

	mux.HandleFunc("/api/v1/auth/refresh", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{
			"accessToken":  m.token("ADMIN", time.Hour),
			"refreshToken": "refresh-rotated",
		})
	})

	mux.HandleFunc("/api/v1/admin/users", func(w http.ResponseWriter, r *http.Request) {
		page, _ := strconv.Atoi(r.URL.Query().Get("page"))
		limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
		if page < 1 {
			page = 1
		}
		if limit < 1 {
			limit = 20
		}

		m.mu.RLock()
		total := len(m.users)
		lo := (page - 1) * limit
		hi := lo + limit
		if lo > total {
			lo = total
		}
		if hi > total {
			hi = total
		}
		data := append([]mockUser(nil), m.users[lo:hi]...)
		m.mu.RUnlock()

		writeJSON(w, http.StatusOK, map[string]any{
			"data": data,
			"pagination": map[string]any{
				"page": page, "limit": limit, "total": total,
				"totalPages": (total + limit - 1) / limit,
			},
		})
	})

	mux.HandleFunc("/api/v1/admin/users/", func(w http.ResponseWriter, r *http.Request) {
		rest := strings.TrimPrefix(r.URL.Path, "/api/v1/admin/users/")
		parts := strings.Split(rest, "/")
		if len(parts) == 2 && (parts[1] == "block" || parts[1] == "unblock") {
			m.mu.Lock()
			for i := range m.users {
				if m.users[i].ID == parts[0] {
					m.users[i].Blocked = parts[1] == "block"
				}
			}
			m.mu.Unlock()
			writeJSON(w, http.StatusOK, map[string]any{"message": "ok"})
			return
		}
		http.NotFound(w, r)
	})

	return mux
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func main() {
	var (
		users       = flag.Int("users", 10000, "number of users to seed")
		concurrency = flag.Int("concurrency", 64, "number of concurrent workers")
		ops         = flag.Int("ops", 50000, "operations per phase (list + mutate)")
	)
	flag.Parse()

	if *users <= 0 || *concurrency <= 0 || *ops <= 0 {
		fmt.Fprintln(os.Stderr, "users, concurrency, and ops must be > 0")
		os.Exit(2)
	}

	ctx := context.Background()

	api := &mockAPI{secret: []byte("loadtest-secret")}
	fmt.Printf("seeding %d users...\n", *users)
	for i := 0; i < *users; i++ {
		api.users = append(api.users, mockUser{
			ID:          fmt.Sprintf("user-%d", i),
			Email:       fmt.Sprintf("user-%d@example.edu", i),
			ProfileName: fmt.Sprintf("user %d", i),
		})
	}

	listener, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		fmt.Fprintf(os.Stderr, "listen failed: %v\n", err)
		os.Exit(1)
	}
	server := &http.Server{Handler: api.handler()}
	go func() { _ = server.Serve(listener) }()
	defer server.Close()

	baseURL := "http://" + listener.Addr().String() + "/api/v1"
	fmt.Printf("mock moderation API at %s\n", baseURL)

	client, err := goAdmin.New().WithBaseURL(baseURL).Build()
	if err != nil {
		fmt.Fprintf(os.Stderr, "build failed: %v\n", err)
		os.Exit(1)
	}
	defer client.Close()

	if _, err := client.Login(ctx, "loadtest@example.edu", "password"); err != nil {
		fmt.Fprintf(os.Stderr, "login failed: %v\n", err)
		os.Exit(1)
	}

	listStats := runPhase(*ops, *concurrency, func(r *rand.Rand) error {
		_, err := client.ListUsers(ctx, goAdmin.UserListQuery{
			ListQuery: goAdmin.ListQuery{Page: 1 + r.Intn(*users/20+1), Limit: 20},
		})
		return err
	})

	mutateStats := runPhase(*ops, *concurrency, func(r *rand.Rand) error {
		id := fmt.Sprintf("user-%d", r.Intn(*users))
		if r.Intn(2) == 0 {
			return client.BlockUser(ctx, id)
		}
		return client.UnblockUser(ctx, id)
	})

	fmt.Println("---- results ----")
	printStats("list", listStats)
	printStats("mutate", mutateStats)

	snapshot := client.MetricsSnapshot()
	fmt.Printf("cache hits=%d misses=%d invalidations=%d\n",
		snapshot.Counters[goAdmin.MetricCacheHit],
		snapshot.Counters[goAdmin.MetricCacheMiss],
		snapshot.Counters[goAdmin.MetricCacheInvalidation],
	)
}

func runPhase(ops, concurrency int, op func(r *rand.Rand) error) phaseStats {
	var (
		wg        sync.WaitGroup
		cursor    int64
		failures  int64
		latencies = make([]time.Duration, 0, ops)
		mu        sync.Mutex
	)

	start := time.Now()
	for w := 0; w < concurrency; w++ {
		wg.Add(1)
		go func(worker int) {
			defer wg.Done()
			r := rand.New(rand.NewSource(time.Now().UnixNano() + int64(worker)*7919))
			for {
				i := int(atomic.AddInt64(&cursor, 1)) - 1
				if i >= ops {
					return
				}
				t0 := time.Now()
				err := op(r)
				d := time.Since(t0)
				if err != nil {
					atomic.AddInt64(&failures, 1)
				}
				mu.Lock()
				latencies = append(latencies, d)
				mu.Unlock()
			}
		}(w)
	}
	wg.Wait()
	total := time.Since(start)
	return computeStats(total, latencies, failures)
}

type phaseStats struct {
	total    time.Duration
	ops      int
	failures int64
	p50      time.Duration
	p95      time.Duration
	p99      time.Duration
	opsPerS  float64
}

func computeStats(total time.Duration, samples []time.Duration, failures int64) phaseStats {
	if len(samples) == 0 {
		return phaseStats{total: total}
	}
	sort.Slice(samples, func(i, j int) bool { return samples[i] < samples[j] })
	return phaseStats{
		total:    total,
		ops:      len(samples),
		failures: failures,
		p50:      samples[len(samples)*50/100],
		p95:      samples[len(samples)*95/100],
		p99:      samples[len(samples)*99/100],
		opsPerS:  float64(len(samples)) / total.Seconds(),
	}
}

func printStats(name string, s phaseStats) {
	fmt.Printf(
		"%s: ops=%d failures=%d total=%s ops/s=%.0f p50=%s p95=%s p99=%s\n",
		name, s.ops, s.failures, s.total.Round(time.Millisecond), s.opsPerS,
		s.p50, s.p95, s.p99,
	)
}
