package goAdmin

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/AnonymousWall/goAdmin/credential"
	internalaudit "github.com/AnonymousWall/goAdmin/internal/audit"
)

// gateway is the single HTTP edge of the client. Every request to the
// moderation API goes through do, which attaches the bearer credential,
// normalizes failures into the error taxonomy, and on a 401 runs one refresh
// and replays the original request exactly once.
type gateway struct {
	client    *http.Client
	baseURL   string
	userAgent string
	store     credential.Store

	// refresh runs the refresh flow; nil disables the replay protocol
	// (used for the bare auth calls themselves).
	refresh func(ctx context.Context) error

	// invalidated is the session controller's forced-logout hook, called
	// when refresh fails or the replayed request still comes back 401.
	invalidated func(ctx context.Context, reason error)

	metrics *Metrics
	audit   func(ctx context.Context, event internalaudit.Event)
	logger  *slog.Logger
}

// errorBody is the `{error}` / `{message}` shape backends use for failures.
type errorBody struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

func (g *gateway) url(path string, query url.Values) string {
	u := strings.TrimRight(g.baseURL, "/") + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}
	return u
}

func (g *gateway) get(ctx context.Context, path string, query url.Values, out any) error {
	return g.do(ctx, http.MethodGet, path, query, nil, out)
}

func (g *gateway) post(ctx context.Context, path string, body, out any) error {
	return g.do(ctx, http.MethodPost, path, nil, body, out)
}

func (g *gateway) put(ctx context.Context, path string, body, out any) error {
	return g.do(ctx, http.MethodPut, path, nil, body, out)
}

func (g *gateway) patch(ctx context.Context, path string, body, out any) error {
	return g.do(ctx, http.MethodPatch, path, nil, body, out)
}

func (g *gateway) delete(ctx context.Context, path string, out any) error {
	return g.do(ctx, http.MethodDelete, path, nil, nil, out)
}

// do executes one authenticated request with the retry-once protocol:
// at most one refresh and one replay per call, tracked by a local flag so
// concurrent requests never share retry state. A 401 on the replayed request
// or a failed refresh forces session invalidation and propagates the 401.
func (g *gateway) do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	requestID := uuid.NewString()
	target := g.url(path, query)
	start := time.Now()

	retried := false
	for {
		status, payload, err := g.send(ctx, method, target, requestID, body, true)
		if err != nil {
			g.metrics.Inc(MetricRequestNetworkError)
			g.observe(start)
			g.emit(ctx, "request", requestID, path, false, err)
			return err
		}

		if status >= 200 && status < 300 {
			g.metrics.Inc(MetricRequestSuccess)
			g.observe(start)
			g.emit(ctx, "request", requestID, path, true, nil)
			if out != nil && len(payload) > 0 {
				if err := json.Unmarshal(payload, out); err != nil {
					return &APIError{Kind: ErrUnknown, Status: status, Message: msgUnknown, cause: err}
				}
			}
			return nil
		}

		apiErr := classifyStatus(status, extractMessage(payload))

		if status == http.StatusUnauthorized {
			g.metrics.Inc(MetricRequestUnauthorized)

			if !retried && g.refresh != nil {
				if rerr := g.refresh(ctx); rerr == nil {
					retried = true
					g.metrics.Inc(MetricRequestRetried)
					continue
				}
				g.forceInvalidate(ctx, apiErr)
				g.observe(start)
				g.emit(ctx, "request", requestID, path, false, apiErr)
				return apiErr
			}

			// replayed request still unauthorized: the rotated
			// credential is no good either
			g.forceInvalidate(ctx, apiErr)
		}

		g.observe(start)
		g.emit(ctx, "request", requestID, path, false, apiErr)
		return apiErr
	}
}

// bare executes one request without bearer attachment and without the retry
// protocol. The auth endpoints themselves go through here so a failing
// refresh can never recurse.
func (g *gateway) bare(ctx context.Context, method, path string, body, out any) error {
	requestID := uuid.NewString()

	status, payload, err := g.send(ctx, method, g.url(path, nil), requestID, body, false)
	if err != nil {
		return err
	}
	if status < 200 || status >= 300 {
		return classifyStatus(status, extractMessage(payload))
	}
	if out != nil && len(payload) > 0 {
		if err := json.Unmarshal(payload, out); err != nil {
			return &APIError{Kind: ErrUnknown, Status: status, Message: msgUnknown, cause: err}
		}
	}
	return nil
}

func (g *gateway) send(ctx context.Context, method, target, requestID string, body any, withAuth bool) (int, []byte, error) {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return 0, nil, &APIError{Kind: ErrUnknown, Message: msgUnknown, cause: err}
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, reader)
	if err != nil {
		return 0, nil, netError(err)
	}

	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", requestID)
	if g.userAgent != "" {
		req.Header.Set("User-Agent", g.userAgent)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if withAuth {
		// credential is read fresh per attempt so a replay after refresh
		// picks up the rotated token
		if cred, ok := g.store.Get(ctx); ok && cred.AccessToken != "" {
			req.Header.Set("Authorization", "Bearer "+cred.AccessToken)
		}
	}

	resp, err := g.client.Do(req)
	if err != nil {
		if g.logger != nil {
			g.logger.Warn("goAdmin: transport failure", "method", method, "request_id", requestID)
		}
		return 0, nil, netError(err)
	}
	defer resp.Body.Close()

	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, nil, netError(err)
	}
	return resp.StatusCode, payload, nil
}

func (g *gateway) forceInvalidate(ctx context.Context, reason error) {
	if g.invalidated != nil {
		g.invalidated(ctx, reason)
	}
}

func (g *gateway) observe(start time.Time) {
	g.metrics.Observe(MetricRequestLatency, time.Since(start))
}

func (g *gateway) emit(ctx context.Context, eventType, requestID, resource string, success bool, opErr error) {
	if g.audit == nil {
		return
	}
	event := internalaudit.Event{
		Timestamp: time.Now().UTC(),
		EventType: eventType,
		RequestID: requestID,
		Resource:  resource,
		Success:   success,
	}
	if opErr != nil {
		event.Error = opErr.Error()
	}
	g.audit(ctx, event)
}

// extractMessage pulls the human-readable failure out of a response body.
// The error field wins over message when both are present.
func extractMessage(payload []byte) string {
	if len(payload) == 0 {
		return ""
	}
	var body errorBody
	if err := json.Unmarshal(payload, &body); err != nil {
		return ""
	}
	if body.Error != "" {
		return body.Error
	}
	return body.Message
}
