package goAdmin

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
)

// cacheKey is the canonical identity of one query: path plus the encoded
// (and therefore sorted) parameters. Two calls with the same filters in a
// different order share an entry.
func cacheKey(path string, query url.Values) string {
	if len(query) == 0 {
		return path
	}
	return path + "?" + query.Encode()
}

func (c *Client) adminPath(sub string) string {
	return c.cfg.Gateway.AdminPrefix + sub
}

// ListQuery carries the pagination and filter parameters shared by every
// LIST operation. Zero fields are omitted from the request so the backend
// applies its own defaults.
type ListQuery struct {
	Page   int
	Limit  int
	Search string
	SortBy string
	Order  SortOrder
}

func (q ListQuery) values() url.Values {
	v := url.Values{}
	if q.Page > 0 {
		v.Set("page", strconv.Itoa(q.Page))
	}
	if q.Limit > 0 {
		v.Set("limit", strconv.Itoa(q.Limit))
	}
	if q.Search != "" {
		v.Set("search", q.Search)
	}
	if q.SortBy != "" {
		v.Set("sortBy", q.SortBy)
	}
	if q.Order != "" {
		v.Set("order", string(q.Order))
	}
	return v
}

// listResource fetches one page of a collection through the query cache.
func listResource[T any](c *Client, ctx context.Context, kind ResourceKind, path string, query url.Values) (Page[T], error) {
	if c == nil || c.gw == nil {
		return Page[T]{}, ErrEngineNotReady
	}
	return cacheDo(c.cache, ctx, kind, cacheKey(path, query), func(ctx context.Context) (Page[T], error) {
		var page Page[T]
		err := c.gw.get(ctx, path, query, &page)
		return page, err
	})
}

// getResource fetches one entity through the query cache.
func getResource[T any](c *Client, ctx context.Context, kind ResourceKind, path string) (T, error) {
	if c == nil || c.gw == nil {
		var zero T
		return zero, ErrEngineNotReady
	}
	return cacheDo(c.cache, ctx, kind, path, func(ctx context.Context) (T, error) {
		var out T
		err := c.gw.get(ctx, path, nil, &out)
		return out, err
	})
}

// action runs one moderation mutation and, on success, invalidates every
// affected resource kind so the next read observes the change.
func (c *Client) action(ctx context.Context, method, path string, body any, kinds ...ResourceKind) error {
	if c == nil || c.gw == nil {
		return ErrEngineNotReady
	}

	var resp actionResponse
	if err := c.gw.do(ctx, method, path, nil, body, &resp); err != nil {
		c.metrics.Inc(MetricMutationFailure)
		return err
	}

	c.metrics.Inc(MetricMutationSuccess)
	for _, kind := range kinds {
		c.cache.Invalidate(kind)
	}
	return nil
}

func (c *Client) put(ctx context.Context, path string, kinds ...ResourceKind) error {
	return c.action(ctx, http.MethodPut, path, nil, kinds...)
}

func (c *Client) del(ctx context.Context, path string, kinds ...ResourceKind) error {
	return c.action(ctx, http.MethodDelete, path, nil, kinds...)
}
