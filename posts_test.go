package goAdmin

import (
	"context"
	"testing"
)

func TestHidePostPropagatesThroughInvalidation(t *testing.T) {
	api := newTestAPI(t)
	client, _ := newTestClient(t, api, nil)
	mustLogin(t, client)

	page, err := client.ListPosts(context.Background(), PostListQuery{})
	if err != nil {
		t.Fatalf("list posts: %v", err)
	}
	if page.Data[0].Hidden {
		t.Fatalf("expected post visible before hide")
	}

	if err := client.HidePost(context.Background(), "p1"); err != nil {
		t.Fatalf("hide post: %v", err)
	}
	if got := api.count("PUT /admin/posts/p1/hide"); got != 1 {
		t.Fatalf("expected hide call, got %d", got)
	}

	page, err = client.ListPosts(context.Background(), PostListQuery{})
	if err != nil {
		t.Fatalf("list posts after hide: %v", err)
	}
	if got := api.count("GET /admin/posts"); got != 2 {
		t.Fatalf("hide must invalidate the cached list, got %d fetches", got)
	}
	if !page.Data[0].Hidden {
		t.Fatalf("expected refetched post hidden")
	}

	if err := client.UnhidePost(context.Background(), "p1"); err != nil {
		t.Fatalf("unhide post: %v", err)
	}
	page, err = client.ListPosts(context.Background(), PostListQuery{})
	if err != nil {
		t.Fatalf("list posts after unhide: %v", err)
	}
	if page.Data[0].Hidden {
		t.Fatalf("expected post visible again after unhide")
	}
}

func TestHideEndpointsTargetEntityPaths(t *testing.T) {
	api := newTestAPI(t)
	client, _ := newTestClient(t, api, nil)
	mustLogin(t, client)

	ctx := context.Background()
	calls := []struct {
		op   func() error
		path string
	}{
		{func() error { return client.HideComment(ctx, "c1") }, "PUT /admin/comments/c1/hide"},
		{func() error { return client.UnhideComment(ctx, "c1") }, "PUT /admin/comments/c1/unhide"},
		{func() error { return client.HideInternship(ctx, "i1") }, "PUT /admin/internships/i1/hide"},
		{func() error { return client.UnhideInternship(ctx, "i1") }, "PUT /admin/internships/i1/unhide"},
		{func() error { return client.HideMarketplaceItem(ctx, "m1") }, "PUT /admin/marketplaces/m1/hide"},
		{func() error { return client.UnhideMarketplaceItem(ctx, "m1") }, "PUT /admin/marketplaces/m1/unhide"},
	}

	for _, call := range calls {
		if err := call.op(); err != nil {
			t.Fatalf("%s: %v", call.path, err)
		}
		if got := api.count(call.path); got != 1 {
			t.Fatalf("expected one call to %s, got %d", call.path, got)
		}
	}
}
