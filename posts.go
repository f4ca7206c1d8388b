package goAdmin

import (
	"context"
	"net/url"
	"strconv"
)

// PostListQuery filters the post collection. Hidden is a tri-state: nil
// returns both visible and hidden posts.
type PostListQuery struct {
	ListQuery
	UserID string
	Hidden *bool
}

func (q PostListQuery) values() url.Values {
	v := q.ListQuery.values()
	if q.UserID != "" {
		v.Set("userId", q.UserID)
	}
	if q.Hidden != nil {
		v.Set("hidden", strconv.FormatBool(*q.Hidden))
	}
	return v
}

// ListPosts returns one page of posts.
//
// ListPosts may return an error when input validation, dependency calls, or security checks fail.
// ListPosts does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (c *Client) ListPosts(ctx context.Context, query PostListQuery) (Page[Post], error) {
	return listResource[Post](c, ctx, KindPosts, c.adminPath("/posts"), query.values())
}

// GetPost returns one post by id.
//
// GetPost may return an error when input validation, dependency calls, or security checks fail.
// GetPost does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (c *Client) GetPost(ctx context.Context, postID string) (Post, error) {
	return getResource[Post](c, ctx, KindPosts, c.adminPath("/posts/"+url.PathEscape(postID)))
}

// HidePost hides a post from the public feed.
//
// HidePost may return an error when input validation, dependency calls, or security checks fail.
// HidePost does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (c *Client) HidePost(ctx context.Context, postID string) error {
	return c.put(ctx, c.adminPath("/posts/"+url.PathEscape(postID)+"/hide"), KindPosts, KindStats)
}

// UnhidePost restores a hidden post.
//
// UnhidePost may return an error when input validation, dependency calls, or security checks fail.
// UnhidePost does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (c *Client) UnhidePost(ctx context.Context, postID string) error {
	return c.put(ctx, c.adminPath("/posts/"+url.PathEscape(postID)+"/unhide"), KindPosts, KindStats)
}

// DeletePost soft-deletes a post. Comment and report queries are invalidated
// too since the backend cascades.
//
// DeletePost may return an error when input validation, dependency calls, or security checks fail.
// DeletePost does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (c *Client) DeletePost(ctx context.Context, postID string) error {
	return c.del(ctx, c.adminPath("/posts/"+url.PathEscape(postID)), KindPosts, KindComments, KindReports, KindStats)
}
