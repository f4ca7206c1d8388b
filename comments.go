package goAdmin

import (
	"context"
	"net/url"
	"strconv"
)

// CommentListQuery filters the comment collection.
type CommentListQuery struct {
	ListQuery
	Hidden *bool
}

func (q CommentListQuery) values() url.Values {
	v := q.ListQuery.values()
	if q.Hidden != nil {
		v.Set("hidden", strconv.FormatBool(*q.Hidden))
	}
	return v
}

// ListComments returns one page of comments.
//
// ListComments may return an error when input validation, dependency calls, or security checks fail.
// ListComments does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (c *Client) ListComments(ctx context.Context, query CommentListQuery) (Page[Comment], error) {
	return listResource[Comment](c, ctx, KindComments, c.adminPath("/comments"), query.values())
}

// GetComment returns one comment by id.
//
// GetComment may return an error when input validation, dependency calls, or security checks fail.
// GetComment does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (c *Client) GetComment(ctx context.Context, commentID string) (Comment, error) {
	return getResource[Comment](c, ctx, KindComments, c.adminPath("/comments/"+url.PathEscape(commentID)))
}

// HideComment hides a comment.
//
// HideComment may return an error when input validation, dependency calls, or security checks fail.
// HideComment does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (c *Client) HideComment(ctx context.Context, commentID string) error {
	return c.put(ctx, c.adminPath("/comments/"+url.PathEscape(commentID)+"/hide"), KindComments, KindStats)
}

// UnhideComment restores a hidden comment.
//
// UnhideComment may return an error when input validation, dependency calls, or security checks fail.
// UnhideComment does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (c *Client) UnhideComment(ctx context.Context, commentID string) error {
	return c.put(ctx, c.adminPath("/comments/"+url.PathEscape(commentID)+"/unhide"), KindComments, KindStats)
}

// DeleteComment soft-deletes a comment.
//
// DeleteComment may return an error when input validation, dependency calls, or security checks fail.
// DeleteComment does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (c *Client) DeleteComment(ctx context.Context, commentID string) error {
	return c.del(ctx, c.adminPath("/comments/"+url.PathEscape(commentID)), KindComments, KindReports, KindStats)
}
