package goAdmin

import (
	"context"
	"net/url"
	"strconv"
)

// UserListQuery filters the user collection. Blocked is a tri-state: nil
// means both blocked and unblocked users.
type UserListQuery struct {
	ListQuery
	Blocked *bool
}

func (q UserListQuery) values() url.Values {
	v := q.ListQuery.values()
	if q.Blocked != nil {
		v.Set("blocked", strconv.FormatBool(*q.Blocked))
	}
	return v
}

// ListUsers returns one page of users.
//
// ListUsers may return an error when input validation, dependency calls, or security checks fail.
// ListUsers does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (c *Client) ListUsers(ctx context.Context, query UserListQuery) (Page[User], error) {
	return listResource[User](c, ctx, KindUsers, c.adminPath("/users"), query.values())
}

// GetUser returns one user by id.
//
// GetUser may return an error when input validation, dependency calls, or security checks fail.
// GetUser does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (c *Client) GetUser(ctx context.Context, userID string) (User, error) {
	return getResource[User](c, ctx, KindUsers, c.adminPath("/users/"+url.PathEscape(userID)))
}

// BlockUser blocks a user. All cached user queries and the dashboard stats
// are invalidated on success.
//
// BlockUser may return an error when input validation, dependency calls, or security checks fail.
// BlockUser does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (c *Client) BlockUser(ctx context.Context, userID string) error {
	return c.put(ctx, c.adminPath("/users/"+url.PathEscape(userID)+"/block"), KindUsers, KindStats)
}

// UnblockUser lifts a user's block.
//
// UnblockUser may return an error when input validation, dependency calls, or security checks fail.
// UnblockUser does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (c *Client) UnblockUser(ctx context.Context, userID string) error {
	return c.put(ctx, c.adminPath("/users/"+url.PathEscape(userID)+"/unblock"), KindUsers, KindStats)
}

// ListUserPosts returns one page of a single user's posts. Entries live
// under the posts kind so a post mutation invalidates them too.
//
// ListUserPosts may return an error when input validation, dependency calls, or security checks fail.
// ListUserPosts does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (c *Client) ListUserPosts(ctx context.Context, userID string, query ListQuery) (Page[Post], error) {
	return listResource[Post](c, ctx, KindPosts, c.adminPath("/users/"+url.PathEscape(userID)+"/posts"), query.values())
}

// ListUserComments returns one page of a single user's comments.
//
// ListUserComments may return an error when input validation, dependency calls, or security checks fail.
// ListUserComments does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (c *Client) ListUserComments(ctx context.Context, userID string, query ListQuery) (Page[Comment], error) {
	return listResource[Comment](c, ctx, KindComments, c.adminPath("/users/"+url.PathEscape(userID)+"/comments"), query.values())
}

// ListUserInternships returns one page of a single user's internship listings.
//
// ListUserInternships may return an error when input validation, dependency calls, or security checks fail.
// ListUserInternships does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (c *Client) ListUserInternships(ctx context.Context, userID string, query ListQuery) (Page[Internship], error) {
	return listResource[Internship](c, ctx, KindInternships, c.adminPath("/users/"+url.PathEscape(userID)+"/internships"), query.values())
}

// ListUserMarketplaceItems returns one page of a single user's marketplace
// listings.
//
// ListUserMarketplaceItems may return an error when input validation, dependency calls, or security checks fail.
// ListUserMarketplaceItems does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (c *Client) ListUserMarketplaceItems(ctx context.Context, userID string, query ListQuery) (Page[MarketplaceItem], error) {
	return listResource[MarketplaceItem](c, ctx, KindMarketplaces, c.adminPath("/users/"+url.PathEscape(userID)+"/marketplaces"), query.values())
}

// ListUserConversations returns one page of conversations a user
// participates in.
//
// ListUserConversations may return an error when input validation, dependency calls, or security checks fail.
// ListUserConversations does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (c *Client) ListUserConversations(ctx context.Context, userID string, query ListQuery) (Page[Conversation], error) {
	return listResource[Conversation](c, ctx, KindConversations, c.adminPath("/users/"+url.PathEscape(userID)+"/conversations"), query.values())
}
