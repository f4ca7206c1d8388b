package goAdmin

import (
	"context"
	"net/url"
	"strconv"
)

// ConversationListQuery filters the conversation collection, optionally to a
// single participant.
type ConversationListQuery struct {
	Page   int
	Limit  int
	UserID string
}

func (q ConversationListQuery) values() url.Values {
	v := url.Values{}
	if q.Page > 0 {
		v.Set("page", strconv.Itoa(q.Page))
	}
	if q.Limit > 0 {
		v.Set("limit", strconv.Itoa(q.Limit))
	}
	if q.UserID != "" {
		v.Set("userId", q.UserID)
	}
	return v
}

// ListConversations returns one page of conversations.
//
// ListConversations may return an error when input validation, dependency calls, or security checks fail.
// ListConversations does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (c *Client) ListConversations(ctx context.Context, query ConversationListQuery) (Page[Conversation], error) {
	return listResource[Conversation](c, ctx, KindConversations, c.adminPath("/conversations"), query.values())
}

// ListConversationMessages returns one page of messages in a conversation.
//
// ListConversationMessages may return an error when input validation, dependency calls, or security checks fail.
// ListConversationMessages does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (c *Client) ListConversationMessages(ctx context.Context, conversationID string, query ListQuery) (Page[Message], error) {
	path := c.adminPath("/conversations/" + url.PathEscape(conversationID) + "/messages")
	return listResource[Message](c, ctx, KindConversations, path, query.values())
}
