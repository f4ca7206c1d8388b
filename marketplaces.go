package goAdmin

import (
	"context"
	"net/url"
	"strconv"
)

// MarketplaceListQuery filters the marketplace collection.
type MarketplaceListQuery struct {
	ListQuery
	UserID string
	Hidden *bool
}

func (q MarketplaceListQuery) values() url.Values {
	v := q.ListQuery.values()
	if q.UserID != "" {
		v.Set("userId", q.UserID)
	}
	if q.Hidden != nil {
		v.Set("hidden", strconv.FormatBool(*q.Hidden))
	}
	return v
}

// ListMarketplaceItems returns one page of marketplace listings.
//
// ListMarketplaceItems may return an error when input validation, dependency calls, or security checks fail.
// ListMarketplaceItems does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (c *Client) ListMarketplaceItems(ctx context.Context, query MarketplaceListQuery) (Page[MarketplaceItem], error) {
	return listResource[MarketplaceItem](c, ctx, KindMarketplaces, c.adminPath("/marketplaces"), query.values())
}

// GetMarketplaceItem returns one marketplace listing by id.
//
// GetMarketplaceItem may return an error when input validation, dependency calls, or security checks fail.
// GetMarketplaceItem does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (c *Client) GetMarketplaceItem(ctx context.Context, itemID string) (MarketplaceItem, error) {
	return getResource[MarketplaceItem](c, ctx, KindMarketplaces, c.adminPath("/marketplaces/"+url.PathEscape(itemID)))
}

// HideMarketplaceItem hides a marketplace listing.
//
// HideMarketplaceItem may return an error when input validation, dependency calls, or security checks fail.
// HideMarketplaceItem does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (c *Client) HideMarketplaceItem(ctx context.Context, itemID string) error {
	return c.put(ctx, c.adminPath("/marketplaces/"+url.PathEscape(itemID)+"/hide"), KindMarketplaces)
}

// UnhideMarketplaceItem restores a hidden marketplace listing.
//
// UnhideMarketplaceItem may return an error when input validation, dependency calls, or security checks fail.
// UnhideMarketplaceItem does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (c *Client) UnhideMarketplaceItem(ctx context.Context, itemID string) error {
	return c.put(ctx, c.adminPath("/marketplaces/"+url.PathEscape(itemID)+"/unhide"), KindMarketplaces)
}
