package goAdmin

import (
	"context"
	"net/url"
	"strconv"
)

// InternshipListQuery filters the internship collection.
type InternshipListQuery struct {
	ListQuery
	UserID string
	Hidden *bool
}

func (q InternshipListQuery) values() url.Values {
	v := q.ListQuery.values()
	if q.UserID != "" {
		v.Set("userId", q.UserID)
	}
	if q.Hidden != nil {
		v.Set("hidden", strconv.FormatBool(*q.Hidden))
	}
	return v
}

// ListInternships returns one page of internship listings.
//
// ListInternships may return an error when input validation, dependency calls, or security checks fail.
// ListInternships does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (c *Client) ListInternships(ctx context.Context, query InternshipListQuery) (Page[Internship], error) {
	return listResource[Internship](c, ctx, KindInternships, c.adminPath("/internships"), query.values())
}

// GetInternship returns one internship listing by id.
//
// GetInternship may return an error when input validation, dependency calls, or security checks fail.
// GetInternship does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (c *Client) GetInternship(ctx context.Context, internshipID string) (Internship, error) {
	return getResource[Internship](c, ctx, KindInternships, c.adminPath("/internships/"+url.PathEscape(internshipID)))
}

// HideInternship hides an internship listing.
//
// HideInternship may return an error when input validation, dependency calls, or security checks fail.
// HideInternship does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (c *Client) HideInternship(ctx context.Context, internshipID string) error {
	return c.put(ctx, c.adminPath("/internships/"+url.PathEscape(internshipID)+"/hide"), KindInternships)
}

// UnhideInternship restores a hidden internship listing.
//
// UnhideInternship may return an error when input validation, dependency calls, or security checks fail.
// UnhideInternship does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (c *Client) UnhideInternship(ctx context.Context, internshipID string) error {
	return c.put(ctx, c.adminPath("/internships/"+url.PathEscape(internshipID)+"/unhide"), KindInternships)
}
