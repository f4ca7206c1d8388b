package goAdmin

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
	"strings"
)

// ReportListQuery filters the moderation report queue. Type narrows the
// result to one of the two report collections.
type ReportListQuery struct {
	Page   int
	Limit  int
	Type   ReportType
	SortBy string
	Order  SortOrder
}

func (q ReportListQuery) values() url.Values {
	v := url.Values{}
	if q.Page > 0 {
		v.Set("page", strconv.Itoa(q.Page))
	}
	if q.Limit > 0 {
		v.Set("limit", strconv.Itoa(q.Limit))
	}
	if q.Type != "" {
		v.Set("type", strings.ToLower(string(q.Type)))
	}
	if q.SortBy != "" {
		v.Set("sortBy", q.SortBy)
	}
	if q.Order != "" {
		v.Set("order", string(q.Order))
	}
	return v
}

// ListReports returns one page of the report queue. The envelope carries the
// post and comment report collections side by side under shared pagination.
//
// ListReports may return an error when input validation, dependency calls, or security checks fail.
// ListReports does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (c *Client) ListReports(ctx context.Context, query ReportListQuery) (ReportsPage, error) {
	if c == nil || c.gw == nil {
		return ReportsPage{}, ErrEngineNotReady
	}
	path := c.adminPath("/reports")
	return cacheDo(c.cache, ctx, KindReports, cacheKey(path, query.values()), func(ctx context.Context) (ReportsPage, error) {
		var page ReportsPage
		err := c.gw.get(ctx, path, query.values(), &page)
		return page, err
	})
}

// ResolveReport marks a report resolved. On success every cached report page
// gets the status flip applied in place before the kind is invalidated, so
// a consumer holding the old page sees the new status without waiting for a
// refetch.
//
// ResolveReport may return an error when input validation, dependency calls, or security checks fail.
// ResolveReport does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (c *Client) ResolveReport(ctx context.Context, reportID string, reportType ReportType) error {
	return c.settleReport(ctx, reportID, reportType, "resolve", ReportResolved)
}

// RejectReport marks a report rejected, with the same optimistic status flip
// as [Client.ResolveReport].
//
// RejectReport may return an error when input validation, dependency calls, or security checks fail.
// RejectReport does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (c *Client) RejectReport(ctx context.Context, reportID string, reportType ReportType) error {
	return c.settleReport(ctx, reportID, reportType, "reject", ReportRejected)
}

func (c *Client) settleReport(ctx context.Context, reportID string, reportType ReportType, verb string, status ReportStatus) error {
	if c == nil || c.gw == nil {
		return ErrEngineNotReady
	}

	path := c.adminPath("/reports/" + url.PathEscape(reportID) + "/" + verb)
	body := map[string]string{"type": strings.ToLower(string(reportType))}

	var resp actionResponse
	if err := c.gw.do(ctx, http.MethodPut, path, nil, body, &resp); err != nil {
		c.metrics.Inc(MetricMutationFailure)
		return err
	}
	c.metrics.Inc(MetricMutationSuccess)

	// the flip is applied to a copy of the affected collection: pages handed
	// out by ListReports share the cached slice's backing array, so writing
	// through it would mutate caller-held results
	c.cache.Patch(KindReports, func(value any) any {
		page, ok := value.(ReportsPage)
		if !ok {
			return value
		}
		switch reportType {
		case ReportTypePost:
			reports := append([]PostReport(nil), page.PostReports...)
			for i := range reports {
				if reports[i].ID == reportID {
					reports[i].Status = status
				}
			}
			page.PostReports = reports
		case ReportTypeComment:
			reports := append([]CommentReport(nil), page.CommentReports...)
			for i := range reports {
				if reports[i].ID == reportID {
					reports[i].Status = status
				}
			}
			page.CommentReports = reports
		}
		return page
	})

	c.cache.Invalidate(KindReports)
	c.cache.Invalidate(KindStats)
	return nil
}
