package goAdmin

import (
	"context"
	"sync"
)

// GetDashboardStats aggregates the dashboard landing-page counters from the
// per-entity collections: each total is the pagination total of a
// single-item query, with blocked and hidden counts taken from filtered
// variants. The aggregate itself is cached under the stats kind and
// invalidated by every mutation that can move a counter.
//
// GetDashboardStats may return an error when input validation, dependency calls, or security checks fail.
// GetDashboardStats does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (c *Client) GetDashboardStats(ctx context.Context) (DashboardStats, error) {
	if c == nil || c.gw == nil {
		return DashboardStats{}, ErrEngineNotReady
	}

	return cacheDo(c.cache, ctx, KindStats, "stats:aggregate", func(ctx context.Context) (DashboardStats, error) {
		probe := ListQuery{Page: 1, Limit: 1}
		yes := true

		var (
			wg    sync.WaitGroup
			mu    sync.Mutex
			stats DashboardStats
			first error
		)

		run := func(fetch func() (int, error), assign func(total int)) {
			wg.Add(1)
			go func() {
				defer wg.Done()
				total, err := fetch()
				mu.Lock()
				defer mu.Unlock()
				if err != nil {
					if first == nil {
						first = err
					}
					return
				}
				assign(total)
			}()
		}

		run(func() (int, error) {
			page, err := c.ListUsers(ctx, UserListQuery{ListQuery: probe})
			return page.Pagination.Total, err
		}, func(total int) { stats.TotalUsers = total })

		run(func() (int, error) {
			page, err := c.ListPosts(ctx, PostListQuery{ListQuery: probe})
			return page.Pagination.Total, err
		}, func(total int) { stats.TotalPosts = total })

		run(func() (int, error) {
			page, err := c.ListComments(ctx, CommentListQuery{ListQuery: probe})
			return page.Pagination.Total, err
		}, func(total int) { stats.TotalComments = total })

		run(func() (int, error) {
			page, err := c.ListReports(ctx, ReportListQuery{Page: 1, Limit: 1})
			return page.Pagination.Total, err
		}, func(total int) { stats.TotalReports = total })

		run(func() (int, error) {
			page, err := c.ListUsers(ctx, UserListQuery{ListQuery: probe, Blocked: &yes})
			return page.Pagination.Total, err
		}, func(total int) { stats.BlockedUsers = total })

		run(func() (int, error) {
			page, err := c.ListPosts(ctx, PostListQuery{ListQuery: probe, Hidden: &yes})
			return page.Pagination.Total, err
		}, func(total int) { stats.HiddenPosts = total })

		run(func() (int, error) {
			page, err := c.ListComments(ctx, CommentListQuery{ListQuery: probe, Hidden: &yes})
			return page.Pagination.Total, err
		}, func(total int) { stats.HiddenComments = total })

		wg.Wait()

		if first != nil {
			return DashboardStats{}, first
		}
		return stats, nil
	})
}
