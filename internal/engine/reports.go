package engine

import (
	"context"
	"sync"

	"github.com/speq1/speq-backend/internal/logger"
	"github.com/speq1/speq-backend/internal/types"
)

// groupReportResult is one group's report-count outcome. Failures are
// collected as values and summed around, never raised: a single group's
// fetch going down must not abort the client's aggregation.
type groupReportResult struct {
	group types.Group
	count int
	err   error
}

// CountReports counts activity reports across the client's resolved
// groups whose timestamp is on/after the join date. Group fetches fan out
// concurrently, bounded by the configured worker count, each under its
// own timeout. A failed or timed-out fetch logs and contributes zero.
//
// The cutoff compares raw join-date milliseconds unless
// truncateJoinDate is set, in which case it uses the same UTC-midnight
// day the ledger path uses.
func (e *Engine) CountReports(ctx context.Context, client types.Client, resolvedGroups []types.Group) int {
	if len(resolvedGroups) == 0 {
		return 0
	}

	cutoffMillis := client.JoiningDate.UnixMilli()
	if e.truncateReportJoinDate {
		cutoffMillis = JoinDay(client.JoiningDate).UnixMilli()
	}

	results := make([]groupReportResult, len(resolvedGroups))
	sem := make(chan struct{}, e.groupFetchWorkers)
	var wg sync.WaitGroup

	for i, group := range resolvedGroups {
		wg.Add(1)
		go func(i int, group types.Group) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()
			results[i] = e.countGroupReports(ctx, group, cutoffMillis)
		}(i, group)
	}
	wg.Wait()

	total := 0
	for _, res := range results {
		if res.err != nil {
			logger.ErrorWithErr(ctx, "Failed to fetch reports for group", res.err,
				"client_id", client.ID,
				"group_name", res.group.GroupName,
			)
			continue
		}
		total += res.count
	}
	return total
}

func (e *Engine) countGroupReports(ctx context.Context, group types.Group, cutoffMillis int64) groupReportResult {
	fetchCtx, cancel := context.WithTimeout(ctx, e.fetchTimeout)
	defer cancel()

	reports, err := e.store.ListReports(fetchCtx, group.ID)
	if err != nil {
		return groupReportResult{group: group, err: err}
	}

	count := 0
	for _, report := range reports {
		if report.Timestamp == nil {
			continue
		}
		if report.Timestamp.UnixMilli() >= cutoffMillis {
			count++
		}
	}
	return groupReportResult{group: group, count: count}
}
