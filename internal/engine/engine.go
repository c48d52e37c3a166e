package engine

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/speq1/speq-backend/internal/interfaces"
	"github.com/speq1/speq-backend/internal/logger"
	"github.com/speq1/speq-backend/internal/store"
	"github.com/speq1/speq-backend/internal/types"
)

// Engine reconciles client memberships against the ledger snapshot and
// the per-group report collections, producing one summary per client.
type Engine struct {
	store interfaces.DocumentStore
	sheet interfaces.SheetSource

	spreadsheetID string
	sheetName     string

	clientWorkers          int
	groupFetchWorkers      int
	fetchTimeout           time.Duration
	truncateReportJoinDate bool
}

func New(cfg *store.Config, db interfaces.DocumentStore, sheet interfaces.SheetSource) *Engine {
	return &Engine{
		store:                  db,
		sheet:                  sheet,
		spreadsheetID:          cfg.Spreadsheet.ID,
		sheetName:              cfg.Spreadsheet.Sheet,
		clientWorkers:          cfg.Aggregation.ClientWorkers,
		groupFetchWorkers:      cfg.Aggregation.GroupFetchWorkers,
		fetchTimeout:           time.Duration(cfg.Aggregation.FetchTimeoutSecs) * time.Second,
		truncateReportJoinDate: cfg.Aggregation.TruncateReportJoinDate,
	}
}

// BuildSummary aggregates one client. Clients outside the aggregation
// contract (role is not "user", or no membership list) are returned
// unmodified. The ledger path and the report path run concurrently; they
// share no mutable state, and a report fetch failing for one group never
// blocks the ledger totals.
func (e *Engine) BuildSummary(ctx context.Context, client types.Client, groups []types.Group, rows []types.LedgerRow) types.ClientSummary {
	if client.Role != types.RoleUser || client.Groups == nil {
		return types.ClientSummary{Client: client}
	}

	resolved := ResolveGroups(client, groups)

	var (
		wg           sync.WaitGroup
		totals       types.PLTotals
		totalReports int
	)

	wg.Add(2)
	go func() {
		defer wg.Done()
		totals = AggregatePL(client, resolved, rows)
	}()
	go func() {
		defer wg.Done()
		totalReports = e.CountReports(ctx, client, resolved)
	}()
	wg.Wait()

	return types.ClientSummary{
		Client:            client,
		Aggregated:        true,
		TotalPLPercentage: totals.PLPercentageTotal,
		TotalPLAbs:        totals.PLAbsTotal,
		TotalCalls:        totals.TotalCalls,
		TotalReports:      totalReports,
		FailedGroups:      totals.FailedGroups,
	}
}

// Run performs one full aggregation: snapshot clients, groups, and the
// ledger, then aggregate every client concurrently. Top-level listing or
// ledger fetch failures are fatal and surface to the caller; everything
// below that is absorbed into the per-client results.
func (e *Engine) Run(ctx context.Context) (*types.AggregateResponse, error) {
	clients, err := e.store.ListClients(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list clients: %w", err)
	}

	groups, err := e.store.ListGroups(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list groups: %w", err)
	}

	rows, err := e.sheet.GetRange(ctx, e.spreadsheetID, e.sheetName)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch master sheet: %w", err)
	}

	logger.Info(ctx, "Aggregation snapshot loaded",
		"clients", len(clients),
		"groups", len(groups),
		"ledger_rows", len(rows),
	)

	// One summary slot per client keeps output order equal to input order
	// while workers complete in any order.
	summaries := make([]types.ClientSummary, len(clients))
	sem := make(chan struct{}, e.clientWorkers)
	var wg sync.WaitGroup

	for i, client := range clients {
		wg.Add(1)
		go func(i int, client types.Client) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()
			summaries[i] = e.BuildSummary(ctx, client, groups, rows)
		}(i, client)
	}
	wg.Wait()

	return &types.AggregateResponse{Users: summaries, Groups: groups}, nil
}
