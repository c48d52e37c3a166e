package interfaces

import (
	"context"

	"github.com/speq1/speq-backend/internal/types"
)

// DocumentStore lists the collections the aggregation run consumes.
// Client and group listing failures are fatal to a run; a per-group
// report listing failure is recoverable and contributes zero.
type DocumentStore interface {
	ListClients(ctx context.Context) ([]types.Client, error)
	ListGroups(ctx context.Context) ([]types.Group, error)
	ListReports(ctx context.Context, groupDocID string) ([]types.ReportDocument, error)
}
