package interfaces

import (
	"context"

	"github.com/speq1/speq-backend/internal/types"
)

// Aggregator computes all client summaries over one snapshot of the
// clients, groups, and ledger.
type Aggregator interface {
	Run(ctx context.Context) (*types.AggregateResponse, error)
}
