package interfaces

import (
	"context"

	"github.com/speq1/speq-backend/internal/types"
)

// SheetSource fetches the full row set of one named sheet range.
// Failure is fatal to the run: there is no partial ledger.
type SheetSource interface {
	GetRange(ctx context.Context, spreadsheetID, rangeName string) ([]types.LedgerRow, error)
}
