package sheets

import (
	"context"
	"encoding/json"
	"net/url"
	"time"

	"github.com/speq1/speq-backend/internal/api"
	"github.com/speq1/speq-backend/internal/interfaces"
	"github.com/speq1/speq-backend/internal/types"
)

const defaultBaseURL = "https://sheets.googleapis.com"

// Params configures the Google Sheets adapter.
type Params struct {
	APIKey  string
	BaseURL string // override for tests
	Timeout time.Duration
}

// Source fetches sheet ranges through the Sheets REST values API. The
// ledger is read in one shot per aggregation run; a failed fetch is fatal
// to the run since a partial ledger would silently understate totals.
type Source struct {
	api *api.Client
}

var _ interfaces.SheetSource = (*Source)(nil)

func New(p Params) *Source {
	baseURL := p.BaseURL
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	timeout := p.Timeout
	if timeout == 0 {
		timeout = 30 * time.Second
	}

	opts := []api.ClientOption{
		api.WithBaseURL(baseURL),
		api.WithTimeout(timeout),
		api.WithLogging(true),
	}
	if p.APIKey != "" {
		opts = append(opts, api.WithQueryParam("key", p.APIKey))
	}

	return &Source{api: api.NewClient(opts...)}
}

type valuesResponse struct {
	Range          string              `json:"range"`
	MajorDimension string              `json:"majorDimension"`
	Values         [][]json.RawMessage `json:"values"`
}

// GetRange returns the full row set of the named range.
func (s *Source) GetRange(ctx context.Context, spreadsheetID, rangeName string) ([]types.LedgerRow, error) {
	path := "/v4/spreadsheets/" + url.PathEscape(spreadsheetID) + "/values/" + url.PathEscape(rangeName)

	resp, err := s.api.GETWithRetry(ctx, path, nil, nil)
	if err != nil {
		return nil, err
	}

	var vr valuesResponse
	if err := resp.ParseJSON(&vr); err != nil {
		return nil, err
	}

	rows := make([]types.LedgerRow, 0, len(vr.Values))
	for _, raw := range vr.Values {
		row := make(types.LedgerRow, 0, len(raw))
		for _, cell := range raw {
			row = append(row, decodeCell(cell))
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// decodeCell maps a JSON sheet cell onto the tagged cell union. The
// values API serves strings for formatted reads and bare numbers for
// unformatted ones; anything else is treated as missing.
func decodeCell(raw json.RawMessage) types.Cell {
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return types.TextCell(s)
	}
	var f float64
	if err := json.Unmarshal(raw, &f); err == nil {
		return types.NumberCell(f)
	}
	return types.MissingCell()
}
