package sheets

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/speq1/speq-backend/internal/types"
)

func newTestSource(t *testing.T, handler http.HandlerFunc) *Source {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return New(Params{BaseURL: srv.URL, APIKey: "test-key"})
}

func TestGetRange(t *testing.T) {
	src := newTestSource(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v4/spreadsheets/sheet-id/values/Sheet1", r.URL.Path)
		assert.Equal(t, "test-key", r.URL.Query().Get("key"))
		fmt.Fprint(w, `{
			"range": "Sheet1!A1:O3",
			"majorDimension": "ROWS",
			"values": [
				["x", "G1", "15/01/2024", "", "", "", "", "", "", "", "", "", "", "2.5", "100"],
				["x", "G2", "16/01/2024", "", "", "", "", "", "", "", "", "", "", 1.5, 50]
			]
		}`)
	})

	rows, err := src.GetRange(context.Background(), "sheet-id", "Sheet1")
	require.NoError(t, err)
	require.Len(t, rows, 2)

	assert.Equal(t, "G1", rows[0].GroupName())
	assert.Equal(t, types.TextCell("15/01/2024"), rows[0].EntryDate())
	assert.Equal(t, 2.5, rows[0].PLPercentage())
	assert.Equal(t, 100.0, rows[0].PLAbs())

	// Unformatted reads serve bare numbers.
	assert.Equal(t, 1.5, rows[1].PLPercentage())
	assert.Equal(t, 50.0, rows[1].PLAbs())
}

func TestGetRangeShortRows(t *testing.T) {
	src := newTestSource(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"values": [["x", "G1"]]}`)
	})

	rows, err := src.GetRange(context.Background(), "sheet-id", "Sheet1")
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "G1", rows[0].GroupName())
	assert.Equal(t, 0.0, rows[0].PLAbs())
}

func TestGetRangeEmptySheet(t *testing.T) {
	// The values field is absent entirely when the range is empty.
	src := newTestSource(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"range": "Sheet1!A1:O1", "majorDimension": "ROWS"}`)
	})

	rows, err := src.GetRange(context.Background(), "sheet-id", "Sheet1")
	require.NoError(t, err)
	assert.Empty(t, rows)
}
