package types

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTimestampUnixMilli(t *testing.T) {
	ts := Timestamp{Seconds: 1704844800}
	assert.Equal(t, int64(1704844800000), ts.UnixMilli())
}

func TestClientSummaryMarshalSkipped(t *testing.T) {
	s := ClientSummary{
		Client: Client{ID: "c1", Role: "admin"},
	}

	b, err := json.Marshal(s)
	require.NoError(t, err)

	var got map[string]any
	require.NoError(t, json.Unmarshal(b, &got))

	// Skipped clients marshal as the bare client record.
	assert.Equal(t, "c1", got["id"])
	assert.NotContains(t, got, "totalCalls")
	assert.NotContains(t, got, "failedGroups")
}

func TestClientSummaryMarshalAggregated(t *testing.T) {
	s := ClientSummary{
		Client:            Client{ID: "c1", Role: RoleUser, Groups: []string{"g1"}},
		Aggregated:        true,
		TotalPLPercentage: 2.5,
		TotalPLAbs:        100,
		TotalCalls:        1,
		TotalReports:      3,
	}

	b, err := json.Marshal(s)
	require.NoError(t, err)

	var got map[string]any
	require.NoError(t, json.Unmarshal(b, &got))

	assert.Equal(t, "c1", got["id"])
	assert.Equal(t, 2.5, got["totalPLPercentage"])
	assert.Equal(t, 100.0, got["totalPLAbs"])
	assert.Equal(t, 1.0, got["totalCalls"])
	assert.Equal(t, 3.0, got["totalReports"])
	// failedGroups serializes as [] even when nothing failed.
	assert.Equal(t, []any{}, got["failedGroups"])
}
