package docstore

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/speq1/speq-backend/internal/types"
)

const docPrefix = "projects/test-proj/databases/(default)/documents/"

func newTestStore(t *testing.T, handler http.HandlerFunc) *Store {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return New(Params{ProjectID: "test-proj", BaseURL: srv.URL})
}

func TestListClients(t *testing.T) {
	store := newTestStore(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/"+docPrefix+"users", r.URL.Path)
		json.NewEncoder(w).Encode(map[string]any{
			"documents": []map[string]any{
				{
					"name": docPrefix + "users/u1",
					"fields": map[string]any{
						"name":         map[string]any{"stringValue": "Alice"},
						"role":         map[string]any{"stringValue": "user"},
						"joining_date": map[string]any{"timestampValue": "2024-01-10T00:00:00Z"},
						"groups_client_is_part_of": map[string]any{
							"arrayValue": map[string]any{
								"values": []map[string]any{
									{"stringValue": "g1"},
									{"stringValue": "g2"},
								},
							},
						},
					},
				},
				{
					"name": docPrefix + "users/a1",
					"fields": map[string]any{
						"role": map[string]any{"stringValue": "admin"},
					},
				},
			},
		})
	})

	clients, err := store.ListClients(context.Background())
	require.NoError(t, err)
	require.Len(t, clients, 2)

	alice := clients[0]
	assert.Equal(t, "u1", alice.ID)
	assert.Equal(t, "Alice", alice.Name)
	assert.Equal(t, types.RoleUser, alice.Role)
	assert.Equal(t, int64(1704844800), alice.JoiningDate.Seconds)
	assert.Equal(t, []string{"g1", "g2"}, alice.Groups)

	// No membership field decodes as nil, not empty.
	admin := clients[1]
	assert.Equal(t, "admin", admin.Role)
	assert.Nil(t, admin.Groups)
}

func TestListClientsExportedTimestampShape(t *testing.T) {
	store := newTestStore(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{
			"documents": []map[string]any{
				{
					"name": docPrefix + "users/u1",
					"fields": map[string]any{
						"role": map[string]any{"stringValue": "user"},
						"joining_date": map[string]any{
							"mapValue": map[string]any{
								"fields": map[string]any{
									"_seconds": map[string]any{"integerValue": "1704844800"},
								},
							},
						},
					},
				},
			},
		})
	})

	clients, err := store.ListClients(context.Background())
	require.NoError(t, err)
	require.Len(t, clients, 1)
	assert.Equal(t, int64(1704844800), clients[0].JoiningDate.Seconds)
}

func TestListGroups(t *testing.T) {
	store := newTestStore(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/"+docPrefix+"groups", r.URL.Path)
		json.NewEncoder(w).Encode(map[string]any{
			"documents": []map[string]any{
				{
					"name": docPrefix + "groups/doc-g1",
					"fields": map[string]any{
						"groupID":   map[string]any{"stringValue": "g1"},
						"groupName": map[string]any{"stringValue": "G1"},
					},
				},
			},
		})
	})

	groups, err := store.ListGroups(context.Background())
	require.NoError(t, err)
	require.Len(t, groups, 1)
	assert.Equal(t, types.Group{ID: "doc-g1", GroupID: "g1", GroupName: "G1"}, groups[0])
}

func TestListReportsPagination(t *testing.T) {
	calls := 0
	store := newTestStore(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/"+docPrefix+"groups/doc-g1/reports", r.URL.Path)
		calls++
		if r.URL.Query().Get("pageToken") == "" {
			json.NewEncoder(w).Encode(map[string]any{
				"documents": []map[string]any{
					{
						"name": docPrefix + "groups/doc-g1/reports/r1",
						"fields": map[string]any{
							"timestamp": map[string]any{"timestampValue": "2024-01-15T00:00:00Z"},
						},
					},
				},
				"nextPageToken": "page2",
			})
			return
		}
		json.NewEncoder(w).Encode(map[string]any{
			"documents": []map[string]any{
				{
					"name":   docPrefix + "groups/doc-g1/reports/r2",
					"fields": map[string]any{},
				},
			},
		})
	})

	reports, err := store.ListReports(context.Background(), "doc-g1")
	require.NoError(t, err)
	assert.Equal(t, 2, calls)
	require.Len(t, reports, 2)

	assert.Equal(t, "r1", reports[0].ID)
	require.NotNil(t, reports[0].Timestamp)
	assert.Equal(t, int64(1705276800), reports[0].Timestamp.Seconds)

	// Report without a timestamp field carries a nil timestamp.
	assert.Equal(t, "r2", reports[1].ID)
	assert.Nil(t, reports[1].Timestamp)
}

func TestListReportsError(t *testing.T) {
	store := newTestStore(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"forbidden"}`, http.StatusForbidden)
	})

	_, err := store.ListReports(context.Background(), "doc-g1")
	assert.Error(t, err)
}
