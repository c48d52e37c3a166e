package store

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadConfigDefaults(t *testing.T) {
	path := writeConfig(t, `
spreadsheet:
  id: "sheet-id"
  sheet: "Sheet1"
firestore:
  project_id: "proj"
`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, 5000, cfg.Port)
	assert.Equal(t, 8, cfg.Aggregation.ClientWorkers)
	assert.Equal(t, 4, cfg.Aggregation.GroupFetchWorkers)
	assert.Equal(t, 30, cfg.Aggregation.FetchTimeoutSecs)
	assert.False(t, cfg.Aggregation.TruncateReportJoinDate)
}

func TestLoadConfigMissingSpreadsheet(t *testing.T) {
	path := writeConfig(t, `
firestore:
  project_id: "proj"
`)

	_, err := LoadConfig(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "spreadsheet.id")
}

func TestLoadConfigEnvOverrides(t *testing.T) {
	t.Setenv("PORT", "8080")
	t.Setenv("GOOGLE_PROJECT_ID", "env-proj")

	path := writeConfig(t, `
spreadsheet:
  id: "sheet-id"
  sheet: "Sheet1"
`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, 8080, cfg.Port)
	assert.Equal(t, "env-proj", cfg.Firestore.ProjectID)
}

func TestLoadConfigInvalidWorkers(t *testing.T) {
	path := writeConfig(t, `
spreadsheet:
  id: "sheet-id"
  sheet: "Sheet1"
firestore:
  project_id: "proj"
aggregation:
  client_workers: -1
`)

	_, err := LoadConfig(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "client_workers")
}
