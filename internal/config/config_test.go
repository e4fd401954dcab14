package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	content := `
account = "district"

[[ingest]]
source = "District Reports/Attendance"
spreadsheet_id = "dest-id-1"
sheet = "Attendance"
clear_range = "A2:H"

[[push]]
source = "Summary"
source_spreadsheet_id = "src-id-1"
spreadsheet_id = "dest-id-2"
sheet = "Rollup"
clear_range = "A2:F"
`
	path := filepath.Join(t.TempDir(), "sheetsync.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "district", cfg.Account)
	require.Len(t, cfg.Ingest, 1)
	assert.Equal(t, "District Reports/Attendance", cfg.Ingest[0].Source)
	assert.Equal(t, "A2:H", cfg.Ingest[0].ClearRange)
	require.Len(t, cfg.Push, 1)
	assert.Equal(t, "src-id-1", cfg.Push[0].SourceSpreadsheetID)
	assert.Equal(t, "Rollup", cfg.Push[0].Sheet)
}

func TestLoadDefaultsAccount(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sheetsync.toml")
	require.NoError(t, os.WriteFile(path, []byte(""), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "default", cfg.Account)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	assert.Error(t, err)
}

func TestLoadInvalidTOML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.toml")
	require.NoError(t, os.WriteFile(path, []byte("account = [unclosed"), 0o600))

	_, err := Load(path)
	assert.Error(t, err)
}
