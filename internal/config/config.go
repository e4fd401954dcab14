package config

import (
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"
)

// SourceTarget is one declarative unit of work: a named source, a destination
// spreadsheet and sheet, and the range that gets cleared before every write.
//
// For ingest items Source is a Gmail label name. For push items Source is the
// title of a sheet inside SourceSpreadsheetID.
type SourceTarget struct {
	Source              string `toml:"source"`
	SourceSpreadsheetID string `toml:"source_spreadsheet_id,omitempty"`
	SpreadsheetID       string `toml:"spreadsheet_id"`
	Sheet               string `toml:"sheet"`
	ClearRange          string `toml:"clear_range"`
}

// Config is the full declarative configuration for one sheetsync installation.
type Config struct {
	// Account selects the cached Google OAuth token to use.
	Account string `toml:"account"`

	Ingest []SourceTarget `toml:"ingest"`
	Push   []SourceTarget `toml:"push"`
}

// Load reads and decodes a TOML configuration file.
func Load(path string) (*Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	if err := toml.Unmarshal(raw, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	if cfg.Account == "" {
		cfg.Account = "default"
	}

	return &cfg, nil
}
