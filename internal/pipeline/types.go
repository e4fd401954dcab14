package pipeline

import (
	"context"
	"time"

	"github.com/mwalther/sheetsync/internal/config"
)

// TabularData is a rows-of-columns snapshot of spreadsheet content, header
// row excluded. The destination writer sizes the write from row 0, so data
// is expected to be rectangular.
type TabularData [][]any

// Artifact is a raw binary attachment fetched from a source, not yet
// converted into tabular form.
type Artifact struct {
	Filename string
	MimeType string
	Data     []byte
}

// Source is what a SourceReader resolves a config item into: either rows that
// are already tabular, or a raw artifact that still needs extraction.
type Source struct {
	Rows     TabularData
	Artifact *Artifact
}

// WriteResult describes one completed destination write.
type WriteResult struct {
	SpreadsheetID   string
	Sheet           string
	RowsInserted    int
	ColumnsInserted int
	ClearedRange    string
	Timestamp       time.Time
}

// SourceReader resolves a named external source into rows or a raw artifact.
type SourceReader interface {
	Fetch(ctx context.Context, item config.SourceTarget) (*Source, error)
}

// Extractor converts a raw artifact into tabular data, dropping the header
// row. Implementations own any temporary resources they create and release
// them best-effort before returning.
type Extractor interface {
	Extract(ctx context.Context, artifact *Artifact) (TabularData, error)
}

// DestinationWriter clears the declared range on the destination sheet and
// writes new rows starting below the header.
type DestinationWriter interface {
	Write(ctx context.Context, item config.SourceTarget, data TabularData) (*WriteResult, error)
}
