package sheets

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/mwalther/sheetsync/internal/config"
	"github.com/mwalther/sheetsync/internal/logging"
	"github.com/mwalther/sheetsync/internal/pipeline"
)

// Reader resolves a spreadsheet-range source into rows. It reads the source
// sheet below its header row and drops fully-empty rows. It implements
// pipeline.SourceReader.
type Reader struct {
	client sheetStore
	logger *slog.Logger
}

// NewReader creates a sheet-backed source reader.
func NewReader(client *Client, logger *slog.Logger) *Reader {
	if logger == nil {
		logger = slog.Default()
	}
	return &Reader{client: client, logger: logger}
}

// Fetch implements pipeline.SourceReader. The item's Source field names a
// sheet inside SourceSpreadsheetID.
func (r *Reader) Fetch(ctx context.Context, item config.SourceTarget) (*pipeline.Source, error) {
	if item.SourceSpreadsheetID == "" {
		return nil, fmt.Errorf("push item %q: source_spreadsheet_id is required: %w", item.Source, config.ErrMissingParameters)
	}

	if _, err := r.client.SheetProperties(ctx, item.SourceSpreadsheetID, item.Source); err != nil {
		return nil, err
	}

	values, err := r.client.ReadRange(ctx, item.SourceSpreadsheetID, QuoteSheet(item.Source))
	if err != nil {
		return nil, err
	}

	if len(values) <= 1 {
		r.logger.Debug("source sheet has no data rows",
			logging.Spreadsheet(item.SourceSpreadsheetID),
			logging.Sheet(item.Source),
		)
		return &pipeline.Source{Rows: pipeline.TabularData{}}, nil
	}

	rows := FilterEmptyRows(values[1:])
	return &pipeline.Source{Rows: rows}, nil
}

// CheckSource implements pipeline.SourceChecker.
func (r *Reader) CheckSource(ctx context.Context, item config.SourceTarget) (*pipeline.SourceStatus, error) {
	if item.SourceSpreadsheetID == "" {
		return nil, fmt.Errorf("push item %q: source_spreadsheet_id is required: %w", item.Source, config.ErrMissingParameters)
	}

	if _, err := r.client.SheetProperties(ctx, item.SourceSpreadsheetID, item.Source); err != nil {
		return nil, err
	}

	values, err := r.client.ReadRange(ctx, item.SourceSpreadsheetID, QuoteSheet(item.Source))
	if err != nil {
		return nil, err
	}

	items := 0
	if len(values) > 1 {
		items = len(FilterEmptyRows(values[1:]))
	}
	return &pipeline.SourceStatus{Exists: true, Items: items}, nil
}
