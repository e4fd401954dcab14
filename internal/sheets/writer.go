package sheets

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	sheets "google.golang.org/api/sheets/v4"

	"github.com/mwalther/sheetsync/internal/config"
	"github.com/mwalther/sheetsync/internal/logging"
	"github.com/mwalther/sheetsync/internal/pipeline"
)

// sheetStore is the subset of Client the writer and reader use.
type sheetStore interface {
	SheetProperties(ctx context.Context, spreadsheetID, title string) (*sheets.SheetProperties, error)
	ReadRange(ctx context.Context, spreadsheetID, a1 string) ([][]any, error)
	ClearRange(ctx context.Context, spreadsheetID, a1 string) error
	WriteRange(ctx context.Context, spreadsheetID, a1 string, values [][]any) error
	SetNote(ctx context.Context, spreadsheetID string, sheetID int64, note string) error
}

// ClearStrategy selects what gets cleared before a write. The two strategies
// have different blast radii on sparse sheets and are deliberately kept
// separate.
type ClearStrategy int

const (
	// ClearDeclaredRange clears exactly the configured clear_range. Used by
	// the email-ingestion pipeline, whose destinations declare their width.
	ClearDeclaredRange ClearStrategy = iota

	// ClearBody clears from row 2 down to the sheet's current last used row
	// across all used columns. Used by the cross-spreadsheet push pipeline.
	ClearBody
)

// Writer writes tabular data to a destination sheet using clear-then-write
// semantics and stamps an update note on A1. It implements
// pipeline.DestinationWriter.
type Writer struct {
	client   sheetStore
	strategy ClearStrategy
	logger   *slog.Logger
	now      func() time.Time
}

// NewWriter creates a sheet-backed destination writer.
func NewWriter(client *Client, strategy ClearStrategy, logger *slog.Logger) *Writer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Writer{
		client:   client,
		strategy: strategy,
		logger:   logger,
		now:      time.Now,
	}
}

// Write implements pipeline.DestinationWriter.
func (w *Writer) Write(ctx context.Context, item config.SourceTarget, data pipeline.TabularData) (*pipeline.WriteResult, error) {
	scope := fmt.Sprintf("write %s/%s", item.SpreadsheetID, item.Sheet)

	if err := config.ValidateItem(item, scope); err != nil {
		return nil, err
	}
	if item.SpreadsheetID == "" {
		return nil, fmt.Errorf("%s: spreadsheet_id is required: %w", scope, config.ErrMissingParameters)
	}
	warnings, err := config.ValidateRange(item.ClearRange, scope)
	if err != nil {
		return nil, err
	}
	warnings = append(warnings, config.ValidateData(data, scope)...)
	for _, warning := range warnings {
		w.logger.Warn(warning, logging.Operation("write"))
	}

	props, err := w.client.SheetProperties(ctx, item.SpreadsheetID, item.Sheet)
	if err != nil {
		return nil, err
	}

	clearedRange, err := w.clear(ctx, item)
	if err != nil {
		return nil, err
	}

	cols := 0
	if len(data) > 0 {
		cols = len(data[0])
		writeRange := DataRange(item.Sheet, len(data), cols)
		if err := w.client.WriteRange(ctx, item.SpreadsheetID, writeRange, data); err != nil {
			return nil, err
		}
	}

	ts := w.now()
	note := "Updated on " + ts.Format("2006-01-02 15:04:05")
	if err := w.client.SetNote(ctx, item.SpreadsheetID, props.SheetId, note); err != nil {
		// The write itself succeeded; a missing note is cosmetic.
		w.logger.Warn("failed to stamp update note",
			logging.Spreadsheet(item.SpreadsheetID),
			logging.Sheet(item.Sheet),
			logging.Err(err),
		)
	}

	w.logger.Info("write complete",
		logging.Operation("write"),
		logging.Spreadsheet(item.SpreadsheetID),
		logging.Sheet(item.Sheet),
		logging.Range(clearedRange),
		logging.Rows(len(data)),
	)

	return &pipeline.WriteResult{
		SpreadsheetID:   item.SpreadsheetID,
		Sheet:           item.Sheet,
		RowsInserted:    len(data),
		ColumnsInserted: cols,
		ClearedRange:    clearedRange,
		Timestamp:       ts,
	}, nil
}

// clear applies the writer's clear strategy and returns the cleared range.
func (w *Writer) clear(ctx context.Context, item config.SourceTarget) (string, error) {
	switch w.strategy {
	case ClearBody:
		return w.clearBody(ctx, item)
	default:
		a1 := SheetRange(item.Sheet, item.ClearRange)
		if err := w.client.ClearRange(ctx, item.SpreadsheetID, a1); err != nil {
			return "", err
		}
		return a1, nil
	}
}

// clearBody clears from row 2 to the last used row across all used columns.
// An empty or header-only sheet needs no clearing.
func (w *Writer) clearBody(ctx context.Context, item config.SourceTarget) (string, error) {
	values, err := w.client.ReadRange(ctx, item.SpreadsheetID, QuoteSheet(item.Sheet))
	if err != nil {
		return "", err
	}

	lastRow := len(values)
	if lastRow < 2 {
		return "", nil
	}

	width := 0
	for _, row := range values {
		if len(row) > width {
			width = len(row)
		}
	}

	a1 := SheetRange(item.Sheet, fmt.Sprintf("A2:%s%d", ColumnLetter(width), lastRow))
	if err := w.client.ClearRange(ctx, item.SpreadsheetID, a1); err != nil {
		return "", err
	}
	return a1, nil
}

// CheckDestination implements pipeline.DestinationChecker.
func (w *Writer) CheckDestination(ctx context.Context, item config.SourceTarget) (*pipeline.DestinationStatus, error) {
	if _, err := w.client.SheetProperties(ctx, item.SpreadsheetID, item.Sheet); err != nil {
		return nil, err
	}
	return &pipeline.DestinationStatus{Exists: true}, nil
}
