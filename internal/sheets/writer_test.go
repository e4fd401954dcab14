package sheets

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	sheetsapi "google.golang.org/api/sheets/v4"

	"github.com/mwalther/sheetsync/internal/config"
	"github.com/mwalther/sheetsync/internal/pipeline"
)

// fakeStore is an in-memory single-spreadsheet store. Ranges are restricted
// to the column-bounded forms the writer actually produces (A2:H, A2:B3).
type fakeStore struct {
	grids   map[string][][]any
	cleared []string
	written []string
	note    string
	noteErr error
}

func newFakeStore(title string, grid [][]any) *fakeStore {
	return &fakeStore{grids: map[string][][]any{title: grid}}
}

func (f *fakeStore) SheetProperties(ctx context.Context, spreadsheetID, title string) (*sheetsapi.SheetProperties, error) {
	if _, ok := f.grids[title]; !ok {
		return nil, fmt.Errorf("sheet %q in %s: %w", title, spreadsheetID, pipeline.ErrSheetNotFound)
	}
	return &sheetsapi.SheetProperties{Title: title, SheetId: 7}, nil
}

func (f *fakeStore) ReadRange(ctx context.Context, spreadsheetID, a1 string) ([][]any, error) {
	grid, ok := f.grids[unquoteTitle(a1)]
	if !ok {
		return nil, pipeline.ErrSheetNotFound
	}
	return grid, nil
}

func (f *fakeStore) ClearRange(ctx context.Context, spreadsheetID, a1 string) error {
	title, start, end := parseRange(a1)
	grid := f.grids[title]
	if end == 0 || end > len(grid) {
		end = len(grid)
	}
	for row := start; row <= end; row++ {
		for col := range grid[row-1] {
			grid[row-1][col] = ""
		}
	}
	f.cleared = append(f.cleared, a1)
	return nil
}

func (f *fakeStore) WriteRange(ctx context.Context, spreadsheetID, a1 string, values [][]any) error {
	title, start, _ := parseRange(a1)
	grid := f.grids[title]
	for i, row := range values {
		at := start - 1 + i
		for at >= len(grid) {
			grid = append(grid, nil)
		}
		grid[at] = append([]any(nil), row...)
	}
	f.grids[title] = grid
	f.written = append(f.written, a1)
	return nil
}

func (f *fakeStore) SetNote(ctx context.Context, spreadsheetID string, sheetID int64, note string) error {
	if f.noteErr != nil {
		return f.noteErr
	}
	f.note = note
	return nil
}

func unquoteTitle(a1 string) string {
	return strings.Trim(a1, "'")
}

// parseRange splits "Data!A2:B3" into its title and row bounds. A missing
// trailing row number (A2:H) yields end 0.
func parseRange(a1 string) (title string, start, end int) {
	title, rng, _ := strings.Cut(a1, "!")
	title = unquoteTitle(title)
	from, to, _ := strings.Cut(rng, ":")
	start = trailingNumber(from)
	end = trailingNumber(to)
	return title, start, end
}

func trailingNumber(ref string) int {
	i := 0
	for i < len(ref) && (ref[i] < '0' || ref[i] > '9') {
		i++
	}
	n, _ := strconv.Atoi(ref[i:])
	return n
}

func newTestWriter(store *fakeStore, strategy ClearStrategy) *Writer {
	w := NewWriter(nil, strategy, nil)
	w.client = store
	w.now = func() time.Time { return time.Date(2026, 3, 2, 6, 30, 0, 0, time.UTC) }
	return w
}

func destItem(sheet, clearRange string) config.SourceTarget {
	return config.SourceTarget{
		Source:        "Reports/Enrollment",
		SpreadsheetID: "dest-id",
		Sheet:         sheet,
		ClearRange:    clearRange,
	}
}

func TestWriteRoundTripPreservesHeader(t *testing.T) {
	store := newFakeStore("Data", [][]any{
		{"Date", "Name"},
		{"stale", "stale"},
		{"stale", "stale"},
		{"stale", "stale"},
	})
	w := newTestWriter(store, ClearBody)

	data := pipeline.TabularData{{"2025-01-01", "Smith"}, {"2025-01-02", "Jones"}}
	result, err := w.Write(context.Background(), destItem("Data", "A2:B"), data)
	require.NoError(t, err)

	grid := store.grids["Data"]
	assert.Equal(t, []any{"Date", "Name"}, grid[0], "header row is never touched")
	assert.Equal(t, []any{"2025-01-01", "Smith"}, grid[1])
	assert.Equal(t, []any{"2025-01-02", "Jones"}, grid[2])
	assert.Equal(t, []any{"", ""}, grid[3], "stale row beyond the new data is cleared")

	assert.Equal(t, 2, result.RowsInserted)
	assert.Equal(t, 2, result.ColumnsInserted)
	assert.Contains(t, store.note, "Updated on ")
}

func TestWriteIsIdempotent(t *testing.T) {
	store := newFakeStore("Data", [][]any{
		{"Date", "Name"},
		{"old", "old"},
	})
	w := newTestWriter(store, ClearBody)
	data := pipeline.TabularData{{"a", "b"}, {"c", "d"}}

	_, err := w.Write(context.Background(), destItem("Data", "A2:B"), data)
	require.NoError(t, err)
	first := fmt.Sprint(store.grids["Data"])

	_, err = w.Write(context.Background(), destItem("Data", "A2:B"), data)
	require.NoError(t, err)

	assert.Equal(t, first, fmt.Sprint(store.grids["Data"]))
}

func TestWriteDeclaredRangeStrategy(t *testing.T) {
	store := newFakeStore("Roster", [][]any{
		{"Header"},
		{"old"},
	})
	w := newTestWriter(store, ClearDeclaredRange)

	result, err := w.Write(context.Background(), destItem("Roster", "A2:H"), pipeline.TabularData{{"new"}})
	require.NoError(t, err)

	require.Equal(t, []string{"Roster!A2:H"}, store.cleared)
	assert.Equal(t, "Roster!A2:H", result.ClearedRange)
	assert.Equal(t, []any{"Header"}, store.grids["Roster"][0])
	assert.Equal(t, []any{"new"}, store.grids["Roster"][1])
}

func TestWriteEmptyDataClearsWithoutError(t *testing.T) {
	store := newFakeStore("Data", [][]any{
		{"Date", "Name"},
		{"old", "old"},
	})
	w := newTestWriter(store, ClearBody)

	result, err := w.Write(context.Background(), destItem("Data", "A2:B"), pipeline.TabularData{})
	require.NoError(t, err)

	assert.Zero(t, result.RowsInserted)
	assert.Empty(t, store.written, "nothing is written for an empty source")
	assert.Equal(t, []any{"", ""}, store.grids["Data"][1], "stale body is still cleared")
}

func TestWriteUnknownSheet(t *testing.T) {
	store := newFakeStore("Data", [][]any{{"Header"}})
	w := newTestWriter(store, ClearDeclaredRange)

	_, err := w.Write(context.Background(), destItem("Missing", "A2:H"), pipeline.TabularData{{"x"}})
	require.Error(t, err)
	assert.ErrorIs(t, err, pipeline.ErrSheetNotFound)
	assert.Empty(t, store.cleared)
}

func TestWriteNoteFailureIsNotFatal(t *testing.T) {
	store := newFakeStore("Data", [][]any{{"Header"}, {"old"}})
	store.noteErr = fmt.Errorf("quota exceeded")
	w := newTestWriter(store, ClearBody)

	result, err := w.Write(context.Background(), destItem("Data", "A2:B"), pipeline.TabularData{{"x"}})
	require.NoError(t, err, "a failed note stamp never fails the write")
	assert.Equal(t, 1, result.RowsInserted)
}

func TestReaderFetchDropsHeaderAndEmptyRows(t *testing.T) {
	store := newFakeStore("Source", [][]any{
		{"Date", "Name"},
		{"2025-01-01", "Smith"},
		{"", ""},
		{"2025-01-02", "Jones"},
	})
	r := NewReader(nil, nil)
	r.client = store

	item := config.SourceTarget{
		Source:              "Source",
		SourceSpreadsheetID: "src-id",
		SpreadsheetID:       "dest-id",
		Sheet:               "Data",
		ClearRange:          "A2:B",
	}

	src, err := r.Fetch(context.Background(), item)
	require.NoError(t, err)
	assert.Equal(t, pipeline.TabularData{{"2025-01-01", "Smith"}, {"2025-01-02", "Jones"}}, src.Rows)

	status, err := r.CheckSource(context.Background(), item)
	require.NoError(t, err)
	assert.Equal(t, 2, status.Items)
}

func TestReaderFetchRequiresSourceSpreadsheet(t *testing.T) {
	r := NewReader(nil, nil)
	r.client = newFakeStore("Source", nil)

	_, err := r.Fetch(context.Background(), destItem("Data", "A2:B"))
	require.Error(t, err)
	assert.ErrorIs(t, err, config.ErrMissingParameters)
}
