package pipeline

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mwalther/sheetsync/internal/config"
)

type fakeReader struct {
	sources map[string]*Source
	errs    map[string]error
	calls   []string
}

func (f *fakeReader) Fetch(ctx context.Context, item config.SourceTarget) (*Source, error) {
	f.calls = append(f.calls, item.Source)
	if err, ok := f.errs[item.Source]; ok {
		return nil, err
	}
	if src, ok := f.sources[item.Source]; ok {
		return src, nil
	}
	return &Source{Rows: TabularData{}}, nil
}

type fakeExtractor struct {
	rows  TabularData
	err   error
	calls int
}

func (f *fakeExtractor) Extract(ctx context.Context, artifact *Artifact) (TabularData, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.rows, nil
}

type fakeWriter struct {
	errs   map[string]error
	writes []TabularData
	items  []config.SourceTarget
}

func (f *fakeWriter) Write(ctx context.Context, item config.SourceTarget, data TabularData) (*WriteResult, error) {
	if err, ok := f.errs[item.Source]; ok {
		return nil, err
	}
	f.writes = append(f.writes, data)
	f.items = append(f.items, item)
	cols := 0
	if len(data) > 0 {
		cols = len(data[0])
	}
	return &WriteResult{
		SpreadsheetID:   item.SpreadsheetID,
		Sheet:           item.Sheet,
		RowsInserted:    len(data),
		ColumnsInserted: cols,
		ClearedRange:    item.ClearRange,
		Timestamp:       time.Now(),
	}, nil
}

func item(source string) config.SourceTarget {
	return config.SourceTarget{
		Source:        source,
		SpreadsheetID: "dest-id",
		Sheet:         "Data",
		ClearRange:    "A2:H",
	}
}

func newTestRunner(reader SourceReader, extractor Extractor, writer DestinationWriter) *Runner {
	return NewRunner("test", reader, extractor, writer, nil, WithPause(0))
}

func TestRunAllPreflightAbortsBeforeAnySideEffect(t *testing.T) {
	reader := &fakeReader{}
	writer := &fakeWriter{}

	items := []config.SourceTarget{
		item("one"),
		item("two"),
		{Source: "three", Sheet: "Data"}, // missing clear_range and spreadsheet_id
		item("four"),
		item("five"),
	}

	_, err := newTestRunner(reader, nil, writer).RunAll(context.Background(), items)
	require.Error(t, err)

	assert.ErrorIs(t, err, config.ErrMissingParameters)
	assert.Empty(t, reader.calls, "no source may be touched when pre-flight fails")
	assert.Empty(t, writer.writes, "no write may happen when pre-flight fails")
}

func TestRunAllIsolatesItemFailures(t *testing.T) {
	reader := &fakeReader{
		sources: map[string]*Source{
			"one":   {Rows: TabularData{{"a"}}},
			"three": {Rows: TabularData{{"c"}}},
		},
		errs: map[string]error{
			"two": errors.New("boom"),
		},
	}
	writer := &fakeWriter{}

	batch, err := newTestRunner(reader, nil, writer).RunAll(context.Background(),
		[]config.SourceTarget{item("one"), item("two"), item("three")})
	require.NoError(t, err)

	require.Len(t, batch.Results, 3)
	assert.True(t, batch.Results[0].Success)
	assert.False(t, batch.Results[1].Success)
	assert.Contains(t, batch.Results[1].Error, "boom")
	assert.True(t, batch.Results[2].Success)
	assert.Equal(t, 2, batch.Successful)
	assert.Equal(t, 1, batch.Failed)
	assert.Len(t, writer.writes, 2)
}

func TestRunAllMissingLabelScenario(t *testing.T) {
	reader := &fakeReader{
		errs: map[string]error{
			"Missing/Label": fmt.Errorf("label %q: %w", "Missing/Label", ErrLabelNotFound),
		},
	}
	writer := &fakeWriter{}

	items := []config.SourceTarget{
		{Source: "Missing/Label", SpreadsheetID: "X", Sheet: "X", ClearRange: "A2:H"},
		item("present"),
	}

	batch, err := newTestRunner(reader, nil, writer).RunAll(context.Background(), items)
	require.NoError(t, err)

	assert.False(t, batch.Results[0].Success)
	assert.Contains(t, batch.Results[0].Error, "does not exist")
	assert.True(t, batch.Results[1].Success, "batch continues after a missing label")
}

func TestRunAllExtractsArtifacts(t *testing.T) {
	reader := &fakeReader{
		sources: map[string]*Source{
			"mail": {Artifact: &Artifact{Filename: "report.xls", Data: []byte("raw")}},
		},
	}
	extractor := &fakeExtractor{rows: TabularData{{"a", "b"}, {"c", "d"}}}
	writer := &fakeWriter{}

	batch, err := newTestRunner(reader, extractor, writer).RunAll(context.Background(),
		[]config.SourceTarget{item("mail")})
	require.NoError(t, err)

	assert.Equal(t, 1, extractor.calls)
	require.Len(t, writer.writes, 1)
	assert.Equal(t, TabularData{{"a", "b"}, {"c", "d"}}, writer.writes[0])
	assert.Equal(t, 2, batch.Results[0].RowsWritten)
}

func TestRunAllSkipsExtractorForTabularSources(t *testing.T) {
	reader := &fakeReader{
		sources: map[string]*Source{
			"sheet": {Rows: TabularData{{"x"}}},
		},
	}
	extractor := &fakeExtractor{}
	writer := &fakeWriter{}

	_, err := newTestRunner(reader, extractor, writer).RunAll(context.Background(),
		[]config.SourceTarget{item("sheet")})
	require.NoError(t, err)

	assert.Zero(t, extractor.calls)
	require.Len(t, writer.writes, 1)
	assert.Equal(t, TabularData{{"x"}}, writer.writes[0])
}

func TestRunAllArtifactWithoutExtractorFails(t *testing.T) {
	reader := &fakeReader{
		sources: map[string]*Source{
			"mail": {Artifact: &Artifact{Filename: "report.xls"}},
		},
	}
	writer := &fakeWriter{}

	batch, err := newTestRunner(reader, nil, writer).RunAll(context.Background(),
		[]config.SourceTarget{item("mail")})
	require.NoError(t, err)

	assert.False(t, batch.Results[0].Success)
	assert.Contains(t, batch.Results[0].Error, "no extractor")
	assert.Empty(t, writer.writes)
}

func TestRunAllDoesNotRetryFetchOrWrite(t *testing.T) {
	reader := &fakeReader{
		errs: map[string]error{"flaky": errors.New("transient")},
	}
	writer := &fakeWriter{}

	_, err := newTestRunner(reader, nil, writer).RunAll(context.Background(),
		[]config.SourceTarget{item("flaky")})
	require.NoError(t, err)

	// Only the extraction step has retry semantics; a failing fetch is
	// attempted exactly once.
	assert.Equal(t, []string{"flaky"}, reader.calls)
}

func TestRunAllEmptyDataStillWrites(t *testing.T) {
	reader := &fakeReader{
		sources: map[string]*Source{
			"empty": {Rows: TabularData{}},
		},
	}
	writer := &fakeWriter{}

	batch, err := newTestRunner(reader, nil, writer).RunAll(context.Background(),
		[]config.SourceTarget{item("empty")})
	require.NoError(t, err)

	require.Len(t, writer.writes, 1, "an empty source still clears the destination")
	assert.Empty(t, writer.writes[0])
	assert.True(t, batch.Results[0].Success)
	assert.Zero(t, batch.Results[0].RowsWritten)
}

func TestRunAllWriteFailureIsRecorded(t *testing.T) {
	reader := &fakeReader{
		sources: map[string]*Source{"one": {Rows: TabularData{{"a"}}}},
	}
	writer := &fakeWriter{
		errs: map[string]error{"one": fmt.Errorf("sheet %q: %w", "Data", ErrSheetNotFound)},
	}

	batch, err := newTestRunner(reader, nil, writer).RunAll(context.Background(),
		[]config.SourceTarget{item("one")})
	require.NoError(t, err)

	assert.False(t, batch.Results[0].Success)
	assert.Contains(t, batch.Results[0].Error, "sheet not found")
}

func TestRunAllStopsWhenContextCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	reader := &fakeReader{}
	writer := &fakeWriter{}

	batch, err := NewRunner("test", reader, nil, writer, nil, WithPause(time.Millisecond)).
		RunAll(ctx, []config.SourceTarget{item("one"), item("two"), item("three")})
	require.Error(t, err)

	assert.ErrorIs(t, err, context.Canceled)
	require.NotNil(t, batch)
	assert.Less(t, len(batch.Results), 3)
}

func TestBatchResultSummary(t *testing.T) {
	batch := &BatchResult{
		RunID:      "run-1",
		Successful: 1,
		Failed:     1,
		Results: []ItemResult{
			{Success: true, Source: "one", Sheet: "Data", RowsWritten: 4},
			{Success: false, Source: "two", Error: "label does not exist"},
		},
	}

	summary := batch.Summary()
	assert.Contains(t, summary, "2 items, 1 succeeded, 1 failed")
	assert.Contains(t, summary, "one")
	assert.Contains(t, summary, "label does not exist")
}
