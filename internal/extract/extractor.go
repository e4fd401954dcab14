package extract

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/mwalther/sheetsync/internal/instrumentation"
	"github.com/mwalther/sheetsync/internal/logging"
	"github.com/mwalther/sheetsync/internal/pipeline"
	"github.com/mwalther/sheetsync/internal/retry"
)

// Defaults for the conversion path.
const (
	DefaultSettleDelay = 2 * time.Second
	DefaultMaxAttempts = 3
	DefaultRetryDelay  = 5 * time.Second
)

// ValuesReader reads the first sheet of a converted spreadsheet. Implemented
// by *sheets.Client.
type ValuesReader interface {
	FirstSheetValues(ctx context.Context, spreadsheetID string) ([][]any, error)
}

// Extractor converts raw spreadsheet artifacts into tabular data. OOXML
// workbooks are parsed in-process; everything else round-trips through the
// Converter backend. It implements pipeline.Extractor.
type Extractor struct {
	conv    Converter
	store   ValuesReader
	logger  *slog.Logger
	metrics *instrumentation.Metrics

	settleDelay time.Duration
	maxAttempts uint
	retryDelay  time.Duration
}

// Option configures an Extractor.
type Option func(*Extractor)

// WithMetrics attaches a metrics recorder.
func WithMetrics(m *instrumentation.Metrics) Option {
	return func(e *Extractor) { e.metrics = m }
}

// WithSettleDelay overrides the pause before temporary files are cleaned up.
func WithSettleDelay(d time.Duration) Option {
	return func(e *Extractor) { e.settleDelay = d }
}

// WithRetry overrides the conversion retry policy.
func WithRetry(maxAttempts uint, delay time.Duration) Option {
	return func(e *Extractor) {
		e.maxAttempts = maxAttempts
		e.retryDelay = delay
	}
}

// New creates an Extractor backed by a converter and a spreadsheet store.
func New(conv Converter, store ValuesReader, logger *slog.Logger, opts ...Option) *Extractor {
	if logger == nil {
		logger = slog.Default()
	}
	e := &Extractor{
		conv:        conv,
		store:       store,
		logger:      logger,
		settleDelay: DefaultSettleDelay,
		maxAttempts: DefaultMaxAttempts,
		retryDelay:  DefaultRetryDelay,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Extract implements pipeline.Extractor. The returned data excludes the
// header row; a workbook with zero or one rows yields empty data, not an
// error.
func (e *Extractor) Extract(ctx context.Context, artifact *pipeline.Artifact) (pipeline.TabularData, error) {
	if artifact == nil {
		return nil, fmt.Errorf("artifact is required")
	}

	if isXLSX(artifact) {
		rows, err := parseXLSX(artifact)
		if err != nil {
			return nil, fmt.Errorf("artifact %s: %v: %w", artifact.Filename, err, pipeline.ErrFileProcessing)
		}
		return rows, nil
	}

	return e.extractViaConversion(ctx, artifact)
}

// extractViaConversion uploads the artifact, converts it into a temporary
// spreadsheet, reads the first sheet, and releases both temporary files.
func (e *Extractor) extractViaConversion(ctx context.Context, artifact *pipeline.Artifact) (pipeline.TabularData, error) {
	conv, err := retry.Do(ctx, "convert "+artifact.Filename, retry.Config{
		MaxAttempts: e.maxAttempts,
		Delay:       e.retryDelay,
		Logger:      e.logger,
		OnRetry:     func() { e.metrics.RecordRetry(ctx, "convert") },
	}, func() (*Conversion, error) {
		return e.conv.Convert(ctx, artifact)
	})
	if err != nil {
		return nil, fmt.Errorf("artifact %s: %v: %w", artifact.Filename, err, pipeline.ErrFileProcessing)
	}

	defer e.cleanup(ctx, artifact, conv)

	values, err := e.store.FirstSheetValues(ctx, conv.SpreadsheetID)
	if err != nil {
		return nil, fmt.Errorf("artifact %s: %v: %w", artifact.Filename, err, pipeline.ErrFileProcessing)
	}

	if len(values) <= 1 {
		return pipeline.TabularData{}, nil
	}
	return pipeline.TabularData(values[1:]), nil
}

// cleanup releases the temporary files after a settle delay. Failures are
// logged and never propagated; the converted data is already in hand.
func (e *Extractor) cleanup(ctx context.Context, artifact *pipeline.Artifact, conv *Conversion) {
	// Deleting a file the conversion backend is still finalizing can wedge
	// it; give the backend a moment first.
	sleepCtx(ctx, e.settleDelay)

	if err := e.conv.Cleanup(ctx, conv); err != nil {
		e.logger.Warn("failed to clean up temporary conversion files",
			logging.Operation("extract"),
			slog.String("filename", artifact.Filename),
			logging.Err(err),
		)
	}
}

// sleepCtx sleeps for d or until ctx is done, whichever comes first.
func sleepCtx(ctx context.Context, d time.Duration) {
	if d <= 0 {
		return
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
	case <-t.C:
	}
}
