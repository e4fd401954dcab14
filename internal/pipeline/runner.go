package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/mwalther/sheetsync/internal/config"
	"github.com/mwalther/sheetsync/internal/instrumentation"
	"github.com/mwalther/sheetsync/internal/logging"
)

// DefaultPause is the pause between config items. Sequential processing with
// an inter-item delay is the backpressure strategy against the Google API
// rate limits.
const DefaultPause = 500 * time.Millisecond

// Runner drives a batch of config items through fetch, optional extraction,
// and write. Items run strictly one after another.
type Runner struct {
	name      string
	reader    SourceReader
	extractor Extractor
	writer    DestinationWriter
	logger    *slog.Logger
	metrics   *instrumentation.Metrics
	pause     time.Duration
	now       func() time.Time
}

// RunnerOption configures a Runner.
type RunnerOption func(*Runner)

// WithPause overrides the pause between items.
func WithPause(d time.Duration) RunnerOption {
	return func(r *Runner) { r.pause = d }
}

// WithMetrics attaches a metrics recorder.
func WithMetrics(m *instrumentation.Metrics) RunnerOption {
	return func(r *Runner) { r.metrics = m }
}

// WithClock overrides the time source for result timestamps.
func WithClock(now func() time.Time) RunnerOption {
	return func(r *Runner) { r.now = now }
}

// NewRunner creates a batch runner. The extractor may be nil for pipelines
// whose sources always yield tabular rows.
func NewRunner(name string, reader SourceReader, extractor Extractor, writer DestinationWriter, logger *slog.Logger, opts ...RunnerOption) *Runner {
	if logger == nil {
		logger = slog.Default()
	}
	r := &Runner{
		name:      name,
		reader:    reader,
		extractor: extractor,
		writer:    writer,
		logger:    logger,
		pause:     DefaultPause,
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// RunAll processes every item and returns the aggregate result. The whole
// batch is validated before the first side effect; a pre-flight failure
// aborts the call with an error and touches nothing. After pre-flight, one
// item's failure is recorded and never aborts its siblings.
func (r *Runner) RunAll(ctx context.Context, items []config.SourceTarget) (*BatchResult, error) {
	if err := r.preflight(items); err != nil {
		return nil, err
	}

	batch := &BatchResult{RunID: uuid.NewString()}
	logger := r.logger.With(logging.Operation(r.name), logging.Run(batch.RunID))
	logger.Info("starting batch", slog.Int("items", len(items)))

	start := r.now()
	for i, item := range items {
		result := r.runItem(ctx, item)
		batch.Results = append(batch.Results, result)
		if result.Success {
			batch.Successful++
		} else {
			batch.Failed++
			logger.Warn("item failed", logging.Label(item.Source), slog.String("reason", result.Error))
		}

		if i < len(items)-1 {
			sleepCtx(ctx, r.pause)
		}
		if ctx.Err() != nil {
			return batch, fmt.Errorf("batch %s interrupted: %w", batch.RunID, ctx.Err())
		}
	}

	r.metrics.RecordBatch(ctx, r.name, r.now().Sub(start).Seconds())
	logger.Info("batch complete",
		slog.Int("successful", batch.Successful),
		slog.Int("failed", batch.Failed),
	)
	return batch, nil
}

// preflight validates every item before any side effect. Range format
// problems are only logged; structural defects abort the batch.
func (r *Runner) preflight(items []config.SourceTarget) error {
	for i, item := range items {
		scope := fmt.Sprintf("%s item %d (%s)", r.name, i, item.Source)
		if err := config.ValidateItem(item, scope); err != nil {
			return fmt.Errorf("pre-flight validation failed: %w", err)
		}
		warnings, err := config.ValidateRange(item.ClearRange, scope)
		if err != nil {
			return fmt.Errorf("pre-flight validation failed: %w", err)
		}
		for _, warning := range warnings {
			r.logger.Warn(warning, logging.Operation(r.name))
		}
	}
	if err := config.ValidateTargets(items, r.name); err != nil {
		return fmt.Errorf("pre-flight validation failed: %w", err)
	}
	return nil
}

// runItem runs one config item through the pipeline. Only the conversion
// step inside the extractor retries; fetch and write failures surface
// immediately.
func (r *Runner) runItem(ctx context.Context, item config.SourceTarget) ItemResult {
	start := r.now()

	result, err := r.processItem(ctx, item)
	elapsed := r.now().Sub(start).Seconds()
	if err != nil {
		r.metrics.RecordItem(ctx, r.name, instrumentation.ResultError, elapsed)
		return ItemResult{
			Success:   false,
			Source:    item.Source,
			Sheet:     item.Sheet,
			Error:     err.Error(),
			Timestamp: r.now(),
		}
	}

	r.metrics.RecordItem(ctx, r.name, instrumentation.ResultSuccess, elapsed)
	return *result
}

func (r *Runner) processItem(ctx context.Context, item config.SourceTarget) (*ItemResult, error) {
	src, err := r.reader.Fetch(ctx, item)
	if err != nil {
		return nil, err
	}

	data := src.Rows
	if src.Artifact != nil {
		if r.extractor == nil {
			return nil, fmt.Errorf("source %q produced a raw artifact but no extractor is configured", item.Source)
		}
		data, err = r.extractor.Extract(ctx, src.Artifact)
		if err != nil {
			return nil, err
		}
	}

	written, err := r.writer.Write(ctx, item, data)
	if err != nil {
		return nil, err
	}

	return &ItemResult{
		Success:     true,
		Source:      item.Source,
		Sheet:       written.Sheet,
		RowsWritten: written.RowsInserted,
		Timestamp:   written.Timestamp,
	}, nil
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
