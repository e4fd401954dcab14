package instrumentation

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// Metric attribute keys.
const (
	attrPipeline = "pipeline"
	attrResult   = "result"
	attrStep     = "step"
)

// Result values recorded on item metrics.
const (
	ResultSuccess = "success"
	ResultError   = "error"
)

// Metrics records pipeline observability metrics. A nil *Metrics is a valid
// no-op recorder, so callers never have to guard their instrumentation calls.
type Metrics struct {
	itemsTotal    metric.Int64Counter
	itemDuration  metric.Float64Histogram
	retriesTotal  metric.Int64Counter
	batchesTotal  metric.Int64Counter
	batchDuration metric.Float64Histogram
}

// NewMetrics creates a Metrics instance with all instruments initialized.
func NewMetrics(meter metric.Meter) (*Metrics, error) {
	m := &Metrics{}

	var err error

	m.itemsTotal, err = meter.Int64Counter(
		"sheetsync_items_total",
		metric.WithDescription("Total number of config items processed"),
		metric.WithUnit("{item}"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create sheetsync_items_total counter: %w", err)
	}

	m.itemDuration, err = meter.Float64Histogram(
		"sheetsync_item_duration_seconds",
		metric.WithDescription("Per-item pipeline duration in seconds"),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(0.1, 0.5, 1.0, 2.5, 5.0, 10.0, 30.0, 60.0),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create sheetsync_item_duration_seconds histogram: %w", err)
	}

	m.retriesTotal, err = meter.Int64Counter(
		"sheetsync_retries_total",
		metric.WithDescription("Total number of retried operations"),
		metric.WithUnit("{retry}"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create sheetsync_retries_total counter: %w", err)
	}

	m.batchesTotal, err = meter.Int64Counter(
		"sheetsync_batches_total",
		metric.WithDescription("Total number of batch runs"),
		metric.WithUnit("{batch}"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create sheetsync_batches_total counter: %w", err)
	}

	m.batchDuration, err = meter.Float64Histogram(
		"sheetsync_batch_duration_seconds",
		metric.WithDescription("Whole-batch duration in seconds"),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(1.0, 5.0, 15.0, 30.0, 60.0, 120.0, 300.0),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create sheetsync_batch_duration_seconds histogram: %w", err)
	}

	return m, nil
}

// RecordItem records the outcome and duration of one processed config item.
func (m *Metrics) RecordItem(ctx context.Context, pipeline, result string, seconds float64) {
	if m == nil || m.itemsTotal == nil {
		return
	}
	attrs := metric.WithAttributes(
		attribute.String(attrPipeline, pipeline),
		attribute.String(attrResult, result),
	)
	m.itemsTotal.Add(ctx, 1, attrs)
	m.itemDuration.Record(ctx, seconds, metric.WithAttributes(attribute.String(attrPipeline, pipeline)))
}

// RecordRetry records one retried attempt of a named step.
func (m *Metrics) RecordRetry(ctx context.Context, step string) {
	if m == nil || m.retriesTotal == nil {
		return
	}
	m.retriesTotal.Add(ctx, 1, metric.WithAttributes(attribute.String(attrStep, step)))
}

// RecordBatch records the completion of a whole batch run.
func (m *Metrics) RecordBatch(ctx context.Context, pipeline string, seconds float64) {
	if m == nil || m.batchesTotal == nil {
		return
	}
	attrs := metric.WithAttributes(attribute.String(attrPipeline, pipeline))
	m.batchesTotal.Add(ctx, 1, attrs)
	m.batchDuration.Record(ctx, seconds, attrs)
}
