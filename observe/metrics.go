package observe

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// Metrics records mealscout instruments.
//
// Contract:
// - Concurrency: implementations must be safe for concurrent use.
// - Context: must return quickly; no blocking I/O.
// - Errors: implementations must not panic.
type Metrics interface {
	// RecordCall records one catalog call with duration and error status.
	RecordCall(ctx context.Context, meta OpMeta, duration time.Duration, err error)

	// RecordCacheLookup records one detail cache resolution by outcome.
	RecordCacheLookup(ctx context.Context, outcome string)

	// RecordRun records the size of a finished pipeline run.
	RecordRun(ctx context.Context, candidates, shown int)
}

type metricsImpl struct {
	callTotal    metric.Int64Counter
	callErrors   metric.Int64Counter
	callDuration metric.Float64Histogram
	cacheLookups metric.Int64Counter
	runCands     metric.Int64Histogram
	runShown     metric.Int64Histogram
}

// NewMetrics creates the mealscout instruments on meter.
func NewMetrics(meter metric.Meter) (Metrics, error) {
	return newMetrics(meter)
}

func newMetrics(meter metric.Meter) (*metricsImpl, error) {
	m := &metricsImpl{}
	var err error

	if m.callTotal, err = meter.Int64Counter(
		"catalog.call.total",
		metric.WithDescription("Total number of catalog calls"),
		metric.WithUnit("{call}"),
	); err != nil {
		return nil, err
	}

	if m.callErrors, err = meter.Int64Counter(
		"catalog.call.errors",
		metric.WithDescription("Total number of failed catalog calls"),
		metric.WithUnit("{error}"),
	); err != nil {
		return nil, err
	}

	if m.callDuration, err = meter.Float64Histogram(
		"catalog.call.duration_ms",
		metric.WithDescription("Catalog call duration in milliseconds"),
		metric.WithUnit("ms"),
	); err != nil {
		return nil, err
	}

	if m.cacheLookups, err = meter.Int64Counter(
		"detail.cache.lookups",
		metric.WithDescription("Detail resolutions by outcome"),
		metric.WithUnit("{lookup}"),
	); err != nil {
		return nil, err
	}

	if m.runCands, err = meter.Int64Histogram(
		"pipeline.run.candidates",
		metric.WithDescription("Candidates listed per pipeline run"),
		metric.WithUnit("{recipe}"),
	); err != nil {
		return nil, err
	}

	if m.runShown, err = meter.Int64Histogram(
		"pipeline.run.shown",
		metric.WithDescription("Recipes shown per pipeline run"),
		metric.WithUnit("{recipe}"),
	); err != nil {
		return nil, err
	}

	return m, nil
}

func (m *metricsImpl) RecordCall(ctx context.Context, meta OpMeta, duration time.Duration, err error) {
	attrs := []attribute.KeyValue{
		attribute.String("op.id", meta.OpID()),
		attribute.String("op.name", meta.Name),
	}
	opt := metric.WithAttributes(attrs...)

	m.callTotal.Add(ctx, 1, opt)
	if err != nil {
		m.callErrors.Add(ctx, 1, opt)
	}
	m.callDuration.Record(ctx, float64(duration.Milliseconds()), opt)
}

func (m *metricsImpl) RecordCacheLookup(ctx context.Context, outcome string) {
	m.cacheLookups.Add(ctx, 1, metric.WithAttributes(attribute.String("outcome", outcome)))
}

func (m *metricsImpl) RecordRun(ctx context.Context, candidates, shown int) {
	m.runCands.Record(ctx, int64(candidates))
	m.runShown.Record(ctx, int64(shown))
}

// NopMetrics returns a Metrics that records nothing.
func NopMetrics() Metrics {
	return noopMetrics{}
}

type noopMetrics struct{}

func (noopMetrics) RecordCall(context.Context, OpMeta, time.Duration, error) {}
func (noopMetrics) RecordCacheLookup(context.Context, string)               {}
func (noopMetrics) RecordRun(context.Context, int, int)                     {}
