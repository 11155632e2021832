package observe

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// Metric instrument names.
const (
	MetricRemoteCalls    = "culr.remote.calls"
	MetricRemoteErrors   = "culr.remote.errors"
	MetricRemoteDuration = "culr.remote.duration_ms"
	MetricRemoteRetries  = "culr.remote.retries"
	MetricCacheHits      = "culr.cache.hits"
	MetricCacheMisses    = "culr.cache.misses"
)

// Metrics records connector metrics.
//
// Contract:
// - Concurrency: implementations must be safe for concurrent use.
// - Errors: implementations must not panic.
type Metrics interface {
	// RecordCall records one remote operation, including all its retries.
	RecordCall(ctx context.Context, meta OperationMeta, duration time.Duration, err error)

	// RecordRetry records that an attempt failed and will be retried.
	RecordRetry(ctx context.Context, meta OperationMeta)

	// RecordCacheLookup records a cache hit or miss.
	RecordCacheLookup(ctx context.Context, meta OperationMeta, hit bool)
}

type metricsImpl struct {
	calls    metric.Int64Counter
	errors   metric.Int64Counter
	duration metric.Float64Histogram
	retries  metric.Int64Counter
	hits     metric.Int64Counter
	misses   metric.Int64Counter
}

// NewMetrics creates the connector instruments on meter.
func NewMetrics(meter metric.Meter) (Metrics, error) {
	var m metricsImpl
	var err error

	counters := []struct {
		dst  *metric.Int64Counter
		name string
		desc string
		unit string
	}{
		{&m.calls, MetricRemoteCalls, "Total number of remote operations", "{call}"},
		{&m.errors, MetricRemoteErrors, "Total number of failed remote operations", "{error}"},
		{&m.retries, MetricRemoteRetries, "Total number of retried attempts", "{retry}"},
		{&m.hits, MetricCacheHits, "Total number of lookup cache hits", "{hit}"},
		{&m.misses, MetricCacheMisses, "Total number of lookup cache misses", "{miss}"},
	}
	for _, c := range counters {
		*c.dst, err = meter.Int64Counter(c.name, metric.WithDescription(c.desc), metric.WithUnit(c.unit))
		if err != nil {
			return nil, err
		}
	}

	m.duration, err = meter.Float64Histogram(
		MetricRemoteDuration,
		metric.WithDescription("Remote operation duration in milliseconds, retries included"),
		metric.WithUnit("ms"),
	)
	if err != nil {
		return nil, err
	}

	return &m, nil
}

func (m *metricsImpl) RecordCall(ctx context.Context, meta OperationMeta, duration time.Duration, err error) {
	opt := metric.WithAttributes(meta.attributes()...)

	m.calls.Add(ctx, 1, opt)
	if err != nil {
		m.errors.Add(ctx, 1, opt)
	}
	m.duration.Record(ctx, float64(duration.Milliseconds()), opt)
}

func (m *metricsImpl) RecordRetry(ctx context.Context, meta OperationMeta) {
	m.retries.Add(ctx, 1, metric.WithAttributes(meta.attributes()...))
}

func (m *metricsImpl) RecordCacheLookup(ctx context.Context, meta OperationMeta, hit bool) {
	opt := metric.WithAttributes(attribute.String("op.name", meta.Name))
	if hit {
		m.hits.Add(ctx, 1, opt)
		return
	}
	m.misses.Add(ctx, 1, opt)
}

type noopMetrics struct{}

// NopMetrics returns a Metrics that records nothing.
func NopMetrics() Metrics { return noopMetrics{} }

func (noopMetrics) RecordCall(context.Context, OperationMeta, time.Duration, error) {}
func (noopMetrics) RecordRetry(context.Context, OperationMeta)                      {}
func (noopMetrics) RecordCacheLookup(context.Context, OperationMeta, bool)          {}
