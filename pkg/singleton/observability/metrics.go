package observability

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// MetricsRecorder records store metrics.
// Use NewMetricsRecorder() for OTel metrics or NoopMetrics{} when disabled.
type MetricsRecorder interface {
	// RecordLookup records a lookup and whether it found an existing value.
	RecordLookup(ctx context.Context, kind, typeName string, hit bool)

	// RecordInit records one initializer run with its duration and error status.
	RecordInit(ctx context.Context, kind, typeName string, duration time.Duration, err error)

	// RecordDiscard records a constructed value dropped after losing the
	// insertion race.
	RecordDiscard(ctx context.Context, kind, typeName string)
}

// otelMetrics implements MetricsRecorder using OpenTelemetry.
type otelMetrics struct {
	lookups     metric.Int64Counter
	initLatency metric.Float64Histogram
	initErrors  metric.Int64Counter
	discarded   metric.Int64Counter
}

var (
	defaultMetrics     *otelMetrics
	defaultMetricsOnce sync.Once
	defaultMetricsErr  error
)

// getDefaultMetrics returns the default OTel metrics instance.
// Lazily initializes the metrics on first call.
func getDefaultMetrics() (*otelMetrics, error) {
	defaultMetricsOnce.Do(func() {
		defaultMetrics, defaultMetricsErr = newOtelMetrics()
	})
	return defaultMetrics, defaultMetricsErr
}

// newOtelMetrics creates a new OTel metrics instance.
func newOtelMetrics() (*otelMetrics, error) {
	meter := otel.Meter("singleton")

	lookups, err := meter.Int64Counter("singleton.lookups",
		metric.WithDescription("Number of store lookups, by hit or miss"),
	)
	if err != nil {
		return nil, err
	}

	initLatency, err := meter.Float64Histogram("singleton.init.latency_ms",
		metric.WithDescription("Initializer latency in milliseconds"),
		metric.WithUnit("ms"),
	)
	if err != nil {
		return nil, err
	}

	initErrors, err := meter.Int64Counter("singleton.init.failures",
		metric.WithDescription("Number of initializers that returned an error"),
	)
	if err != nil {
		return nil, err
	}

	discarded, err := meter.Int64Counter("singleton.init.discarded",
		metric.WithDescription("Number of constructed values dropped after losing the insertion race"),
	)
	if err != nil {
		return nil, err
	}

	return &otelMetrics{
		lookups:     lookups,
		initLatency: initLatency,
		initErrors:  initErrors,
		discarded:   discarded,
	}, nil
}

// NewMetricsRecorder returns a MetricsRecorder that uses OpenTelemetry.
// If metrics initialization fails, returns a no-op recorder.
//
// The recorder uses the global OTel meter provider. Configure the provider
// before calling this function:
//
//	import "go.opentelemetry.io/otel"
//	otel.SetMeterProvider(yourProvider)
func NewMetricsRecorder() MetricsRecorder {
	m, err := getDefaultMetrics()
	if err != nil {
		slog.Warn("metrics initialization failed, using no-op recorder",
			slog.String("error", err.Error()))
		return NoopMetrics{}
	}
	return m
}

// RecordLookup records a lookup.
func (m *otelMetrics) RecordLookup(ctx context.Context, kind, typeName string, hit bool) {
	m.lookups.Add(ctx, 1, metric.WithAttributes(
		attribute.String("store.kind", kind),
		attribute.String("type", typeName),
		attribute.Bool("hit", hit),
	))
}

// RecordInit records an initializer run.
func (m *otelMetrics) RecordInit(ctx context.Context, kind, typeName string, duration time.Duration, err error) {
	attrs := []attribute.KeyValue{
		attribute.String("store.kind", kind),
		attribute.String("type", typeName),
	}

	m.initLatency.Record(ctx, Milliseconds(duration), metric.WithAttributes(attrs...))

	if err != nil {
		m.initErrors.Add(ctx, 1, metric.WithAttributes(attrs...))
	}
}

// RecordDiscard records a value lost to the insertion race.
func (m *otelMetrics) RecordDiscard(ctx context.Context, kind, typeName string) {
	m.discarded.Add(ctx, 1, metric.WithAttributes(
		attribute.String("store.kind", kind),
		attribute.String("type", typeName),
	))
}
