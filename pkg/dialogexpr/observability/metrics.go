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

// MetricsRecorder records evaluation metrics.
// Use NewMetricsRecorder() for OTel metrics or NoopMetrics{} when disabled.
type MetricsRecorder interface {
	// RecordEvaluation records one evaluation with its duration and error status.
	RecordEvaluation(ctx context.Context, exprType string, duration time.Duration, err error)

	// RecordFunctionRegistration records a custom function registration attempt.
	RecordFunctionRegistration(ctx context.Context, name string, err error)
}

// otelMetrics implements MetricsRecorder using OpenTelemetry.
type otelMetrics struct {
	evaluations       metric.Int64Counter
	evaluationLatency metric.Float64Histogram
	evaluationErrors  metric.Int64Counter
	registrations     metric.Int64Counter
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
	meter := otel.Meter("dialogexpr")

	evaluations, err := meter.Int64Counter("dialogexpr.evaluations",
		metric.WithDescription("Number of expression evaluations"),
	)
	if err != nil {
		return nil, err
	}

	evaluationLatency, err := meter.Float64Histogram("dialogexpr.evaluation.latency_ms",
		metric.WithDescription("Expression evaluation latency in milliseconds"),
		metric.WithUnit("ms"),
	)
	if err != nil {
		return nil, err
	}

	evaluationErrors, err := meter.Int64Counter("dialogexpr.evaluation.errors",
		metric.WithDescription("Number of evaluations that returned an error"),
	)
	if err != nil {
		return nil, err
	}

	registrations, err := meter.Int64Counter("dialogexpr.functions.registered",
		metric.WithDescription("Number of custom function registration attempts"),
	)
	if err != nil {
		return nil, err
	}

	return &otelMetrics{
		evaluations:       evaluations,
		evaluationLatency: evaluationLatency,
		evaluationErrors:  evaluationErrors,
		registrations:     registrations,
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

// RecordEvaluation records an evaluation.
func (m *otelMetrics) RecordEvaluation(ctx context.Context, exprType string, duration time.Duration, err error) {
	attrs := metric.WithAttributes(attribute.String("expr_type", exprType))

	m.evaluations.Add(ctx, 1, attrs)
	m.evaluationLatency.Record(ctx, DurationMs(duration), attrs)

	if err != nil {
		m.evaluationErrors.Add(ctx, 1, attrs)
	}
}

// RecordFunctionRegistration records a registration attempt.
func (m *otelMetrics) RecordFunctionRegistration(ctx context.Context, name string, err error) {
	m.registrations.Add(ctx, 1, metric.WithAttributes(
		attribute.String("function", name),
		attribute.Bool("success", err == nil),
	))
}
