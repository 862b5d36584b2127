package observability

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
)

var (
	_ MetricsRecorder = NoopMetrics{}
	_ SpanManager     = NoopSpanManager{}
)

// NoopMetrics discards every measurement. It is the Engine default.
type NoopMetrics struct{}

func (NoopMetrics) RecordEvaluation(context.Context, string, time.Duration, error) {}

func (NoopMetrics) RecordFunctionRegistration(context.Context, string, error) {}

// NoopSpanManager hands out non-recording spans and leaves ctx untouched.
// It is the Engine default.
type NoopSpanManager struct{}

func (NoopSpanManager) StartEvaluationSpan(ctx context.Context, _, _, _ string) (context.Context, trace.Span) {
	return ctx, noop.Span{}
}

func (NoopSpanManager) EndSpanWithError(trace.Span, error) {}

func (NoopSpanManager) AddSpanEvent(context.Context, string, ...attribute.KeyValue) {}
