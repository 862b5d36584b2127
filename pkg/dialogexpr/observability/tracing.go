package observability

import (
	"context"
	"fmt"
	"unicode/utf8"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const (
	instrumentationName = "dialogexpr"
	evaluateSpanName    = "dialogexpr.evaluate"

	// maxExpressionAttr bounds the expression text stored on a span.
	maxExpressionAttr = 256
)

// SpanManager opens and closes the span wrapped around an evaluation.
// NewSpanManager traces through OpenTelemetry; NoopSpanManager discards.
type SpanManager interface {
	// StartEvaluationSpan opens a span for one evaluation and returns a
	// context carrying it.
	StartEvaluationSpan(ctx context.Context, evalID, exprType, expression string) (context.Context, trace.Span)

	// EndSpanWithError sets the span status from err and ends it.
	EndSpanWithError(span trace.Span, err error)

	// AddSpanEvent attaches an event to the span carried by ctx, if any.
	AddSpanEvent(ctx context.Context, name string, attrs ...attribute.KeyValue)
}

type otelSpanManager struct {
	tracer trace.Tracer
}

// NewSpanManager traces through the global provider. The provider is looked
// up when the manager is built, so call otel.SetTracerProvider first.
func NewSpanManager() SpanManager {
	return NewSpanManagerWithProvider(otel.GetTracerProvider())
}

// NewSpanManagerWithProvider traces through tp. A nil tp falls back to the
// global provider.
func NewSpanManagerWithProvider(tp trace.TracerProvider) SpanManager {
	if tp == nil {
		tp = otel.GetTracerProvider()
	}
	return &otelSpanManager{tracer: tp.Tracer(instrumentationName)}
}

func (m *otelSpanManager) StartEvaluationSpan(ctx context.Context, evalID, exprType, expression string) (context.Context, trace.Span) {
	return m.tracer.Start(ctx, evaluateSpanName,
		trace.WithSpanKind(trace.SpanKindInternal),
		trace.WithAttributes(
			attribute.String("evaluation.id", evalID),
			attribute.String("expression.type", exprType),
			attribute.String("expression.text", clip(expression, maxExpressionAttr)),
		),
	)
}

func (m *otelSpanManager) EndSpanWithError(span trace.Span, err error) {
	if span == nil {
		return
	}
	defer span.End()

	if err == nil {
		span.SetStatus(codes.Ok, "")
		return
	}
	span.SetAttributes(attribute.String("error.type", fmt.Sprintf("%T", err)))
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
}

func (m *otelSpanManager) AddSpanEvent(ctx context.Context, name string, attrs ...attribute.KeyValue) {
	if span := trace.SpanFromContext(ctx); span.IsRecording() {
		span.AddEvent(name, trace.WithAttributes(attrs...))
	}
}

// clip shortens s to at most n bytes, cut on a rune boundary, and marks the
// cut with "...".
func clip(s string, n int) string {
	if len(s) <= n {
		return s
	}
	for n > 0 && !utf8.RuneStart(s[n]) {
		n--
	}
	return s[:n] + "..."
}
