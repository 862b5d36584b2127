package dialogexpr

import (
	"context"
	"log/slog"
	"os"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"

	"github.com/randalmurphal/dialogexpr/pkg/dialogexpr/config"
	"github.com/randalmurphal/dialogexpr/pkg/dialogexpr/memory"
	"github.com/randalmurphal/dialogexpr/pkg/dialogexpr/observability"
	"github.com/randalmurphal/dialogexpr/pkg/dialogexpr/template"
)

// Engine is the host entry point: a function table, default evaluation
// options and the telemetry around each evaluation.
//
// An Engine is safe for concurrent evaluations once configured. Register
// must not run concurrently with Build or Evaluate.
type Engine struct {
	functions *FunctionTable
	options   Options
	logger    *slog.Logger
	metrics   observability.MetricsRecorder
	spans     observability.SpanManager
}

// EngineOption configures an Engine.
type EngineOption func(*Engine)

// NewEngine creates an Engine. Without options it uses a fresh function
// table, slog.Default() and no-op telemetry.
//
// Example:
//
//	engine := dialogexpr.NewEngine(
//	    dialogexpr.WithLogger(logger),
//	    dialogexpr.WithMetrics(observability.NewMetricsRecorder()),
//	)
func NewEngine(opts ...EngineOption) *Engine {
	e := &Engine{
		functions: NewFunctionTable(),
		logger:    slog.Default(),
		metrics:   observability.NoopMetrics{},
		spans:     observability.NoopSpanManager{},
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// WithFunctionTable shares table with the Engine.
func WithFunctionTable(table *FunctionTable) EngineOption {
	return func(e *Engine) {
		if table != nil {
			e.functions = table
		}
	}
}

// WithOptions sets the default evaluation options.
func WithOptions(opts Options) EngineOption {
	return func(e *Engine) {
		e.options = opts
	}
}

// WithLogger sets the logger. A nil logger disables logging.
func WithLogger(logger *slog.Logger) EngineOption {
	return func(e *Engine) {
		e.logger = logger
	}
}

// WithMetrics sets the metrics recorder.
func WithMetrics(m observability.MetricsRecorder) EngineOption {
	return func(e *Engine) {
		if m != nil {
			e.metrics = m
		}
	}
}

// WithSpanManager sets the span manager.
func WithSpanManager(s observability.SpanManager) EngineOption {
	return func(e *Engine) {
		if s != nil {
			e.spans = s
		}
	}
}

// WithSettings applies loaded settings: the default locale, the null
// substitution template, OpenTelemetry recorders when enabled and a
// stderr text logger at the configured level. Options given after
// WithSettings override what it sets.
func WithSettings(s config.Settings) EngineOption {
	return func(e *Engine) {
		e.options.Locale = s.Locale
		e.options.NullSubstitution = template.NullSubstitutionFunc(s.NullSubstitution)
		if s.Metrics {
			e.metrics = observability.NewMetricsRecorder()
		}
		if s.Tracing {
			e.spans = observability.NewSpanManager()
		}
		e.logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: s.Level()}))
	}
}

// Functions returns the Engine's function table.
func (e *Engine) Functions() *FunctionTable {
	return e.functions
}

// Options returns the default evaluation options.
func (e *Engine) Options() Options {
	return e.options
}

// Register adds a custom function to the Engine's table. See FunctionTable.Add.
func (e *Engine) Register(name string, fn any) error {
	err := e.functions.Add(name, fn)
	e.metrics.RecordFunctionRegistration(context.Background(), name, err)
	if err != nil {
		observability.LogFunctionRejected(e.logger, name, err)
		return err
	}
	observability.LogFunctionRegistered(e.logger, name)
	return nil
}

// Build creates a call to name resolved through the Engine's table.
func (e *Engine) Build(name string, children ...*Expression) (*Expression, error) {
	return e.functions.MakeExpression(name, children...)
}

// Evaluate evaluates expr against scope with the Engine's default options.
// scope may be a memory.Memory or any value accepted by memory.Wrap.
//
// ctx carries trace context. It is checked once before evaluation starts;
// evaluation itself runs to completion.
func (e *Engine) Evaluate(ctx context.Context, expr *Expression, scope any) (any, error) {
	return e.EvaluateWithOptions(ctx, expr, scope, e.options)
}

// EvaluateWithOptions is Evaluate with explicit options.
func (e *Engine) EvaluateWithOptions(ctx context.Context, expr *Expression, scope any, opts Options) (result any, err error) {
	if expr == nil {
		return nil, ErrNilExpression
	}
	if ctx == nil {
		ctx = context.Background()
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	evalID := uuid.NewString()
	exprType := expr.Type()
	text := expr.String()
	logger := observability.EnrichLogger(e.logger, evalID, exprType)

	ctx, span := e.spans.StartEvaluationSpan(ctx, evalID, exprType, text)
	defer func() {
		e.spans.EndSpanWithError(span, err)
	}()

	observability.LogEvaluationStart(logger, text)
	start := time.Now()
	result, err = expr.TryEvaluate(memory.Wrap(scope), opts)
	elapsed := time.Since(start)

	durationMs := observability.DurationMs(elapsed)
	e.metrics.RecordEvaluation(ctx, exprType, elapsed, err)

	if err != nil {
		observability.LogEvaluationError(logger, err, durationMs)
		return nil, err
	}

	resultType := resultTypeName(result)
	e.spans.AddSpanEvent(ctx, "evaluation.result", attribute.String("result.type", resultType))
	observability.LogEvaluationComplete(logger, durationMs, resultType)
	return result, nil
}

// resultTypeName names the kind of an evaluation result for telemetry.
func resultTypeName(v any) string {
	if v == nil {
		return "null"
	}
	return returnTypeOf(v).String()
}
