// Package observability provides structured logging, metrics and tracing
// helpers for expression evaluation.
//
// Features:
//   - Structured logging via slog (Go stdlib)
//   - Metrics via OpenTelemetry
//   - Tracing via OpenTelemetry
//
// All features are opt-in and have no-op implementations when disabled.
package observability

import (
	"log/slog"
	"time"
)

// EnrichLogger adds evaluation context to a logger.
// Returns a new logger with eval_id and expr_type fields.
//
// Example:
//
//	enriched := EnrichLogger(logger, "3f1c...", "foreach")
//	enriched.Debug("evaluating") // includes eval_id, expr_type
func EnrichLogger(logger *slog.Logger, evalID, exprType string) *slog.Logger {
	if logger == nil {
		return nil
	}
	return logger.With(
		slog.String("eval_id", evalID),
		slog.String("expr_type", exprType),
	)
}

// LogEvaluationStart logs the start of an evaluation.
func LogEvaluationStart(logger *slog.Logger, expression string) {
	if logger == nil {
		return
	}
	logger.Debug("evaluation starting",
		slog.String("expression", expression),
	)
}

// LogEvaluationComplete logs a successful evaluation.
func LogEvaluationComplete(logger *slog.Logger, durationMs float64, resultType string) {
	if logger == nil {
		return
	}
	logger.Debug("evaluation completed",
		slog.Float64("duration_ms", durationMs),
		slog.String("result_type", resultType),
	)
}

// LogEvaluationError logs a failed evaluation. Evaluation failures depend on
// scope data, so they are warnings rather than errors.
func LogEvaluationError(logger *slog.Logger, err error, durationMs float64) {
	if logger == nil {
		return
	}
	logger.Warn("evaluation failed",
		slog.String("error", err.Error()),
		slog.Float64("duration_ms", durationMs),
	)
}

// LogFunctionRegistered logs a custom function registration.
func LogFunctionRegistered(logger *slog.Logger, name string) {
	if logger == nil {
		return
	}
	logger.Info("custom function registered",
		slog.String("function", name),
	)
}

// LogFunctionRejected logs a refused custom function registration.
func LogFunctionRejected(logger *slog.Logger, name string, err error) {
	if logger == nil {
		return
	}
	logger.Warn("custom function rejected",
		slog.String("function", name),
		slog.String("error", err.Error()),
	)
}

// DurationMs converts d to milliseconds with microsecond resolution, the
// unit of the duration_ms log attribute.
func DurationMs(d time.Duration) float64 {
	return float64(d.Microseconds()) / 1000
}
