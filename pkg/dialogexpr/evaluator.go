package dialogexpr

import (
	"fmt"

	"github.com/randalmurphal/dialogexpr/pkg/dialogexpr/memory"
)

// EvaluateExpressionDelegate computes the value of expr against state.
// It must report data-dependent failures through the error result.
type EvaluateExpressionDelegate func(expr *Expression, state memory.Memory, opts Options) (any, error)

// ValidateExpressionDelegate checks the shape of expr when it is built.
type ValidateExpressionDelegate func(expr *Expression) error

// ExpressionEvaluator describes one function: how to validate a call and how
// to evaluate it.
type ExpressionEvaluator struct {
	// Type is the canonical function name, for example "+" or "foreach".
	Type string

	Evaluate   EvaluateExpressionDelegate
	ReturnType ReturnType

	// Validate may be nil, in which case any children are accepted.
	Validate ValidateExpressionDelegate

	// Negation is the evaluator equivalent to !(this), when one exists.
	Negation *ExpressionEvaluator
}

// NewExpressionEvaluator creates an evaluator. A nil validate accepts any
// number of children of any type.
func NewExpressionEvaluator(typ string, evaluate EvaluateExpressionDelegate, returnType ReturnType, validate ValidateExpressionDelegate) *ExpressionEvaluator {
	return &ExpressionEvaluator{
		Type:       typ,
		Evaluate:   evaluate,
		ReturnType: returnType,
		Validate:   validate,
	}
}

// TryEvaluate runs the evaluate delegate.
func (e *ExpressionEvaluator) TryEvaluate(expr *Expression, state memory.Memory, opts Options) (any, error) {
	if e.Evaluate == nil {
		return nil, fmt.Errorf("%s has no evaluate function", e.Type)
	}
	return e.Evaluate(expr, state, opts)
}

// ValidateExpression runs the validate delegate, if any.
func (e *ExpressionEvaluator) ValidateExpression(expr *Expression) error {
	if e.Validate == nil {
		return nil
	}
	return e.Validate(expr)
}

// String returns the evaluator type.
func (e *ExpressionEvaluator) String() string {
	return e.Type
}

// setNegation links a and b as each other's negation.
func setNegation(a, b *ExpressionEvaluator) {
	a.Negation = b
	b.Negation = a
}
