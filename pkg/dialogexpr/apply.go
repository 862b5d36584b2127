package dialogexpr

import (
	"errors"

	"github.com/randalmurphal/dialogexpr/pkg/dialogexpr/memory"
)

// EvaluateChildren evaluates every child of expr left to right. The first
// child error or verify failure stops evaluation and is returned.
func EvaluateChildren(expr *Expression, state memory.Memory, opts Options, verify VerifyExpression) ([]any, error) {
	args := make([]any, 0, len(expr.children))
	for i, child := range expr.children {
		value, err := child.TryEvaluate(state, opts)
		if err != nil {
			return nil, err
		}
		if verify != nil {
			if err := verify(value, child, i); err != nil {
				return nil, err
			}
		}
		args = append(args, value)
	}
	return args, nil
}

// Apply builds an evaluator body from a function of the evaluated children.
func Apply(fn func(args []any) any, verify VerifyExpression) EvaluateExpressionDelegate {
	return ApplyWithError(func(args []any) (any, error) {
		return fn(args), nil
	}, verify)
}

// ApplyWithError is Apply for functions whose validity depends on argument
// values. An error from fn is tagged with the failing expression.
func ApplyWithError(fn func(args []any) (any, error), verify VerifyExpression) EvaluateExpressionDelegate {
	return ApplyWithOptionsAndError(func(args []any, _ Options) (any, error) {
		return fn(args)
	}, verify)
}

// ApplyWithOptionsAndError is ApplyWithError for functions that read the
// evaluation options, such as locale-sensitive formatting.
func ApplyWithOptionsAndError(fn func(args []any, opts Options) (any, error), verify VerifyExpression) EvaluateExpressionDelegate {
	return func(expr *Expression, state memory.Memory, opts Options) (any, error) {
		args, err := EvaluateChildren(expr, state, opts, verify)
		if err != nil {
			return nil, err
		}
		return guard(expr, func() (any, error) {
			return fn(args, opts)
		})
	}
}

// ApplySequence left-folds a binary fn over the evaluated children:
// (a, b, c) becomes fn(fn(a, b), c).
func ApplySequence(fn func(args []any) any, verify VerifyExpression) EvaluateExpressionDelegate {
	return ApplySequenceWithError(func(args []any) (any, error) {
		return fn(args), nil
	}, verify)
}

// ApplySequenceWithError is ApplySequence for a binary fn that may fail.
func ApplySequenceWithError(fn func(args []any) (any, error), verify VerifyExpression) EvaluateExpressionDelegate {
	return ApplyWithError(func(args []any) (any, error) {
		if len(args) == 0 {
			return nil, nil
		}
		result := args[0]
		pair := make([]any, 2)
		for _, arg := range args[1:] {
			pair[0], pair[1] = result, arg
			next, err := fn(pair)
			if err != nil {
				return nil, err
			}
			result = next
		}
		return result, nil
	}, verify)
}

// guard runs call, converting a panic into a *RecoveredError and tagging a
// returned error with expr. A failed call never yields a value.
func guard(expr *Expression, call func() (any, error)) (value any, err error) {
	defer func() {
		if r := recover(); r != nil {
			value, err = nil, &RecoveredError{Expression: expr.String(), Value: r}
		}
	}()

	value, err = call()
	if err == nil {
		return value, nil
	}
	var evalErr *EvaluationError
	var recovered *RecoveredError
	if errors.As(err, &evalErr) || errors.As(err, &recovered) {
		return nil, err
	}
	return nil, &EvaluationError{Expression: expr.String(), Err: err}
}

// guardDelegate protects an evaluate delegate supplied from outside the
// package, whose failures may arrive as panics.
func guardDelegate(evaluate EvaluateExpressionDelegate) EvaluateExpressionDelegate {
	return func(expr *Expression, state memory.Memory, opts Options) (value any, err error) {
		defer func() {
			if r := recover(); r != nil {
				value, err = nil, &RecoveredError{Expression: expr.String(), Value: r}
			}
		}()
		value, err = evaluate(expr, state, opts)
		if err != nil {
			return nil, err
		}
		return canonicalValue(memory.Normalize(value)), nil
	}
}
