package dialogexpr

import (
	"github.com/randalmurphal/dialogexpr/pkg/dialogexpr/memory"
)

// Conditions below are evaluated without NullSubstitution so that a missing
// property reads as nil rather than as a placeholder.

func logicFunctions() []builtin {
	and := NewExpressionEvaluator(TypeAnd, evaluateAnd, ReturnTypeBoolean, ValidateAtLeastOne)
	or := NewExpressionEvaluator(TypeOr, evaluateOr, ReturnTypeBoolean, ValidateAtLeastOne)
	setNegation(and, or)

	return []builtin{
		{evaluator: and, aliases: []string{"and"}},
		{evaluator: or, aliases: []string{"or"}},
		{
			evaluator: NewExpressionEvaluator(TypeNot, evaluateNot, ReturnTypeBoolean, ValidateUnary),
			aliases:   []string{"not"},
		},
		{
			evaluator: NewExpressionEvaluator(TypeIf, evaluateIf, ReturnTypeObject,
				func(expr *Expression) error {
					return ValidateArityAndAnyType(expr, 3, 3, ReturnTypeObject)
				}),
		},
		{evaluator: NewExpressionEvaluator(TypeExists, evaluateExists, ReturnTypeBoolean, ValidateUnary)},
		{evaluator: NewExpressionEvaluator(TypeCoalesce, evaluateCoalesce, ReturnTypeObject, ValidateAtLeastOne)},
	}
}

// evaluateAnd is false as soon as a child is false, nil or fails.
func evaluateAnd(expr *Expression, state memory.Memory, opts Options) (any, error) {
	conditionOpts := opts.WithoutNullSubstitution()
	for _, child := range expr.children {
		value, err := child.TryEvaluate(state, conditionOpts)
		if err != nil || !IsLogicTrue(value) {
			return false, nil
		}
	}
	return true, nil
}

// evaluateOr is true as soon as a child is true. Failing children count as
// false.
func evaluateOr(expr *Expression, state memory.Memory, opts Options) (any, error) {
	conditionOpts := opts.WithoutNullSubstitution()
	for _, child := range expr.children {
		value, err := child.TryEvaluate(state, conditionOpts)
		if err == nil && IsLogicTrue(value) {
			return true, nil
		}
	}
	return false, nil
}

// evaluateNot treats a failing child as false, so the result is true.
func evaluateNot(expr *Expression, state memory.Memory, opts Options) (any, error) {
	value, err := expr.children[0].TryEvaluate(state, opts.WithoutNullSubstitution())
	if err != nil {
		return true, nil
	}
	return !IsLogicTrue(value), nil
}

// evaluateIf evaluates only the selected branch. A failing condition selects
// the else branch.
func evaluateIf(expr *Expression, state memory.Memory, opts Options) (any, error) {
	cond, err := expr.children[0].TryEvaluate(state, opts.WithoutNullSubstitution())
	if err == nil && IsLogicTrue(cond) {
		return expr.children[1].TryEvaluate(state, opts)
	}
	return expr.children[2].TryEvaluate(state, opts)
}

func evaluateExists(expr *Expression, state memory.Memory, opts Options) (any, error) {
	value, err := expr.children[0].TryEvaluate(state, opts.WithoutNullSubstitution())
	if err != nil {
		return nil, err
	}
	return value != nil, nil
}

// evaluateCoalesce returns the first non-nil child, stopping there.
func evaluateCoalesce(expr *Expression, state memory.Memory, opts Options) (any, error) {
	conditionOpts := opts.WithoutNullSubstitution()
	for _, child := range expr.children {
		value, err := child.TryEvaluate(state, conditionOpts)
		if err != nil {
			return nil, err
		}
		if value != nil {
			return value, nil
		}
	}
	return nil, nil
}
