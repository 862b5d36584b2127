package dialogexpr

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

// Helpers shared by the package tests.

// lit creates a constant.
func lit(v any) *Expression {
	return NewConstant(v)
}

// acc creates an accessor chain from a dotted path such as "a.b.c".
func acc(path string) *Expression {
	var expr *Expression
	for _, part := range strings.Split(path, ".") {
		expr = NewAccessor(part, expr)
	}
	return expr
}

// call builds a built-in call that must be valid.
func call(t *testing.T, name string, children ...*Expression) *Expression {
	t.Helper()
	expr, err := MakeExpression(name, children...)
	require.NoError(t, err)
	return expr
}

// eval evaluates expr against scope with default options and requires success.
func eval(t *testing.T, expr *Expression, scope any) any {
	t.Helper()
	value, err := expr.Evaluate(scope)
	require.NoError(t, err)
	return value
}

// evalErr evaluates expr against scope and requires a failure.
func evalErr(t *testing.T, expr *Expression, scope any) error {
	t.Helper()
	value, err := expr.Evaluate(scope)
	require.Error(t, err)
	require.Nil(t, value, "a failed evaluation yields no value")
	return err
}
