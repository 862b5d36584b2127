package dialogexpr

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/randalmurphal/dialogexpr/pkg/dialogexpr/memory"
)

func TestComparison(t *testing.T) {
	tests := []struct {
		name string
		expr *Expression
		want bool
	}{
		{"equal across number types", call(t, "==", lit(1), lit(1.0)), true},
		{"equal strings", call(t, "equals", lit("a"), lit("a")), true},
		{"equal is case-sensitive", call(t, "==", lit("a"), lit("A")), false},
		{"equal lists", call(t, "==", lit([]any{1, "x"}), lit([]any{1.0, "x"})), true},
		{"equal records", call(t, "==", lit(map[string]any{"a": 1}), lit(map[string]any{"a": 1})), true},
		{"null equals null", call(t, "==", lit(nil), lit(nil)), true},
		{"null is not zero", call(t, "==", lit(nil), lit(0)), false},
		{"not equal", call(t, "!=", lit(1), lit(2)), true},
		{"not equal alias", call(t, "notEquals", lit("a"), lit("a")), false},
		{"less numbers", call(t, "<", lit(1), lit(2.5)), true},
		{"less strings", call(t, "less", lit("apple"), lit("banana")), true},
		{"less or equal", call(t, "<=", lit(2), lit(2)), true},
		{"less or equal alias", call(t, "lessOrEquals", lit(3), lit(2)), false},
		{"greater", call(t, ">", lit(3), lit(2)), true},
		{"greater alias", call(t, "greater", lit("a"), lit("b")), false},
		{"greater or equal", call(t, ">=", lit(2), lit(3)), false},
		{"greater or equal alias", call(t, "greaterOrEquals", lit(3.0), lit(3)), true},
		{"large integers order exactly", call(t, ">", lit(int64(9007199254740993)), lit(int64(9007199254740992))), true},
		{"large integers are not equal", call(t, "==", lit(int64(9007199254740993)), lit(int64(9007199254740992))), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, eval(t, tt.expr, nil))
		})
	}
}

func TestComparison_Errors(t *testing.T) {
	t.Run("mixed kinds", func(t *testing.T) {
		err := evalErr(t, call(t, "<", lit("a"), lit(1)), nil)
		assert.Equal(t, "'a' and 1 are not comparable in ('a' < 1).", err.Error())
	})

	t.Run("null operand", func(t *testing.T) {
		err := evalErr(t, call(t, ">", acc("missing"), lit(1)), nil)
		assert.Equal(t, "missing is null.", err.Error())
	})

	t.Run("statically rejected", func(t *testing.T) {
		_, err := MakeExpression("<", lit(true), lit(1))
		var validationErr *ValidationError
		require.ErrorAs(t, err, &validationErr)
	})
}

func TestAndOr(t *testing.T) {
	scope := map[string]any{"yes": true, "no": false, "zero": 0, "empty": ""}
	failing := func() *Expression { return call(t, "div", lit(1), lit(0)) }

	tests := []struct {
		name string
		expr *Expression
		want bool
	}{
		{"and all true", call(t, "&&", acc("yes"), lit(1)), true},
		{"and one false", call(t, "and", acc("yes"), acc("no")), false},
		{"and missing is false", call(t, "&&", acc("yes"), acc("missing")), false},
		{"and error is false", call(t, "&&", failing(), acc("yes")), false},
		{"and zero and empty string are true", call(t, "&&", acc("zero"), acc("empty")), true},
		{"and single child", call(t, "and", acc("yes")), true},
		{"or first true", call(t, "||", acc("no"), acc("yes")), true},
		{"or all false", call(t, "or", acc("no"), acc("missing")), false},
		{"or error counts as false", call(t, "||", failing(), acc("no")), false},
		{"or after error", call(t, "||", failing(), acc("yes")), true},
		{"not false", call(t, "!", acc("no")), true},
		{"not missing", call(t, "not", acc("missing")), true},
		{"not error", call(t, "!", failing()), true},
		{"not zero", call(t, "!", acc("zero")), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, eval(t, tt.expr, scope))
		})
	}

	t.Run("and short-circuits", func(t *testing.T) {
		calls := 0
		table := NewFunctionTable()
		require.NoError(t, table.Add("track", func(args []any) any {
			calls++
			return true
		}))
		tracked, err := table.MakeExpression("track")
		require.NoError(t, err)

		assert.Equal(t, false, eval(t, call(t, "&&", lit(false), tracked), nil))
		assert.Equal(t, true, eval(t, call(t, "||", lit(true), tracked), nil))
		assert.Equal(t, 0, calls)
	})
}

func TestIf(t *testing.T) {
	failing := call(t, "div", lit(1), lit(0))

	t.Run("then branch", func(t *testing.T) {
		assert.Equal(t, "a", eval(t, call(t, "if", lit(true), lit("a"), failing), nil))
	})

	t.Run("else branch", func(t *testing.T) {
		assert.Equal(t, "b", eval(t, call(t, "if", lit(false), failing, lit("b")), nil))
	})

	t.Run("truthy non-boolean", func(t *testing.T) {
		assert.Equal(t, "a", eval(t, call(t, "if", lit(0), lit("a"), lit("b")), nil))
	})

	t.Run("failing condition selects else", func(t *testing.T) {
		assert.Equal(t, "b", eval(t, call(t, "if", failing, lit("a"), lit("b")), nil))
	})

	t.Run("branch error propagates", func(t *testing.T) {
		err := evalErr(t, call(t, "if", lit(true), failing, lit("b")), nil)
		assert.ErrorIs(t, err, ErrDivideByZero)
	})

	t.Run("branches keep null substitution", func(t *testing.T) {
		opts := Options{NullSubstitution: func(path string) any { return "?" + path }}
		expr := call(t, "if", acc("missing"), lit("a"), acc("other"))
		value, err := expr.TryEvaluate(memory.Wrap(nil), opts)
		require.NoError(t, err)
		assert.Equal(t, "?other", value)
	})
}

func TestExists(t *testing.T) {
	scope := map[string]any{"zero": 0, "null": nil}

	assert.Equal(t, true, eval(t, call(t, "exists", acc("zero")), scope))
	assert.Equal(t, false, eval(t, call(t, "exists", acc("null")), scope))
	assert.Equal(t, false, eval(t, call(t, "exists", acc("missing")), scope))

	err := evalErr(t, call(t, "exists", call(t, "div", lit(1), lit(0))), scope)
	assert.ErrorIs(t, err, ErrDivideByZero)
}

func TestCoalesce(t *testing.T) {
	failing := call(t, "div", lit(1), lit(0))

	t.Run("first non-null", func(t *testing.T) {
		assert.Equal(t, "x", eval(t, call(t, "coalesce", lit(nil), lit(nil), lit("x")), nil))
	})

	t.Run("missing paths are skipped", func(t *testing.T) {
		assert.Equal(t, "fallback", eval(t, call(t, "coalesce", acc("a.b"), lit("fallback")), nil))
	})

	t.Run("all null", func(t *testing.T) {
		assert.Nil(t, eval(t, call(t, "coalesce", lit(nil)), nil))
	})

	t.Run("stops at first value", func(t *testing.T) {
		assert.Equal(t, "a", eval(t, call(t, "coalesce", lit("a"), failing), nil))
	})

	t.Run("child error propagates", func(t *testing.T) {
		err := evalErr(t, call(t, "coalesce", lit(nil), failing), nil)
		assert.ErrorIs(t, err, ErrDivideByZero)
	})

	t.Run("null substitution does not hide missing values", func(t *testing.T) {
		opts := Options{NullSubstitution: func(string) any { return "placeholder" }}
		expr := call(t, "coalesce", acc("missing"), lit("x"))
		value, err := expr.TryEvaluate(memory.Wrap(nil), opts)
		require.NoError(t, err)
		assert.Equal(t, "x", value)
	})
}
