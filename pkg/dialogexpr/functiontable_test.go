package dialogexpr

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/randalmurphal/dialogexpr/pkg/dialogexpr/memory"
)

func sumArgs(args []any) (any, error) {
	var total int64
	for _, arg := range args {
		n, ok := ToInt64(arg)
		if !ok {
			return nil, errors.New("not an integer")
		}
		total += n
	}
	return total, nil
}

func TestFunctionTable_Add(t *testing.T) {
	table := NewFunctionTable()

	require.NoError(t, table.Add("myFunc", sumArgs))

	expr, err := table.MakeExpression("myFunc", lit(1), lit(2))
	require.NoError(t, err)
	assert.Equal(t, int64(3), eval(t, expr, nil))
	assert.Equal(t, "myFunc(1, 2)", expr.String())

	err = table.Add("myFunc", sumArgs)
	assert.ErrorIs(t, err, ErrDuplicateFunction)

	err = table.Add("add", sumArgs)
	assert.ErrorIs(t, err, ErrBuiltinConflict)

	err = table.Add("select", sumArgs)
	assert.ErrorIs(t, err, ErrBuiltinConflict, "aliases are reserved too")
}

func TestFunctionTable_AddInvalid(t *testing.T) {
	table := NewFunctionTable()

	tests := []struct {
		name string
		key  string
		fn   any
	}{
		{"empty name", "", sumArgs},
		{"unsupported type", "bad", 42},
		{"nil custom function", "nilFn", CustomFunction(nil)},
		{"evaluator without body", "noBody", &ExpressionEvaluator{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := table.Add(tt.key, tt.fn)
			assert.ErrorIs(t, err, ErrInvalidFunction)
		})
	}
	assert.Empty(t, table.CustomNames())
}

func TestFunctionTable_FunctionShapes(t *testing.T) {
	table := NewFunctionTable()

	require.NoError(t, table.Add("custom", CustomFunction(sumArgs)))
	require.NoError(t, table.Add("variadic", func(args ...any) (any, error) { return len(args), nil }))
	require.NoError(t, table.Add("plain", func(args []any) any { return []int{1, 2} }))

	double := NewExpressionEvaluator("",
		Apply(func(args []any) any {
			n, _ := ToInt64(args[0])
			return n * 2
		}, VerifyInteger),
		ReturnTypeNumber, ValidateUnaryNumber)
	require.NoError(t, table.Add("double", double))

	tests := []struct {
		name     string
		children []*Expression
		want     any
	}{
		{"custom", []*Expression{lit(2), lit(3)}, int64(5)},
		{"variadic", []*Expression{lit("a"), lit("b"), lit("c")}, int64(3)},
		{"plain", nil, []any{int64(1), int64(2)}},
		{"double", []*Expression{lit(4)}, int64(8)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			expr, err := table.MakeExpression(tt.name, tt.children...)
			require.NoError(t, err)
			assert.Equal(t, tt.want, eval(t, expr, nil))
		})
	}

	t.Run("evaluator type defaults to the name", func(t *testing.T) {
		evaluator, ok := table.Lookup("double")
		require.True(t, ok)
		assert.Equal(t, "double", evaluator.Type)
		assert.Equal(t, ReturnTypeNumber, evaluator.ReturnType)
		assert.Empty(t, double.Type, "the registered evaluator is a copy")
	})

	t.Run("evaluator validation still applies", func(t *testing.T) {
		_, err := table.MakeExpression("double", lit("x"))
		require.Error(t, err)
	})
}

func TestFunctionTable_Failures(t *testing.T) {
	errNope := errors.New("nope")
	table := NewFunctionTable()
	require.NoError(t, table.Add("fails", func(args []any) (any, error) { return nil, errNope }))
	require.NoError(t, table.Add("panics", func(args []any) any { panic("boom") }))

	t.Run("returned error is tagged", func(t *testing.T) {
		expr, err := table.MakeExpression("fails", lit(1))
		require.NoError(t, err)

		err = evalErr(t, expr, nil)
		assert.ErrorIs(t, err, errNope)
		assert.Equal(t, "nope in fails(1).", err.Error())
	})

	t.Run("panic is recovered", func(t *testing.T) {
		expr, err := table.MakeExpression("panics")
		require.NoError(t, err)

		err = evalErr(t, expr, nil)
		var recovered *RecoveredError
		require.ErrorAs(t, err, &recovered)
		assert.Equal(t, "boom", recovered.Value)
		assert.Equal(t, "panics() panicked: boom", err.Error())
	})

	t.Run("argument error stops the call", func(t *testing.T) {
		expr, err := table.MakeExpression("fails", call(t, "div", lit(1), lit(0)))
		require.NoError(t, err)

		err = evalErr(t, expr, nil)
		assert.ErrorIs(t, err, ErrDivideByZero)
	})
}

func TestFunctionTable_Lookup(t *testing.T) {
	table := NewFunctionTable()
	require.NoError(t, table.Add("zeta", sumArgs))
	require.NoError(t, table.Add("alpha", sumArgs))

	assert.True(t, table.Has("add"))
	assert.True(t, table.Has("zeta"))
	assert.False(t, table.Has("missing"))

	builtin, ok := table.Lookup("add")
	require.True(t, ok)
	fromPackage, _ := LookupBuiltin("add")
	assert.Same(t, fromPackage, builtin)

	assert.Equal(t, []string{"alpha", "zeta"}, table.CustomNames())
	assert.Equal(t, len(BuiltinNames())+2, table.Len())

	keys := table.Keys()
	assert.Len(t, keys, table.Len())
	assert.IsIncreasing(t, keys)
	assert.Contains(t, keys, "zeta")
	assert.Contains(t, keys, "foreach")
}

func TestFunctionTable_MakeExpressionUnknown(t *testing.T) {
	table := NewFunctionTable()
	require.NoError(t, table.Add("myFunc", sumArgs))

	_, err := table.MakeExpression("myFun")
	require.ErrorIs(t, err, ErrUnknownFunction)
	assert.Equal(t, "unknown function: myFun (did you mean myFunc?)", err.Error())

	_, err = MakeExpression("myFunc")
	assert.ErrorIs(t, err, ErrUnknownFunction, "the package table only knows built-ins")
}

func TestFunctionTable_Nil(t *testing.T) {
	var table *FunctionTable

	_, ok := table.Lookup("add")
	assert.True(t, ok)
	_, ok = table.Lookup("custom")
	assert.False(t, ok)
	assert.Nil(t, table.CustomNames())
	assert.Equal(t, len(BuiltinNames()), table.Len())
}

func TestFunctionTable_CustomFunctionsSeeScope(t *testing.T) {
	table := NewFunctionTable()
	require.NoError(t, table.Add("greet", func(args []any) any {
		name, _ := args[0].(string)
		return "hi " + name
	}))

	expr, err := table.MakeExpression("greet", acc("user.name"))
	require.NoError(t, err)

	value, err := expr.TryEvaluate(memory.Wrap(map[string]any{"user": map[string]any{"name": "ana"}}), Options{})
	require.NoError(t, err)
	assert.Equal(t, "hi ana", value)
}

func TestFunctionTable_Seal(t *testing.T) {
	table := NewFunctionTable()
	require.NoError(t, table.Add("before", sumArgs))
	table.Seal()

	err := table.Add("after", sumArgs)
	require.ErrorIs(t, err, ErrTableSealed)
	assert.False(t, table.Has("after"))

	expr, err := table.MakeExpression("before", lit(1))
	require.NoError(t, err)
	assert.Equal(t, int64(1), eval(t, expr, nil))
}
