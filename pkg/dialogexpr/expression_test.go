package dialogexpr

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/randalmurphal/dialogexpr/pkg/dialogexpr/memory"
)

// TestMakeExpression_ValidatesAtConstruction checks that malformed calls are
// rejected before any evaluation.
func TestMakeExpression_ValidatesAtConstruction(t *testing.T) {
	tests := []struct {
		name     string
		fn       string
		children []*Expression
		message  string
	}{
		{
			name:    "coalesce needs a child",
			fn:      "coalesce",
			message: "coalesce() should have at least 1 children.",
		},
		{
			name:     "add needs two operands",
			fn:       "add",
			children: []*Expression{lit(1)},
			message:  "add(1) should have at least 2 children.",
		},
		{
			name:     "operator form renders symbolically",
			fn:       "+",
			children: []*Expression{lit(1)},
			message:  "+(1) should have at least 2 children.",
		},
		{
			name:     "not takes one child",
			fn:       "not",
			children: []*Expression{lit(true), lit(false)},
			message:  "not(true, false) can't have more than 1 children.",
		},
		{
			name:     "if takes three children",
			fn:       "if",
			children: []*Expression{lit(true), lit(1)},
			message:  "if(true, 1) should have at least 3 children.",
		},
		{
			name:     "foreach takes three children",
			fn:       "foreach",
			children: []*Expression{acc("items"), acc("x")},
			message:  "foreach(items, x) should have 3 children.",
		},
		{
			name:     "foreach iterator must be a name",
			fn:       "foreach",
			children: []*Expression{acc("items"), lit("x"), acc("x")},
			message:  "Second parameter is not an identifier : 'x'",
		},
		{
			name:     "foreach iterator must be a bare name",
			fn:       "where",
			children: []*Expression{acc("items"), acc("a.b"), lit(true)},
			message:  "Second parameter is not an identifier : a.b",
		},
		{
			name:     "static type mismatch",
			fn:       "length",
			children: []*Expression{lit(1)},
			message:  "1 is not a string expression in length(1).",
		},
		{
			name:     "operator type mismatch",
			fn:       "-",
			children: []*Expression{lit("a"), lit(1)},
			message:  "'a' is not a number expression in ('a' - 1).",
		},
		{
			name:     "multi-type mismatch",
			fn:       "count",
			children: []*Expression{lit(true)},
			message:  "true in count(true) is not any of [string, array].",
		},
		{
			name:     "optional arguments bounded",
			fn:       "round",
			children: []*Expression{lit(1.5), lit(1), lit(2)},
			message:  "round(1.5, 1, 2) should have between 1 and 2 children.",
		},
		{
			name:     "nil child",
			fn:       "not",
			children: []*Expression{nil},
			message:  "child 0 of not is nil.",
		},
		{
			name:     "setPathToValue needs a path",
			fn:       "setPathToValue",
			children: []*Expression{lit("a"), lit(1)},
			message:  "'a' is not a path that can be set.",
		},
		{
			name:     "accessor property must be constant",
			fn:       TypeAccessor,
			children: []*Expression{acc("name")},
			message:  "name must be a constant property name.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			expr, err := MakeExpression(tt.fn, tt.children...)
			require.Error(t, err)
			assert.Nil(t, expr)

			var validationErr *ValidationError
			require.ErrorAs(t, err, &validationErr)
			assert.Equal(t, tt.message, err.Error())
		})
	}
}

func TestMakeExpression_UnknownFunction(t *testing.T) {
	t.Run("suggests the closest name", func(t *testing.T) {
		_, err := MakeExpression("toUp", lit("a"))
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrUnknownFunction))
		assert.Contains(t, err.Error(), "did you mean toUpper?")
	})

	t.Run("no suggestion without a match", func(t *testing.T) {
		_, err := MakeExpression("zzzz")
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrUnknownFunction))
		assert.Equal(t, "unknown function: zzzz", err.Error())
	})
}

func TestMakeExpression_Aliases(t *testing.T) {
	aliases := map[string]string{
		"add":             TypeAdd,
		"sub":             TypeSubtract,
		"mul":             TypeMultiply,
		"div":             TypeDivide,
		"divide":          TypeDivide,
		"mod":             TypeMod,
		"exp":             TypePower,
		"equals":          TypeEqual,
		"notEquals":       TypeNotEqual,
		"less":            TypeLessThan,
		"lessOrEquals":    TypeLessThanOrEqual,
		"greater":         TypeGreaterThan,
		"greaterOrEquals": TypeGreaterThanOrEqual,
		"and":             TypeAnd,
		"or":              TypeOr,
		"not":             TypeNot,
		"select":          TypeForeach,
	}

	for alias, canonical := range aliases {
		t.Run(alias, func(t *testing.T) {
			evaluator, ok := LookupBuiltin(alias)
			require.True(t, ok)
			assert.Equal(t, canonical, evaluator.Type)
		})
	}
}

func TestBuiltinNames(t *testing.T) {
	names := BuiltinNames()
	assert.IsIncreasing(t, names)
	for _, name := range []string{"Accessor", "Element", "+", "add", "foreach", "select", "setPathToValue", "newGuid"} {
		assert.Contains(t, names, name)
	}

	names[0] = "mutated"
	assert.NotEqual(t, "mutated", BuiltinNames()[0], "callers get a copy")
}

func TestExpression_String(t *testing.T) {
	element, err := NewElement(acc("items"), lit(0))
	require.NoError(t, err)

	tests := []struct {
		name string
		expr *Expression
		want string
	}{
		{"integer", lit(1), "1"},
		{"float", lit(1.5), "1.5"},
		{"string", lit("abc"), "'abc'"},
		{"string with quote", lit("it's"), `'it\'s'`},
		{"null", lit(nil), "null"},
		{"boolean", lit(true), "true"},
		{"list", lit([]any{1, "a"}), "[1, 'a']"},
		{"record", lit(map[string]any{"a": 1}), `{"a":1}`},
		{"accessor chain", acc("a.b.c"), "a.b.c"},
		{"element", element, "items[0]"},
		{"binary operator", call(t, "+", lit(1), lit(2), lit(3)), "(1 + 2 + 3)"},
		{"named call", call(t, "add", lit(1), lit(2)), "add(1, 2)"},
		{"unary operator", call(t, "!", lit(true)), "!(true)"},
		{"nested", call(t, "if", call(t, ">", acc("a"), lit(1)), lit("big"), lit("small")), "if((a > 1), 'big', 'small')"},
		{"no children", call(t, "newGuid"), "newGuid()"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.expr.String())
		})
	}
}

func TestExpression_Accessors(t *testing.T) {
	sum := call(t, "+", lit(1), lit(2))

	t.Run("constant", func(t *testing.T) {
		c := lit(int32(7))
		assert.True(t, c.IsConstant())
		assert.Equal(t, TypeConstant, c.Type())
		assert.Equal(t, int64(7), c.Value(), "integers widen to int64")
		assert.Nil(t, c.Evaluator())
		assert.Equal(t, ReturnTypeNumber, c.ReturnType())
	})

	t.Run("call", func(t *testing.T) {
		assert.False(t, sum.IsConstant())
		assert.Equal(t, "+", sum.Type())
		assert.Nil(t, sum.Value())
		assert.Equal(t, ReturnTypeString|ReturnTypeNumber, sum.ReturnType())
		assert.Equal(t, "number|string", sum.ReturnType().String())
	})

	t.Run("children are copied", func(t *testing.T) {
		children := sum.Children()
		require.Len(t, children, 2)
		children[0] = lit(100)
		assert.Equal(t, int64(1), sum.Child(0).Value())
	})

	t.Run("child out of range", func(t *testing.T) {
		assert.Nil(t, sum.Child(2))
		assert.Nil(t, sum.Child(-1))
	})

	t.Run("host values are normalised", func(t *testing.T) {
		c := lit(map[string]int{"a": 1})
		assert.Equal(t, map[string]any{"a": int64(1)}, c.Value())
		assert.Equal(t, ReturnTypeObject, c.ReturnType())
		assert.Equal(t, ReturnTypeArray, lit([]string{"x"}).ReturnType())
	})
}

func TestReturnType_String(t *testing.T) {
	assert.Equal(t, "none", ReturnType(0).String())
	assert.Equal(t, "boolean", ReturnTypeBoolean.String())
	assert.Equal(t, "number|string|array", (ReturnTypeNumber | ReturnTypeString | ReturnTypeArray).String())
	assert.True(t, ReturnTypeNumber.Overlaps(ReturnTypeNumber|ReturnTypeString))
	assert.False(t, ReturnTypeNumber.Overlaps(ReturnTypeString))
}

func TestMust(t *testing.T) {
	assert.NotPanics(t, func() {
		expr := Must(MakeExpression("not", lit(true)))
		assert.Equal(t, "!(true)", expr.String())
	})
	assert.Panics(t, func() {
		Must(MakeExpression("not"))
	})
}

func TestNewExpression(t *testing.T) {
	t.Run("nil evaluator", func(t *testing.T) {
		_, err := NewExpression(nil)
		assert.ErrorIs(t, err, ErrInvalidFunction)
	})

	t.Run("custom evaluator validates", func(t *testing.T) {
		double := NewExpressionEvaluator("double",
			Apply(func(args []any) any {
				n, _ := ToInt64(args[0])
				return n * 2
			}, VerifyInteger),
			ReturnTypeNumber, ValidateUnaryNumber)

		_, err := NewExpression(double)
		require.Error(t, err)

		expr, err := NewExpression(double, lit(21))
		require.NoError(t, err)
		assert.Equal(t, int64(42), eval(t, expr, nil))
		assert.Equal(t, "double(21)", expr.String())
	})

	t.Run("evaluator without body", func(t *testing.T) {
		expr, err := NewExpression(&ExpressionEvaluator{Type: "empty"})
		require.NoError(t, err)
		_, err = expr.Evaluate(nil)
		assert.EqualError(t, err, "empty has no evaluate function")
	})
}

func TestExpression_ValidateTree(t *testing.T) {
	expr := call(t, "&&", call(t, "<", acc("a"), lit(2)), call(t, "exists", acc("b")))
	assert.NoError(t, expr.ValidateTree())
	assert.NoError(t, lit(1).ValidateTree())
}

func TestExpression_TryEvaluateNilState(t *testing.T) {
	value, err := acc("a.b").TryEvaluate(nil, Options{})
	require.NoError(t, err)
	assert.Nil(t, value)

	value, err = call(t, "+", lit(1), lit(2)).TryEvaluate(nil, Options{})
	require.NoError(t, err)
	assert.Equal(t, int64(3), value)
}

func TestPushDownNot(t *testing.T) {
	a, b := acc("a"), acc("b")

	tests := []struct {
		name string
		expr *Expression
		want string
	}{
		{"comparison flips", call(t, "!", call(t, "<", a, b)), "(a >= b)"},
		{"less-or-equal flips", call(t, "!", call(t, "<=", a, b)), "(a > b)"},
		{"equality flips", call(t, "!", call(t, "==", a, b)), "(a != b)"},
		{"and becomes or", call(t, "!", call(t, "&&", a, b)), "(!(a) || !(b))"},
		{"or becomes and", call(t, "!", call(t, "||", call(t, ">", a, lit(1)), b)), "((a <= 1) && !(b))"},
		{"double negation cancels", call(t, "!", call(t, "!", a)), "a"},
		{"constant is wrapped", call(t, "!", lit(true)), "!(true)"},
		{"other functions are wrapped", call(t, "!", call(t, "exists", a)), "!(exists(a))"},
		{"no negation unchanged", call(t, "&&", a, b), "(a && b)"},
		{"nested negation below call", call(t, "if", call(t, "!", call(t, ">", a, b)), lit(1), lit(2)), "if((a <= b), 1, 2)"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.expr.PushDownNot().String())
		})
	}
}

// TestPushDownNot_PreservesValue evaluates original and rewritten trees over
// several scopes.
func TestPushDownNot_PreservesValue(t *testing.T) {
	a, b := acc("a"), acc("b")
	exprs := []*Expression{
		call(t, "!", call(t, "&&", call(t, "<", a, b), call(t, "==", a, lit(1)))),
		call(t, "!", call(t, "||", call(t, ">=", a, b), call(t, "!", call(t, "!=", b, lit(3))))),
	}
	scopes := []map[string]any{
		{"a": 1, "b": 2},
		{"a": 2, "b": 1},
		{"a": 1, "b": 3},
		{"a": 3, "b": 3},
	}

	for _, expr := range exprs {
		pushed := expr.PushDownNot()
		for _, scope := range scopes {
			assert.Equal(t, eval(t, expr, scope), eval(t, pushed, scope), "%s vs %s over %v", expr, pushed, scope)
		}
	}
}

func TestEvaluate_WrapsHostScope(t *testing.T) {
	type order struct {
		Customer string `json:"customer"`
	}

	assert.Equal(t, "ada", eval(t, acc("customer"), order{Customer: "ada"}))
	assert.Equal(t, "ada", eval(t, acc("customer"), &order{Customer: "ada"}))

	m := memory.NewSimpleObjectMemory(map[string]any{"x": "y"})
	assert.Equal(t, "y", eval(t, acc("x"), m))
}
