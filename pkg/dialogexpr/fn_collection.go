package dialogexpr

import (
	"math"
	"strings"
	"unicode/utf8"

	"github.com/randalmurphal/dialogexpr/pkg/dialogexpr/memory"
)

func collectionFunctions() []builtin {
	return []builtin{
		{
			evaluator: NewExpressionEvaluator("count",
				Apply(func(args []any) any { return int64(lengthOf(args[0])) }, VerifyContainer),
				ReturnTypeNumber,
				func(expr *Expression) error {
					return ValidateArityAndAnyType(expr, 1, 1, ReturnTypeString|ReturnTypeArray)
				}),
		},
		{
			evaluator: NewExpressionEvaluator("contains",
				Apply(func(args []any) any { return containsValue(args[0], args[1]) }, nil),
				ReturnTypeBoolean, ValidateBinary),
		},
		{
			evaluator: NewExpressionEvaluator("first",
				Apply(func(args []any) any { return itemAt(args[0], 0) }, nil),
				ReturnTypeObject, ValidateUnary),
		},
		{
			evaluator: NewExpressionEvaluator("last",
				Apply(func(args []any) any { return itemAt(args[0], lengthOf(args[0])-1) }, nil),
				ReturnTypeObject, ValidateUnary),
		},
		{
			evaluator: NewExpressionEvaluator("join",
				Apply(joinList, verifyListThenStrings),
				ReturnTypeString,
				func(expr *Expression) error {
					return ValidateOrder(expr, []ReturnType{ReturnTypeString}, ReturnTypeArray, ReturnTypeString)
				}),
		},
		{
			evaluator: NewExpressionEvaluator("createArray",
				Apply(func(args []any) any { return append([]any{}, args...) }, nil),
				ReturnTypeArray,
				func(expr *Expression) error {
					return ValidateArityAndAnyType(expr, 0, math.MaxInt, ReturnTypeObject)
				}),
		},
		{
			evaluator: NewExpressionEvaluator("empty",
				Apply(func(args []any) any { return isEmpty(args[0]) }, nil),
				ReturnTypeBoolean, ValidateUnary),
		},
		{
			evaluator: NewExpressionEvaluator(TypeForeach, evaluateForeach, ReturnTypeArray, ValidateLambda),
			aliases:   []string{TypeSelect},
		},
		{evaluator: NewExpressionEvaluator(TypeWhere, evaluateWhere, ReturnTypeArray|ReturnTypeObject, ValidateLambda)},
		{evaluator: NewExpressionEvaluator("any", evaluateAny, ReturnTypeBoolean, ValidateLambda)},
		{evaluator: NewExpressionEvaluator("all", evaluateAll, ReturnTypeBoolean, ValidateLambda)},
	}
}

// lengthOf counts characters, items or keys. Other values have length 0.
func lengthOf(v any) int {
	switch val := v.(type) {
	case string:
		return utf8.RuneCountInString(val)
	case []any:
		return len(val)
	case map[string]any:
		return len(val)
	default:
		return 0
	}
}

// containsValue looks for a substring, a list item or a record key.
func containsValue(collection, item any) bool {
	switch c := collection.(type) {
	case string:
		s, ok := item.(string)
		return ok && strings.Contains(c, s)
	case []any:
		for _, v := range c {
			if IsEqual(v, item) {
				return true
			}
		}
		return false
	case map[string]any:
		key, ok := item.(string)
		if !ok {
			return false
		}
		_, found := memory.AccessProperty(c, key)
		return found
	default:
		return false
	}
}

// itemAt returns the i-th character or list item, nil when out of range.
func itemAt(v any, i int) any {
	switch val := v.(type) {
	case string:
		runes := []rune(val)
		if i < 0 || i >= len(runes) {
			return nil
		}
		return string(runes[i])
	case []any:
		if i < 0 || i >= len(val) {
			return nil
		}
		return val[i]
	default:
		return nil
	}
}

// joinList joins list items with a separator, using lastSeparator before the
// final item when given: join(['a','b','c'], ', ', ' and ') is
// "a, b and c".
func joinList(args []any) any {
	list := args[0].([]any)
	sep, _ := args[1].(string)
	items := make([]string, len(list))
	for i, item := range list {
		items[i] = toStringValue(item)
	}
	if len(args) < 3 || len(items) < 2 {
		return strings.Join(items, sep)
	}
	last, _ := args[2].(string)
	return strings.Join(items[:len(items)-1], sep) + last + items[len(items)-1]
}

func verifyListThenStrings(value any, expr *Expression, index int) error {
	if index == 0 {
		return VerifyList(value, expr, index)
	}
	return VerifyString(value, expr, index)
}

func isEmpty(v any) bool {
	switch val := v.(type) {
	case nil:
		return true
	case string:
		return val == ""
	case []any:
		return len(val) == 0
	case map[string]any:
		return len(val) == 0
	default:
		return false
	}
}
