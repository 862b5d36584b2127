package dialogexpr

import (
	"errors"
	"fmt"
	"math"
)

func mathFunctions() []builtin {
	return []builtin{
		{
			evaluator: NewExpressionEvaluator(TypeAdd,
				ApplySequenceWithError(addValues, VerifyNumberOrStringOrNull),
				ReturnTypeString|ReturnTypeNumber,
				func(expr *Expression) error {
					return ValidateArityAndAnyType(expr, 2, math.MaxInt, ReturnTypeString|ReturnTypeNumber)
				}),
			aliases: []string{"add"},
		},
		{
			evaluator: NewExpressionEvaluator(TypeSubtract,
				ApplySequenceWithError(arithmetic(
					subtractInts,
					func(a, b float64) (float64, error) { return a - b, nil },
				), VerifyNumber),
				ReturnTypeNumber, ValidateTwoOrMoreNumber),
			aliases: []string{"sub"},
		},
		{
			evaluator: NewExpressionEvaluator(TypeMultiply,
				ApplySequenceWithError(arithmetic(
					multiplyInts,
					func(a, b float64) (float64, error) { return a * b, nil },
				), VerifyNumber),
				ReturnTypeNumber, ValidateTwoOrMoreNumber),
			aliases: []string{"mul"},
		},
		{
			evaluator: NewExpressionEvaluator(TypeDivide,
				ApplySequenceWithError(arithmetic(
					func(a, b int64) (int64, error) {
						if b == 0 {
							return 0, ErrDivideByZero
						}
						if a == math.MinInt64 && b == -1 {
							return 0, errIntegerFallback
						}
						return a / b, nil
					},
					func(a, b float64) (float64, error) {
						if b == 0 {
							return 0, ErrDivideByZero
						}
						return a / b, nil
					},
				), VerifyNumber),
				ReturnTypeNumber, ValidateTwoOrMoreNumber),
			aliases: []string{"div", "divide"},
		},
		{
			evaluator: NewExpressionEvaluator(TypeMod,
				ApplyWithError(arithmetic(
					func(a, b int64) (int64, error) {
						if b == 0 {
							return 0, ErrModByZero
						}
						return a % b, nil
					},
					func(a, b float64) (float64, error) {
						if b == 0 {
							return 0, ErrModByZero
						}
						return math.Mod(a, b), nil
					},
				), VerifyNumber),
				ReturnTypeNumber, ValidateBinaryNumber),
			aliases: []string{"mod"},
		},
		{
			evaluator: NewExpressionEvaluator(TypePower,
				ApplySequenceWithError(arithmetic(
					powerInts,
					func(a, b float64) (float64, error) { return math.Pow(a, b), nil },
				), VerifyNumber),
				ReturnTypeNumber, ValidateTwoOrMoreNumber),
			aliases: []string{"exp"},
		},
		{
			evaluator: NewExpressionEvaluator("max",
				ApplyWithError(extremum(func(candidate, best float64) bool { return candidate > best }), VerifyNumberOrNumericList),
				ReturnTypeNumber, validateNumbersOrLists),
		},
		{
			evaluator: NewExpressionEvaluator("min",
				ApplyWithError(extremum(func(candidate, best float64) bool { return candidate < best }), VerifyNumberOrNumericList),
				ReturnTypeNumber, validateNumbersOrLists),
		},
		{
			evaluator: NewExpressionEvaluator("sum",
				Apply(func(args []any) any { return sumNumbers(args[0].([]any)) }, VerifyNumericList),
				ReturnTypeNumber, validateUnaryArray),
		},
		{
			evaluator: NewExpressionEvaluator("average",
				ApplyWithError(func(args []any) (any, error) {
					list := args[0].([]any)
					if len(list) == 0 {
						return nil, errors.New("Cannot average an empty list")
					}
					total, _ := ToFloat64(sumNumbers(list))
					return total / float64(len(list)), nil
				}, VerifyNumericList),
				ReturnTypeNumber, validateUnaryArray),
		},
		{
			evaluator: NewExpressionEvaluator("round",
				ApplyWithError(roundNumber, verifyNumberThenInteger),
				ReturnTypeNumber,
				func(expr *Expression) error {
					return ValidateOrder(expr, []ReturnType{ReturnTypeNumber}, ReturnTypeNumber)
				}),
		},
		{
			evaluator: NewExpressionEvaluator("floor",
				Apply(func(args []any) any {
					f, _ := ToFloat64(args[0])
					return integralOrFloat(math.Floor(f))
				}, VerifyNumber),
				ReturnTypeNumber, ValidateUnaryNumber),
		},
		{
			evaluator: NewExpressionEvaluator("ceiling",
				Apply(func(args []any) any {
					f, _ := ToFloat64(args[0])
					return integralOrFloat(math.Ceil(f))
				}, VerifyNumber),
				ReturnTypeNumber, ValidateUnaryNumber),
		},
		{
			evaluator: NewExpressionEvaluator("abs",
				Apply(func(args []any) any {
					if isIntegerKind(args[0]) {
						i, _ := ToInt64(args[0])
						if i == math.MinInt64 {
							return math.Abs(float64(i))
						}
						if i < 0 {
							return -i
						}
						return i
					}
					f, _ := ToFloat64(args[0])
					return math.Abs(f)
				}, VerifyNumber),
				ReturnTypeNumber, ValidateUnaryNumber),
		},
	}
}

// errIntegerFallback tells arithmetic to redo an integer operation in
// floating point.
var errIntegerFallback = errors.New("integer result not representable")

// arithmetic builds a binary numeric function that stays in int64 when both
// operands are integers and uses float64 otherwise.
func arithmetic(ints func(a, b int64) (int64, error), floats func(a, b float64) (float64, error)) func(args []any) (any, error) {
	return func(args []any) (any, error) {
		a, b := args[0], args[1]
		if isIntegerKind(a) && isIntegerKind(b) {
			x, okA := ToInt64(a)
			y, okB := ToInt64(b)
			if okA && okB {
				result, err := ints(x, y)
				if err == nil {
					return result, nil
				}
				if !errors.Is(err, errIntegerFallback) {
					return nil, err
				}
			}
		}
		x, _ := ToFloat64(a)
		y, _ := ToFloat64(b)
		result, err := floats(x, y)
		if err != nil {
			return nil, err
		}
		return result, nil
	}
}

// addInts, subtractInts, multiplyInts and powerInts return errIntegerFallback
// instead of wrapping around.
func addInts(a, b int64) (int64, error) {
	sum := a + b
	if (a > 0 && b > 0 && sum < 0) || (a < 0 && b < 0 && sum >= 0) {
		return 0, errIntegerFallback
	}
	return sum, nil
}

func subtractInts(a, b int64) (int64, error) {
	if (b > 0 && a < math.MinInt64+b) || (b < 0 && a > math.MaxInt64+b) {
		return 0, errIntegerFallback
	}
	return a - b, nil
}

func multiplyInts(a, b int64) (int64, error) {
	if a == 0 || b == 0 {
		return 0, nil
	}
	if (a == -1 && b == math.MinInt64) || (b == -1 && a == math.MinInt64) {
		return 0, errIntegerFallback
	}
	product := a * b
	if product/b != a {
		return 0, errIntegerFallback
	}
	return product, nil
}

// powerInts uses exponentiation by squaring. Negative exponents fall back to
// floating point.
func powerInts(base, exp int64) (int64, error) {
	if exp < 0 {
		return 0, errIntegerFallback
	}
	result := int64(1)
	for exp > 0 {
		var err error
		if exp&1 == 1 {
			if result, err = multiplyInts(result, base); err != nil {
				return 0, err
			}
		}
		exp >>= 1
		if exp > 0 {
			if base, err = multiplyInts(base, base); err != nil {
				return 0, err
			}
		}
	}
	return result, nil
}

var addNumbers = arithmetic(
	addInts,
	func(a, b float64) (float64, error) { return a + b, nil },
)

// addValues adds two numbers, or concatenates when either side is a string.
// nil concatenates as the empty string but cannot be added to a number.
func addValues(args []any) (any, error) {
	a, b := args[0], args[1]
	_, aString := a.(string)
	_, bString := b.(string)
	switch {
	case IsNumber(a) && IsNumber(b):
		return addNumbers(args)
	case aString || bString:
		return toStringValue(a) + toStringValue(b), nil
	default:
		return nil, fmt.Errorf("Operator '+' or add cannot be applied to operands of type '%s' and '%s'",
			typeName(a), typeName(b))
	}
}

// flattenNumbers expands list arguments into their items.
func flattenNumbers(args []any) []any {
	var out []any
	for _, arg := range args {
		if list, ok := arg.([]any); ok {
			out = append(out, list...)
		} else {
			out = append(out, arg)
		}
	}
	return out
}

func extremum(better func(candidate, best float64) bool) func(args []any) (any, error) {
	return func(args []any) (any, error) {
		nums := flattenNumbers(args)
		if len(nums) == 0 {
			return nil, errors.New("No numbers to compare")
		}
		best := nums[0]
		bestValue, _ := ToFloat64(best)
		for _, n := range nums[1:] {
			v, _ := ToFloat64(n)
			if better(v, bestValue) {
				best, bestValue = n, v
			}
		}
		return canonicalValue(best), nil
	}
}

// sumNumbers totals a numeric list, in int64 when every item is an integer.
func sumNumbers(list []any) any {
	var ints int64
	var floats float64
	allInts := true
	for _, item := range list {
		if allInts && isIntegerKind(item) {
			i, _ := ToInt64(item)
			if sum, err := addInts(ints, i); err == nil {
				ints = sum
				continue
			}
		}
		if allInts {
			allInts = false
			floats = float64(ints)
		}
		f, _ := ToFloat64(item)
		floats += f
	}
	if allInts {
		return ints
	}
	return floats
}

func roundNumber(args []any) (any, error) {
	x, _ := ToFloat64(args[0])
	digits := int64(0)
	if len(args) == 2 {
		digits, _ = ToInt64(args[1])
		if digits < 0 || digits > 15 {
			return nil, errors.New("The second parameter must be an integer between 0 and 15")
		}
	}
	if digits == 0 {
		return integralOrFloat(math.Round(x)), nil
	}
	scale := math.Pow(10, float64(digits))
	return math.Round(x*scale) / scale, nil
}

func verifyNumberThenInteger(value any, expr *Expression, index int) error {
	if index == 0 {
		return VerifyNumber(value, expr, index)
	}
	return VerifyInteger(value, expr, index)
}

func validateNumbersOrLists(expr *Expression) error {
	return ValidateArityAndAnyType(expr, 1, math.MaxInt, ReturnTypeNumber|ReturnTypeArray)
}

func validateUnaryArray(expr *Expression) error {
	return ValidateArityAndAnyType(expr, 1, 1, ReturnTypeArray)
}
