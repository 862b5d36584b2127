package dialogexpr

import (
	"fmt"
)

// VerifyExpression checks one evaluated argument. It returns nil when value
// is acceptable. expr is the child that produced value and index its
// position.
type VerifyExpression func(value any, expr *Expression, index int) error

// VerifyNumber accepts numbers.
func VerifyNumber(value any, expr *Expression, _ int) error {
	if !IsNumber(value) {
		return fmt.Errorf("%s is not a number.", expr)
	}
	return nil
}

// VerifyInteger accepts numbers without a fractional part.
func VerifyInteger(value any, expr *Expression, _ int) error {
	if !IsInteger(value) {
		return fmt.Errorf("%s is not a integer.", expr)
	}
	return nil
}

// VerifyString accepts strings.
func VerifyString(value any, expr *Expression, _ int) error {
	if _, ok := value.(string); !ok {
		return fmt.Errorf("%s is not a string.", expr)
	}
	return nil
}

// VerifyStringOrNull accepts strings and nil.
func VerifyStringOrNull(value any, expr *Expression, _ int) error {
	if _, ok := value.(string); !ok && value != nil {
		return fmt.Errorf("%s is neither a string nor a null object.", expr)
	}
	return nil
}

// VerifyNumberOrString accepts numbers and strings.
func VerifyNumberOrString(value any, expr *Expression, _ int) error {
	if _, ok := value.(string); !ok && !IsNumber(value) {
		return fmt.Errorf("%s is not string or number.", expr)
	}
	return nil
}

// VerifyNumberOrStringOrNull accepts numbers, strings and nil.
func VerifyNumberOrStringOrNull(value any, expr *Expression, index int) error {
	if value == nil {
		return nil
	}
	return VerifyNumberOrString(value, expr, index)
}

// VerifyNumericList accepts a list whose items are all numbers.
func VerifyNumericList(value any, expr *Expression, _ int) error {
	list, ok := value.([]any)
	if !ok {
		return fmt.Errorf("%s is not a list of numbers.", expr)
	}
	for _, item := range list {
		if !IsNumber(item) {
			return fmt.Errorf("%s is not a list of numbers.", expr)
		}
	}
	return nil
}

// VerifyNumberOrNumericList accepts a number or a list of numbers.
func VerifyNumberOrNumericList(value any, expr *Expression, index int) error {
	if IsNumber(value) {
		return nil
	}
	if VerifyNumericList(value, expr, index) != nil {
		return fmt.Errorf("%s is neither a number nor a numeric list.", expr)
	}
	return nil
}

// VerifyList accepts lists.
func VerifyList(value any, expr *Expression, _ int) error {
	if _, ok := value.([]any); !ok {
		return fmt.Errorf("%s is not a list or array.", expr)
	}
	return nil
}

// VerifyContainer accepts strings, lists and records.
func VerifyContainer(value any, expr *Expression, _ int) error {
	switch value.(type) {
	case string, []any, map[string]any:
		return nil
	default:
		return fmt.Errorf("%s must be a string, list, map or object.", expr)
	}
}

// VerifyContainerOrNull accepts strings, lists, records and nil.
func VerifyContainerOrNull(value any, expr *Expression, _ int) error {
	switch value.(type) {
	case nil, string, []any, map[string]any:
		return nil
	default:
		return fmt.Errorf("%s must be a string, list, map, object or null.", expr)
	}
}

// VerifyBoolean accepts booleans.
func VerifyBoolean(value any, expr *Expression, _ int) error {
	if _, ok := value.(bool); !ok {
		return fmt.Errorf("%s is not a boolean.", expr)
	}
	return nil
}

// VerifyNotNull rejects nil.
func VerifyNotNull(value any, expr *Expression, _ int) error {
	if value == nil {
		return fmt.Errorf("%s is null.", expr)
	}
	return nil
}
