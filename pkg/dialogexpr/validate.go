package dialogexpr

import (
	"math"
	"strings"
)

// ValidateArityAndAnyType checks that expr has between min and max children
// and that each child's static type overlaps types. Children typed
// ReturnTypeObject are left to runtime checks.
func ValidateArityAndAnyType(expr *Expression, min, max int, types ReturnType) error {
	n := len(expr.children)
	if n < min {
		return validationErrorf(expr, "%s should have at least %d children.", expr, min)
	}
	if n > max {
		return validationErrorf(expr, "%s can't have more than %d children.", expr, max)
	}
	for _, child := range expr.children {
		if err := checkChildType(expr, child, types); err != nil {
			return err
		}
	}
	return nil
}

// ValidateOrder checks children positionally: the first len(types) children
// against types, then up to len(optional) more against optional.
func ValidateOrder(expr *Expression, optional []ReturnType, types ...ReturnType) error {
	n := len(expr.children)
	if len(optional) == 0 {
		if n != len(types) {
			return validationErrorf(expr, "%s should have %d children.", expr, len(types))
		}
	} else if n < len(types) || n > len(types)+len(optional) {
		return validationErrorf(expr, "%s should have between %d and %d children.",
			expr, len(types), len(types)+len(optional))
	}

	for i, child := range expr.children {
		var expected ReturnType
		if i < len(types) {
			expected = types[i]
		} else {
			expected = optional[i-len(types)]
		}
		if err := checkChildType(expr, child, expected); err != nil {
			return err
		}
	}
	return nil
}

func checkChildType(expr, child *Expression, expected ReturnType) error {
	actual := child.ReturnType()
	if expected&ReturnTypeObject != 0 || actual&ReturnTypeObject != 0 || actual.Overlaps(expected) {
		return nil
	}
	if expected.isSingle() {
		return validationErrorf(expr, "%s is not a %s expression in %s.", child, expected, expr)
	}
	return validationErrorf(expr, "%s in %s is not any of [%s].",
		child, expr, strings.Join(expected.names(), ", "))
}

// ValidateUnary requires exactly one child.
func ValidateUnary(expr *Expression) error {
	return ValidateArityAndAnyType(expr, 1, 1, ReturnTypeObject)
}

// ValidateBinary requires exactly two children.
func ValidateBinary(expr *Expression) error {
	return ValidateArityAndAnyType(expr, 2, 2, ReturnTypeObject)
}

// ValidateAtLeastOne requires one or more children.
func ValidateAtLeastOne(expr *Expression) error {
	return ValidateArityAndAnyType(expr, 1, math.MaxInt, ReturnTypeObject)
}

// ValidateTwoOrMore requires two or more children.
func ValidateTwoOrMore(expr *Expression) error {
	return ValidateArityAndAnyType(expr, 2, math.MaxInt, ReturnTypeObject)
}

// ValidateNumber requires one or more numeric children.
func ValidateNumber(expr *Expression) error {
	return ValidateArityAndAnyType(expr, 1, math.MaxInt, ReturnTypeNumber)
}

// ValidateString requires one or more string children.
func ValidateString(expr *Expression) error {
	return ValidateArityAndAnyType(expr, 1, math.MaxInt, ReturnTypeString)
}

// ValidateUnaryNumber requires a single numeric child.
func ValidateUnaryNumber(expr *Expression) error {
	return ValidateArityAndAnyType(expr, 1, 1, ReturnTypeNumber)
}

// ValidateUnaryString requires a single string child.
func ValidateUnaryString(expr *Expression) error {
	return ValidateArityAndAnyType(expr, 1, 1, ReturnTypeString)
}

// ValidateBinaryNumber requires two numeric children.
func ValidateBinaryNumber(expr *Expression) error {
	return ValidateArityAndAnyType(expr, 2, 2, ReturnTypeNumber)
}

// ValidateTwoOrMoreNumber requires two or more numeric children.
func ValidateTwoOrMoreNumber(expr *Expression) error {
	return ValidateArityAndAnyType(expr, 2, math.MaxInt, ReturnTypeNumber)
}

// ValidateNoChildren rejects any child.
func ValidateNoChildren(expr *Expression) error {
	return ValidateArityAndAnyType(expr, 0, 0, ReturnTypeObject)
}

// ValidateLambda checks the (collection, iterator, body) shape used by
// foreach, select, where, any and all. The iterator must be a bare name.
func ValidateLambda(expr *Expression) error {
	if err := ValidateOrder(expr, nil, ReturnTypeObject, ReturnTypeObject, ReturnTypeObject); err != nil {
		return err
	}
	iterator := expr.children[1]
	if iterator.kind() != TypeAccessor || len(iterator.children) != 1 {
		return validationErrorf(expr, "Second parameter is not an identifier : %s", iterator)
	}
	return nil
}

// iteratorName returns the loop variable of a validated lambda expression.
func iteratorName(expr *Expression) string {
	name, _ := expr.children[1].children[0].value.(string)
	return name
}
