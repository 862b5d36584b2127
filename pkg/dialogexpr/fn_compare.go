package dialogexpr

func comparisonFunctions() []builtin {
	equal := NewExpressionEvaluator(TypeEqual,
		Apply(func(args []any) any { return IsEqual(args[0], args[1]) }, nil),
		ReturnTypeBoolean, ValidateBinary)
	notEqual := NewExpressionEvaluator(TypeNotEqual,
		Apply(func(args []any) any { return !IsEqual(args[0], args[1]) }, nil),
		ReturnTypeBoolean, ValidateBinary)

	less := ordering(TypeLessThan, func(c int) bool { return c < 0 })
	lessOrEqual := ordering(TypeLessThanOrEqual, func(c int) bool { return c <= 0 })
	greater := ordering(TypeGreaterThan, func(c int) bool { return c > 0 })
	greaterOrEqual := ordering(TypeGreaterThanOrEqual, func(c int) bool { return c >= 0 })

	setNegation(equal, notEqual)
	setNegation(less, greaterOrEqual)
	setNegation(lessOrEqual, greater)

	return []builtin{
		{evaluator: equal, aliases: []string{"equals"}},
		{evaluator: notEqual, aliases: []string{"notEquals"}},
		{evaluator: less, aliases: []string{"less"}},
		{evaluator: lessOrEqual, aliases: []string{"lessOrEquals"}},
		{evaluator: greater, aliases: []string{"greater"}},
		{evaluator: greaterOrEqual, aliases: []string{"greaterOrEquals"}},
	}
}

// ordering builds a comparison over two numbers, two strings or two times.
func ordering(typ string, holds func(cmp int) bool) *ExpressionEvaluator {
	return NewExpressionEvaluator(typ,
		ApplyWithError(func(args []any) (any, error) {
			c, err := compareValues(args[0], args[1])
			if err != nil {
				return nil, err
			}
			return holds(c), nil
		}, VerifyNotNull),
		ReturnTypeBoolean,
		func(expr *Expression) error {
			return ValidateArityAndAnyType(expr, 2, 2, ReturnTypeNumber|ReturnTypeString)
		})
}
