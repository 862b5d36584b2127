package dialogexpr

import (
	"github.com/google/uuid"
)

func miscFunctions() []builtin {
	return []builtin{
		{
			evaluator: NewExpressionEvaluator("newGuid",
				Apply(func([]any) any { return uuid.NewString() }, nil),
				ReturnTypeString, ValidateNoChildren),
		},
	}
}
