package dialogexpr

import (
	"time"
)

func dateTimeFunctions() []builtin {
	return []builtin{
		{
			evaluator: NewExpressionEvaluator("utcNow",
				ApplyWithOptionsAndError(func(args []any, opts Options) (any, error) {
					format := optionalString(args, 0)
					return ReturnFormattedTimestamp(nowFunc().UTC(), format, opts.Locale), nil
				}, VerifyStringOrNull),
				ReturnTypeString,
				func(expr *Expression) error {
					return ValidateOrder(expr, []ReturnType{ReturnTypeString})
				}),
		},
		{
			evaluator: NewExpressionEvaluator("addDays",
				ApplyWithOptionsAndError(shiftTimestamp(func(t time.Time, n int64) time.Time {
					return t.AddDate(0, 0, int(n))
				}), verifyTimestampShift),
				ReturnTypeString, validateTimestampShift),
		},
		{
			evaluator: NewExpressionEvaluator("addHours",
				ApplyWithOptionsAndError(shiftTimestamp(func(t time.Time, n int64) time.Time {
					return t.Add(time.Duration(n) * time.Hour)
				}), verifyTimestampShift),
				ReturnTypeString, validateTimestampShift),
		},
		{
			evaluator: NewExpressionEvaluator("dayOfWeek",
				ApplyWithError(func(args []any) (any, error) {
					t, err := toTime(args[0])
					if err != nil {
						return nil, err
					}
					return int64(t.Weekday()), nil
				}, nil),
				ReturnTypeNumber, ValidateUnary),
		},
		{
			evaluator: NewExpressionEvaluator("formatDateTime",
				ApplyWithOptionsAndError(func(args []any, opts Options) (any, error) {
					t, err := toTime(args[0])
					if err != nil {
						return nil, err
					}
					format := optionalString(args, 1)
					locale := opts.locale(optionalString(args, 2))
					return ReturnFormattedTimestamp(t, format, locale), nil
				}, verifyFormatDateTimeArgs),
				ReturnTypeString,
				func(expr *Expression) error {
					return ValidateOrder(expr, []ReturnType{ReturnTypeString, ReturnTypeString}, ReturnTypeObject)
				}),
		},
	}
}

// optionalString returns args[i] when present and a string.
func optionalString(args []any, i int) string {
	if i >= len(args) {
		return ""
	}
	s, _ := args[i].(string)
	return s
}

// shiftTimestamp builds addDays/addHours: (timestamp, amount, format?).
func shiftTimestamp(shift func(t time.Time, n int64) time.Time) func(args []any, opts Options) (any, error) {
	return func(args []any, opts Options) (any, error) {
		t, err := toTime(args[0])
		if err != nil {
			return nil, err
		}
		n, _ := ToInt64(args[1])
		return ReturnFormattedTimestamp(shift(t, n), optionalString(args, 2), opts.Locale), nil
	}
}

func verifyTimestampShift(value any, expr *Expression, index int) error {
	switch index {
	case 0:
		return VerifyNotNull(value, expr, index)
	case 1:
		return VerifyInteger(value, expr, index)
	default:
		return VerifyStringOrNull(value, expr, index)
	}
}

func validateTimestampShift(expr *Expression) error {
	return ValidateOrder(expr, []ReturnType{ReturnTypeString}, ReturnTypeObject, ReturnTypeNumber)
}

func verifyFormatDateTimeArgs(value any, expr *Expression, index int) error {
	if index == 0 {
		return VerifyNotNull(value, expr, index)
	}
	return VerifyStringOrNull(value, expr, index)
}
