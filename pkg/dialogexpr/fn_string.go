package dialogexpr

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

func stringFunctions() []builtin {
	return []builtin{
		{
			evaluator: NewExpressionEvaluator(TypeConcat,
				Apply(func(args []any) any { return joinStrings(args) }, nil),
				ReturnTypeString, ValidateAtLeastOne),
		},
		{
			evaluator: NewExpressionEvaluator("concat",
				Apply(concatValues, nil),
				ReturnTypeString|ReturnTypeArray, ValidateAtLeastOne),
		},
		{
			evaluator: NewExpressionEvaluator("length",
				Apply(func(args []any) any {
					s, _ := args[0].(string)
					return int64(utf8.RuneCountInString(s))
				}, VerifyStringOrNull),
				ReturnTypeNumber, ValidateUnaryString),
		},
		{
			evaluator: NewExpressionEvaluator("toUpper",
				ApplyWithOptionsAndError(changeCase(cases.Upper), VerifyStringOrNull),
				ReturnTypeString, validateStringWithLocale),
		},
		{
			evaluator: NewExpressionEvaluator("toLower",
				ApplyWithOptionsAndError(changeCase(cases.Lower), VerifyStringOrNull),
				ReturnTypeString, validateStringWithLocale),
		},
		{
			evaluator: NewExpressionEvaluator("trim",
				Apply(func(args []any) any {
					s, _ := args[0].(string)
					return strings.TrimSpace(s)
				}, VerifyStringOrNull),
				ReturnTypeString, ValidateUnaryString),
		},
		{
			evaluator: NewExpressionEvaluator("substring",
				ApplyWithError(substring, verifyStringThenIntegers),
				ReturnTypeString,
				func(expr *Expression) error {
					return ValidateOrder(expr, []ReturnType{ReturnTypeNumber}, ReturnTypeString, ReturnTypeNumber)
				}),
		},
		{
			evaluator: NewExpressionEvaluator("replace",
				ApplyWithError(func(args []any) (any, error) {
					s, _ := args[0].(string)
					old, _ := args[1].(string)
					replacement, _ := args[2].(string)
					if old == "" {
						return nil, errors.New("The string to be replaced should have length at least 1")
					}
					return strings.ReplaceAll(s, old, replacement), nil
				}, VerifyStringOrNull),
				ReturnTypeString,
				func(expr *Expression) error {
					return ValidateArityAndAnyType(expr, 3, 3, ReturnTypeString)
				}),
		},
		{
			evaluator: NewExpressionEvaluator("split",
				Apply(splitString, VerifyStringOrNull),
				ReturnTypeArray,
				func(expr *Expression) error {
					return ValidateOrder(expr, []ReturnType{ReturnTypeString}, ReturnTypeString)
				}),
		},
		{
			evaluator: NewExpressionEvaluator("startsWith",
				Apply(func(args []any) any {
					s, _ := args[0].(string)
					prefix, _ := args[1].(string)
					return strings.HasPrefix(s, prefix)
				}, VerifyStringOrNull),
				ReturnTypeBoolean, validateBinaryString),
		},
		{
			evaluator: NewExpressionEvaluator("endsWith",
				Apply(func(args []any) any {
					s, _ := args[0].(string)
					suffix, _ := args[1].(string)
					return strings.HasSuffix(s, suffix)
				}, VerifyStringOrNull),
				ReturnTypeBoolean, validateBinaryString),
		},
		{
			evaluator: NewExpressionEvaluator("formatNumber",
				ApplyWithOptionsAndError(formatNumber, verifyFormatNumberArgs),
				ReturnTypeString,
				func(expr *Expression) error {
					return ValidateOrder(expr, []ReturnType{ReturnTypeString}, ReturnTypeNumber, ReturnTypeNumber)
				}),
		},
	}
}

func joinStrings(args []any) string {
	var b strings.Builder
	for _, arg := range args {
		b.WriteString(toStringValue(arg))
	}
	return b.String()
}

// concatValues joins lists when every argument is a list and strings
// otherwise.
func concatValues(args []any) any {
	var out []any
	for _, arg := range args {
		list, ok := arg.([]any)
		if !ok {
			return joinStrings(args)
		}
		out = append(out, list...)
	}
	if out == nil {
		out = []any{}
	}
	return out
}

// localeTag parses a BCP 47 tag. An empty string is the root locale.
func localeTag(locale string) (language.Tag, error) {
	if locale == "" {
		return language.Und, nil
	}
	tag, err := language.Parse(locale)
	if err != nil {
		return language.Und, fmt.Errorf("%s is not a valid locale", locale)
	}
	return tag, nil
}

func changeCase(caser func(language.Tag, ...cases.Option) cases.Caser) func(args []any, opts Options) (any, error) {
	return func(args []any, opts Options) (any, error) {
		s, _ := args[0].(string)
		explicit := ""
		if len(args) == 2 {
			explicit, _ = args[1].(string)
		}
		tag, err := localeTag(opts.locale(explicit))
		if err != nil {
			return nil, err
		}
		return caser(tag).String(s), nil
	}
}

func substring(args []any) (any, error) {
	s, _ := args[0].(string)
	runes := []rune(s)
	start, _ := ToInt64(args[1])
	if start < 0 || start > int64(len(runes)) {
		return nil, fmt.Errorf("Start index %d is out of range for %s", start, formatConstant(s))
	}
	end := int64(len(runes))
	if len(args) == 3 {
		length, _ := ToInt64(args[2])
		if length < 0 || length > end-start {
			return nil, fmt.Errorf("Length %d from start index %d is out of range for %s", length, start, formatConstant(s))
		}
		end = start + length
	}
	return string(runes[start:end]), nil
}

// splitString splits on a separator, or into characters when the separator
// is empty or omitted.
func splitString(args []any) any {
	s, _ := args[0].(string)
	sep := ""
	if len(args) == 2 {
		sep, _ = args[1].(string)
	}
	parts := strings.Split(s, sep)
	out := make([]any, len(parts))
	for i, p := range parts {
		out[i] = p
	}
	return out
}

func formatNumber(args []any, opts Options) (any, error) {
	x, _ := ToFloat64(args[0])
	precision, _ := ToInt64(args[1])
	if precision < 0 || precision > 20 {
		return nil, errors.New("Precision must be an integer between 0 and 20")
	}
	if math.IsNaN(x) || math.IsInf(x, 0) {
		return nil, fmt.Errorf("%v is not a finite number", x)
	}

	explicit := ""
	if len(args) == 3 {
		explicit, _ = args[2].(string)
	}
	locale := opts.locale(explicit)
	if locale == "" {
		locale = "en-US"
	}
	tag, err := localeTag(locale)
	if err != nil {
		return nil, err
	}

	p := message.NewPrinter(tag)
	digits := int(precision)
	return p.Sprint(number.Decimal(x, number.MinFractionDigits(digits), number.MaxFractionDigits(digits))), nil
}

func verifyStringThenIntegers(value any, expr *Expression, index int) error {
	if index == 0 {
		return VerifyStringOrNull(value, expr, index)
	}
	return VerifyInteger(value, expr, index)
}

func verifyFormatNumberArgs(value any, expr *Expression, index int) error {
	switch index {
	case 0:
		return VerifyNumber(value, expr, index)
	case 1:
		return VerifyInteger(value, expr, index)
	default:
		return VerifyStringOrNull(value, expr, index)
	}
}

func validateStringWithLocale(expr *Expression) error {
	return ValidateOrder(expr, []ReturnType{ReturnTypeString}, ReturnTypeString)
}

func validateBinaryString(expr *Expression) error {
	return ValidateArityAndAnyType(expr, 2, 2, ReturnTypeString)
}
