package dialogexpr

import (
	"bytes"
	"encoding/json"
	"fmt"
	"maps"

	"github.com/randalmurphal/dialogexpr/pkg/dialogexpr/memory"
)

func objectFunctions() []builtin {
	return []builtin{
		{
			evaluator: NewExpressionEvaluator("json",
				ApplyWithError(func(args []any) (any, error) {
					return decodeJSON(args[0].(string))
				}, VerifyString),
				ReturnTypeObject, ValidateUnaryString),
		},
		{
			evaluator: NewExpressionEvaluator("getProperty", guarded(evaluateGetProperty), ReturnTypeObject,
				func(expr *Expression) error {
					return ValidateOrder(expr, []ReturnType{ReturnTypeString}, ReturnTypeObject)
				}),
		},
		{
			evaluator: NewExpressionEvaluator("setProperty",
				ApplyWithError(func(args []any) (any, error) {
					record, err := copyRecord(args[0])
					if err != nil {
						return nil, err
					}
					record[args[1].(string)] = args[2]
					return record, nil
				}, verifyRecordEdit),
				ReturnTypeObject, validateRecordEdit(3)),
		},
		{
			evaluator: NewExpressionEvaluator("addProperty",
				ApplyWithError(func(args []any) (any, error) {
					record, err := copyRecord(args[0])
					if err != nil {
						return nil, err
					}
					name := args[1].(string)
					if _, exists := record[name]; exists {
						return nil, fmt.Errorf("%s already exists", name)
					}
					record[name] = args[2]
					return record, nil
				}, verifyRecordEdit),
				ReturnTypeObject, validateRecordEdit(3)),
		},
		{
			evaluator: NewExpressionEvaluator("removeProperty",
				ApplyWithError(func(args []any) (any, error) {
					record, err := copyRecord(args[0])
					if err != nil {
						return nil, err
					}
					delete(record, args[1].(string))
					return record, nil
				}, verifyRecordEdit),
				ReturnTypeObject, validateRecordEdit(2)),
		},
		{
			evaluator: NewExpressionEvaluator(TypeSetPathToValue, evaluateSetPathToValue, ReturnTypeObject,
				func(expr *Expression) error {
					if err := ValidateBinary(expr); err != nil {
						return err
					}
					if k := expr.children[0].kind(); k != TypeAccessor && k != TypeElement {
						return validationErrorf(expr, "%s is not a path that can be set.", expr.children[0])
					}
					return nil
				}),
		},
	}
}

// decodeJSON parses s, keeping integers as int64.
func decodeJSON(s string) (any, error) {
	dec := json.NewDecoder(bytes.NewReader([]byte(s)))
	dec.UseNumber()
	var out any
	if err := dec.Decode(&out); err != nil {
		return nil, fmt.Errorf("Invalid JSON %s: %v", formatConstant(s), err)
	}
	if dec.More() {
		return nil, fmt.Errorf("Invalid JSON %s: trailing data", formatConstant(s))
	}
	return canonicalValue(out), nil
}

// copyRecord returns a shallow copy of v, which must be a record.
func copyRecord(v any) (map[string]any, error) {
	record, ok := v.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("%s is not an object", formatConstant(v))
	}
	return maps.Clone(record), nil
}

func verifyRecordEdit(value any, expr *Expression, index int) error {
	if index == 1 {
		return VerifyString(value, expr, index)
	}
	return nil
}

func validateRecordEdit(arity int) ValidateExpressionDelegate {
	types := []ReturnType{ReturnTypeObject, ReturnTypeString, ReturnTypeObject}[:arity]
	return func(expr *Expression) error {
		return ValidateOrder(expr, nil, types...)
	}
}

// evaluateGetProperty reads a property from a record, or from the scope
// itself in the one-argument form.
func evaluateGetProperty(expr *Expression, state memory.Memory, opts Options) (any, error) {
	args, err := EvaluateChildren(expr, state, opts, nil)
	if err != nil {
		return nil, err
	}

	if len(args) == 1 {
		name, ok := args[0].(string)
		if !ok {
			return nil, fmt.Errorf("%s is not a string.", expr.children[0])
		}
		return WrapGetValue(state, name, opts), nil
	}

	name, ok := args[1].(string)
	if !ok {
		return nil, fmt.Errorf("%s is not a string.", expr.children[1])
	}
	switch instance := args[0].(type) {
	case nil:
		return nil, nil
	case map[string]any:
		value, _ := memory.AccessProperty(instance, name)
		return value, nil
	default:
		return nil, fmt.Errorf("%s is not an object.", expr.children[0])
	}
}

// evaluateSetPathToValue writes the second child's value at the path named
// by the first child and returns the value.
func evaluateSetPathToValue(expr *Expression, state memory.Memory, opts Options) (any, error) {
	path, left := TryAccumulatePath(expr.children[0], state, opts)
	if left != nil {
		return nil, fmt.Errorf("%s is not a valid path to set value", expr.children[0])
	}
	value, err := expr.children[1].TryEvaluate(state, opts)
	if err != nil {
		return nil, err
	}
	if err := state.SetValue(path, value); err != nil {
		return nil, fmt.Errorf("set %s in %s: %w", path, expr, err)
	}
	return value, nil
}
