package dialogexpr

import (
	"fmt"
	"slices"

	"github.com/randalmurphal/dialogexpr/pkg/dialogexpr/memory"
)

// ConvertToList returns the items a lambda iterates over. Lists pass
// through; a record becomes {"key", "value"} pairs in key order. ok is false
// for anything else.
func ConvertToList(instance any) (items []any, ok bool) {
	switch v := instance.(type) {
	case []any:
		return v, true
	case map[string]any:
		keys := make([]string, 0, len(v))
		for k := range v {
			keys = append(keys, k)
		}
		slices.Sort(keys)
		items = make([]any, len(keys))
		for i, k := range keys {
			items[i] = map[string]any{"key": k, "value": v[k]}
		}
		return items, true
	default:
		return nil, false
	}
}

// LambdaEvaluator runs the body of a (collection, iterator, body) expression
// once per item. Each iteration pushes a frame binding the iterator name to
// the item and pops it again before the next one, including when the body
// fails. visit receives each item and body result and returns false to stop
// early. A body error aborts the loop and is returned.
//
// The evaluated collection is returned so callers can tell lists from
// records.
func LambdaEvaluator(expr *Expression, state memory.Memory, opts Options, visit func(item, result any) bool) (any, error) {
	source := expr.children[0]
	instance, err := source.TryEvaluate(state, opts)
	if err != nil {
		return nil, err
	}
	items, ok := ConvertToList(instance)
	if !ok {
		return nil, fmt.Errorf("%s is not a collection or structure object.", source)
	}

	name := iteratorName(expr)
	body := expr.children[2]
	stack := memory.WrapStacked(state)

	for _, item := range items {
		result, err := evaluateInFrame(stack, name, item, body, opts)
		if err != nil {
			return nil, err
		}
		if !visit(item, result) {
			break
		}
	}
	return instance, nil
}

func evaluateInFrame(stack *memory.StackedMemory, name string, item any, body *Expression, opts Options) (any, error) {
	stack.Push(memory.NewSimpleObjectMemory(map[string]any{name: item}))
	defer stack.Pop()
	return body.TryEvaluate(stack, opts)
}

// evaluateForeach implements foreach and select.
func evaluateForeach(expr *Expression, state memory.Memory, opts Options) (any, error) {
	results := []any{}
	_, err := LambdaEvaluator(expr, state, opts, func(_, result any) bool {
		results = append(results, result)
		return true
	})
	if err != nil {
		return nil, err
	}
	return results, nil
}

// evaluateWhere keeps items whose body is true. A record source yields a
// record of the surviving pairs.
func evaluateWhere(expr *Expression, state memory.Memory, opts Options) (any, error) {
	kept := []any{}
	instance, err := LambdaEvaluator(expr, state, opts, func(item, result any) bool {
		if IsLogicTrue(result) {
			kept = append(kept, item)
		}
		return true
	})
	if err != nil {
		return nil, err
	}

	if _, isRecord := instance.(map[string]any); !isRecord {
		return kept, nil
	}
	record := make(map[string]any, len(kept))
	for _, item := range kept {
		pair := item.(map[string]any)
		record[pair["key"].(string)] = pair["value"]
	}
	return record, nil
}

// evaluateAny reports whether the body is true for some item.
func evaluateAny(expr *Expression, state memory.Memory, opts Options) (any, error) {
	found := false
	_, err := LambdaEvaluator(expr, state, opts, func(_, result any) bool {
		found = IsLogicTrue(result)
		return !found
	})
	if err != nil {
		return nil, err
	}
	return found, nil
}

// evaluateAll reports whether the body is true for every item.
func evaluateAll(expr *Expression, state memory.Memory, opts Options) (any, error) {
	all := true
	_, err := LambdaEvaluator(expr, state, opts, func(_, result any) bool {
		all = IsLogicTrue(result)
		return all
	})
	if err != nil {
		return nil, err
	}
	return all, nil
}
