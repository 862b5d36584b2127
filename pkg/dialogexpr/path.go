package dialogexpr

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/randalmurphal/dialogexpr/pkg/dialogexpr/memory"
)

// TryAccumulatePath collapses a chain of Accessor and Element nodes into one
// memory path, walking from expr inward. Element indices are evaluated
// against state; a non-negative integer contributes "[n]" and a string
// contributes "['s']". Accumulation stops at the first node that is neither,
// or whose index does not evaluate to one of those, and that node is returned
// as left. left is nil when the whole chain was consumed, in which case path
// resolves directly against state.
func TryAccumulatePath(expr *Expression, state memory.Memory, opts Options) (path string, left *Expression) {
	path, left, _ = accumulatePath(expr, state, opts)
	return path, left
}

// haltedIndex is the index result of the Element that stopped accumulation,
// kept so the index is not evaluated a second time.
type haltedIndex struct {
	value     any
	err       error
	evaluated bool
}

func accumulatePath(expr *Expression, state memory.Memory, opts Options) (path string, left *Expression, halted haltedIndex) {
	var sb []string
	left = expr

walk:
	for left != nil {
		switch left.kind() {
		case TypeAccessor:
			sb = append(sb, fmt.Sprint(left.children[0].value))
			if len(left.children) == 2 {
				left = left.children[1]
			} else {
				left = nil
			}
		case TypeElement:
			index, err := left.children[1].TryEvaluate(state, opts)
			if err != nil {
				halted = haltedIndex{err: err, evaluated: true}
				break walk
			}
			segment, ok := indexSegment(index)
			if !ok {
				halted = haltedIndex{value: index, evaluated: true}
				break walk
			}
			sb = append(sb, segment)
			left = left.children[0]
		default:
			break walk
		}
	}

	// Segments were collected outermost first.
	var b strings.Builder
	for i := len(sb) - 1; i >= 0; i-- {
		seg := sb[i]
		if b.Len() > 0 && !strings.HasPrefix(seg, "[") {
			b.WriteByte('.')
		}
		b.WriteString(seg)
	}
	return b.String(), left, halted
}

// indexSegment renders an evaluated index as a path segment.
func indexSegment(index any) (string, bool) {
	if s, ok := index.(string); ok {
		if strings.Contains(s, "'") {
			return `["` + s + `"]`, !strings.Contains(s, `"`)
		}
		return "['" + s + "']", true
	}
	if IsInteger(index) {
		if n, ok := ToInt64(index); ok && n >= 0 {
			return "[" + strconv.FormatInt(n, 10) + "]", true
		}
	}
	return "", false
}

// WrapGetValue reads path from state. A missing or nil value is replaced by
// the result of opts.NullSubstitution when one is set.
func WrapGetValue(state memory.Memory, path string, opts Options) any {
	if value, _ := state.GetValue(path); value != nil {
		return value
	}
	if opts.NullSubstitution != nil {
		return canonicalValue(memory.Normalize(opts.NullSubstitution(path)))
	}
	return nil
}

// evaluatePath backs both Accessor and Element.
func evaluatePath(expr *Expression, state memory.Memory, opts Options) (any, error) {
	path, left, halted := accumulatePath(expr, state, opts)
	switch {
	case left == nil:
		return WrapGetValue(state, path, opts), nil
	case left == expr:
		return evaluateElement(expr, state, opts, halted)
	}

	var value any
	var err error
	if halted.evaluated {
		value, err = evaluateElement(left, state, opts, halted)
	} else {
		value, err = left.TryEvaluate(state, opts)
	}
	if err != nil {
		return nil, err
	}
	if path == "" {
		return value, nil
	}
	return WrapGetValue(memory.NewSimpleObjectMemory(value), path, opts), nil
}

// evaluateElement handles instance[index] when the index could not join a
// path: it failed to evaluate, is negative, is a string that cannot be
// quoted, or is neither integer nor string. halted holds the index result
// from path accumulation.
func evaluateElement(expr *Expression, state memory.Memory, opts Options, halted haltedIndex) (any, error) {
	instance, err := expr.children[0].TryEvaluate(state, opts)
	if err != nil {
		return nil, err
	}
	if halted.err != nil {
		return nil, halted.err
	}
	index := halted.value
	if name, ok := index.(string); ok {
		record, ok := instance.(map[string]any)
		if !ok {
			return nil, nil
		}
		value, _ := memory.AccessProperty(record, name)
		return value, nil
	}
	if IsInteger(index) {
		n, _ := ToInt64(index)
		if list, ok := instance.([]any); ok {
			return nil, fmt.Errorf("%d index is out of range for %s of length %d.", n, expr.children[0], len(list))
		}
		return nil, fmt.Errorf("%s is not a collection.", expr.children[0])
	}
	return nil, fmt.Errorf("Could not coerce %s to an int or string.", expr.children[1])
}
