package dialogexpr

import (
	"encoding/json"
	"fmt"
	"slices"
	"strconv"
	"strings"
	"time"
	"unicode"

	"github.com/randalmurphal/dialogexpr/pkg/dialogexpr/memory"
)

// Expression is one node of an expression tree: a constant or a function
// call with children. Expressions are immutable once built.
type Expression struct {
	typ       string
	children  []*Expression
	evaluator *ExpressionEvaluator
	value     any
}

// NewConstant creates a leaf holding value. Host values are normalised into
// records, lists and scalars, and integers are widened to int64.
func NewConstant(value any) *Expression {
	return &Expression{typ: TypeConstant, value: canonicalValue(memory.Normalize(value))}
}

// NewAccessor creates a property access. A nil instance reads property from
// the scope root.
func NewAccessor(property string, instance *Expression) *Expression {
	children := []*Expression{NewConstant(property)}
	if instance != nil {
		children = append(children, instance)
	}
	return &Expression{typ: TypeAccessor, evaluator: builtins()[TypeAccessor], children: children}
}

// NewElement creates an indexing node, instance[index].
func NewElement(instance, index *Expression) (*Expression, error) {
	return MakeExpression(TypeElement, instance, index)
}

// NewExpression creates a node evaluated by evaluator and runs its validator.
func NewExpression(evaluator *ExpressionEvaluator, children ...*Expression) (*Expression, error) {
	if evaluator == nil {
		return nil, fmt.Errorf("%w: nil evaluator", ErrInvalidFunction)
	}
	return newExpression(evaluator.Type, evaluator, children)
}

// MakeExpression creates a call to the built-in function name.
func MakeExpression(name string, children ...*Expression) (*Expression, error) {
	evaluator, ok := builtins()[name]
	if !ok {
		return nil, unknownFunction(name, BuiltinNames())
	}
	return newExpression(name, evaluator, children)
}

// Must panics if err is non-nil and otherwise returns expr. It is meant for
// trees known to be valid, such as package-level fixtures.
//
//	expr := dialogexpr.Must(dialogexpr.MakeExpression("not", cond))
func Must(expr *Expression, err error) *Expression {
	if err != nil {
		panic(err)
	}
	return expr
}

func newExpression(typ string, evaluator *ExpressionEvaluator, children []*Expression) (*Expression, error) {
	for i, child := range children {
		if child == nil {
			return nil, &ValidationError{
				Expression: typ,
				Message:    fmt.Sprintf("child %d of %s is nil.", i, typ),
			}
		}
	}
	expr := &Expression{
		typ:       typ,
		evaluator: evaluator,
		children:  slices.Clone(children),
	}
	if err := evaluator.ValidateExpression(expr); err != nil {
		return nil, err
	}
	return expr, nil
}

// Type returns the name the node was built with, such as "add" or "+".
// Constants report TypeConstant.
func (e *Expression) Type() string {
	return e.typ
}

// Children returns a copy of the child list.
func (e *Expression) Children() []*Expression {
	return slices.Clone(e.children)
}

// Child returns the i-th child, or nil when out of range.
func (e *Expression) Child(i int) *Expression {
	if i < 0 || i >= len(e.children) {
		return nil
	}
	return e.children[i]
}

// Evaluator returns the node's evaluator, nil for constants.
func (e *Expression) Evaluator() *ExpressionEvaluator {
	return e.evaluator
}

// Value returns the value of a constant, nil for any other node.
func (e *Expression) Value() any {
	return e.value
}

// IsConstant reports whether e is a leaf value.
func (e *Expression) IsConstant() bool {
	return e.evaluator == nil
}

// ReturnType reports the static type of the node.
func (e *Expression) ReturnType() ReturnType {
	if e.evaluator == nil {
		return returnTypeOf(e.value)
	}
	return e.evaluator.ReturnType
}

// kind is the canonical evaluator type used for dispatch.
func (e *Expression) kind() string {
	if e.evaluator == nil {
		return TypeConstant
	}
	return e.evaluator.Type
}

// TryEvaluate computes the node's value against state. A nil state behaves
// like an empty scope.
func (e *Expression) TryEvaluate(state memory.Memory, opts Options) (any, error) {
	if e.evaluator == nil {
		return e.value, nil
	}
	if state == nil {
		state = memory.NewSimpleObjectMemory(nil)
	}
	return e.evaluator.TryEvaluate(e, state, opts)
}

// Evaluate wraps scope with memory.Wrap and evaluates with default options.
func (e *Expression) Evaluate(scope any) (any, error) {
	return e.TryEvaluate(memory.Wrap(scope), Options{})
}

// ValidateTree re-runs validation over the whole tree, children first.
func (e *Expression) ValidateTree() error {
	for _, child := range e.children {
		if err := child.ValidateTree(); err != nil {
			return err
		}
	}
	if e.evaluator == nil {
		return nil
	}
	return e.evaluator.ValidateExpression(e)
}

// PushDownNot returns an equivalent tree in which "!" has been moved as close
// to the leaves as negations allow: !(a < b) becomes a >= b and
// !(a && b) becomes !(a) || !(b).
func (e *Expression) PushDownNot() *Expression {
	return e.pushDownNot(false)
}

func (e *Expression) pushDownNot(inNot bool) *Expression {
	if e.evaluator == nil {
		if inNot {
			return notExpression(e)
		}
		return e
	}

	kind := e.kind()
	if kind == TypeNot {
		return e.children[0].pushDownNot(!inNot)
	}

	logical := kind == TypeAnd || kind == TypeOr
	children := make([]*Expression, len(e.children))
	for i, child := range e.children {
		children[i] = child.pushDownNot(inNot && logical)
	}

	switch {
	case !inNot:
		return &Expression{typ: e.typ, evaluator: e.evaluator, children: children}
	case e.evaluator.Negation != nil:
		neg := e.evaluator.Negation
		return &Expression{typ: neg.Type, evaluator: neg, children: children}
	default:
		return notExpression(&Expression{typ: e.typ, evaluator: e.evaluator, children: children})
	}
}

func notExpression(child *Expression) *Expression {
	return &Expression{typ: TypeNot, evaluator: builtins()[TypeNot], children: []*Expression{child}}
}

// String renders the node textually. Error messages use this form.
func (e *Expression) String() string {
	n := len(e.children)
	switch kind := e.kind(); {
	case kind == TypeConstant:
		return formatConstant(e.value)
	case kind == TypeAccessor && (n == 1 || n == 2):
		name := fmt.Sprint(e.children[0].value)
		if n == 1 {
			return name
		}
		return e.children[1].String() + "." + name
	case kind == TypeElement && n == 2:
		return e.children[0].String() + "[" + e.children[1].String() + "]"
	}

	args := make([]string, len(e.children))
	for i, child := range e.children {
		args[i] = child.String()
	}
	if isOperator(e.typ) {
		if len(args) == 1 {
			return e.typ + "(" + args[0] + ")"
		}
		return "(" + strings.Join(args, " "+e.typ+" ") + ")"
	}
	return e.typ + "(" + strings.Join(args, ", ") + ")"
}

// isOperator reports whether typ is symbolic, like "+" or "&&".
func isOperator(typ string) bool {
	if typ == "" {
		return false
	}
	for _, r := range typ {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			return false
		}
	}
	return true
}

func formatConstant(v any) string {
	switch val := v.(type) {
	case nil:
		return "null"
	case string:
		return "'" + strings.ReplaceAll(val, "'", `\'`) + "'"
	case bool:
		return strconv.FormatBool(val)
	case time.Time:
		return "'" + val.Format(time.RFC3339Nano) + "'"
	case []any:
		items := make([]string, len(val))
		for i, item := range val {
			items[i] = formatConstant(item)
		}
		return "[" + strings.Join(items, ", ") + "]"
	case map[string]any:
		data, err := json.Marshal(val)
		if err != nil {
			return fmt.Sprint(val)
		}
		return string(data)
	default:
		return fmt.Sprint(val)
	}
}
