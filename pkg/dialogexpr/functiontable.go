package dialogexpr

import (
	"errors"
	"fmt"
	"slices"

	"github.com/randalmurphal/dialogexpr/pkg/dialogexpr/memory"
	"github.com/randalmurphal/dialogexpr/pkg/dialogexpr/registry"
)

// CustomFunction is a host function over evaluated arguments.
type CustomFunction func(args []any) (any, error)

// FunctionTable resolves function names: the immutable built-ins first, then
// custom functions added to this table. Custom functions can be added but
// never replaced or removed.
//
// Add must not run concurrently with evaluations that use the table; Seal
// the table once it is configured.
type FunctionTable struct {
	custom *registry.Registry[string, *ExpressionEvaluator]
}

// NewFunctionTable creates a table with no custom functions.
func NewFunctionTable() *FunctionTable {
	return &FunctionTable{custom: registry.New[string, *ExpressionEvaluator]()}
}

// Add registers a custom function. fn may be an *ExpressionEvaluator, a
// CustomFunction, a func([]any) (any, error), a func(...any) (any, error) or
// a func([]any) any. Plain functions accept any number of arguments; their
// panics are recovered and their results normalised.
//
// Add fails with ErrBuiltinConflict when name is a built-in, with
// ErrDuplicateFunction when name was already added and with ErrTableSealed
// after Seal.
func (t *FunctionTable) Add(name string, fn any) error {
	if name == "" {
		return fmt.Errorf("%w: empty name", ErrInvalidFunction)
	}
	if _, ok := builtins()[name]; ok {
		return fmt.Errorf("%w: %s", ErrBuiltinConflict, name)
	}

	evaluator, err := customEvaluator(name, fn)
	if err != nil {
		return err
	}

	if err := t.custom.Add(name, evaluator); err != nil {
		switch {
		case errors.Is(err, registry.ErrSealed):
			return fmt.Errorf("%w: %s", ErrTableSealed, name)
		case errors.Is(err, registry.ErrDuplicateKey):
			return fmt.Errorf("%w: %s", ErrDuplicateFunction, name)
		}
		return err
	}
	return nil
}

// Seal makes the table read-only. Add fails with ErrTableSealed afterwards,
// so a sealed table can be shared with concurrent evaluations.
func (t *FunctionTable) Seal() {
	if t != nil {
		t.custom.Seal()
	}
}

// MustAdd is Add that panics on error.
func (t *FunctionTable) MustAdd(name string, fn any) {
	if err := t.Add(name, fn); err != nil {
		panic(err)
	}
}

func customEvaluator(name string, fn any) (*ExpressionEvaluator, error) {
	var body func(args []any) (any, error)

	switch f := fn.(type) {
	case *ExpressionEvaluator:
		if f == nil || f.Evaluate == nil {
			return nil, fmt.Errorf("%w: %s has no evaluate function", ErrInvalidFunction, name)
		}
		e := *f
		if e.Type == "" {
			e.Type = name
		}
		e.Evaluate = guardDelegate(f.Evaluate)
		return &e, nil
	case CustomFunction:
		body = f
	case func(args []any) (any, error):
		body = f
	case func(args ...any) (any, error):
		body = func(args []any) (any, error) { return f(args...) }
	case func(args []any) any:
		body = func(args []any) (any, error) { return f(args), nil }
	default:
		return nil, fmt.Errorf("%w: %s has unsupported type %T", ErrInvalidFunction, name, fn)
	}

	if body == nil {
		return nil, fmt.Errorf("%w: %s is nil", ErrInvalidFunction, name)
	}
	return NewExpressionEvaluator(name,
		ApplyWithError(func(args []any) (any, error) {
			value, err := body(args)
			if err != nil {
				return nil, err
			}
			return canonicalValue(memory.Normalize(value)), nil
		}, nil),
		ReturnTypeObject, nil), nil
}

// Lookup returns the evaluator for name, built-ins first.
func (t *FunctionTable) Lookup(name string) (*ExpressionEvaluator, bool) {
	if e, ok := builtins()[name]; ok {
		return e, true
	}
	if t == nil {
		return nil, false
	}
	return t.custom.Get(name)
}

// Has reports whether name resolves to a function.
func (t *FunctionTable) Has(name string) bool {
	_, ok := t.Lookup(name)
	return ok
}

// CustomNames returns the custom function names in sorted order.
func (t *FunctionTable) CustomNames() []string {
	if t == nil {
		return nil
	}
	return t.custom.Keys()
}

// Keys returns every resolvable name, built-in and custom, sorted.
func (t *FunctionTable) Keys() []string {
	keys := append(BuiltinNames(), t.CustomNames()...)
	slices.Sort(keys)
	return keys
}

// Len returns the number of resolvable names.
func (t *FunctionTable) Len() int {
	n := len(builtins())
	if t != nil {
		n += t.custom.Len()
	}
	return n
}

// MakeExpression creates a call to name, resolved through the table.
func (t *FunctionTable) MakeExpression(name string, children ...*Expression) (*Expression, error) {
	evaluator, ok := t.Lookup(name)
	if !ok {
		return nil, unknownFunction(name, t.Keys())
	}
	return newExpression(name, evaluator, children)
}
