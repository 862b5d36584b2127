package dialogexpr

import (
	"fmt"
	"slices"
	"sync"

	"github.com/sahilm/fuzzy"

	"github.com/randalmurphal/dialogexpr/pkg/dialogexpr/memory"
)

// builtin is an evaluator together with the extra names it answers to.
type builtin struct {
	evaluator *ExpressionEvaluator
	aliases   []string
}

var (
	builtinsOnce sync.Once
	builtinTable map[string]*ExpressionEvaluator
	builtinNames []string
)

// builtins returns the immutable built-in table, building it on first use.
func builtins() map[string]*ExpressionEvaluator {
	builtinsOnce.Do(func() {
		builtinTable = make(map[string]*ExpressionEvaluator)
		groups := [][]builtin{
			pathFunctions(),
			mathFunctions(),
			comparisonFunctions(),
			logicFunctions(),
			stringFunctions(),
			collectionFunctions(),
			objectFunctions(),
			dateTimeFunctions(),
			miscFunctions(),
		}
		for _, group := range groups {
			for _, b := range group {
				builtinTable[b.evaluator.Type] = b.evaluator
				for _, alias := range b.aliases {
					builtinTable[alias] = b.evaluator
				}
			}
		}
		for name := range builtinTable {
			builtinNames = append(builtinNames, name)
		}
		slices.Sort(builtinNames)
	})
	return builtinTable
}

// LookupBuiltin returns the built-in evaluator registered under name.
func LookupBuiltin(name string) (*ExpressionEvaluator, bool) {
	e, ok := builtins()[name]
	return e, ok
}

// BuiltinNames returns every built-in name and alias in sorted order.
func BuiltinNames() []string {
	builtins()
	return slices.Clone(builtinNames)
}

// unknownFunction reports name as unknown, suggesting the closest candidate.
func unknownFunction(name string, candidates []string) error {
	if matches := fuzzy.Find(name, candidates); len(matches) > 0 {
		return fmt.Errorf("%w: %s (did you mean %s?)", ErrUnknownFunction, name, matches[0].Str)
	}
	return fmt.Errorf("%w: %s", ErrUnknownFunction, name)
}

func pathFunctions() []builtin {
	return []builtin{
		{evaluator: NewExpressionEvaluator(TypeAccessor, guarded(evaluatePath), ReturnTypeObject, validateAccessor)},
		{evaluator: NewExpressionEvaluator(TypeElement, guarded(evaluatePath), ReturnTypeObject, ValidateBinary)},
	}
}

// guarded protects a built-in body that calls back into host code, such as
// a NullSubstitution callback.
func guarded(evaluate EvaluateExpressionDelegate) EvaluateExpressionDelegate {
	return func(expr *Expression, state memory.Memory, opts Options) (value any, err error) {
		defer func() {
			if r := recover(); r != nil {
				value, err = nil, &RecoveredError{Expression: expr.String(), Value: r}
			}
		}()
		return evaluate(expr, state, opts)
	}
}

func validateAccessor(expr *Expression) error {
	if err := ValidateOrder(expr, []ReturnType{ReturnTypeObject}, ReturnTypeString); err != nil {
		return err
	}
	if !expr.children[0].IsConstant() {
		return validationErrorf(expr, "%s must be a constant property name.", expr.children[0])
	}
	return nil
}
