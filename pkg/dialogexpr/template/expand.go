package template

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/randalmurphal/dialogexpr/pkg/dialogexpr/memory"
)

var (
	// bracePattern matches ${path}. The path may contain dots, brackets and
	// quoted names but no braces.
	bracePattern = regexp.MustCompile(`\$\{([^{}]+)\}`)

	// dollarPattern matches $a.b.c where each segment is an identifier.
	dollarPattern = regexp.MustCompile(`\$([a-zA-Z_][a-zA-Z0-9_]*(?:\.[a-zA-Z_][a-zA-Z0-9_]*)*)`)
)

// Expander expands placeholders in strings.
//
// Create with NewExpander() and configure with Option functions.
type Expander struct {
	missingAction MissingAction
	substitute    func(path string) string
	dollarStyle   bool
}

// NewExpander creates a new Expander with the given options.
//
// Default configuration:
//   - MissingAction: MissingKeep (keep placeholders as-is)
//   - DollarStyle: enabled ($name)
func NewExpander(opts ...Option) *Expander {
	e := &Expander{
		missingAction: MissingKeep,
		dollarStyle:   true,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Expand replaces placeholders in s with values read from scope.
//
// An error is only returned when MissingAction is MissingError and at least
// one path does not resolve.
func (e *Expander) Expand(s string, scope memory.Memory) (string, error) {
	if s == "" {
		return "", nil
	}

	var missing []string
	resolve := func(match, path string) string {
		path = strings.TrimSpace(path)
		if scope != nil {
			if val, ok := scope.GetValue(path); ok {
				return FormatValue(val)
			}
		}
		switch e.missingAction {
		case MissingEmpty:
			return ""
		case MissingError:
			missing = append(missing, path)
			return match
		case MissingSubstitute:
			if e.substitute != nil {
				return e.substitute(path)
			}
			return match
		default: // MissingKeep
			return match
		}
	}

	result := bracePattern.ReplaceAllStringFunc(s, func(match string) string {
		return resolve(match, match[2:len(match)-1])
	})

	if e.dollarStyle {
		result = expandDollar(result, resolve)
	}

	if len(missing) > 0 {
		return result, &UndefinedPathError{Paths: missing}
	}
	return result, nil
}

// expandDollar expands $name patterns. It runs after brace expansion, so
// values substituted for ${path} are scanned as well.
func expandDollar(s string, resolve func(match, path string) string) string {
	return dollarPattern.ReplaceAllStringFunc(s, func(match string) string {
		return resolve(match, match[1:])
	})
}

// MustExpand expands placeholders in s and panics on error.
func (e *Expander) MustExpand(s string, scope memory.Memory) string {
	result, err := e.Expand(s, scope)
	if err != nil {
		panic(fmt.Sprintf("template: %v", err))
	}
	return result
}

// ExpandAll expands placeholders in every string. On error, returns nil and
// the first error.
func (e *Expander) ExpandAll(ss []string, scope memory.Memory) ([]string, error) {
	if ss == nil {
		return nil, nil
	}

	results := make([]string, len(ss))
	for i, s := range ss {
		expanded, err := e.Expand(s, scope)
		if err != nil {
			return nil, err
		}
		results[i] = expanded
	}
	return results, nil
}

// FormatValue renders a scope value as placeholder text. Nil renders as the
// empty string; lists and records render as JSON.
func FormatValue(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(val), 'f', -1, 32)
	case []any, map[string]any:
		data, err := json.Marshal(val)
		if err != nil {
			return fmt.Sprintf("%v", val)
		}
		return string(data)
	default:
		return fmt.Sprintf("%v", val)
	}
}

// UndefinedPathError is returned when MissingError is set and one or more
// paths do not resolve.
type UndefinedPathError struct {
	// Paths lists the unresolved paths in order of appearance.
	Paths []string
}

// Error implements the error interface.
func (e *UndefinedPathError) Error() string {
	if len(e.Paths) == 1 {
		return fmt.Sprintf("undefined path: %s", e.Paths[0])
	}
	return fmt.Sprintf("undefined paths: %s", strings.Join(e.Paths, ", "))
}

// defaultExpander is the package-level expander with default settings.
var defaultExpander = NewExpander()

// Expand expands placeholders in s using the default expander. scope may be
// a memory.Memory or any value accepted by memory.Wrap.
//
// Unresolved placeholders are kept as-is.
func Expand(s string, scope any) string {
	// Default expander never returns errors (MissingKeep).
	result, _ := defaultExpander.Expand(s, memory.Wrap(scope))
	return result
}

// NullSubstitutionFunc returns a callback that renders tmpl for a missing
// path. Inside tmpl, ${path} names the path that failed to resolve. An empty
// tmpl yields nil, leaving missing values as null.
func NullSubstitutionFunc(tmpl string) func(path string) any {
	if tmpl == "" {
		return nil
	}
	exp := NewExpander(WithDollarStyle(false))
	return func(path string) any {
		return exp.MustExpand(tmpl, memory.NewSimpleObjectMemory(map[string]any{"path": path}))
	}
}
