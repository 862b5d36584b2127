package dialogexpr

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for construction and registration.
var (
	// ErrUnknownFunction indicates a function name with no evaluator.
	ErrUnknownFunction = errors.New("unknown function")

	// ErrBuiltinConflict indicates a custom function named like a built-in.
	ErrBuiltinConflict = errors.New("function name is reserved by a built-in")

	// ErrDuplicateFunction indicates a custom function registered twice.
	ErrDuplicateFunction = errors.New("custom function already registered")

	// ErrInvalidFunction indicates a value Add cannot turn into an evaluator.
	ErrInvalidFunction = errors.New("invalid custom function")

	// ErrTableSealed indicates Add on a sealed FunctionTable.
	ErrTableSealed = errors.New("function table is sealed")

	// ErrNilExpression indicates a nil expression passed to the Engine.
	ErrNilExpression = errors.New("nil expression")
)

// Sentinel errors returned from evaluation. They are wrapped in an
// *EvaluationError that names the failing expression.
var (
	ErrDivideByZero = errors.New("Cannot divide by 0")
	ErrModByZero    = errors.New("Cannot mod by 0")
)

// ValidationError reports a malformed expression tree found at construction.
type ValidationError struct {
	// Expression is the textual form of the offending node.
	Expression string
	Message    string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return e.Message
}

func validationErrorf(expr *Expression, format string, args ...any) error {
	return &ValidationError{Expression: expr.String(), Message: fmt.Sprintf(format, args...)}
}

// EvaluationError is a runtime failure raised by a function body, tagged with
// the expression that produced it.
type EvaluationError struct {
	Expression string
	Err        error
}

// Error implements the error interface.
func (e *EvaluationError) Error() string {
	return fmt.Sprintf("%s in %s.", strings.TrimSuffix(e.Err.Error(), "."), e.Expression)
}

// Unwrap returns the underlying error.
func (e *EvaluationError) Unwrap() error {
	return e.Err
}

// RecoveredError is a panic raised while evaluating a function body and
// converted into an ordinary error.
type RecoveredError struct {
	Expression string
	Value      any
}

// Error implements the error interface.
func (e *RecoveredError) Error() string {
	return fmt.Sprintf("%s panicked: %v", e.Expression, e.Value)
}

// Unwrap returns the panic value when it is an error.
func (e *RecoveredError) Unwrap() error {
	if err, ok := e.Value.(error); ok {
		return err
	}
	return nil
}
