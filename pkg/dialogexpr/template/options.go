package template

// MissingAction specifies how to handle placeholders whose path does not resolve.
type MissingAction int

const (
	// MissingKeep keeps the placeholder as-is. This is the default behavior.
	MissingKeep MissingAction = iota

	// MissingEmpty replaces the placeholder with an empty string.
	MissingEmpty

	// MissingError returns an UndefinedPathError.
	MissingError

	// MissingSubstitute replaces the placeholder with the result of the
	// substitution function set by WithSubstitute.
	MissingSubstitute
)

// Option configures an Expander.
type Option func(*Expander)

// WithMissingAction sets how unresolved placeholders are handled.
//
// Default: MissingKeep (keep placeholder as-is)
func WithMissingAction(action MissingAction) Option {
	return func(e *Expander) {
		e.missingAction = action
	}
}

// WithSubstitute sets the function called for unresolved placeholders and
// switches the missing action to MissingSubstitute.
//
// Example:
//
//	exp := NewExpander(WithSubstitute(func(path string) string {
//	    return "?" + path
//	}))
func WithSubstitute(fn func(path string) string) Option {
	return func(e *Expander) {
		e.substitute = fn
		e.missingAction = MissingSubstitute
	}
}

// WithDollarStyle enables or disables $name pattern expansion.
//
// Default: true (enabled)
func WithDollarStyle(enabled bool) Option {
	return func(e *Expander) {
		e.dollarStyle = enabled
	}
}
