package dialogexpr

// Options configures a single evaluation. It is passed by value, so an
// evaluator may adjust it for its children without affecting its caller.
type Options struct {
	// Locale is a BCP 47 tag used by locale-sensitive functions when no
	// locale argument is given.
	Locale string

	// NullSubstitution, if set, supplies a value for a path that resolves to
	// nothing.
	NullSubstitution func(path string) any
}

// WithoutNullSubstitution returns a copy of o with NullSubstitution cleared.
func (o Options) WithoutNullSubstitution() Options {
	o.NullSubstitution = nil
	return o
}

// WithLocale returns a copy of o using locale.
func (o Options) WithLocale(locale string) Options {
	o.Locale = locale
	return o
}

// locale returns the explicit locale when given, otherwise o.Locale.
func (o Options) locale(explicit string) string {
	if explicit != "" {
		return explicit
	}
	return o.Locale
}
