/*
Package template expands ${path} placeholders in strings against a data scope.

# Overview

Placeholders name a path into a memory.Memory, using the same dotted and
bracketed syntax as accessor expressions. The package is used to render
host-configured messages such as the null substitution text of an Engine.

# Basic Usage

	scope := map[string]any{"user": map[string]any{"name": "Ada"}}
	result := template.Expand("Hello ${user.name}", scope)
	// result: "Hello Ada"

Bracketed segments and list indexes are accepted:

	template.Expand("${items[0]} and ${user['name']}", scope)

The short $name form is also expanded when the name is a plain dotted
identifier:

	template.Expand("Hi $user.name!", scope)

# Missing Values

By default, placeholders whose path does not resolve are kept as-is:

	template.Expand("Hello ${missing}", nil)
	// result: "Hello ${missing}"

Configure behavior with options:

	exp := template.NewExpander(template.WithMissingAction(template.MissingError))
	_, err := exp.Expand("Hello ${missing}", memory.Wrap(nil))
	// err: "undefined path: missing"

	exp = template.NewExpander(template.WithSubstitute(func(path string) string {
	    return "<" + path + ">"
	}))

# Null Substitution

NullSubstitutionFunc turns a configured template into the callback used by
expression evaluation. The ${path} placeholder receives the missing path:

	opts.NullSubstitution = template.NullSubstitutionFunc("${path} is undefined")

# Thread Safety

Expander is safe for concurrent use after construction, provided the Memory
passed to Expand is not mutated concurrently.
*/
package template
