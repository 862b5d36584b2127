// Package dialogexpr evaluates typed expression trees against data scopes.
//
// Hosts build an Expression tree (usually from a parser they own), validate it
// once at construction, and evaluate it repeatedly against changing scopes.
// Evaluation returns a value and an error; data-dependent failures such as a
// missing property, a wrong runtime type or a division by zero are returned
// as errors and never panic.
//
// # Building Expressions
//
// Function nodes are created by name. Arity and static type checks run
// immediately:
//
//	sum, err := dialogexpr.MakeExpression("add",
//	    dialogexpr.NewAccessor("count", dialogexpr.NewAccessor("user", nil)),
//	    dialogexpr.NewConstant(1),
//	)
//	if err != nil {
//	    // wrong arity or a statically mistyped child
//	}
//
// # Evaluating
//
//	value, err := sum.TryEvaluate(memory.Wrap(scope), dialogexpr.Options{})
//
// Chained accessors and element lookups such as user.orders[0].id collapse
// into a single path lookup against the scope. Record keys match exactly
// first and then case-insensitively.
//
// # Custom Functions
//
// A FunctionTable layers custom functions over the immutable built-ins:
//
//	table := dialogexpr.NewFunctionTable()
//	err := table.Add("double", func(args []any) any {
//	    n, _ := dialogexpr.ToFloat64(args[0])
//	    return n * 2
//	})
//
// Names already used by a built-in or by an earlier Add are rejected. A panic
// inside a custom function is recovered and returned as a *RecoveredError.
//
// # Engine
//
// Engine bundles a FunctionTable, default Options, a slog logger and
// OpenTelemetry metrics and tracing around evaluation:
//
//	engine := dialogexpr.NewEngine(dialogexpr.WithLogger(logger))
//	value, err := engine.Evaluate(ctx, expr, scope)
package dialogexpr
