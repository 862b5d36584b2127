/*
Package memory provides the data scopes that expressions are evaluated against.

# Overview

A scope is anything implementing [Memory]: it resolves a path such as
"user.profile.name", "items[0].price" or "turn['entity name']" to a value, and
can write a value back to a path.

Host data is wrapped once, at the boundary, with [Wrap] or
[NewSimpleObjectMemory]. Wrapping normalises the data into three shapes so the
rest of the engine never has to probe runtime types again:

  - Record: map[string]any
  - List:   []any
  - Scalar: everything else (string, numbers, bool, time.Time, nil)

Structs, typed maps and typed slices are converted to records and lists by
[Normalize]; [KindOf] reports the shape of a normalised value.

# Lookup Rules

Property lookup tries an exact key match first and then falls back to a
case-insensitive match, because authors do not reliably match the casing of
the host data. When several keys differ only by case, the lexically smallest
key wins so lookups are deterministic.

	m := memory.NewSimpleObjectMemory(map[string]any{"Foo": 1})
	v, ok := m.GetValue("foo") // 1, true

# Stacked Scopes

[StackedMemory] chains frames, searched most-recently-pushed first. Loop
combinators push one frame per iteration and pop it when the body finishes:

	stack := memory.NewStackedMemory(memory.Wrap(scope))
	stack.Push(memory.NewSimpleObjectMemory(map[string]any{"item": 1}))
	defer stack.Pop()

# Persistent Scopes

[SQLiteStore] keeps one JSON document per top-level key in SQLite, so state
such as "user" or "conversation" survives between evaluations and processes.

	store, err := memory.NewSQLiteStore("./state.db")
	_ = store.SetValue("user.name", "Ada")
	name, _ := store.GetValue("user.name")
*/
package memory
