package memory

import (
	"errors"
)

// Memory is a data scope that expressions read from and write to.
// Implementations resolve paths such as "a.b[0].c" or "a['b c']".
type Memory interface {
	// GetValue resolves path. The bool reports whether every segment of the
	// path was found; a found value may still be nil.
	GetValue(path string) (any, bool)

	// SetValue writes value at path, creating intermediate records as needed.
	SetValue(path string, value any) error
}

// Sentinel errors for scope operations.
var (
	// ErrInvalidPath indicates a path could not be parsed or is empty.
	ErrInvalidPath = errors.New("invalid memory path")

	// ErrNotContainer indicates a path segment addressed into a scalar value.
	ErrNotContainer = errors.New("value is not a record or list")

	// ErrIndexOutOfRange indicates a list index beyond the end of the list.
	ErrIndexOutOfRange = errors.New("list index out of range")

	// ErrEmptyStack indicates a write to a StackedMemory with no frames.
	ErrEmptyStack = errors.New("stacked memory has no frames")

	// ErrStoreClosed indicates the persistent store has been closed.
	ErrStoreClosed = errors.New("memory store closed")
)

// Wrap returns scope as a Memory. A value that already implements Memory is
// returned unchanged; anything else is normalised into a SimpleObjectMemory.
func Wrap(scope any) Memory {
	if m, ok := scope.(Memory); ok {
		return m
	}
	return NewSimpleObjectMemory(scope)
}
