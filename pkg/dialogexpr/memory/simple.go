package memory

import (
	"fmt"
)

// SimpleObjectMemory is a Memory over a single normalised value, usually a
// record decoded from JSON.
type SimpleObjectMemory struct {
	root any
}

// NewSimpleObjectMemory normalises data and wraps it.
func NewSimpleObjectMemory(data any) *SimpleObjectMemory {
	return &SimpleObjectMemory{root: Normalize(data)}
}

// GetValue implements Memory.
func (m *SimpleObjectMemory) GetValue(path string) (any, bool) {
	if m.root == nil {
		return nil, false
	}
	parts, err := ParsePath(path)
	if err != nil {
		return nil, false
	}
	return GetPath(m.root, parts)
}

// SetValue implements Memory.
func (m *SimpleObjectMemory) SetValue(path string, value any) error {
	parts, err := ParsePath(path)
	if err != nil {
		return err
	}
	root, err := SetPath(m.root, parts, Normalize(value))
	if err != nil {
		return fmt.Errorf("set %s: %w", path, err)
	}
	m.root = root
	return nil
}

// Root returns the wrapped value.
func (m *SimpleObjectMemory) Root() any {
	return m.root
}
