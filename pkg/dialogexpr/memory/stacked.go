package memory

// StackedMemory chains Memory frames. Lookups search the most recently
// pushed frame first. It is not safe for concurrent use; each evaluation
// owns its own stack.
type StackedMemory struct {
	frames []Memory
}

// NewStackedMemory creates a stack with the given frames, bottom first.
func NewStackedMemory(frames ...Memory) *StackedMemory {
	s := &StackedMemory{}
	for _, f := range frames {
		s.Push(f)
	}
	return s
}

// WrapStacked returns m itself if it is already a StackedMemory, otherwise a
// new stack with m as its only frame.
func WrapStacked(m Memory) *StackedMemory {
	if s, ok := m.(*StackedMemory); ok {
		return s
	}
	return NewStackedMemory(m)
}

// Push adds a frame on top of the stack.
func (s *StackedMemory) Push(m Memory) {
	s.frames = append(s.frames, m)
}

// Pop removes and returns the top frame, or nil if the stack is empty.
func (s *StackedMemory) Pop() Memory {
	if len(s.frames) == 0 {
		return nil
	}
	top := s.frames[len(s.frames)-1]
	s.frames[len(s.frames)-1] = nil
	s.frames = s.frames[:len(s.frames)-1]
	return top
}

// Len returns the number of frames.
func (s *StackedMemory) Len() int {
	return len(s.frames)
}

// GetValue implements Memory.
func (s *StackedMemory) GetValue(path string) (any, bool) {
	for i := len(s.frames) - 1; i >= 0; i-- {
		if v, ok := s.frames[i].GetValue(path); ok {
			return v, true
		}
	}
	return nil, false
}

// SetValue writes to the topmost frame that already binds the first segment
// of path, or to the bottom frame when none does. Loop variables therefore
// stay local while everything else lands in the host scope.
func (s *StackedMemory) SetValue(path string, value any) error {
	if len(s.frames) == 0 {
		return ErrEmptyStack
	}
	parts, err := ParsePath(path)
	if err != nil {
		return err
	}
	for i := len(s.frames) - 1; i > 0; i-- {
		if _, ok := s.frames[i].GetValue(rootSegment(parts[0])); ok {
			return s.frames[i].SetValue(path, value)
		}
	}
	return s.frames[0].SetValue(path, value)
}

// rootSegment renders a single segment as a path that ParsePath reads back
// unchanged.
func rootSegment(name string) string {
	for i := 0; i < len(name); i++ {
		switch name[i] {
		case '.', '[', ']', '\'':
			return "[\"" + name + "\"]"
		}
	}
	return name
}
