package registry

import (
	"cmp"
	"errors"
	"fmt"
	"slices"
	"sync"
)

var (
	// ErrDuplicateKey is returned by Add when the key is already registered.
	ErrDuplicateKey = errors.New("key already registered")

	// ErrSealed is returned by Add once Seal has been called.
	ErrSealed = errors.New("registry is sealed")
)

// Registry is an append-only map safe for concurrent use. Once sealed it is
// read-only.
type Registry[K cmp.Ordered, V any] struct {
	mu      sync.RWMutex
	entries map[K]V
	sealed  bool
}

// New creates an empty registry.
func New[K cmp.Ordered, V any]() *Registry[K, V] {
	return &Registry[K, V]{entries: make(map[K]V)}
}

// Add registers value under key.
func (r *Registry[K, V]) Add(key K, value V) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	switch _, taken := r.entries[key]; {
	case r.sealed:
		return fmt.Errorf("%w: cannot add %v", ErrSealed, key)
	case taken:
		return fmt.Errorf("%w: %v", ErrDuplicateKey, key)
	}
	r.entries[key] = value
	return nil
}

// Seal stops further additions. Sealing twice is a no-op.
func (r *Registry[K, V]) Seal() {
	r.mu.Lock()
	r.sealed = true
	r.mu.Unlock()
}

// Sealed reports whether Seal has been called.
func (r *Registry[K, V]) Sealed() bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.sealed
}

// Get returns the value stored under key.
func (r *Registry[K, V]) Get(key K) (V, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	v, ok := r.entries[key]
	return v, ok
}

// Has reports whether key is registered.
func (r *Registry[K, V]) Has(key K) bool {
	_, ok := r.Get(key)
	return ok
}

// Keys returns the registered keys in ascending order.
func (r *Registry[K, V]) Keys() []K {
	entries := r.snapshot()
	keys := make([]K, len(entries))
	for i, e := range entries {
		keys[i] = e.key
	}
	return keys
}

// Len returns the number of entries.
func (r *Registry[K, V]) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.entries)
}

// Range calls fn for each entry in key order until fn returns false. fn sees
// the entries present when Range started and may call Add.
func (r *Registry[K, V]) Range(fn func(K, V) bool) {
	for _, e := range r.snapshot() {
		if !fn(e.key, e.value) {
			return
		}
	}
}

type entry[K cmp.Ordered, V any] struct {
	key   K
	value V
}

// snapshot copies the entries out under the read lock, sorted by key.
func (r *Registry[K, V]) snapshot() []entry[K, V] {
	r.mu.RLock()
	out := make([]entry[K, V], 0, len(r.entries))
	for k, v := range r.entries {
		out = append(out, entry[K, V]{key: k, value: v})
	}
	r.mu.RUnlock()

	slices.SortFunc(out, func(a, b entry[K, V]) int {
		return cmp.Compare(a.key, b.key)
	})
	return out
}
