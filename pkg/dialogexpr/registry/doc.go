// Package registry provides a generic append-only registry for values indexed
// by key.
//
// Entries can be added but never replaced or removed, so a value obtained
// from Get stays valid for the lifetime of the registry. Lookups take a read
// lock and scale with concurrent readers.
//
// # Basic Usage
//
//	r := registry.New[string, int]()
//	if err := r.Add("one", 1); err != nil {
//	    return err
//	}
//
//	value, ok := r.Get("one")
//
// Adding a key twice fails with ErrDuplicateKey:
//
//	err := r.Add("one", 2)
//	errors.Is(err, registry.ErrDuplicateKey) // true
//
// # Sealing
//
// Seal makes a registry read-only. Later calls to Add fail with ErrSealed,
// which lets a host finish configuration before sharing the registry with
// readers:
//
//	r.Seal()
//	err := r.Add("two", 2)
//	errors.Is(err, registry.ErrSealed) // true
//
// # Ordering
//
// Keys and Range visit entries in ascending key order, so listings built from
// a registry are stable across runs.
package registry
