package memory

import (
	"encoding/json"
	"reflect"
	"time"
)

// Kind is the shape of a normalised value.
type Kind int

const (
	// KindScalar covers strings, numbers, booleans, times and nil.
	KindScalar Kind = iota

	// KindList is a []any.
	KindList

	// KindRecord is a map[string]any.
	KindRecord
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case KindScalar:
		return "scalar"
	case KindList:
		return "list"
	case KindRecord:
		return "record"
	default:
		return "unknown"
	}
}

// KindOf reports the shape of a normalised value.
func KindOf(v any) Kind {
	switch v.(type) {
	case map[string]any:
		return KindRecord
	case []any:
		return KindList
	default:
		return KindScalar
	}
}

// Normalize converts host data into records, lists and scalars.
//
// map[string]any and []any are kept by reference; nested values that need
// conversion are replaced in place. Typed maps with string keys, typed slices
// and arrays are copied into map[string]any and []any. Structs go through
// encoding/json so their json tags are honoured. Pointers are dereferenced.
func Normalize(v any) any {
	switch val := v.(type) {
	case nil, string, bool, time.Time, json.Number,
		int, int8, int16, int32, int64,
		uint, uint8, uint16, uint32, uint64,
		float32, float64:
		return val
	case map[string]any:
		for k, item := range val {
			if !isCanonical(item) {
				val[k] = Normalize(item)
			} else if KindOf(item) != KindScalar {
				Normalize(item)
			}
		}
		return val
	case []any:
		for i, item := range val {
			if !isCanonical(item) {
				val[i] = Normalize(item)
			} else if KindOf(item) != KindScalar {
				Normalize(item)
			}
		}
		return val
	case []byte:
		return string(val)
	}
	return normalizeReflect(reflect.ValueOf(v))
}

// isCanonical reports whether v needs no conversion at its own level.
func isCanonical(v any) bool {
	switch v.(type) {
	case nil, string, bool, time.Time, json.Number,
		int, int8, int16, int32, int64,
		uint, uint8, uint16, uint32, uint64,
		float32, float64,
		map[string]any, []any:
		return true
	default:
		return false
	}
}

func normalizeReflect(rv reflect.Value) any {
	switch rv.Kind() {
	case reflect.Pointer, reflect.Interface:
		if rv.IsNil() {
			return nil
		}
		return Normalize(rv.Elem().Interface())
	case reflect.Map:
		if rv.Type().Key().Kind() != reflect.String {
			return viaJSON(rv.Interface())
		}
		out := make(map[string]any, rv.Len())
		iter := rv.MapRange()
		for iter.Next() {
			out[iter.Key().String()] = Normalize(iter.Value().Interface())
		}
		return out
	case reflect.Slice, reflect.Array:
		if rv.Kind() == reflect.Slice && rv.IsNil() {
			return nil
		}
		out := make([]any, rv.Len())
		for i := range out {
			out[i] = Normalize(rv.Index(i).Interface())
		}
		return out
	case reflect.Struct:
		return viaJSON(rv.Interface())
	case reflect.String:
		return rv.String()
	case reflect.Bool:
		return rv.Bool()
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return rv.Int()
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return rv.Uint()
	case reflect.Float32, reflect.Float64:
		return rv.Float()
	default:
		return rv.Interface()
	}
}

// viaJSON round-trips v through encoding/json. Values json cannot encode are
// returned unchanged and treated as scalars.
func viaJSON(v any) any {
	data, err := json.Marshal(v)
	if err != nil {
		return v
	}
	var out any
	if err := json.Unmarshal(data, &out); err != nil {
		return v
	}
	return out
}
