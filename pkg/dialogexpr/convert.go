package dialogexpr

import (
	"cmp"
	"encoding/json"
	"fmt"
	"math"
	"reflect"
	"strconv"
	"strings"
	"time"
)

// IsNumber reports whether v is a Go numeric value or a json.Number.
func IsNumber(v any) bool {
	switch val := v.(type) {
	case int, int8, int16, int32, int64,
		uint, uint8, uint16, uint32, uint64,
		float32, float64:
		return true
	case json.Number:
		_, err := val.Float64()
		return err == nil
	default:
		return false
	}
}

// IsInteger reports whether v is a number with no fractional part.
func IsInteger(v any) bool {
	if isIntegerKind(v) {
		return true
	}
	f, ok := ToFloat64(v)
	return ok && !math.IsInf(f, 0) && f == math.Trunc(f)
}

// isIntegerKind reports whether v has a Go integer type. Arithmetic on two
// such values stays in int64.
func isIntegerKind(v any) bool {
	switch val := v.(type) {
	case int, int8, int16, int32, int64,
		uint, uint8, uint16, uint32, uint64:
		return true
	case json.Number:
		_, err := val.Int64()
		return err == nil
	default:
		return false
	}
}

// ToFloat64 converts a numeric value to float64.
func ToFloat64(v any) (float64, bool) {
	switch val := v.(type) {
	case float64:
		return val, true
	case float32:
		return float64(val), true
	case int:
		return float64(val), true
	case int8:
		return float64(val), true
	case int16:
		return float64(val), true
	case int32:
		return float64(val), true
	case int64:
		return float64(val), true
	case uint:
		return float64(val), true
	case uint8:
		return float64(val), true
	case uint16:
		return float64(val), true
	case uint32:
		return float64(val), true
	case uint64:
		return float64(val), true
	case json.Number:
		f, err := val.Float64()
		return f, err == nil
	default:
		return 0, false
	}
}

// ToInt64 converts an integral numeric value to int64. Floats are accepted
// only when they have no fractional part.
func ToInt64(v any) (int64, bool) {
	switch val := v.(type) {
	case int:
		return int64(val), true
	case int8:
		return int64(val), true
	case int16:
		return int64(val), true
	case int32:
		return int64(val), true
	case int64:
		return val, true
	case uint:
		if uint64(val) > math.MaxInt64 {
			return 0, false
		}
		return int64(val), true
	case uint8:
		return int64(val), true
	case uint16:
		return int64(val), true
	case uint32:
		return int64(val), true
	case uint64:
		if val > math.MaxInt64 {
			return 0, false
		}
		return int64(val), true
	case json.Number:
		if i, err := val.Int64(); err == nil {
			return i, true
		}
	}
	f, ok := ToFloat64(v)
	if !ok || f != math.Trunc(f) || f < math.MinInt64 || f >= math.MaxInt64 {
		return 0, false
	}
	return int64(f), true
}

// canonicalValue widens numbers so results compare predictably: integer
// kinds become int64 and other numbers float64. Lists and records are
// copied.
func canonicalValue(v any) any {
	switch val := v.(type) {
	case nil, string, bool, int64, float64, time.Time:
		return val
	case []any:
		out := make([]any, len(val))
		for i, item := range val {
			out[i] = canonicalValue(item)
		}
		return out
	case map[string]any:
		out := make(map[string]any, len(val))
		for k, item := range val {
			out[k] = canonicalValue(item)
		}
		return out
	}
	if isIntegerKind(v) {
		if i, ok := ToInt64(v); ok {
			return i
		}
	}
	if f, ok := ToFloat64(v); ok {
		return f
	}
	return v
}

// integralOrFloat returns f as int64 when it is integral and in range.
func integralOrFloat(f float64) any {
	if f == math.Trunc(f) && f >= math.MinInt64 && f < math.MaxInt64 {
		return int64(f)
	}
	return f
}

// IsLogicTrue reports the truth value of v. Only false and nil are false.
func IsLogicTrue(v any) bool {
	switch val := v.(type) {
	case nil:
		return false
	case bool:
		return val
	default:
		return true
	}
}

// IsEqual compares two values. Numbers compare by value regardless of Go
// type; lists and records compare element-wise.
func IsEqual(a, b any) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	if IsNumber(a) && IsNumber(b) {
		c, ok := compareNumbers(a, b)
		return ok && c == 0
	}
	switch av := a.(type) {
	case []any:
		bv, ok := b.([]any)
		if !ok || len(av) != len(bv) {
			return false
		}
		for i := range av {
			if !IsEqual(av[i], bv[i]) {
				return false
			}
		}
		return true
	case map[string]any:
		bv, ok := b.(map[string]any)
		if !ok || len(av) != len(bv) {
			return false
		}
		for k, item := range av {
			other, ok := bv[k]
			if !ok || !IsEqual(item, other) {
				return false
			}
		}
		return true
	case time.Time:
		bv, ok := b.(time.Time)
		return ok && av.Equal(bv)
	}
	return reflect.DeepEqual(a, b)
}

// compareNumbers orders two numbers, exactly when both fit in int64.
// ok is false when either side is NaN.
func compareNumbers(a, b any) (int, bool) {
	if isIntegerKind(a) && isIntegerKind(b) {
		ia, okA := ToInt64(a)
		ib, okB := ToInt64(b)
		if okA && okB {
			return cmp.Compare(ia, ib), true
		}
	}
	fa, _ := ToFloat64(a)
	fb, _ := ToFloat64(b)
	switch {
	case fa < fb:
		return -1, true
	case fa > fb:
		return 1, true
	case fa == fb:
		return 0, true
	}
	return 0, false
}

// compareValues orders two numbers, two strings or two times.
func compareValues(a, b any) (int, error) {
	if IsNumber(a) && IsNumber(b) {
		c, _ := compareNumbers(a, b)
		return c, nil
	}
	if sa, ok := a.(string); ok {
		if sb, ok := b.(string); ok {
			return strings.Compare(sa, sb), nil
		}
	}
	if ta, ok := a.(time.Time); ok {
		if tb, ok := b.(time.Time); ok {
			return ta.Compare(tb), nil
		}
	}
	return 0, fmt.Errorf("%s and %s are not comparable", formatConstant(a), formatConstant(b))
}

// toStringValue renders v for string concatenation. nil is the empty string;
// lists and records are JSON.
func toStringValue(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case bool:
		return strconv.FormatBool(val)
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(val), 'f', -1, 32)
	case time.Time:
		return val.Format(time.RFC3339Nano)
	case []any, map[string]any:
		data, err := json.Marshal(val)
		if err != nil {
			return fmt.Sprint(val)
		}
		return string(data)
	}
	if i, ok := ToInt64(v); ok && isIntegerKind(v) {
		return strconv.FormatInt(i, 10)
	}
	return fmt.Sprint(v)
}

// typeName describes v in error messages.
func typeName(v any) string {
	switch v.(type) {
	case nil:
		return "null"
	case string:
		return "string"
	case bool:
		return "boolean"
	case []any:
		return "array"
	case map[string]any:
		return "object"
	}
	if IsNumber(v) {
		return "number"
	}
	return fmt.Sprintf("%T", v)
}
