package dialogexpr

import (
	"strings"
	"time"
)

// ReturnType is a bitmask of the value kinds an expression may produce.
// ReturnTypeObject means the kind is only known at runtime.
type ReturnType uint8

const (
	ReturnTypeBoolean ReturnType = 1 << iota
	ReturnTypeNumber
	ReturnTypeObject
	ReturnTypeString
	ReturnTypeArray
)

var returnTypeNames = []struct {
	flag ReturnType
	name string
}{
	{ReturnTypeBoolean, "boolean"},
	{ReturnTypeNumber, "number"},
	{ReturnTypeObject, "object"},
	{ReturnTypeString, "string"},
	{ReturnTypeArray, "array"},
}

// Overlaps reports whether r and other share at least one kind.
func (r ReturnType) Overlaps(other ReturnType) bool {
	return r&other != 0
}

// names lists the kinds set in r.
func (r ReturnType) names() []string {
	var out []string
	for _, n := range returnTypeNames {
		if r&n.flag != 0 {
			out = append(out, n.name)
		}
	}
	return out
}

// String renders r as kinds joined by "|", for example "string|number".
func (r ReturnType) String() string {
	if r == 0 {
		return "none"
	}
	return strings.Join(r.names(), "|")
}

// isSingle reports whether exactly one kind is set.
func (r ReturnType) isSingle() bool {
	return r != 0 && r&(r-1) == 0
}

// returnTypeOf derives the static type of a constant value.
func returnTypeOf(v any) ReturnType {
	switch v.(type) {
	case bool:
		return ReturnTypeBoolean
	case string:
		return ReturnTypeString
	case []any:
		return ReturnTypeArray
	case time.Time, map[string]any, nil:
		return ReturnTypeObject
	}
	if IsNumber(v) {
		return ReturnTypeNumber
	}
	return ReturnTypeObject
}
