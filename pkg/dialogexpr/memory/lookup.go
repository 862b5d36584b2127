package memory

import (
	"fmt"
	"strconv"
	"strings"
)

// AccessProperty returns the value stored under name in a record.
//
// An exact key match wins. Otherwise keys are compared case-insensitively and
// the lexically smallest match is used.
func AccessProperty(record map[string]any, name string) (any, bool) {
	key, ok := matchKey(record, name)
	if !ok {
		return nil, false
	}
	return record[key], true
}

// AccessIndex returns list[index]; negative and out-of-range indices miss.
func AccessIndex(list []any, index int) (any, bool) {
	if index < 0 || index >= len(list) {
		return nil, false
	}
	return list[index], true
}

// matchKey resolves name to the key actually stored in record.
func matchKey(record map[string]any, name string) (string, bool) {
	if _, ok := record[name]; ok {
		return name, true
	}
	found := ""
	ok := false
	for k := range record {
		if strings.EqualFold(k, name) && (!ok || k < found) {
			found, ok = k, true
		}
	}
	return found, ok
}

// GetPath walks parts from root. Numeric segments index lists; every other
// segment is a property lookup.
func GetPath(root any, parts []string) (any, bool) {
	cur := root
	for _, part := range parts {
		switch c := cur.(type) {
		case map[string]any:
			v, ok := AccessProperty(c, part)
			if !ok {
				return nil, false
			}
			cur = v
		case []any:
			idx, err := strconv.Atoi(part)
			if err != nil {
				return nil, false
			}
			v, ok := AccessIndex(c, idx)
			if !ok {
				return nil, false
			}
			cur = v
		default:
			return nil, false
		}
	}
	return cur, true
}

// SetPath writes value at parts below root and returns the possibly replaced
// root. Missing intermediate segments become records. Writing at index
// len(list) appends.
func SetPath(root any, parts []string, value any) (any, error) {
	if len(parts) == 0 {
		return value, nil
	}
	part := parts[0]

	switch c := root.(type) {
	case nil:
		child, err := SetPath(nil, parts[1:], value)
		if err != nil {
			return nil, err
		}
		return map[string]any{part: child}, nil

	case map[string]any:
		key, ok := matchKey(c, part)
		if !ok {
			key = part
		}
		child, err := SetPath(c[key], parts[1:], value)
		if err != nil {
			return nil, err
		}
		c[key] = child
		return c, nil

	case []any:
		idx, err := strconv.Atoi(part)
		if err != nil || idx < 0 {
			return nil, fmt.Errorf("%w: %q is not a list index", ErrInvalidPath, part)
		}
		switch {
		case idx < len(c):
			child, err := SetPath(c[idx], parts[1:], value)
			if err != nil {
				return nil, err
			}
			c[idx] = child
			return c, nil
		case idx == len(c):
			child, err := SetPath(nil, parts[1:], value)
			if err != nil {
				return nil, err
			}
			return append(c, child), nil
		default:
			return nil, fmt.Errorf("%w: index %d, length %d", ErrIndexOutOfRange, idx, len(c))
		}

	default:
		return nil, fmt.Errorf("%w: cannot set %q on %T", ErrNotContainer, part, root)
	}
}
