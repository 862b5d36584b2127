package memory

import (
	"fmt"
	"strings"
)

// ParsePath splits a path into segments.
//
// Dotted names, bracketed indices and quoted bracketed names are accepted:
//
//	ParsePath("a.b[0].c")      // ["a", "b", "0", "c"]
//	ParsePath("a['b.c'][\"d\"]") // ["a", "b.c", "d"]
func ParsePath(path string) ([]string, error) {
	if path == "" {
		return nil, fmt.Errorf("%w: empty path", ErrInvalidPath)
	}

	var parts []string
	var cur strings.Builder
	flush := func() {
		if cur.Len() > 0 {
			parts = append(parts, cur.String())
			cur.Reset()
		}
	}

	for i := 0; i < len(path); i++ {
		c := path[i]
		switch c {
		case '.':
			flush()
		case '[':
			flush()
			end, segment, err := scanBracket(path, i)
			if err != nil {
				return nil, err
			}
			parts = append(parts, segment)
			i = end
		case ']':
			return nil, fmt.Errorf("%w: unexpected ']' at %d in %q", ErrInvalidPath, i, path)
		default:
			cur.WriteByte(c)
		}
	}
	flush()

	if len(parts) == 0 {
		return nil, fmt.Errorf("%w: %q has no segments", ErrInvalidPath, path)
	}
	return parts, nil
}

// scanBracket reads the bracketed segment opening at path[start] and returns
// the index of its closing ']' together with the segment text.
func scanBracket(path string, start int) (int, string, error) {
	i := start + 1
	if i < len(path) && (path[i] == '\'' || path[i] == '"') {
		quote := path[i]
		closing := strings.IndexByte(path[i+1:], quote)
		if closing < 0 {
			return 0, "", fmt.Errorf("%w: unterminated quote in %q", ErrInvalidPath, path)
		}
		segEnd := i + 1 + closing
		if segEnd+1 >= len(path) || path[segEnd+1] != ']' {
			return 0, "", fmt.Errorf("%w: expected ']' after quoted segment in %q", ErrInvalidPath, path)
		}
		return segEnd + 1, path[i+1 : segEnd], nil
	}

	closing := strings.IndexByte(path[i:], ']')
	if closing < 0 {
		return 0, "", fmt.Errorf("%w: unterminated '[' in %q", ErrInvalidPath, path)
	}
	segment := strings.TrimSpace(path[i : i+closing])
	if segment == "" {
		return 0, "", fmt.Errorf("%w: empty index in %q", ErrInvalidPath, path)
	}
	return i + closing, segment, nil
}
