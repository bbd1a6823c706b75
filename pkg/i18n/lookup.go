package i18n

import (
	"fmt"
	"strings"
)

// Resolve walks tree along the dot-separated segments of key and returns the
// string found there. If any segment is missing or holds a zero value, or
// the path ends on a mapping or list, key itself is returned.
// Numbers and booleans at the leaf are formatted with fmt.
func Resolve(tree any, key string) string {
	if text, ok := lookup(tree, key); ok {
		return text
	}
	return key
}

func lookup(tree any, key string) (string, bool) {
	current := tree
	for segment := range strings.SplitSeq(key, ".") {
		m, ok := asMap(current)
		if !ok {
			return "", false
		}
		next, ok := m[segment]
		if !ok || isZero(next) {
			return "", false
		}
		current = next
	}

	switch v := current.(type) {
	case string:
		return v, true
	case map[string]any, map[any]any, []any:
		return "", false
	default:
		return fmt.Sprint(v), true
	}
}

func isZero(v any) bool {
	switch val := v.(type) {
	case nil:
		return true
	case string:
		return val == ""
	case bool:
		return !val
	case int:
		return val == 0
	case int64:
		return val == 0
	case uint64:
		return val == 0
	case float64:
		return val == 0
	default:
		return false
	}
}
