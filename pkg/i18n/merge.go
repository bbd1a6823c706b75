package i18n

import "fmt"

// reservedKeys are never copied from an overlay.
var reservedKeys = map[string]struct{}{
	"__proto__": {},
	"proto":     {},
	"prototype": {},
}

// DeepMerge returns a new tree with overlay laid over base.
// Nested mappings are merged key by key; any other overlay value replaces
// the base value. Neither input is modified and the result shares no
// mappings or slices with them.
func DeepMerge(base, overlay map[string]any) map[string]any {
	out := cloneMap(base)
	for key, value := range overlay {
		if _, skip := reservedKeys[key]; skip {
			continue
		}

		if sub, ok := asMap(value); ok {
			existing, _ := asMap(out[key])
			out[key] = DeepMerge(existing, sub)
			continue
		}

		out[key] = cloneValue(value)
	}
	return out
}

// asMap reports whether v is a mapping, converting generic YAML maps.
func asMap(v any) (map[string]any, bool) {
	switch m := v.(type) {
	case map[string]any:
		return m, true
	case map[any]any:
		converted := make(map[string]any, len(m))
		for k, sub := range m {
			converted[fmt.Sprint(k)] = sub
		}
		return converted, true
	default:
		return nil, false
	}
}

func cloneMap(m map[string]any) map[string]any {
	out := make(map[string]any, len(m))
	for k, v := range m {
		out[k] = cloneValue(v)
	}
	return out
}

func cloneValue(v any) any {
	if m, ok := asMap(v); ok {
		return cloneMap(m)
	}
	if s, ok := v.([]any); ok {
		out := make([]any, len(s))
		for i, item := range s {
			out[i] = cloneValue(item)
		}
		return out
	}
	return v
}
