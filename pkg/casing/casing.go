// Package casing converts snake_case configuration keys to camelCase.
//
// YAML files written by hand tend to use snake_case while the rest of the
// code expects camelCase. Normalize is applied once at the ingestion boundary
// so that model decoding only ever sees one spelling:
//
//	raw := map[string]any{"last_updated": "2024-01-02", "meta": map[string]any{"file_type": "pdf"}}
//	casing.Normalize(raw)
//	// map[lastUpdated:2024-01-02 meta:map[fileType:pdf]]
//
// Slices are treated as leaves and are not descended into.
//
// When two keys collapse to the same name, the one already spelled in
// camelCase wins unless its value is nil or the empty string, in which case
// the converted key fills in. Converted keys are applied in sorted order.
package casing

import (
	"fmt"
	"regexp"
	"slices"
	"strings"
)

var snakePattern = regexp.MustCompile(`_([a-z])`)

// CamelCase converts every "_x" sequence (x being a lowercase ASCII letter)
// into "X". Keys that are already camelCase are returned unchanged.
func CamelCase(s string) string {
	if !strings.Contains(s, "_") {
		return s
	}
	return snakePattern.ReplaceAllStringFunc(s, func(m string) string {
		return strings.ToUpper(m[1:])
	})
}

// Normalize returns a copy of m with every key converted by CamelCase.
// Nested mappings are converted recursively; other values are copied as is.
// The input is never modified.
func Normalize(m map[string]any) map[string]any {
	if m == nil {
		return nil
	}

	out := make(map[string]any, len(m))
	var converted []string
	for key, value := range m {
		if CamelCase(key) != key {
			converted = append(converted, key)
			continue
		}
		out[key] = normalizeValue(value)
	}

	slices.Sort(converted)
	for _, key := range converted {
		name := CamelCase(key)
		if current, ok := out[name]; ok && !isEmpty(current) {
			continue
		}
		out[name] = normalizeValue(m[key])
	}
	return out
}

func isEmpty(v any) bool {
	switch val := v.(type) {
	case nil:
		return true
	case string:
		return val == ""
	default:
		return false
	}
}

func normalizeValue(v any) any {
	switch val := v.(type) {
	case map[string]any:
		return Normalize(val)
	case map[any]any:
		converted := make(map[string]any, len(val))
		for k, sub := range val {
			converted[fmt.Sprint(k)] = sub
		}
		return Normalize(converted)
	default:
		return v
	}
}
