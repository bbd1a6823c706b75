package i18n

import (
	"fmt"
	"maps"
	"strings"
)

// M holds placeholder values.
type M map[string]any

// ReplacePlaceholders substitutes {{name}} placeholders in template with
// values from the provided maps. Later maps win on duplicate names.
// Unknown placeholders are left in place.
//
//	ReplacePlaceholders("{{count}} files in {{archive}}", M{"count": 3, "archive": "Papers"})
//	// "3 files in Papers"
func ReplacePlaceholders(template string, placeholders ...M) string {
	if len(placeholders) == 0 || !strings.Contains(template, "{{") {
		return template
	}

	merged := make(M)
	for _, p := range placeholders {
		maps.Copy(merged, p)
	}

	pairs := make([]string, 0, len(merged)*2)
	for key, value := range merged {
		pairs = append(pairs, "{{"+key+"}}", fmt.Sprint(value))
	}
	return strings.NewReplacer(pairs...).Replace(template)
}
