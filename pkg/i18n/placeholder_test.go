package i18n_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/archivist/pkg/i18n"
)

func TestReplacePlaceholders(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name         string
		template     string
		placeholders []i18n.M
		expected     string
	}{
		{
			name:     "no placeholders",
			template: "Archive Browser",
			expected: "Archive Browser",
		},
		{
			name:         "single placeholder",
			template:     "{{count}} items",
			placeholders: []i18n.M{{"count": 12}},
			expected:     "12 items",
		},
		{
			name:         "missing placeholder remains",
			template:     "{{count}} items in {{archive}}",
			placeholders: []i18n.M{{"count": 2}},
			expected:     "2 items in {{archive}}",
		},
		{
			name:         "later maps win",
			template:     "Updated {{date}}",
			placeholders: []i18n.M{{"date": "yesterday"}, {"date": "2024-01-02"}},
			expected:     "Updated 2024-01-02",
		},
		{
			name:         "repeated placeholder",
			template:     "{{name}} / {{name}}",
			placeholders: []i18n.M{{"name": "Papers"}},
			expected:     "Papers / Papers",
		},
		{
			name:         "values are not re-expanded",
			template:     "{{a}}",
			placeholders: []i18n.M{{"a": "{{b}}", "b": "nope"}},
			expected:     "{{b}}",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			require.Equal(t, tt.expected, i18n.ReplacePlaceholders(tt.template, tt.placeholders...))
		})
	}
}

func TestTranslator(t *testing.T) {
	t.Parallel()

	tr := i18n.NewTranslator("en-US", map[string]any{
		"archive": map[string]any{"items": "{{count}} items"},
		"echo":    "echo",
	})

	require.Equal(t, "en-US", tr.Language())
	require.Equal(t, "4 items", tr.T("archive.items", i18n.M{"count": 4}))
	require.Equal(t, "archive.missing", tr.T("archive.missing"))
	require.True(t, tr.Has("archive.items"))
	require.True(t, tr.Has("echo"))
	require.False(t, tr.Has("archive.missing"))

	empty := i18n.NewTranslator("", nil)
	require.Equal(t, "a.b", empty.T("a.b"))
}
