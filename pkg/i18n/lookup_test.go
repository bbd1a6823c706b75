package i18n_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/archivist/pkg/i18n"
)

func TestResolve(t *testing.T) {
	t.Parallel()

	tree := map[string]any{
		"hello": map[string]any{"world": "x"},
		"count": 3,
		"flag":  true,
		"empty": "",
		"zero":  0,
		"list":  []any{"a"},
		"deep":  map[string]any{"er": map[string]any{"est": "bottom"}},
	}

	tests := []struct {
		name string
		tree any
		key  string
		want string
	}{
		{"nested string", tree, "hello.world", "x"},
		{"missing leaf", tree, "hello.nope", "hello.nope"},
		{"missing root", tree, "nope", "nope"},
		{"non-object tree", "not-an-object", "a.b", "a.b"},
		{"nil tree", nil, "a", "a"},
		{"path ends on mapping", tree, "hello", "hello"},
		{"path continues past leaf", tree, "hello.world.more", "hello.world.more"},
		{"number leaf", tree, "count", "3"},
		{"bool leaf", tree, "flag", "true"},
		{"empty string is missing", tree, "empty", "empty"},
		{"zero is missing", tree, "zero", "zero"},
		{"list leaf", tree, "list", "list"},
		{"three levels", tree, "deep.er.est", "bottom"},
		{"empty key", tree, "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			require.Equal(t, tt.want, i18n.Resolve(tt.tree, tt.key))
		})
	}
}
