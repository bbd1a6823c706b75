package i18n_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/archivist/pkg/i18n"
)

func TestDeepMerge(t *testing.T) {
	t.Parallel()

	t.Run("overlay wins and base keys survive", func(t *testing.T) {
		t.Parallel()

		base := map[string]any{"a": 1, "b": map[string]any{"c": 2}}
		overlay := map[string]any{"b": map[string]any{"c": 3, "d": 4}}

		got := i18n.DeepMerge(base, overlay)
		require.Equal(t, map[string]any{"a": 1, "b": map[string]any{"c": 3, "d": 4}}, got)
	})

	t.Run("empty overlay is identity", func(t *testing.T) {
		t.Parallel()

		base := map[string]any{"a": 1, "b": map[string]any{"c": []any{"x", "y"}}}
		require.Equal(t, base, i18n.DeepMerge(base, map[string]any{}))
		require.Equal(t, base, i18n.DeepMerge(base, nil))
	})

	t.Run("nil inputs produce empty map", func(t *testing.T) {
		t.Parallel()

		got := i18n.DeepMerge(nil, nil)
		require.NotNil(t, got)
		require.Empty(t, got)
	})

	t.Run("mapping replaces scalar", func(t *testing.T) {
		t.Parallel()

		got := i18n.DeepMerge(
			map[string]any{"a": "text"},
			map[string]any{"a": map[string]any{"b": "nested"}},
		)
		require.Equal(t, map[string]any{"a": map[string]any{"b": "nested"}}, got)
	})

	t.Run("scalar replaces mapping", func(t *testing.T) {
		t.Parallel()

		got := i18n.DeepMerge(
			map[string]any{"a": map[string]any{"b": "nested"}},
			map[string]any{"a": "text"},
		)
		require.Equal(t, map[string]any{"a": "text"}, got)
	})

	t.Run("slices are replaced, not merged", func(t *testing.T) {
		t.Parallel()

		got := i18n.DeepMerge(
			map[string]any{"list": []any{1, 2, 3}},
			map[string]any{"list": []any{9}},
		)
		require.Equal(t, map[string]any{"list": []any{9}}, got)
	})

	t.Run("skips reserved keys", func(t *testing.T) {
		t.Parallel()

		got := i18n.DeepMerge(
			map[string]any{"a": 1},
			map[string]any{
				"__proto__": map[string]any{"polluted": true},
				"proto":     "x",
				"prototype": map[string]any{"polluted": true},
				"b":         2,
			},
		)
		require.Equal(t, map[string]any{"a": 1, "b": 2}, got)
	})

	t.Run("merges generic yaml maps", func(t *testing.T) {
		t.Parallel()

		got := i18n.DeepMerge(
			map[string]any{"a": map[any]any{"x": 1}},
			map[string]any{"a": map[any]any{"y": 2}},
		)
		require.Equal(t, map[string]any{"a": map[string]any{"x": 1, "y": 2}}, got)
	})

	t.Run("does not mutate or alias inputs", func(t *testing.T) {
		t.Parallel()

		base := map[string]any{"b": map[string]any{"c": 2}, "list": []any{"x"}}
		overlay := map[string]any{"b": map[string]any{"d": 4}}

		got := i18n.DeepMerge(base, overlay)
		got["b"].(map[string]any)["c"] = 100
		got["list"].([]any)[0] = "changed"

		require.Equal(t, map[string]any{"b": map[string]any{"c": 2}, "list": []any{"x"}}, base)
		require.Equal(t, map[string]any{"b": map[string]any{"d": 4}}, overlay)
	})
}
