package casing_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/archivist/pkg/casing"
)

func TestCamelCase(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want string
	}{
		{"last_updated", "lastUpdated"},
		{"file_type_name", "fileTypeName"},
		{"lastUpdated", "lastUpdated"},
		{"name", "name"},
		{"", ""},
		{"trailing_", "trailing_"},
		{"_leading", "Leading"},
		{"upper_Case", "upper_Case"},
		{"digit_1", "digit_1"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			t.Parallel()
			require.Equal(t, tt.want, casing.CamelCase(tt.in))
		})
	}
}

func TestNormalize(t *testing.T) {
	t.Parallel()

	t.Run("converts nested mappings", func(t *testing.T) {
		t.Parallel()

		in := map[string]any{
			"last_updated": "2024-01-02",
			"meta": map[string]any{
				"file_type": "pdf",
			},
		}

		got := casing.Normalize(in)
		require.Equal(t, map[string]any{
			"lastUpdated": "2024-01-02",
			"meta": map[string]any{
				"fileType": "pdf",
			},
		}, got)
	})

	t.Run("treats slices as leaves", func(t *testing.T) {
		t.Parallel()

		items := []any{map[string]any{"last_updated": "x"}}
		got := casing.Normalize(map[string]any{"item_list": items})

		require.Equal(t, items, got["itemList"])
		require.Contains(t, got["itemList"].([]any)[0], "last_updated")
	})

	t.Run("stringifies keys of generic maps", func(t *testing.T) {
		t.Parallel()

		got := casing.Normalize(map[string]any{
			"nested_map": map[any]any{"some_key": 1, 2: "two"},
		})
		require.Equal(t, map[string]any{"someKey": 1, "2": "two"}, got["nestedMap"])
	})

	t.Run("does not modify input", func(t *testing.T) {
		t.Parallel()

		in := map[string]any{"a_b": map[string]any{"c_d": 1}}
		_ = casing.Normalize(in)
		require.Equal(t, map[string]any{"a_b": map[string]any{"c_d": 1}}, in)
	})

	t.Run("camelCase spelling wins a collision", func(t *testing.T) {
		t.Parallel()

		in := map[string]any{"lastUpdated": "2024-01-01", "last_updated": "1999-01-01"}
		for range 100 {
			require.Equal(t, "2024-01-01", casing.Normalize(in)["lastUpdated"])
		}
	})

	t.Run("empty camelCase value falls back to snake_case", func(t *testing.T) {
		t.Parallel()

		for _, empty := range []any{"", nil} {
			got := casing.Normalize(map[string]any{"lastUpdated": empty, "last_updated": "1999-01-01"})
			require.Equal(t, "1999-01-01", got["lastUpdated"])
		}
	})

	t.Run("nil input", func(t *testing.T) {
		t.Parallel()
		require.Nil(t, casing.Normalize(nil))
	})
}
