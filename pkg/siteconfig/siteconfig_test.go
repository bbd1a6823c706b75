package siteconfig_test

import (
	"os"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/archivist/pkg/siteconfig"
)

func env(values map[string]string) func(string) string {
	return func(key string) string { return values[key] }
}

func TestLoad(t *testing.T) {
	t.Parallel()

	site, err := siteconfig.Load(os.DirFS("testdata"), "site.yml",
		siteconfig.WithGetenv(env(map[string]string{
			"GITHUB_USERNAME":   "octo",
			"GITHUB_REPOSITORY": "archive",
		})),
	)
	require.NoError(t, err)

	assert.Equal(t, "Family Archive", site.Title)
	assert.Equal(t, "The Family", site.Author)
	assert.Equal(t, []string{"letters", "photos"}, site.Keywords)
	assert.Equal(t, "https://octo.github.io/archive", site.URL)

	repos := site.Index.Repositories()
	require.Len(t, repos, 2)
	assert.Equal(t, "papers", repos[0].Slug)
	assert.Equal(t, "https://example.com/papers", repos[0].URL)
	assert.Equal(t, "2024-01-02T10:00:00Z", repos[0].LastUpdated)
	assert.Equal(t, "photos", repos[1].Slug)
	assert.Equal(t, "2024-05-06", repos[1].LastUpdated)

	letters, ok := site.Index.FindArchive("papers", "letters")
	require.True(t, ok)
	assert.Equal(t, []string{"correspondence", "family"}, letters.Keywords)
	assert.Equal(t, []string{"Letters", "Grandparents"}, letters.Categories)

	summer, ok := site.Index.FindArchive("photos", "Summer%201999")
	require.True(t, ok)
	assert.Equal(t, "img/summer.png", summer.Avatar)

	beach, ok := site.Index.FindItem("photos", "Summer%201999", "beach.jpg")
	require.True(t, ok)
	assert.Equal(t, "unknown", beach.Filetype)

	problems := site.Problems()
	require.Len(t, problems, 1)
	assert.Equal(t, siteconfig.Problem{Kind: "item", ID: "papers/letters/broken", Name: "broken"}, problems[0])
}

func TestLoad_Errors(t *testing.T) {
	t.Parallel()

	t.Run("missing site file", func(t *testing.T) {
		t.Parallel()

		_, err := siteconfig.Load(os.DirFS("testdata"), "nope.yml")
		require.ErrorIs(t, err, siteconfig.ErrReadFailed)
	})

	t.Run("missing repository file", func(t *testing.T) {
		t.Parallel()

		_, err := siteconfig.Load(os.DirFS("testdata"), "missing.yml")
		require.ErrorIs(t, err, siteconfig.ErrReadFailed)
	})

	t.Run("malformed yaml", func(t *testing.T) {
		t.Parallel()

		fsys := fstest.MapFS{"site.yml": {Data: []byte("title: [oops")}}
		_, err := siteconfig.Load(fsys, "site.yml")
		require.ErrorIs(t, err, siteconfig.ErrInvalidConfig)
	})

	t.Run("unsupported repository entry", func(t *testing.T) {
		t.Parallel()

		fsys := fstest.MapFS{"site.yml": {Data: []byte("repositories:\n  - 42\n")}}
		_, err := siteconfig.Load(fsys, "site.yml")
		require.ErrorIs(t, err, siteconfig.ErrInvalidConfig)
	})

	t.Run("duplicate repository", func(t *testing.T) {
		t.Parallel()

		fsys := fstest.MapFS{"site.yml": {Data: []byte("repositories:\n  - name: a\n  - name: a\n")}}
		_, err := siteconfig.Load(fsys, "site.yml")
		require.ErrorIs(t, err, siteconfig.ErrInvalidConfig)
	})
}

func TestLoad_Keywords(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		yaml string
		want []string
	}{
		{"list", "keywords: [archive, letters]\n", []string{"archive", "letters"}},
		{"comma separated string", "keywords: archive, letters\n", []string{"archive", "letters"}},
		{"single word", "keywords: archive\n", []string{"archive"}},
		{"missing", "title: x\n", []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			fsys := fstest.MapFS{"site.yml": {Data: []byte(tt.yaml)}}
			site, err := siteconfig.Load(fsys, "site.yml")
			require.NoError(t, err)
			assert.Equal(t, tt.want, site.Keywords)
		})
	}

	t.Run("nested values are rejected", func(t *testing.T) {
		t.Parallel()

		fsys := fstest.MapFS{"site.yml": {Data: []byte("keywords:\n  a: b\n")}}
		_, err := siteconfig.Load(fsys, "site.yml")
		require.ErrorIs(t, err, siteconfig.ErrInvalidConfig)
	})
}

func TestExpandURL(t *testing.T) {
	t.Parallel()

	full := env(map[string]string{"GITHUB_USERNAME": "octo", "GITHUB_REPOSITORY": "archive"})
	partial := env(map[string]string{"GITHUB_USERNAME": "octo"})

	assert.Equal(t, "https://octo.github.io/archive", siteconfig.ExpandURL("auto", full))
	assert.Equal(t, "/", siteconfig.ExpandURL("auto", partial))
	assert.Equal(t, "https://example.com", siteconfig.ExpandURL("https://example.com", full))
	assert.Equal(t, "", siteconfig.ExpandURL("", full))
}
