package i18n_test

import (
	"context"
	"errors"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/archivist/pkg/host"
	"github.com/dmitrymomot/archivist/pkg/i18n"
	"github.com/dmitrymomot/archivist/pkg/locale"
)

var testCatalog = locale.MustCatalog(
	locale.Entry{Tag: "en-US", Name: "English"},
	locale.Entry{Tag: "zh-CN", Name: "简体中文"},
	locale.Entry{Tag: "ja", Name: "日本語"},
)

func testSource() i18n.Source {
	return i18n.NewFSSource(os.DirFS("testdata"))
}

func TestNewStore(t *testing.T) {
	t.Parallel()

	t.Run("nil arguments", func(t *testing.T) {
		t.Parallel()

		env, _, _ := host.NewMemoryEnv("", false)
		_, err := i18n.NewStore(context.Background(), nil, testSource(), env)
		require.ErrorIs(t, err, i18n.ErrNilCatalog)

		_, err = i18n.NewStore(context.Background(), testCatalog, nil, env)
		require.ErrorIs(t, err, i18n.ErrNilSource)

		_, err = i18n.NewStore(context.Background(), testCatalog, testSource(), host.Env{})
		require.ErrorIs(t, err, host.ErrIncompleteEnv)
	})

	t.Run("default locale must be in catalog", func(t *testing.T) {
		t.Parallel()

		env, _, _ := host.NewMemoryEnv("", false)
		_, err := i18n.NewStore(context.Background(), testCatalog, testSource(), env, i18n.WithDefaultLocale("de"))
		require.ErrorIs(t, err, i18n.ErrInvalidLocale)
	})

	t.Run("falls back to default", func(t *testing.T) {
		t.Parallel()

		env, rec, _ := host.NewMemoryEnv("", false)
		store, err := i18n.NewStore(context.Background(), testCatalog, testSource(), env)
		require.NoError(t, err)

		require.Equal(t, "en-US", store.Current())
		require.Equal(t, "en-US", store.Default())
		require.Equal(t, i18n.StatusLoaded, store.Status())
		require.Equal(t, "en-US", rec.Attribute("lang"))
		require.Equal(t, "Archive Browser", store.T("site.title"))
	})

	t.Run("system locale matched by primary", func(t *testing.T) {
		t.Parallel()

		env, _, _ := host.NewMemoryEnv("zh", false)
		store, err := i18n.NewStore(context.Background(), testCatalog, testSource(), env)
		require.NoError(t, err)
		require.Equal(t, "zh-CN", store.Current())
	})

	t.Run("unknown system locale uses default", func(t *testing.T) {
		t.Parallel()

		env, _, _ := host.NewMemoryEnv("fr-FR", false)
		store, err := i18n.NewStore(context.Background(), testCatalog, testSource(), env)
		require.NoError(t, err)
		require.Equal(t, "en-US", store.Current())
	})

	t.Run("persisted choice wins", func(t *testing.T) {
		t.Parallel()

		env, _, _ := host.NewMemoryEnv("zh-CN", false)
		require.NoError(t, env.Storage.Set(context.Background(), host.KeyLanguage, "ja"))

		store, err := i18n.NewStore(context.Background(), testCatalog, testSource(), env)
		require.NoError(t, err)
		require.Equal(t, "ja", store.Current())
		require.Equal(t, "ホーム", store.T("nav.home"))
		require.Equal(t, "Settings", store.T("nav.settings"))
	})

	t.Run("custom storage key", func(t *testing.T) {
		t.Parallel()

		env, _, _ := host.NewMemoryEnv("", false)
		_, err := i18n.NewStore(context.Background(), testCatalog, testSource(), env, i18n.WithStorageKey("lang"))
		require.NoError(t, err)

		v, err := env.Storage.Get(context.Background(), "lang")
		require.NoError(t, err)
		require.Equal(t, "en-US", v)
	})
}

func TestStore_SetLocale(t *testing.T) {
	t.Parallel()

	t.Run("merges over default", func(t *testing.T) {
		t.Parallel()

		env, rec, _ := host.NewMemoryEnv("", false)
		store, err := i18n.NewStore(context.Background(), testCatalog, testSource(), env)
		require.NoError(t, err)

		require.NoError(t, store.SetLocale(context.Background(), "zh-CN"))
		require.Equal(t, "zh-CN", store.Current())
		require.Equal(t, "zh-CN", rec.Attribute("lang"))
		require.Equal(t, "首页", store.T("nav.home"))
		require.Equal(t, "Settings", store.T("nav.settings"))
		require.Equal(t, "Follow system", store.T("theme.auto"))
		require.Equal(t, "12 items", store.T("archive.items", i18n.M{"count": 12}))
		require.Equal(t, "missing.key", store.T("missing.key"))

		v, err := env.Storage.Get(context.Background(), host.KeyLanguage)
		require.NoError(t, err)
		require.Equal(t, "zh-CN", v)
	})

	t.Run("invalid tag leaves state untouched", func(t *testing.T) {
		t.Parallel()

		env, rec, _ := host.NewMemoryEnv("", false)
		store, err := i18n.NewStore(context.Background(), testCatalog, testSource(), env)
		require.NoError(t, err)
		before := store.Data()

		err = store.SetLocale(context.Background(), "fr-FR")
		require.ErrorIs(t, err, i18n.ErrInvalidLocale)
		require.Equal(t, "en-US", store.Current())
		require.Equal(t, i18n.StatusLoaded, store.Status())
		require.Equal(t, before, store.Data())
		require.Equal(t, "en-US", rec.Attribute("lang"))

		v, err := env.Storage.Get(context.Background(), host.KeyLanguage)
		require.NoError(t, err)
		require.Equal(t, "en-US", v)
	})

	t.Run("load failure leaves loading status", func(t *testing.T) {
		t.Parallel()

		catalog := locale.MustCatalog(
			locale.Entry{Tag: "en-US", Name: "English"},
			locale.Entry{Tag: "de", Name: "Deutsch"},
		)
		env, _, _ := host.NewMemoryEnv("", false)
		store, err := i18n.NewStore(context.Background(), catalog, testSource(), env)
		require.NoError(t, err)

		err = store.SetLocale(context.Background(), "de")
		require.ErrorIs(t, err, i18n.ErrResourceNotFound)
		require.Equal(t, "de", store.Current())
		require.Equal(t, i18n.StatusLoading, store.Status())
		require.Empty(t, store.Data())
		require.Equal(t, "nav.home", store.T("nav.home"))
	})
}

func TestStore_StaleLoadIsDiscarded(t *testing.T) {
	t.Parallel()

	fs := testSource()
	started := make(chan struct{})
	release := make(chan struct{})
	var once sync.Once

	src := i18n.SourceFunc(func(ctx context.Context, tag string) (map[string]any, error) {
		if tag == "zh-CN" {
			once.Do(func() { close(started) })
			select {
			case <-release:
			case <-ctx.Done():
				return nil, ctx.Err()
			}
		}
		return fs.Load(ctx, tag)
	})

	env, _, _ := host.NewMemoryEnv("", false)
	store, err := i18n.NewStore(context.Background(), testCatalog, src, env)
	require.NoError(t, err)

	slow := make(chan error, 1)
	go func() {
		slow <- store.Load(context.Background(), "zh-CN")
	}()

	select {
	case <-started:
	case <-time.After(time.Second):
		t.Fatal("slow load did not start")
	}

	require.NoError(t, store.Load(context.Background(), "ja"))
	close(release)

	select {
	case err := <-slow:
		require.ErrorIs(t, err, i18n.ErrSuperseded)
	case <-time.After(time.Second):
		t.Fatal("slow load did not finish")
	}

	require.Equal(t, i18n.StatusLoaded, store.Status())
	require.Equal(t, "ja", store.Current())
	require.Equal(t, "ホーム", store.T("nav.home"))
}

func TestStore_ConcurrentSetLocale(t *testing.T) {
	t.Parallel()

	src := i18n.SourceFunc(func(_ context.Context, tag string) (map[string]any, error) {
		return map[string]any{"who": tag}, nil
	})

	for range 200 {
		env, _, _ := host.NewMemoryEnv("", false)
		store, err := i18n.NewStore(context.Background(), testCatalog, src, env)
		require.NoError(t, err)

		var wg sync.WaitGroup
		for _, tag := range []string{"zh-CN", "ja"} {
			wg.Go(func() {
				err := store.SetLocale(context.Background(), tag)
				if err != nil {
					assert.ErrorIs(t, err, i18n.ErrSuperseded)
				}
			})
		}
		wg.Go(func() {
			err := store.Reload(context.Background())
			if err != nil {
				assert.ErrorIs(t, err, i18n.ErrSuperseded)
			}
		})
		wg.Wait()

		require.Equal(t, i18n.StatusLoaded, store.Status())
		require.Equal(t, store.Current(), store.Data()["who"])
	}
}

func TestStore_Reload(t *testing.T) {
	t.Parallel()

	var mu sync.Mutex
	title := "First"
	src := i18n.SourceFunc(func(_ context.Context, tag string) (map[string]any, error) {
		mu.Lock()
		defer mu.Unlock()
		return map[string]any{"site": map[string]any{"title": title}}, nil
	})

	env, _, _ := host.NewMemoryEnv("", false)
	store, err := i18n.NewStore(context.Background(), testCatalog, src, env)
	require.NoError(t, err)
	require.Equal(t, "First", store.T("site.title"))

	mu.Lock()
	title = "Second"
	mu.Unlock()

	require.NoError(t, store.Reload(context.Background()))
	require.Equal(t, "Second", store.T("site.title"))
}

func TestStore_Translator(t *testing.T) {
	t.Parallel()

	env, _, _ := host.NewMemoryEnv("zh-CN", false)
	store, err := i18n.NewStore(context.Background(), testCatalog, testSource(), env)
	require.NoError(t, err)

	tr := store.Translator()
	require.NoError(t, store.SetLocale(context.Background(), "ja"))

	require.Equal(t, "zh-CN", tr.Language())
	require.Equal(t, "首页", tr.T("nav.home"))
	require.Equal(t, "ホーム", store.T("nav.home"))
	require.Same(t, testCatalog, store.Catalog())
}

func TestStore_PersistFailure(t *testing.T) {
	t.Parallel()

	boom := errors.New("storage offline")
	env, _, _ := host.NewMemoryEnv("", false)
	env.Storage = failingStorage{err: boom}

	_, err := i18n.NewStore(context.Background(), testCatalog, testSource(), env)
	require.ErrorIs(t, err, boom)
}

type failingStorage struct{ err error }

func (f failingStorage) Get(context.Context, string) (string, error) { return "", host.ErrNotFound }
func (f failingStorage) Set(context.Context, string, string) error   { return f.err }
