package host_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/archivist/pkg/host"
)

func TestEnv_Validate(t *testing.T) {
	t.Parallel()

	env, _, _ := host.NewMemoryEnv("en-US", false)
	require.NoError(t, env.Validate())

	missing := env
	missing.Storage = nil
	require.ErrorIs(t, missing.Validate(), host.ErrIncompleteEnv)

	missing = env
	missing.Document = nil
	require.ErrorIs(t, missing.Validate(), host.ErrIncompleteEnv)

	missing = env
	missing.System = nil
	require.ErrorIs(t, missing.Validate(), host.ErrIncompleteEnv)
}

func TestMemoryStorage(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	s := host.NewMemoryStorage()

	_, err := s.Get(ctx, host.KeyTheme)
	require.ErrorIs(t, err, host.ErrNotFound)

	require.NoError(t, s.Set(ctx, host.KeyTheme, "dark"))
	v, err := s.Get(ctx, host.KeyTheme)
	require.NoError(t, err)
	require.Equal(t, "dark", v)

	snap := s.Snapshot()
	snap[host.KeyTheme] = "light"
	v, _ = s.Get(ctx, host.KeyTheme)
	require.Equal(t, "dark", v)
}

func TestRecorder(t *testing.T) {
	t.Parallel()

	r := host.NewRecorder()
	r.SetAttribute("lang", "en-US")
	r.SetAttribute("lang", "zh-CN")
	r.ToggleClass("dark", true)
	r.ToggleClass("compact", true)
	r.ToggleClass("compact", false)

	require.Equal(t, "zh-CN", r.Attribute("lang"))
	require.Equal(t, map[string]string{"lang": "zh-CN"}, r.Attributes())
	require.True(t, r.HasClass("dark"))
	require.False(t, r.HasClass("compact"))
	require.Equal(t, []string{"dark"}, r.Classes())
}

func TestSignals(t *testing.T) {
	t.Parallel()

	t.Run("notifies on change only", func(t *testing.T) {
		t.Parallel()

		s := host.NewSignals("en-US", false)
		var got []bool
		stop := s.WatchColorScheme(func(dark bool) { got = append(got, dark) })

		s.SetPrefersDark(false)
		s.SetPrefersDark(true)
		s.SetPrefersDark(true)
		s.SetPrefersDark(false)

		require.Equal(t, []bool{true, false}, got)
		require.False(t, s.PrefersDark())

		stop()
		stop()
		s.SetPrefersDark(true)
		require.Len(t, got, 2)
		require.Zero(t, s.Watchers())
	})

	t.Run("locale", func(t *testing.T) {
		t.Parallel()

		s := host.NewSignals("", false)
		require.Empty(t, s.PreferredLocale())
		s.SetPreferredLocale("ja")
		require.Equal(t, "ja", s.PreferredLocale())
	})

	t.Run("watcher may unsubscribe itself", func(t *testing.T) {
		t.Parallel()

		s := host.NewSignals("", false)
		var stop func()
		calls := 0
		stop = s.WatchColorScheme(func(bool) {
			calls++
			stop()
		})

		s.SetPrefersDark(true)
		s.SetPrefersDark(false)
		require.Equal(t, 1, calls)
	})
}

func TestCookieStorage(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	t.Run("reads request cookies", func(t *testing.T) {
		t.Parallel()

		r := httptest.NewRequest(http.MethodGet, "/", nil)
		r.AddCookie(&http.Cookie{Name: "pref_theme", Value: "dark"})
		w := httptest.NewRecorder()

		s := host.NewCookieStorage(w, r, host.WithCookiePrefix("pref_"))

		v, err := s.Get(ctx, host.KeyTheme)
		require.NoError(t, err)
		require.Equal(t, "dark", v)

		_, err = s.Get(ctx, host.KeyLanguage)
		require.ErrorIs(t, err, host.ErrNotFound)
	})

	t.Run("writes set-cookie and reads back", func(t *testing.T) {
		t.Parallel()

		r := httptest.NewRequest(http.MethodGet, "/", nil)
		r.AddCookie(&http.Cookie{Name: "language", Value: "en-US"})
		w := httptest.NewRecorder()

		s := host.NewCookieStorage(w, r, host.WithCookieMaxAge(60), host.WithCookieSecure(true))
		require.NoError(t, s.Set(ctx, host.KeyLanguage, "zh-CN"))

		v, err := s.Get(ctx, host.KeyLanguage)
		require.NoError(t, err)
		require.Equal(t, "zh-CN", v)

		cookies := w.Result().Cookies()
		require.Len(t, cookies, 1)
		require.Equal(t, "language", cookies[0].Name)
		require.Equal(t, "zh-CN", cookies[0].Value)
		require.Equal(t, 60, cookies[0].MaxAge)
		require.True(t, cookies[0].Secure)
		require.False(t, cookies[0].HttpOnly)
	})
}
