// Package host abstracts the environment that preference components run in.
//
// In a browser the environment is localStorage, matchMedia and the root
// document element. Here it is split into three small interfaces so that the
// same locale and theme logic can run in tests, in a CLI, or per HTTP request:
//
//   - [Storage] persists string preferences ("language", "theme").
//   - [Document] receives presentation hooks (lang attribute, data-theme, classes).
//   - [System] exposes OS-level signals: preferred locale and dark mode,
//     including change notifications.
//
// Storage implementations:
//
//	host.NewMemoryStorage()                       // process-local map
//	host.NewRedisStorage(client, host.WithKeyPrefix("prefs:"+visitorID))
//	host.NewCookieStorage(w, r, host.WithCookieMaxAge(365*24*3600))
//
// [Recorder] is a Document that keeps what was written so callers can read it
// back, and [Signals] is a System whose values are set programmatically.
package host
