// Package theme manages the light/dark/auto color theme preference.
//
// A Preference persists the chosen option through host.Storage, resolves
// "auto" against the system dark mode signal, and writes the effective
// theme to the host document:
//
//	data-theme="dark"
//	data-bs-theme="dark"
//	class "dark" toggled on
//
// While the option is auto, a change of the system signal re-applies the
// document hooks without touching storage.
//
// Usage:
//
//	pref, err := theme.New(ctx, env, theme.WithLogger(log))
//	if err != nil {
//		return err
//	}
//	defer pref.Close()
//
//	next, err := pref.Toggle(ctx)
package theme
