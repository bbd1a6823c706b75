package host

import (
	"context"
	"fmt"
)

// Storage keys shared by the preference components.
const (
	KeyLanguage = "language"
	KeyTheme    = "theme"
)

// Storage persists string preferences. Writes are synchronous.
type Storage interface {
	// Get returns ErrNotFound when key has no value.
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
}

// Document receives presentation hooks. Values are written, never read back.
type Document interface {
	SetAttribute(name, value string)
	ToggleClass(name string, on bool)
}

// System exposes OS-level user preferences.
type System interface {
	// PreferredLocale returns the OS or browser locale tag, or "".
	PreferredLocale() string

	// PrefersDark reports the current dark color scheme signal.
	PrefersDark() bool

	// WatchColorScheme registers fn to be called whenever the dark mode
	// signal changes. The returned function removes the subscription.
	WatchColorScheme(fn func(dark bool)) (stop func())
}

// Env bundles the three host facets handed to preference components.
type Env struct {
	Storage  Storage
	Document Document
	System   System
}

// Validate reports ErrIncompleteEnv if any facet is nil.
func (e Env) Validate() error {
	switch {
	case e.Storage == nil:
		return fmt.Errorf("%w: storage is nil", ErrIncompleteEnv)
	case e.Document == nil:
		return fmt.Errorf("%w: document is nil", ErrIncompleteEnv)
	case e.System == nil:
		return fmt.Errorf("%w: system is nil", ErrIncompleteEnv)
	}
	return nil
}

// NewMemoryEnv returns an Env backed entirely by in-memory implementations.
// Handy for tests and command line tools.
func NewMemoryEnv(preferredLocale string, prefersDark bool) (Env, *Recorder, *Signals) {
	doc := NewRecorder()
	sys := NewSignals(preferredLocale, prefersDark)
	return Env{
		Storage:  NewMemoryStorage(),
		Document: doc,
		System:   sys,
	}, doc, sys
}
