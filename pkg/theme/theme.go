package theme

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"sync"

	"github.com/dmitrymomot/archivist/pkg/host"
	"github.com/dmitrymomot/archivist/pkg/logger"
)

// Mode is a theme option.
type Mode string

const (
	Light Mode = "light"
	Dark  Mode = "dark"
	Auto  Mode = "auto"
)

// Available lists the options in toggle order.
var Available = []Mode{Light, Dark, Auto}

// Document hooks written on every apply.
const (
	AttrTheme          = "data-theme"
	AttrBootstrapTheme = "data-bs-theme"
	ClassDark          = "dark"
)

// ParseMode returns the Mode named by s.
func ParseMode(s string) (Mode, error) {
	m := Mode(s)
	if !m.Valid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidTheme, s)
	}
	return m, nil
}

// Valid reports whether m is one of the available options.
func (m Mode) Valid() bool {
	return slices.Contains(Available, m)
}

// Next returns the option following m in toggle order.
func (m Mode) Next() Mode {
	i := slices.Index(Available, m)
	return Available[(i+1)%len(Available)]
}

func (m Mode) String() string {
	return string(m)
}

// Preference is the theme state of one host. It is safe for concurrent use.
type Preference struct {
	env        host.Env
	logger     *slog.Logger
	stop       func()
	storageKey string
	option     Mode
	effective  Mode
	mu         sync.Mutex
	osDark     bool
}

// New restores the persisted option, applies it, and subscribes to system
// dark mode changes. An unknown persisted value falls back to auto.
func New(ctx context.Context, env host.Env, opts ...Option) (*Preference, error) {
	if err := env.Validate(); err != nil {
		return nil, err
	}

	p := &Preference{
		env:        env,
		logger:     logger.NewNope(),
		storageKey: host.KeyTheme,
		option:     Auto,
	}
	for _, opt := range opts {
		opt(p)
	}

	option := Auto
	stored, err := env.Storage.Get(ctx, p.storageKey)
	switch {
	case errors.Is(err, host.ErrNotFound):
	case err != nil:
		return nil, fmt.Errorf("theme: reading persisted theme: %w", err)
	default:
		if m, perr := ParseMode(stored); perr == nil {
			option = m
		} else {
			p.logger.WarnContext(ctx, "ignoring unknown persisted theme",
				slog.String("theme", stored),
			)
		}
	}

	// Subscribe before the first read so a change in between is not lost.
	p.stop = env.System.WatchColorScheme(p.handleSchemeChange)
	p.mu.Lock()
	p.osDark = env.System.PrefersDark()
	p.mu.Unlock()

	if err := p.Set(ctx, option); err != nil {
		p.Close()
		return nil, err
	}
	return p, nil
}

// Set selects option, persists it and applies the effective theme.
func (p *Preference) Set(ctx context.Context, option Mode) error {
	if !option.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidTheme, option)
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if err := p.env.Storage.Set(ctx, p.storageKey, string(option)); err != nil {
		return fmt.Errorf("theme: persisting theme: %w", err)
	}
	p.option = option
	p.apply()

	p.logger.DebugContext(ctx, "theme applied",
		slog.String("option", string(p.option)),
		slog.String("effective", string(p.effective)),
	)
	return nil
}

// Toggle advances to the next option (light, dark, auto, light, ...) and
// returns it.
func (p *Preference) Toggle(ctx context.Context) (Mode, error) {
	p.mu.Lock()
	next := p.option.Next()
	p.mu.Unlock()

	if err := p.Set(ctx, next); err != nil {
		return "", err
	}
	return next, nil
}

// Option returns the selected option.
func (p *Preference) Option() Mode {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.option
}

// Effective returns the theme actually shown: light or dark.
func (p *Preference) Effective() Mode {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.effective
}

// PrefersDark returns the last system dark mode signal seen.
func (p *Preference) PrefersDark() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.osDark
}

// Close unsubscribes from system changes. It is safe to call more than once.
func (p *Preference) Close() {
	if p.stop != nil {
		p.stop()
	}
}

func (p *Preference) handleSchemeChange(dark bool) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.osDark = dark
	if p.option == Auto {
		p.apply()
	}
}

// apply must be called with p.mu held.
func (p *Preference) apply() {
	p.effective = p.option
	if p.option == Auto {
		p.effective = Light
		if p.osDark {
			p.effective = Dark
		}
	}

	doc := p.env.Document
	doc.SetAttribute(AttrTheme, string(p.effective))
	doc.SetAttribute(AttrBootstrapTheme, string(p.effective))
	doc.ToggleClass(ClassDark, p.effective == Dark)
}
