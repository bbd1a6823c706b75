package i18n

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/dmitrymomot/archivist/pkg/host"
	"github.com/dmitrymomot/archivist/pkg/locale"
	"github.com/dmitrymomot/archivist/pkg/logger"
)

// DefaultLocale is the safety-net locale merged under every other locale.
const DefaultLocale = "en-US"

// Status is the load state of a Store.
type Status string

const (
	StatusLoading Status = "loading"
	StatusLoaded  Status = "loaded"
)

// Store holds the selected locale and its merged translation tree.
// It is safe for concurrent use.
type Store struct {
	catalog    *locale.Catalog
	source     Source
	env        host.Env
	logger     *slog.Logger
	data       map[string]any
	defaultTag string
	storageKey string
	current    string
	status     Status
	ticket     uint64
	mu         sync.RWMutex
}

// NewStore resolves the initial locale and loads it.
//
// The initial locale is the persisted choice, else the system's preferred
// locale, else the default locale, matched against the catalog with
// locale.BestMatch. If nothing matches, the default locale is used.
func NewStore(ctx context.Context, catalog *locale.Catalog, source Source, env host.Env, opts ...StoreOption) (*Store, error) {
	if catalog == nil {
		return nil, ErrNilCatalog
	}
	if source == nil {
		return nil, ErrNilSource
	}
	if err := env.Validate(); err != nil {
		return nil, err
	}

	s := &Store{
		catalog:    catalog,
		source:     source,
		env:        env,
		logger:     logger.NewNope(),
		data:       map[string]any{},
		defaultTag: DefaultLocale,
		storageKey: host.KeyLanguage,
		status:     StatusLoading,
	}
	for _, opt := range opts {
		opt(s)
	}

	if !catalog.Has(s.defaultTag) {
		return nil, fmt.Errorf("%w: default %q", ErrInvalidLocale, s.defaultTag)
	}

	preferred, err := s.persisted(ctx)
	if err != nil {
		return nil, err
	}
	if preferred == "" {
		preferred = env.System.PreferredLocale()
	}
	if preferred == "" {
		preferred = s.defaultTag
	}

	current, ok := catalog.BestMatch(preferred)
	if !ok {
		current = s.defaultTag
	}
	s.current = current

	if err := s.SetLocale(ctx, current); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Store) persisted(ctx context.Context) (string, error) {
	v, err := s.env.Storage.Get(ctx, s.storageKey)
	if err != nil {
		if errors.Is(err, host.ErrNotFound) {
			return "", nil
		}
		return "", fmt.Errorf("i18n: reading persisted locale: %w", err)
	}
	return v, nil
}

// SetLocale selects tag, persists it, updates the document lang attribute
// and loads its data. Tags outside the catalog fail with ErrInvalidLocale
// without touching any state.
func (s *Store) SetLocale(ctx context.Context, tag string) error {
	if !s.catalog.Has(tag) {
		return fmt.Errorf("%w: %q", ErrInvalidLocale, tag)
	}

	if err := s.env.Storage.Set(ctx, s.storageKey, tag); err != nil {
		return fmt.Errorf("i18n: persisting locale: %w", err)
	}
	s.env.Document.SetAttribute("lang", tag)

	return s.load(ctx, s.begin(tag), tag)
}

// Load makes tag current without persisting it, then fetches tag and the
// default locale concurrently and installs their merge as the store data.
// If another load starts before this one finishes, this one's result is
// discarded and ErrSuperseded is returned.
func (s *Store) Load(ctx context.Context, tag string) error {
	if !s.catalog.Has(tag) {
		return fmt.Errorf("%w: %q", ErrInvalidLocale, tag)
	}
	return s.load(ctx, s.begin(tag), tag)
}

// Reload reloads the current locale.
func (s *Store) Reload(ctx context.Context) error {
	s.mu.Lock()
	tag := s.current
	ticket := s.beginLocked(tag)
	s.mu.Unlock()
	return s.load(ctx, ticket, tag)
}

// begin selects tag, clears the data and takes a new ticket in one critical
// section, so the newest ticket always belongs to the current locale.
func (s *Store) begin(tag string) uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.beginLocked(tag)
}

// beginLocked must be called with s.mu held.
func (s *Store) beginLocked(tag string) uint64 {
	s.ticket++
	s.current = tag
	s.data = map[string]any{}
	s.status = StatusLoading
	return s.ticket
}

func (s *Store) load(ctx context.Context, ticket uint64, tag string) error {
	base, target, err := s.fetch(ctx, tag)
	if err != nil {
		s.logger.ErrorContext(ctx, "failed to load locale data",
			slog.String("locale", tag),
			slog.String("error", err.Error()),
		)
		return err
	}

	merged := DeepMerge(base, target)

	s.mu.Lock()
	defer s.mu.Unlock()

	if ticket != s.ticket {
		s.logger.DebugContext(ctx, "discarding stale locale data", slog.String("locale", tag))
		return fmt.Errorf("%w: %q", ErrSuperseded, tag)
	}

	s.data = merged
	s.status = StatusLoaded
	s.logger.DebugContext(ctx, "locale data loaded",
		slog.String("locale", tag),
		slog.Int("keys", len(merged)),
	)
	return nil
}

func (s *Store) fetch(ctx context.Context, tag string) (base, target map[string]any, err error) {
	if tag == s.defaultTag {
		base, err = s.source.Load(ctx, tag)
		return base, nil, err
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		target, err = s.source.Load(gctx, tag)
		return err
	})
	g.Go(func() error {
		var err error
		base, err = s.source.Load(gctx, s.defaultTag)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}
	return base, target, nil
}

// Current returns the selected locale.
func (s *Store) Current() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current
}

// Default returns the fallback locale.
func (s *Store) Default() string {
	return s.defaultTag
}

// Status returns the load status.
func (s *Store) Status() Status {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.status
}

// Data returns a copy of the merged translation tree.
func (s *Store) Data() map[string]any {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneMap(s.data)
}

// Catalog returns the catalog the store resolves against.
func (s *Store) Catalog() *locale.Catalog {
	return s.catalog
}

// T resolves key against the current data and fills placeholders.
func (s *Store) T(key string, placeholders ...M) string {
	s.mu.RLock()
	text := Resolve(s.data, key)
	s.mu.RUnlock()
	return ReplacePlaceholders(text, placeholders...)
}

// Translator returns a Translator over a snapshot of the current data.
func (s *Store) Translator() *Translator {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return NewTranslator(s.current, cloneMap(s.data))
}
