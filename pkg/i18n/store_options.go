package i18n

import "log/slog"

// StoreOption configures a Store.
type StoreOption func(*Store)

// WithDefaultLocale sets the locale merged under every load.
// It must be present in the catalog.
// Default: "en-US".
func WithDefaultLocale(tag string) StoreOption {
	return func(s *Store) {
		if tag != "" {
			s.defaultTag = tag
		}
	}
}

// WithLogger sets the store logger.
func WithLogger(l *slog.Logger) StoreOption {
	return func(s *Store) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithStorageKey sets the key the selected locale is persisted under.
// Default: "language".
func WithStorageKey(key string) StoreOption {
	return func(s *Store) {
		if key != "" {
			s.storageKey = key
		}
	}
}
