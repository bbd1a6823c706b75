package theme

import "log/slog"

// Option configures a Preference.
type Option func(*Preference)

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(p *Preference) {
		if l != nil {
			p.logger = l
		}
	}
}

// WithStorageKey sets the key the option is persisted under.
// Default: "theme".
func WithStorageKey(key string) Option {
	return func(p *Preference) {
		if key != "" {
			p.storageKey = key
		}
	}
}
