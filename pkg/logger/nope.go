package logger

import "log/slog"

// NewNope returns a logger that drops everything. Packages use it until a
// caller passes WithLogger.
func NewNope() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}
