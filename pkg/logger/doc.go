// Package logger builds the slog loggers used across archivist.
//
// Loggers write text or JSON to a writer (stderr by default) and can be
// decorated with context extractors that add request-scoped attributes on
// every call:
//
//	visitor := func(ctx context.Context) (slog.Attr, bool) {
//		if id, ok := ctx.Value(visitorKey{}).(string); ok {
//			return slog.String("visitor", id), true
//		}
//		return slog.Attr{}, false
//	}
//
//	log := logger.New(
//		logger.WithLevel(slog.LevelDebug),
//		logger.WithFormat(logger.FormatJSON),
//		logger.WithExtractors(visitor),
//	)
//
// NewWithSentry additionally forwards warnings and errors to Sentry. With an
// empty DSN it behaves exactly like New.
//
// Components that accept a logger default to NewNope, which discards
// everything.
package logger
