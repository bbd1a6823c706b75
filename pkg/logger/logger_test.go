package logger_test

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/archivist/pkg/logger"
)

type visitorKey struct{}

func visitorExtractor(ctx context.Context) (slog.Attr, bool) {
	if id, ok := ctx.Value(visitorKey{}).(string); ok && id != "" {
		return slog.String("visitor", id), true
	}
	return slog.Attr{}, false
}

func TestNew(t *testing.T) {
	t.Parallel()

	t.Run("json with extractor", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		log := logger.New(
			logger.WithWriter(&buf),
			logger.WithFormat(logger.FormatJSON),
			logger.WithExtractors(visitorExtractor, nil),
		)

		ctx := context.WithValue(context.Background(), visitorKey{}, "v-1")
		log.InfoContext(ctx, "locale changed", slog.String("locale", "zh-CN"))

		var entry map[string]any
		require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
		assert.Equal(t, "locale changed", entry["msg"])
		assert.Equal(t, "zh-CN", entry["locale"])
		assert.Equal(t, "v-1", entry["visitor"])
	})

	t.Run("level filter", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		log := logger.New(logger.WithWriter(&buf), logger.WithLevel(slog.LevelWarn))
		log.Info("hidden")
		assert.Empty(t, buf.String())

		log.Warn("shown")
		assert.Contains(t, buf.String(), "msg=shown")
	})

	t.Run("extractor survives With", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		log := logger.New(logger.WithWriter(&buf), logger.WithExtractors(visitorExtractor)).
			With(slog.String("component", "theme")).
			WithGroup("g")

		ctx := context.WithValue(context.Background(), visitorKey{}, "v-2")
		log.InfoContext(ctx, "applied")
		assert.Contains(t, buf.String(), "component=theme")
		assert.Contains(t, buf.String(), "v-2")
	})
}

func TestNewWithSentry_NoDSN(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	log := logger.NewWithSentry(logger.SentryConfig{}, logger.WithWriter(&buf))
	log.Error("boom")
	assert.Contains(t, buf.String(), "msg=boom")
}

func TestNewNope(t *testing.T) {
	t.Parallel()

	log := logger.NewNope()
	require.NotNil(t, log)
	log.Error("discarded")
}

func TestParseLevel(t *testing.T) {
	t.Parallel()

	for in, want := range map[string]slog.Level{
		"debug": slog.LevelDebug,
		"INFO":  slog.LevelInfo,
		"warn":  slog.LevelWarn,
		"error": slog.LevelError,
	} {
		got, err := logger.ParseLevel(in)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}

	_, err := logger.ParseLevel("loud")
	require.Error(t, err)
}
