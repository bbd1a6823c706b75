package logger

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
)

// Format selects the handler encoding.
type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
)

type config struct {
	writer     io.Writer
	format     Format
	extractors []ContextExtractor
	level      slog.Level
}

// Option configures New and NewWithSentry.
type Option func(*config)

// WithLevel sets the minimum level. Default: info.
func WithLevel(level slog.Level) Option {
	return func(c *config) {
		c.level = level
	}
}

// WithFormat sets the output encoding. Default: text.
func WithFormat(format Format) Option {
	return func(c *config) {
		if format == FormatJSON || format == FormatText {
			c.format = format
		}
	}
}

// WithWriter sets the destination. Default: os.Stderr.
func WithWriter(w io.Writer) Option {
	return func(c *config) {
		if w != nil {
			c.writer = w
		}
	}
}

// WithExtractors adds context extractors.
func WithExtractors(extractors ...ContextExtractor) Option {
	return func(c *config) {
		c.extractors = append(c.extractors, extractors...)
	}
}

func newConfig(opts []Option) *config {
	c := &config{
		writer: os.Stderr,
		format: FormatText,
		level:  slog.LevelInfo,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *config) handler() slog.Handler {
	hopts := &slog.HandlerOptions{Level: c.level}
	if c.format == FormatJSON {
		return slog.NewJSONHandler(c.writer, hopts)
	}
	return slog.NewTextHandler(c.writer, hopts)
}

// New creates a logger.
func New(opts ...Option) *slog.Logger {
	c := newConfig(opts)
	return slog.New(NewLogHandlerDecorator(c.handler(), c.extractors...))
}

// ParseLevel maps "debug", "info", "warn" and "error" (any case) to a level.
func ParseLevel(s string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.TrimSpace(s))); err != nil {
		return slog.LevelInfo, fmt.Errorf("logger: unknown level %q", s)
	}
	return level, nil
}
