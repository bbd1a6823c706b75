package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/viper"

	"github.com/dmitrymomot/archivist/internal/config"
	"github.com/dmitrymomot/archivist/internal/server"
	"github.com/dmitrymomot/archivist/pkg/i18n"
	"github.com/dmitrymomot/archivist/pkg/locale"
	"github.com/dmitrymomot/archivist/pkg/logger"
	"github.com/dmitrymomot/archivist/pkg/siteconfig"
)

// app is what every command needs: configuration, a logger, the catalog and
// a cached locale source.
type app struct {
	cfg     config.Config
	logger  *slog.Logger
	catalog *locale.Catalog
	locales *i18n.CachedSource
}

func newApp() (*app, error) {
	cfg, err := config.Load(viper.GetViper())
	if err != nil {
		return nil, err
	}

	log := newLogger(cfg.Log)

	data, err := os.ReadFile(cfg.Locales.Catalog)
	if err != nil {
		return nil, fmt.Errorf("reading locale catalog: %w", err)
	}
	catalog, err := locale.ParseCatalog(data)
	if err != nil {
		return nil, err
	}
	if !catalog.Has(cfg.Locales.Default) {
		return nil, fmt.Errorf("%w: default %q is not in %s", i18n.ErrInvalidLocale, cfg.Locales.Default, cfg.Locales.Catalog)
	}

	source, err := newSource(cfg.Locales)
	if err != nil {
		return nil, err
	}

	return &app{
		cfg:     cfg,
		logger:  log,
		catalog: catalog,
		locales: i18n.NewCachedSource(source),
	}, nil
}

func newLogger(cfg config.LogConfig) *slog.Logger {
	level, _ := logger.ParseLevel(cfg.Level)
	opts := []logger.Option{
		logger.WithLevel(level),
		logger.WithFormat(logger.Format(cfg.Format)),
		logger.WithExtractors(server.LogExtractors()...),
	}
	if cfg.Sentry.DSN != "" {
		sentryCfg := cfg.Sentry
		sentryCfg.MinLevel = level
		return logger.NewWithSentry(sentryCfg, opts...)
	}
	return logger.New(opts...)
}

func newSource(cfg config.LocalesConfig) (i18n.Source, error) {
	if cfg.S3.Bucket != "" {
		return i18n.NewS3Source(cfg.S3)
	}
	return i18n.NewFSSource(os.DirFS(cfg.Dir)), nil
}

// loadSite reads the site file relative to its own directory so that
// repository file references resolve.
func (a *app) loadSite() (*siteconfig.Site, error) {
	dir, name := filepath.Split(a.cfg.Site)
	if dir == "" {
		dir = "."
	}
	return siteconfig.Load(os.DirFS(dir), filepath.ToSlash(name))
}
