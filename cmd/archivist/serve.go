package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/dmitrymomot/archivist/internal/server"
	"github.com/dmitrymomot/archivist/pkg/i18n"
	"github.com/dmitrymomot/archivist/pkg/redis"
)

func newServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the site and preference API",
		Args:  cobra.NoArgs,
		RunE:  runServe,
	}

	flags := cmd.Flags()
	flags.String("addr", "", "listen address (default :8080)")
	flags.Bool("watch", false, "reload locale resources when files in the locales dir change")
	flags.String("redis-url", "", "store preferences in Redis instead of cookies")
	flags.Bool("secure-cookies", false, "mark preference cookies Secure")
	return cmd
}

func runServe(cmd *cobra.Command, _ []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	site, err := a.loadSite()
	if err != nil {
		return err
	}
	for _, p := range site.Problems() {
		a.logger.Warn("record has errors", slog.String("kind", p.Kind), slog.String("id", p.ID))
	}

	opts := []server.Option{
		server.WithLogger(a.logger),
		server.WithDefaultLocale(a.cfg.Locales.Default),
		server.WithSecureCookies(a.cfg.Server.SecureCookies),
		server.WithShutdownTimeout(a.cfg.Server.ShutdownTimeout),
	}

	if url := a.cfg.Server.RedisURL; url != "" {
		client, err := redis.Open(ctx, url)
		if err != nil {
			return err
		}
		opts = append(opts,
			server.WithRedis(client),
			server.WithShutdownHook(func(context.Context) error { return client.Close() }),
		)
	}

	if a.cfg.Server.Watch {
		w, err := i18n.Watch(a.cfg.Locales.Dir, a.locales,
			i18n.WithWatchLogger(a.logger),
			i18n.OnChange(func(tag string) {
				a.logger.Info("locale resource changed", slog.String("locale", tag))
			}),
		)
		if err != nil {
			return err
		}
		opts = append(opts, server.WithShutdownHook(func(context.Context) error { return w.Close() }))
	}

	srv, err := server.New(site, a.catalog, a.locales, opts...)
	if err != nil {
		return err
	}
	return srv.Run(ctx, a.cfg.Server.Addr)
}
