package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	goredis "github.com/redis/go-redis/v9"

	"github.com/dmitrymomot/archivist/pkg/health"
	"github.com/dmitrymomot/archivist/pkg/i18n"
	"github.com/dmitrymomot/archivist/pkg/locale"
	"github.com/dmitrymomot/archivist/pkg/logger"
	"github.com/dmitrymomot/archivist/pkg/redis"
	"github.com/dmitrymomot/archivist/pkg/siteconfig"
)

// Server serves the site and preference API.
type Server struct {
	site            *siteconfig.Site
	catalog         *locale.Catalog
	locales         i18n.Source
	redis           goredis.UniversalClient
	logger          *slog.Logger
	router          chi.Router
	defaultLocale   string
	shutdownHooks   []func(context.Context) error
	shutdownTimeout time.Duration
	secureCookies   bool
}

// Option configures a Server.
type Option func(*Server)

// WithLogger sets the server logger.
func WithLogger(l *slog.Logger) Option {
	return func(s *Server) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithRedis stores preferences in Redis, keyed by visitor, instead of cookies.
func WithRedis(client goredis.UniversalClient) Option {
	return func(s *Server) {
		s.redis = client
	}
}

// WithDefaultLocale sets the fallback locale. Default: i18n.DefaultLocale.
func WithDefaultLocale(tag string) Option {
	return func(s *Server) {
		if tag != "" {
			s.defaultLocale = tag
		}
	}
}

// WithSecureCookies marks every cookie the server sets as Secure.
func WithSecureCookies(secure bool) Option {
	return func(s *Server) {
		s.secureCookies = secure
	}
}

// WithShutdownTimeout bounds graceful shutdown. Default: 10s.
func WithShutdownTimeout(d time.Duration) Option {
	return func(s *Server) {
		if d > 0 {
			s.shutdownTimeout = d
		}
	}
}

// WithShutdownHook registers fn to run after the HTTP server stops.
func WithShutdownHook(fn func(context.Context) error) Option {
	return func(s *Server) {
		if fn != nil {
			s.shutdownHooks = append(s.shutdownHooks, fn)
		}
	}
}

// New builds a Server. locales is usually an *i18n.CachedSource.
func New(site *siteconfig.Site, catalog *locale.Catalog, locales i18n.Source, opts ...Option) (*Server, error) {
	if site == nil || site.Index == nil {
		return nil, errors.New("server: site is required")
	}
	if catalog == nil {
		return nil, i18n.ErrNilCatalog
	}
	if locales == nil {
		return nil, i18n.ErrNilSource
	}

	s := &Server{
		site:            site,
		catalog:         catalog,
		locales:         locales,
		logger:          logger.NewNope(),
		defaultLocale:   i18n.DefaultLocale,
		shutdownTimeout: 10 * time.Second,
	}
	for _, opt := range opts {
		opt(s)
	}

	if !catalog.Has(s.defaultLocale) {
		return nil, fmt.Errorf("%w: default %q", i18n.ErrInvalidLocale, s.defaultLocale)
	}

	s.router = s.routes()
	return s, nil
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(requestID, s.recoverer, s.accessLog)

	r.NotFound(s.handle(func(http.ResponseWriter, *http.Request) error {
		return errNotFound("route not found")
	}))
	r.MethodNotAllowed(s.handle(func(http.ResponseWriter, *http.Request) error {
		return newHTTPError(http.StatusMethodNotAllowed, "method_not_allowed", "method not allowed", nil)
	}))

	r.Get("/health/live", health.LivenessHandler())
	r.Get("/health/ready", health.ReadinessHandler(s.checks(), health.WithLogger(s.logger)))

	r.Route("/api", func(r chi.Router) {
		r.Get("/site", s.handle(s.getSite))
		r.Get("/repositories/{repo}", s.handle(s.getRepository))
		r.Get("/repositories/{repo}/archives/{archive}", s.handle(s.getArchive))
		r.Get("/locales", s.handle(s.listLocales))
		r.Get("/locales/{tag}", s.handle(s.getLocale))

		r.Route("/preferences", func(r chi.Router) {
			r.Use(s.visitor)
			r.Get("/", s.handle(s.getPreferences))
			r.Put("/language", s.handle(s.setLanguage))
			r.Put("/theme", s.handle(s.setTheme))
			r.Post("/theme/toggle", s.handle(s.toggleTheme))
		})
	})
	return r
}

func (s *Server) checks() health.Checks {
	checks := health.Checks{
		"locales": func(ctx context.Context) error {
			_, err := s.locales.Load(ctx, s.defaultLocale)
			return err
		},
	}
	if s.redis != nil {
		checks["redis"] = redis.Ping(s.redis)
	}
	return checks
}

// Handler returns the HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Run serves on addr until ctx is canceled, then shuts down gracefully and
// runs the shutdown hooks.
func (s *Server) Run(ctx context.Context, addr string) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return err
	}
	return s.Serve(ctx, ln)
}

// Serve is Run over an existing listener.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:           s.router,
		ReadHeaderTimeout: 5 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return context.WithoutCancel(ctx) },
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("server starting", slog.String("address", ln.Addr().String()))
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	s.logger.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.shutdownTimeout)
	defer cancel()

	var errs []error
	if err := srv.Shutdown(shutdownCtx); err != nil {
		errs = append(errs, err)
	}
	for _, hook := range s.shutdownHooks {
		if err := hook(shutdownCtx); err != nil {
			s.logger.Error("shutdown hook failed", slog.String("error", err.Error()))
			errs = append(errs, err)
		}
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}
	s.logger.Info("shutdown completed")
	return nil
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
