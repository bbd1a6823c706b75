package server

import (
	"net/http"
	"strings"

	"github.com/dmitrymomot/archivist/pkg/host"
	"github.com/dmitrymomot/archivist/pkg/locale"
)

// requestSystem reports the system signals a browser sends with a request.
// They cannot change during the request, so subscriptions never fire.
type requestSystem struct {
	locale string
	dark   bool
}

func newRequestSystem(r *http.Request, catalog *locale.Catalog) *requestSystem {
	header := r.Header.Get("Accept-Language")

	preferred, ok := catalog.MatchAcceptLanguage(header)
	if !ok {
		if tags := locale.ParseAcceptLanguage(header); len(tags) > 0 {
			preferred = tags[0]
		}
	}

	return &requestSystem{
		locale: preferred,
		dark:   strings.EqualFold(strings.Trim(r.Header.Get(HeaderColorScheme), `" `), "dark"),
	}
}

func (s *requestSystem) PreferredLocale() string { return s.locale }
func (s *requestSystem) PrefersDark() bool       { return s.dark }

func (s *requestSystem) WatchColorScheme(func(bool)) func() {
	return func() {}
}

// newEnv builds the host environment of one request.
func (s *Server) newEnv(w http.ResponseWriter, r *http.Request) (host.Env, *host.Recorder) {
	var storage host.Storage
	if s.redis != nil {
		storage = host.NewRedisStorage(s.redis, host.WithKeyPrefix("prefs:"+VisitorID(r.Context())))
	} else {
		storage = host.NewCookieStorage(w, r, host.WithCookieSecure(s.secureCookies))
	}

	doc := host.NewRecorder()
	return host.Env{
		Storage:  storage,
		Document: doc,
		System:   newRequestSystem(r, s.catalog),
	}, doc
}

var _ host.System = (*requestSystem)(nil)
