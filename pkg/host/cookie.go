package host

import (
	"context"
	"errors"
	"net/http"
	"sync"
)

// CookieStorage persists preferences as plain cookies for the lifetime of a
// single HTTP exchange. Values written during the request are visible to
// later Get calls on the same instance.
type CookieStorage struct {
	w       http.ResponseWriter
	r       *http.Request
	written map[string]string
	opts    *cookieOptions
	mu      sync.Mutex
}

// NewCookieStorage creates a Storage over the request's cookies.
func NewCookieStorage(w http.ResponseWriter, r *http.Request, opts ...CookieOption) *CookieStorage {
	o := &cookieOptions{
		path:     "/",
		maxAge:   365 * 24 * 3600,
		sameSite: http.SameSiteLaxMode,
	}
	for _, opt := range opts {
		opt(o)
	}
	return &CookieStorage{
		w:       w,
		r:       r,
		written: make(map[string]string),
		opts:    o,
	}
}

// Get returns the value written during this request, or the request cookie.
func (s *CookieStorage) Get(_ context.Context, key string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if v, ok := s.written[key]; ok {
		return v, nil
	}

	c, err := s.r.Cookie(s.opts.prefix + key)
	if err != nil {
		if errors.Is(err, http.ErrNoCookie) {
			return "", ErrNotFound
		}
		return "", err
	}
	return c.Value, nil
}

// Set writes a Set-Cookie header for key.
func (s *CookieStorage) Set(_ context.Context, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.written[key] = value
	http.SetCookie(s.w, &http.Cookie{
		Name:     s.opts.prefix + key,
		Value:    value,
		Path:     s.opts.path,
		Domain:   s.opts.domain,
		MaxAge:   s.opts.maxAge,
		Secure:   s.opts.secure,
		HttpOnly: false, // client scripts read the same preferences
		SameSite: s.opts.sameSite,
	})
	return nil
}

// CookieOption configures CookieStorage.
type CookieOption func(*cookieOptions)

type cookieOptions struct {
	prefix   string
	path     string
	domain   string
	maxAge   int
	sameSite http.SameSite
	secure   bool
}

// WithCookiePrefix prepends prefix to every cookie name.
func WithCookiePrefix(prefix string) CookieOption {
	return func(o *cookieOptions) {
		o.prefix = prefix
	}
}

// WithCookieMaxAge sets the cookie Max-Age in seconds. Default: one year.
func WithCookieMaxAge(seconds int) CookieOption {
	return func(o *cookieOptions) {
		o.maxAge = seconds
	}
}

// WithCookieDomain sets the cookie domain.
func WithCookieDomain(domain string) CookieOption {
	return func(o *cookieOptions) {
		o.domain = domain
	}
}

// WithCookieSecure sets the Secure flag.
func WithCookieSecure(secure bool) CookieOption {
	return func(o *cookieOptions) {
		o.secure = secure
	}
}

var _ Storage = (*CookieStorage)(nil)
