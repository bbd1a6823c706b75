package host

import "sync"

// Signals is a System whose values are set programmatically. SetPrefersDark
// notifies subscribers when the value actually changes.
type Signals struct {
	watchers map[int]func(dark bool)
	locale   string
	nextID   int
	mu       sync.Mutex
	dark     bool
}

// NewSignals creates Signals with the given initial values.
func NewSignals(preferredLocale string, prefersDark bool) *Signals {
	return &Signals{
		watchers: make(map[int]func(bool)),
		locale:   preferredLocale,
		dark:     prefersDark,
	}
}

func (s *Signals) PreferredLocale() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.locale
}

func (s *Signals) PrefersDark() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.dark
}

// WatchColorScheme subscribes fn to dark mode changes.
func (s *Signals) WatchColorScheme(fn func(dark bool)) func() {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.nextID
	s.nextID++
	s.watchers[id] = fn

	var once sync.Once
	return func() {
		once.Do(func() {
			s.mu.Lock()
			defer s.mu.Unlock()
			delete(s.watchers, id)
		})
	}
}

// SetPreferredLocale replaces the reported locale.
func (s *Signals) SetPreferredLocale(tag string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.locale = tag
}

// SetPrefersDark updates the dark mode signal. Subscribers are called
// synchronously, outside the lock, only if the value changed.
func (s *Signals) SetPrefersDark(dark bool) {
	s.mu.Lock()
	if s.dark == dark {
		s.mu.Unlock()
		return
	}
	s.dark = dark
	watchers := make([]func(bool), 0, len(s.watchers))
	for _, fn := range s.watchers {
		watchers = append(watchers, fn)
	}
	s.mu.Unlock()

	for _, fn := range watchers {
		fn(dark)
	}
}

// Watchers returns the number of active subscriptions.
func (s *Signals) Watchers() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.watchers)
}

var _ System = (*Signals)(nil)
