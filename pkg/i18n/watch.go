package i18n

import (
	"log/slog"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/dmitrymomot/archivist/pkg/logger"
)

// Watcher invalidates a CachedSource when locale resources change on disk.
type Watcher struct {
	cache    *CachedSource
	fw       *fsnotify.Watcher
	onChange func(tag string)
	logger   *slog.Logger
	done     chan struct{}
	debounce time.Duration
}

// WatchOption configures a Watcher.
type WatchOption func(*Watcher)

// OnChange registers a callback run after a tag has been invalidated.
func OnChange(fn func(tag string)) WatchOption {
	return func(w *Watcher) {
		w.onChange = fn
	}
}

// WithWatchLogger sets the watcher logger.
func WithWatchLogger(l *slog.Logger) WatchOption {
	return func(w *Watcher) {
		if l != nil {
			w.logger = l
		}
	}
}

// WithDebounce sets how long a file must stay quiet before it is reported.
// Default: 100ms.
func WithDebounce(d time.Duration) WatchOption {
	return func(w *Watcher) {
		if d > 0 {
			w.debounce = d
		}
	}
}

// Watch starts watching dir for changes to locale resources.
// Call Close to stop.
func Watch(dir string, cache *CachedSource, opts ...WatchOption) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := fw.Add(dir); err != nil {
		_ = fw.Close()
		return nil, err
	}

	w := &Watcher{
		cache:    cache,
		fw:       fw,
		logger:   logger.NewNope(),
		done:     make(chan struct{}),
		debounce: 100 * time.Millisecond,
	}
	for _, opt := range opts {
		opt(w)
	}

	go w.loop()
	return w, nil
}

// Close stops the watcher and waits for its goroutine to exit.
func (w *Watcher) Close() error {
	err := w.fw.Close()
	<-w.done
	return err
}

func (w *Watcher) loop() {
	defer close(w.done)

	pending := make(map[string]time.Time)
	ticker := time.NewTicker(w.debounce)
	defer ticker.Stop()

	for {
		select {
		case event, ok := <-w.fw.Events:
			if !ok {
				for tag := range pending {
					w.invalidate(tag)
				}
				return
			}
			tag, isResource := IsResource(event.Name)
			if !isResource {
				continue
			}
			if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) ||
				event.Has(fsnotify.Remove) || event.Has(fsnotify.Rename) {
				pending[tag] = time.Now()
			}

		case <-ticker.C:
			now := time.Now()
			for tag, at := range pending {
				if now.Sub(at) >= w.debounce {
					w.invalidate(tag)
					delete(pending, tag)
				}
			}

		case err, ok := <-w.fw.Errors:
			if !ok {
				return
			}
			w.logger.Warn("locale watcher error", slog.String("error", err.Error()))
		}
	}
}

func (w *Watcher) invalidate(tag string) {
	w.cache.Invalidate(tag)
	w.logger.Info("locale resource changed", slog.String("locale", tag))
	if w.onChange != nil {
		w.onChange(tag)
	}
}
