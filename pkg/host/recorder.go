package host

import (
	"maps"
	"slices"
	"sync"
)

// Recorder is a Document that remembers the attributes and classes written
// to it.
type Recorder struct {
	attrs   map[string]string
	classes map[string]struct{}
	mu      sync.RWMutex
}

// NewRecorder creates an empty Recorder.
func NewRecorder() *Recorder {
	return &Recorder{
		attrs:   make(map[string]string),
		classes: make(map[string]struct{}),
	}
}

func (r *Recorder) SetAttribute(name, value string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.attrs[name] = value
}

func (r *Recorder) ToggleClass(name string, on bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if on {
		r.classes[name] = struct{}{}
		return
	}
	delete(r.classes, name)
}

// Attribute returns the last value written for name.
func (r *Recorder) Attribute(name string) string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.attrs[name]
}

// Attributes returns a copy of all recorded attributes.
func (r *Recorder) Attributes() map[string]string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return maps.Clone(r.attrs)
}

// HasClass reports whether the class is currently set.
func (r *Recorder) HasClass(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.classes[name]
	return ok
}

// Classes returns the set classes in sorted order.
func (r *Recorder) Classes() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return slices.Sorted(maps.Keys(r.classes))
}

var _ Document = (*Recorder)(nil)
