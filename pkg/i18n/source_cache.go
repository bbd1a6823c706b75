package i18n

import (
	"context"
	"sync"

	"golang.org/x/sync/singleflight"
)

// CachedSource memoizes another Source. Concurrent misses for the same tag
// share one fetch. Failed fetches are not cached, and neither is a fetch
// that an invalidation overtook.
type CachedSource struct {
	next    Source
	entries map[string]map[string]any
	gens    map[string]uint64
	group   singleflight.Group
	epoch   uint64
	mu      sync.RWMutex
}

type generation struct {
	epoch, tag uint64
}

// NewCachedSource wraps next with an in-memory cache.
func NewCachedSource(next Source) *CachedSource {
	return &CachedSource{
		next:    next,
		entries: make(map[string]map[string]any),
		gens:    make(map[string]uint64),
	}
}

// generation must be called with c.mu held.
func (c *CachedSource) generation(tag string) generation {
	return generation{epoch: c.epoch, tag: c.gens[tag]}
}

// Load returns a copy of the cached tree, fetching it on a miss.
func (c *CachedSource) Load(ctx context.Context, tag string) (map[string]any, error) {
	c.mu.RLock()
	tree, ok := c.entries[tag]
	c.mu.RUnlock()
	if ok {
		return cloneMap(tree), nil
	}

	v, err, _ := c.group.Do(tag, func() (any, error) {
		c.mu.Lock()
		if _, ok := c.gens[tag]; !ok {
			c.gens[tag] = 0
		}
		gen := c.generation(tag)
		c.mu.Unlock()

		tree, err := c.next.Load(ctx, tag)
		if err != nil {
			return nil, err
		}

		c.mu.Lock()
		if c.generation(tag) == gen {
			c.entries[tag] = tree
		}
		c.mu.Unlock()
		return tree, nil
	})
	if err != nil {
		return nil, err
	}

	return cloneMap(v.(map[string]any)), nil
}

// Invalidate drops the cached tree for tag. A fetch already in flight for
// tag still answers its callers but is not cached, and later callers start
// a new fetch.
func (c *CachedSource) Invalidate(tag string) {
	c.mu.Lock()
	delete(c.entries, tag)
	c.gens[tag]++
	c.mu.Unlock()
	c.group.Forget(tag)
}

// InvalidateAll empties the cache.
func (c *CachedSource) InvalidateAll() {
	c.mu.Lock()
	c.entries = make(map[string]map[string]any)
	c.epoch++
	tags := make([]string, 0, len(c.gens))
	for tag := range c.gens {
		tags = append(tags, tag)
	}
	c.mu.Unlock()
	for _, tag := range tags {
		c.group.Forget(tag)
	}
}

// Cached reports whether tag is currently cached.
func (c *CachedSource) Cached(tag string) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	_, ok := c.entries[tag]
	return ok
}
