// Package resolver is the process-wide read cache between views and
// the backend client. It deduplicates concurrent fetches for the same
// key and serves resolved values until they are invalidated or go
// stale.
//
// Staleness policy: a stale entry is treated as a miss and the caller
// blocks until revalidation completes. No value older than the TTL is
// ever returned. The policy is uniform across all keys.
package resolver

import (
	"context"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"
)

// DefaultTTL matches the refresh cadence the views were tuned for.
const DefaultTTL = 5 * time.Minute

// Key builds a cache key from a resource type and its parameters.
// Keys form a hierarchy separated by '/', so Invalidate("posts")
// covers every post listing regardless of filters.
func Key(parts ...string) string {
	return strings.Join(parts, "/")
}

type entry struct {
	value      any
	resolvedAt time.Time
}

// Cache is safe for concurrent use by any number of views.
type Cache struct {
	mu      sync.Mutex
	entries map[string]entry
	group   singleflight.Group
	ttl     time.Duration
	now     func() time.Time

	// gen increments on every Invalidate. A fetch that started
	// before the increment must not store its result: it may carry
	// pre-mutation data.
	gen uint64
}

func New(ttl time.Duration) *Cache {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Cache{
		entries: make(map[string]entry),
		ttl:     ttl,
		now:     time.Now,
	}
}

// Resolve returns the cached value for key, fetching it at most once
// no matter how many callers arrive while the fetch is in flight.
// Failed fetches are not cached; the next Resolve tries again. An
// empty result is a resolved value like any other.
func (c *Cache) Resolve(ctx context.Context, key string, fetch func(ctx context.Context) (any, error)) (any, error) {
	if v, ok := c.lookup(key); ok {
		return v, nil
	}

	v, err, _ := c.group.Do(key, func() (any, error) {
		// A waiter that lost the race to the flight leader may
		// arrive after the leader already stored the value.
		if v, ok := c.lookup(key); ok {
			return v, nil
		}
		gen := c.generation()
		v, err := fetch(ctx)
		if err != nil {
			return nil, err
		}
		c.put(key, v, gen)
		return v, nil
	})
	if err != nil {
		return nil, err
	}
	return v, nil
}

// Invalidate evicts every entry whose key equals prefix or starts
// with prefix + "/". The next Resolve for those keys refetches. A
// fetch already in flight when Invalidate runs keeps going, but its
// result is discarded instead of stored: it may predate the mutation.
func (c *Cache) Invalidate(prefix string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for k := range c.entries {
		if k == prefix || strings.HasPrefix(k, prefix+"/") {
			delete(c.entries, k)
		}
	}
	c.gen++
	// Forget any in-flight fetch so a post-invalidation Resolve
	// does not join a flight started before the mutation.
	c.group.Forget(prefix)
}

// Len reports the number of live entries, stale ones included.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

func (c *Cache) lookup(key string) (any, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.entries[key]
	if !ok {
		return nil, false
	}
	if c.now().Sub(e.resolvedAt) > c.ttl {
		delete(c.entries, key)
		return nil, false
	}
	return e.value, true
}

func (c *Cache) generation() uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.gen
}

// put stores the fetched value unless an Invalidate ran after the
// fetch started. The caller still receives the value; only the cache
// write is dropped, so the next Resolve refetches.
func (c *Cache) put(key string, v any, gen uint64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.gen != gen {
		return
	}
	c.entries[key] = entry{value: v, resolvedAt: c.now()}
}

// Resolve is the typed wrapper around Cache.Resolve. The stored value
// must have been produced by a fetch returning the same T.
func Resolve[T any](ctx context.Context, c *Cache, key string, fetch func(ctx context.Context) (T, error)) (T, error) {
	v, err := c.Resolve(ctx, key, func(ctx context.Context) (any, error) {
		return fetch(ctx)
	})
	if err != nil {
		var zero T
		return zero, err
	}
	return v.(T), nil
}
