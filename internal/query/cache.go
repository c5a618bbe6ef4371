// Package query is the data-fetching layer between resource clients and the
// presentation layer. Reads are cached per key and coalesced so identical
// concurrent fetches hit the network once; writes invalidate the key
// families they touch and surface their outcome as notifications.
package query

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"sync"

	"github.com/rs/zerolog"
	"golang.org/x/sync/singleflight"
)

// Key builds a hierarchical cache key, e.g. Key("patients", id, "encounters").
func Key(parts ...string) string {
	return strings.Join(parts, "/")
}

// ListKey appends canonicalized filter values to a resource key so that two
// reads with different filters never share a cache entry. url.Values.Encode
// sorts by key, which makes the encoding deterministic.
func ListKey(base string, params url.Values) string {
	if len(params) == 0 {
		return base
	}
	return base + "?" + params.Encode()
}

type entry struct {
	value any
	fresh bool
}

type Cache struct {
	mu      sync.Mutex
	entries map[string]entry
	group   singleflight.Group
	logger  zerolog.Logger
}

func NewCache(logger zerolog.Logger) *Cache {
	return &Cache{
		entries: make(map[string]entry),
		logger:  logger,
	}
}

// read returns the cached value for key, fetching (at most once across
// concurrent callers) when the entry is missing or stale. Failed fetches are
// not cached; the next read retries.
func (c *Cache) read(ctx context.Context, key string, fetch func(ctx context.Context) (any, error)) (any, error) {
	c.mu.Lock()
	if e, ok := c.entries[key]; ok && e.fresh {
		c.mu.Unlock()
		return e.value, nil
	}
	c.mu.Unlock()

	v, err, shared := c.group.Do(key, func() (any, error) {
		v, err := fetch(ctx)
		if err != nil {
			return nil, err
		}
		c.mu.Lock()
		c.entries[key] = entry{value: v, fresh: true}
		c.mu.Unlock()
		return v, nil
	})
	if err != nil {
		return nil, err
	}
	if shared {
		c.logger.Debug().Str("key", key).Msg("coalesced in-flight read")
	}
	return v, nil
}

// Invalidate marks every entry under the given key prefixes stale. A prefix
// matches its own key plus any descendant ("patients" covers "patients",
// "patients?page=2" and "patients/42", but not "patients-archive").
func (c *Cache) Invalidate(prefixes ...string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for key, e := range c.entries {
		for _, p := range prefixes {
			if matchesPrefix(key, p) {
				e.fresh = false
				c.entries[key] = e
				break
			}
		}
	}
}

func matchesPrefix(key, prefix string) bool {
	if key == prefix {
		return true
	}
	return strings.HasPrefix(key, prefix+"/") || strings.HasPrefix(key, prefix+"?")
}

// Read is the typed read-binding entry point.
func Read[T any](ctx context.Context, c *Cache, key string, fetch func(ctx context.Context) (T, error)) (T, error) {
	v, err := c.read(ctx, key, func(ctx context.Context) (any, error) {
		return fetch(ctx)
	})
	if err != nil {
		var zero T
		return zero, err
	}
	typed, ok := v.(T)
	if !ok {
		var zero T
		return zero, fmt.Errorf("cache entry %q holds %T", key, v)
	}
	return typed, nil
}
