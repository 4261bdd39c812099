// internal/options/cached.go
//
// Read-through cache for option lookups.
//
// Context
// -------
// The secure-token gate reads one option on every guarded request.  Cached
// keeps recent values in a bounded LRU for ttl and collapses concurrent
// misses for the same key into one backend read with singleflight.
//
// Notes
// -----
//   - ErrNotFound is never cached, so a token written at install time is
//     visible on the next request.
//   - Set writes through and refreshes the cached copy.
//   - The shared backend read is detached from any one caller's context, so
//     a disconnecting client cannot fail the waiters that joined its read.
//     Each caller still stops waiting when its own context ends.
package options

import (
	"context"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/yanizio/doofinder-wp/internal/cache"
)

const (
	// DefaultCacheEntries bounds the number of cached keys.
	DefaultCacheEntries = 64

	// loadTimeout caps one shared backend read.
	loadTimeout = 5 * time.Second
)

type cachedValue struct {
	val string
	exp time.Time
}

// Cached decorates a Store with a TTL + LRU cache.
type Cached struct {
	next Store
	ttl  time.Duration
	now  func() time.Time

	mu  sync.Mutex
	lru *cache.LRU[string, cachedValue]
	sfg singleflight.Group
}

// NewCached wraps next.  ttl <= 0 disables caching but keeps singleflight.
func NewCached(next Store, ttl time.Duration, maxEntries int) *Cached {
	if maxEntries < 1 {
		maxEntries = DefaultCacheEntries
	}
	return &Cached{
		next: next,
		ttl:  ttl,
		now:  time.Now,
		lru:  cache.New[string, cachedValue](maxEntries),
	}
}

// Get returns a cached value or reads through to the wrapped Store.
func (c *Cached) Get(ctx context.Context, key string) (string, error) {
	if v, ok := c.lookup(key); ok {
		return v, nil
	}

	ch := c.sfg.DoChan(key, func() (interface{}, error) {
		// Double-check after the singleflight barrier.
		if v, ok := c.lookup(key); ok {
			return v, nil
		}
		lctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), loadTimeout)
		defer cancel()

		val, err := c.next.Get(lctx, key)
		if err != nil {
			return "", err
		}
		c.store(key, val)
		return val, nil
	})

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return "", res.Err
		}
		return res.Val.(string), nil
	}
}

// Set writes through and refreshes the cache.
func (c *Cached) Set(ctx context.Context, key, value string) error {
	if err := c.next.Set(ctx, key, value); err != nil {
		c.mu.Lock()
		c.lru.Remove(key)
		c.mu.Unlock()
		return err
	}
	c.store(key, value)
	return nil
}

func (c *Cached) lookup(key string) (string, bool) {
	if c.ttl <= 0 {
		return "", false
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	cv, ok := c.lru.Get(key)
	if !ok || !c.now().Before(cv.exp) {
		return "", false
	}
	return cv.val, true
}

func (c *Cached) store(key, val string) {
	if c.ttl <= 0 {
		return
	}
	c.mu.Lock()
	c.lru.Add(key, cachedValue{val: val, exp: c.now().Add(c.ttl)})
	c.mu.Unlock()
}
