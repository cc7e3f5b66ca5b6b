package cache

import (
	"context"
	"time"

	"github.com/rs/zerolog"
)

// Entry is a cached payload plus the time it was last refreshed.
type Entry[T any] struct {
	Payload   T         `json:"payload"`
	Refreshed time.Time `json:"refreshed"`
}

// FetchFunc produces a fresh payload from the upstream collaborator.
type FetchFunc[T any] func(ctx context.Context) (T, error)

// Store holds entries by key. Implementations: in-process memory (default)
// and Redis for multi-process deployments.
type Store[T any] interface {
	Load(ctx context.Context, key string) (Entry[T], bool, error)
	Save(ctx context.Context, key string, e Entry[T]) error
}

// Cache is a lazily refreshed, time-boxed cache. A stored entry is valid only
// while now-refreshed < ttl AND the payload is non-empty; an invalid entry is
// refreshed synchronously on the read path that discovers it. When the
// refresh fails the stored payload is served as-is, stale or empty, rather
// than propagating the failure. There is no background refresh and no
// request deduplication: concurrent stale reads may each hit the upstream,
// which the provider's rate-limit headroom tolerates.
type Cache[T any] struct {
	store    Store[T]
	ttl      time.Duration
	now      func() time.Time
	nonEmpty func(T) bool
	log      zerolog.Logger
}

func New[T any](store Store[T], ttl time.Duration, nonEmpty func(T) bool, log zerolog.Logger) *Cache[T] {
	return &Cache[T]{
		store:    store,
		ttl:      ttl,
		now:      time.Now,
		nonEmpty: nonEmpty,
		log:      log,
	}
}

// WithClock overrides the clock, for tests.
func (c *Cache[T]) WithClock(now func() time.Time) *Cache[T] {
	c.now = now
	return c
}

// Get returns the cached payload for key, refreshing it first when stale or
// empty. Get never returns an error: every failure path degrades to the
// previously stored payload (possibly the zero value).
func (c *Cache[T]) Get(ctx context.Context, key string, fetch FetchFunc[T]) T {
	cur, ok, err := c.store.Load(ctx, key)
	if err != nil {
		c.log.Warn().Err(err).Str("key", key).Msg("cache load failed, treating as miss")
		ok = false
	}
	if ok && c.now().Sub(cur.Refreshed) < c.ttl && c.nonEmpty(cur.Payload) {
		return cur.Payload
	}

	fresh, err := fetch(ctx)
	if err != nil || !c.nonEmpty(fresh) {
		if err != nil {
			c.log.Warn().Err(err).Str("key", key).Msg("cache refresh failed, serving stale payload")
		}
		return cur.Payload
	}

	if err := c.store.Save(ctx, key, Entry[T]{Payload: fresh, Refreshed: c.now()}); err != nil {
		c.log.Warn().Err(err).Str("key", key).Msg("cache save failed")
	}
	return fresh
}
