package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
)

func nonEmptySlice(v []string) bool { return len(v) > 0 }

func newTestCache(ttl time.Duration, now *time.Time) *Cache[[]string] {
	c := New[[]string](NewMemoryStore[[]string](), ttl, nonEmptySlice, zerolog.Nop())
	return c.WithClock(func() time.Time { return *now })
}

func TestCacheGetWithinTTLFetchesOnce(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	c := newTestCache(10*time.Minute, &now)

	calls := 0
	fetch := func(context.Context) ([]string, error) {
		calls++
		return []string{"a", "b"}, nil
	}

	got := c.Get(context.Background(), "news", fetch)
	if len(got) != 2 {
		t.Fatalf("payload = %v, want 2 items", got)
	}

	now = now.Add(9 * time.Minute)
	got = c.Get(context.Background(), "news", fetch)
	if len(got) != 2 {
		t.Fatalf("payload = %v, want 2 items", got)
	}
	if calls != 1 {
		t.Fatalf("fetch called %d times within TTL, want 1", calls)
	}
}

func TestCacheExpiryTriggersSingleRefetch(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	c := newTestCache(5*time.Minute, &now)

	calls := 0
	fetch := func(context.Context) ([]string, error) {
		calls++
		return []string{"v"}, nil
	}

	c.Get(context.Background(), "markets:usd", fetch)
	now = now.Add(5 * time.Minute) // exactly at TTL: stale
	c.Get(context.Background(), "markets:usd", fetch)
	if calls != 2 {
		t.Fatalf("fetch called %d times, want 2 (one per stale read)", calls)
	}
}

func TestCacheServesStaleOnFetchFailure(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	c := newTestCache(5*time.Minute, &now)

	c.Get(context.Background(), "k", func(context.Context) ([]string, error) {
		return []string{"old"}, nil
	})

	now = now.Add(time.Hour)
	got := c.Get(context.Background(), "k", func(context.Context) ([]string, error) {
		return nil, errors.New("provider down")
	})
	if len(got) != 1 || got[0] != "old" {
		t.Fatalf("stale payload = %v, want [old]", got)
	}

	// Stale payload is served unchanged, not re-stamped: the next read tries
	// the upstream again.
	calls := 0
	c.Get(context.Background(), "k", func(context.Context) ([]string, error) {
		calls++
		return nil, errors.New("still down")
	})
	if calls != 1 {
		t.Fatalf("fetch not attempted after failed refresh")
	}
}

func TestCacheEmptyPayloadIsInvalid(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	c := newTestCache(5*time.Minute, &now)

	// A successful fetch with an empty payload is not cached as valid.
	c.Get(context.Background(), "k", func(context.Context) ([]string, error) {
		return nil, nil
	})

	calls := 0
	got := c.Get(context.Background(), "k", func(context.Context) ([]string, error) {
		calls++
		return []string{"x"}, nil
	})
	if calls != 1 {
		t.Fatalf("empty cached payload should not satisfy a read")
	}
	if len(got) != 1 {
		t.Fatalf("payload = %v, want [x]", got)
	}
}

func TestCacheKeysAreIndependent(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	c := newTestCache(5*time.Minute, &now)

	c.Get(context.Background(), "markets:usd", func(context.Context) ([]string, error) {
		return []string{"usd"}, nil
	})
	got := c.Get(context.Background(), "markets:eur", func(context.Context) ([]string, error) {
		return []string{"eur"}, nil
	})
	if got[0] != "eur" {
		t.Fatalf("currency keys must not share entries, got %v", got)
	}
}
