package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// RedisStore shares cache entries across processes. Keys carry no Redis TTL:
// freshness is judged from the stored Refreshed timestamp, so an expired
// payload remains loadable as the stale fallback when a refresh fails.
type RedisStore[T any] struct {
	rdb    *redis.Client
	prefix string
}

func NewRedisStore[T any](rdb *redis.Client, prefix string) *RedisStore[T] {
	return &RedisStore[T]{rdb: rdb, prefix: prefix}
}

func (r *RedisStore[T]) key(key string) string {
	return fmt.Sprintf("%s:%s", r.prefix, key)
}

func (r *RedisStore[T]) Load(ctx context.Context, key string) (Entry[T], bool, error) {
	var e Entry[T]
	b, err := r.rdb.Get(ctx, r.key(key)).Bytes()
	if errors.Is(err, redis.Nil) {
		return e, false, nil
	}
	if err != nil {
		return e, false, fmt.Errorf("redis get: %w", err)
	}
	if err := json.Unmarshal(b, &e); err != nil {
		return e, false, fmt.Errorf("redis entry decode: %w", err)
	}
	return e, true, nil
}

func (r *RedisStore[T]) Save(ctx context.Context, key string, e Entry[T]) error {
	b, err := json.Marshal(e)
	if err != nil {
		return fmt.Errorf("redis entry encode: %w", err)
	}
	if err := r.rdb.Set(ctx, r.key(key), b, 0).Err(); err != nil {
		return fmt.Errorf("redis set: %w", err)
	}
	return nil
}
