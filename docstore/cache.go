package docstore

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

var _ Store = (*Cached)(nil)

const cacheKeyPrefix = "doc:"

// Cached is a read-through cache in front of another Store. Documents are
// small and read on every request, so a short TTL keeps the database mostly
// idle without letting operator edits go stale for long. Cache failures are
// logged and bypassed, never surfaced.
type Cached struct {
	inner Store
	rdb   *redis.Client
	ttl   time.Duration
}

func NewCached(inner Store, rdb *redis.Client, ttl time.Duration) *Cached {
	return &Cached{inner: inner, rdb: rdb, ttl: ttl}
}

func (c *Cached) Get(ctx context.Context, key string) ([]byte, error) {
	cached, err := c.rdb.Get(ctx, cacheKeyPrefix+key).Bytes()
	if err == nil {
		return cached, nil
	}
	if err != redis.Nil {
		log.Debug().Err(err).Str("key", key).Msg("doc cache read failed, falling through")
	}

	value, err := c.inner.Get(ctx, key)
	if err != nil {
		return nil, err
	}
	if setErr := c.rdb.Set(ctx, cacheKeyPrefix+key, value, c.ttl).Err(); setErr != nil {
		log.Debug().Err(setErr).Str("key", key).Msg("doc cache fill failed")
	}
	return value, nil
}

func (c *Cached) Put(ctx context.Context, key string, value []byte) error {
	if err := c.inner.Put(ctx, key, value); err != nil {
		return err
	}
	// Invalidate rather than update so a racing fill cannot resurrect the
	// old document past one TTL.
	if err := c.rdb.Del(ctx, cacheKeyPrefix+key).Err(); err != nil {
		log.Debug().Err(err).Str("key", key).Msg("doc cache invalidate failed")
	}
	return nil
}
