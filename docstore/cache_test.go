package docstore_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"

	"github.com/chapterhq/portal-server/docstore"
	"github.com/chapterhq/portal-server/internal/errors"
)

func newCached(t *testing.T, ttl time.Duration) (*docstore.Cached, docstore.Store, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { rdb.Close() })
	inner := docstore.NewMemory()
	return docstore.NewCached(inner, rdb, ttl), inner, mr
}

func TestCached_ReadThrough(t *testing.T) {
	ctx := context.Background()
	cached, inner, mr := newCached(t, time.Minute)

	require.NoError(t, inner.Put(ctx, docstore.KeyLeadership, []byte(`{"v":1}`)))

	got, err := cached.Get(ctx, docstore.KeyLeadership)
	require.NoError(t, err)
	require.JSONEq(t, `{"v":1}`, string(got))
	require.True(t, mr.Exists("doc:"+docstore.KeyLeadership), "miss should fill the cache")

	// A write behind the cache's back stays invisible until the TTL passes.
	require.NoError(t, inner.Put(ctx, docstore.KeyLeadership, []byte(`{"v":2}`)))
	got, err = cached.Get(ctx, docstore.KeyLeadership)
	require.NoError(t, err)
	require.JSONEq(t, `{"v":1}`, string(got))

	mr.FastForward(2 * time.Minute)
	got, err = cached.Get(ctx, docstore.KeyLeadership)
	require.NoError(t, err)
	require.JSONEq(t, `{"v":2}`, string(got))
}

func TestCached_PutInvalidates(t *testing.T) {
	ctx := context.Background()
	cached, _, mr := newCached(t, time.Minute)

	require.NoError(t, cached.Put(ctx, docstore.KeyAccessOverrides, []byte(`{"entries":[]}`)))

	// Warm the cache, overwrite through the cache, and expect the fresh copy.
	_, err := cached.Get(ctx, docstore.KeyAccessOverrides)
	require.NoError(t, err)
	require.NoError(t, cached.Put(ctx, docstore.KeyAccessOverrides, []byte(`{"entries":[{"email":"a@x.org"}]}`)))
	require.False(t, mr.Exists("doc:"+docstore.KeyAccessOverrides))

	got, err := cached.Get(ctx, docstore.KeyAccessOverrides)
	require.NoError(t, err)
	require.JSONEq(t, `{"entries":[{"email":"a@x.org"}]}`, string(got))
}

func TestCached_MissingKey(t *testing.T) {
	cached, _, _ := newCached(t, time.Minute)
	_, err := cached.Get(context.Background(), docstore.ContentKey("about"))
	require.ErrorIs(t, err, errors.ErrNotFound)
}

func TestCached_RedisDownFallsThrough(t *testing.T) {
	ctx := context.Background()
	cached, inner, mr := newCached(t, time.Minute)
	require.NoError(t, inner.Put(ctx, docstore.KeyLeadership, []byte(`{}`)))

	mr.Close()
	got, err := cached.Get(ctx, docstore.KeyLeadership)
	require.NoError(t, err)
	require.JSONEq(t, `{}`, string(got))
}
