package state

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/strideworks/trackside/internal/store"
	"github.com/stretchr/testify/require"
)

// newTestKV returns a redis-backed store over miniredis plus the
// miniredis handle for direct key manipulation.
func newTestKV(t *testing.T) (*store.RedisStore, *miniredis.Miniredis) {
	t.Helper()
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	return store.NewRedisStore(client, "test"), mr
}

// seedEmpty writes empty collections so Hydrate does not fall back to
// the starter dataset.
func seedEmpty(t *testing.T, kv *store.RedisStore, keys ...string) {
	t.Helper()
	ctx := context.Background()
	for _, key := range keys {
		require.NoError(t, kv.Save(ctx, key, []struct{}{}))
	}
}
