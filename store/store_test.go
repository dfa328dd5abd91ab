package store

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rushteam/artrec/core"
)

func setupTestRedis(t *testing.T) *RedisStore {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	s := NewRedisStoreFromClient(client)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func setupMemory(t *testing.T) *MemoryStore {
	t.Helper()
	s := NewMemoryStore()
	t.Cleanup(func() { _ = s.Close() })
	return s
}

// 两种实现跑同一组用例，保证 MemoryStore 与 Redis 的排序语义一致。
func stores(t *testing.T) map[string]core.KeyValueStore {
	return map[string]core.KeyValueStore{
		"memory": setupMemory(t),
		"redis":  setupTestRedis(t),
	}
}

func TestStore_GetSetDelete(t *testing.T) {
	ctx := context.Background()
	for name, s := range stores(t) {
		t.Run(name, func(t *testing.T) {
			_, err := s.Get(ctx, "missing")
			assert.True(t, core.IsStoreNotFound(err))

			require.NoError(t, s.Set(ctx, "k", []byte("v"), 60))
			got, err := s.Get(ctx, "k")
			require.NoError(t, err)
			assert.Equal(t, []byte("v"), got)

			require.NoError(t, s.Delete(ctx, "k"))
			_, err = s.Get(ctx, "k")
			assert.True(t, core.IsStoreNotFound(err))
		})
	}
}

func TestStore_Batch(t *testing.T) {
	ctx := context.Background()
	for name, s := range stores(t) {
		t.Run(name, func(t *testing.T) {
			require.NoError(t, s.BatchSet(ctx, map[string][]byte{"a": []byte("1"), "b": []byte("2")}))
			got, err := s.BatchGet(ctx, []string{"a", "b", "c"})
			require.NoError(t, err)
			assert.Equal(t, map[string][]byte{"a": []byte("1"), "b": []byte("2")}, got)
		})
	}
}

func TestStore_SortedSet(t *testing.T) {
	ctx := context.Background()
	for name, s := range stores(t) {
		t.Run(name, func(t *testing.T) {
			require.NoError(t, s.ZAdd(ctx, "z", 1, "a"))
			require.NoError(t, s.ZAdd(ctx, "z", 3, "b"))
			require.NoError(t, s.ZAdd(ctx, "z", 3, "c"))
			require.NoError(t, s.ZAdd(ctx, "z", 2, "d"))

			all, err := s.ZRange(ctx, "z", 0, -1)
			require.NoError(t, err)
			assert.Equal(t, []string{"c", "b", "d", "a"}, all)

			top, err := s.ZRange(ctx, "z", 0, 1)
			require.NoError(t, err)
			assert.Equal(t, []string{"c", "b"}, top)

			byScore, err := s.ZRevRangeByScore(ctx, "z", 2, 3)
			require.NoError(t, err)
			assert.Equal(t, []string{"c", "b", "d"}, byScore)

			score, err := s.ZIncrBy(ctx, "z", 5, "a")
			require.NoError(t, err)
			assert.Equal(t, 6.0, score)

			scored, err := s.ZRangeWithScores(ctx, "z", 0, 0)
			require.NoError(t, err)
			assert.Equal(t, []core.ScoredMember{{Member: "a", Score: 6}}, scored)

			empty, err := s.ZRange(ctx, "missing", 0, -1)
			require.NoError(t, err)
			assert.Empty(t, empty)
		})
	}
}

func TestStore_Hash(t *testing.T) {
	ctx := context.Background()
	for name, s := range stores(t) {
		t.Run(name, func(t *testing.T) {
			_, err := s.HGet(ctx, "h", "f")
			assert.True(t, core.IsStoreNotFound(err))

			require.NoError(t, s.HSet(ctx, "h", "f1", []byte("x")))
			require.NoError(t, s.HSet(ctx, "h", "f2", []byte("y")))

			v, err := s.HGet(ctx, "h", "f1")
			require.NoError(t, err)
			assert.Equal(t, []byte("x"), v)

			all, err := s.HGetAll(ctx, "h")
			require.NoError(t, err)
			assert.Equal(t, map[string][]byte{"f1": []byte("x"), "f2": []byte("y")}, all)
		})
	}
}

func TestRedisStore_Unavailable(t *testing.T) {
	mr := miniredis.RunT(t)
	s := NewRedisStoreFromClient(redis.NewClient(&redis.Options{Addr: mr.Addr()}))
	mr.Close()

	err := s.Set(context.Background(), "k", []byte("v"))
	require.Error(t, err)
	assert.True(t, core.IsUnavailable(err))
}
