package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rushteam/artrec/core"
	"github.com/rushteam/artrec/store"
)

func newSet(userID int64, created time.Time, ids ...int64) *core.CachedRecommendationSet {
	recs := make([]core.RecommendationResult, len(ids))
	for i, id := range ids {
		recs[i] = core.RecommendationResult{ArtworkID: id, MatchScore: 60, Reasons: []string{"r"}, Algorithm: core.AlgorithmPopularity}
	}
	return &core.CachedRecommendationSet{
		UserID:           userID,
		Recommendations:  recs,
		AlgorithmVersion: "v1",
		CreatedAt:        created,
		ExpiresAt:        created.Add(core.DefaultCacheTTL),
	}
}

func TestKVCache(t *testing.T) {
	ctx := context.Background()
	mem := store.NewMemoryStore()
	defer mem.Close()
	mr := miniredis.RunT(t)
	rs := store.NewRedisStoreFromClient(redis.NewClient(&redis.Options{Addr: mr.Addr()}))
	defer rs.Close()

	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	for name, s := range map[string]core.Store{"memory": mem, "redis": rs} {
		t.Run(name, func(t *testing.T) {
			c := NewKVCache(s)

			_, err := c.Get(ctx, 1, now)
			assert.ErrorIs(t, err, core.ErrCacheMiss)

			require.NoError(t, c.Put(ctx, newSet(1, now, 1, 2)))
			require.NoError(t, c.Put(ctx, newSet(1, now, 3)))

			got, err := c.Get(ctx, 1, now.Add(5*time.Hour))
			require.NoError(t, err)
			require.Len(t, got.Recommendations, 1)
			assert.Equal(t, int64(3), got.Recommendations[0].ArtworkID)

			_, err = c.Get(ctx, 1, now.Add(core.DefaultCacheTTL))
			assert.ErrorIs(t, err, core.ErrCacheMiss)

			_, err = c.Get(ctx, 2, now)
			assert.True(t, core.IsNotFound(err))
		})
	}
}

func TestKVCache_RedisTTL(t *testing.T) {
	mr := miniredis.RunT(t)
	rs := store.NewRedisStoreFromClient(redis.NewClient(&redis.Options{Addr: mr.Addr()}))
	defer rs.Close()

	c := NewKVCache(rs)
	require.NoError(t, c.Put(context.Background(), newSet(1, time.Now(), 1)))
	assert.Equal(t, core.DefaultCacheTTL, mr.TTL("recommendations:1"))
}
