// Package cache 存储每个用户最近一次的推荐结果，带过期时间。
package cache

import (
	"context"
	"strconv"
	"time"

	"github.com/goccy/go-json"

	"github.com/rushteam/artrec/core"
)

// KVCache 把推荐结果以 JSON 存在 core.Store 中，key 为 {KeyPrefix}:{userID}。
// 写入时同时设置存储层 TTL；读取时以 ExpiresAt 为准（便于注入时钟）。
type KVCache struct {
	store     core.Store
	KeyPrefix string
}

func NewKVCache(s core.Store, keyPrefix ...string) *KVCache {
	prefix := "recommendations"
	if len(keyPrefix) > 0 && keyPrefix[0] != "" {
		prefix = keyPrefix[0]
	}
	return &KVCache{store: s, KeyPrefix: prefix}
}

func (c *KVCache) key(userID int64) string {
	return c.KeyPrefix + ":" + strconv.FormatInt(userID, 10)
}

func (c *KVCache) Get(ctx context.Context, userID int64, now time.Time) (*core.CachedRecommendationSet, error) {
	data, err := c.store.Get(ctx, c.key(userID))
	if err != nil {
		if core.IsStoreNotFound(err) {
			return nil, core.ErrCacheMiss
		}
		return nil, err
	}
	var set core.CachedRecommendationSet
	if err := json.Unmarshal(data, &set); err != nil {
		return nil, core.WrapDomainError(core.ModuleCache, core.ErrorCodeInternalError, "cache: decode", err)
	}
	if !set.IsLive(now) {
		return nil, core.ErrCacheMiss
	}
	return &set, nil
}

// Put 先删除旧的缓存再写入新的一条。
func (c *KVCache) Put(ctx context.Context, set *core.CachedRecommendationSet) error {
	data, err := json.Marshal(set)
	if err != nil {
		return core.WrapDomainError(core.ModuleCache, core.ErrorCodeInternalError, "cache: encode", err)
	}
	key := c.key(set.UserID)
	if err := c.store.Delete(ctx, key); err != nil {
		return err
	}
	ttl := int(set.ExpiresAt.Sub(set.CreatedAt) / time.Second)
	if ttl <= 0 {
		return nil
	}
	return c.store.Set(ctx, key, data, ttl)
}

var _ core.ResultCache = (*KVCache)(nil)
