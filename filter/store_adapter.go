package filter

import (
	"context"
	"strconv"
	"time"

	"github.com/rushteam/artrec/core"
)

// StoreAdapter 把运营黑名单存为有序集合：member 为作品 id，score 为加入时间（unix 秒）。
type StoreAdapter struct {
	store core.KeyValueStore
}

func NewStoreAdapter(s core.KeyValueStore) *StoreAdapter {
	return &StoreAdapter{store: s}
}

// GetBlacklist 返回黑名单，最近加入的在前。
func (a *StoreAdapter) GetBlacklist(ctx context.Context, key string) ([]int64, error) {
	members, err := a.store.ZRange(ctx, key, 0, -1)
	if err != nil {
		if core.IsStoreNotFound(err) {
			return nil, nil
		}
		return nil, err
	}
	ids := make([]int64, 0, len(members))
	for _, m := range members {
		id, err := strconv.ParseInt(m, 10, 64)
		if err != nil {
			continue
		}
		ids = append(ids, id)
	}
	return ids, nil
}

// AddToBlacklist 追加作品，已存在的作品刷新加入时间。
func (a *StoreAdapter) AddToBlacklist(ctx context.Context, key string, ids ...int64) error {
	now := float64(time.Now().Unix())
	for _, id := range ids {
		if err := a.store.ZAdd(ctx, key, now, strconv.FormatInt(id, 10)); err != nil {
			return err
		}
	}
	return nil
}

// SetBlacklist 清空后写入 ids。
func (a *StoreAdapter) SetBlacklist(ctx context.Context, key string, ids []int64) error {
	if err := a.store.Delete(ctx, key); err != nil && !core.IsStoreNotFound(err) {
		return err
	}
	return a.AddToBlacklist(ctx, key, ids...)
}

var _ BlacklistStore = (*StoreAdapter)(nil)
