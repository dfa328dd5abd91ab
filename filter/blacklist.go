package filter

import (
	"context"

	"github.com/rushteam/artrec/core"
)

// BlacklistStore 是运营黑名单的存储接口。
type BlacklistStore interface {
	// GetBlacklist 返回黑名单作品 id，key 不存在时返回空列表
	GetBlacklist(ctx context.Context, key string) ([]int64, error)
}

// BlacklistFilter 过滤运营黑名单中的作品：静态 ItemIDs 加上存储中 Key 对应的列表。
// 存储中的列表每个请求只读取一次（见 Prepare）。
type BlacklistFilter struct {
	ItemIDs []int64
	Store   BlacklistStore
	Key     string
}

func NewBlacklistFilter(itemIDs []int64, store BlacklistStore, key string) *BlacklistFilter {
	return &BlacklistFilter{ItemIDs: itemIDs, Store: store, Key: key}
}

func (f *BlacklistFilter) Name() string { return "filter.blacklist" }

// Prepare 合并静态列表与存储中的列表。
func (f *BlacklistFilter) Prepare(ctx context.Context, _ *core.RecommendContext) (Filter, error) {
	ids := f.ItemIDs
	if f.Store != nil && f.Key != "" {
		stored, err := f.Store.GetBlacklist(ctx, f.Key)
		if err != nil {
			return nil, err
		}
		ids = append(append([]int64{}, ids...), stored...)
	}
	return NewIDSet(f.Name(), ids...), nil
}

// ShouldFilter 不经过 FilterNode 直接调用时使用，每次都会读取存储。
func (f *BlacklistFilter) ShouldFilter(
	ctx context.Context,
	rctx *core.RecommendContext,
	item *core.Item,
) (bool, error) {
	set, err := f.Prepare(ctx, rctx)
	if err != nil {
		return false, err
	}
	return set.ShouldFilter(ctx, rctx, item)
}

var _ Preparer = (*BlacklistFilter)(nil)
