package filter

import (
	"context"

	"github.com/rushteam/artrec/core"
)

// PurchasedFilter 永久排除用户已购买的作品。
// 已购集合由引擎在运行 Pipeline 前加载到 rctx.Purchased。
type PurchasedFilter struct{}

func (f *PurchasedFilter) Name() string { return "filter.purchased" }

func (f *PurchasedFilter) ShouldFilter(
	_ context.Context,
	rctx *core.RecommendContext,
	item *core.Item,
) (bool, error) {
	return rctx.HasPurchased(item.ID), nil
}
