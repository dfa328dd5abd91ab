// Package filter 实现业务规则过滤：已购排除、运营黑名单、可售状态、CEL 规则。
package filter

import (
	"context"

	"github.com/rushteam/artrec/core"
)

// Filter 判断一个候选是否要移除（true 为移除）。
// Filter 实例在请求之间共享，不能保存请求级状态。
type Filter interface {
	Name() string
	ShouldFilter(ctx context.Context, rctx *core.RecommendContext, item *core.Item) (bool, error)
}

// Preparer 是需要按请求预加载数据的 Filter（例如从存储读取黑名单）。
// FilterNode 每次执行前调用 Prepare，用返回的请求级 Filter 逐个判断。
type Preparer interface {
	Prepare(ctx context.Context, rctx *core.RecommendContext) (Filter, error)
}

// IDSet 按作品 id 集合过滤。
type IDSet struct {
	Label string
	IDs   map[int64]struct{}
}

// NewIDSet 用 ids 构建集合。
func NewIDSet(label string, ids ...int64) *IDSet {
	set := make(map[int64]struct{}, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}
	return &IDSet{Label: label, IDs: set}
}

func (f *IDSet) Name() string { return f.Label }

func (f *IDSet) ShouldFilter(_ context.Context, _ *core.RecommendContext, item *core.Item) (bool, error) {
	_, ok := f.IDs[item.ID]
	return ok, nil
}
