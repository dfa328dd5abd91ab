package core

import (
	"time"

	"github.com/rushteam/artrec/pkg/utils"
)

// RecommendContext 承载一次推荐请求的用户/时间/业务信息，贯穿整个 Pipeline 透传。
// 每个请求新建一份，不在请求之间共享。
type RecommendContext struct {
	UserID int64

	// Limit 是调用方请求的条数
	Limit int

	// Now 是本次请求的计算时刻（由引擎的 Clock 提供）
	Now time.Time

	// Profile 是用户偏好画像；为 nil 表示新用户
	Profile *PreferenceProfile

	// Purchased 是用户已购买的作品集合，由引擎在运行 Pipeline 前加载
	Purchased map[int64]struct{}

	// Labels 是用户级标签，可驱动整个 Pipeline 行为
	Labels map[string]utils.Label

	// Params 请求级参数（例如 DSL 过滤表达式中使用的变量）
	Params map[string]any
}

// HasPurchased 判断用户是否已购买过该作品。
func (rctx *RecommendContext) HasPurchased(artworkID int64) bool {
	if rctx == nil || rctx.Purchased == nil {
		return false
	}
	_, ok := rctx.Purchased[artworkID]
	return ok
}

// PutLabel 写入用户级 Label。
func (rctx *RecommendContext) PutLabel(key string, lbl utils.Label) {
	if rctx.Labels == nil {
		rctx.Labels = make(map[string]utils.Label)
	}
	if old, ok := rctx.Labels[key]; ok {
		rctx.Labels[key] = utils.MergeLabel(old, lbl)
		return
	}
	rctx.Labels[key] = lbl
}

// GetLabel 获取用户级 Label。
func (rctx *RecommendContext) GetLabel(key string) (utils.Label, bool) {
	if rctx.Labels == nil {
		return utils.Label{}, false
	}
	lbl, ok := rctx.Labels[key]
	return lbl, ok
}
