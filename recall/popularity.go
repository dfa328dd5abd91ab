package recall

import (
	"context"

	"github.com/rushteam/artrec/core"
	"github.com/rushteam/artrec/pipeline"
)

// Popularity 是热门兜底召回源：按全站喜欢 / 购买次数排序，每个作品一个固定分。
// 用于还没有偏好画像的用户。
// Popularity 同时实现了 Source 和 Node 接口，可以直接在 Pipeline 中使用。
type Popularity struct {
	Log core.BehaviorLog

	// Score 固定分，默认 60
	Score float64

	// TopK 最多返回的作品数，0 表示不限
	TopK int
}

func NewPopularity(log core.BehaviorLog) *Popularity {
	return &Popularity{Log: log, Score: 60}
}

func (r *Popularity) Name() string        { return string(core.AlgorithmPopularity) }
func (r *Popularity) Kind() pipeline.Kind { return pipeline.KindRecall }

// Process 实现 Node 接口，直接调用 Recall
func (r *Popularity) Process(
	ctx context.Context,
	rctx *core.RecommendContext,
	_ []*core.Item,
) ([]*core.Item, error) {
	return r.Recall(ctx, rctx)
}

// Recall 实现 Source 接口
func (r *Popularity) Recall(
	ctx context.Context,
	_ *core.RecommendContext,
) ([]*core.Item, error) {
	if r.Log == nil {
		return nil, nil
	}
	popular, err := r.Log.Popular(ctx)
	if err != nil {
		return nil, err
	}
	if r.TopK > 0 && len(popular) > r.TopK {
		popular = popular[:r.TopK]
	}

	out := make([]*core.Item, 0, len(popular))
	for _, p := range popular {
		out = append(out, newScoredItem(p.ArtworkID, core.AlgorithmPopularity, r.Score, r.Name(), ReasonPopular))
	}
	return out, nil
}
