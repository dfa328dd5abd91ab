package rerank

import (
	"context"
	"strconv"

	"github.com/rushteam/artrec/core"
	"github.com/rushteam/artrec/pipeline"
	"github.com/rushteam/artrec/pkg/utils"
)

// TopNNode 截取前 N 条并写入展示位置 label "position"（从 1 开始）。
// N <= 0 时使用 rctx.Limit，两者都未设置时不截断。
type TopNNode struct {
	N int
}

func (n *TopNNode) Name() string        { return "rerank.topn" }
func (n *TopNNode) Kind() pipeline.Kind { return pipeline.KindReRank }

func (n *TopNNode) limit(rctx *core.RecommendContext) int {
	if n.N > 0 {
		return n.N
	}
	if rctx != nil {
		return rctx.Limit
	}
	return 0
}

func (n *TopNNode) Process(
	_ context.Context,
	rctx *core.RecommendContext,
	items []*core.Item,
) ([]*core.Item, error) {
	if limit := n.limit(rctx); limit > 0 && len(items) > limit {
		items = items[:limit]
	}
	for i, it := range items {
		if it != nil {
			it.PutLabel("position", utils.Label{Value: strconv.Itoa(i + 1), Source: "rerank"})
		}
	}
	return items, nil
}
