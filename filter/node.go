package filter

import (
	"context"
	"fmt"
	"strconv"

	"github.com/rushteam/artrec/core"
	"github.com/rushteam/artrec/pipeline"
	"github.com/rushteam/artrec/pkg/utils"
)

// FilterNode 依次应用 Filters，任一 Filter 返回 true 即移除该候选。
// Filter 出错时整个请求失败，已购排除等规则不会因为读失败而放行。
// 每个 Filter 移除的条数记录在用户级 label "filtered" 中，格式为 name:count。
type FilterNode struct {
	Filters []Filter
}

func (n *FilterNode) Name() string        { return "filter" }
func (n *FilterNode) Kind() pipeline.Kind { return pipeline.KindFilter }

func (n *FilterNode) prepare(ctx context.Context, rctx *core.RecommendContext) ([]Filter, error) {
	active := make([]Filter, len(n.Filters))
	for i, f := range n.Filters {
		p, ok := f.(Preparer)
		if !ok {
			active[i] = f
			continue
		}
		prepared, err := p.Prepare(ctx, rctx)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", f.Name(), err)
		}
		active[i] = prepared
	}
	return active, nil
}

func (n *FilterNode) Process(
	ctx context.Context,
	rctx *core.RecommendContext,
	items []*core.Item,
) ([]*core.Item, error) {
	if len(n.Filters) == 0 || len(items) == 0 {
		return items, nil
	}
	active, err := n.prepare(ctx, rctx)
	if err != nil {
		return nil, err
	}

	dropped := make([]int, len(active))
	kept := items[:0:0]
	for _, it := range items {
		if it == nil {
			continue
		}
		drop := false
		for i, f := range active {
			hit, err := f.ShouldFilter(ctx, rctx, it)
			if err != nil {
				return nil, fmt.Errorf("%s: %w", f.Name(), err)
			}
			if hit {
				dropped[i]++
				drop = true
				break
			}
		}
		if !drop {
			kept = append(kept, it)
		}
	}

	if rctx != nil {
		for i, c := range dropped {
			if c > 0 {
				rctx.PutLabel("filtered", utils.Label{Value: n.Filters[i].Name() + ":" + strconv.Itoa(c), Source: "filter"})
			}
		}
	}
	return kept, nil
}
