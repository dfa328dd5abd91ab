// Package builders 注册内置的后处理 Node，供 YAML/JSON 配置引用。
package builders

import (
	"fmt"

	"github.com/rushteam/artrec/config"
	"github.com/rushteam/artrec/core"
	"github.com/rushteam/artrec/filter"
	"github.com/rushteam/artrec/pipeline"
	"github.com/rushteam/artrec/pkg/conv"
	"github.com/rushteam/artrec/rank"
	"github.com/rushteam/artrec/rerank"
)

func init() {
	config.Register("rank.blend", BuildBlendNode)
	config.Register("filter", BuildFilterNode)
	config.Register("rerank.diversity", BuildDiversityNode)
	config.Register("rerank.topn", BuildTopNNode)
}

// BuildBlendNode 配置：{weights: {content-based: 0.7, collaborative: 0.3}}，未列出的算法使用默认权重。
func BuildBlendNode(cfg map[string]any) (pipeline.Node, error) {
	weights, err := conv.FloatMap(cfg["weights"])
	if err != nil {
		return nil, fmt.Errorf("rank.blend weights: %w", err)
	}
	blend := rank.NewBlend()
	for algo, w := range weights {
		blend.Weights[core.Algorithm(algo)] = w
	}
	return blend, nil
}

// BuildDiversityNode 配置：{label_key: "", min_fill: 6}
func BuildDiversityNode(cfg map[string]any) (pipeline.Node, error) {
	return &rerank.Diversity{
		LabelKey: conv.Get(cfg, "label_key", ""),
		MinFill:  conv.Int(cfg, "min_fill", core.DefaultDiversityFloor),
	}, nil
}

// BuildTopNNode 配置：{n: 0}，0 表示使用请求的条数。
func BuildTopNNode(cfg map[string]any) (pipeline.Node, error) {
	return &rerank.TopNNode{N: conv.Int(cfg, "n", 0)}, nil
}

// BuildFilterNode 配置：{filters: [{type: purchased}, {type: blacklist, item_ids: [..]}, ...]}
func BuildFilterNode(cfg map[string]any) (pipeline.Node, error) {
	raw, ok := cfg["filters"].([]any)
	if !ok {
		return nil, fmt.Errorf("filter: filters must be a list")
	}

	filters := make([]filter.Filter, 0, len(raw))
	for i, entry := range raw {
		fc, ok := entry.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("filter: entry %d must be a mapping", i)
		}
		f, err := buildFilter(fc)
		if err != nil {
			return nil, fmt.Errorf("filter: entry %d: %w", i, err)
		}
		filters = append(filters, f)
	}
	return &filter.FilterNode{Filters: filters}, nil
}

func buildFilter(fc map[string]any) (filter.Filter, error) {
	switch typ := conv.Get(fc, "type", ""); typ {
	case "purchased":
		return &filter.PurchasedFilter{}, nil
	case "blacklist":
		return filter.NewBlacklistFilter(conv.Int64s(fc["item_ids"]), nil, ""), nil
	case "availability":
		return &filter.AvailabilityFilter{DropUnknown: conv.Get(fc, "drop_unknown", false)}, nil
	case "expr":
		expr := conv.Get(fc, "expr", "")
		if expr == "" {
			return nil, fmt.Errorf("expr filter requires expr")
		}
		return filter.NewExprFilter(expr)
	default:
		return nil, fmt.Errorf("unknown filter type %q", typ)
	}
}
