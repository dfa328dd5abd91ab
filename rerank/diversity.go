// Package rerank 在排序结果上做多样性与截断。
package rerank

import (
	"context"

	"github.com/rushteam/artrec/core"
	"github.com/rushteam/artrec/pipeline"
)

// Diversity 是类别多样性重排：按顺序遍历，类别未出现过或已保留数不足 MinFill 时保留，否则丢弃。
// MinFill 允许前若干条出现重复类别以凑够最少条数。
// 类别来源优先级：
// - label[LabelKey] 的第一个取值（LabelKey 非空时）
// - 作品目录中的类别
// 类别未知（空串）的作品视为同一个类别。
type Diversity struct {
	LabelKey string
	MinFill  int // 默认 6；负数表示严格去重
}

func NewDiversity() *Diversity {
	return &Diversity{MinFill: core.DefaultDiversityFloor}
}

func (n *Diversity) Name() string {
	return "rerank.diversity"
}

func (n *Diversity) Kind() pipeline.Kind {
	return pipeline.KindReRank
}

func (n *Diversity) category(it *core.Item) string {
	if n.LabelKey != "" {
		if vals := it.Labels[n.LabelKey].Values(); len(vals) > 0 {
			return vals[0]
		}
	}
	return it.Category()
}

func (n *Diversity) Process(
	_ context.Context,
	_ *core.RecommendContext,
	items []*core.Item,
) ([]*core.Item, error) {
	if len(items) == 0 {
		return items, nil
	}

	minFill := n.MinFill
	if minFill == 0 {
		minFill = core.DefaultDiversityFloor
	}

	seen := make(map[string]bool, 32)
	out := make([]*core.Item, 0, len(items))

	for _, it := range items {
		if it == nil {
			continue
		}
		cate := n.category(it)
		if seen[cate] && len(out) >= minFill {
			continue
		}
		seen[cate] = true
		out = append(out, it)
	}

	return out, nil
}
