// Package rank 合并各召回算法的候选并排序。
package rank

import (
	"context"
	"sort"
	"strconv"

	"github.com/rushteam/artrec/core"
	"github.com/rushteam/artrec/pipeline"
	"github.com/rushteam/artrec/pkg/utils"
)

// Blend 按作品 id 合并候选，final = Σ weight(algorithm) × score。
//   - 同一作品被同一算法多次召回时逐次累加（如多个相似用户都喜欢的作品），匹配分取第一次的原始分
//   - 理由按算法优先级拼接（内容 → 协同 → 热门）并去重
//   - 展示用的算法标签与匹配分取优先级最高的算法
//   - 写入 labels：rank_model
//   - 按 final 降序稳定排序，同分保持首次出现的顺序
type Blend struct {
	Weights map[core.Algorithm]float64
}

// DefaultWeights 内容 0.7，协同 0.3，热门兜底 1.0。
func DefaultWeights() map[core.Algorithm]float64 {
	return map[core.Algorithm]float64{
		core.AlgorithmContent:       core.DefaultContentWeight,
		core.AlgorithmCollaborative: core.DefaultCollaborativeWeight,
		core.AlgorithmPopularity:    core.DefaultPopularityWeight,
	}
}

func NewBlend() *Blend {
	return &Blend{Weights: DefaultWeights()}
}

func (n *Blend) Name() string        { return "rank.blend" }
func (n *Blend) Kind() pipeline.Kind { return pipeline.KindRank }

func (n *Blend) weight(a core.Algorithm) float64 {
	if w, ok := n.Weights[a]; ok {
		return w
	}
	return 1.0
}

type accumulator struct {
	item    *core.Item
	total   float64
	reasons map[core.Algorithm][]string
	algos   []core.Algorithm
}

func (n *Blend) Process(
	_ context.Context,
	_ *core.RecommendContext,
	items []*core.Item,
) ([]*core.Item, error) {
	if len(items) == 0 {
		return items, nil
	}

	byID := make(map[int64]*accumulator, len(items))
	order := make([]*accumulator, 0, len(items))
	for _, it := range items {
		if it == nil {
			continue
		}
		acc, ok := byID[it.ID]
		if !ok {
			merged := core.NewItem(it.ID)
			acc = &accumulator{item: merged, reasons: make(map[core.Algorithm][]string)}
			byID[it.ID] = acc
			order = append(order, acc)
		}
		if acc.item.Artwork == nil {
			acc.item.Artwork = it.Artwork
		}
		for k, v := range it.Labels {
			acc.item.PutLabel(k, v)
		}
		for algo, score := range it.Scores {
			if _, seen := acc.item.Scores[algo]; !seen {
				acc.item.Scores[algo] = score
				acc.algos = append(acc.algos, algo)
			}
			acc.total += n.weight(algo) * score
			acc.reasons[algo] = append(acc.reasons[algo], it.Reasons...)
		}
	}

	out := make([]*core.Item, 0, len(order))
	for _, acc := range order {
		it := acc.item
		sort.SliceStable(acc.algos, func(i, j int) bool {
			return acc.algos[i].Priority() < acc.algos[j].Priority()
		})
		for _, algo := range acc.algos {
			it.AddReasons(acc.reasons[algo]...)
		}
		if len(it.Reasons) > core.MaxReasons {
			it.Reasons = it.Reasons[:core.MaxReasons]
		}
		if len(acc.algos) > 0 {
			it.Algorithm = acc.algos[0]
		}
		it.Score = acc.total
		it.PutLabel("rank_model", utils.Label{Value: n.Name(), Source: "rank"})
		it.PutLabel("rank_algorithms", utils.Label{Value: strconv.Itoa(len(acc.algos)), Source: "rank"})
		out = append(out, it)
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Score > out[j].Score
	})
	return out, nil
}
