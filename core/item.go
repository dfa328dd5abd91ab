package core

import (
	"slices"

	"github.com/rushteam/artrec/pkg/utils"
)

// Algorithm 是候选的来源算法标签。
type Algorithm string

const (
	AlgorithmContent       Algorithm = "content-based"
	AlgorithmCollaborative Algorithm = "collaborative"
	AlgorithmPopularity    Algorithm = "popularity"
)

// Priority 返回算法在合并时的优先级（越小越优先），用于确定展示的匹配分与算法标签。
func (a Algorithm) Priority() int {
	switch a {
	case AlgorithmContent:
		return 0
	case AlgorithmCollaborative:
		return 1
	case AlgorithmPopularity:
		return 2
	default:
		return 3
	}
}

// MaxReasons 是单条推荐最多展示的理由数。
const MaxReasons = 3

// Item 是推荐链路中的统一承载结构：作品、分数、理由、标签。
// Scores 记录各算法给出的原始分；Score 是合并后的排序分。
type Item struct {
	ID        int64
	Score     float64
	Scores    map[Algorithm]float64
	Algorithm Algorithm
	Reasons   []string
	Artwork   *Artwork
	Labels    map[string]utils.Label
}

func NewItem(id int64) *Item {
	return &Item{
		ID:     id,
		Scores: make(map[Algorithm]float64),
		Labels: make(map[string]utils.Label),
	}
}

// PutLabel 写入 Label；若已存在同名 key，则按默认 Merge 规则累积。
func (it *Item) PutLabel(key string, lbl utils.Label) {
	if it.Labels == nil {
		it.Labels = make(map[string]utils.Label)
	}
	if old, ok := it.Labels[key]; ok {
		it.Labels[key] = utils.MergeLabel(old, lbl)
		return
	}
	it.Labels[key] = lbl
}

// AddReasons 追加理由（去重，保持顺序）。
func (it *Item) AddReasons(reasons ...string) {
	for _, r := range reasons {
		if r == "" || slices.Contains(it.Reasons, r) {
			continue
		}
		it.Reasons = append(it.Reasons, r)
	}
}

// Category 返回作品类别；没有目录信息时返回空串。
func (it *Item) Category() string {
	if it.Artwork == nil {
		return ""
	}
	return it.Artwork.Category
}

// MatchScore 返回主算法给出的匹配分，限制在 [0, 100]。
func (it *Item) MatchScore() float64 {
	return ClampScore(it.Scores[it.Algorithm])
}
