package recall

import (
	"cmp"
	"context"
	"math"
	"slices"

	"github.com/rushteam/artrec/core"
)

// ContentBased 是基于内容的召回源：用户画像与作品属性直接匹配。
//
// 打分：作品热度分起步，
//   - 类别在偏好类别中 +CategoryBonus（默认 40）
//   - 价格档位等于偏好档位 +PriceBonus（默认 30）
//   - 艺术家在偏好艺术家中 +ArtistBonus（默认 20）
//
// 每命中一条规则追加一条理由；总分封顶 MaxScore（默认 95），只输出严格大于 MinScore（默认 50）的作品，按分数降序。
type ContentBased struct {
	Catalog core.Catalog

	CategoryBonus float64
	PriceBonus    float64
	ArtistBonus   float64
	MaxScore      float64
	MinScore      float64
}

func NewContentBased(catalog core.Catalog) *ContentBased {
	return &ContentBased{
		Catalog:       catalog,
		CategoryBonus: 40,
		PriceBonus:    30,
		ArtistBonus:   20,
		MaxScore:      95,
		MinScore:      50,
	}
}

func (r *ContentBased) Name() string { return string(core.AlgorithmContent) }

// Score 计算单个作品的内容匹配分与理由。
func (r *ContentBased) Score(p *core.PreferenceProfile, a *core.Artwork) (float64, []string) {
	score := a.PopularityScore
	var reasons []string
	if p.PrefersCategory(a.Category) {
		score += r.CategoryBonus
		reasons = append(reasons, ReasonCategory(a.Category))
	}
	if a.PriceRange != "" && a.PriceRange == p.PriceRangeOrDefault() {
		score += r.PriceBonus
		reasons = append(reasons, ReasonPreferredPrice)
	}
	if p.PrefersArtist(a.ArtistID) {
		score += r.ArtistBonus
		reasons = append(reasons, ReasonPreferredArtist)
	}
	return math.Min(score, r.MaxScore), reasons
}

func (r *ContentBased) Recall(
	ctx context.Context,
	rctx *core.RecommendContext,
) ([]*core.Item, error) {
	if rctx == nil || rctx.Profile == nil || r.Catalog == nil {
		return nil, nil
	}
	artworks, err := r.Catalog.List(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]*core.Item, 0, len(artworks))
	for _, a := range artworks {
		if a == nil {
			continue
		}
		score, reasons := r.Score(rctx.Profile, a)
		if score <= r.MinScore {
			continue
		}
		it := newScoredItem(a.ID, core.AlgorithmContent, score, r.Name(), reasons...)
		it.Artwork = a
		out = append(out, it)
	}
	slices.SortStableFunc(out, func(a, b *core.Item) int {
		return cmp.Compare(b.Score, a.Score)
	})
	return out, nil
}
