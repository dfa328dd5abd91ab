package recall

import (
	"context"
	"fmt"

	"github.com/rushteam/artrec/core"
	"github.com/rushteam/artrec/pkg/utils"
)

// Source 表示一个可复用的召回源（内容匹配 / 协同过滤 / 热门）。
// 你可以把它理解为“可并发 fan-out 的策略单元”。
type Source interface {
	Name() string
	Recall(ctx context.Context, rctx *core.RecommendContext) ([]*core.Item, error)
}

// 推荐理由文案。
const (
	ReasonPreferredPrice  = "Matches your preferred price range"
	ReasonPreferredArtist = "From artists you like"
	ReasonSimilarUsers    = "Liked by users with similar tastes"
	ReasonPopular         = "Popular choice among buyers"
)

// ReasonCategory 返回类别匹配的理由文案。
func ReasonCategory(category string) string {
	return fmt.Sprintf("Similar to your interest in %s", category)
}

// newScoredItem 创建带单个算法分数的候选。
func newScoredItem(id int64, algo core.Algorithm, score float64, source string, reasons ...string) *core.Item {
	it := core.NewItem(id)
	it.Algorithm = algo
	it.Scores[algo] = score
	it.Score = score
	it.AddReasons(reasons...)
	it.PutLabel("recall_source", utils.Label{Value: source, Source: "recall"})
	return it
}
