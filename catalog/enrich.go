package catalog

import (
	"context"

	"github.com/rushteam/artrec/core"
	"github.com/rushteam/artrec/pipeline"
	"github.com/rushteam/artrec/pkg/utils"
)

// EnrichNode 为缺少作品信息的候选（协同过滤、热门兜底）从目录补全描述字段。
// 目录中查不到的作品保留，描述字段为空。
type EnrichNode struct {
	Catalog core.Catalog
}

func (n *EnrichNode) Name() string        { return "enrich.catalog" }
func (n *EnrichNode) Kind() pipeline.Kind { return pipeline.KindEnrich }

func (n *EnrichNode) Process(
	ctx context.Context,
	_ *core.RecommendContext,
	items []*core.Item,
) ([]*core.Item, error) {
	var missing []int64
	for _, it := range items {
		if it != nil && it.Artwork == nil {
			missing = append(missing, it.ID)
		}
	}
	if len(missing) == 0 || n.Catalog == nil {
		return items, nil
	}

	found, err := n.Catalog.BatchGet(ctx, missing)
	if err != nil {
		return nil, err
	}
	for _, it := range items {
		if it == nil || it.Artwork != nil {
			continue
		}
		if a, ok := found[it.ID]; ok {
			it.Artwork = a
			it.PutLabel("enrich", utils.Label{Value: "catalog", Source: "enrich"})
		}
	}
	return items, nil
}
