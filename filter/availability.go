package filter

import (
	"context"

	"github.com/rushteam/artrec/core"
)

// AvailabilityFilter 过滤掉不可售的作品（草稿、已售出、下架）。
// 目录中查不到的作品默认保留，DropUnknown 为 true 时一并过滤。
type AvailabilityFilter struct {
	DropUnknown bool
}

func (f *AvailabilityFilter) Name() string { return "filter.availability" }

func (f *AvailabilityFilter) ShouldFilter(
	_ context.Context,
	_ *core.RecommendContext,
	item *core.Item,
) (bool, error) {
	if item.Artwork == nil {
		return f.DropUnknown, nil
	}
	return !item.Artwork.Available(), nil
}
