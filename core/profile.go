package core

import (
	"slices"
	"time"
)

// PreferenceProfile 是用户偏好画像，每个用户至多一条。
//
// 画像完全由最近窗口（默认 30 天）内的行为事件推导，每次追踪行为后全量重算并覆盖，
// 不做增量合并。
//
//	字段                 作用
//	PreferredCategories  内容召回：类别匹配（最多 5 个，按频次降序）
//	PreferredPriceRange  内容召回：价格档位匹配（众数，默认 medium）
//	PreferredArtists     内容召回：艺术家匹配（最多 10 个，按频次降序）
type PreferenceProfile struct {
	UserID              int64      `json:"user_id"`
	PreferredCategories []string   `json:"preferred_categories"`
	PreferredPriceRange PriceRange `json:"preferred_price_range"`
	PreferredArtists    []int64    `json:"preferred_artists"`
	LastUpdated         time.Time  `json:"last_updated"`
}

// NewPreferenceProfile 创建一个空画像（价格档位取默认值）。
func NewPreferenceProfile(userID int64) *PreferenceProfile {
	return &PreferenceProfile{
		UserID:              userID,
		PreferredCategories: []string{},
		PreferredPriceRange: DefaultPriceRange,
		PreferredArtists:    []int64{},
	}
}

// PrefersCategory 检查类别是否在偏好类别中。
func (p *PreferenceProfile) PrefersCategory(category string) bool {
	if p == nil || category == "" {
		return false
	}
	return slices.Contains(p.PreferredCategories, category)
}

// PrefersArtist 检查艺术家是否在偏好艺术家中。
func (p *PreferenceProfile) PrefersArtist(artistID int64) bool {
	if p == nil || artistID == 0 {
		return false
	}
	return slices.Contains(p.PreferredArtists, artistID)
}

// PriceRangeOrDefault 返回偏好价格档位，未设置时返回默认值。
func (p *PreferenceProfile) PriceRangeOrDefault() PriceRange {
	if p == nil || p.PreferredPriceRange == "" {
		return DefaultPriceRange
	}
	return p.PreferredPriceRange
}
