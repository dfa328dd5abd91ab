package sqlstore

import (
	"time"

	"gorm.io/datatypes"

	"github.com/rushteam/artrec/core"
)

// behaviorEventRow 是行为事件表。时间同时保存为毫秒整数，用于范围查询与排序。
type behaviorEventRow struct {
	ID          string    `gorm:"primaryKey;size:36"`
	UserID      int64     `gorm:"index:idx_behavior_user_ts,priority:1;not null"`
	Action      string    `gorm:"size:32;index;not null"`
	ArtworkID   int64     `gorm:"index"`
	ArtistID    int64
	Category    string    `gorm:"size:100"`
	SearchQuery string    `gorm:"size:255"`
	PriceRange  string    `gorm:"size:16"`
	SessionID   string    `gorm:"size:100"`
	TimestampMs int64     `gorm:"index:idx_behavior_user_ts,priority:2;not null"`
	Timestamp   time.Time `gorm:"not null"`
}

func (behaviorEventRow) TableName() string { return "behavior_events" }

func newBehaviorEventRow(e core.BehaviorEvent) *behaviorEventRow {
	return &behaviorEventRow{
		ID:          e.ID,
		UserID:      e.UserID,
		Action:      string(e.Action),
		ArtworkID:   e.ArtworkID,
		ArtistID:    e.ArtistID,
		Category:    e.Category,
		SearchQuery: e.SearchQuery,
		PriceRange:  string(e.PriceRange),
		SessionID:   e.SessionID,
		TimestampMs: e.Timestamp.UnixMilli(),
		Timestamp:   e.Timestamp.UTC(),
	}
}

func (r *behaviorEventRow) event() core.BehaviorEvent {
	return core.BehaviorEvent{
		ID:          r.ID,
		UserID:      r.UserID,
		Action:      core.ActionKind(r.Action),
		ArtworkID:   r.ArtworkID,
		ArtistID:    r.ArtistID,
		Category:    r.Category,
		SearchQuery: r.SearchQuery,
		PriceRange:  core.PriceRange(r.PriceRange),
		SessionID:   r.SessionID,
		Timestamp:   r.Timestamp,
	}
}

// preferenceProfileRow 是偏好画像表，每个用户一行。
type preferenceProfileRow struct {
	UserID              int64                       `gorm:"primaryKey;autoIncrement:false"`
	PreferredCategories datatypes.JSONSlice[string] `gorm:"not null"`
	PreferredPriceRange string                      `gorm:"size:16;not null"`
	PreferredArtists    datatypes.JSONSlice[int64]  `gorm:"not null"`
	LastUpdated         time.Time
}

func (preferenceProfileRow) TableName() string { return "preference_profiles" }

func newPreferenceProfileRow(p *core.PreferenceProfile) *preferenceProfileRow {
	return &preferenceProfileRow{
		UserID:              p.UserID,
		PreferredCategories: datatypes.NewJSONSlice(nonNil(p.PreferredCategories)),
		PreferredPriceRange: string(p.PriceRangeOrDefault()),
		PreferredArtists:    datatypes.NewJSONSlice(nonNil(p.PreferredArtists)),
		LastUpdated:         p.LastUpdated.UTC(),
	}
}

func (r *preferenceProfileRow) profile() *core.PreferenceProfile {
	return &core.PreferenceProfile{
		UserID:              r.UserID,
		PreferredCategories: nonNil([]string(r.PreferredCategories)),
		PreferredPriceRange: core.PriceRange(r.PreferredPriceRange),
		PreferredArtists:    nonNil([]int64(r.PreferredArtists)),
		LastUpdated:         r.LastUpdated,
	}
}

// recommendationCacheRow 是推荐结果缓存表，每个用户至多一行。
type recommendationCacheRow struct {
	ID               uint           `gorm:"primaryKey"`
	UserID           int64          `gorm:"uniqueIndex;not null"`
	Recommendations  datatypes.JSON `gorm:"not null"`
	AlgorithmVersion string         `gorm:"size:32;not null"`
	CreatedAt        time.Time
	ExpiresAtMs      int64 `gorm:"index;not null"`
	ExpiresAt        time.Time
}

func (recommendationCacheRow) TableName() string { return "recommendation_cache" }

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
