// Package profile 从最近的行为事件推导用户偏好画像。
package profile

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/rushteam/artrec/core"
	"github.com/rushteam/artrec/pkg/utils"
)

// Builder 全量重算并覆盖用户画像，不做增量合并。
type Builder struct {
	Log      core.BehaviorLog
	Profiles core.ProfileRepository

	// Window 是统计窗口，默认 30 天
	Window time.Duration

	// MaxCategories / MaxArtists 是画像中保留的数量上限，默认 5 / 10
	MaxCategories int
	MaxArtists    int

	Logger *zap.Logger
}

func NewBuilder(log core.BehaviorLog, profiles core.ProfileRepository) *Builder {
	return &Builder{
		Log:           log,
		Profiles:      profiles,
		Window:        core.DefaultProfileWindow,
		MaxCategories: core.MaxPreferredCategories,
		MaxArtists:    core.MaxPreferredArtists,
		Logger:        zap.NewNop(),
	}
}

// Compute 从 now 之前窗口内的事件计算画像（不写入）。
// 频次相同按在查询结果中首次出现的先后排序（即越近越靠前）。
func (b *Builder) Compute(ctx context.Context, userID int64, now time.Time) (*core.PreferenceProfile, error) {
	categories := utils.NewCounter[string]()
	prices := utils.NewCounter[core.PriceRange]()
	artists := utils.NewCounter[int64]()

	q := core.BehaviorQuery{UserID: userID, Since: now.Add(-b.window())}
	for e, err := range b.Log.Query(ctx, q) {
		if err != nil {
			return nil, err
		}
		if e.Category != "" {
			categories.Add(e.Category)
		}
		if e.PriceRange != "" {
			prices.Add(e.PriceRange)
		}
		if e.ArtistID != 0 {
			artists.Add(e.ArtistID)
		}
	}

	p := core.NewPreferenceProfile(userID)
	p.PreferredCategories = append(p.PreferredCategories, categories.MostCommon(b.maxCategories())...)
	p.PreferredArtists = append(p.PreferredArtists, artists.MostCommon(b.maxArtists())...)
	if top := prices.MostCommon(1); len(top) > 0 {
		p.PreferredPriceRange = top[0]
	}
	p.LastUpdated = now
	return p, nil
}

// Rebuild 重算画像并覆盖写入。
func (b *Builder) Rebuild(ctx context.Context, userID int64, now time.Time) (*core.PreferenceProfile, error) {
	p, err := b.Compute(ctx, userID, now)
	if err != nil {
		return nil, err
	}
	if err := b.Profiles.Upsert(ctx, p); err != nil {
		return nil, err
	}
	b.logger().Debug("preference profile rebuilt",
		zap.Int64("user_id", userID),
		zap.Strings("categories", p.PreferredCategories),
		zap.String("price_range", string(p.PreferredPriceRange)),
		zap.Int("artists", len(p.PreferredArtists)),
	)
	return p, nil
}

func (b *Builder) window() time.Duration {
	if b.Window <= 0 {
		return core.DefaultProfileWindow
	}
	return b.Window
}

func (b *Builder) maxCategories() int {
	if b.MaxCategories <= 0 {
		return core.MaxPreferredCategories
	}
	return b.MaxCategories
}

func (b *Builder) maxArtists() int {
	if b.MaxArtists <= 0 {
		return core.MaxPreferredArtists
	}
	return b.MaxArtists
}

func (b *Builder) logger() *zap.Logger {
	if b.Logger == nil {
		return zap.NewNop()
	}
	return b.Logger
}
