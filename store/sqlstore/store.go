// Package sqlstore 是基于 gorm 的关系型存储，实现行为日志、偏好画像与推荐缓存。
// 默认使用 sqlite，任何 gorm Dialector 均可接入。
package sqlstore

import (
	"context"
	"errors"
	"time"

	"github.com/goccy/go-json"
	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"

	"github.com/rushteam/artrec/behavior"
	"github.com/rushteam/artrec/core"
)

// Store 实现 core.BehaviorLog，并通过 Profiles() / Cache() 提供画像与缓存仓储。
type Store struct {
	db *gorm.DB
}

// Open 使用 dialector 打开数据库并自动建表。
func Open(dialector gorm.Dialector) (*Store, error) {
	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, unavailable("open", err)
	}
	return New(db)
}

// OpenSQLite 打开 sqlite 数据库，dsn 例如 "file:artrec.db" 或 ":memory:"。
func OpenSQLite(dsn string) (*Store, error) {
	s, err := Open(sqlite.Open(dsn))
	if err != nil {
		return nil, err
	}
	// 内存库每个连接都是独立的数据库
	if sqlDB, err := s.db.DB(); err == nil {
		sqlDB.SetMaxOpenConns(1)
	}
	return s, nil
}

// New 包装已有的 *gorm.DB 并自动建表。
func New(db *gorm.DB) (*Store, error) {
	if err := db.AutoMigrate(&behaviorEventRow{}, &preferenceProfileRow{}, &recommendationCacheRow{}); err != nil {
		return nil, unavailable("migrate", err)
	}
	return &Store{db: db}, nil
}

func (s *Store) Name() string { return "sql:" + s.db.Dialector.Name() }

func (s *Store) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// ---- core.BehaviorLog ----

func (s *Store) Append(ctx context.Context, e core.BehaviorEvent) error {
	if err := behavior.Validate(e); err != nil {
		return err
	}
	if e.ID == "" {
		id, err := uuid.NewV7()
		if err != nil {
			return core.WrapDomainError(core.ModuleBehavior, core.ErrorCodeInternalError, "behavior: new event id", err)
		}
		e.ID = id.String()
	}
	if e.Timestamp.IsZero() {
		e.Timestamp = time.Now()
	}
	if err := s.db.WithContext(ctx).Create(newBehaviorEventRow(e)).Error; err != nil {
		return unavailable("insert behavior event", err)
	}
	return nil
}

// Query 每次遍历都会执行一次查询，逐行扫描。
func (s *Store) Query(ctx context.Context, q core.BehaviorQuery) core.EventSeq {
	return func(yield func(core.BehaviorEvent, error) bool) {
		tx := s.db.WithContext(ctx).Model(&behaviorEventRow{}).Where("user_id = ?", q.UserID)
		if !q.Since.IsZero() {
			tx = tx.Where("timestamp_ms >= ?", q.Since.UnixMilli())
		}
		if len(q.Actions) > 0 {
			actions := make([]string, len(q.Actions))
			for i, a := range q.Actions {
				actions[i] = string(a)
			}
			tx = tx.Where("action IN ?", actions)
		}
		rows, err := tx.Order("timestamp_ms DESC").Order("id DESC").Rows()
		if err != nil {
			yield(core.BehaviorEvent{}, unavailable("query behavior events", err))
			return
		}
		defer rows.Close()

		for rows.Next() {
			var row behaviorEventRow
			if err := s.db.ScanRows(rows, &row); err != nil {
				yield(core.BehaviorEvent{}, unavailable("scan behavior event", err))
				return
			}
			e := row.event()
			if !q.Match(e) {
				continue
			}
			if !yield(e, nil) {
				return
			}
		}
		if err := rows.Err(); err != nil {
			yield(core.BehaviorEvent{}, unavailable("iterate behavior events", err))
		}
	}
}

func (s *Store) Users(ctx context.Context) ([]int64, error) {
	var users []int64
	err := s.db.WithContext(ctx).Model(&behaviorEventRow{}).
		Distinct("user_id").
		Order("user_id ASC").
		Pluck("user_id", &users).Error
	if err != nil {
		return nil, unavailable("list users", err)
	}
	return users, nil
}

func (s *Store) Popular(ctx context.Context) ([]core.PopularArtwork, error) {
	var rows []struct {
		ArtworkID int64
		Count     int64
	}
	err := s.db.WithContext(ctx).Model(&behaviorEventRow{}).
		Select("artwork_id, COUNT(*) AS count").
		Where("action IN ? AND artwork_id <> 0", []string{string(core.ActionLike), string(core.ActionPurchase)}).
		Group("artwork_id").
		Order("count DESC").
		Order("artwork_id ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, unavailable("popular artworks", err)
	}
	out := make([]core.PopularArtwork, len(rows))
	for i, r := range rows {
		out[i] = core.PopularArtwork{ArtworkID: r.ArtworkID, Count: r.Count}
	}
	return out, nil
}

// ---- core.ProfileRepository ----

// Profiles 返回画像仓储视图。
func (s *Store) Profiles() core.ProfileRepository { return profileView{s} }

// Cache 返回推荐缓存视图。
func (s *Store) Cache() core.ResultCache { return cacheView{s} }

type profileView struct{ s *Store }

func (v profileView) Get(ctx context.Context, userID int64) (*core.PreferenceProfile, error) {
	var row preferenceProfileRow
	err := v.s.db.WithContext(ctx).Where("user_id = ?", userID).First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, core.ErrProfileNotFound
	}
	if err != nil {
		return nil, unavailable("get profile", err)
	}
	return row.profile(), nil
}

func (v profileView) Upsert(ctx context.Context, p *core.PreferenceProfile) error {
	if p == nil {
		return nil
	}
	err := v.s.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"preferred_categories", "preferred_price_range", "preferred_artists", "last_updated"}),
		}).
		Create(newPreferenceProfileRow(p)).Error
	if err != nil {
		return unavailable("upsert profile", err)
	}
	return nil
}

// ---- core.ResultCache ----

type cacheView struct{ s *Store }

func (v cacheView) Get(ctx context.Context, userID int64, now time.Time) (*core.CachedRecommendationSet, error) {
	var row recommendationCacheRow
	err := v.s.db.WithContext(ctx).
		Where("user_id = ? AND expires_at_ms > ?", userID, now.UnixMilli()).
		First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, core.ErrCacheMiss
	}
	if err != nil {
		return nil, unavailable("get cache", err)
	}
	var recs []core.RecommendationResult
	if err := json.Unmarshal(row.Recommendations, &recs); err != nil {
		return nil, core.WrapDomainError(core.ModuleCache, core.ErrorCodeInternalError, "cache: decode recommendations", err)
	}
	set := &core.CachedRecommendationSet{
		UserID:           row.UserID,
		Recommendations:  recs,
		AlgorithmVersion: row.AlgorithmVersion,
		CreatedAt:        row.CreatedAt,
		ExpiresAt:        row.ExpiresAt,
	}
	if !set.IsLive(now) {
		return nil, core.ErrCacheMiss
	}
	return set, nil
}

func (v cacheView) Put(ctx context.Context, set *core.CachedRecommendationSet) error {
	data, err := json.Marshal(set.Recommendations)
	if err != nil {
		return core.WrapDomainError(core.ModuleCache, core.ErrorCodeInternalError, "cache: encode recommendations", err)
	}
	row := &recommendationCacheRow{
		UserID:           set.UserID,
		Recommendations:  data,
		AlgorithmVersion: set.AlgorithmVersion,
		CreatedAt:        set.CreatedAt.UTC(),
		ExpiresAtMs:      set.ExpiresAt.UnixMilli(),
		ExpiresAt:        set.ExpiresAt.UTC(),
	}
	err = v.s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_id = ?", set.UserID).Delete(&recommendationCacheRow{}).Error; err != nil {
			return err
		}
		return tx.Create(row).Error
	})
	if err != nil {
		return unavailable("put cache", err)
	}
	return nil
}

func unavailable(op string, err error) error {
	return core.WrapDomainError(core.ModuleStore, core.ErrorCodeUnavailable, "sql: "+op, err)
}

var (
	_ core.BehaviorLog       = (*Store)(nil)
	_ core.ProfileRepository = profileView{}
	_ core.ResultCache       = cacheView{}
)
