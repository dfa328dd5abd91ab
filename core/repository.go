package core

import (
	"context"
	"time"
)

// BehaviorLog 是行为日志的领域接口（只追加）。
//
// 实现：
//   - behavior.KVLog（基于 KeyValueStore：MemoryStore / RedisStore）
//   - sqlstore.Store（基于 gorm）
type BehaviorLog interface {
	// Append 追加一条行为事件；可选字段缺省不是错误
	Append(ctx context.Context, event BehaviorEvent) error

	// Query 返回满足条件的事件序列，按时间降序
	Query(ctx context.Context, q BehaviorQuery) EventSeq

	// Users 返回有过行为的用户（按 id 升序）
	Users(ctx context.Context) ([]int64, error)

	// Popular 返回全站喜欢 / 购买次数排行（次数降序，同次数按作品 id 升序）
	Popular(ctx context.Context) ([]PopularArtwork, error)
}

// ProfileRepository 存储偏好画像，每个用户至多一条。
type ProfileRepository interface {
	// Get 读取画像，不存在时返回 ErrProfileNotFound
	Get(ctx context.Context, userID int64) (*PreferenceProfile, error)

	// Upsert 覆盖写入画像
	Upsert(ctx context.Context, profile *PreferenceProfile) error
}

// ResultCache 存储每个用户最近一次的推荐结果。
type ResultCache interface {
	// Get 返回 now 时刻仍有效的缓存，否则返回 ErrCacheMiss
	Get(ctx context.Context, userID int64, now time.Time) (*CachedRecommendationSet, error)

	// Put 删除用户已有的缓存并写入新的一条
	Put(ctx context.Context, set *CachedRecommendationSet) error
}

// Catalog 是外部作品目录。
type Catalog interface {
	// List 返回候选作品（顺序稳定）
	List(ctx context.Context) ([]*Artwork, error)

	// BatchGet 批量读取作品，不存在的 id 不出现在结果中
	BatchGet(ctx context.Context, ids []int64) (map[int64]*Artwork, error)
}

// UserDirectory 是外部用户目录，协同过滤通过它枚举“其他用户”。
type UserDirectory interface {
	Users(ctx context.Context) ([]int64, error)
}

// Neighbor 是一个相似用户。
type Neighbor struct {
	UserID     int64
	Similarity float64
}

// NeighborFinder 查找相似用户，按相似度降序。
// 当前实现是全量扫描，后续可替换为近似近邻索引而不影响调用方。
type NeighborFinder interface {
	FindSimilarUsers(ctx context.Context, userID int64, now time.Time) ([]Neighbor, error)
}
