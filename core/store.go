package core

import (
	"context"
	"errors"
)

// Store 是存储的领域接口。
//
// 行为日志、画像、缓存、作品目录都以适配器的形式构建在 Store 之上，
// 实现见 store.MemoryStore 与 store.RedisStore。
type Store interface {
	// Name 返回存储后端名称（用于日志/监控）
	Name() string

	// Get 读取单个 key 的值，不存在时返回 ErrStoreNotFound
	Get(ctx context.Context, key string) ([]byte, error)

	// Set 写入单个 key-value，ttl 单位为秒
	Set(ctx context.Context, key string, value []byte, ttl ...int) error

	// Delete 删除单个 key
	Delete(ctx context.Context, key string) error

	// BatchGet 批量读取（不存在的 key 不出现在结果中）
	BatchGet(ctx context.Context, keys []string) (map[string][]byte, error)

	// BatchSet 批量写入
	BatchSet(ctx context.Context, kvs map[string][]byte, ttl ...int) error

	// Close 关闭连接/释放资源
	Close() error
}

// KeyValueStore 在 Store 之上增加有序集合（行为时间线、热门计数、用户列表、黑名单）
// 与哈希表（作品元数据）。
//
// 有序集合的降序结果中，同分成员按 member 字典序降序排列（与 Redis ZREVRANGE 一致）。
type KeyValueStore interface {
	Store

	// ZAdd 向有序集合添加成员
	ZAdd(ctx context.Context, key string, score float64, member string) error

	// ZIncrBy 为成员的分数加上 increment，返回新分数
	ZIncrBy(ctx context.Context, key string, increment float64, member string) (float64, error)

	// ZRange 按排名获取有序集合成员（降序），stop 为 -1 表示到末尾
	ZRange(ctx context.Context, key string, start, stop int64) ([]string, error)

	// ZRangeWithScores 同 ZRange，同时返回分数
	ZRangeWithScores(ctx context.Context, key string, start, stop int64) ([]ScoredMember, error)

	// ZRevRangeByScore 获取分数在 [min, max] 内的成员（降序）
	ZRevRangeByScore(ctx context.Context, key string, min, max float64) ([]string, error)

	// HGet 读取 Hash 字段
	HGet(ctx context.Context, key, field string) ([]byte, error)

	// HSet 写入 Hash 字段
	HSet(ctx context.Context, key, field string, value []byte) error

	// HGetAll 读取整个 Hash
	HGetAll(ctx context.Context, key string) (map[string][]byte, error)
}

// ScoredMember 是有序集合中的一个成员。
type ScoredMember struct {
	Member string
	Score  float64
}

// ErrStoreNotFound 表示 key（或 Hash 字段）不存在，各实现统一返回它。
var ErrStoreNotFound = NewDomainError(ModuleStore, ErrorCodeNotFound, "store: key not found")

// IsStoreNotFound 检查错误链中是否有 ErrStoreNotFound
func IsStoreNotFound(err error) bool {
	return errors.Is(err, ErrStoreNotFound)
}
