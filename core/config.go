package core

import "time"

// 默认参数，对应线上 v1 算法。
const (
	DefaultAlgorithmVersion = "v1"

	DefaultProfileWindow = 30 * 24 * time.Hour
	DefaultCacheTTL      = 6 * time.Hour
	DefaultLimit         = 12

	MaxPreferredCategories = 5
	MaxPreferredArtists    = 10

	DefaultSimilarityThreshold = 0.3
	DefaultMaxNeighbors        = 5

	DefaultContentWeight       = 0.7
	DefaultCollaborativeWeight = 0.3
	DefaultPopularityWeight    = 1.0

	DefaultDiversityFloor = 6
)

// Clock 提供当前时间，测试中可注入固定时钟。
type Clock interface {
	Now() time.Time
}

// ClockFunc 把普通函数适配为 Clock。
type ClockFunc func() time.Time

func (f ClockFunc) Now() time.Time { return f() }

// SystemClock 使用系统时间。
var SystemClock Clock = ClockFunc(time.Now)
