// Package artrec 是艺术品交易平台的推荐引擎。
//
// 设计要点：
// - 行为驱动：每次行为上报后同步重算偏好画像（最近 30 天）
// - Pipeline-first：召回（内容匹配 / 协同过滤 / 热门兜底）→ 合并 → 补全 → 过滤 → 多样性 → 截断
// - 存储可替换：行为日志、画像、结果缓存都是接口，内置内存 / Redis / gorm 实现
package artrec

import (
	"github.com/rushteam/artrec/engine"
	"github.com/rushteam/artrec/pipeline"
)

// 轻量 facade：便于直接 import "artrec" 使用核心类型。
type (
	Engine            = engine.Engine
	Config            = engine.Config
	Deps              = engine.Deps
	TrackRequest      = engine.TrackRequest
	RecommendRequest  = engine.RecommendRequest
	RecommendResponse = engine.RecommendResponse
	Pipeline          = pipeline.Pipeline
	Node              = pipeline.Node
)

var (
	New           = engine.New
	DefaultConfig = engine.DefaultConfig
	LoadConfig    = engine.LoadConfig
)
