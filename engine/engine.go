// Package engine 是推荐引擎的请求边界：行为上报、推荐查询、偏好查询。
//
// 推荐链路：
//
//	cache.Get ─ 命中 → 返回
//	   │ 未命中
//	   ▼
//	profile.Get ─ 有画像 → recall.fanout(content-based, collaborative) ┐
//	            └ 无画像 → recall.popularity                          ┤
//	                                                                   ▼
//	rank.blend → enrich.catalog → filter(purchased) → 后处理链 → 截断 → cache.Put
package engine

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/rushteam/artrec/catalog"
	"github.com/rushteam/artrec/config"
	_ "github.com/rushteam/artrec/config/builders"
	"github.com/rushteam/artrec/core"
	"github.com/rushteam/artrec/filter"
	"github.com/rushteam/artrec/pipeline"
	"github.com/rushteam/artrec/profile"
	"github.com/rushteam/artrec/rank"
	"github.com/rushteam/artrec/recall"
	"github.com/rushteam/artrec/rerank"
	"github.com/rushteam/artrec/similarity"
)

// Deps 是引擎依赖的存储与外部目录。
type Deps struct {
	Log      core.BehaviorLog
	Profiles core.ProfileRepository
	Cache    core.ResultCache
	Catalog  core.Catalog

	// Users 枚举协同过滤的候选用户，为 nil 时使用 Log.Users
	Users core.UserDirectory

	// Neighbors 为 nil 时使用 similarity.Engine 全量扫描
	Neighbors core.NeighborFinder

	// Blacklist 是运营黑名单（可选），按 Config.BlacklistKey 读取
	Blacklist filter.BlacklistStore
}

// Option 是 Engine 的可选配置。
type Option func(*Engine)

// WithClock 注入时钟（测试中用于控制缓存过期与统计窗口）。
func WithClock(c core.Clock) Option {
	return func(e *Engine) {
		if c != nil {
			e.clock = c
		}
	}
}

func WithLogger(l *zap.Logger) Option {
	return func(e *Engine) {
		if l != nil {
			e.logger = l
		}
	}
}

func WithMetrics(m *Metrics) Option {
	return func(e *Engine) {
		if m != nil {
			e.metrics = m
		}
	}
}

// Engine 是推荐引擎。并发安全：所有状态都在存储中。
type Engine struct {
	cfg     Config
	deps    Deps
	clock   core.Clock
	logger  *zap.Logger
	metrics *Metrics

	builder      *profile.Builder
	personalized *pipeline.Pipeline
	fallback     *pipeline.Pipeline
}

// New 创建引擎并按配置组装两条推荐 Pipeline。
func New(cfg Config, deps Deps, opts ...Option) (*Engine, error) {
	if deps.Log == nil || deps.Profiles == nil || deps.Cache == nil || deps.Catalog == nil {
		return nil, fmt.Errorf("engine: log, profiles, cache and catalog are required")
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("engine: %w", err)
	}

	e := &Engine{
		cfg:     cfg,
		deps:    deps,
		clock:   core.SystemClock,
		logger:  zap.NewNop(),
		metrics: NewMetrics(nil),
	}
	for _, opt := range opts {
		opt(e)
	}

	if e.deps.Users == nil {
		e.deps.Users = deps.Log
	}
	if e.deps.Neighbors == nil {
		sim := similarity.NewEngine(deps.Log, e.deps.Users)
		sim.Window = cfg.profileWindow()
		sim.Threshold = cfg.SimilarityThreshold
		e.deps.Neighbors = sim
	}

	e.builder = profile.NewBuilder(deps.Log, deps.Profiles)
	e.builder.Window = cfg.profileWindow()
	e.builder.Logger = e.logger

	post, err := e.postNodes()
	if err != nil {
		return nil, fmt.Errorf("engine: %w", err)
	}

	blend := rank.NewBlend()
	for algo, w := range cfg.weights() {
		blend.Weights[algo] = w
	}
	enrich := &catalog.EnrichNode{Catalog: deps.Catalog}

	collab := recall.NewCollaborative(e.deps.Neighbors, deps.Log)
	if cfg.MaxNeighbors > 0 {
		collab.MaxNeighbors = cfg.MaxNeighbors
	}
	fanout := &recall.Fanout{
		Sources: []recall.Source{recall.NewContentBased(deps.Catalog), collab},
		Timeout: cfg.RecallTimeout,
	}

	hooks := []pipeline.Hook{e.metrics.Hook()}
	e.personalized = (&pipeline.Pipeline{Hooks: hooks}).Append(fanout, blend, enrich).Append(post...)
	e.fallback = (&pipeline.Pipeline{Hooks: hooks}).Append(recall.NewPopularity(deps.Log), blend, enrich).Append(post...)
	return e, nil
}

// postNodes 返回合并之后的业务规则：已购（与黑名单）过滤总是第一个，其余来自配置或默认的 diversity → topn。
func (e *Engine) postNodes() ([]pipeline.Node, error) {
	filters := []filter.Filter{&filter.PurchasedFilter{}}
	if e.deps.Blacklist != nil {
		filters = append(filters, filter.NewBlacklistFilter(nil, e.deps.Blacklist, e.cfg.blacklistKey()))
	}
	nodes := []pipeline.Node{&filter.FilterNode{Filters: filters}}
	if spec := e.cfg.Pipeline; spec != nil && len(spec.Nodes) > 0 {
		p, err := spec.Build(config.DefaultFactory())
		if err != nil {
			return nil, err
		}
		return append(nodes, p.Nodes...), nil
	}
	return append(nodes,
		&rerank.Diversity{MinFill: e.cfg.DiversityFloor},
		&rerank.TopNNode{},
	), nil
}

// AlgorithmVersion 返回当前算法版本号。
func (e *Engine) AlgorithmVersion() string { return e.cfg.algorithmVersion() }

// Track 记录一次行为并同步重算该用户的偏好画像。
func (e *Engine) Track(ctx context.Context, req TrackRequest) (err error) {
	defer func() {
		e.metrics.TrackEvents.WithLabelValues(string(req.Action), outcome(err)).Inc()
	}()

	if err := validateTrack(req); err != nil {
		return err
	}
	now := e.clock.Now()
	if err := e.deps.Log.Append(ctx, req.Event(now)); err != nil {
		return fmt.Errorf("track: append event: %w", err)
	}
	if _, err := e.builder.Rebuild(ctx, req.UserID, now); err != nil {
		return fmt.Errorf("track: rebuild profile: %w", err)
	}
	return nil
}

// Recommend 返回用户的推荐列表：优先读缓存，未命中时计算并写回缓存。
// 除参数错误外的所有失败（包括 Node 中的 panic）都转换为 INTERNAL_ERROR。
func (e *Engine) Recommend(ctx context.Context, req RecommendRequest) (resp *RecommendResponse, err error) {
	path := "personalized"
	defer func() {
		if r := recover(); r != nil {
			e.logger.Error("recommend panic",
				zap.Int64("user_id", req.UserID),
				zap.Any("panic", r),
				zap.Stack("stack"),
			)
			resp, err = nil, internalError(fmt.Errorf("panic: %v", r))
		}
		e.metrics.RecommendRequests.WithLabelValues(path, outcome(err)).Inc()
	}()

	if req.UserID <= 0 {
		return nil, core.NewDomainError(core.ModuleEngine, core.ErrorCodeInvalidInput, "recommend: user_id must be positive")
	}
	limit := req.Limit
	if limit <= 0 {
		limit = e.cfg.defaultLimit()
	}
	now := e.clock.Now()

	cached, err := e.deps.Cache.Get(ctx, req.UserID, now)
	switch {
	case err == nil:
		path = "cache"
		purchased, err := recall.PurchasedArtworks(ctx, e.deps.Log, req.UserID)
		if err != nil {
			return nil, internalError(fmt.Errorf("load purchased: %w", err))
		}
		recs := withoutPurchased(cached.Recommendations, purchased)
		if len(recs) > limit {
			recs = recs[:limit]
		}
		return newRecommendResponse(recs, cached.AlgorithmVersion), nil
	case !errors.Is(err, core.ErrCacheMiss):
		e.logger.Warn("read recommendation cache failed, recomputing",
			zap.Int64("user_id", req.UserID),
			zap.Error(err),
		)
	}

	rctx := &core.RecommendContext{UserID: req.UserID, Limit: limit, Now: now}
	pl := e.personalized
	p, err := e.deps.Profiles.Get(ctx, req.UserID)
	switch {
	case err == nil:
		rctx.Profile = p
	case errors.Is(err, core.ErrProfileNotFound):
		path = "fallback"
		pl = e.fallback
	default:
		return nil, internalError(fmt.Errorf("load profile: %w", err))
	}

	if rctx.Purchased, err = recall.PurchasedArtworks(ctx, e.deps.Log, req.UserID); err != nil {
		return nil, internalError(fmt.Errorf("load purchased: %w", err))
	}

	items, err := pl.Run(ctx, rctx, nil)
	if err != nil {
		return nil, internalError(err)
	}
	if len(items) > limit {
		items = items[:limit]
	}

	recs := make([]core.RecommendationResult, 0, len(items))
	for _, it := range items {
		recs = append(recs, core.NewRecommendationResult(it))
	}

	version := e.cfg.algorithmVersion()
	set := &core.CachedRecommendationSet{
		UserID:           req.UserID,
		Recommendations:  recs,
		AlgorithmVersion: version,
		CreatedAt:        now,
		ExpiresAt:        now.Add(e.cfg.cacheTTL()),
	}
	if err := e.deps.Cache.Put(ctx, set); err != nil {
		e.metrics.CacheWriteFailures.Inc()
		e.logger.Warn("write recommendation cache failed",
			zap.Int64("user_id", req.UserID),
			zap.Error(err),
		)
	}

	e.logger.Debug("recommendations computed",
		zap.Int64("user_id", req.UserID),
		zap.String("path", path),
		zap.Int("count", len(recs)),
	)
	return newRecommendResponse(recs, version), nil
}

// Preferences 返回用户画像与最近窗口内的行为统计。
func (e *Engine) Preferences(ctx context.Context, userID int64) (*PreferencesResponse, error) {
	if userID <= 0 {
		return nil, core.NewDomainError(core.ModuleEngine, core.ErrorCodeInvalidInput, "preferences: user_id must be positive")
	}
	p, err := e.deps.Profiles.Get(ctx, userID)
	if errors.Is(err, core.ErrProfileNotFound) {
		return &PreferencesResponse{Insights: defaultInsights()}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("preferences: load profile: %w", err)
	}

	insights := Insights{
		FavoriteCategories:   append([]string{}, p.PreferredCategories...),
		PreferredPriceRange:  p.PriceRangeOrDefault(),
		FollowedArtistsCount: len(p.PreferredArtists),
	}
	q := core.BehaviorQuery{
		UserID:  userID,
		Since:   e.clock.Now().Add(-e.cfg.profileWindow()),
		Actions: []core.ActionKind{core.ActionView, core.ActionLike, core.ActionPurchase},
	}
	for ev, err := range e.deps.Log.Query(ctx, q) {
		if err != nil {
			return nil, fmt.Errorf("preferences: query events: %w", err)
		}
		switch ev.Action {
		case core.ActionView:
			insights.TotalViews++
		case core.ActionLike:
			insights.TotalLikes++
		case core.ActionPurchase:
			insights.TotalPurchases++
		}
	}
	return &PreferencesResponse{Preferences: p, Insights: insights}, nil
}

// withoutPurchased 去掉缓存写入之后才购买的作品，不修改缓存中的切片。
func withoutPurchased(recs []core.RecommendationResult, purchased map[int64]struct{}) []core.RecommendationResult {
	if len(purchased) == 0 {
		return recs
	}
	out := make([]core.RecommendationResult, 0, len(recs))
	for _, r := range recs {
		if _, ok := purchased[r.ArtworkID]; !ok {
			out = append(out, r)
		}
	}
	return out
}

func internalError(err error) error {
	return core.WrapDomainError(core.ModuleEngine, core.ErrorCodeInternalError, "recommend: internal error", err)
}
