package recall

import (
	"context"

	"github.com/rushteam/artrec/core"
)

// Collaborative 是基于用户的协同过滤召回源（User-CF）。
//
// 核心思想："兴趣相似的用户，喜欢相似的作品"
//
//  1. 通过 NeighborFinder 找到最相似的 MaxNeighbors 个用户
//  2. 每个相似用户喜欢 / 购买过的作品（去重，不限时间）各产出一个固定分候选
//
// 不同相似用户之间不去重，重复的作品由排序阶段合并。
type Collaborative struct {
	Neighbors core.NeighborFinder
	Log       core.BehaviorLog

	// MaxNeighbors 使用的相似用户数，默认 5
	MaxNeighbors int

	// Score 固定分，默认 75
	Score float64
}

func NewCollaborative(neighbors core.NeighborFinder, log core.BehaviorLog) *Collaborative {
	return &Collaborative{
		Neighbors:    neighbors,
		Log:          log,
		MaxNeighbors: core.DefaultMaxNeighbors,
		Score:        75,
	}
}

func (r *Collaborative) Name() string { return string(core.AlgorithmCollaborative) }

func (r *Collaborative) Recall(
	ctx context.Context,
	rctx *core.RecommendContext,
) ([]*core.Item, error) {
	if rctx == nil || r.Neighbors == nil || r.Log == nil {
		return nil, nil
	}
	neighbors, err := r.Neighbors.FindSimilarUsers(ctx, rctx.UserID, rctx.Now)
	if err != nil {
		return nil, err
	}
	if n := r.MaxNeighbors; n > 0 && len(neighbors) > n {
		neighbors = neighbors[:n]
	}

	var out []*core.Item
	for _, nb := range neighbors {
		ids, err := EngagedArtworks(ctx, r.Log, nb.UserID)
		if err != nil {
			return nil, err
		}
		for _, id := range ids {
			out = append(out, newScoredItem(id, core.AlgorithmCollaborative, r.Score, r.Name(), ReasonSimilarUsers))
		}
	}
	return out, nil
}

// EngagedArtworks 返回用户喜欢 / 购买过的作品 id（去重，按最近一次行为排序）。
func EngagedArtworks(ctx context.Context, log core.BehaviorLog, userID int64) ([]int64, error) {
	return artworkIDs(ctx, log, core.BehaviorQuery{UserID: userID, Actions: core.EngagementActions})
}

// PurchasedArtworks 返回用户购买过的全部作品 id 集合。
func PurchasedArtworks(ctx context.Context, log core.BehaviorLog, userID int64) (map[int64]struct{}, error) {
	ids, err := artworkIDs(ctx, log, core.BehaviorQuery{UserID: userID, Actions: []core.ActionKind{core.ActionPurchase}})
	if err != nil {
		return nil, err
	}
	out := make(map[int64]struct{}, len(ids))
	for _, id := range ids {
		out[id] = struct{}{}
	}
	return out, nil
}

func artworkIDs(ctx context.Context, log core.BehaviorLog, q core.BehaviorQuery) ([]int64, error) {
	seen := make(map[int64]struct{})
	var ids []int64
	for e, err := range log.Query(ctx, q) {
		if err != nil {
			return nil, err
		}
		if e.ArtworkID == 0 {
			continue
		}
		if _, ok := seen[e.ArtworkID]; ok {
			continue
		}
		seen[e.ArtworkID] = struct{}{}
		ids = append(ids, e.ArtworkID)
	}
	return ids, nil
}
