// Package similarity 基于最近行为的重合度查找相似用户。
package similarity

import (
	"cmp"
	"context"
	"slices"
	"time"

	"github.com/rushteam/artrec/core"
)

// Footprint 是用户在窗口内接触过的类别与艺术家集合。
type Footprint struct {
	Categories map[string]struct{}
	Artists    map[int64]struct{}
}

// Empty 表示没有任何类别与艺术家。
func (f Footprint) Empty() bool {
	return len(f.Categories) == 0 && len(f.Artists) == 0
}

// Jaccard 返回两个集合的交并比，并集为空时为 0。
func Jaccard[K comparable](a, b map[K]struct{}) float64 {
	if len(a) > len(b) {
		a, b = b, a
	}
	inter := 0
	for k := range a {
		if _, ok := b[k]; ok {
			inter++
		}
	}
	union := len(a) + len(b) - inter
	if union == 0 {
		return 0
	}
	return float64(inter) / float64(union)
}

// Similarity 是类别与艺术家两个 Jaccard 的算术平均，对称。
func Similarity(a, b Footprint) float64 {
	return (Jaccard(a.Categories, b.Categories) + Jaccard(a.Artists, b.Artists)) / 2
}

// Engine 对目录中的所有其他用户逐个计算相似度（O(users²)，适用于中小规模用户量）。
type Engine struct {
	Log   core.BehaviorLog
	Users core.UserDirectory

	// Window 统计窗口，默认 30 天
	Window time.Duration

	// Threshold 相似度阈值（严格大于），默认 0.3
	Threshold float64
}

func NewEngine(log core.BehaviorLog, users core.UserDirectory) *Engine {
	return &Engine{
		Log:       log,
		Users:     users,
		Window:    core.DefaultProfileWindow,
		Threshold: core.DefaultSimilarityThreshold,
	}
}

// Footprint 读取用户窗口内的行为足迹。
func (e *Engine) Footprint(ctx context.Context, userID int64, now time.Time) (Footprint, error) {
	fp := Footprint{
		Categories: make(map[string]struct{}),
		Artists:    make(map[int64]struct{}),
	}
	window := e.Window
	if window <= 0 {
		window = core.DefaultProfileWindow
	}
	for ev, err := range e.Log.Query(ctx, core.BehaviorQuery{UserID: userID, Since: now.Add(-window)}) {
		if err != nil {
			return Footprint{}, err
		}
		if ev.Category != "" {
			fp.Categories[ev.Category] = struct{}{}
		}
		if ev.ArtistID != 0 {
			fp.Artists[ev.ArtistID] = struct{}{}
		}
	}
	return fp, nil
}

// FindSimilarUsers 返回相似度超过阈值的用户，相似度降序；相同相似度保持目录顺序。
func (e *Engine) FindSimilarUsers(ctx context.Context, userID int64, now time.Time) ([]core.Neighbor, error) {
	target, err := e.Footprint(ctx, userID, now)
	if err != nil {
		return nil, err
	}
	if target.Empty() {
		return nil, nil
	}

	users, err := e.Users.Users(ctx)
	if err != nil {
		return nil, err
	}

	var out []core.Neighbor
	for _, other := range users {
		if other == userID {
			continue
		}
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		fp, err := e.Footprint(ctx, other, now)
		if err != nil {
			return nil, err
		}
		if sim := Similarity(target, fp); sim > e.Threshold {
			out = append(out, core.Neighbor{UserID: other, Similarity: sim})
		}
	}
	slices.SortStableFunc(out, func(a, b core.Neighbor) int {
		return cmp.Compare(b.Similarity, a.Similarity)
	})
	return out, nil
}

var _ core.NeighborFinder = (*Engine)(nil)
