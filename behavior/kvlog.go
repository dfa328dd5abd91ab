// Package behavior 实现只追加的用户行为日志。
package behavior

import (
	"cmp"
	"context"
	"math"
	"slices"
	"strconv"
	"time"

	"github.com/goccy/go-json"
	"github.com/google/uuid"

	"github.com/rushteam/artrec/core"
)

// KVLog 是基于 core.KeyValueStore 的行为日志（MemoryStore / RedisStore）。
//
// Key 布局：
//
//	{KeyPrefix}:user:{userID}  有序集合，score 为毫秒时间戳，member 为事件 JSON
//	{KeyPrefix}:users          有序集合，score 与 member 均为 userID
//	{KeyPrefix}:popular        有序集合，member 为作品 id，score 为喜欢 + 购买次数
type KVLog struct {
	store     core.KeyValueStore
	KeyPrefix string
}

// NewKVLog 创建行为日志，keyPrefix 为空时使用 "behavior"。
func NewKVLog(s core.KeyValueStore, keyPrefix ...string) *KVLog {
	prefix := "behavior"
	if len(keyPrefix) > 0 && keyPrefix[0] != "" {
		prefix = keyPrefix[0]
	}
	return &KVLog{store: s, KeyPrefix: prefix}
}

func (l *KVLog) userKey(userID int64) string {
	return l.KeyPrefix + ":user:" + strconv.FormatInt(userID, 10)
}

func (l *KVLog) usersKey() string   { return l.KeyPrefix + ":users" }
func (l *KVLog) popularKey() string { return l.KeyPrefix + ":popular" }

// Append 追加一条事件。缺省的 ID 使用 UUIDv7（同一毫秒内也按创建顺序排列），缺省时间取当前时间。
func (l *KVLog) Append(ctx context.Context, e core.BehaviorEvent) error {
	if err := Validate(e); err != nil {
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

	data, err := json.Marshal(e)
	if err != nil {
		return core.WrapDomainError(core.ModuleBehavior, core.ErrorCodeInternalError, "behavior: encode event", err)
	}
	if err := l.store.ZAdd(ctx, l.userKey(e.UserID), float64(e.Timestamp.UnixMilli()), string(data)); err != nil {
		return err
	}
	uid := strconv.FormatInt(e.UserID, 10)
	if err := l.store.ZAdd(ctx, l.usersKey(), float64(e.UserID), uid); err != nil {
		return err
	}
	if e.Action.IsEngagement() && e.ArtworkID != 0 {
		if _, err := l.store.ZIncrBy(ctx, l.popularKey(), 1, strconv.FormatInt(e.ArtworkID, 10)); err != nil {
			return err
		}
	}
	return nil
}

// Query 每次遍历都会重新读取存储。
func (l *KVLog) Query(ctx context.Context, q core.BehaviorQuery) core.EventSeq {
	return func(yield func(core.BehaviorEvent, error) bool) {
		lower := math.Inf(-1)
		if !q.Since.IsZero() {
			lower = float64(q.Since.UnixMilli())
		}
		members, err := l.store.ZRevRangeByScore(ctx, l.userKey(q.UserID), lower, math.Inf(1))
		if err != nil {
			yield(core.BehaviorEvent{}, err)
			return
		}
		for _, m := range members {
			var e core.BehaviorEvent
			if err := json.Unmarshal([]byte(m), &e); err != nil {
				yield(core.BehaviorEvent{}, core.WrapDomainError(core.ModuleBehavior, core.ErrorCodeInternalError, "behavior: decode event", err))
				return
			}
			if !q.Match(e) {
				continue
			}
			if !yield(e, nil) {
				return
			}
		}
	}
}

// Users 返回有过行为的用户，按 id 升序。
func (l *KVLog) Users(ctx context.Context) ([]int64, error) {
	members, err := l.store.ZRangeWithScores(ctx, l.usersKey(), 0, -1)
	if err != nil {
		return nil, err
	}
	users := make([]int64, 0, len(members))
	for _, m := range members {
		users = append(users, int64(m.Score))
	}
	slices.Sort(users)
	return users, nil
}

// Popular 返回全站喜欢 / 购买排行，次数降序，同次数按作品 id 升序。
func (l *KVLog) Popular(ctx context.Context) ([]core.PopularArtwork, error) {
	members, err := l.store.ZRangeWithScores(ctx, l.popularKey(), 0, -1)
	if err != nil {
		return nil, err
	}
	out := make([]core.PopularArtwork, 0, len(members))
	for _, m := range members {
		id, err := strconv.ParseInt(m.Member, 10, 64)
		if err != nil {
			continue
		}
		out = append(out, core.PopularArtwork{ArtworkID: id, Count: int64(m.Score)})
	}
	SortPopular(out)
	return out, nil
}

// SortPopular 次数降序，同次数按作品 id 升序。
func SortPopular(p []core.PopularArtwork) {
	slices.SortFunc(p, func(a, b core.PopularArtwork) int {
		if c := cmp.Compare(b.Count, a.Count); c != 0 {
			return c
		}
		return cmp.Compare(a.ArtworkID, b.ArtworkID)
	})
}

// Validate 检查事件是否格式正确：必须有用户与合法的行为类型，价格档位如有须合法。
func Validate(e core.BehaviorEvent) error {
	if e.UserID <= 0 {
		return core.NewDomainError(core.ModuleBehavior, core.ErrorCodeInvalidInput, "behavior: user_id is required")
	}
	if !e.Action.Valid() {
		return core.NewDomainError(core.ModuleBehavior, core.ErrorCodeInvalidInput, "behavior: invalid action_type "+strconv.Quote(string(e.Action)))
	}
	if e.PriceRange != "" && !e.PriceRange.Valid() {
		return core.NewDomainError(core.ModuleBehavior, core.ErrorCodeInvalidInput, "behavior: invalid price_range "+strconv.Quote(string(e.PriceRange)))
	}
	return nil
}

var _ core.BehaviorLog = (*KVLog)(nil)
