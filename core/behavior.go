package core

import (
	"iter"
	"slices"
	"time"
)

// ActionKind 是用户行为类型。
type ActionKind string

const (
	ActionView         ActionKind = "view"
	ActionLike         ActionKind = "like"
	ActionPurchase     ActionKind = "purchase"
	ActionSearch       ActionKind = "search"
	ActionCartAdd      ActionKind = "cart_add"
	ActionCartRemove   ActionKind = "cart_remove"
	ActionFollowArtist ActionKind = "follow_artist"
)

// ActionKinds 返回所有合法的行为类型。
func ActionKinds() []ActionKind {
	return []ActionKind{
		ActionView, ActionLike, ActionPurchase, ActionSearch,
		ActionCartAdd, ActionCartRemove, ActionFollowArtist,
	}
}

// Valid 判断是否为合法的行为类型。
func (k ActionKind) Valid() bool {
	return slices.Contains(ActionKinds(), k)
}

// IsEngagement 表示强正反馈（喜欢 / 购买），用于协同过滤与热门统计。
func (k ActionKind) IsEngagement() bool {
	return k == ActionLike || k == ActionPurchase
}

// EngagementActions 是协同过滤和热门兜底使用的行为集合。
var EngagementActions = []ActionKind{ActionLike, ActionPurchase}

// PriceRange 是作品价格档位，由作品目录预先分档，引擎不推断分档边界。
type PriceRange string

const (
	PriceLow    PriceRange = "low"
	PriceMedium PriceRange = "medium"
	PriceHigh   PriceRange = "high"
)

// DefaultPriceRange 是没有价格信号时的默认偏好。
const DefaultPriceRange = PriceMedium

// Valid 判断是否为合法的价格档位。
func (p PriceRange) Valid() bool {
	return p == PriceLow || p == PriceMedium || p == PriceHigh
}

// BehaviorEvent 是一次用户行为记录，追加写入后不再修改。
// 可选字段以零值表示缺省（ID 为 0、字符串为空）。
type BehaviorEvent struct {
	ID          string     `json:"id"`
	UserID      int64      `json:"user_id"`
	Action      ActionKind `json:"action_type"`
	ArtworkID   int64      `json:"artwork_id,omitempty"`
	ArtistID    int64      `json:"artist_id,omitempty"`
	Category    string     `json:"category,omitempty"`
	SearchQuery string     `json:"search_query,omitempty"`
	PriceRange  PriceRange `json:"price_range,omitempty"`
	SessionID   string     `json:"session_id,omitempty"`
	Timestamp   time.Time  `json:"timestamp"`
}

// BehaviorQuery 描述一次行为查询。
type BehaviorQuery struct {
	UserID int64

	// Since 时间下界（包含），零值表示不限
	Since time.Time

	// Actions 行为类型过滤，为空表示不过滤
	Actions []ActionKind
}

// Match 判断事件是否满足查询条件。
func (q BehaviorQuery) Match(e BehaviorEvent) bool {
	if q.UserID != 0 && e.UserID != q.UserID {
		return false
	}
	if !q.Since.IsZero() && e.Timestamp.Before(q.Since) {
		return false
	}
	if len(q.Actions) > 0 && !slices.Contains(q.Actions, e.Action) {
		return false
	}
	return true
}

// EventSeq 是行为事件的惰性序列，按时间降序产出，可重复遍历（每次遍历重新读取）。
// 读取失败时产出 (零值, err) 并结束。
type EventSeq = iter.Seq2[BehaviorEvent, error]

// ErrorSeq 返回只产出一个错误的 EventSeq。
func ErrorSeq(err error) EventSeq {
	return func(yield func(BehaviorEvent, error) bool) {
		yield(BehaviorEvent{}, err)
	}
}

// CollectEvents 遍历序列并收集全部事件，遇到错误立即返回。
func CollectEvents(seq EventSeq) ([]BehaviorEvent, error) {
	var out []BehaviorEvent
	for e, err := range seq {
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, nil
}

// PopularArtwork 是全站喜欢 / 购买次数统计。
type PopularArtwork struct {
	ArtworkID int64
	Count     int64
}
