package engine

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/rushteam/artrec/core"
)

// TrackRequest 是一次行为上报。
type TrackRequest struct {
	UserID      int64           `json:"user_id" validate:"gt=0"`
	Action      core.ActionKind `json:"action_type" validate:"required,oneof=view like purchase search cart_add cart_remove follow_artist"`
	ArtworkID   int64           `json:"artwork_id,omitempty" validate:"gte=0"`
	ArtistID    int64           `json:"artist_id,omitempty" validate:"gte=0"`
	Category    string          `json:"category,omitempty" validate:"max=64"`
	SearchQuery string          `json:"search_query,omitempty" validate:"max=512"`
	PriceRange  core.PriceRange `json:"price_range,omitempty" validate:"omitempty,oneof=low medium high"`
	SessionID   string          `json:"session_id,omitempty" validate:"max=128"`
}

// Event 转为行为事件，时间戳由引擎的 Clock 决定。
func (r TrackRequest) Event(now time.Time) core.BehaviorEvent {
	return core.BehaviorEvent{
		UserID:      r.UserID,
		Action:      r.Action,
		ArtworkID:   r.ArtworkID,
		ArtistID:    r.ArtistID,
		Category:    r.Category,
		SearchQuery: r.SearchQuery,
		PriceRange:  r.PriceRange,
		SessionID:   r.SessionID,
		Timestamp:   now,
	}
}

// RecommendRequest 是一次推荐请求；Limit <= 0 时使用默认条数。
type RecommendRequest struct {
	UserID int64 `json:"user_id"`
	Limit  int   `json:"limit"`
}

// RecommendResponse 是推荐结果。
type RecommendResponse struct {
	Recommendations  []core.RecommendationResult `json:"recommendations"`
	AlgorithmVersion string                      `json:"algorithm_version"`
	TotalCount       int                         `json:"total_count"`
}

func newRecommendResponse(recs []core.RecommendationResult, version string) *RecommendResponse {
	if recs == nil {
		recs = []core.RecommendationResult{}
	}
	return &RecommendResponse{
		Recommendations:  recs,
		AlgorithmVersion: version,
		TotalCount:       len(recs),
	}
}

// Insights 是最近窗口内的行为统计。
type Insights struct {
	TotalViews           int             `json:"total_views"`
	TotalLikes           int             `json:"total_likes"`
	TotalPurchases       int             `json:"total_purchases"`
	FavoriteCategories   []string        `json:"favorite_categories"`
	PreferredPriceRange  core.PriceRange `json:"preferred_price_range"`
	FollowedArtistsCount int             `json:"followed_artists_count"`
}

// PreferencesResponse 是用户偏好与行为统计；没有画像时 Preferences 为 nil，统计取默认值。
type PreferencesResponse struct {
	Preferences *core.PreferenceProfile `json:"preferences"`
	Insights    Insights                `json:"insights"`
}

func defaultInsights() Insights {
	return Insights{
		FavoriteCategories:  []string{},
		PreferredPriceRange: core.DefaultPriceRange,
	}
}

var validate = validator.New()

// validateTrack 校验上报参数，返回带字段名的 INVALID_INPUT 错误。
func validateTrack(r TrackRequest) error {
	err := validate.Struct(r)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return core.WrapDomainError(core.ModuleEngine, core.ErrorCodeInvalidInput, "track: invalid request", err)
	}
	fields := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		fields = append(fields, fmt.Sprintf("%s(%s)", fe.Field(), fe.Tag()))
	}
	return core.WrapDomainError(core.ModuleEngine, core.ErrorCodeInvalidInput,
		"track: invalid "+strings.Join(fields, ", "), err)
}
