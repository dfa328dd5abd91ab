package core

import (
	"math"
	"time"
)

// RecommendationResult 是返回给调用方的一条推荐。
// 描述字段在目录中查不到作品时为空。
type RecommendationResult struct {
	ArtworkID  int64     `json:"artwork_id"`
	Title      string    `json:"title,omitempty"`
	ArtistName string    `json:"artist_name,omitempty"`
	Category   string    `json:"category,omitempty"`
	Price      float64   `json:"price,omitempty"`
	ImageURL   string    `json:"image_url,omitempty"`
	MatchScore float64   `json:"match_score"`
	FinalScore float64   `json:"final_score"`
	Reasons    []string  `json:"reasons"`
	Algorithm  Algorithm `json:"algorithm"`
}

// NewRecommendationResult 把链路中的 Item 转为对外结果。
func NewRecommendationResult(it *Item) RecommendationResult {
	reasons := it.Reasons
	if len(reasons) > MaxReasons {
		reasons = reasons[:MaxReasons]
	}
	res := RecommendationResult{
		ArtworkID:  it.ID,
		MatchScore: it.MatchScore(),
		FinalScore: it.Score,
		Reasons:    append([]string{}, reasons...),
		Algorithm:  it.Algorithm,
	}
	if a := it.Artwork; a != nil {
		res.Title = a.Title
		res.ArtistName = a.ArtistName
		res.Category = a.Category
		res.Price = a.Price
		res.ImageURL = a.ImageURL
	}
	return res
}

// CachedRecommendationSet 是某个用户最近一次计算的推荐结果。
type CachedRecommendationSet struct {
	UserID           int64                  `json:"user_id"`
	Recommendations  []RecommendationResult `json:"recommendations"`
	AlgorithmVersion string                 `json:"algorithm_version"`
	CreatedAt        time.Time              `json:"created_at"`
	ExpiresAt        time.Time              `json:"expires_at"`
}

// IsLive 判断缓存在 now 时刻是否仍然有效。
func (s *CachedRecommendationSet) IsLive(now time.Time) bool {
	return s != nil && now.Before(s.ExpiresAt)
}

// ClampScore 把分数限制在 [0, 100]。
func ClampScore(score float64) float64 {
	if math.IsNaN(score) {
		return 0
	}
	return math.Max(0, math.Min(100, score))
}
