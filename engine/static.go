package engine

import "github.com/rushteam/artrec/core"

// StaticAlgorithmVersion 是匿名访客静态列表的版本号。
const StaticAlgorithmVersion = "static-v1"

var staticRecommendations = []core.RecommendationResult{
	{
		ArtworkID: 1, Title: "Abstract Art Vibes", ArtistName: "Mira Sen", Category: "abstract", Price: 15000,
		ImageURL:   "https://images.unsplash.com/photo-1541961017774-22349e4a1262?w=500&h=500&fit=crop&crop=center",
		MatchScore: 85, FinalScore: 85, Reasons: []string{"Similar to your interest in abstract art"},
		Algorithm: core.AlgorithmContent,
	},
	{
		ArtworkID: 2, Title: "Nature's Flow", ArtistName: "Arjun Desai", Category: "landscape", Price: 12000,
		ImageURL:   "https://images.unsplash.com/photo-1506905925346-21bda4d32df4?w=500&h=500&fit=crop&crop=center",
		MatchScore: 78, FinalScore: 78, Reasons: []string{"From artists you like"},
		Algorithm: core.AlgorithmCollaborative,
	},
	{
		ArtworkID: 3, Title: "Digital Dreamscape", ArtistName: "Ananya Rao", Category: "digital", Price: 8000,
		ImageURL:   "https://images.unsplash.com/photo-1557683316-973673baf926?w=500&h=500&fit=crop&crop=center",
		MatchScore: 92, FinalScore: 92, Reasons: []string{"Popular choice among buyers"},
		Algorithm: core.AlgorithmPopularity,
	},
	{
		ArtworkID: 4, Title: "Urban Canvas", ArtistName: "Priya Sharma", Category: "street", Price: 9500,
		ImageURL:   "https://images.unsplash.com/photo-1513475382585-d06e58bcb0e0?w=500&h=500&fit=crop&crop=center",
		MatchScore: 88, FinalScore: 88, Reasons: []string{"Trending in your area"},
		Algorithm: core.AlgorithmContent,
	},
	{
		ArtworkID: 5, Title: "Ocean Depths", ArtistName: "Rajesh Kumar", Category: "abstract", Price: 18000,
		ImageURL:   "https://images.unsplash.com/photo-1578662996442-48f60103fc96?w=500&h=500&fit=crop&crop=center",
		MatchScore: 76, FinalScore: 76, Reasons: []string{"Similar to your liked artworks"},
		Algorithm: core.AlgorithmCollaborative,
	},
	{
		ArtworkID: 6, Title: "Geometric Harmony", ArtistName: "Sneha Patel", Category: "geometric", Price: 11000,
		ImageURL:   "https://images.unsplash.com/photo-1558618666-fcd25c85cd64?w=500&h=500&fit=crop&crop=center",
		MatchScore: 91, FinalScore: 91, Reasons: []string{"Highly rated by similar users"},
		Algorithm: core.AlgorithmPopularity,
	},
}

// StaticRecommendations 返回给未登录访客的固定列表（不读取任何存储）。
// limit <= 0 时返回全部。
func StaticRecommendations(limit int) *RecommendResponse {
	n := len(staticRecommendations)
	if limit > 0 && limit < n {
		n = limit
	}
	out := make([]core.RecommendationResult, n)
	for i := range out {
		r := staticRecommendations[i]
		r.Reasons = append([]string{}, r.Reasons...)
		out[i] = r
	}
	return newRecommendResponse(out, StaticAlgorithmVersion)
}
