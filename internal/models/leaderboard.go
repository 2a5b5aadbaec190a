package models

// Leaderboard weights: score = likes*LikeWeight + snippets + views/ViewDivisor.
const (
	LeaderboardLikeWeight  = 5
	LeaderboardViewDivisor = 10
	LeaderboardSize        = 10
)

// LeaderboardEntry is one ranked user.
type LeaderboardEntry struct {
	UserID       uint    `json:"user_id"`
	Username     string  `json:"username"`
	FullName     string  `json:"full_name"`
	SnippetCount int64   `json:"snippet_count"`
	TotalLikes   int64   `json:"total_likes"`
	AvgRating    float64 `json:"avg_rating"`
	TotalViews   int64   `json:"total_views"`
	Score        int64   `json:"score"`
}

// ReputationScore applies the leaderboard formula with integer division on views.
func ReputationScore(likes, snippets, views int64) int64 {
	return likes*LeaderboardLikeWeight + snippets + views/LeaderboardViewDivisor
}
