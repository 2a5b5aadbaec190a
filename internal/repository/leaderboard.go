package repository

import (
	"context"

	"face2geek/internal/models"

	"gorm.io/gorm"
)

// LeaderboardRepository ranks users by reputation.
type LeaderboardRepository interface {
	Top(ctx context.Context, limit int) ([]*models.LeaderboardEntry, error)
}

type leaderboardRepository struct {
	db *gorm.DB
}

// NewLeaderboardRepository creates a new leaderboard repository
func NewLeaderboardRepository(db *gorm.DB) LeaderboardRepository {
	return &leaderboardRepository{db: db}
}

// Each metric is its own correlated subquery so joining likes, ratings and
// snippets never multiplies rows. Users without a profile still rank, with an
// empty username.
const leaderboardQuery = `
SELECT m.*, (m.total_likes * ? + m.snippet_count + m.total_views / ?) AS score
FROM (
	SELECT
		users.id AS user_id,
		COALESCE(profiles.username, '') AS username,
		COALESCE(profiles.full_name, '') AS full_name,
		(SELECT COUNT(*) FROM snippets s WHERE s.user_id = users.id) AS snippet_count,
		(SELECT COUNT(*) FROM likes l JOIN snippets s ON s.id = l.snippet_id WHERE s.user_id = users.id) AS total_likes,
		(SELECT CAST(COALESCE(SUM(s.views), 0) AS BIGINT) FROM snippets s WHERE s.user_id = users.id) AS total_views,
		CAST((SELECT COALESCE(AVG(r.score), 0) FROM ratings r JOIN snippets s ON s.id = r.snippet_id WHERE s.user_id = users.id) AS FLOAT) AS avg_rating
	FROM users
	LEFT JOIN profiles ON profiles.user_id = users.id
) AS m
ORDER BY score DESC, m.user_id ASC
LIMIT ?`

func (r *leaderboardRepository) Top(ctx context.Context, limit int) ([]*models.LeaderboardEntry, error) {
	entries := []*models.LeaderboardEntry{}
	if err := r.db.WithContext(ctx).
		Raw(leaderboardQuery, models.LeaderboardLikeWeight, models.LeaderboardViewDivisor, clampLimit(limit, models.LeaderboardSize, 100)).
		Scan(&entries).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return entries, nil
}
