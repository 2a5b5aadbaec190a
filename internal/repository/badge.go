package repository

import (
	"context"

	"face2geek/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// BadgeRepository reads the badge catalog, per-user badge metrics and awards.
type BadgeRepository interface {
	Catalog(ctx context.Context) ([]*models.Badge, error)
	EnsureCatalog(ctx context.Context, badges []*models.Badge) (int64, error)
	OwnedBadgeIDs(ctx context.Context, userID uint) ([]uint, error)
	ListForUser(ctx context.Context, userID uint) ([]*models.UserBadge, error)
	Award(ctx context.Context, userID, badgeID uint) (bool, error)

	CountSnippets(ctx context.Context, userID uint) (int64, error)
	CountLikesReceived(ctx context.Context, userID uint) (int64, error)
	CountCommentsWritten(ctx context.Context, userID uint) (int64, error)
	CountTopRated(ctx context.Context, userID uint, minAverage float64) (int64, error)
}

type badgeRepository struct {
	db *gorm.DB
}

// NewBadgeRepository creates a new badge repository
func NewBadgeRepository(db *gorm.DB) BadgeRepository {
	return &badgeRepository{db: db}
}

func (r *badgeRepository) Catalog(ctx context.Context) ([]*models.Badge, error) {
	var badges []*models.Badge
	if err := r.db.WithContext(ctx).Order("id ASC").Find(&badges).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return badges, nil
}

// EnsureCatalog inserts badges whose name is not yet present and returns how
// many were added. Existing entries are left as they are.
func (r *badgeRepository) EnsureCatalog(ctx context.Context, badges []*models.Badge) (int64, error) {
	if len(badges) == 0 {
		return 0, nil
	}
	res := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "name"}}, DoNothing: true}).
		Create(&badges)
	if res.Error != nil {
		return 0, models.NewInternalError(res.Error)
	}
	return res.RowsAffected, nil
}

func (r *badgeRepository) OwnedBadgeIDs(ctx context.Context, userID uint) ([]uint, error) {
	var ids []uint
	if err := r.db.WithContext(ctx).
		Model(&models.UserBadge{}).
		Where("user_id = ?", userID).
		Pluck("badge_id", &ids).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return ids, nil
}

func (r *badgeRepository) ListForUser(ctx context.Context, userID uint) ([]*models.UserBadge, error) {
	var items []*models.UserBadge
	if err := r.db.WithContext(ctx).
		Preload("Badge").
		Where("user_id = ?", userID).
		Order("awarded_at ASC, id ASC").
		Find(&items).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return items, nil
}

// Award grants a badge once. It reports whether this call granted it.
func (r *badgeRepository) Award(ctx context.Context, userID, badgeID uint) (bool, error) {
	created, err := insertIfAbsent(r.db.WithContext(ctx), &models.UserBadge{UserID: userID, BadgeID: badgeID})
	if err != nil {
		return false, models.NewInternalError(err)
	}
	return created, nil
}

func (r *badgeRepository) CountSnippets(ctx context.Context, userID uint) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&models.Snippet{}).Where("user_id = ?", userID).Count(&n).Error
	return n, err
}

func (r *badgeRepository) CountLikesReceived(ctx context.Context, userID uint) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&models.Like{}).
		Joins("JOIN snippets ON snippets.id = likes.snippet_id").
		Where("snippets.user_id = ?", userID).
		Count(&n).Error
	return n, err
}

func (r *badgeRepository) CountCommentsWritten(ctx context.Context, userID uint) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&models.Comment{}).Where("user_id = ?", userID).Count(&n).Error
	return n, err
}

// CountTopRated counts the user's snippets with at least one rating whose
// average is strictly above minAverage.
func (r *badgeRepository) CountTopRated(ctx context.Context, userID uint, minAverage float64) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Raw(`
		SELECT COUNT(*) FROM (
			SELECT ratings.snippet_id
			FROM ratings
			JOIN snippets ON snippets.id = ratings.snippet_id
			WHERE snippets.user_id = ?
			GROUP BY ratings.snippet_id
			HAVING AVG(ratings.score) > ?
		) AS top_rated`, userID, minAverage).Scan(&n).Error
	return n, err
}
