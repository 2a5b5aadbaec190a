package repository

import (
	"context"

	"face2geek/internal/models"

	"gorm.io/gorm"
)

// EngagementRepository stores the toggleable relationships: follows, likes
// and ratings. Each toggle runs insert-first inside one transaction so the
// unique keys arbitrate concurrent requests.
type EngagementRepository interface {
	ToggleFollow(ctx context.Context, followerID, followedID uint) (bool, error)
	FollowStatus(ctx context.Context, viewerID, userID uint) (*models.FollowStatus, error)
	FolloweeIDs(ctx context.Context, userID uint) ([]uint, error)
	ToggleLike(ctx context.Context, userID, snippetID uint) (*models.LikeResult, error)
	LikeStatus(ctx context.Context, viewerID, snippetID uint) (*models.LikeStatus, error)
	UpsertRating(ctx context.Context, userID, snippetID uint, score int) (*models.Rating, bool, error)
	RatingSummary(ctx context.Context, snippetID uint) (*models.RatingSummary, error)
}

type engagementRepository struct {
	db *gorm.DB
}

// NewEngagementRepository creates a new engagement repository
func NewEngagementRepository(db *gorm.DB) EngagementRepository {
	return &engagementRepository{db: db}
}

// ToggleFollow creates the follower -> followed edge or removes it when it
// already exists. It returns the resulting following state.
func (r *engagementRepository) ToggleFollow(ctx context.Context, followerID, followedID uint) (bool, error) {
	var following bool
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		created, err := insertIfAbsent(tx, &models.Follow{FollowerID: followerID, FollowedID: followedID})
		if err != nil {
			return err
		}
		if created {
			following = true
			return nil
		}
		return tx.Where("follower_id = ? AND followed_id = ?", followerID, followedID).
			Delete(&models.Follow{}).Error
	})
	if err != nil {
		return false, models.NewInternalError(err)
	}
	return following, nil
}

func (r *engagementRepository) FollowStatus(ctx context.Context, viewerID, userID uint) (*models.FollowStatus, error) {
	var status models.FollowStatus
	db := r.db.WithContext(ctx)

	if err := db.Model(&models.Follow{}).Where("followed_id = ?", userID).Count(&status.FollowerCount).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	if err := db.Model(&models.Follow{}).Where("follower_id = ?", userID).Count(&status.FollowingCount).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	if viewerID != 0 && viewerID != userID {
		var n int64
		if err := db.Model(&models.Follow{}).
			Where("follower_id = ? AND followed_id = ?", viewerID, userID).
			Count(&n).Error; err != nil {
			return nil, models.NewInternalError(err)
		}
		status.IsFollowing = n > 0
	}
	return &status, nil
}

func (r *engagementRepository) FolloweeIDs(ctx context.Context, userID uint) ([]uint, error) {
	var ids []uint
	if err := r.db.WithContext(ctx).
		Model(&models.Follow{}).
		Where("follower_id = ?", userID).
		Pluck("followed_id", &ids).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return ids, nil
}

// ToggleLike flips the like edge and returns the new state with the snippet's
// like count as seen by the same transaction.
func (r *engagementRepository) ToggleLike(ctx context.Context, userID, snippetID uint) (*models.LikeResult, error) {
	var result models.LikeResult
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		created, err := insertIfAbsent(tx, &models.Like{UserID: userID, SnippetID: snippetID})
		if err != nil {
			return err
		}
		if created {
			result.Liked = true
		} else if err := tx.Where("user_id = ? AND snippet_id = ?", userID, snippetID).
			Delete(&models.Like{}).Error; err != nil {
			return err
		}
		return tx.Model(&models.Like{}).Where("snippet_id = ?", snippetID).Count(&result.LikesCount).Error
	})
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return &result, nil
}

func (r *engagementRepository) LikeStatus(ctx context.Context, viewerID, snippetID uint) (*models.LikeStatus, error) {
	var status models.LikeStatus
	db := r.db.WithContext(ctx)
	if err := db.Model(&models.Like{}).Where("snippet_id = ?", snippetID).Count(&status.Count).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	if viewerID != 0 {
		var n int64
		if err := db.Model(&models.Like{}).
			Where("user_id = ? AND snippet_id = ?", viewerID, snippetID).
			Count(&n).Error; err != nil {
			return nil, models.NewInternalError(err)
		}
		status.UserLiked = n > 0
	}
	return &status, nil
}

// UpsertRating inserts the user's rating or updates its score in place. The
// boolean reports whether a new rating row was created.
func (r *engagementRepository) UpsertRating(ctx context.Context, userID, snippetID uint, score int) (*models.Rating, bool, error) {
	rating := models.Rating{UserID: userID, SnippetID: snippetID, Score: score}
	var created bool
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var err error
		created, err = insertIfAbsent(tx, &rating)
		if err != nil || created {
			return err
		}
		if err := tx.Model(&models.Rating{}).
			Where("user_id = ? AND snippet_id = ?", userID, snippetID).
			Update("score", score).Error; err != nil {
			return err
		}
		rating = models.Rating{}
		return tx.Where("user_id = ? AND snippet_id = ?", userID, snippetID).First(&rating).Error
	})
	if err != nil {
		return nil, false, models.NewInternalError(err)
	}
	return &rating, created, nil
}

func (r *engagementRepository) RatingSummary(ctx context.Context, snippetID uint) (*models.RatingSummary, error) {
	var summary models.RatingSummary
	if err := r.db.WithContext(ctx).
		Model(&models.Rating{}).
		Select("CAST(COALESCE(AVG(score), 0) AS FLOAT) AS average, COUNT(*) AS count").
		Where("snippet_id = ?", snippetID).
		Scan(&summary).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return &summary, nil
}
