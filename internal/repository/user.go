// Package repository implements the data access layer for the application.
package repository

import (
	"context"

	"face2geek/internal/database"
	"face2geek/internal/models"

	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"
)

// UserRepository defines persistence operations for users and their profiles.
type UserRepository interface {
	GetByID(ctx context.Context, id uint) (*models.User, error)
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	Create(ctx context.Context, user *models.User) error
	ListProfiles(ctx context.Context, limit, offset int) ([]*models.Profile, error)
	UpdateProfile(ctx context.Context, profile *models.Profile) error
	Stats(ctx context.Context, userID uint) (*models.ProfileStats, error)
}

type userRepository struct {
	db *gorm.DB
}

// NewUserRepository returns a new UserRepository implementation.
func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) GetByID(ctx context.Context, id uint) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).Preload("Profile").First(&user, id).Error; err != nil {
		return nil, lookupError(err, "User", id)
	}
	return &user, nil
}

func (r *userRepository) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).
		Preload("Profile").
		Joins("JOIN profiles ON profiles.user_id = users.id").
		Where("profiles.username = ?", username).
		First(&user).Error; err != nil {
		return nil, lookupError(err, "Profile", username)
	}
	return &user, nil
}

func (r *userRepository) Create(ctx context.Context, user *models.User) error {
	if err := r.db.WithContext(ctx).Create(user).Error; err != nil {
		if database.IsUniqueViolation(err) {
			return models.NewValidationError("User already exists")
		}
		return models.NewInternalError(err)
	}
	return nil
}

func (r *userRepository) ListProfiles(ctx context.Context, limit, offset int) ([]*models.Profile, error) {
	var profiles []*models.Profile
	if err := r.db.WithContext(ctx).
		Order("created_at DESC, user_id DESC").
		Limit(clampLimit(limit, 20, 100)).
		Offset(offset).
		Find(&profiles).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return profiles, nil
}

// UpdateProfile writes the editable profile fields. A taken username is a
// validation error.
func (r *userRepository) UpdateProfile(ctx context.Context, profile *models.Profile) error {
	res := r.db.WithContext(ctx).
		Model(&models.Profile{}).
		Where("user_id = ?", profile.UserID).
		Updates(map[string]interface{}{
			"username":    profile.Username,
			"full_name":   profile.FullName,
			"bio":         profile.Bio,
			"github_url":  profile.GithubURL,
			"website_url": profile.WebsiteURL,
			"twitter_url": profile.TwitterURL,
		})
	if res.Error != nil {
		if database.IsUniqueViolation(res.Error) {
			return models.NewValidationError("Username is already taken")
		}
		return models.NewInternalError(res.Error)
	}
	if res.RowsAffected == 0 {
		return models.NewNotFoundError("Profile", profile.UserID)
	}
	return nil
}

// Stats runs the four profile counters concurrently.
func (r *userRepository) Stats(ctx context.Context, userID uint) (*models.ProfileStats, error) {
	var stats models.ProfileStats
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return r.db.WithContext(gctx).Model(&models.Snippet{}).
			Where("user_id = ?", userID).Count(&stats.SnippetsCount).Error
	})
	g.Go(func() error {
		return r.db.WithContext(gctx).Model(&models.Like{}).
			Joins("JOIN snippets ON snippets.id = likes.snippet_id").
			Where("snippets.user_id = ?", userID).Count(&stats.LikesReceived).Error
	})
	g.Go(func() error {
		return r.db.WithContext(gctx).Model(&models.Follow{}).
			Where("followed_id = ?", userID).Count(&stats.FollowerCount).Error
	})
	g.Go(func() error {
		return r.db.WithContext(gctx).Model(&models.Follow{}).
			Where("follower_id = ?", userID).Count(&stats.FollowingCount).Error
	})

	if err := g.Wait(); err != nil {
		return nil, models.NewInternalError(err)
	}
	return &stats, nil
}
