package service

import (
	"context"
	"strings"

	"face2geek/internal/cache"
	"face2geek/internal/models"
	"face2geek/internal/repository"
	"face2geek/internal/validation"

	"github.com/redis/go-redis/v9"
)

// UpdateProfileInput is the body of PUT /profile. Nil fields are left unchanged.
type UpdateProfileInput struct {
	Username   *string `json:"username"`
	FullName   *string `json:"full_name"`
	Bio        *string `json:"bio"`
	GithubURL  *string `json:"github_url"`
	WebsiteURL *string `json:"website_url"`
	TwitterURL *string `json:"twitter_url"`
}

// ProfileService reads and edits public profiles.
type ProfileService struct {
	users  repository.UserRepository
	badges repository.BadgeRepository
	rdb    *redis.Client
}

// NewProfileService returns a new ProfileService. A nil Redis client disables
// the stats cache.
func NewProfileService(users repository.UserRepository, badges repository.BadgeRepository, rdb *redis.Client) *ProfileService {
	return &ProfileService{users: users, badges: badges, rdb: rdb}
}

// GetByUsername returns the public profile of username with badges and stats.
func (s *ProfileService) GetByUsername(ctx context.Context, username string) (*models.ProfileView, error) {
	user, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	return s.view(ctx, user)
}

// GetOwn returns the caller's own profile.
func (s *ProfileService) GetOwn(ctx context.Context, userID uint) (*models.ProfileView, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user.Profile == nil {
		return nil, models.NewNotFoundError("Profile", userID)
	}
	return s.view(ctx, user)
}

// List returns recently created profiles.
func (s *ProfileService) List(ctx context.Context, limit, offset int) ([]*models.Profile, error) {
	return s.users.ListProfiles(ctx, limit, offset)
}

// Update edits the caller's profile.
func (s *ProfileService) Update(ctx context.Context, userID uint, in UpdateProfileInput) (*models.Profile, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user.Profile == nil {
		return nil, models.NewNotFoundError("Profile", userID)
	}
	p := *user.Profile

	if in.Username != nil {
		p.Username = strings.TrimSpace(*in.Username)
		if err := validation.ValidateUsername(p.Username); err != nil {
			return nil, models.NewValidationError(err.Error())
		}
	}
	if in.FullName != nil {
		p.FullName = strings.TrimSpace(*in.FullName)
	}
	if in.Bio != nil {
		p.Bio = strings.TrimSpace(*in.Bio)
		if err := validation.ValidateBio(p.Bio); err != nil {
			return nil, models.NewValidationError(err.Error())
		}
	}
	for _, f := range []struct {
		name string
		in   *string
		dst  *string
	}{
		{"github_url", in.GithubURL, &p.GithubURL},
		{"website_url", in.WebsiteURL, &p.WebsiteURL},
		{"twitter_url", in.TwitterURL, &p.TwitterURL},
	} {
		if f.in == nil {
			continue
		}
		v := strings.TrimSpace(*f.in)
		if err := validation.ValidateProfileURL(f.name, v); err != nil {
			return nil, models.NewValidationError(err.Error())
		}
		*f.dst = v
	}

	if err := s.users.UpdateProfile(ctx, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

// Stats returns a user's profile counters through the stats cache.
func (s *ProfileService) Stats(ctx context.Context, userID uint) (*models.ProfileStats, error) {
	var stats models.ProfileStats
	err := cache.Aside(ctx, s.rdb, "profile_stats", cache.ProfileStatsKey(userID), &stats, cache.ProfileStatsTTL, func(ctx context.Context) error {
		fresh, err := s.users.Stats(ctx, userID)
		if err != nil {
			return err
		}
		stats = *fresh
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &stats, nil
}

// InvalidateStats drops cached counters of the given users.
func (s *ProfileService) InvalidateStats(ctx context.Context, userIDs ...uint) error {
	return cache.InvalidateProfileStats(ctx, s.rdb, userIDs...)
}

func (s *ProfileService) view(ctx context.Context, user *models.User) (*models.ProfileView, error) {
	badges, err := s.badges.ListForUser(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	if badges == nil {
		badges = []*models.UserBadge{}
	}
	stats, err := s.Stats(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	return &models.ProfileView{Profile: user.Profile, Badges: badges, Stats: stats}, nil
}
