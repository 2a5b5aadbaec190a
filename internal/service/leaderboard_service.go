package service

import (
	"context"
	"time"

	"face2geek/internal/cache"
	"face2geek/internal/featureflags"
	"face2geek/internal/models"
	"face2geek/internal/repository"

	"github.com/redis/go-redis/v9"
)

// LeaderboardService ranks users by reputation, optionally through Redis.
type LeaderboardService struct {
	repo  repository.LeaderboardRepository
	rdb   *redis.Client
	ttl   time.Duration
	flags *featureflags.Manager
}

// NewLeaderboardService returns a new LeaderboardService. A nil Redis client
// disables caching.
func NewLeaderboardService(repo repository.LeaderboardRepository, rdb *redis.Client, ttl time.Duration, flags *featureflags.Manager) *LeaderboardService {
	return &LeaderboardService{repo: repo, rdb: rdb, ttl: ttl, flags: flags}
}

// TopGeeks returns the limit best-ranked users, ties broken by user id.
func (s *LeaderboardService) TopGeeks(ctx context.Context, limit int) ([]*models.LeaderboardEntry, error) {
	if limit <= 0 || limit > 100 {
		limit = models.LeaderboardSize
	}
	if s.rdb == nil || !s.flags.Enabled(featureflags.LeaderboardCache, 0) {
		return s.repo.Top(ctx, limit)
	}

	var entries []*models.LeaderboardEntry
	err := cache.Aside(ctx, s.rdb, "leaderboard", cache.LeaderboardKey(limit), &entries, s.ttl, func(ctx context.Context) error {
		top, err := s.repo.Top(ctx, limit)
		if err != nil {
			return err
		}
		entries = top
		return nil
	})
	if err != nil {
		return nil, err
	}
	if entries == nil {
		entries = []*models.LeaderboardEntry{}
	}
	return entries, nil
}

// Invalidate drops cached rankings after reputation-changing events.
func (s *LeaderboardService) Invalidate(ctx context.Context) error {
	return cache.InvalidateLeaderboard(ctx, s.rdb)
}
