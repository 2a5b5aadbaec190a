package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	LeaderboardKeyPrefix = "leaderboard:top:%d"
	ProfileStatsPrefix   = "profile:%d:stats"
)

const (
	ProfileStatsTTL = 30 * time.Second
)

// LeaderboardKey caches the top-N ranking.
func LeaderboardKey(limit int) string {
	return fmt.Sprintf(LeaderboardKeyPrefix, limit)
}

// ProfileStatsKey caches a user's profile counters.
func ProfileStatsKey(userID uint) string {
	return fmt.Sprintf(ProfileStatsPrefix, userID)
}

// Invalidate deletes keys, ignoring a nil client.
func Invalidate(ctx context.Context, rdb *redis.Client, keys ...string) error {
	if rdb == nil || len(keys) == 0 {
		return nil
	}
	return rdb.Del(ctx, keys...).Err()
}

// InvalidateLeaderboard drops every cached leaderboard size.
func InvalidateLeaderboard(ctx context.Context, rdb *redis.Client) error {
	if rdb == nil {
		return nil
	}
	iter := rdb.Scan(ctx, 0, "leaderboard:top:*", 100).Iterator()
	var keys []string
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return err
	}
	return Invalidate(ctx, rdb, keys...)
}

// InvalidateProfileStats drops the cached counters of each user.
func InvalidateProfileStats(ctx context.Context, rdb *redis.Client, userIDs ...uint) error {
	keys := make([]string, 0, len(userIDs))
	for _, id := range userIDs {
		keys = append(keys, ProfileStatsKey(id))
	}
	return Invalidate(ctx, rdb, keys...)
}
