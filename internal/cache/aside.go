package cache

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"face2geek/internal/middleware"
	"face2geek/internal/observability"

	"github.com/redis/go-redis/v9"
)

// GetJSON attempts to get the key from Redis and unmarshal into dest.
// Returns (true, nil) if found and unmarshaled, (false, nil) if not found.
func GetJSON(ctx context.Context, rdb *redis.Client, key string, dest any) (bool, error) {
	if rdb == nil {
		return false, nil
	}
	raw, err := rdb.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if err := json.Unmarshal(raw, dest); err != nil {
		return false, err
	}
	return true, nil
}

// SetJSON marshals v and sets the key with TTL.
func SetJSON(ctx context.Context, rdb *redis.Client, key string, v any, ttl time.Duration) error {
	if rdb == nil {
		return nil
	}
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return rdb.Set(ctx, key, b, ttl).Err()
}

// Aside reads key into dest, falling back to fetch on a miss and storing the
// result for ttl. Cache errors degrade to a fetch; only fetch errors are returned.
func Aside(ctx context.Context, rdb *redis.Client, name, key string, dest any, ttl time.Duration, fetch func(ctx context.Context) error) error {
	found, err := GetJSON(ctx, rdb, key, dest)
	switch {
	case err != nil:
		observability.CacheLookups.WithLabelValues(name, "error").Inc()
		middleware.Logger.WarnContext(ctx, "cache read failed",
			slog.String("cache", name),
			slog.String("key", key),
			slog.String("error", err.Error()),
		)
	case found:
		observability.CacheLookups.WithLabelValues(name, "hit").Inc()
		return nil
	default:
		observability.CacheLookups.WithLabelValues(name, "miss").Inc()
	}

	if err := fetch(ctx); err != nil {
		return err
	}

	if err := SetJSON(ctx, rdb, key, dest, ttl); err != nil {
		middleware.Logger.WarnContext(ctx, "cache write failed",
			slog.String("cache", name),
			slog.String("key", key),
			slog.String("error", err.Error()),
		)
	}
	return nil
}
