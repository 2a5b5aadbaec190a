// Package bootstrap wires the runtime dependencies shared by the server and
// the admin commands.
package bootstrap

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"face2geek/internal/cache"
	"face2geek/internal/config"
	"face2geek/internal/database"
	"face2geek/internal/middleware"
	"face2geek/internal/seed"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// Options control runtime initialization behavior.
type Options struct {
	// SeedBadges inserts the missing entries of the default badge catalog.
	SeedBadges bool
}

// InitRuntime connects to DB and Redis and optionally seeds the badge
// catalog. An empty or unreachable REDIS_URL yields a nil client.
func InitRuntime(ctx context.Context, cfg *config.Config, opts Options) (*gorm.DB, *redis.Client, error) {
	db, err := database.Connect(cfg)
	if err != nil {
		return nil, nil, fmt.Errorf("database connection failed: %w", err)
	}

	var r *redis.Client
	if strings.TrimSpace(cfg.RedisURL) != "" {
		r = cache.Connect(ctx, cfg.RedisURL)
	} else {
		middleware.Logger.Info("REDIS_URL not set, running without cache")
	}

	if opts.SeedBadges {
		added, err := seed.Badges(ctx, db)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to seed badge catalog: %w", err)
		}
		if added > 0 {
			middleware.Logger.Info("badge catalog seeded", slog.Int64("added", added))
		}
	}

	return db, r, nil
}
