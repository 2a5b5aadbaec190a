// Package cache provides Redis caching utilities for the application.
package cache

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"face2geek/internal/middleware"

	"github.com/redis/go-redis/v9"
)

// instrumentation records latency and failures of every command. A cache
// miss (redis.Nil) is not a failure.
type instrumentation struct{}

func (instrumentation) DialHook(next redis.DialHook) redis.DialHook { return next }

func (instrumentation) ProcessHook(next redis.ProcessHook) redis.ProcessHook {
	return func(ctx context.Context, cmd redis.Cmder) error {
		start := time.Now()
		err := next(ctx, cmd)
		observe(cmd.Name(), start, err)
		return err
	}
}

func (instrumentation) ProcessPipelineHook(next redis.ProcessPipelineHook) redis.ProcessPipelineHook {
	return func(ctx context.Context, cmds []redis.Cmder) error {
		start := time.Now()
		err := next(ctx, cmds)
		observe("pipeline", start, err)
		return err
	}
}

func observe(command string, start time.Time, err error) {
	middleware.RedisLatency.WithLabelValues(command).Observe(time.Since(start).Seconds())
	if err != nil && !errors.Is(err, redis.Nil) {
		middleware.RedisErrors.WithLabelValues(command).Inc()
	}
}

// NewClient builds an instrumented client from a host:port address or a
// redis:// URL. It does not contact the server.
func NewClient(addr string) (*redis.Client, error) {
	opts := &redis.Options{Addr: addr}
	if strings.Contains(addr, "://") {
		parsed, err := redis.ParseURL(addr)
		if err != nil {
			return nil, err
		}
		opts = parsed
	}

	c := redis.NewClient(opts)
	c.AddHook(instrumentation{})
	return c, nil
}

// Connect returns a client that answered PING, or nil when addr is invalid
// or the server is unreachable. Callers treat nil as "no cache".
func Connect(ctx context.Context, addr string) *redis.Client {
	c, err := NewClient(addr)
	if err != nil {
		middleware.Logger.WarnContext(ctx, "redis disabled: invalid REDIS_URL", slog.String("error", err.Error()))
		return nil
	}

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := c.Ping(pingCtx).Err(); err != nil {
		middleware.Logger.WarnContext(ctx, "redis unavailable, continuing without cache", slog.String("error", err.Error()))
		_ = c.Close()
		return nil
	}

	middleware.Logger.InfoContext(ctx, "redis connected", slog.String("addr", c.Options().Addr))
	return c
}
