package middleware

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"time"

	"face2geek/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
)

var errNoRedis = errors.New("redis client is nil")

// fixedWindow increments the counter and starts its window on first use.
// Returns {count, ttl_ms}.
var fixedWindow = redis.NewScript(`
local n = redis.call('INCR', KEYS[1])
if n == 1 then
	redis.call('PEXPIRE', KEYS[1], ARGV[1])
end
return {n, redis.call('PTTL', KEYS[1])}
`)

// Decision is the outcome of one rate limit check.
type Decision struct {
	Allowed   bool
	Remaining int
	ResetIn   time.Duration
}

// rateLimitActive reports whether APP_ENV asks for enforcement. Local and test
// runs are never limited.
func rateLimitActive() bool {
	switch os.Getenv("APP_ENV") {
	case "", "test", "development":
		return false
	}
	return true
}

// CheckRateLimit counts one hit of id against resource in a fixed window.
func CheckRateLimit(ctx context.Context, rdb *redis.Client, resource, id string, limit int, window time.Duration) (Decision, error) {
	if !rateLimitActive() {
		return Decision{Allowed: true, Remaining: limit}, nil
	}
	if rdb == nil {
		return Decision{}, errNoRedis
	}

	key := fmt.Sprintf("rl:%s:%s", resource, id)
	res, err := fixedWindow.Run(ctx, rdb, []string{key}, window.Milliseconds()).Int64Slice()
	if err != nil {
		return Decision{}, err
	}
	count, ttl := res[0], res[1]
	d := Decision{
		Allowed:   count <= int64(limit),
		Remaining: max(limit-int(count), 0),
		ResetIn:   time.Duration(max(ttl, 0)) * time.Millisecond,
	}
	return d, nil
}

// RateLimit allows limit requests per window for each caller, keyed by the
// authenticated user or else the remote IP. name labels the bucket; the
// request path is used when it is empty. A missing or failing Redis lets
// requests through.
func RateLimit(rdb *redis.Client, limit int, window time.Duration, name string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ctx, cancel := context.WithTimeout(c.UserContext(), time.Second)
		defer cancel()

		id := "ip:" + c.IP()
		if uid, ok := c.Locals("userID").(uint); ok && uid != 0 {
			id = "user:" + strconv.FormatUint(uint64(uid), 10)
		}
		resource := name
		if resource == "" {
			resource = c.Path()
		}

		d, err := CheckRateLimit(ctx, rdb, resource, id, limit, window)
		if err != nil {
			Logger.WarnContext(c.UserContext(), "rate limit check skipped",
				slog.String("resource", resource),
				slog.String("error", err.Error()),
			)
			return c.Next()
		}

		c.Set("X-RateLimit-Limit", strconv.Itoa(limit))
		c.Set("X-RateLimit-Remaining", strconv.Itoa(d.Remaining))
		if !d.Allowed {
			RateLimitRejections.WithLabelValues(resource).Inc()
			c.Set(fiber.HeaderRetryAfter, strconv.Itoa(int(d.ResetIn.Round(time.Second)/time.Second)))
			return c.Status(fiber.StatusTooManyRequests).JSON(models.ErrorResponse{
				Error: "Rate limit exceeded",
				Code:  "RATE_LIMITED",
			})
		}
		return c.Next()
	}
}
