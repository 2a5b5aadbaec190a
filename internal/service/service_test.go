package service

import (
	"errors"
	"testing"
	"time"

	"face2geek/internal/events"
	"face2geek/internal/featureflags"
	"face2geek/internal/models"
	"face2geek/internal/repository"
	"face2geek/internal/testutil"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// testEnv wires every service against one sqlite database with hooks
// registered, the way the server does.
type testEnv struct {
	db  *gorm.DB
	bus *events.Bus
	rdb *redis.Client
	mr  *miniredis.Miniredis

	engagement    *EngagementService
	notifications *NotificationService
	badges        *BadgeService
	leaderboard   *LeaderboardService
	feed          *FeedService
	chat          *ChatService
	snippets      *SnippetService
	comments      *CommentService
	profiles      *ProfileService
	collections   *CollectionService
}

type envOption func(*envConfig)

type envConfig struct {
	redis bool
	flags *featureflags.Manager
}

func withRedis() envOption { return func(c *envConfig) { c.redis = true } }

func withFlags(raw string) envOption {
	return func(c *envConfig) { c.flags = featureflags.NewManager(raw) }
}

func newTestEnv(t *testing.T, opts ...envOption) *testEnv {
	t.Helper()

	cfg := envConfig{flags: featureflags.NewManager("")}
	for _, opt := range opts {
		opt(&cfg)
	}

	env := &testEnv{db: testutil.NewTestDB(t), bus: events.NewBus(2 * time.Second)}
	if cfg.redis {
		env.mr = miniredis.RunT(t)
		env.rdb = redis.NewClient(&redis.Options{Addr: env.mr.Addr()})
		t.Cleanup(func() { _ = env.rdb.Close() })
	}

	users := repository.NewUserRepository(env.db)
	snippets := repository.NewSnippetRepository(env.db)
	engagement := repository.NewEngagementRepository(env.db)
	badges := repository.NewBadgeRepository(env.db)
	collections := repository.NewCollectionRepository(env.db)

	env.engagement = NewEngagementService(engagement, users, snippets, env.bus)
	env.notifications = NewNotificationService(repository.NewNotificationRepository(env.db))
	env.badges = NewBadgeService(badges, cfg.flags)
	env.leaderboard = NewLeaderboardService(repository.NewLeaderboardRepository(env.db), env.rdb, time.Minute, cfg.flags)
	env.feed = NewFeedService(engagement, snippets)
	env.chat = NewChatService(repository.NewChatRepository(env.db), users, env.bus)
	env.snippets = NewSnippetService(snippets, collections, env.bus)
	env.comments = NewCommentService(repository.NewCommentRepository(env.db), snippets, env.bus)
	env.profiles = NewProfileService(users, badges, env.rdb)
	env.collections = NewCollectionService(collections)

	RegisterHooks(env.bus, Hooks{
		Notifications: env.notifications,
		Badges:        env.badges,
		Leaderboard:   env.leaderboard,
		Profiles:      env.profiles,
	})
	return env
}

func (e *testEnv) count(t *testing.T, model interface{}, query string, args ...interface{}) int64 {
	t.Helper()
	var n int64
	require.NoError(t, e.db.Model(model).Where(query, args...).Count(&n).Error)
	return n
}

func (e *testEnv) notificationCount(t *testing.T, userID uint, typ models.NotificationType) int64 {
	t.Helper()
	return e.count(t, &models.Notification{}, "user_id = ? AND type = ?", userID, typ)
}

// assertAppError asserts that err is an AppError with the given code.
func assertAppError(t *testing.T, err error, code string) {
	t.Helper()
	require.Error(t, err)
	var appErr *models.AppError
	require.True(t, errors.As(err, &appErr), "expected AppError, got %T: %v", err, err)
	assert.Equal(t, code, appErr.Code)
}

func assertValidationError(t *testing.T, err error) {
	t.Helper()
	assertAppError(t, err, models.CodeValidation)
}
