// Package server contains the HTTP handlers of the engagement API.
package server

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	_ "face2geek/docs" // swagger docs
	"face2geek/internal/bootstrap"
	"face2geek/internal/config"
	"face2geek/internal/events"
	"face2geek/internal/featureflags"
	"face2geek/internal/middleware"
	"face2geek/internal/models"
	"face2geek/internal/repository"
	"face2geek/internal/service"

	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/gofiber/swagger"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// Server holds all dependencies and provides handlers
type Server struct {
	config         *config.Config
	db             *gorm.DB
	redis          *redis.Client
	app            *fiber.App
	promMiddleware *fiberprometheus.FiberPrometheus
	verifier       *middleware.TokenVerifier
	featureFlags   *featureflags.Manager
	bus            *events.Bus

	engagementSvc   *service.EngagementService
	notificationSvc *service.NotificationService
	badgeSvc        *service.BadgeService
	leaderboardSvc  *service.LeaderboardService
	feedSvc         *service.FeedService
	chatSvc         *service.ChatService
	snippetSvc      *service.SnippetService
	commentSvc      *service.CommentService
	profileSvc      *service.ProfileService
	collectionSvc   *service.CollectionService
}

// NewServer connects to the database and Redis, ensures the badge catalog and
// returns a ready server.
func NewServer(cfg *config.Config) (*Server, error) {
	db, rdb, err := bootstrap.InitRuntime(context.Background(), cfg, bootstrap.Options{SeedBadges: true})
	if err != nil {
		return nil, err
	}
	return NewServerWithDeps(cfg, db, rdb)
}

// NewServerWithDeps creates a Server using already-initialized dependencies.
// Use this in tests or when a bootstrap layer establishes DB/Redis. A nil
// Redis client disables caching and rate limits.
func NewServerWithDeps(cfg *config.Config, db *gorm.DB, redisClient *redis.Client) (*Server, error) {
	if cfg == nil || db == nil {
		return nil, fmt.Errorf("server requires config and database")
	}

	users := repository.NewUserRepository(db)
	snippets := repository.NewSnippetRepository(db)
	engagement := repository.NewEngagementRepository(db)
	badges := repository.NewBadgeRepository(db)
	collections := repository.NewCollectionRepository(db)

	server := &Server{
		config:         cfg,
		db:             db,
		redis:          redisClient,
		promMiddleware: middleware.InitMetrics("face2geek-api"),
		verifier:       middleware.NewTokenVerifier(cfg.JWTSecret, cfg.JWTIssuer, cfg.JWTAudience),
		featureFlags:   featureflags.NewManager(cfg.FeatureFlags),
		bus:            events.NewBus(cfg.HookTimeout()),
	}

	server.engagementSvc = service.NewEngagementService(engagement, users, snippets, server.bus)
	server.notificationSvc = service.NewNotificationService(repository.NewNotificationRepository(db))
	server.badgeSvc = service.NewBadgeService(badges, server.featureFlags)
	server.leaderboardSvc = service.NewLeaderboardService(
		repository.NewLeaderboardRepository(db), redisClient, cfg.LeaderboardCacheTTL(), server.featureFlags)
	server.feedSvc = service.NewFeedService(engagement, snippets)
	server.chatSvc = service.NewChatService(repository.NewChatRepository(db), users, server.bus)
	server.snippetSvc = service.NewSnippetService(snippets, collections, server.bus)
	server.commentSvc = service.NewCommentService(repository.NewCommentRepository(db), snippets, server.bus)
	server.profileSvc = service.NewProfileService(users, badges, redisClient)
	server.collectionSvc = service.NewCollectionService(collections)

	service.RegisterHooks(server.bus, service.Hooks{
		Notifications: server.notificationSvc,
		Badges:        server.badgeSvc,
		Leaderboard:   server.leaderboardSvc,
		Profiles:      server.profileSvc,
	})

	return server, nil
}

// SetupMiddleware configures middleware for the Fiber app
func (s *Server) SetupMiddleware(app *fiber.App) {
	// Panic recovery
	app.Use(recover.New())

	// Request ID for tracing
	app.Use(requestid.New())

	// Spans before the context middleware so trace_id reaches the logger
	app.Use(middleware.TracingMiddleware())

	// Context Middleware to propagate Request ID and Trace ID
	app.Use(middleware.ContextMiddleware())

	// Prometheus Metrics
	if s.promMiddleware != nil {
		app.Use(middleware.MetricsMiddleware(s.promMiddleware))
	}

	// Security headers
	app.Use(helmet.New())

	// Structured Logging middleware (after requestid and context middleware)
	app.Use(middleware.StructuredLogger())

	// CORS middleware should run before middlewares that can short-circuit (e.g. limiter)
	// so browser clients still receive CORS headers on error responses.
	origins := s.config.AllowedOrigins
	if origins == "" {
		origins = "http://localhost:3000,http://127.0.0.1:3000"
	}

	app.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
		AllowCredentials: true,
		MaxAge:           86400, // 24 hours
	}))

	// Global rate limiting (100 requests per minute per IP)
	app.Use(limiter.New(limiter.Config{
		Max:        100,
		Expiration: 1 * time.Minute,
		// Never rate-limit preflight requests; they should be handled by CORS.
		Next: func(c *fiber.Ctx) bool {
			return c.Method() == fiber.MethodOptions
		},
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP()
		},
		LimitReached: func(c *fiber.Ctx) error {
			return c.Status(fiber.StatusTooManyRequests).JSON(models.ErrorResponse{
				Error: "Too many requests, please try again later.",
				Code:  "RATE_LIMITED",
			})
		},
	}))
}

// SetupRoutes configures all routes for the application
func (s *Server) SetupRoutes(app *fiber.App) {
	// Health checks
	app.Get("/health/live", s.LivenessCheck)
	app.Get("/health/ready", s.ReadinessCheck)

	// Metrics endpoint for Prometheus
	if s.promMiddleware != nil {
		s.promMiddleware.RegisterAt(app, "/metrics")
	}

	api := app.Group("/api", s.StoreDeadline())

	// Swagger documentation
	api.Get("/swagger/*", swagger.HandlerDefault)

	// Public reads; a valid token personalizes them
	public := api.Group("", s.OptionalAuth())
	public.Get("/profiles", s.ListProfiles)
	public.Get("/profiles/:username/follow", s.GetFollowStatus)
	public.Get("/profiles/:username", s.GetProfile)
	public.Get("/snippets", s.ListSnippets)
	public.Get("/snippets/:id/likes", s.GetLikeStatus)
	public.Get("/snippets/:id/rating", s.GetRatingSummary)
	public.Get("/snippets/:id/comments", s.ListComments)
	public.Post("/snippets/:id/view", middleware.RateLimit(
		s.redis, 30, time.Minute, "snippet_view"), s.RecordSnippetView)
	public.Get("/snippets/:id", s.GetSnippet)
	public.Get("/leaderboard", s.GetLeaderboard)
	public.Get("/badges", s.GetBadges)
	public.Get("/feature-flags", s.GetFeatureFlags)

	// Protected routes
	protected := api.Group("", s.AuthRequired())

	protected.Get("/profile", s.GetMyProfile)
	protected.Put("/profile", s.UpdateMyProfile)
	protected.Post("/profiles/:username/follow", middleware.RateLimit(
		s.redis, 30, time.Minute, "follow"), s.ToggleFollow)

	protected.Post("/snippets", middleware.RateLimit(
		s.redis, 10, 5*time.Minute, "create_snippet"), s.CreateSnippet)
	protected.Post("/snippets/:id/like", s.ToggleLike)
	protected.Post("/snippets/:id/rate", s.RateSnippet)
	protected.Post("/snippets/:id/comments", middleware.RateLimit(
		s.redis, 10, time.Minute, "create_comment"), s.CreateComment)

	protected.Get("/notifications/unread-count", s.GetUnreadCount)
	protected.Get("/notifications", s.GetNotifications)
	protected.Patch("/notifications", s.MarkNotificationsRead)

	protected.Get("/feed", s.GetFeed)

	conversations := protected.Group("/conversations")
	conversations.Post("/", s.CreateConversation)
	conversations.Get("/", s.GetConversations)
	conversations.Get("/:id/messages", s.GetMessages)
	conversations.Post("/:id/messages", middleware.RateLimit(
		s.redis, 15, time.Minute, "send_chat"), s.SendMessage)

	protected.Get("/collections", s.GetCollections)
	protected.Post("/collections", s.CreateCollection)
}

// App builds the Fiber app with middleware and routes. Tests drive it with app.Test.
func (s *Server) App() *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:   "face2geek API",
		BodyLimit: 1 * 1024 * 1024,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			if fe, ok := err.(*fiber.Error); ok {
				return c.Status(fe.Code).JSON(models.ErrorResponse{Error: fe.Message})
			}
			middleware.Logger.ErrorContext(c.UserContext(), "unhandled error", slog.String("error", err.Error()))
			return models.RespondWithError(c, fiber.StatusInternalServerError,
				models.NewInternalError(err))
		},
	})
	s.SetupMiddleware(app)
	s.SetupRoutes(app)
	return app
}

// LivenessCheck handles liveness probe requests
func (s *Server) LivenessCheck(c *fiber.Ctx) error {
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"status": "up",
		"time":   time.Now(),
	})
}

// ReadinessCheck handles readiness probe requests. Redis only degrades
// caching, so its absence does not fail readiness.
func (s *Server) ReadinessCheck(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.UserContext(), 5*time.Second)
	defer cancel()

	dbStatus := "healthy"
	sqlDB, err := s.db.DB()
	if err != nil {
		dbStatus = "unhealthy"
	} else if err := sqlDB.PingContext(ctx); err != nil {
		dbStatus = "unhealthy"
	}

	redisStatus := "healthy"
	if s.redis != nil {
		if err := s.redis.Ping(ctx).Err(); err != nil {
			redisStatus = "unhealthy"
		}
	} else {
		redisStatus = "unavailable"
	}

	status := fiber.StatusOK
	overallStatus := "healthy"
	switch {
	case dbStatus == "unhealthy":
		status = fiber.StatusServiceUnavailable
		overallStatus = "unhealthy"
	case redisStatus != "healthy":
		overallStatus = "degraded"
	}

	return c.Status(status).JSON(fiber.Map{
		"status": overallStatus,
		"checks": fiber.Map{
			"database": dbStatus,
			"redis":    redisStatus,
		},
		"time": time.Now(),
	})
}

// StoreDeadline bounds every store call made while serving the request.
func (s *Server) StoreDeadline() fiber.Handler {
	return func(c *fiber.Ctx) error {
		ctx, cancel := context.WithTimeout(c.UserContext(), s.config.StoreTimeout())
		defer cancel()
		c.SetUserContext(ctx)
		return c.Next()
	}
}

// AuthRequired returns the authentication middleware
func (s *Server) AuthRequired() fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := s.verifier.UserIDFromHeader(c.Get("Authorization"))
		if err != nil {
			return models.RespondWithError(c, fiber.StatusUnauthorized,
				models.NewUnauthorizedError(authMessage(err)))
		}

		setUser(c, userID)
		return c.Next()
	}
}

// OptionalAuth records the caller when a valid bearer token is present and
// lets anonymous requests through otherwise.
func (s *Server) OptionalAuth() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if header := c.Get("Authorization"); header != "" {
			if userID, err := s.verifier.UserIDFromHeader(header); err == nil {
				setUser(c, userID)
			}
		}
		return c.Next()
	}
}

func setUser(c *fiber.Ctx, userID uint) {
	c.Locals("userID", userID)
	// Sync to UserContext for logging and downstream services
	c.SetUserContext(middleware.WithUserID(c.UserContext(), userID))
}

func authMessage(err error) string {
	switch err {
	case middleware.ErrMissingToken:
		return "Authorization required"
	case middleware.ErrMalformedToken:
		return "Invalid authorization header format"
	case middleware.ErrInvalidSubject:
		return "Invalid user ID in token"
	default:
		return "Invalid or expired token"
	}
}

// Start starts the server
func (s *Server) Start() error {
	s.app = s.App()
	middleware.Logger.Info("Server starting", slog.String("port", s.config.Port))
	return s.app.Listen(":" + s.config.Port)
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	if s.app != nil {
		if err := s.app.ShutdownWithContext(ctx); err != nil {
			middleware.Logger.Error("error shutting down HTTP server", slog.String("error", err.Error()))
		}
	}

	// Close database connection
	if sqlDB, err := s.db.DB(); err == nil {
		if cerr := sqlDB.Close(); cerr != nil {
			middleware.Logger.Error("error closing sql DB", slog.String("error", cerr.Error()))
		}
	}

	// Close Redis connection
	if s.redis != nil {
		if rerr := s.redis.Close(); rerr != nil {
			middleware.Logger.Error("error closing redis", slog.String("error", rerr.Error()))
		}
	}

	middleware.Logger.Info("Server shutdown complete")
	return nil
}
