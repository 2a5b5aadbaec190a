package server

import (
	"face2geek/internal/models"

	"github.com/gofiber/fiber/v2"
)

// GetFeed returns the newest snippets from followed users (protected)
// @Summary Personal feed
// @Tags discovery
// @Produce json
// @Success 200 {array} models.Snippet
// @Failure 401 {object} models.ErrorResponse
// @Security BearerAuth
// @Router /feed [get]
func (s *Server) GetFeed(c *fiber.Ctx) error {
	feed, err := s.feedSvc.FeedFor(c.UserContext(), c.Locals("userID").(uint))
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(feed)
}

// GetLeaderboard returns the top ranked users (public)
// @Summary Leaderboard
// @Tags discovery
// @Produce json
// @Param limit query int false "Number of entries" default(10)
// @Success 200 {array} models.LeaderboardEntry
// @Router /leaderboard [get]
func (s *Server) GetLeaderboard(c *fiber.Ctx) error {
	top, err := s.leaderboardSvc.TopGeeks(c.UserContext(), c.QueryInt("limit", models.LeaderboardSize))
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(top)
}

// GetBadges returns the badge catalog (public)
func (s *Server) GetBadges(c *fiber.Ctx) error {
	badges, err := s.badgeSvc.Catalog(c.UserContext())
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(badges)
}
