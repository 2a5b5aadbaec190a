package server

import "github.com/gofiber/fiber/v2"

// GetFeatureFlags returns the configured flags and their value for the caller.
// Anonymous callers see partial rollouts as off.
func (s *Server) GetFeatureFlags(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"raw":       s.featureFlags.Raw(),
		"evaluated": s.featureFlags.Snapshot(currentUser(c)),
	})
}
