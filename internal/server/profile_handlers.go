package server

import (
	"face2geek/internal/service"

	"github.com/gofiber/fiber/v2"
)

// ListProfiles returns the most recent profiles (public)
// @Summary List profiles
// @Tags profiles
// @Produce json
// @Param limit query int false "Page size" default(20)
// @Param offset query int false "Offset"
// @Success 200 {array} models.Profile
// @Router /profiles [get]
func (s *Server) ListProfiles(c *fiber.Ctx) error {
	page := parsePagination(c, 20)
	profiles, err := s.profileSvc.List(c.UserContext(), page.Limit, page.Offset)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(profiles)
}

// GetProfile returns a public profile with badges and stats
// @Summary Get profile by username
// @Tags profiles
// @Produce json
// @Param username path string true "Username"
// @Success 200 {object} models.ProfileView
// @Failure 404 {object} models.ErrorResponse
// @Router /profiles/{username} [get]
func (s *Server) GetProfile(c *fiber.Ctx) error {
	view, err := s.profileSvc.GetByUsername(c.UserContext(), c.Params("username"))
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(view)
}

// GetMyProfile returns the caller's own profile (protected)
func (s *Server) GetMyProfile(c *fiber.Ctx) error {
	view, err := s.profileSvc.GetOwn(c.UserContext(), c.Locals("userID").(uint))
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(view)
}

// UpdateMyProfile updates the caller's profile (protected)
// @Summary Update own profile
// @Tags profiles
// @Accept json
// @Produce json
// @Param request body service.UpdateProfileInput true "Profile fields"
// @Success 200 {object} models.Profile
// @Failure 400 {object} models.ErrorResponse
// @Failure 401 {object} models.ErrorResponse
// @Security BearerAuth
// @Router /profile [put]
func (s *Server) UpdateMyProfile(c *fiber.Ctx) error {
	var req service.UpdateProfileInput
	if err := parseBody(c, &req); err != nil {
		return nil
	}

	profile, err := s.profileSvc.Update(c.UserContext(), c.Locals("userID").(uint), req)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(profile)
}

// ToggleFollow follows or unfollows a user (protected)
// @Summary Toggle follow
// @Description Follows the user when not followed yet, unfollows otherwise.
// @Tags profiles
// @Produce json
// @Param username path string true "Username"
// @Success 200 {object} object{following=bool}
// @Failure 400 {object} models.ErrorResponse
// @Failure 401 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Security BearerAuth
// @Router /profiles/{username}/follow [post]
func (s *Server) ToggleFollow(c *fiber.Ctx) error {
	following, err := s.engagementSvc.ToggleFollow(c.UserContext(), c.Locals("userID").(uint), c.Params("username"))
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(fiber.Map{"following": following})
}

// GetFollowStatus returns follower counts and whether the caller follows the user
func (s *Server) GetFollowStatus(c *fiber.Ctx) error {
	status, err := s.engagementSvc.FollowStatus(c.UserContext(), currentUser(c), c.Params("username"))
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(status)
}
