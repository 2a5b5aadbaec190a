package server

import (
	"face2geek/internal/models"

	"github.com/gofiber/fiber/v2"
)

// GetNotifications returns the caller's 50 newest notifications (protected)
// @Summary List notifications
// @Tags notifications
// @Produce json
// @Success 200 {array} models.Notification
// @Failure 401 {object} models.ErrorResponse
// @Security BearerAuth
// @Router /notifications [get]
func (s *Server) GetNotifications(c *fiber.Ctx) error {
	list, err := s.notificationSvc.List(c.UserContext(), c.Locals("userID").(uint))
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(list)
}

// MarkNotificationsRead marks one notification, or all of them, read (protected)
// @Summary Mark notifications read
// @Tags notifications
// @Accept json
// @Produce json
// @Param request body object{id=int,all=bool} true "Either id or all=true"
// @Success 200 {object} object{success=bool}
// @Failure 400 {object} models.ErrorResponse
// @Failure 401 {object} models.ErrorResponse
// @Security BearerAuth
// @Router /notifications [patch]
func (s *Server) MarkNotificationsRead(c *fiber.Ctx) error {
	ctx := c.UserContext()
	userID := c.Locals("userID").(uint)

	var req struct {
		ID  uint `json:"id"`
		All bool `json:"all"`
	}
	if err := parseBody(c, &req); err != nil {
		return nil
	}

	var err error
	switch {
	case req.All:
		err = s.notificationSvc.MarkAllRead(ctx, userID)
	case req.ID != 0:
		err = s.notificationSvc.MarkRead(ctx, userID, req.ID)
	default:
		err = models.NewValidationError("Provide a notification id or all=true")
	}
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(fiber.Map{"success": true})
}

// GetUnreadCount returns how many notifications the caller has not read
func (s *Server) GetUnreadCount(c *fiber.Ctx) error {
	count, err := s.notificationSvc.UnreadCount(c.UserContext(), c.Locals("userID").(uint))
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(fiber.Map{"count": count})
}
