package server

import (
	"face2geek/internal/service"

	"github.com/gofiber/fiber/v2"
)

// GetCollections lists the caller's collections (protected)
func (s *Server) GetCollections(c *fiber.Ctx) error {
	list, err := s.collectionSvc.List(c.UserContext(), c.Locals("userID").(uint))
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(list)
}

// CreateCollection creates a snippet collection (protected)
// @Summary Create collection
// @Tags collections
// @Accept json
// @Produce json
// @Param request body service.CreateCollectionInput true "Collection"
// @Success 201 {object} models.Collection
// @Failure 400 {object} models.ErrorResponse
// @Security BearerAuth
// @Router /collections [post]
func (s *Server) CreateCollection(c *fiber.Ctx) error {
	var req service.CreateCollectionInput
	if err := parseBody(c, &req); err != nil {
		return nil
	}

	col, err := s.collectionSvc.Create(c.UserContext(), c.Locals("userID").(uint), req)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(col)
}
