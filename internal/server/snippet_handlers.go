package server

import (
	"face2geek/internal/service"

	"github.com/gofiber/fiber/v2"
)

// ListSnippets returns recent snippets (public)
// @Summary List snippets
// @Tags snippets
// @Produce json
// @Param limit query int false "Page size" default(20)
// @Param offset query int false "Offset"
// @Success 200 {array} models.Snippet
// @Router /snippets [get]
func (s *Server) ListSnippets(c *fiber.Ctx) error {
	page := parsePagination(c, 20)
	snippets, err := s.snippetSvc.List(c.UserContext(), page.Limit, page.Offset, currentUser(c))
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(snippets)
}

// CreateSnippet publishes a snippet (protected)
// @Summary Publish snippet
// @Tags snippets
// @Accept json
// @Produce json
// @Param request body service.CreateSnippetInput true "Snippet"
// @Success 201 {object} models.Snippet
// @Failure 400 {object} models.ErrorResponse
// @Failure 401 {object} models.ErrorResponse
// @Failure 403 {object} models.ErrorResponse
// @Security BearerAuth
// @Router /snippets [post]
func (s *Server) CreateSnippet(c *fiber.Ctx) error {
	var req service.CreateSnippetInput
	if err := parseBody(c, &req); err != nil {
		return nil
	}

	snippet, err := s.snippetSvc.Publish(c.UserContext(), c.Locals("userID").(uint), req)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(snippet)
}

// GetSnippet returns a single snippet (public)
// @Summary Get snippet
// @Tags snippets
// @Produce json
// @Param id path int true "Snippet ID"
// @Success 200 {object} models.Snippet
// @Failure 404 {object} models.ErrorResponse
// @Router /snippets/{id} [get]
func (s *Server) GetSnippet(c *fiber.Ctx) error {
	id, err := parseID(c, "snippet")
	if err != nil {
		return nil
	}

	snippet, err := s.snippetSvc.Get(c.UserContext(), id, currentUser(c))
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(snippet)
}

// RecordSnippetView increments the view counter of a snippet
func (s *Server) RecordSnippetView(c *fiber.Ctx) error {
	id, err := parseID(c, "snippet")
	if err != nil {
		return nil
	}

	views, err := s.snippetSvc.RecordView(c.UserContext(), id)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(fiber.Map{"views": views})
}

// ToggleLike likes or unlikes a snippet (protected)
// @Summary Toggle like
// @Tags engagement
// @Produce json
// @Param id path int true "Snippet ID"
// @Success 200 {object} models.LikeResult
// @Failure 401 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Security BearerAuth
// @Router /snippets/{id}/like [post]
func (s *Server) ToggleLike(c *fiber.Ctx) error {
	id, err := parseID(c, "snippet")
	if err != nil {
		return nil
	}

	result, err := s.engagementSvc.ToggleLike(c.UserContext(), c.Locals("userID").(uint), id)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(result)
}

// GetLikeStatus returns the like count and whether the caller liked the snippet
func (s *Server) GetLikeStatus(c *fiber.Ctx) error {
	id, err := parseID(c, "snippet")
	if err != nil {
		return nil
	}

	status, err := s.engagementSvc.LikeStatus(c.UserContext(), currentUser(c), id)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(status)
}

// RateSnippet records the caller's 1..5 score (protected)
// @Summary Rate snippet
// @Tags engagement
// @Accept json
// @Produce json
// @Param id path int true "Snippet ID"
// @Param request body object{score=int} true "Score between 1 and 5"
// @Success 200 {object} models.Rating
// @Failure 400 {object} models.ErrorResponse
// @Failure 401 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Security BearerAuth
// @Router /snippets/{id}/rate [post]
func (s *Server) RateSnippet(c *fiber.Ctx) error {
	id, err := parseID(c, "snippet")
	if err != nil {
		return nil
	}

	var req struct {
		Score int `json:"score"`
	}
	if err := parseBody(c, &req); err != nil {
		return nil
	}

	rating, err := s.engagementSvc.RateSnippet(c.UserContext(), c.Locals("userID").(uint), id, req.Score)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(rating)
}

// GetRatingSummary returns the average score of a snippet
func (s *Server) GetRatingSummary(c *fiber.Ctx) error {
	id, err := parseID(c, "snippet")
	if err != nil {
		return nil
	}

	summary, err := s.engagementSvc.RatingSummary(c.UserContext(), id)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(summary)
}

// CreateComment comments on a snippet (protected)
// @Summary Comment on snippet
// @Tags engagement
// @Accept json
// @Produce json
// @Param id path int true "Snippet ID"
// @Param request body object{content=string} true "Comment"
// @Success 201 {object} models.Comment
// @Failure 400 {object} models.ErrorResponse
// @Failure 401 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Security BearerAuth
// @Router /snippets/{id}/comments [post]
func (s *Server) CreateComment(c *fiber.Ctx) error {
	id, err := parseID(c, "snippet")
	if err != nil {
		return nil
	}

	var req struct {
		Content string `json:"content"`
	}
	if err := parseBody(c, &req); err != nil {
		return nil
	}

	comment, err := s.commentSvc.AddComment(c.UserContext(), c.Locals("userID").(uint), id, req.Content)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(comment)
}

// ListComments returns the comments of a snippet, newest first (public)
func (s *Server) ListComments(c *fiber.Ctx) error {
	id, err := parseID(c, "snippet")
	if err != nil {
		return nil
	}

	page := parsePagination(c, 50)
	comments, err := s.commentSvc.ListComments(c.UserContext(), id, page.Limit, page.Offset)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(comments)
}
