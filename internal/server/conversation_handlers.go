package server

import "github.com/gofiber/fiber/v2"

// CreateConversation finds or creates the direct conversation with a user (protected)
// @Summary Find or create conversation
// @Description Returns the single conversation between the caller and the recipient, creating it on first contact.
// @Tags conversations
// @Accept json
// @Produce json
// @Param request body object{recipient_id=int} true "Recipient"
// @Success 200 {object} object{id=int}
// @Failure 400 {object} models.ErrorResponse
// @Failure 401 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Security BearerAuth
// @Router /conversations [post]
func (s *Server) CreateConversation(c *fiber.Ctx) error {
	var req struct {
		RecipientID uint `json:"recipient_id"`
	}
	if err := parseBody(c, &req); err != nil {
		return nil
	}

	conv, err := s.chatSvc.FindOrCreateConversation(c.UserContext(), c.Locals("userID").(uint), req.RecipientID)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(fiber.Map{"id": conv.ID})
}

// GetConversations lists the caller's conversations, most recently active first
func (s *Server) GetConversations(c *fiber.Ctx) error {
	list, err := s.chatSvc.ListConversations(c.UserContext(), c.Locals("userID").(uint))
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(list)
}

// GetMessages returns the messages of a conversation, oldest first
// @Summary List messages
// @Tags conversations
// @Produce json
// @Param id path int true "Conversation ID"
// @Param limit query int false "Page size" default(50)
// @Param offset query int false "Offset"
// @Success 200 {array} models.Message
// @Failure 403 {object} models.ErrorResponse
// @Security BearerAuth
// @Router /conversations/{id}/messages [get]
func (s *Server) GetMessages(c *fiber.Ctx) error {
	id, err := parseID(c, "conversation")
	if err != nil {
		return nil
	}

	page := parsePagination(c, 50)
	msgs, err := s.chatSvc.ListMessages(c.UserContext(), c.Locals("userID").(uint), id, page.Limit, page.Offset)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(msgs)
}

// SendMessage posts a message to a conversation the caller takes part in
func (s *Server) SendMessage(c *fiber.Ctx) error {
	id, err := parseID(c, "conversation")
	if err != nil {
		return nil
	}

	var req struct {
		Content string `json:"content"`
	}
	if err := parseBody(c, &req); err != nil {
		return nil
	}

	msg, err := s.chatSvc.SendMessage(c.UserContext(), c.Locals("userID").(uint), id, req.Content)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(msg)
}
