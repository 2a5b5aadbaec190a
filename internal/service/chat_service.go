package service

import (
	"context"
	"strings"

	"face2geek/internal/events"
	"face2geek/internal/models"
	"face2geek/internal/repository"
	"face2geek/internal/validation"
)

// ChatService resolves direct conversations and carries their messages.
type ChatService struct {
	chat  repository.ChatRepository
	users repository.UserRepository
	bus   *events.Bus
}

// NewChatService returns a new ChatService.
func NewChatService(chat repository.ChatRepository, users repository.UserRepository, bus *events.Bus) *ChatService {
	return &ChatService{chat: chat, users: users, bus: bus}
}

// FindOrCreateConversation returns the single conversation between userID and
// recipientID, creating it on first contact.
func (s *ChatService) FindOrCreateConversation(ctx context.Context, userID, recipientID uint) (*models.Conversation, error) {
	if recipientID == 0 {
		return nil, models.NewValidationError("recipient_id is required")
	}
	if recipientID == userID {
		return nil, models.NewValidationError("You cannot start a conversation with yourself")
	}
	if _, err := s.users.GetByID(ctx, recipientID); err != nil {
		return nil, err
	}

	existing, err := s.chat.FindByPair(ctx, userID, recipientID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return existing, nil
	}

	conv, _, err := s.chat.CreateForPair(ctx, userID, recipientID)
	return conv, err
}

// ListConversations returns the user's conversations, most recently active first.
func (s *ChatService) ListConversations(ctx context.Context, userID uint) ([]*models.ConversationSummary, error) {
	return s.chat.ListForUser(ctx, userID)
}

// ListMessages returns a conversation's messages, oldest first. Only
// participants may read them.
func (s *ChatService) ListMessages(ctx context.Context, userID, convID uint, limit, offset int) ([]*models.Message, error) {
	if err := s.requireParticipant(ctx, userID, convID); err != nil {
		return nil, err
	}
	return s.chat.GetMessages(ctx, convID, limit, offset)
}

// SendMessage stores a message from a participant and notifies the other one.
func (s *ChatService) SendMessage(ctx context.Context, userID, convID uint, content string) (*models.Message, error) {
	content = strings.TrimSpace(content)
	if err := validation.ValidateText("message", content, validation.MaxMessageLength); err != nil {
		return nil, models.NewValidationError(err.Error())
	}
	if err := s.requireParticipant(ctx, userID, convID); err != nil {
		return nil, err
	}

	// recipient first: a failed lookup must not follow a stored message
	recipientID, err := s.chat.OtherParticipant(ctx, convID, userID)
	if err != nil {
		return nil, err
	}

	msg := &models.Message{ConversationID: convID, SenderID: userID, Content: content}
	if err := s.chat.CreateMessage(ctx, msg); err != nil {
		return nil, err
	}
	s.bus.Publish(ctx, events.MessageSent{
		MessageID:      msg.ID,
		ConversationID: convID,
		SenderID:       userID,
		RecipientID:    recipientID,
	})
	return msg, nil
}

func (s *ChatService) requireParticipant(ctx context.Context, userID, convID uint) error {
	ok, err := s.chat.IsParticipant(ctx, convID, userID)
	if err != nil {
		return err
	}
	if !ok {
		return models.NewForbiddenError("You are not a participant of this conversation")
	}
	return nil
}
