package repository

import (
	"context"
	"errors"
	"time"

	"face2geek/internal/models"

	"gorm.io/gorm"
)

// ChatRepository defines the interface for chat data operations
type ChatRepository interface {
	FindByPair(ctx context.Context, userA, userB uint) (*models.Conversation, error)
	CreateForPair(ctx context.Context, userA, userB uint) (*models.Conversation, bool, error)
	IsParticipant(ctx context.Context, convID, userID uint) (bool, error)
	OtherParticipant(ctx context.Context, convID, userID uint) (uint, error)
	ListForUser(ctx context.Context, userID uint) ([]*models.ConversationSummary, error)
	CreateMessage(ctx context.Context, msg *models.Message) error
	GetMessages(ctx context.Context, convID uint, limit, offset int) ([]*models.Message, error)
}

// chatRepository implements ChatRepository
type chatRepository struct {
	db *gorm.DB
}

// NewChatRepository creates a new chat repository
func NewChatRepository(db *gorm.DB) ChatRepository {
	return &chatRepository{db: db}
}

// FindByPair returns the conversation between the two users, or nil when none exists.
func (r *chatRepository) FindByPair(ctx context.Context, userA, userB uint) (*models.Conversation, error) {
	var conv models.Conversation
	err := r.db.WithContext(ctx).Where("pair_key = ?", models.PairKey(userA, userB)).First(&conv).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return &conv, nil
}

// CreateForPair inserts the conversation and both participants in one
// transaction. When a concurrent request won the pair key, the winner is
// returned and the boolean is false.
func (r *chatRepository) CreateForPair(ctx context.Context, userA, userB uint) (*models.Conversation, bool, error) {
	conv := models.Conversation{PairKey: models.PairKey(userA, userB)}
	var created bool
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var err error
		created, err = insertIfAbsent(tx, &conv)
		if err != nil {
			return err
		}
		if !created {
			conv = models.Conversation{}
			return tx.Where("pair_key = ?", models.PairKey(userA, userB)).First(&conv).Error
		}
		participants := []*models.ConversationParticipant{
			{ConversationID: conv.ID, UserID: userA},
			{ConversationID: conv.ID, UserID: userB},
		}
		return tx.Create(&participants).Error
	})
	if err != nil {
		return nil, false, models.NewInternalError(err)
	}
	return &conv, created, nil
}

func (r *chatRepository) IsParticipant(ctx context.Context, convID, userID uint) (bool, error) {
	var n int64
	if err := r.db.WithContext(ctx).
		Model(&models.ConversationParticipant{}).
		Where("conversation_id = ? AND user_id = ?", convID, userID).
		Count(&n).Error; err != nil {
		return false, models.NewInternalError(err)
	}
	return n > 0, nil
}

// OtherParticipant returns the participant of convID who is not userID.
func (r *chatRepository) OtherParticipant(ctx context.Context, convID, userID uint) (uint, error) {
	var p models.ConversationParticipant
	if err := r.db.WithContext(ctx).
		Where("conversation_id = ? AND user_id <> ?", convID, userID).
		First(&p).Error; err != nil {
		return 0, lookupError(err, "Conversation", convID)
	}
	return p.UserID, nil
}

func (r *chatRepository) ListForUser(ctx context.Context, userID uint) ([]*models.ConversationSummary, error) {
	var conversations []*models.Conversation
	if err := r.db.WithContext(ctx).
		Joins("JOIN conversation_participants cp ON conversations.id = cp.conversation_id").
		Where("cp.user_id = ?", userID).
		Preload("Participants.User.Profile").
		Order("conversations.updated_at DESC, conversations.id DESC").
		Find(&conversations).Error; err != nil {
		return nil, models.NewInternalError(err)
	}

	summaries := make([]*models.ConversationSummary, 0, len(conversations))
	for _, conv := range conversations {
		summary := &models.ConversationSummary{ID: conv.ID, UpdatedAt: conv.UpdatedAt}
		for _, p := range conv.Participants {
			if p.UserID != userID {
				summary.Other = p.User
			}
		}
		summaries = append(summaries, summary)
	}
	return summaries, nil
}

// CreateMessage stores msg and bumps the conversation so listings sort by activity.
func (r *chatRepository) CreateMessage(ctx context.Context, msg *models.Message) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(msg).Error; err != nil {
			return err
		}
		return tx.Model(&models.Conversation{}).
			Where("id = ?", msg.ConversationID).
			UpdateColumn("updated_at", time.Now()).Error
	})
	if err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

// GetMessages returns the latest messages of a conversation, oldest first.
func (r *chatRepository) GetMessages(ctx context.Context, convID uint, limit, offset int) ([]*models.Message, error) {
	var messages []*models.Message
	err := r.db.WithContext(ctx).
		Where("conversation_id = ?", convID).
		Preload("Sender.Profile").
		Order("created_at DESC, id DESC").
		Limit(clampLimit(limit, 50, 200)).
		Offset(offset).
		Find(&messages).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}

	for i, j := 0, len(messages)-1; i < j; i, j = i+1, j-1 {
		messages[i], messages[j] = messages[j], messages[i]
	}
	return messages, nil
}
