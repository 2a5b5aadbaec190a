package service

import (
	"context"

	"face2geek/internal/models"
	"face2geek/internal/observability"
	"face2geek/internal/repository"
)

// NotificationService persists notifications and serves the recipient's inbox.
type NotificationService struct {
	repo repository.NotificationRepository
}

// NewNotificationService returns a new NotificationService.
func NewNotificationService(repo repository.NotificationRepository) *NotificationService {
	return &NotificationService{repo: repo}
}

// Notify records that actorID did something that concerns recipientID. Acting
// on your own content never notifies you.
func (s *NotificationService) Notify(ctx context.Context, recipientID uint, typ models.NotificationType, actorID uint, snippetID *uint) error {
	if recipientID == 0 || recipientID == actorID {
		return nil
	}
	if !typ.Valid() {
		return models.NewValidationError("Unknown notification type")
	}

	n := &models.Notification{
		UserID:    recipientID,
		Type:      typ,
		ActorID:   actorID,
		SnippetID: snippetID,
	}
	if err := s.repo.Create(ctx, n); err != nil {
		return err
	}
	observability.NotificationsCreated.WithLabelValues(string(typ)).Inc()
	return nil
}

// List returns the user's 50 newest notifications.
func (s *NotificationService) List(ctx context.Context, userID uint) ([]*models.Notification, error) {
	return s.repo.ListForUser(ctx, userID, 50)
}

// MarkRead marks one of the user's notifications read. Ids owned by other
// users are ignored.
func (s *NotificationService) MarkRead(ctx context.Context, userID, id uint) error {
	if id == 0 {
		return models.NewValidationError("Notification id is required")
	}
	_, err := s.repo.MarkRead(ctx, userID, id)
	return err
}

// MarkAllRead marks every notification of the user read.
func (s *NotificationService) MarkAllRead(ctx context.Context, userID uint) error {
	_, err := s.repo.MarkAllRead(ctx, userID)
	return err
}

// UnreadCount returns how many notifications the user has not read.
func (s *NotificationService) UnreadCount(ctx context.Context, userID uint) (int64, error) {
	return s.repo.UnreadCount(ctx, userID)
}
