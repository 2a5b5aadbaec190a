package models

import "time"

// NotificationType enumerates the events that notify a user.
type NotificationType string

const (
	NotificationLike    NotificationType = "LIKE"
	NotificationComment NotificationType = "COMMENT"
	NotificationFollow  NotificationType = "FOLLOW"
	NotificationRate    NotificationType = "RATE"
	NotificationMessage NotificationType = "MESSAGE"
)

// Valid reports whether t is a known notification type.
func (t NotificationType) Valid() bool {
	switch t {
	case NotificationLike, NotificationComment, NotificationFollow, NotificationRate, NotificationMessage:
		return true
	}
	return false
}

// Notification is addressed to UserID and caused by ActorID. Recipient and
// actor always differ.
type Notification struct {
	ID        uint             `gorm:"primaryKey" json:"id"`
	UserID    uint             `gorm:"not null;index:idx_notifications_user_created,priority:1" json:"user_id"`
	Type      NotificationType `gorm:"size:20;not null" json:"type"`
	ActorID   uint             `gorm:"not null" json:"actor_id"`
	SnippetID *uint            `json:"snippet_id,omitempty"`
	IsRead    bool             `gorm:"not null;default:false" json:"is_read"`
	CreatedAt time.Time        `gorm:"index:idx_notifications_user_created,priority:2" json:"created_at"`

	User    *User    `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	Actor   *User    `gorm:"foreignKey:ActorID;constraint:OnDelete:CASCADE" json:"actor,omitempty"`
	Snippet *Snippet `gorm:"foreignKey:SnippetID;constraint:OnDelete:CASCADE" json:"-"`
}
