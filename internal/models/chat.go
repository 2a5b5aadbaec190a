package models

import (
	"fmt"
	"time"
)

// Conversation is a direct conversation between exactly two users. PairKey is
// the canonical unordered pair and keeps one conversation per pair.
type Conversation struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	PairKey   string    `gorm:"uniqueIndex;size:64;not null" json:"-"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Participants []*ConversationParticipant `gorm:"foreignKey:ConversationID" json:"participants,omitempty"`
}

// ConversationParticipant links a user to a conversation.
type ConversationParticipant struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	ConversationID uint      `gorm:"not null;uniqueIndex:idx_conversation_participant" json:"conversation_id"`
	UserID         uint      `gorm:"not null;uniqueIndex:idx_conversation_participant;index" json:"user_id"`
	CreatedAt      time.Time `json:"created_at"`

	Conversation *Conversation `gorm:"foreignKey:ConversationID;constraint:OnDelete:CASCADE" json:"-"`
	User         *User         `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"user,omitempty"`
}

// Message is a chat line inside a conversation.
type Message struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	Content        string    `gorm:"type:text;not null" json:"content"`
	SenderID       uint      `gorm:"not null" json:"sender_id"`
	ConversationID uint      `gorm:"not null;index:idx_messages_conversation_created,priority:1" json:"conversation_id"`
	CreatedAt      time.Time `gorm:"index:idx_messages_conversation_created,priority:2" json:"created_at"`

	Sender       *User         `gorm:"foreignKey:SenderID;constraint:OnDelete:CASCADE" json:"sender,omitempty"`
	Conversation *Conversation `gorm:"foreignKey:ConversationID;constraint:OnDelete:CASCADE" json:"-"`
}

// ConversationSummary is a conversation as seen by one participant.
type ConversationSummary struct {
	ID        uint      `json:"id"`
	UpdatedAt time.Time `json:"updated_at"`
	Other     *User     `json:"other_user"`
}

// PairKey returns the canonical key for the unordered pair {a, b}.
func PairKey(a, b uint) string {
	if a > b {
		a, b = b, a
	}
	return fmt.Sprintf("%d:%d", a, b)
}
