package models

import (
	"time"

	"gorm.io/datatypes"
)

// Snippet is a published piece of code. Aggregated counters are read-only
// columns filled by repository subqueries.
type Snippet struct {
	ID           uint                        `gorm:"primaryKey" json:"id"`
	Title        string                      `gorm:"size:200;not null" json:"title"`
	Description  string                      `gorm:"type:text" json:"description,omitempty"`
	Code         string                      `gorm:"type:text;not null" json:"code"`
	Language     string                      `gorm:"size:50;not null;index" json:"language"`
	Tags         datatypes.JSONSlice[string] `json:"tags"`
	Views        int64                       `gorm:"not null;default:0" json:"views"`
	UserID       uint                        `gorm:"not null;index" json:"user_id"`
	CollectionID *uint                       `gorm:"index" json:"collection_id,omitempty"`
	CreatedAt    time.Time                   `gorm:"index" json:"created_at"`
	UpdatedAt    time.Time                   `json:"updated_at"`

	User       *User       `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"user,omitempty"`
	Collection *Collection `gorm:"foreignKey:CollectionID;constraint:OnDelete:SET NULL" json:"-"`

	LikesCount    int64   `gorm:"->;-:migration" json:"likes_count"`
	CommentsCount int64   `gorm:"->;-:migration" json:"comments_count"`
	AvgRating     float64 `gorm:"->;-:migration" json:"avg_rating"`
	RatingsCount  int64   `gorm:"->;-:migration" json:"ratings_count"`
	Liked         bool    `gorm:"->;-:migration" json:"liked"`
}

// Collection groups a user's snippets.
type Collection struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"size:100;not null" json:"name"`
	UserID    uint      `gorm:"not null;index" json:"user_id"`
	IsPublic  bool      `gorm:"not null" json:"is_public"`
	CreatedAt time.Time `json:"created_at"`

	User *User `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
}
