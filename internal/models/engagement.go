package models

import "time"

// Rating bounds.
const (
	MinRatingScore = 1
	MaxRatingScore = 5
)

// Like marks a user's appreciation of a snippet. Unique per (user, snippet).
type Like struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;uniqueIndex:idx_likes_user_snippet" json:"user_id"`
	SnippetID uint      `gorm:"not null;uniqueIndex:idx_likes_user_snippet;index" json:"snippet_id"`
	CreatedAt time.Time `json:"created_at"`

	User    *User    `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	Snippet *Snippet `gorm:"foreignKey:SnippetID;constraint:OnDelete:CASCADE" json:"-"`
}

// Rating is a 1..5 score. Unique per (user, snippet); re-rating updates Score.
type Rating struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;uniqueIndex:idx_ratings_user_snippet" json:"user_id"`
	SnippetID uint      `gorm:"not null;uniqueIndex:idx_ratings_user_snippet;index" json:"snippet_id"`
	Score     int       `gorm:"not null;check:chk_ratings_score,score BETWEEN 1 AND 5" json:"score"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	User    *User    `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	Snippet *Snippet `gorm:"foreignKey:SnippetID;constraint:OnDelete:CASCADE" json:"-"`
}

// Comment is append-only.
type Comment struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Content   string    `gorm:"type:text;not null" json:"content"`
	UserID    uint      `gorm:"not null;index" json:"user_id"`
	SnippetID uint      `gorm:"not null;index" json:"snippet_id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	User    *User    `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"user,omitempty"`
	Snippet *Snippet `gorm:"foreignKey:SnippetID;constraint:OnDelete:CASCADE" json:"-"`
}

// LikeResult is returned by the like toggle.
type LikeResult struct {
	Liked      bool  `json:"liked"`
	LikesCount int64 `json:"likes_count"`
}

// LikeStatus answers GET /snippets/:id/likes.
type LikeStatus struct {
	Count     int64 `json:"count"`
	UserLiked bool  `json:"user_liked"`
}

// RatingSummary answers GET /snippets/:id/rating.
type RatingSummary struct {
	Average float64 `json:"average"`
	Count   int64   `json:"count"`
}
