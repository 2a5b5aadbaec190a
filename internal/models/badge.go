package models

import "time"

// BadgeCriteria names the metric a badge threshold is compared against.
type BadgeCriteria string

const (
	CriteriaSnippetCount BadgeCriteria = "SNIPPET_COUNT"
	CriteriaLikeCount    BadgeCriteria = "LIKE_COUNT"
	CriteriaCommentCount BadgeCriteria = "COMMENT_COUNT"
	CriteriaTopRated     BadgeCriteria = "TOP_RATED"
)

// TopRatedAverage is the strict lower bound on a snippet's average rating for
// it to count toward TOP_RATED.
const TopRatedAverage = 4.5

// Badge is a catalog entry awarded once a metric reaches Threshold.
type Badge struct {
	ID          uint          `gorm:"primaryKey" json:"id" yaml:"-"`
	Name        string        `gorm:"uniqueIndex;size:100;not null" json:"name" yaml:"name"`
	Description string        `gorm:"type:text" json:"description" yaml:"description"`
	Icon        string        `gorm:"size:50" json:"icon" yaml:"icon"`
	Criteria    BadgeCriteria `gorm:"size:30;not null" json:"criteria" yaml:"criteria"`
	Threshold   int64         `gorm:"not null" json:"threshold" yaml:"threshold"`
}

// UserBadge records an award. Unique per (user, badge); awards are never revoked.
type UserBadge struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;uniqueIndex:idx_user_badges_pair" json:"user_id"`
	BadgeID   uint      `gorm:"not null;uniqueIndex:idx_user_badges_pair" json:"badge_id"`
	AwardedAt time.Time `gorm:"autoCreateTime" json:"awarded_at"`

	User  *User  `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	Badge *Badge `gorm:"foreignKey:BadgeID;constraint:OnDelete:CASCADE" json:"badge,omitempty"`
}

// BadgeMetrics are the per-user counters badge criteria are evaluated against.
type BadgeMetrics struct {
	Snippets        int64
	LikesReceived   int64
	CommentsWritten int64
	TopRated        int64
}

// Value returns the metric matching criteria.
func (m BadgeMetrics) Value(c BadgeCriteria) (int64, bool) {
	switch c {
	case CriteriaSnippetCount:
		return m.Snippets, true
	case CriteriaLikeCount:
		return m.LikesReceived, true
	case CriteriaCommentCount:
		return m.CommentsWritten, true
	case CriteriaTopRated:
		return m.TopRated, true
	}
	return 0, false
}
