package models

import "time"

// User is an account known to the external identity provider. The engine only
// reads it; rows are created on first sign-in or by the seeders.
type User struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Email     string    `gorm:"uniqueIndex;size:255;not null" json:"email"`
	Name      string    `gorm:"size:100" json:"name"`
	Image     string    `json:"image,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Profile *Profile `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"profile,omitempty"`
}

// Profile is the public face of a user. Usernames are unique and address
// follow targets.
type Profile struct {
	UserID     uint      `gorm:"primaryKey;autoIncrement:false" json:"user_id"`
	Username   string    `gorm:"uniqueIndex;size:50;not null" json:"username"`
	FullName   string    `gorm:"size:100" json:"full_name"`
	Bio        string    `gorm:"type:text" json:"bio,omitempty"`
	GithubURL  string    `json:"github_url,omitempty"`
	WebsiteURL string    `json:"website_url,omitempty"`
	TwitterURL string    `json:"twitter_url,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// ProfileStats aggregates engagement counters shown on a profile page.
type ProfileStats struct {
	SnippetsCount  int64 `json:"snippets_count"`
	LikesReceived  int64 `json:"likes_received"`
	FollowerCount  int64 `json:"follower_count"`
	FollowingCount int64 `json:"following_count"`
}

// ProfileView is a profile with its earned badges and stats.
type ProfileView struct {
	Profile *Profile      `json:"profile"`
	Badges  []*UserBadge  `json:"badges"`
	Stats   *ProfileStats `json:"stats"`
}
