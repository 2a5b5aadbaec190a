// Package events dispatches domain events to post-commit hooks.
package events

// Event names.
const (
	NameFollowCreated    = "follow.created"
	NameFollowRemoved    = "follow.removed"
	NameLikeCreated      = "like.created"
	NameLikeRemoved      = "like.removed"
	NameRatingCreated    = "rating.created"
	NameCommentCreated   = "comment.created"
	NameSnippetPublished = "snippet.published"
	NameMessageSent      = "message.sent"
)

// Event is a fact that has already been committed.
type Event interface {
	Name() string
}

// FollowCreated is published when a new follow edge is created.
type FollowCreated struct {
	FollowerID uint
	FollowedID uint
}

func (FollowCreated) Name() string { return NameFollowCreated }

// FollowRemoved is published when an unfollow deletes the edge. Only cached
// counters react to it.
type FollowRemoved struct {
	FollowerID uint
	FollowedID uint
}

func (FollowRemoved) Name() string { return NameFollowRemoved }

// LikeCreated is published when a user likes a snippet. OwnerID is the
// snippet's author.
type LikeCreated struct {
	UserID    uint
	SnippetID uint
	OwnerID   uint
}

func (LikeCreated) Name() string { return NameLikeCreated }

// LikeRemoved is published when an unlike deletes the like.
type LikeRemoved struct {
	UserID    uint
	SnippetID uint
	OwnerID   uint
}

func (LikeRemoved) Name() string { return NameLikeRemoved }

// RatingCreated is published for a user's first rating of a snippet only.
type RatingCreated struct {
	UserID    uint
	SnippetID uint
	OwnerID   uint
	Score     int
}

func (RatingCreated) Name() string { return NameRatingCreated }

// CommentCreated is published after a comment is stored.
type CommentCreated struct {
	CommentID uint
	UserID    uint
	SnippetID uint
	OwnerID   uint
}

func (CommentCreated) Name() string { return NameCommentCreated }

// SnippetPublished is published after a snippet is created.
type SnippetPublished struct {
	SnippetID uint
	UserID    uint
}

func (SnippetPublished) Name() string { return NameSnippetPublished }

// MessageSent is published after a direct message is stored.
type MessageSent struct {
	MessageID      uint
	ConversationID uint
	SenderID       uint
	RecipientID    uint
}

func (MessageSent) Name() string { return NameMessageSent }
