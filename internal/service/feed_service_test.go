package service

import (
	"context"
	"fmt"
	"testing"
	"time"

	"face2geek/internal/models"
	"face2geek/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFeedService_FollowingNobody(t *testing.T) {
	env := newTestEnv(t)
	loner := testutil.CreateUser(t, env.db, "loner")
	other := testutil.CreateUser(t, env.db, "other")
	testutil.CreateSnippet(t, env.db, other.ID, "unrelated")

	feed, err := env.feed.FeedFor(context.Background(), loner.ID)
	require.NoError(t, err)
	assert.NotNil(t, feed)
	assert.Empty(t, feed)
}

func TestFeedService_FolloweesOnlyNewestFirst(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	reader := testutil.CreateUser(t, env.db, "reader")
	followed := testutil.CreateUser(t, env.db, "followed")
	stranger := testutil.CreateUser(t, env.db, "stranger")

	_, err := env.engagement.ToggleFollow(ctx, reader.ID, "followed")
	require.NoError(t, err)

	base := time.Now().Add(-time.Hour)
	for i := 0; i < 25; i++ {
		s := testutil.CreateSnippet(t, env.db, followed.ID, fmt.Sprintf("post-%02d", i))
		require.NoError(t, env.db.Model(s).Update("created_at", base.Add(time.Duration(i)*time.Minute)).Error)
	}
	testutil.CreateSnippet(t, env.db, stranger.ID, "not in feed")
	testutil.CreateSnippet(t, env.db, reader.ID, "own snippet")

	feed, err := env.feed.FeedFor(ctx, reader.ID)
	require.NoError(t, err)
	require.Len(t, feed, FeedSize)

	assert.Equal(t, "post-24", feed[0].Title)
	for i, s := range feed {
		assert.Equal(t, followed.ID, s.UserID)
		if i > 0 {
			assert.False(t, s.CreatedAt.After(feed[i-1].CreatedAt), "feed not newest first at %d", i)
		}
	}

	t.Run("unfollowing empties the feed", func(t *testing.T) {
		following, err := env.engagement.ToggleFollow(ctx, reader.ID, "followed")
		require.NoError(t, err)
		require.False(t, following)

		feed, err := env.feed.FeedFor(ctx, reader.ID)
		require.NoError(t, err)
		assert.Equal(t, []*models.Snippet{}, feed)
	})
}
