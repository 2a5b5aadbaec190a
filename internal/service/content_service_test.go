package service

import (
	"context"
	"strings"
	"testing"

	"face2geek/internal/cache"
	"face2geek/internal/models"
	"face2geek/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr[T any](v T) *T { return &v }

func TestSnippetService_Publish(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	author := testutil.CreateUser(t, env.db, "author")
	other := testutil.CreateUser(t, env.db, "other")

	tests := []struct {
		name string
		in   CreateSnippetInput
	}{
		{"missing title", CreateSnippetInput{Code: "x", Language: "go"}},
		{"missing code", CreateSnippetInput{Title: "t", Language: "go"}},
		{"missing language", CreateSnippetInput{Title: "t", Code: "x"}},
		{"title too long", CreateSnippetInput{Title: strings.Repeat("t", 201), Code: "x", Language: "go"}},
		{"too many tags", CreateSnippetInput{Title: "t", Code: "x", Language: "go", Tags: strings.Split("a,b,c,d,e,f,g,h,i,j,k", ",")}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := env.snippets.Publish(ctx, author.ID, tt.in)
			assertValidationError(t, err)
		})
	}
	assert.EqualValues(t, 0, env.count(t, &models.Snippet{}, "user_id = ?", author.ID))

	t.Run("normalizes input", func(t *testing.T) {
		s, err := env.snippets.Publish(ctx, author.ID, CreateSnippetInput{
			Title:    "  Binary search ",
			Code:     "func search() {}",
			Language: " Go ",
			Tags:     []string{"Algo", "algo ", "", "Search"},
		})
		require.NoError(t, err)
		assert.Equal(t, "Binary search", s.Title)
		assert.Equal(t, "go", s.Language)
		assert.Equal(t, []string{"algo", "search"}, []string(s.Tags))
		require.NotNil(t, s.User)
		assert.Equal(t, "author", s.User.Profile.Username)
	})

	t.Run("foreign collection is forbidden", func(t *testing.T) {
		col, err := env.collections.Create(ctx, other.ID, CreateCollectionInput{Name: "theirs"})
		require.NoError(t, err)

		_, err = env.snippets.Publish(ctx, author.ID, CreateSnippetInput{Title: "t", Code: "x", Language: "go", CollectionID: &col.ID})
		assertAppError(t, err, models.CodeForbidden)
	})

	t.Run("own collection", func(t *testing.T) {
		col, err := env.collections.Create(ctx, author.ID, CreateCollectionInput{Name: "mine"})
		require.NoError(t, err)

		s, err := env.snippets.Publish(ctx, author.ID, CreateSnippetInput{Title: "t", Code: "x", Language: "go", CollectionID: &col.ID})
		require.NoError(t, err)
		require.NotNil(t, s.CollectionID)
		assert.Equal(t, col.ID, *s.CollectionID)
	})

	t.Run("missing collection", func(t *testing.T) {
		_, err := env.snippets.Publish(ctx, author.ID, CreateSnippetInput{Title: "t", Code: "x", Language: "go", CollectionID: ptr(uint(999))})
		assertAppError(t, err, models.CodeNotFound)
	})
}

func TestSnippetService_RecordView(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	author := testutil.CreateUser(t, env.db, "author")
	s := testutil.CreateSnippet(t, env.db, author.ID, "viewed")

	for want := int64(1); want <= 3; want++ {
		views, err := env.snippets.RecordView(ctx, s.ID)
		require.NoError(t, err)
		assert.Equal(t, want, views)
	}

	_, err := env.snippets.RecordView(ctx, 999)
	assertAppError(t, err, models.CodeNotFound)
}

func TestCommentService(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	author := testutil.CreateUser(t, env.db, "author")
	reader := testutil.CreateUser(t, env.db, "reader")
	s := testutil.CreateSnippet(t, env.db, author.ID, "discussed")

	t.Run("empty content", func(t *testing.T) {
		_, err := env.comments.AddComment(ctx, reader.ID, s.ID, "   ")
		assertValidationError(t, err)
	})

	t.Run("content too long", func(t *testing.T) {
		_, err := env.comments.AddComment(ctx, reader.ID, s.ID, strings.Repeat("x", 5001))
		assertValidationError(t, err)
	})

	t.Run("missing snippet", func(t *testing.T) {
		_, err := env.comments.AddComment(ctx, reader.ID, 999, "hello")
		assertAppError(t, err, models.CodeNotFound)

		_, err = env.comments.ListComments(ctx, 999, 0, 0)
		assertAppError(t, err, models.CodeNotFound)
	})

	c, err := env.comments.AddComment(ctx, reader.ID, s.ID, " nice one ")
	require.NoError(t, err)
	assert.Equal(t, "nice one", c.Content)
	require.NotNil(t, c.User)

	_, err = env.comments.AddComment(ctx, author.ID, s.ID, "thanks")
	require.NoError(t, err)

	list, err := env.comments.ListComments(ctx, s.ID, 0, 0)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "thanks", list[0].Content)

	// The author's own reply does not notify them.
	assert.EqualValues(t, 1, env.notificationCount(t, author.ID, models.NotificationComment))
}

func TestProfileService(t *testing.T) {
	env := newTestEnv(t, withRedis())
	ctx := context.Background()
	alice := testutil.CreateUser(t, env.db, "alice")
	bob := testutil.CreateUser(t, env.db, "bob")
	testutil.CreateSnippet(t, env.db, alice.ID, "one")

	view, err := env.profiles.GetByUsername(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, "alice", view.Profile.Username)
	assert.NotNil(t, view.Badges)
	assert.EqualValues(t, 1, view.Stats.SnippetsCount)
	assert.True(t, env.mr.Exists(cache.ProfileStatsKey(alice.ID)))

	t.Run("follow invalidates cached stats", func(t *testing.T) {
		_, err := env.engagement.ToggleFollow(ctx, bob.ID, "alice")
		require.NoError(t, err)
		assert.False(t, env.mr.Exists(cache.ProfileStatsKey(alice.ID)))

		stats, err := env.profiles.Stats(ctx, alice.ID)
		require.NoError(t, err)
		assert.EqualValues(t, 1, stats.FollowerCount)
	})

	t.Run("unknown username", func(t *testing.T) {
		_, err := env.profiles.GetByUsername(ctx, "ghost")
		assertAppError(t, err, models.CodeNotFound)
	})

	t.Run("update", func(t *testing.T) {
		p, err := env.profiles.Update(ctx, alice.ID, UpdateProfileInput{
			Bio:       ptr("  gopher  "),
			GithubURL: ptr("https://github.com/alice"),
		})
		require.NoError(t, err)
		assert.Equal(t, "gopher", p.Bio)
		assert.Equal(t, "alice", p.Username)

		own, err := env.profiles.GetOwn(ctx, alice.ID)
		require.NoError(t, err)
		assert.Equal(t, "https://github.com/alice", own.Profile.GithubURL)
	})

	t.Run("update validation", func(t *testing.T) {
		_, err := env.profiles.Update(ctx, alice.ID, UpdateProfileInput{Username: ptr("no spaces allowed")})
		assertValidationError(t, err)

		_, err = env.profiles.Update(ctx, alice.ID, UpdateProfileInput{Bio: ptr(strings.Repeat("b", 501))})
		assertValidationError(t, err)

		_, err = env.profiles.Update(ctx, alice.ID, UpdateProfileInput{WebsiteURL: ptr("ftp://example.com")})
		assertValidationError(t, err)
	})

	t.Run("taken username", func(t *testing.T) {
		_, err := env.profiles.Update(ctx, alice.ID, UpdateProfileInput{Username: ptr("bob")})
		assertValidationError(t, err)
	})

	t.Run("list", func(t *testing.T) {
		profiles, err := env.profiles.List(ctx, 0, 0)
		require.NoError(t, err)
		assert.Len(t, profiles, 2)
	})
}

func TestCollectionService(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	user := testutil.CreateUser(t, env.db, "collector")

	_, err := env.collections.Create(ctx, user.ID, CreateCollectionInput{Name: " "})
	assertValidationError(t, err)

	_, err = env.collections.Create(ctx, user.ID, CreateCollectionInput{Name: strings.Repeat("n", 101)})
	assertValidationError(t, err)

	pub, err := env.collections.Create(ctx, user.ID, CreateCollectionInput{Name: "Public"})
	require.NoError(t, err)
	assert.True(t, pub.IsPublic)

	priv, err := env.collections.Create(ctx, user.ID, CreateCollectionInput{Name: "Private", IsPublic: ptr(false)})
	require.NoError(t, err)
	assert.False(t, priv.IsPublic)

	list, err := env.collections.List(ctx, user.ID)
	require.NoError(t, err)
	assert.Len(t, list, 2)
}
