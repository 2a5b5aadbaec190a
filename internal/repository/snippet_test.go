package repository

import (
	"context"
	"testing"

	"face2geek/internal/models"
	"face2geek/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSnippetRepository_Details(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSnippetRepository(db)
	engagement := NewEngagementRepository(db)
	comments := NewCommentRepository(db)
	ctx := context.Background()

	owner := testutil.CreateUser(t, db, "owner")
	fan := testutil.CreateUser(t, db, "fan")
	critic := testutil.CreateUser(t, db, "critic")

	snippet := &models.Snippet{Title: "quicksort", Code: "func qs() {}", Language: "go", Tags: []string{"sort", "go"}, UserID: owner.ID}
	require.NoError(t, repo.Create(ctx, snippet))

	_, err := engagement.ToggleLike(ctx, fan.ID, snippet.ID)
	require.NoError(t, err)
	_, _, err = engagement.UpsertRating(ctx, fan.ID, snippet.ID, 4)
	require.NoError(t, err)
	_, _, err = engagement.UpsertRating(ctx, critic.ID, snippet.ID, 5)
	require.NoError(t, err)
	require.NoError(t, comments.Create(ctx, &models.Comment{Content: "nice", UserID: critic.ID, SnippetID: snippet.ID}))

	t.Run("viewer who liked", func(t *testing.T) {
		got, err := repo.GetByID(ctx, snippet.ID, fan.ID)
		require.NoError(t, err)
		assert.Equal(t, int64(1), got.LikesCount)
		assert.Equal(t, int64(1), got.CommentsCount)
		assert.Equal(t, int64(2), got.RatingsCount)
		assert.InDelta(t, 4.5, got.AvgRating, 0.001)
		assert.True(t, got.Liked)
		assert.Equal(t, []string{"sort", "go"}, []string(got.Tags))
		require.NotNil(t, got.User)
		require.NotNil(t, got.User.Profile)
		assert.Equal(t, "owner", got.User.Profile.Username)
	})

	t.Run("anonymous viewer", func(t *testing.T) {
		got, err := repo.GetByID(ctx, snippet.ID, 0)
		require.NoError(t, err)
		assert.False(t, got.Liked)
	})

	t.Run("missing snippet", func(t *testing.T) {
		_, err := repo.GetByID(ctx, 9999, 0)
		assert.True(t, models.IsCode(err, models.CodeNotFound))
	})
}

func TestSnippetRepository_ListByOwners(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSnippetRepository(db)
	ctx := context.Background()

	a := testutil.CreateUser(t, db, "a")
	b := testutil.CreateUser(t, db, "b")
	c := testutil.CreateUser(t, db, "c")

	first := testutil.CreateSnippet(t, db, a.ID, "first")
	testutil.CreateSnippet(t, db, c.ID, "unfollowed")
	second := testutil.CreateSnippet(t, db, b.ID, "second")

	got, err := repo.ListByOwners(ctx, []uint{a.ID, b.ID}, 20, 0)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, second.ID, got[0].ID)
	assert.Equal(t, first.ID, got[1].ID)

	empty, err := repo.ListByOwners(ctx, nil, 20, 0)
	require.NoError(t, err)
	assert.NotNil(t, empty)
	assert.Empty(t, empty)
}

func TestSnippetRepository_IncrementViews(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSnippetRepository(db)
	ctx := context.Background()

	owner := testutil.CreateUser(t, db, "owner")
	snippet := testutil.CreateSnippet(t, db, owner.ID, "viewed")

	for want := int64(1); want <= 3; want++ {
		views, err := repo.IncrementViews(ctx, snippet.ID)
		require.NoError(t, err)
		assert.Equal(t, want, views)
	}

	_, err := repo.IncrementViews(ctx, 4242)
	assert.True(t, models.IsCode(err, models.CodeNotFound))
}

func TestCommentRepository_NewestFirst(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewCommentRepository(db)
	ctx := context.Background()

	owner := testutil.CreateUser(t, db, "owner")
	snippet := testutil.CreateSnippet(t, db, owner.ID, "discussed")

	older := &models.Comment{Content: "first", UserID: owner.ID, SnippetID: snippet.ID}
	newer := &models.Comment{Content: "second", UserID: owner.ID, SnippetID: snippet.ID}
	require.NoError(t, repo.Create(ctx, older))
	require.NoError(t, repo.Create(ctx, newer))
	require.NotNil(t, newer.User)

	got, err := repo.ListBySnippet(ctx, snippet.ID, 0, 0)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, newer.ID, got[0].ID)
	assert.Equal(t, "owner", got[0].User.Profile.Username)
}
