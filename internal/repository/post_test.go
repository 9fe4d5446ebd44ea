package repository

import (
	"context"
	"testing"

	"cityfeed/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPostRepository_QueryCityScoping(t *testing.T) {
	t.Parallel()
	db := setupTestDB(t)
	repo := NewPostRepository(db)
	ctx := context.Background()

	author := createTestUser(t, db, "austin@example.com", "Austin")
	createTestPost(t, db, author.ID, "Austin", models.PostTypeRecommend, "Best tacos on South Congress")
	createTestPost(t, db, author.ID, "Austin", models.PostTypeUpdate, "Road closure downtown")
	createTestPost(t, db, author.ID, "Denver", models.PostTypeRecommend, "Great trailhead nearby")

	posts, total, err := repo.Query(ctx, PostFilter{City: "Austin", Limit: 10}, 0)
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	require.Len(t, posts, 2)
	for _, p := range posts {
		assert.Equal(t, "Austin", p.City)
	}

	posts, total, err = repo.Query(ctx, PostFilter{City: "Denver", Limit: 10}, 0)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, posts, 1)
	assert.Equal(t, "Great trailhead nearby", posts[0].Content)
}

func TestPostRepository_QueryPostTypeAndSearch(t *testing.T) {
	t.Parallel()
	db := setupTestDB(t)
	repo := NewPostRepository(db)
	ctx := context.Background()

	author := createTestUser(t, db, "a@example.com", "Austin")
	createTestPost(t, db, author.ID, "Austin", models.PostTypeRecommend, "Best BBQ in town")
	createTestPost(t, db, author.ID, "Austin", models.PostTypeHelp, "Need a plumber recommendation")
	createTestPost(t, db, author.ID, "Austin", models.PostTypeEvent, "Live music Saturday")

	posts, total, err := repo.Query(ctx, PostFilter{City: "Austin", PostType: models.PostTypeHelp, Limit: 10}, 0)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, posts, 1)
	assert.Equal(t, models.PostTypeHelp, posts[0].PostType)

	// Search is case-insensitive.
	posts, total, err = repo.Query(ctx, PostFilter{City: "Austin", Search: "bbq", Limit: 10}, 0)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, posts, 1)
	assert.Equal(t, "Best BBQ in town", posts[0].Content)
}

func TestPostRepository_QueryAuthorFilter(t *testing.T) {
	t.Parallel()
	db := setupTestDB(t)
	repo := NewPostRepository(db)
	ctx := context.Background()

	alice := createTestUser(t, db, "alice@example.com", "Austin")
	bob := createTestUser(t, db, "bob@example.com", "Austin")
	createTestPost(t, db, alice.ID, "Austin", models.PostTypeUpdate, "from alice")
	createTestPost(t, db, bob.ID, "Austin", models.PostTypeUpdate, "from bob")

	posts, total, err := repo.Query(ctx, PostFilter{AuthorID: alice.ID, Limit: 10}, 0)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, posts, 1)
	assert.Equal(t, alice.ID, posts[0].UserID)
}

func TestPostRepository_QuerySortMostLiked(t *testing.T) {
	t.Parallel()
	db := setupTestDB(t)
	repo := NewPostRepository(db)
	ctx := context.Background()

	author := createTestUser(t, db, "a@example.com", "Austin")
	fans := []*models.User{
		createTestUser(t, db, "f1@example.com", "Austin"),
		createTestUser(t, db, "f2@example.com", "Austin"),
	}

	first := createTestPost(t, db, author.ID, "Austin", models.PostTypeUpdate, "older post")
	second := createTestPost(t, db, author.ID, "Austin", models.PostTypeUpdate, "newer post")
	third := createTestPost(t, db, author.ID, "Austin", models.PostTypeUpdate, "popular post")

	for _, fan := range fans {
		require.NoError(t, repo.SetReaction(ctx, fan.ID, third.ID, false))
	}
	require.NoError(t, repo.SetReaction(ctx, fans[0].ID, first.ID, false))
	require.NoError(t, repo.SetReaction(ctx, fans[1].ID, second.ID, false))

	posts, _, err := repo.Query(ctx, PostFilter{City: "Austin", SortBy: "mostLiked", Limit: 10}, 0)
	require.NoError(t, err)
	require.Len(t, posts, 3)
	assert.Equal(t, third.ID, posts[0].ID)
	assert.Equal(t, 2, posts[0].LikesCount)
	// Ties fall back to recency: second was created after first.
	assert.Equal(t, second.ID, posts[1].ID)
	assert.Equal(t, first.ID, posts[2].ID)
}

func TestPostRepository_QuerySortOldest(t *testing.T) {
	t.Parallel()
	db := setupTestDB(t)
	repo := NewPostRepository(db)
	ctx := context.Background()

	author := createTestUser(t, db, "a@example.com", "Austin")
	first := createTestPost(t, db, author.ID, "Austin", models.PostTypeUpdate, "one")
	second := createTestPost(t, db, author.ID, "Austin", models.PostTypeUpdate, "two")

	posts, _, err := repo.Query(ctx, PostFilter{City: "Austin", SortBy: "oldest", Limit: 10}, 0)
	require.NoError(t, err)
	require.Len(t, posts, 2)
	assert.Equal(t, first.ID, posts[0].ID)
	assert.Equal(t, second.ID, posts[1].ID)
}

func TestPostRepository_ReactionMutualExclusion(t *testing.T) {
	t.Parallel()
	db := setupTestDB(t)
	repo := NewPostRepository(db)
	ctx := context.Background()

	author := createTestUser(t, db, "a@example.com", "Austin")
	fan := createTestUser(t, db, "fan@example.com", "Austin")
	post := createTestPost(t, db, author.ID, "Austin", models.PostTypeRecommend, "hello")

	require.NoError(t, repo.SetReaction(ctx, fan.ID, post.ID, false))
	require.NoError(t, repo.SetReaction(ctx, fan.ID, post.ID, true))

	// Flipping like to dislike updates the single row in place.
	var count int64
	require.NoError(t, db.Model(&models.Reaction{}).
		Where("user_id = ? AND post_id = ?", fan.ID, post.ID).
		Count(&count).Error)
	assert.Equal(t, int64(1), count)

	reaction, err := repo.GetReaction(ctx, fan.ID, post.ID)
	require.NoError(t, err)
	require.NotNil(t, reaction)
	assert.True(t, reaction.IsDislike)

	got, err := repo.GetByID(ctx, post.ID, fan.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, got.LikesCount)
	assert.Equal(t, 1, got.DislikesCount)
	assert.False(t, got.Liked)
	assert.True(t, got.Disliked)
}

func TestPostRepository_ClearReaction(t *testing.T) {
	t.Parallel()
	db := setupTestDB(t)
	repo := NewPostRepository(db)
	ctx := context.Background()

	author := createTestUser(t, db, "a@example.com", "Austin")
	fan := createTestUser(t, db, "fan@example.com", "Austin")
	post := createTestPost(t, db, author.ID, "Austin", models.PostTypeRecommend, "hello")

	require.NoError(t, repo.SetReaction(ctx, fan.ID, post.ID, false))
	require.NoError(t, repo.ClearReaction(ctx, fan.ID, post.ID))

	reaction, err := repo.GetReaction(ctx, fan.ID, post.ID)
	require.NoError(t, err)
	assert.Nil(t, reaction)

	got, err := repo.GetByID(ctx, post.ID, fan.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, got.LikesCount)
	assert.False(t, got.Liked)
}

func TestPostRepository_SoftDelete(t *testing.T) {
	t.Parallel()
	db := setupTestDB(t)
	repo := NewPostRepository(db)
	ctx := context.Background()

	author := createTestUser(t, db, "a@example.com", "Austin")
	post := createTestPost(t, db, author.ID, "Austin", models.PostTypeUpdate, "soon gone")

	require.NoError(t, repo.SoftDelete(ctx, post.ID))

	posts, total, err := repo.Query(ctx, PostFilter{City: "Austin", Limit: 10}, 0)
	require.NoError(t, err)
	assert.Equal(t, int64(0), total)
	assert.Empty(t, posts)

	// The row survives for audit; only feeds treat it as gone.
	got, err := repo.GetByID(ctx, post.ID, 0)
	require.NoError(t, err)
	assert.False(t, got.IsActive)
}

func TestPostRepository_QueryPagination(t *testing.T) {
	t.Parallel()
	db := setupTestDB(t)
	repo := NewPostRepository(db)
	ctx := context.Background()

	author := createTestUser(t, db, "a@example.com", "Austin")
	for i := 0; i < 5; i++ {
		createTestPost(t, db, author.ID, "Austin", models.PostTypeUpdate, "post")
	}

	posts, total, err := repo.Query(ctx, PostFilter{City: "Austin", Limit: 2, Offset: 4}, 0)
	require.NoError(t, err)
	assert.Equal(t, int64(5), total)
	assert.Len(t, posts, 1)
}
