package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"quill/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedUser(t *testing.T, repo UserRepository, name, email string) *models.User {
	t.Helper()
	user := &models.User{Name: name, Email: email, Password: "hashed"}
	require.NoError(t, repo.Create(context.Background(), user))
	return user
}

func TestPostRepository_CreateAndGetByID(t *testing.T) {
	db := newTestDB(t)
	users := NewUserRepository(db)
	posts := NewPostRepository(db)
	ctx := context.Background()

	author := seedUser(t, users, "first author", "author@example.com")

	post := &models.Post{
		Title:       "First Post",
		Description: "A longer body of text",
		Status:      models.PostStatusDraft,
		UserID:      author.ID,
	}
	require.NoError(t, posts.Create(ctx, post))
	require.NotZero(t, post.ID)

	got, err := posts.GetByID(ctx, post.ID)
	require.NoError(t, err)
	assert.Equal(t, "First Post", got.Title)
	assert.Equal(t, models.PostStatusDraft, got.Status)
	assert.Equal(t, author.ID, got.UserID)

	// Author is preloaded with the public projection only.
	assert.Equal(t, author.Name, got.User.Name)
	assert.Equal(t, author.Email, got.User.Email)
	assert.Empty(t, got.User.Password)
}

func TestPostRepository_GetByID_NotFound(t *testing.T) {
	db := newTestDB(t)
	posts := NewPostRepository(db)

	got, err := posts.GetByID(context.Background(), 999)
	assert.Nil(t, got)

	var appErr *models.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, models.CodeNotFound, appErr.Code)
}

func TestPostRepository_ListPublished(t *testing.T) {
	db := newTestDB(t)
	users := NewUserRepository(db)
	posts := NewPostRepository(db)
	ctx := context.Background()

	author := seedUser(t, users, "feed author", "feed@example.com")

	now := time.Now()
	fixtures := []*models.Post{
		{Title: "draft one", Description: "d", Status: models.PostStatusDraft, UserID: author.ID},
		{Title: "published one", Description: "p", Status: models.PostStatusPublished, PublishedAt: &now, UserID: author.ID},
		{Title: "archived one", Description: "a", Status: models.PostStatusArchived, UserID: author.ID},
		{Title: "published two", Description: "p", Status: models.PostStatusPublished, PublishedAt: &now, UserID: author.ID},
	}
	for _, p := range fixtures {
		require.NoError(t, posts.Create(ctx, p))
	}

	published, err := posts.ListPublished(ctx)
	require.NoError(t, err)
	require.Len(t, published, 2)
	for _, p := range published {
		assert.Equal(t, models.PostStatusPublished, p.Status)
		assert.Equal(t, author.Name, p.User.Name)
	}
}

func TestPostRepository_Update(t *testing.T) {
	db := newTestDB(t)
	users := NewUserRepository(db)
	posts := NewPostRepository(db)
	ctx := context.Background()

	author := seedUser(t, users, "edit author", "edit@example.com")
	post := &models.Post{Title: "before", Description: "body", Status: models.PostStatusDraft, UserID: author.ID}
	require.NoError(t, posts.Create(ctx, post))

	post.Title = "after"
	post.Status = models.PostStatusPublished
	now := time.Now()
	post.PublishedAt = &now
	require.NoError(t, posts.Update(ctx, post))

	got, err := posts.GetByID(ctx, post.ID)
	require.NoError(t, err)
	assert.Equal(t, "after", got.Title)
	assert.Equal(t, models.PostStatusPublished, got.Status)
	require.NotNil(t, got.PublishedAt)
}
