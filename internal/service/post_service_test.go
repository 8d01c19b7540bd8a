package service

import (
	"context"
	"testing"

	"myboard/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPostService_Create(t *testing.T) {
	t.Parallel()

	repos := setupRepos(t)
	svc := NewPostService(repos.posts)
	ctx := context.Background()

	post, err := svc.Create(ctx, "alice", "title", "content", "/image/a.jpg")
	require.NoError(t, err)
	assert.NotZero(t, post.ID)
	assert.Equal(t, "alice", post.Writer)
	assert.Equal(t, "/image/a.jpg", post.ImagePath)

	bare, err := svc.Create(ctx, "alice", "no image", "", "")
	require.NoError(t, err)
	assert.Empty(t, bare.ImagePath)
}

func TestPostService_Edit(t *testing.T) {
	t.Parallel()

	repos := setupRepos(t)
	svc := NewPostService(repos.posts)
	ctx := context.Background()

	post, err := svc.Create(ctx, "alice", "original", "body", "")
	require.NoError(t, err)

	t.Run("owner edits", func(t *testing.T) {
		require.NoError(t, svc.Edit(ctx, "alice", post.ID, "edited", "new body"))

		got, err := svc.Get(ctx, post.ID)
		require.NoError(t, err)
		assert.Equal(t, "edited", got.Title)
	})

	t.Run("non-owner gets forbidden", func(t *testing.T) {
		err := svc.Edit(ctx, "mallory", post.ID, "hijacked", "x")
		require.Error(t, err)

		var appErr *models.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, "FORBIDDEN", appErr.Code)

		got, err := svc.Get(ctx, post.ID)
		require.NoError(t, err)
		assert.Equal(t, "edited", got.Title, "post unchanged after forbidden edit")
	})

	t.Run("missing post gets not found", func(t *testing.T) {
		err := svc.Edit(ctx, "alice", 9999, "t", "c")
		require.Error(t, err)

		var appErr *models.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, "NOT_FOUND", appErr.Code)
	})
}

func TestPostService_Delete(t *testing.T) {
	t.Parallel()

	repos := setupRepos(t)
	svc := NewPostService(repos.posts)
	ctx := context.Background()

	post, err := svc.Create(ctx, "alice", "mine", "", "")
	require.NoError(t, err)

	t.Run("non-owner gets forbidden", func(t *testing.T) {
		err := svc.Delete(ctx, "mallory", post.ID)
		require.Error(t, err)

		var appErr *models.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, "FORBIDDEN", appErr.Code)
	})

	t.Run("owner deletes", func(t *testing.T) {
		require.NoError(t, svc.Delete(ctx, "alice", post.ID))

		_, err := svc.Get(ctx, post.ID)
		require.Error(t, err)
	})

	t.Run("second delete gets not found", func(t *testing.T) {
		err := svc.Delete(ctx, "alice", post.ID)
		require.Error(t, err)

		var appErr *models.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, "NOT_FOUND", appErr.Code)
	})
}
