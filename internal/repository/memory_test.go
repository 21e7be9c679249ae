package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/semsolhan1/todo-api202306/internal/models"
)

func TestMemoryTodoRepositorySaveAndFind(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryTodoRepository()

	todo := &models.Todo{ID: "t1", Title: "first", UserID: "u1", CreatedAt: time.Now()}
	require.NoError(t, repo.Save(ctx, todo))

	got, err := repo.FindByID(ctx, "t1")
	require.NoError(t, err)
	assert.Equal(t, "first", got.Title)
	assert.False(t, got.Done)

	// Save with an existing id is a full replace, not a second record.
	todo.Done = true
	require.NoError(t, repo.Save(ctx, todo))
	got, err = repo.FindByID(ctx, "t1")
	require.NoError(t, err)
	assert.True(t, got.Done)

	n, err := repo.CountByOwner(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestMemoryTodoRepositoryFindByIDMissing(t *testing.T) {
	repo := NewMemoryTodoRepository()
	_, err := repo.FindByID(context.Background(), "nope")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryTodoRepositoryOwnerScoping(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryTodoRepository()
	require.NoError(t, repo.Save(ctx, &models.Todo{ID: "a", UserID: "u1"}))
	require.NoError(t, repo.Save(ctx, &models.Todo{ID: "b", UserID: "u1"}))
	require.NoError(t, repo.Save(ctx, &models.Todo{ID: "c", UserID: "u2"}))

	todos, err := repo.FindAllByOwner(ctx, "u1")
	require.NoError(t, err)
	assert.Len(t, todos, 2)

	n, err := repo.CountByOwner(ctx, "u2")
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestMemoryTodoRepositoryDelete(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryTodoRepository()
	require.NoError(t, repo.Save(ctx, &models.Todo{ID: "a", UserID: "u1"}))

	require.NoError(t, repo.DeleteByID(ctx, "a"))
	_, err := repo.FindByID(ctx, "a")
	assert.ErrorIs(t, err, ErrNotFound)

	assert.ErrorIs(t, repo.DeleteByID(ctx, "a"), ErrNotFound)
}

func TestMemoryUserRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryUserRepository()

	u := &models.User{ID: "u1", Email: "a@b.c", UserName: "a", Role: models.RoleCommon}
	require.NoError(t, repo.Save(ctx, u))

	got, err := repo.FindByID(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, "a@b.c", got.Email)

	got, err = repo.FindByEmail(ctx, "a@b.c")
	require.NoError(t, err)
	assert.Equal(t, "u1", got.ID)

	exists, err := repo.ExistsByEmail(ctx, "a@b.c")
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = repo.ExistsByEmail(ctx, "x@y.z")
	require.NoError(t, err)
	assert.False(t, exists)

	_, err = repo.FindByID(ctx, "nope")
	assert.ErrorIs(t, err, ErrNotFound)
}
