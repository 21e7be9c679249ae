package service

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/semsolhan1/todo-api202306/internal/models"
	"github.com/semsolhan1/todo-api202306/internal/repository"
)

func newTodoFixture(t *testing.T) (*TodoService, *repository.MemoryTodoRepository, *repository.MemoryUserRepository) {
	t.Helper()
	todos := repository.NewMemoryTodoRepository()
	users := repository.NewMemoryUserRepository()
	return NewTodoService(todos, users, nil, nil), todos, users
}

func seedUser(t *testing.T, users *repository.MemoryUserRepository, role models.Role) *models.User {
	t.Helper()
	u := &models.User{
		ID:        uuid.New().String(),
		Email:     fmt.Sprintf("%s@example.com", uuid.New().String()[:8]),
		UserName:  "tester",
		Role:      role,
		CreatedAt: time.Now(),
	}
	require.NoError(t, users.Save(context.Background(), u))
	return u
}

func caller(u *models.User) models.TokenUserInfo {
	return models.TokenUserInfo{UserID: u.ID, Role: u.Role}
}

func TestCreateAssignsIDAndDefaults(t *testing.T) {
	ctx := context.Background()
	svc, todos, users := newTodoFixture(t)
	u := seedUser(t, users, models.RoleCommon)

	resp, err := svc.Create(ctx, &models.TodoCreateRequest{Title: "buy milk"}, caller(u))
	require.NoError(t, err)
	require.Len(t, resp.Todos, 1)
	assert.Equal(t, "buy milk", resp.Todos[0].Title)
	assert.False(t, resp.Todos[0].Done)
	assert.NotEmpty(t, resp.Todos[0].ID)

	stored, err := todos.FindByID(ctx, resp.Todos[0].ID)
	require.NoError(t, err)
	assert.Equal(t, u.ID, stored.UserID)
	assert.False(t, stored.CreatedAt.IsZero())
}

func TestCreateGeneratesUniqueIDs(t *testing.T) {
	ctx := context.Background()
	svc, _, users := newTodoFixture(t)
	u := seedUser(t, users, models.RoleAdmin)

	seen := make(map[string]bool)
	for i := 0; i < 10; i++ {
		resp, err := svc.Create(ctx, &models.TodoCreateRequest{Title: fmt.Sprintf("todo %d", i)}, caller(u))
		require.NoError(t, err)
		for _, v := range resp.Todos {
			seen[v.ID] = true
		}
	}
	assert.Len(t, seen, 10)
}

func TestCreateQuotaForCommonUser(t *testing.T) {
	ctx := context.Background()
	svc, todos, users := newTodoFixture(t)
	u := seedUser(t, users, models.RoleCommon)

	for i := 0; i < 5; i++ {
		_, err := svc.Create(ctx, &models.TodoCreateRequest{Title: fmt.Sprintf("todo %d", i)}, caller(u))
		require.NoError(t, err)
	}

	_, err := svc.Create(ctx, &models.TodoCreateRequest{Title: "one too many"}, caller(u))
	assert.ErrorIs(t, err, ErrQuotaExceeded)

	// The rejected create must not write.
	n, err := todos.CountByOwner(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, 5, n)
}

func TestCreateAdminIsNeverLimited(t *testing.T) {
	ctx := context.Background()
	svc, _, users := newTodoFixture(t)
	u := seedUser(t, users, models.RoleAdmin)

	var resp *models.TodoListResponse
	var err error
	for i := 0; i < 8; i++ {
		resp, err = svc.Create(ctx, &models.TodoCreateRequest{Title: fmt.Sprintf("todo %d", i)}, caller(u))
		require.NoError(t, err)
	}
	assert.Len(t, resp.Todos, 8)
}

func TestCreateUnknownUser(t *testing.T) {
	svc, _, _ := newTodoFixture(t)
	_, err := svc.Create(context.Background(), &models.TodoCreateRequest{Title: "x"},
		models.TokenUserInfo{UserID: "ghost", Role: models.RoleCommon})
	assert.ErrorIs(t, err, ErrNoSuchUser)
}

func TestRetrieveUnknownUser(t *testing.T) {
	svc, _, _ := newTodoFixture(t)
	_, err := svc.Retrieve(context.Background(), "ghost")
	assert.ErrorIs(t, err, ErrNoSuchUser)
}

func TestRetrieveScopedToOwner(t *testing.T) {
	ctx := context.Background()
	svc, _, users := newTodoFixture(t)
	u1 := seedUser(t, users, models.RoleCommon)
	u2 := seedUser(t, users, models.RoleCommon)

	_, err := svc.Create(ctx, &models.TodoCreateRequest{Title: "mine"}, caller(u1))
	require.NoError(t, err)
	_, err = svc.Create(ctx, &models.TodoCreateRequest{Title: "yours"}, caller(u2))
	require.NoError(t, err)

	resp, err := svc.Retrieve(ctx, u1.ID)
	require.NoError(t, err)
	require.Len(t, resp.Todos, 1)
	assert.Equal(t, "mine", resp.Todos[0].Title)
}

func TestRetrieveEmptyList(t *testing.T) {
	ctx := context.Background()
	svc, _, users := newTodoFixture(t)
	u := seedUser(t, users, models.RoleCommon)

	resp, err := svc.Retrieve(ctx, u.ID)
	require.NoError(t, err)
	assert.NotNil(t, resp.Todos)
	assert.Empty(t, resp.Todos)
}

func TestUpdateFlipsDoneOnly(t *testing.T) {
	ctx := context.Background()
	svc, todos, users := newTodoFixture(t)
	u := seedUser(t, users, models.RoleCommon)

	created, err := svc.Create(ctx, &models.TodoCreateRequest{Title: "flip me"}, caller(u))
	require.NoError(t, err)
	id := created.Todos[0].ID

	resp, err := svc.Update(ctx, &models.TodoModifyRequest{ID: id, Done: true}, u.ID)
	require.NoError(t, err)
	require.Len(t, resp.Todos, 1)
	assert.True(t, resp.Todos[0].Done)
	assert.Equal(t, "flip me", resp.Todos[0].Title)

	stored, err := todos.FindByID(ctx, id)
	require.NoError(t, err)
	assert.True(t, stored.Done)
}

func TestUpdateMissingIDIsSilentNoOp(t *testing.T) {
	ctx := context.Background()
	svc, todos, users := newTodoFixture(t)
	u := seedUser(t, users, models.RoleCommon)

	_, err := svc.Create(ctx, &models.TodoCreateRequest{Title: "untouched"}, caller(u))
	require.NoError(t, err)

	resp, err := svc.Update(ctx, &models.TodoModifyRequest{ID: "does-not-exist", Done: true}, u.ID)
	require.NoError(t, err)
	require.Len(t, resp.Todos, 1)
	assert.False(t, resp.Todos[0].Done)

	n, err := todos.CountByOwner(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestDeleteRemoves(t *testing.T) {
	ctx := context.Background()
	svc, _, users := newTodoFixture(t)
	u := seedUser(t, users, models.RoleCommon)

	created, err := svc.Create(ctx, &models.TodoCreateRequest{Title: "short lived"}, caller(u))
	require.NoError(t, err)

	resp, err := svc.Delete(ctx, created.Todos[0].ID, u.ID)
	require.NoError(t, err)
	assert.Empty(t, resp.Todos)
}

func TestDeleteMissingIDFails(t *testing.T) {
	ctx := context.Background()
	svc, todos, users := newTodoFixture(t)
	u := seedUser(t, users, models.RoleCommon)

	_, err := svc.Create(ctx, &models.TodoCreateRequest{Title: "survivor"}, caller(u))
	require.NoError(t, err)

	_, err = svc.Delete(ctx, "does-not-exist", u.ID)
	assert.ErrorIs(t, err, ErrDeleteFailed)

	n, err := todos.CountByOwner(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestQuotaExceededPredicate(t *testing.T) {
	tests := []struct {
		role  models.Role
		count int
		want  bool
	}{
		{models.RoleCommon, 0, false},
		{models.RoleCommon, 4, false},
		{models.RoleCommon, 5, true},
		{models.RoleCommon, 6, true},
		{models.RoleAdmin, 5, false},
		{models.RoleAdmin, 100, false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, QuotaExceeded(tt.role, tt.count),
			"role=%s count=%d", tt.role, tt.count)
	}
}
