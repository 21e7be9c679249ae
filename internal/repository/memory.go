package repository

import (
	"context"
	"sync"

	"github.com/semsolhan1/todo-api202306/internal/models"
)

// MemoryTodoRepository is an in-memory TodoRepository for tests and embedded
// use. Iteration order is unspecified.
type MemoryTodoRepository struct {
	mu    sync.RWMutex
	todos map[string]models.Todo
}

// NewMemoryTodoRepository returns an empty in-memory todo repository.
func NewMemoryTodoRepository() *MemoryTodoRepository {
	return &MemoryTodoRepository{todos: make(map[string]models.Todo)}
}

func (r *MemoryTodoRepository) FindAllByOwner(_ context.Context, ownerID string) ([]models.Todo, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []models.Todo
	for _, t := range r.todos {
		if t.UserID == ownerID {
			out = append(out, t)
		}
	}
	return out, nil
}

func (r *MemoryTodoRepository) FindByID(_ context.Context, id string) (*models.Todo, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	t, ok := r.todos[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &t, nil
}

func (r *MemoryTodoRepository) CountByOwner(_ context.Context, ownerID string) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	n := 0
	for _, t := range r.todos {
		if t.UserID == ownerID {
			n++
		}
	}
	return n, nil
}

func (r *MemoryTodoRepository) Save(_ context.Context, todo *models.Todo) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.todos[todo.ID] = *todo
	return nil
}

func (r *MemoryTodoRepository) DeleteByID(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.todos[id]; !ok {
		return ErrNotFound
	}
	delete(r.todos, id)
	return nil
}

// MemoryUserRepository is an in-memory UserRepository for tests.
type MemoryUserRepository struct {
	mu    sync.RWMutex
	users map[string]models.User
}

// NewMemoryUserRepository returns an empty in-memory user repository.
func NewMemoryUserRepository() *MemoryUserRepository {
	return &MemoryUserRepository{users: make(map[string]models.User)}
}

func (r *MemoryUserRepository) FindByID(_ context.Context, id string) (*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	u, ok := r.users[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &u, nil
}

func (r *MemoryUserRepository) FindByEmail(_ context.Context, email string) (*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, u := range r.users {
		if u.Email == email {
			u := u
			return &u, nil
		}
	}
	return nil, ErrNotFound
}

func (r *MemoryUserRepository) ExistsByEmail(_ context.Context, email string) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, u := range r.users {
		if u.Email == email {
			return true, nil
		}
	}
	return false, nil
}

func (r *MemoryUserRepository) Save(_ context.Context, user *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.users[user.ID] = *user
	return nil
}
