package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/singleflight"

	"github.com/semsolhan1/todo-api202306/internal/models"
	"github.com/semsolhan1/todo-api202306/internal/repository"
	"github.com/semsolhan1/todo-api202306/pkg/logger"
)

var (
	// ErrNoSuchUser is returned when the caller's account cannot be found.
	ErrNoSuchUser = errors.New("user not found")
	// ErrQuotaExceeded is returned when a COMMON user at the cap tries to
	// create another todo.
	ErrQuotaExceeded = errors.New("common users cannot create any more todos")
	// ErrDeleteFailed is returned when a delete did not remove anything.
	ErrDeleteFailed = errors.New("deletion failed: id does not exist")
)

const maxCommonTodos = 5

// QuotaExceeded reports whether a user of the given role holding count todos
// may not create another one. Only COMMON users are capped.
func QuotaExceeded(role models.Role, count int) bool {
	return role == models.RoleCommon && count >= maxCommonTodos
}

// TodoCache caches per-owner list envelopes. Implementations must treat every
// method as best-effort; correctness never depends on the cache.
type TodoCache interface {
	GetList(ctx context.Context, ownerID string) (*models.TodoListResponse, bool)
	SetList(ctx context.Context, ownerID string, resp *models.TodoListResponse)
	Invalidate(ctx context.Context, ownerID string)
}

// EventSink receives todo mutation events.
type EventSink interface {
	PublishTodoEvent(ctx context.Context, ev *models.TodoEvent) error
}

// TodoService orchestrates the four todo operations. Every mutating operation
// finishes with Retrieve so the response carries the owner's fresh, complete
// list.
type TodoService struct {
	todos  repository.TodoRepository
	users  repository.UserRepository
	cache  TodoCache
	events EventSink
	group  singleflight.Group
}

// NewTodoService wires a todo service. cache and events may be nil, in which
// case the service runs uncached and without event publishing.
func NewTodoService(todos repository.TodoRepository, users repository.UserRepository, cache TodoCache, events EventSink) *TodoService {
	return &TodoService{todos: todos, users: users, cache: cache, events: events}
}

// Retrieve loads all of the owner's todos and wraps them in the list envelope.
func (s *TodoService) Retrieve(ctx context.Context, ownerID string) (*models.TodoListResponse, error) {
	if _, err := s.getUser(ctx, ownerID); err != nil {
		return nil, err
	}
	if s.cache != nil {
		if resp, ok := s.cache.GetList(ctx, ownerID); ok {
			return resp, nil
		}
	}
	v, err, _ := s.group.Do(ownerID, func() (interface{}, error) {
		todos, err := s.todos.FindAllByOwner(ctx, ownerID)
		if err != nil {
			return nil, err
		}
		views := make([]models.TodoDetailResponse, 0, len(todos))
		for _, t := range todos {
			views = append(views, models.NewTodoDetailResponse(t))
		}
		return &models.TodoListResponse{Todos: views}, nil
	})
	if err != nil {
		return nil, err
	}
	resp := v.(*models.TodoListResponse)
	if s.cache != nil {
		s.cache.SetList(ctx, ownerID, resp)
	}
	return resp, nil
}

// Create validates the quota, persists a new todo with a service-generated id
// and creation time, and returns the refreshed list.
func (s *TodoService) Create(ctx context.Context, req *models.TodoCreateRequest, info models.TokenUserInfo) (*models.TodoListResponse, error) {
	user, err := s.getUser(ctx, info.UserID)
	if err != nil {
		return nil, err
	}
	if info.Role == models.RoleCommon {
		count, err := s.todos.CountByOwner(ctx, user.ID)
		if err != nil {
			return nil, err
		}
		if QuotaExceeded(info.Role, count) {
			return nil, ErrQuotaExceeded
		}
	}
	todo := &models.Todo{
		ID:        uuid.New().String(),
		Title:     req.Title,
		Done:      false,
		UserID:    user.ID,
		CreatedAt: time.Now(),
	}
	if err := s.todos.Save(ctx, todo); err != nil {
		return nil, err
	}
	logger.Info(ctx, "Todo saved", "title", req.Title, "id", todo.ID)
	s.afterMutation(ctx, "created", todo.ID, user.ID)
	return s.Retrieve(ctx, user.ID)
}

// Update overwrites the done flag of the todo named by the request. A missing
// id is silently skipped; the caller still receives the fresh list.
func (s *TodoService) Update(ctx context.Context, req *models.TodoModifyRequest, ownerID string) (*models.TodoListResponse, error) {
	todo, err := s.todos.FindByID(ctx, req.ID)
	switch {
	case errors.Is(err, repository.ErrNotFound):
		logger.Warn(ctx, "Update target not found, skipping", "id", req.ID)
	case err != nil:
		return nil, err
	default:
		todo.Done = req.Done
		if err := s.todos.Save(ctx, todo); err != nil {
			return nil, err
		}
		// Invalidate for the todo's owner: updates are not owner-scoped, so
		// the caller and the owner may differ.
		s.afterMutation(ctx, "updated", todo.ID, todo.UserID)
	}
	return s.Retrieve(ctx, ownerID)
}

// Delete removes the todo by id and returns the refreshed list. A missing id
// surfaces as a generic deletion failure.
func (s *TodoService) Delete(ctx context.Context, todoID, ownerID string) (*models.TodoListResponse, error) {
	// Look the record up first so the invalidation targets the todo's owner,
	// who is not necessarily the caller.
	todo, err := s.todos.FindByID(ctx, todoID)
	if err != nil {
		logger.Error(ctx, "Delete failed", "id", todoID, "error", err)
		return nil, ErrDeleteFailed
	}
	if err := s.todos.DeleteByID(ctx, todoID); err != nil {
		logger.Error(ctx, "Delete failed", "id", todoID, "error", err)
		return nil, ErrDeleteFailed
	}
	s.afterMutation(ctx, "deleted", todoID, todo.UserID)
	return s.Retrieve(ctx, ownerID)
}

func (s *TodoService) getUser(ctx context.Context, userID string) (*models.User, error) {
	user, err := s.users.FindByID(ctx, userID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrNoSuchUser
	}
	if err != nil {
		return nil, err
	}
	return user, nil
}

func (s *TodoService) afterMutation(ctx context.Context, action, todoID, ownerID string) {
	if s.cache != nil {
		s.cache.Invalidate(ctx, ownerID)
	}
	if s.events != nil {
		ev := &models.TodoEvent{
			Action:     action,
			TodoID:     todoID,
			OwnerID:    ownerID,
			OccurredAt: time.Now(),
		}
		if err := s.events.PublishTodoEvent(ctx, ev); err != nil {
			logger.Debug(ctx, "Event publish failed", "action", action, "error", err)
		}
	}
}
