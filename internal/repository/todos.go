package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/semsolhan1/todo-api202306/internal/models"
	"github.com/semsolhan1/todo-api202306/pkg/logger"
)

// ErrNotFound is returned when a lookup or delete targets an id that does not
// exist in the store.
var ErrNotFound = errors.New("record not found")

// TodoRepository abstracts todo persistence. Save inserts a new record or
// fully replaces the existing one with the same id.
type TodoRepository interface {
	FindAllByOwner(ctx context.Context, ownerID string) ([]models.Todo, error)
	FindByID(ctx context.Context, id string) (*models.Todo, error)
	CountByOwner(ctx context.Context, ownerID string) (int, error)
	Save(ctx context.Context, todo *models.Todo) error
	DeleteByID(ctx context.Context, id string) error
}

// PostgresTodoRepository implements TodoRepository against PostgreSQL.
type PostgresTodoRepository struct {
	db *sql.DB
}

// NewPostgresTodoRepository returns a todo repository backed by the given pool.
func NewPostgresTodoRepository(db *sql.DB) *PostgresTodoRepository {
	return &PostgresTodoRepository{db: db}
}

func (r *PostgresTodoRepository) FindAllByOwner(ctx context.Context, ownerID string) ([]models.Todo, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, title, done, user_id, created_at FROM todos WHERE user_id = $1 ORDER BY created_at`,
		ownerID)
	if err != nil {
		logger.Error(ctx, "Repository FindAllByOwner failed", "error", err)
		return nil, err
	}
	defer rows.Close()
	var todos []models.Todo
	for rows.Next() {
		var t models.Todo
		if err := rows.Scan(&t.ID, &t.Title, &t.Done, &t.UserID, &t.CreatedAt); err != nil {
			logger.Error(ctx, "Repository scan todo failed", "error", err)
			return nil, err
		}
		todos = append(todos, t)
	}
	return todos, rows.Err()
}

func (r *PostgresTodoRepository) FindByID(ctx context.Context, id string) (*models.Todo, error) {
	var t models.Todo
	err := r.db.QueryRowContext(ctx,
		`SELECT id, title, done, user_id, created_at FROM todos WHERE id = $1`, id).
		Scan(&t.ID, &t.Title, &t.Done, &t.UserID, &t.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		logger.Error(ctx, "Repository FindByID failed", "error", err, "id", id)
		return nil, err
	}
	return &t, nil
}

func (r *PostgresTodoRepository) CountByOwner(ctx context.Context, ownerID string) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM todos WHERE user_id = $1`, ownerID).Scan(&n)
	if err != nil {
		logger.Error(ctx, "Repository CountByOwner failed", "error", err)
		return 0, err
	}
	return n, nil
}

func (r *PostgresTodoRepository) Save(ctx context.Context, todo *models.Todo) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO todos (id, title, done, user_id, created_at)
		 VALUES ($1, $2, $3, $4, $5)
		 ON CONFLICT (id) DO UPDATE SET title = EXCLUDED.title, done = EXCLUDED.done`,
		todo.ID, todo.Title, todo.Done, todo.UserID, todo.CreatedAt)
	if err != nil {
		logger.Error(ctx, "Repository Save failed", "error", err, "id", todo.ID)
	}
	return err
}

func (r *PostgresTodoRepository) DeleteByID(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM todos WHERE id = $1`, id)
	if err != nil {
		logger.Error(ctx, "Repository DeleteByID failed", "error", err, "id", id)
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrNotFound
	}
	return nil
}
