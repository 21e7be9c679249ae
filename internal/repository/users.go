package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/semsolhan1/todo-api202306/internal/models"
	"github.com/semsolhan1/todo-api202306/pkg/logger"
)

// UserRepository abstracts user persistence.
type UserRepository interface {
	FindByID(ctx context.Context, id string) (*models.User, error)
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	Save(ctx context.Context, user *models.User) error
}

// PostgresUserRepository implements UserRepository against PostgreSQL.
type PostgresUserRepository struct {
	db *sql.DB
}

// NewPostgresUserRepository returns a user repository backed by the given pool.
func NewPostgresUserRepository(db *sql.DB) *PostgresUserRepository {
	return &PostgresUserRepository{db: db}
}

const userColumns = `id, email, user_name, password, role, profile_img, created_at`

func (r *PostgresUserRepository) scanUser(row *sql.Row) (*models.User, error) {
	var u models.User
	err := row.Scan(&u.ID, &u.Email, &u.UserName, &u.Password, &u.Role, &u.ProfileImg, &u.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *PostgresUserRepository) FindByID(ctx context.Context, id string) (*models.User, error) {
	return r.scanUser(r.db.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE id = $1`, id))
}

func (r *PostgresUserRepository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	return r.scanUser(r.db.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE email = $1`, email))
}

func (r *PostgresUserRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var exists bool
	err := r.db.QueryRowContext(ctx,
		`SELECT EXISTS(SELECT 1 FROM users WHERE email = $1)`, email).Scan(&exists)
	if err != nil {
		logger.Error(ctx, "Repository ExistsByEmail failed", "error", err)
		return false, err
	}
	return exists, nil
}

func (r *PostgresUserRepository) Save(ctx context.Context, user *models.User) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO users (id, email, user_name, password, role, profile_img, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)
		 ON CONFLICT (id) DO UPDATE SET
		   email = EXCLUDED.email, user_name = EXCLUDED.user_name,
		   password = EXCLUDED.password, role = EXCLUDED.role,
		   profile_img = EXCLUDED.profile_img`,
		user.ID, user.Email, user.UserName, user.Password, user.Role, user.ProfileImg, user.CreatedAt)
	if err != nil {
		logger.Error(ctx, "Repository user Save failed", "error", err, "id", user.ID)
	}
	return err
}
