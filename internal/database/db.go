package database

import (
	"context"
	"database/sql"
	"sync"

	_ "github.com/lib/pq"

	"github.com/semsolhan1/todo-api202306/internal/config"
	"github.com/semsolhan1/todo-api202306/pkg/logger"
)

var (
	pool *sql.DB
	once sync.Once
)

// DB returns the global database connection pool (initialized on first use).
func DB(ctx context.Context) *sql.DB {
	once.Do(func() {
		cfg := config.Get()
		if cfg.DatabaseURL == "" {
			logger.Error(ctx, "DATABASE_URL is not set")
			return
		}
		db, err := sql.Open("postgres", cfg.DatabaseURL)
		if err != nil {
			logger.Error(ctx, "Failed to open database", "error", err)
			return
		}
		db.SetMaxOpenConns(cfg.DBPoolSize)
		db.SetMaxIdleConns(cfg.DBPoolSize / 2)
		pool = db
		logger.Info(ctx, "Database pool initialized", "max_open", cfg.DBPoolSize)
	})
	return pool
}

// InitDB initializes the DB pool and returns it (for main and scripts).
func InitDB(ctx context.Context) *sql.DB {
	return DB(ctx)
}

const schema = `
CREATE TABLE IF NOT EXISTS users (
	id VARCHAR(36) PRIMARY KEY,
	email VARCHAR(255) UNIQUE NOT NULL,
	user_name VARCHAR(100) NOT NULL,
	password TEXT NOT NULL,
	role VARCHAR(20) NOT NULL DEFAULT 'COMMON',
	profile_img TEXT NOT NULL DEFAULT '',
	created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE TABLE IF NOT EXISTS todos (
	id VARCHAR(36) PRIMARY KEY,
	title VARCHAR(50) NOT NULL,
	done BOOLEAN NOT NULL DEFAULT FALSE,
	user_id VARCHAR(36) NOT NULL REFERENCES users(id),
	created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE INDEX IF NOT EXISTS idx_todos_user_id ON todos(user_id);
`

// MigrateOrCreateSchema creates the users and todos tables if they do not exist.
func MigrateOrCreateSchema(ctx context.Context) error {
	db := DB(ctx)
	if db == nil {
		return sql.ErrConnDone
	}
	if _, err := db.ExecContext(ctx, schema); err != nil {
		return err
	}
	logger.Info(ctx, "Schema ensured")
	return nil
}
