// Seed creates a demo user and fills their list with todos.
// Run from project root: go run ./scripts/seed
package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"

	"github.com/semsolhan1/todo-api202306/internal/database"
)

func main() {
	_ = godotenv.Load()

	ctx := context.Background()
	db := database.InitDB(ctx)
	if db == nil {
		fmt.Fprintln(os.Stderr, "DATABASE_URL not set or DB connection failed")
		os.Exit(1)
	}

	if err := database.MigrateOrCreateSchema(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "Schema failed:", err)
		os.Exit(1)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte("seed-password"), bcrypt.DefaultCost)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Hash failed:", err)
		os.Exit(1)
	}
	// On re-runs keep the existing user's id so the todo batch below still
	// satisfies the foreign key.
	var userID string
	err = db.QueryRowContext(ctx,
		`INSERT INTO users (id, email, user_name, password, role)
		 VALUES ($1, $2, $3, $4, 'ADMIN')
		 ON CONFLICT (email) DO UPDATE SET user_name = EXCLUDED.user_name
		 RETURNING id`,
		uuid.New().String(), "seed@example.com", "seed-user", string(hashed)).Scan(&userID)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Seed user failed:", err)
		os.Exit(1)
	}

	const total = 200
	const batchSize = 50
	start := time.Now()

	for batch := 0; batch < total/batchSize; batch++ {
		args := make([]interface{}, 0, batchSize*4)
		placeholders := make([]string, 0, batchSize)
		for i := 0; i < batchSize; i++ {
			n := batch*batchSize + i + 1
			placeholders = append(placeholders, fmt.Sprintf("($%d,$%d,$%d,$%d,NOW())",
				4*i+1, 4*i+2, 4*i+3, 4*i+4))
			args = append(args,
				uuid.New().String(),
				fmt.Sprintf("Todo %d", n),
				false,
				userID,
			)
		}
		q := `INSERT INTO todos (id, title, done, user_id, created_at) VALUES ` +
			strings.Join(placeholders, ",")
		if _, err := db.ExecContext(ctx, q, args...); err != nil {
			fmt.Fprintln(os.Stderr, "Insert failed:", err)
			os.Exit(1)
		}
		fmt.Printf("\rInserted %d / %d", (batch+1)*batchSize, total)
	}

	fmt.Printf("\nDone: %d todos for seed@example.com in %v\n", total, time.Since(start))
}
