package models

import "time"

// Todo represents a single task record. The id is generated by the service at
// creation time and never reassigned; the owner never changes after creation.
type Todo struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Done      bool      `json:"done"`
	UserID    string    `json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
}

// TodoEvent is the message payload published after each successful mutation.
// Consumers use it to drop the owner's cached list on other replicas.
type TodoEvent struct {
	Action     string    `json:"action"` // created, updated, deleted
	TodoID     string    `json:"todo_id"`
	OwnerID    string    `json:"owner_id"`
	OccurredAt time.Time `json:"occurred_at"`
}
