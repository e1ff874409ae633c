package models

import (
	"time"

	"github.com/google/uuid"
)

// Todo represents a to-do item owned by a single user
// swagger:model Todo
type Todo struct {
	ID        uuid.UUID `json:"id" db:"id"`
	UserID    uuid.UUID `json:"user_id" db:"user_id"`
	Title     string    `json:"title" db:"title"`
	Completed bool      `json:"completed" db:"completed"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// TodoPatch carries the fields of a partial update. Nil fields are left as is.
type TodoPatch struct {
	Title     *string
	Completed *bool
}

// Apply copies the set fields of p into t.
func (p TodoPatch) Apply(t *Todo) {
	if p.Title != nil {
		t.Title = *p.Title
	}
	if p.Completed != nil {
		t.Completed = *p.Completed
	}
}
