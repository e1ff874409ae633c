package models

import (
	"time"

	"github.com/google/uuid"
)

// ErrorLog is one failed request, kept for later inspection.
type ErrorLog struct {
	ID         uuid.UUID  `db:"id"`
	Message    string     `db:"message"`
	Stack      *string    `db:"stack"`
	StatusCode int        `db:"status_code"`
	Method     string     `db:"method"`
	URL        string     `db:"url"`
	UserID     *uuid.UUID `db:"user_id"`
	Timestamp  time.Time  `db:"timestamp"`
}
