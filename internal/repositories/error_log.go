package repositories

import (
	"context"

	"github.com/jmoiron/sqlx"
	"github.com/sbilibin2017/todo-api/internal/models"
)

// ErrorLogRepository appends failed requests to the error_logs table.
type ErrorLogRepository struct {
	db *sqlx.DB
}

func NewErrorLogRepository(db *sqlx.DB) *ErrorLogRepository {
	return &ErrorLogRepository{db: db}
}

// Save inserts entry. A zero timestamp is replaced by the database clock.
func (r *ErrorLogRepository) Save(ctx context.Context, entry *models.ErrorLog) error {
	const query = `
		INSERT INTO error_logs (message, stack, status_code, method, url, user_id, timestamp)
		VALUES ($1, $2, $3, $4, $5, $6, COALESCE($7, NOW()))
	`

	var ts any
	if !entry.Timestamp.IsZero() {
		ts = entry.Timestamp
	}
	args := []any{entry.Message, entry.Stack, entry.StatusCode, entry.Method, entry.URL, entry.UserID, ts}

	_, err := r.db.ExecContext(ctx, query, args...)
	logQuery(query, args[2:6], nil, err)

	return err
}
