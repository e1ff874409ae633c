package repositories

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/sbilibin2017/todo-api/internal/models"
)

const todoColumns = `id, user_id, title, completed, created_at, updated_at`

// executor returns the request transaction when there is one, db otherwise.
func executor(ctx context.Context, db *sqlx.DB, txGetter func(ctx context.Context) *sqlx.Tx) sqlx.ExtContext {
	if txGetter != nil {
		if tx := txGetter(ctx); tx != nil {
			return tx
		}
	}
	return db
}

// TodoReadRepository reads to-do items. Every query is scoped by owner.
type TodoReadRepository struct {
	db       *sqlx.DB
	txGetter func(ctx context.Context) *sqlx.Tx
}

func NewTodoReadRepository(db *sqlx.DB, txGetter func(ctx context.Context) *sqlx.Tx) *TodoReadRepository {
	return &TodoReadRepository{db: db, txGetter: txGetter}
}

// ListByUserID returns the items of userID, newest first.
func (r *TodoReadRepository) ListByUserID(ctx context.Context, userID uuid.UUID) ([]models.Todo, error) {
	const query = `
		SELECT ` + todoColumns + `
		FROM todos
		WHERE user_id = $1
		ORDER BY created_at DESC, id DESC
	`

	todos := []models.Todo{}
	err := sqlx.SelectContext(ctx, executor(ctx, r.db, r.txGetter), &todos, query, userID)
	logQuery(query, []any{userID}, len(todos), err)

	if err != nil {
		return nil, err
	}
	return todos, nil
}

// GetByIDAndUserID returns the item id if it belongs to userID, (nil, nil) otherwise.
func (r *TodoReadRepository) GetByIDAndUserID(ctx context.Context, id, userID uuid.UUID) (*models.Todo, error) {
	const query = `
		SELECT ` + todoColumns + `
		FROM todos
		WHERE id = $1 AND user_id = $2
	`

	var todo models.Todo
	err := sqlx.GetContext(ctx, executor(ctx, r.db, r.txGetter), &todo, query, id, userID)
	logQuery(query, []any{id, userID}, todo.ID, err)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &todo, nil
}

// TodoWriteRepository mutates to-do items.
type TodoWriteRepository struct {
	db       *sqlx.DB
	txGetter func(ctx context.Context) *sqlx.Tx
}

func NewTodoWriteRepository(db *sqlx.DB, txGetter func(ctx context.Context) *sqlx.Tx) *TodoWriteRepository {
	return &TodoWriteRepository{db: db, txGetter: txGetter}
}

// Save inserts a new, not completed item owned by userID.
func (r *TodoWriteRepository) Save(ctx context.Context, userID uuid.UUID, title string) (*models.Todo, error) {
	const query = `
		INSERT INTO todos (user_id, title, completed, created_at, updated_at)
		VALUES ($1, $2, FALSE, NOW(), NOW())
		RETURNING ` + todoColumns

	var todo models.Todo
	err := sqlx.GetContext(ctx, executor(ctx, r.db, r.txGetter), &todo, query, userID, title)
	logQuery(query, []any{userID, title}, todo.ID, err)

	if err != nil {
		return nil, err
	}
	return &todo, nil
}

// Update persists title and completed of todo. The row must still belong to
// todo.UserID; otherwise sql.ErrNoRows is returned.
func (r *TodoWriteRepository) Update(ctx context.Context, todo *models.Todo) (*models.Todo, error) {
	const query = `
		UPDATE todos
		SET title = $3, completed = $4, updated_at = NOW()
		WHERE id = $1 AND user_id = $2
		RETURNING ` + todoColumns

	var updated models.Todo
	args := []any{todo.ID, todo.UserID, todo.Title, todo.Completed}
	err := sqlx.GetContext(ctx, executor(ctx, r.db, r.txGetter), &updated, query, args...)
	logQuery(query, args, updated.UpdatedAt, err)

	if err != nil {
		return nil, err
	}
	return &updated, nil
}

// Delete removes the item id owned by userID.
func (r *TodoWriteRepository) Delete(ctx context.Context, id, userID uuid.UUID) error {
	const query = `
		DELETE FROM todos
		WHERE id = $1 AND user_id = $2
	`

	res, err := executor(ctx, r.db, r.txGetter).ExecContext(ctx, query, id, userID)
	var rowsAffected int64
	if res != nil {
		rowsAffected, _ = res.RowsAffected()
	}
	logQuery(query, []any{id, userID}, rowsAffected, err)

	return err
}
