package repositories

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/sbilibin2017/todo-api/internal/models"
)

const userColumns = `id, name, email, password_hash, reset_password_token, reset_password_expire, created_at, updated_at`

// UserReadRepository looks users up. Lookups that match nothing return (nil, nil).
type UserReadRepository struct {
	db *sqlx.DB
}

func NewUserReadRepository(db *sqlx.DB) *UserReadRepository {
	return &UserReadRepository{db: db}
}

// GetByEmail returns the user registered with email.
func (r *UserReadRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	const query = `
		SELECT ` + userColumns + `
		FROM users
		WHERE email = $1
		LIMIT 1
	`

	var user models.User
	err := r.db.GetContext(ctx, &user, query, email)
	logQuery(query, []any{email}, user.ID, err)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// GetByResetToken returns the user holding tokenHash whose reset window is
// still open at now.
func (r *UserReadRepository) GetByResetToken(ctx context.Context, tokenHash string, now time.Time) (*models.User, error) {
	const query = `
		SELECT ` + userColumns + `
		FROM users
		WHERE reset_password_token = $1
		  AND reset_password_expire > $2
		LIMIT 1
	`

	var user models.User
	err := r.db.GetContext(ctx, &user, query, tokenHash, now)
	logQuery(query, []any{"<token hash>", now}, user.ID, err)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// UserWriteRepository mutates user records.
type UserWriteRepository struct {
	db *sqlx.DB
}

func NewUserWriteRepository(db *sqlx.DB) *UserWriteRepository {
	return &UserWriteRepository{db: db}
}

// Save inserts a new user. A taken email yields ErrAlreadyExists.
func (r *UserWriteRepository) Save(ctx context.Context, name, email, passwordHash string) (*models.User, error) {
	const query = `
		INSERT INTO users (name, email, password_hash, created_at, updated_at)
		VALUES ($1, $2, $3, NOW(), NOW())
		RETURNING ` + userColumns

	var user models.User
	err := r.db.GetContext(ctx, &user, query, name, email, passwordHash)
	logQuery(query, []any{name, email, "<password hash>"}, user.ID, err)

	if isUniqueViolation(err) {
		return nil, ErrAlreadyExists
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// SetResetToken stores a pending reset token hash, replacing any previous one.
func (r *UserWriteRepository) SetResetToken(ctx context.Context, userID uuid.UUID, tokenHash string, expire time.Time) error {
	const query = `
		UPDATE users
		SET reset_password_token = $2, reset_password_expire = $3, updated_at = NOW()
		WHERE id = $1
	`
	return r.exec(ctx, query, userID, tokenHash, expire)
}

// ClearResetToken drops the pending reset token only while it is still the
// one identified by tokenHash. A token stored by a later request is kept.
func (r *UserWriteRepository) ClearResetToken(ctx context.Context, userID uuid.UUID, tokenHash string) error {
	const query = `
		UPDATE users
		SET reset_password_token = NULL, reset_password_expire = NULL, updated_at = NOW()
		WHERE id = $1 AND reset_password_token = $2
	`
	return r.exec(ctx, query, userID, tokenHash)
}

// UpdatePassword replaces the password hash and clears the reset fields.
func (r *UserWriteRepository) UpdatePassword(ctx context.Context, userID uuid.UUID, passwordHash string) error {
	const query = `
		UPDATE users
		SET password_hash = $2,
		    reset_password_token = NULL,
		    reset_password_expire = NULL,
		    updated_at = NOW()
		WHERE id = $1
	`
	return r.exec(ctx, query, userID, passwordHash)
}

func (r *UserWriteRepository) exec(ctx context.Context, query string, args ...any) error {
	res, err := r.db.ExecContext(ctx, query, args...)
	var rowsAffected int64
	if res != nil {
		rowsAffected, _ = res.RowsAffected()
	}
	logQuery(query, args[:1], rowsAffected, err)
	return err
}
