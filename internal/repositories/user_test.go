package repositories

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserRepositories_Postgres(t *testing.T) {
	db, teardown := setupPostgresContainer(t)
	defer teardown()

	writeRepo := NewUserWriteRepository(db)
	readRepo := NewUserReadRepository(db)
	ctx := context.Background()

	alice, err := writeRepo.Save(ctx, "Alice", "a@x.com", "$2a$10$hash")
	require.NoError(t, err)
	require.NotNil(t, alice)
	assert.NotEqual(t, uuid.Nil, alice.ID)
	assert.Equal(t, "Alice", alice.Name)
	assert.Equal(t, "a@x.com", alice.Email)
	assert.Nil(t, alice.ResetPasswordToken)
	assert.Nil(t, alice.ResetPasswordExpire)

	t.Run("DuplicateEmail", func(t *testing.T) {
		user, err := writeRepo.Save(ctx, "Other", "a@x.com", "hash")
		assert.ErrorIs(t, err, ErrAlreadyExists)
		assert.Nil(t, user)
	})

	t.Run("DuplicateNameAllowed", func(t *testing.T) {
		user, err := writeRepo.Save(ctx, "Alice", "alice2@x.com", "hash")
		assert.NoError(t, err)
		assert.NotNil(t, user)
	})

	t.Run("GetByEmail", func(t *testing.T) {
		user, err := readRepo.GetByEmail(ctx, "a@x.com")
		require.NoError(t, err)
		require.NotNil(t, user)
		assert.Equal(t, alice.ID, user.ID)
		assert.Equal(t, "$2a$10$hash", user.PasswordHash)
	})

	t.Run("GetByEmailNotFound", func(t *testing.T) {
		user, err := readRepo.GetByEmail(ctx, "nobody@x.com")
		assert.NoError(t, err)
		assert.Nil(t, user)
	})

	t.Run("ResetTokenLifecycle", func(t *testing.T) {
		now := time.Now()

		require.NoError(t, writeRepo.SetResetToken(ctx, alice.ID, "hash-1", now.Add(10*time.Minute)))

		user, err := readRepo.GetByResetToken(ctx, "hash-1", now)
		require.NoError(t, err)
		require.NotNil(t, user)
		assert.Equal(t, alice.ID, user.ID)
		require.NotNil(t, user.ResetPasswordToken)
		assert.Equal(t, "hash-1", *user.ResetPasswordToken)

		// expired window is invisible
		user, err = readRepo.GetByResetToken(ctx, "hash-1", now.Add(11*time.Minute))
		assert.NoError(t, err)
		assert.Nil(t, user)

		// last writer wins
		require.NoError(t, writeRepo.SetResetToken(ctx, alice.ID, "hash-2", now.Add(10*time.Minute)))
		user, err = readRepo.GetByResetToken(ctx, "hash-1", now)
		assert.NoError(t, err)
		assert.Nil(t, user)

		require.NoError(t, writeRepo.UpdatePassword(ctx, alice.ID, "$2a$10$newhash"))

		user, err = readRepo.GetByResetToken(ctx, "hash-2", now)
		assert.NoError(t, err)
		assert.Nil(t, user)

		user, err = readRepo.GetByEmail(ctx, "a@x.com")
		require.NoError(t, err)
		assert.Equal(t, "$2a$10$newhash", user.PasswordHash)
		assert.Nil(t, user.ResetPasswordToken)
		assert.Nil(t, user.ResetPasswordExpire)
	})

	t.Run("ClearResetToken", func(t *testing.T) {
		now := time.Now()
		require.NoError(t, writeRepo.SetResetToken(ctx, alice.ID, "hash-3", now.Add(10*time.Minute)))
		require.NoError(t, writeRepo.ClearResetToken(ctx, alice.ID, "hash-3"))

		user, err := readRepo.GetByResetToken(ctx, "hash-3", now)
		assert.NoError(t, err)
		assert.Nil(t, user)
	})

	t.Run("ClearResetToken keeps a newer token", func(t *testing.T) {
		now := time.Now()
		require.NoError(t, writeRepo.SetResetToken(ctx, alice.ID, "hash-4", now.Add(10*time.Minute)))
		require.NoError(t, writeRepo.SetResetToken(ctx, alice.ID, "hash-5", now.Add(10*time.Minute)))
		require.NoError(t, writeRepo.ClearResetToken(ctx, alice.ID, "hash-4"))

		user, err := readRepo.GetByResetToken(ctx, "hash-5", now)
		require.NoError(t, err)
		require.NotNil(t, user)
		assert.Equal(t, alice.ID, user.ID)
	})
}

func TestUserWriteRepository_Save_UniqueViolationMapping(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewUserWriteRepository(sqlx.NewDb(db, "sqlmock"))

	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO users")).
		WithArgs("Alice", "a@x.com", "hash").
		WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "users_email_key"})

	user, err := repo.Save(context.Background(), "Alice", "a@x.com", "hash")
	assert.ErrorIs(t, err, ErrAlreadyExists)
	assert.Nil(t, user)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserReadRepository_GetByEmail_Error(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewUserReadRepository(sqlx.NewDb(db, "sqlmock"))

	mock.ExpectQuery(regexp.QuoteMeta("FROM users")).
		WithArgs("a@x.com").
		WillReturnError(errors.New("connection reset"))

	user, err := repo.GetByEmail(context.Background(), "a@x.com")
	assert.EqualError(t, err, "connection reset")
	assert.Nil(t, user)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserWriteRepository_ClearResetToken_MatchesHash(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewUserWriteRepository(sqlx.NewDb(db, "sqlmock"))
	userID := uuid.New()

	mock.ExpectExec(regexp.QuoteMeta("WHERE id = $1 AND reset_password_token = $2")).
		WithArgs(userID, "hash-a").
		WillReturnResult(sqlmock.NewResult(0, 0))

	assert.NoError(t, repo.ClearResetToken(context.Background(), userID, "hash-a"))
	assert.NoError(t, mock.ExpectationsWereMet())
}
