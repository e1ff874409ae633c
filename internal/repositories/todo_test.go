package repositories

import (
	"context"
	"database/sql"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/sbilibin2017/todo-api/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTodoRepositories_Postgres(t *testing.T) {
	db, teardown := setupPostgresContainer(t)
	defer teardown()

	ctx := context.Background()
	users := NewUserWriteRepository(db)
	alice, err := users.Save(ctx, "Alice", "a@x.com", "hash")
	require.NoError(t, err)
	bob, err := users.Save(ctx, "Bob", "b@x.com", "hash")
	require.NoError(t, err)

	readRepo := NewTodoReadRepository(db, nil)
	writeRepo := NewTodoWriteRepository(db, nil)

	milk, err := writeRepo.Save(ctx, alice.ID, "Buy milk")
	require.NoError(t, err)
	assert.Equal(t, alice.ID, milk.UserID)
	assert.Equal(t, "Buy milk", milk.Title)
	assert.False(t, milk.Completed)

	// created_at has microsecond resolution; keep the order deterministic
	time.Sleep(10 * time.Millisecond)
	bread, err := writeRepo.Save(ctx, alice.ID, "Buy bread")
	require.NoError(t, err)

	t.Run("ListNewestFirst", func(t *testing.T) {
		todos, err := readRepo.ListByUserID(ctx, alice.ID)
		require.NoError(t, err)
		require.Len(t, todos, 2)
		assert.Equal(t, bread.ID, todos[0].ID)
		assert.Equal(t, milk.ID, todos[1].ID)
	})

	t.Run("OtherUserSeesNothing", func(t *testing.T) {
		todos, err := readRepo.ListByUserID(ctx, bob.ID)
		require.NoError(t, err)
		assert.Empty(t, todos)
		assert.NotNil(t, todos)

		todo, err := readRepo.GetByIDAndUserID(ctx, milk.ID, bob.ID)
		assert.NoError(t, err)
		assert.Nil(t, todo)
	})

	t.Run("UpdateScopedByOwner", func(t *testing.T) {
		stolen := *milk
		stolen.UserID = bob.ID
		stolen.Title = "hijacked"
		updated, err := writeRepo.Update(ctx, &stolen)
		assert.ErrorIs(t, err, sql.ErrNoRows)
		assert.Nil(t, updated)

		own := *milk
		own.Completed = true
		updated, err = writeRepo.Update(ctx, &own)
		require.NoError(t, err)
		assert.True(t, updated.Completed)
		assert.Equal(t, "Buy milk", updated.Title)
		assert.False(t, updated.UpdatedAt.Before(milk.UpdatedAt))
	})

	t.Run("DeleteScopedByOwner", func(t *testing.T) {
		require.NoError(t, writeRepo.Delete(ctx, bread.ID, bob.ID))
		todo, err := readRepo.GetByIDAndUserID(ctx, bread.ID, alice.ID)
		require.NoError(t, err)
		assert.NotNil(t, todo)

		require.NoError(t, writeRepo.Delete(ctx, bread.ID, alice.ID))
		todo, err = readRepo.GetByIDAndUserID(ctx, bread.ID, alice.ID)
		assert.NoError(t, err)
		assert.Nil(t, todo)
	})
}

func TestTodoWriteRepository_UsesTransactionFromContext(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	sqlxDB := sqlx.NewDb(db, "sqlmock")

	mock.ExpectBegin()
	tx, err := sqlxDB.Beginx()
	require.NoError(t, err)

	txGetter := func(ctx context.Context) *sqlx.Tx { return tx }
	repo := NewTodoWriteRepository(sqlxDB, txGetter)

	id, userID := uuid.New(), uuid.New()
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM todos")).
		WithArgs(id, userID).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	require.NoError(t, repo.Delete(context.Background(), id, userID))
	require.NoError(t, tx.Commit())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTodoReadRepository_GetByIDAndUserID_NotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewTodoReadRepository(sqlx.NewDb(db, "sqlmock"), nil)

	id, userID := uuid.New(), uuid.New()
	mock.ExpectQuery(regexp.QuoteMeta("FROM todos")).
		WithArgs(id, userID).
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "title", "completed", "created_at", "updated_at"}))

	todo, err := repo.GetByIDAndUserID(context.Background(), id, userID)
	assert.NoError(t, err)
	assert.Nil(t, todo)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTodoReadRepository_ListByUserID_Rows(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewTodoReadRepository(sqlx.NewDb(db, "sqlmock"), nil)

	userID := uuid.New()
	now := time.Now()
	first, second := uuid.New(), uuid.New()
	rows := sqlmock.NewRows([]string{"id", "user_id", "title", "completed", "created_at", "updated_at"}).
		AddRow(first.String(), userID.String(), "Newer", false, now, now).
		AddRow(second.String(), userID.String(), "Older", true, now.Add(-time.Hour), now)

	mock.ExpectQuery(regexp.QuoteMeta("ORDER BY created_at DESC")).
		WithArgs(userID).
		WillReturnRows(rows)

	todos, err := repo.ListByUserID(context.Background(), userID)
	require.NoError(t, err)
	assert.Equal(t, []models.Todo{
		{ID: first, UserID: userID, Title: "Newer", Completed: false, CreatedAt: now, UpdatedAt: now},
		{ID: second, UserID: userID, Title: "Older", Completed: true, CreatedAt: now.Add(-time.Hour), UpdatedAt: now},
	}, todos)
	assert.NoError(t, mock.ExpectationsWereMet())
}
