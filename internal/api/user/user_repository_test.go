package user

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"regexp"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/FACorreiaa/go-task-tracker/internal/types"
)

var userColumns = []string{"id", "email", "password_hash", "name", "created_at", "updated_at"}

func setupUserRepoTest(t *testing.T) (pgxmock.PgxPoolIface, *PostgresUserRepo) {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mock.Close)
	return mock, NewPostgresUserRepo(mock, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestPostgresUserRepo_CreateUser(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

	t.Run("Success", func(t *testing.T) {
		mock, repo := setupUserRepoTest(t)
		name := "John"
		mock.ExpectQuery(regexp.QuoteMeta(insertUserQuery)).
			WithArgs("john@example.com", "hash", "John").
			WillReturnRows(pgxmock.NewRows([]string{"id", "created_at", "updated_at"}).AddRow(int64(7), now, now))

		u, err := repo.CreateUser(ctx, "john@example.com", "hash", &name)
		require.NoError(t, err)
		assert.Equal(t, int64(7), u.ID)
		assert.Equal(t, "john@example.com", u.Email)
		require.NotNil(t, u.Name)
		assert.Equal(t, "John", *u.Name)
		assert.Equal(t, now, u.CreatedAt)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("NoName", func(t *testing.T) {
		mock, repo := setupUserRepoTest(t)
		mock.ExpectQuery(regexp.QuoteMeta(insertUserQuery)).
			WithArgs("john@example.com", "hash", "").
			WillReturnRows(pgxmock.NewRows([]string{"id", "created_at", "updated_at"}).AddRow(int64(8), now, now))

		u, err := repo.CreateUser(ctx, "john@example.com", "hash", nil)
		require.NoError(t, err)
		assert.Nil(t, u.Name)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("DuplicateEmail", func(t *testing.T) {
		mock, repo := setupUserRepoTest(t)
		mock.ExpectQuery(regexp.QuoteMeta(insertUserQuery)).
			WithArgs("john@example.com", "hash", "").
			WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "users_email_key"})

		u, err := repo.CreateUser(ctx, "john@example.com", "hash", nil)
		assert.Nil(t, u)
		assert.ErrorIs(t, err, types.ErrDuplicateIdentity)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("DBError", func(t *testing.T) {
		mock, repo := setupUserRepoTest(t)
		mock.ExpectQuery(regexp.QuoteMeta(insertUserQuery)).
			WithArgs("john@example.com", "hash", "").
			WillReturnError(errors.New("connection refused"))

		_, err := repo.CreateUser(ctx, "john@example.com", "hash", nil)
		require.Error(t, err)
		assert.NotErrorIs(t, err, types.ErrDuplicateIdentity)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestPostgresUserRepo_GetUserByEmail(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

	t.Run("Found", func(t *testing.T) {
		mock, repo := setupUserRepoTest(t)
		mock.ExpectQuery(regexp.QuoteMeta(selectUserByEmailQuery)).
			WithArgs("john@example.com").
			WillReturnRows(pgxmock.NewRows(userColumns).AddRow(int64(7), "john@example.com", "hash", "", now, now))

		u, err := repo.GetUserByEmail(ctx, "john@example.com")
		require.NoError(t, err)
		assert.Equal(t, int64(7), u.ID)
		assert.Equal(t, "hash", u.PasswordHash)
		assert.Nil(t, u.Name)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("NotFound", func(t *testing.T) {
		mock, repo := setupUserRepoTest(t)
		mock.ExpectQuery(regexp.QuoteMeta(selectUserByEmailQuery)).
			WithArgs("ghost@example.com").
			WillReturnError(pgx.ErrNoRows)

		u, err := repo.GetUserByEmail(ctx, "ghost@example.com")
		assert.Nil(t, u)
		assert.ErrorIs(t, err, types.ErrNotFound)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestPostgresUserRepo_GetUserByID(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

	t.Run("Found", func(t *testing.T) {
		mock, repo := setupUserRepoTest(t)
		mock.ExpectQuery(regexp.QuoteMeta(selectUserByIDQuery)).
			WithArgs(int64(7)).
			WillReturnRows(pgxmock.NewRows(userColumns).AddRow(int64(7), "john@example.com", "hash", "John", now, now))

		u, err := repo.GetUserByID(ctx, 7)
		require.NoError(t, err)
		require.NotNil(t, u.Name)
		assert.Equal(t, "John", *u.Name)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("NotFound", func(t *testing.T) {
		mock, repo := setupUserRepoTest(t)
		mock.ExpectQuery(regexp.QuoteMeta(selectUserByIDQuery)).
			WithArgs(int64(99)).
			WillReturnError(pgx.ErrNoRows)

		_, err := repo.GetUserByID(ctx, 99)
		assert.ErrorIs(t, err, types.ErrNotFound)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
