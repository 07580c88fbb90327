package repository

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupSessionRepoMock(t *testing.T) (*PgxSessionRepository, pgxmock.PgxPoolIface) {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mock.Close)
	return NewSessionRepository(mock), mock
}

func TestSessionCreate(t *testing.T) {
	repo, mock := setupSessionRepoMock(t)

	expiresAt := time.Now().Add(24 * time.Hour)
	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO sessions (token, user_id, expires_at) VALUES ($1, $2, $3)`)).
		WithArgs("tok", int64(7), expiresAt).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	err := repo.Create(context.Background(), 7, "tok", expiresAt)

	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSessionGetUserByToken(t *testing.T) {
	query := regexp.QuoteMeta(`SELECT u.id, u.username, s.expires_at`)

	t.Run("Found", func(t *testing.T) {
		repo, mock := setupSessionRepoMock(t)

		expiresAt := time.Now().Add(time.Hour)
		rows := pgxmock.NewRows([]string{"id", "username", "expires_at"}).
			AddRow(int64(7), "alice", expiresAt)
		mock.ExpectQuery(query).WithArgs("tok").WillReturnRows(rows)

		row, err := repo.GetUserByToken(context.Background(), "tok")

		require.NoError(t, err)
		assert.Equal(t, int64(7), row.UserID)
		assert.Equal(t, "alice", row.Username)
		assert.True(t, row.ExpiresAt.Equal(expiresAt))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("UnknownToken", func(t *testing.T) {
		repo, mock := setupSessionRepoMock(t)

		mock.ExpectQuery(query).WithArgs("gone").
			WillReturnRows(pgxmock.NewRows([]string{"id", "username", "expires_at"}))

		row, err := repo.GetUserByToken(context.Background(), "gone")

		require.NoError(t, err)
		assert.Nil(t, row)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("QueryError", func(t *testing.T) {
		repo, mock := setupSessionRepoMock(t)

		mock.ExpectQuery(query).WithArgs("tok").WillReturnError(errors.New("connection refused"))

		row, err := repo.GetUserByToken(context.Background(), "tok")

		assert.Error(t, err)
		assert.Nil(t, row)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestSessionDelete(t *testing.T) {
	query := regexp.QuoteMeta(`DELETE FROM sessions WHERE token = $1`)

	t.Run("Success", func(t *testing.T) {
		repo, mock := setupSessionRepoMock(t)

		mock.ExpectExec(query).WithArgs("tok").
			WillReturnResult(pgxmock.NewResult("DELETE", 1))

		require.NoError(t, repo.Delete(context.Background(), "tok"))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("UnknownTokenIsNotAnError", func(t *testing.T) {
		repo, mock := setupSessionRepoMock(t)

		mock.ExpectExec(query).WithArgs("gone").
			WillReturnResult(pgxmock.NewResult("DELETE", 0))

		require.NoError(t, repo.Delete(context.Background(), "gone"))
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
