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

	"github.com/fransbask/Gamehub/internal/core/domain"
)

var postColumns = []string{"id", "title", "summary", "body", "image_url", "created_at"}

func setupPostRepoMock(t *testing.T) (*PgxPostRepository, pgxmock.PgxPoolIface) {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mock.Close)
	return NewPostRepository(mock), mock
}

func TestPostCreate(t *testing.T) {
	query := regexp.QuoteMeta(`INSERT INTO posts (title, summary, body, image_url)`)

	t.Run("Success", func(t *testing.T) {
		repo, mock := setupPostRepoMock(t)

		now := time.Now()
		fields := domain.PostFields{Title: "Hello", Summary: "eka", Body: "sisältö", ImageURL: "http://example.com/x.png"}
		rows := pgxmock.NewRows(postColumns).
			AddRow(int64(1), "Hello", "eka", "sisältö", "http://example.com/x.png", now)
		mock.ExpectQuery(query).
			WithArgs("Hello", "eka", "sisältö", "http://example.com/x.png").
			WillReturnRows(rows)

		row, err := repo.Create(context.Background(), fields)

		require.NoError(t, err)
		assert.Equal(t, int64(1), row.ID)
		assert.Equal(t, "Hello", row.Title)
		assert.Equal(t, "eka", row.Summary)
		assert.Equal(t, "sisältö", row.Body)
		assert.True(t, row.CreatedAt.Equal(now))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("EmptyFields", func(t *testing.T) {
		repo, mock := setupPostRepoMock(t)

		rows := pgxmock.NewRows(postColumns).
			AddRow(int64(2), "", "", "", "", time.Now())
		mock.ExpectQuery(query).WithArgs("", "", "", "").WillReturnRows(rows)

		row, err := repo.Create(context.Background(), domain.PostFields{})

		require.NoError(t, err)
		assert.Empty(t, row.Title)
		assert.False(t, row.CreatedAt.IsZero())
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("InsertError", func(t *testing.T) {
		repo, mock := setupPostRepoMock(t)

		mock.ExpectQuery(query).WithArgs("x", "", "", "").
			WillReturnError(errors.New("connection refused"))

		row, err := repo.Create(context.Background(), domain.PostFields{Title: "x"})

		assert.Error(t, err)
		assert.Nil(t, row)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestPostListAll(t *testing.T) {
	query := regexp.QuoteMeta(`SELECT id, title, summary, body, image_url, created_at`)

	t.Run("NewestFirst", func(t *testing.T) {
		repo, mock := setupPostRepoMock(t)

		newer := time.Now()
		older := newer.Add(-time.Hour)
		rows := pgxmock.NewRows(postColumns).
			AddRow(int64(2), "toinen", "", "", "", newer).
			AddRow(int64(1), "eka", "", "", "", older)
		mock.ExpectQuery(query).WillReturnRows(rows)

		posts, err := repo.ListAll(context.Background())

		require.NoError(t, err)
		require.Len(t, posts, 2)
		assert.Equal(t, "toinen", posts[0].Title)
		assert.Equal(t, "eka", posts[1].Title)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Empty", func(t *testing.T) {
		repo, mock := setupPostRepoMock(t)

		mock.ExpectQuery(query).WillReturnRows(pgxmock.NewRows(postColumns))

		posts, err := repo.ListAll(context.Background())

		require.NoError(t, err)
		assert.Empty(t, posts)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("QueryError", func(t *testing.T) {
		repo, mock := setupPostRepoMock(t)

		mock.ExpectQuery(query).WillReturnError(errors.New("connection refused"))

		posts, err := repo.ListAll(context.Background())

		assert.Error(t, err)
		assert.Nil(t, posts)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestPostGetByID(t *testing.T) {
	query := regexp.QuoteMeta(`SELECT id, title, summary, body, image_url, created_at`)

	t.Run("Found", func(t *testing.T) {
		repo, mock := setupPostRepoMock(t)

		rows := pgxmock.NewRows(postColumns).
			AddRow(int64(5), "Hello", "eka", "sisältö", "", time.Now())
		mock.ExpectQuery(query).WithArgs(int64(5)).WillReturnRows(rows)

		row, err := repo.GetByID(context.Background(), 5)

		require.NoError(t, err)
		assert.Equal(t, int64(5), row.ID)
		assert.Equal(t, "Hello", row.Title)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("NotFound", func(t *testing.T) {
		repo, mock := setupPostRepoMock(t)

		mock.ExpectQuery(query).WithArgs(int64(99)).
			WillReturnRows(pgxmock.NewRows(postColumns))

		row, err := repo.GetByID(context.Background(), 99)

		require.NoError(t, err)
		assert.Nil(t, row)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
