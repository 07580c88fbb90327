package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/fransbask/Gamehub/internal/core/domain"
)

// PgxPostRepository implements domain.PostRepository using pgx.
type PgxPostRepository struct {
	db DB
}

// NewPostRepository creates a new PgxPostRepository.
func NewPostRepository(db DB) *PgxPostRepository {
	return &PgxPostRepository{db: db}
}

// Create inserts a new post and returns the stored row. The creation
// timestamp is stamped by the database, not the caller.
func (r *PgxPostRepository) Create(ctx context.Context, fields domain.PostFields) (*domain.PostRow, error) {
	query := `
		INSERT INTO posts (title, summary, body, image_url)
		VALUES ($1, $2, $3, $4)
		RETURNING id, title, summary, body, image_url, created_at
	`

	var row domain.PostRow
	err := r.db.QueryRow(ctx, query,
		fields.Title, fields.Summary, fields.Body, fields.ImageURL,
	).Scan(
		&row.ID, &row.Title, &row.Summary, &row.Body, &row.ImageURL, &row.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	return &row, nil
}

// ListAll returns every post, newest first.
func (r *PgxPostRepository) ListAll(ctx context.Context) ([]domain.PostRow, error) {
	query := `
		SELECT id, title, summary, body, image_url, created_at
		FROM posts
		ORDER BY created_at DESC
	`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var posts []domain.PostRow
	for rows.Next() {
		var row domain.PostRow
		if err := rows.Scan(
			&row.ID, &row.Title, &row.Summary, &row.Body, &row.ImageURL, &row.CreatedAt,
		); err != nil {
			return nil, err
		}
		posts = append(posts, row)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return posts, nil
}

// GetByID returns the post matching the given ID.
// Returns (nil, nil) when no post is found.
func (r *PgxPostRepository) GetByID(ctx context.Context, id int64) (*domain.PostRow, error) {
	query := `
		SELECT id, title, summary, body, image_url, created_at
		FROM posts
		WHERE id = $1
	`

	var row domain.PostRow
	err := r.db.QueryRow(ctx, query, id).Scan(
		&row.ID, &row.Title, &row.Summary, &row.Body, &row.ImageURL, &row.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	return &row, nil
}
