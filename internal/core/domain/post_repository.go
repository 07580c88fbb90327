package domain

import (
	"context"
	"time"
)

// PostRow represents a blog post record returned from the database.
// Every content field is optional; the store keeps whatever was submitted.
type PostRow struct {
	ID        int64
	Title     string
	Summary   string
	Body      string
	ImageURL  string
	CreatedAt time.Time
}

// PostFields carries the user-supplied part of a post. CreatedAt is
// stamped by the store, never by the caller.
type PostFields struct {
	Title    string
	Summary  string
	Body     string
	ImageURL string
}

// PostRepository defines the data-access contract for post operations.
// Posts carry no author reference; the only write is the insert.
type PostRepository interface {
	// Create inserts a new post and returns the stored row, including
	// the generated ID and creation timestamp.
	Create(ctx context.Context, fields PostFields) (*PostRow, error)

	// ListAll returns every post, newest first.
	ListAll(ctx context.Context) ([]PostRow, error)

	// GetByID returns the post matching the given ID.
	// Returns (nil, nil) when no post is found.
	GetByID(ctx context.Context, id int64) (*PostRow, error)
}
