package domain

import (
	"context"
	"errors"
)

// ErrDuplicateUsername is returned by Create when the username is
// already taken (Postgres unique_violation).
var ErrDuplicateUsername = errors.New("username already exists")

// UserRow represents a user record returned from the database.
// It includes the password hash so the Logic layer can verify credentials.
type UserRow struct {
	ID           int64
	Username     string
	PasswordHash string
}

// UserRepository defines the data-access contract for user operations.
// Implementations live in internal/core/repository (Core layer).
// The Logic layer depends on this interface only — never on SQL or pgx directly.
type UserRepository interface {
	// GetByUsername returns the user matching the given username.
	// Returns (nil, nil) when no user is found.
	GetByUsername(ctx context.Context, username string) (*UserRow, error)

	// Create inserts a new user and returns the generated user ID.
	// Returns ErrDuplicateUsername when the username is taken.
	Create(ctx context.Context, username, passwordHash string) (int64, error)
}
