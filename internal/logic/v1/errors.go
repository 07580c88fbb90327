// Package v1 provides the blog's business logic: authentication,
// session lifecycle and post management.
//
// Error Handling:
// This package defines sentinel errors that represent common failures.
// These errors should be wrapped with context using fmt.Errorf("%w") when
// returned from business logic methods, and checked at the web boundary
// with errors.Is.
package v1

import "errors"

// Sentinel errors for blog operations.
// These errors should be wrapped with context using fmt.Errorf("%w") when returned.
var (
	// ErrInvalidCredentials indicates the provided credentials are incorrect.
	// Rendered as the same generic login failure as ErrUserNotFound.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrUserNotFound indicates the user does not exist in the system.
	// Rendered as the same generic login failure as ErrInvalidCredentials,
	// so the client cannot enumerate accounts.
	ErrUserNotFound = errors.New("user not found")

	// ErrSessionNotFound indicates the session token does not exist.
	// Requests carrying such a token are treated as anonymous.
	ErrSessionNotFound = errors.New("session not found")

	// ErrSessionExpired indicates the session token has expired.
	// Requests carrying such a token are treated as anonymous.
	ErrSessionExpired = errors.New("session expired")

	// ErrPostNotFound indicates the requested post does not exist.
	// HTTP Status: 404 Not Found
	ErrPostNotFound = errors.New("post not found")
)
