package v1

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/crypto/bcrypt"

	"github.com/fransbask/Gamehub/internal/core/domain"
	"github.com/fransbask/Gamehub/middleware"
)

// Password hashing work factor. Kept at 12 to match existing stored
// hashes; changing it invalidates nothing but slows new registrations.
const bcryptCost = 12

// AuthService implements registration, login and session business rules.
// It depends on repository interfaces (injected via constructor) and
// MUST NOT access the database or SQL directly.
type AuthService struct {
	users      domain.UserRepository
	sessions   domain.SessionRepository
	sessionTTL time.Duration
}

// NewAuthService creates a new AuthService with the given repository
// dependencies and session lifetime.
func NewAuthService(users domain.UserRepository, sessions domain.SessionRepository, sessionTTL time.Duration) *AuthService {
	return &AuthService{
		users:      users,
		sessions:   sessions,
		sessionTTL: sessionTTL,
	}
}

// Register hashes the password and persists a new user.
// A taken username surfaces as domain.ErrDuplicateUsername; the web
// layer renders it the same as any other registration failure.
func (s *AuthService) Register(ctx context.Context, username, password string) (int64, error) {
	ctx, span := middleware.StartSpan(ctx, "auth.register", trace.WithAttributes(
		attribute.String("layer", "logic"),
		attribute.String("username", username),
	))
	defer span.End()

	passwordHash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		span.RecordError(err)
		return 0, fmt.Errorf("hash password: %w", err)
	}

	// The unique constraint on username decides duplicates; no
	// check-then-insert race.
	userID, err := s.users.Create(ctx, username, string(passwordHash))
	if err != nil {
		span.RecordError(err)
		span.SetAttributes(attribute.Bool("registration.success", false))
		return 0, fmt.Errorf("insert user %q: %w", username, err)
	}

	span.SetAttributes(
		attribute.Int64("user.id", userID),
		attribute.Bool("registration.success", true),
	)
	span.AddEvent("user.registered")

	return userID, nil
}

// Login verifies the credentials and, on success, creates a session and
// returns its opaque token. Unknown username and wrong password are
// distinct errors internally but must be rendered identically.
func (s *AuthService) Login(ctx context.Context, username, password string) (string, error) {
	ctx, span := middleware.StartSpan(ctx, "auth.login", trace.WithAttributes(
		attribute.String("layer", "logic"),
		attribute.String("username", username),
	))
	defer span.End()

	row, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		span.RecordError(err)
		return "", fmt.Errorf("query user %q: %w", username, err)
	}
	if row == nil {
		span.SetAttributes(attribute.Bool("auth.success", false))
		span.AddEvent("authentication.failed")
		return "", fmt.Errorf("authenticate user %q: %w", username, ErrUserNotFound)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(row.PasswordHash), []byte(password)); err != nil {
		span.SetAttributes(attribute.Bool("auth.success", false))
		span.AddEvent("authentication.failed")
		return "", fmt.Errorf("authenticate user %q: %w", username, ErrInvalidCredentials)
	}

	token := uuid.NewString()
	expiresAt := time.Now().Add(s.sessionTTL)
	if err := s.sessions.Create(ctx, row.ID, token, expiresAt); err != nil {
		span.RecordError(err)
		return "", fmt.Errorf("create session: %w", err)
	}

	span.SetAttributes(
		attribute.Int64("user.id", row.ID),
		attribute.Bool("auth.success", true),
	)
	span.AddEvent("user.authenticated")

	return token, nil
}

// Logout destroys the session. Logging out an unknown token succeeds;
// the end state is the same.
func (s *AuthService) Logout(ctx context.Context, token string) error {
	ctx, span := middleware.StartSpan(ctx, "auth.logout", trace.WithAttributes(
		attribute.String("layer", "logic"),
	))
	defer span.End()

	if err := s.sessions.Delete(ctx, token); err != nil {
		span.RecordError(err)
		return fmt.Errorf("delete session: %w", err)
	}

	span.AddEvent("session.destroyed")
	return nil
}

// ResolveSession maps a session token to the signed-in identity.
// Expired sessions are deleted on sight, best-effort.
func (s *AuthService) ResolveSession(ctx context.Context, token string) (*domain.Identity, error) {
	ctx, span := middleware.StartSpan(ctx, "auth.resolve_session", trace.WithAttributes(
		attribute.String("layer", "logic"),
	))
	defer span.End()

	row, err := s.sessions.GetUserByToken(ctx, token)
	if err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("query session: %w", err)
	}
	if row == nil {
		span.SetAttributes(attribute.Bool("session.valid", false))
		return nil, fmt.Errorf("lookup session: %w", ErrSessionNotFound)
	}

	if time.Now().After(row.ExpiresAt) {
		span.SetAttributes(attribute.Bool("session.valid", false))
		if delErr := s.sessions.Delete(ctx, token); delErr != nil {
			span.RecordError(fmt.Errorf("delete expired session: %w", delErr))
		}
		return nil, fmt.Errorf("session expired at %v: %w", row.ExpiresAt, ErrSessionExpired)
	}

	span.SetAttributes(
		attribute.Int64("user.id", row.UserID),
		attribute.Bool("session.valid", true),
	)

	return &domain.Identity{UserID: row.UserID, Username: row.Username}, nil
}
