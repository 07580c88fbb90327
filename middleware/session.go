package middleware

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/fransbask/Gamehub/internal/core/domain"
)

// SessionCookie is the cookie carrying the opaque session token.
const SessionCookie = "session_token"

const identityKey = "identity"

// SessionResolver maps an opaque session token to a signed-in identity.
// Implemented by the auth service.
type SessionResolver interface {
	ResolveSession(ctx context.Context, token string) (*domain.Identity, error)
}

// CurrentUser resolves the session cookie into an identity and stores it
// on the request context for handlers and templates. Every failure mode
// (no cookie, unknown token, expired session, lookup error) degrades to
// anonymous; this middleware never aborts a request.
func CurrentUser(auth SessionResolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(SessionCookie)
		if err != nil || token == "" {
			c.Next()
			return
		}

		ident, err := auth.ResolveSession(c.Request.Context(), token)
		if err != nil {
			zerolog.Ctx(c.Request.Context()).Debug().
				Err(err).
				Msg("Session did not resolve, continuing as anonymous")
			c.Next()
			return
		}

		c.Set(identityKey, ident)
		c.Next()
	}
}

// IdentityFromContext returns the identity bound by CurrentUser, or nil
// for an anonymous request.
func IdentityFromContext(c *gin.Context) *domain.Identity {
	v, ok := c.Get(identityKey)
	if !ok {
		return nil
	}
	ident, ok := v.(*domain.Identity)
	if !ok {
		return nil
	}
	return ident
}

// RequireAuth gates a route on a signed-in session. Anonymous requests
// are redirected, not failed; being logged out is normal control flow
// here, not an error.
func RequireAuth(redirectTo string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if IdentityFromContext(c) == nil {
			c.Redirect(http.StatusFound, redirectTo)
			c.Abort()
			return
		}
		c.Next()
	}
}
