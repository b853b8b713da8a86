// Package middleware ties token resolution into the Gin request
// pipeline. Routes behind AuthRequired see the resolved user in the
// request context.
package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	usersentity "forum_backend/internal/feature/users/domain/entity"
)

// ContextUser is the gin context key the resolved user is stored under.
const ContextUser = "currentUser"

// bearerScheme prefixes tokens in the Authorization header and in the
// websocket query parameter.
const bearerScheme = "Bearer "

// UserResolver turns a bearer token into the authenticated user.
// The auth usecase implements it.
type UserResolver interface {
	ResolveToken(ctx context.Context, token string) (*usersentity.User, error)
}

// AuthRequired returns a middleware that resolves the Authorization
// bearer token and stores the user in the gin context. Requests without
// a valid token get a 401 with a bearer challenge and one uniform error
// body regardless of which check failed.
func AuthRequired(resolver UserResolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		auth := c.GetHeader("Authorization")
		if !strings.HasPrefix(auth, bearerScheme) {
			abortUnauthorized(c)
			return
		}

		user, err := resolver.ResolveToken(c.Request.Context(), strings.TrimPrefix(auth, bearerScheme))
		if err != nil {
			slog.Warn("token resolution failed", "remote_addr", c.ClientIP())
			abortUnauthorized(c)
			return
		}

		c.Set(ContextUser, user)
		c.Next()
	}
}

// OptionalAuth resolves the Authorization bearer token when one is
// present and valid, and stores the user in the gin context. It never
// rejects the request; handlers that serve both anonymous and
// personalized responses decide themselves whether a user is required.
func OptionalAuth(resolver UserResolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		auth := c.GetHeader("Authorization")
		if strings.HasPrefix(auth, bearerScheme) {
			user, err := resolver.ResolveToken(c.Request.Context(), strings.TrimPrefix(auth, bearerScheme))
			if err == nil {
				c.Set(ContextUser, user)
			}
		}
		c.Next()
	}
}

// CurrentUser returns the user AuthRequired stored in the context.
func CurrentUser(c *gin.Context) (*usersentity.User, bool) {
	v, ok := c.Get(ContextUser)
	if !ok {
		return nil, false
	}
	user, ok := v.(*usersentity.User)
	return user, ok
}

// TokenFromQuery extracts the bearer token from the `token` query
// parameter. The websocket handshake cannot carry custom headers, so
// the chat endpoint receives its token as `?token=Bearer <jwt>`.
func TokenFromQuery(c *gin.Context) (string, bool) {
	raw, ok := c.GetQuery("token")
	if !ok || raw == "" {
		return "", false
	}
	return strings.TrimPrefix(raw, bearerScheme), true
}

func abortUnauthorized(c *gin.Context) {
	c.Header("WWW-Authenticate", "Bearer")
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "could not validate credentials"})
}
