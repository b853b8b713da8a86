package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	usersentity "forum_backend/internal/feature/users/domain/entity"
)

// mockResolver accepts a single token string.
type mockResolver struct {
	token string
	user  *usersentity.User
}

func (m *mockResolver) ResolveToken(ctx context.Context, token string) (*usersentity.User, error) {
	if token == m.token {
		return m.user, nil
	}
	return nil, errors.New("invalid token")
}

func newProtectedRouter(resolver UserResolver) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/me", AuthRequired(resolver), func(c *gin.Context) {
		user, ok := CurrentUser(c)
		if !ok {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "user missing from context"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"username": user.Username})
	})
	return router
}

func TestAuthRequired(t *testing.T) {
	resolver := &mockResolver{token: "good-token", user: &usersentity.User{ID: 1, Username: "alice"}}
	router := newProtectedRouter(resolver)

	tests := []struct {
		name           string
		authorization  string
		expectedStatus int
	}{
		{name: "valid bearer token", authorization: "Bearer good-token", expectedStatus: http.StatusOK},
		{name: "missing header", authorization: "", expectedStatus: http.StatusUnauthorized},
		{name: "wrong scheme", authorization: "Basic good-token", expectedStatus: http.StatusUnauthorized},
		{name: "unknown token", authorization: "Bearer forged", expectedStatus: http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, _ := http.NewRequest(http.MethodGet, "/me", nil)
			if tt.authorization != "" {
				req.Header.Set("Authorization", tt.authorization)
			}

			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			if tt.expectedStatus == http.StatusUnauthorized {
				assert.Equal(t, "Bearer", w.Header().Get("WWW-Authenticate"))
				assert.JSONEq(t, `{"error": "could not validate credentials"}`, w.Body.String())
			} else {
				assert.JSONEq(t, `{"username": "alice"}`, w.Body.String())
			}
		})
	}
}

func TestOptionalAuth(t *testing.T) {
	gin.SetMode(gin.TestMode)
	resolver := &mockResolver{token: "good-token", user: &usersentity.User{ID: 1, Username: "alice"}}

	router := gin.New()
	router.GET("/whoami", OptionalAuth(resolver), func(c *gin.Context) {
		if user, ok := CurrentUser(c); ok {
			c.JSON(http.StatusOK, gin.H{"username": user.Username})
			return
		}
		c.JSON(http.StatusOK, gin.H{"username": "anonymous"})
	})

	tests := []struct {
		name             string
		authorization    string
		expectedUsername string
	}{
		{name: "valid token resolves the user", authorization: "Bearer good-token", expectedUsername: "alice"},
		{name: "missing header passes through", authorization: "", expectedUsername: "anonymous"},
		{name: "invalid token passes through", authorization: "Bearer forged", expectedUsername: "anonymous"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, _ := http.NewRequest(http.MethodGet, "/whoami", nil)
			if tt.authorization != "" {
				req.Header.Set("Authorization", tt.authorization)
			}

			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			assert.Equal(t, http.StatusOK, w.Code)
			assert.JSONEq(t, `{"username": "`+tt.expectedUsername+`"}`, w.Body.String())
		})
	}
}

func TestTokenFromQuery(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name     string
		query    string
		expected string
		found    bool
	}{
		{name: "bearer prefixed", query: "?token=Bearer%20abc", expected: "abc", found: true},
		{name: "bare token", query: "?token=abc", expected: "abc", found: true},
		{name: "missing", query: "", found: false},
		{name: "empty value", query: "?token=", found: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, _ := gin.CreateTestContext(httptest.NewRecorder())
			c.Request, _ = http.NewRequest(http.MethodGet, "/ws/chat"+tt.query, nil)

			token, ok := TokenFromQuery(c)
			assert.Equal(t, tt.found, ok)
			assert.Equal(t, tt.expected, token)
		})
	}
}
