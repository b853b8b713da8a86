package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"forum_backend/internal/feature/auth/transport/middleware"
	"forum_backend/internal/feature/users/domain/entity"
	"forum_backend/internal/feature/users/usecase"
	"forum_backend/internal/shared/lookup"
	"forum_backend/internal/shared/policy"
)

// mockUserUsecase is a mock implementation of the UserUsecase interface.
type mockUserUsecase struct {
	GetFunc func(ctx context.Context, key lookup.Key) (*entity.User, error)
}

func (m *mockUserUsecase) Create(ctx context.Context, in usecase.CreateUserInput) (*entity.User, error) {
	return nil, nil
}

func (m *mockUserUsecase) List(ctx context.Context, skip, limit int) ([]entity.User, error) {
	return nil, nil
}

func (m *mockUserUsecase) Get(ctx context.Context, key lookup.Key) (*entity.User, error) {
	return m.GetFunc(ctx, key)
}

func (m *mockUserUsecase) Update(ctx context.Context, actor policy.Actor, userID uint, in usecase.UpdateUserInput) (*entity.User, error) {
	return nil, nil
}

func (m *mockUserUsecase) Delete(ctx context.Context, actor policy.Actor, userID uint) error {
	return nil
}

// asUser injects an authenticated user the way OptionalAuth does.
func asUser(user *entity.User) gin.HandlerFunc {
	return func(c *gin.Context) {
		if user != nil {
			c.Set(middleware.ContextUser, user)
		}
		c.Next()
	}
}

func TestUserHandler_Get(t *testing.T) {
	gin.SetMode(gin.TestMode)
	alice := &entity.User{ID: 1, Username: "alice", Email: "alice@example.com", Role: entity.Role{Title: "User"}}

	tests := []struct {
		name             string
		path             string
		user             *entity.User
		mockGetFunc      func(ctx context.Context, key lookup.Key) (*entity.User, error)
		expectedStatus   int
		expectedUsername string
	}{
		{
			name:             "me: authenticated caller gets own record without a lookup",
			path:             "/users/me",
			user:             alice,
			expectedStatus:   http.StatusOK,
			expectedUsername: "alice",
		},
		{
			name:           "me: anonymous caller is rejected",
			path:           "/users/me",
			user:           nil,
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name: "numeric key resolves by id",
			path: "/users/1",
			mockGetFunc: func(ctx context.Context, key lookup.Key) (*entity.User, error) {
				if key.Kind != lookup.KindID || key.ID != 1 {
					return nil, usecase.ErrUserNotFound
				}
				return alice, nil
			},
			expectedStatus:   http.StatusOK,
			expectedUsername: "alice",
		},
		{
			name: "unknown user",
			path: "/users/nobody",
			mockGetFunc: func(ctx context.Context, key lookup.Key) (*entity.User, error) {
				return nil, usecase.ErrUserNotFound
			},
			expectedStatus: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := NewUserHandler(&mockUserUsecase{GetFunc: tt.mockGetFunc})

			router := gin.New()
			router.GET("/users/:key", asUser(tt.user), handler.Get)

			w := httptest.NewRecorder()
			req, _ := http.NewRequest(http.MethodGet, tt.path, nil)
			router.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			if tt.expectedStatus == http.StatusOK {
				var got gin.H
				require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
				assert.Equal(t, tt.expectedUsername, got["username"])
			}
			if tt.expectedStatus == http.StatusUnauthorized {
				assert.Equal(t, "Bearer", w.Header().Get("WWW-Authenticate"))
			}
		})
	}
}
