package handler

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"forum_backend/internal/feature/auth/transport/middleware"
	"forum_backend/internal/feature/users/domain/entity"
	"forum_backend/internal/feature/users/transport/http/dto"
	"forum_backend/internal/feature/users/usecase"
	"forum_backend/internal/shared/lookup"
	"forum_backend/internal/shared/policy"
)

// UserUsecase はハンドラが必要とするユーザー操作を定義します。
type UserUsecase interface {
	Create(ctx context.Context, in usecase.CreateUserInput) (*entity.User, error)
	List(ctx context.Context, skip, limit int) ([]entity.User, error)
	Get(ctx context.Context, key lookup.Key) (*entity.User, error)
	Update(ctx context.Context, actor policy.Actor, userID uint, in usecase.UpdateUserInput) (*entity.User, error)
	Delete(ctx context.Context, actor policy.Actor, userID uint) error
}

// UserHandler はユーザー管理エンドポイントのHTTPハンドラです。
type UserHandler struct {
	users UserUsecase
}

// NewUserHandler はUserHandlerの新しいインスタンスを生成します。
func NewUserHandler(users UserUsecase) *UserHandler {
	return &UserHandler{users: users}
}

// Create は POST /users に対応します。認証不要の公開エンドポイントです。
func (h *UserHandler) Create(c *gin.Context) {
	var req dto.CreateUserReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := h.users.Create(c.Request.Context(), usecase.CreateUserInput{
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
		RoleID:   req.RoleID,
	})
	if err != nil {
		respondError(c, "create user", err)
		return
	}
	c.JSON(http.StatusCreated, dto.NewUserResponse(user))
}

// List は GET /users に対応します。
func (h *UserHandler) List(c *gin.Context) {
	skip, limit := paging(c)
	users, err := h.users.List(c.Request.Context(), skip, limit)
	if err != nil {
		respondError(c, "list users", err)
		return
	}
	c.JSON(http.StatusOK, dto.NewUserResponses(users))
}

// Get は GET /users/:key に対応します。キーはID、ユーザー名またはメールアドレスです。
// 特別なキー "me" は認証済みの呼び出し元自身を返します。
func (h *UserHandler) Get(c *gin.Context) {
	if c.Param("key") == "me" {
		user, ok := middleware.CurrentUser(c)
		if !ok {
			c.Header("WWW-Authenticate", "Bearer")
			c.JSON(http.StatusUnauthorized, gin.H{"error": "could not validate credentials"})
			return
		}
		c.JSON(http.StatusOK, dto.NewUserResponse(user))
		return
	}

	key, err := lookup.ParseUserKey(c.Param("key"))
	if err != nil {
		respondError(c, "get user", err)
		return
	}

	user, err := h.users.Get(c.Request.Context(), key)
	if err != nil {
		respondError(c, "get user", err)
		return
	}
	c.JSON(http.StatusOK, dto.NewUserResponse(user))
}

// Update は PATCH /users/:id に対応します。本人または管理者のみ更新できます。
func (h *UserHandler) Update(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "not authenticated"})
		return
	}

	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid user id"})
		return
	}

	var req dto.UpdateUserReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	updated, err := h.users.Update(c.Request.Context(), user.Actor(), uint(id), usecase.UpdateUserInput{
		Email:        req.Email,
		Password:     req.Password,
		ProfileImage: req.ProfileImage,
	})
	if err != nil {
		respondError(c, "update user", err)
		return
	}
	c.JSON(http.StatusOK, dto.NewUserResponse(updated))
}

// Delete は DELETE /users/:id に対応します。
func (h *UserHandler) Delete(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "not authenticated"})
		return
	}

	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid user id"})
		return
	}

	if err := h.users.Delete(c.Request.Context(), user.Actor(), uint(id)); err != nil {
		respondError(c, "delete user", err)
		return
	}
	c.Status(http.StatusNoContent)
}
