// Package handler はusersフィーチャーのHTTPハンドラを提供します。
package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"forum_backend/internal/feature/auth/transport/middleware"
	"forum_backend/internal/feature/users/domain/entity"
	"forum_backend/internal/feature/users/transport/http/dto"
	"forum_backend/internal/shared/lookup"
	"forum_backend/internal/shared/policy"
)

// RoleUsecase はハンドラが必要とするロール操作を定義します。
type RoleUsecase interface {
	Create(ctx context.Context, actor policy.Actor, title string) (*entity.Role, error)
	List(ctx context.Context, actor policy.Actor, skip, limit int) ([]entity.Role, error)
	Get(ctx context.Context, actor policy.Actor, key lookup.Key) (*entity.Role, error)
	Update(ctx context.Context, actor policy.Actor, key lookup.Key, title string) (*entity.Role, error)
	Delete(ctx context.Context, actor policy.Actor, key lookup.Key) error
}

// RoleHandler はロール管理エンドポイントのHTTPハンドラです。
type RoleHandler struct {
	roles RoleUsecase
}

// NewRoleHandler はRoleHandlerの新しいインスタンスを生成します。
func NewRoleHandler(roles RoleUsecase) *RoleHandler {
	return &RoleHandler{roles: roles}
}

// Create は POST /roles に対応し、新しいロールを作成します。
func (h *RoleHandler) Create(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "not authenticated"})
		return
	}

	var req dto.RoleReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	role, err := h.roles.Create(c.Request.Context(), user.Actor(), req.Title)
	if err != nil {
		respondError(c, "create role", err)
		return
	}
	c.JSON(http.StatusCreated, dto.NewRoleResponse(role))
}

// List は GET /roles に対応します。
func (h *RoleHandler) List(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "not authenticated"})
		return
	}

	skip, limit := paging(c)
	roles, err := h.roles.List(c.Request.Context(), user.Actor(), skip, limit)
	if err != nil {
		respondError(c, "list roles", err)
		return
	}

	out := make([]dto.RoleResponse, len(roles))
	for i := range roles {
		out[i] = dto.NewRoleResponse(&roles[i])
	}
	c.JSON(http.StatusOK, out)
}

// Get は GET /roles/:key に対応します。キーはIDまたはタイトルです。
func (h *RoleHandler) Get(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "not authenticated"})
		return
	}

	key, err := lookup.ParseTitleKey(c.Param("key"))
	if err != nil {
		respondError(c, "get role", err)
		return
	}

	role, err := h.roles.Get(c.Request.Context(), user.Actor(), key)
	if err != nil {
		respondError(c, "get role", err)
		return
	}
	c.JSON(http.StatusOK, dto.NewRoleResponse(role))
}

// Update は PATCH /roles/:key に対応します。
func (h *RoleHandler) Update(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "not authenticated"})
		return
	}

	key, err := lookup.ParseTitleKey(c.Param("key"))
	if err != nil {
		respondError(c, "update role", err)
		return
	}

	var req dto.RoleReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	role, err := h.roles.Update(c.Request.Context(), user.Actor(), key, req.Title)
	if err != nil {
		respondError(c, "update role", err)
		return
	}
	c.JSON(http.StatusOK, dto.NewRoleResponse(role))
}

// Delete は DELETE /roles/:key に対応します。
func (h *RoleHandler) Delete(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "not authenticated"})
		return
	}

	key, err := lookup.ParseTitleKey(c.Param("key"))
	if err != nil {
		respondError(c, "delete role", err)
		return
	}

	if err := h.roles.Delete(c.Request.Context(), user.Actor(), key); err != nil {
		respondError(c, "delete role", err)
		return
	}
	c.Status(http.StatusNoContent)
}
