package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"forum_backend/internal/feature/auth/transport/middleware"
	"forum_backend/internal/feature/forum/domain/entity"
	"forum_backend/internal/feature/forum/transport/http/dto"
	"forum_backend/internal/shared/lookup"
	"forum_backend/internal/shared/policy"
)

// TagUsecase はハンドラが必要とするタグ操作を定義します。
type TagUsecase interface {
	Create(ctx context.Context, actor policy.Actor, title string) (*entity.Tag, error)
	List(ctx context.Context, skip, limit int) ([]entity.Tag, error)
	Get(ctx context.Context, key lookup.Key) (*entity.Tag, error)
	Update(ctx context.Context, actor policy.Actor, id uint, title string) (*entity.Tag, error)
	Delete(ctx context.Context, actor policy.Actor, id uint) error
}

// TagHandler はタグエンドポイントのHTTPハンドラです。
type TagHandler struct {
	tags TagUsecase
}

// NewTagHandler はTagHandlerの新しいインスタンスを生成します。
func NewTagHandler(tags TagUsecase) *TagHandler {
	return &TagHandler{tags: tags}
}

// Create は POST /tags に対応します。管理者のみ作成できます。
func (h *TagHandler) Create(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "not authenticated"})
		return
	}

	var req dto.TagReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	tag, err := h.tags.Create(c.Request.Context(), user.Actor(), req.Title)
	if err != nil {
		respondError(c, "create tag", err)
		return
	}
	c.JSON(http.StatusCreated, dto.NewTagResponse(tag))
}

// List は GET /tags に対応します。
func (h *TagHandler) List(c *gin.Context) {
	skip, limit := paging(c)
	tags, err := h.tags.List(c.Request.Context(), skip, limit)
	if err != nil {
		respondError(c, "list tags", err)
		return
	}

	out := make([]dto.TagResponse, len(tags))
	for i := range tags {
		out[i] = dto.NewTagResponse(&tags[i])
	}
	c.JSON(http.StatusOK, out)
}

// Get は GET /tags/:key に対応します。キーはIDまたはタイトルです。
func (h *TagHandler) Get(c *gin.Context) {
	key, err := lookup.ParseTitleKey(c.Param("key"))
	if err != nil {
		respondError(c, "get tag", err)
		return
	}

	tag, err := h.tags.Get(c.Request.Context(), key)
	if err != nil {
		respondError(c, "get tag", err)
		return
	}
	c.JSON(http.StatusOK, dto.NewTagResponse(tag))
}

// Update は PATCH /tags/:id に対応します。
func (h *TagHandler) Update(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "not authenticated"})
		return
	}

	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req dto.TagReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	tag, err := h.tags.Update(c.Request.Context(), user.Actor(), id, req.Title)
	if err != nil {
		respondError(c, "update tag", err)
		return
	}
	c.JSON(http.StatusOK, dto.NewTagResponse(tag))
}

// Delete は DELETE /tags/:id に対応します。
func (h *TagHandler) Delete(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "not authenticated"})
		return
	}

	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	if err := h.tags.Delete(c.Request.Context(), user.Actor(), id); err != nil {
		respondError(c, "delete tag", err)
		return
	}
	c.Status(http.StatusNoContent)
}
