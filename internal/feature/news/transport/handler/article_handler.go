// Package handler はnewsフィーチャーのHTTPハンドラを提供します。
package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"forum_backend/internal/feature/auth/transport/middleware"
	"forum_backend/internal/feature/news/domain/entity"
	"forum_backend/internal/feature/news/transport/http/dto"
	"forum_backend/internal/feature/news/usecase"
	"forum_backend/internal/shared/policy"
)

// ArticleUsecase はハンドラが必要とする記事操作を定義します。
type ArticleUsecase interface {
	Create(ctx context.Context, actor policy.Actor, in usecase.CreateArticleInput) (*entity.Article, error)
	List(ctx context.Context, skip, limit int) ([]entity.Article, error)
	Get(ctx context.Context, id uint) (*entity.Article, error)
	Update(ctx context.Context, actor policy.Actor, id uint, in usecase.UpdateArticleInput) (*entity.Article, error)
	Rate(ctx context.Context, actor policy.Actor, id uint, rating usecase.RatingType) (*entity.Article, error)
	Delete(ctx context.Context, actor policy.Actor, id uint) error
}

// ArticleHandler は記事エンドポイントのHTTPハンドラです。
type ArticleHandler struct {
	articles ArticleUsecase
}

// NewArticleHandler はArticleHandlerの新しいインスタンスを生成します。
func NewArticleHandler(articles ArticleUsecase) *ArticleHandler {
	return &ArticleHandler{articles: articles}
}

// statusOf はユースケースのsentinelエラーをHTTPステータスに対応付けます。
func statusOf(err error) int {
	switch {
	case errors.Is(err, usecase.ErrNotAdmin):
		return http.StatusForbidden
	case errors.Is(err, usecase.ErrArticleNotFound):
		return http.StatusNotFound
	case errors.Is(err, usecase.ErrBadRatingType):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func respondError(c *gin.Context, op string, err error) {
	status := statusOf(err)
	if status == http.StatusInternalServerError {
		slog.Error(op, "error", err)
		c.JSON(status, gin.H{"error": "internal server error"})
		return
	}
	c.JSON(status, gin.H{"error": err.Error()})
}

func pathID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return 0, false
	}
	return uint(id), true
}

// Create は POST /articles に対応します。管理者のみ作成できます。
func (h *ArticleHandler) Create(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "not authenticated"})
		return
	}

	var req dto.CreateArticleReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	article, err := h.articles.Create(c.Request.Context(), user.Actor(), usecase.CreateArticleInput{
		Title:   req.Title,
		Content: req.Content,
	})
	if err != nil {
		respondError(c, "create article", err)
		return
	}
	c.JSON(http.StatusCreated, dto.NewArticleResponse(article))
}

// List は GET /articles に対応します。認証不要です。
func (h *ArticleHandler) List(c *gin.Context) {
	skip, _ := strconv.Atoi(c.DefaultQuery("skip", "0"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "100"))

	articles, err := h.articles.List(c.Request.Context(), skip, limit)
	if err != nil {
		respondError(c, "list articles", err)
		return
	}
	c.JSON(http.StatusOK, dto.NewArticleResponses(articles))
}

// Get は GET /articles/:id に対応します。認証不要です。
func (h *ArticleHandler) Get(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	article, err := h.articles.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, "get article", err)
		return
	}
	c.JSON(http.StatusOK, dto.NewArticleResponse(article))
}

// Update は PATCH /articles/:id に対応します。管理者のみ更新できます。
func (h *ArticleHandler) Update(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "not authenticated"})
		return
	}

	id, ok := pathID(c)
	if !ok {
		return
	}

	var req dto.UpdateArticleReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	article, err := h.articles.Update(c.Request.Context(), user.Actor(), id, usecase.UpdateArticleInput{
		Title:   req.Title,
		Content: req.Content,
	})
	if err != nil {
		respondError(c, "update article", err)
		return
	}
	c.JSON(http.StatusOK, dto.NewArticleResponse(article))
}

// Rate は PATCH /articles/:id/:rating に対応し、評価をトグルします。
// like と dislike は相互排他で、同じ評価の再送で取り消しになります。
func (h *ArticleHandler) Rate(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "not authenticated"})
		return
	}

	id, ok := pathID(c)
	if !ok {
		return
	}

	rating, err := usecase.ParseRatingType(c.Param("rating"))
	if err != nil {
		respondError(c, "rate article", err)
		return
	}

	article, err := h.articles.Rate(c.Request.Context(), user.Actor(), id, rating)
	if err != nil {
		respondError(c, "rate article", err)
		return
	}
	c.JSON(http.StatusOK, dto.NewArticleResponse(article))
}

// Delete は DELETE /articles/:id に対応します。管理者のみ削除できます。
func (h *ArticleHandler) Delete(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "not authenticated"})
		return
	}

	id, ok := pathID(c)
	if !ok {
		return
	}

	if err := h.articles.Delete(c.Request.Context(), user.Actor(), id); err != nil {
		respondError(c, "delete article", err)
		return
	}
	c.Status(http.StatusNoContent)
}
