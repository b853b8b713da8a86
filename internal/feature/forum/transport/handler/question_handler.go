// Package handler はforumフィーチャーのHTTPハンドラを提供します。
package handler

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"forum_backend/internal/feature/auth/transport/middleware"
	"forum_backend/internal/feature/forum/domain/entity"
	"forum_backend/internal/feature/forum/transport/http/dto"
	"forum_backend/internal/feature/forum/usecase"
	"forum_backend/internal/shared/policy"
)

// QuestionUsecase はハンドラが必要とする質問操作を定義します。
type QuestionUsecase interface {
	Create(ctx context.Context, actor policy.Actor, in usecase.CreateQuestionInput) (*entity.Question, error)
	List(ctx context.Context, opts usecase.ListOptions) ([]entity.Question, error)
	SearchByTitle(ctx context.Context, title string) ([]entity.Question, error)
	Get(ctx context.Context, id uint) (*entity.Question, error)
	ListByAuthor(ctx context.Context, authorID uint) ([]entity.Question, error)
	Update(ctx context.Context, actor policy.Actor, id uint, in usecase.UpdateQuestionInput) (*entity.Question, error)
	UpdateViews(ctx context.Context, id uint, views int) (*entity.Question, error)
	Delete(ctx context.Context, actor policy.Actor, id uint) error
}

// QuestionHandler は質問エンドポイントのHTTPハンドラです。
type QuestionHandler struct {
	questions QuestionUsecase
}

// NewQuestionHandler はQuestionHandlerの新しいインスタンスを生成します。
func NewQuestionHandler(questions QuestionUsecase) *QuestionHandler {
	return &QuestionHandler{questions: questions}
}

// parseOrder はorderクエリパラメータをListOrderに変換します。
// 未知の値は挿入順として扱います。
func parseOrder(raw string) usecase.ListOrder {
	switch raw {
	case "date":
		return usecase.OrderDateAsc
	case "-date":
		return usecase.OrderDateDesc
	case "views":
		return usecase.OrderViewsDesc
	default:
		return usecase.OrderNone
	}
}

// Create は POST /questions に対応します。
func (h *QuestionHandler) Create(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "not authenticated"})
		return
	}

	var req dto.CreateQuestionReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	question, err := h.questions.Create(c.Request.Context(), user.Actor(), usecase.CreateQuestionInput{
		Title:    req.Title,
		Content:  req.Content,
		Tags:     req.Tags,
		AuthorID: req.AuthorID,
	})
	if err != nil {
		respondError(c, "create question", err)
		return
	}
	c.JSON(http.StatusCreated, dto.NewQuestionResponse(question))
}

// List は GET /questions に対応します。titleクエリがあれば類似検索、
// author_idクエリがあれば著者での絞り込みになります。
func (h *QuestionHandler) List(c *gin.Context) {
	if title := c.Query("title"); title != "" {
		questions, err := h.questions.SearchByTitle(c.Request.Context(), title)
		if err != nil {
			respondError(c, "search questions", err)
			return
		}
		c.JSON(http.StatusOK, dto.NewQuestionResponses(questions))
		return
	}

	if raw := c.Query("author_id"); raw != "" {
		authorID, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid author_id"})
			return
		}
		questions, err := h.questions.ListByAuthor(c.Request.Context(), uint(authorID))
		if err != nil {
			respondError(c, "list questions by author", err)
			return
		}
		c.JSON(http.StatusOK, dto.NewQuestionResponses(questions))
		return
	}

	skip, limit := paging(c)
	questions, err := h.questions.List(c.Request.Context(), usecase.ListOptions{
		Skip:  skip,
		Limit: limit,
		Order: parseOrder(c.Query("order")),
	})
	if err != nil {
		respondError(c, "list questions", err)
		return
	}
	c.JSON(http.StatusOK, dto.NewQuestionResponses(questions))
}

// Get は GET /questions/:id に対応します。
func (h *QuestionHandler) Get(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	question, err := h.questions.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, "get question", err)
		return
	}
	c.JSON(http.StatusOK, dto.NewQuestionResponse(question))
}

// Update は PATCH /questions/:id に対応します。管理者または著者のみ更新できます。
func (h *QuestionHandler) Update(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "not authenticated"})
		return
	}

	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req dto.UpdateQuestionReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	question, err := h.questions.Update(c.Request.Context(), user.Actor(), id, usecase.UpdateQuestionInput{
		Title:   req.Title,
		Content: req.Content,
		Views:   req.Views,
		Tags:    req.Tags,
	})
	if err != nil {
		respondError(c, "update question", err)
		return
	}
	c.JSON(http.StatusOK, dto.NewQuestionResponse(question))
}

// UpdateViews は PATCH /questions/:id/views に対応します。認証不要です。
func (h *QuestionHandler) UpdateViews(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req dto.ViewsReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	question, err := h.questions.UpdateViews(c.Request.Context(), id, *req.Views)
	if err != nil {
		respondError(c, "update question views", err)
		return
	}
	c.JSON(http.StatusOK, dto.NewQuestionResponse(question))
}

// Delete は DELETE /questions/:id に対応します。
func (h *QuestionHandler) Delete(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "not authenticated"})
		return
	}

	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	if err := h.questions.Delete(c.Request.Context(), user.Actor(), id); err != nil {
		respondError(c, "delete question", err)
		return
	}
	c.Status(http.StatusNoContent)
}
