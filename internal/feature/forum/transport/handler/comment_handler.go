package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"forum_backend/internal/feature/auth/transport/middleware"
	"forum_backend/internal/feature/forum/domain/entity"
	"forum_backend/internal/feature/forum/transport/http/dto"
	"forum_backend/internal/feature/forum/usecase"
	usersentity "forum_backend/internal/feature/users/domain/entity"
	"forum_backend/internal/shared/policy"
)

// CommentUsecase はハンドラが必要とするコメント操作を定義します。
type CommentUsecase interface {
	Create(ctx context.Context, author *usersentity.User, in usecase.CreateCommentInput) (*entity.Comment, error)
	List(ctx context.Context, actor policy.Actor, skip, limit int) ([]entity.Comment, error)
	ListByQuestion(ctx context.Context, questionID uint) ([]entity.Comment, error)
	Update(ctx context.Context, actor policy.Actor, commentID uint, in usecase.UpdateCommentInput) (*entity.Comment, error)
	Delete(ctx context.Context, actor policy.Actor, commentID uint) error
}

// CommentHandler はコメントエンドポイントのHTTPハンドラです。
type CommentHandler struct {
	comments CommentUsecase
}

// NewCommentHandler はCommentHandlerの新しいインスタンスを生成します。
func NewCommentHandler(comments CommentUsecase) *CommentHandler {
	return &CommentHandler{comments: comments}
}

// Create は POST /comments に対応します。
// 他人の質問へのコメントは質問の著者への通知を作成します。
func (h *CommentHandler) Create(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "not authenticated"})
		return
	}

	var req dto.CreateCommentReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	comment, err := h.comments.Create(c.Request.Context(), user, usecase.CreateCommentInput{
		Content:    req.Content,
		QuestionID: req.QuestionID,
	})
	if err != nil {
		respondError(c, "create comment", err)
		return
	}
	c.JSON(http.StatusCreated, dto.NewCommentResponse(comment))
}

// List は GET /comments に対応します。管理者のみ全件を閲覧できます。
func (h *CommentHandler) List(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "not authenticated"})
		return
	}

	skip, limit := paging(c)
	comments, err := h.comments.List(c.Request.Context(), user.Actor(), skip, limit)
	if err != nil {
		respondError(c, "list comments", err)
		return
	}
	c.JSON(http.StatusOK, dto.NewCommentResponses(comments))
}

// ListByQuestion は GET /comments/:question_id に対応します。認証不要です。
func (h *CommentHandler) ListByQuestion(c *gin.Context) {
	questionID, ok := pathID(c, "question_id")
	if !ok {
		return
	}

	comments, err := h.comments.ListByQuestion(c.Request.Context(), questionID)
	if err != nil {
		respondError(c, "list comments by question", err)
		return
	}
	c.JSON(http.StatusOK, dto.NewCommentResponses(comments))
}

// Update は PATCH /comments/:id に対応します。
// 変更できるフィールドは役割と所有関係で決まります。
func (h *CommentHandler) Update(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "not authenticated"})
		return
	}

	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req dto.UpdateCommentReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	comment, err := h.comments.Update(c.Request.Context(), user.Actor(), id, usecase.UpdateCommentInput{
		Content:  req.Content,
		IsAnswer: req.IsAnswer,
	})
	if err != nil {
		respondError(c, "update comment", err)
		return
	}
	c.JSON(http.StatusOK, dto.NewCommentResponse(comment))
}

// Delete は DELETE /comments/:id に対応します。管理者またはコメントの著者のみ削除できます。
func (h *CommentHandler) Delete(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "not authenticated"})
		return
	}

	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	if err := h.comments.Delete(c.Request.Context(), user.Actor(), id); err != nil {
		respondError(c, "delete comment", err)
		return
	}
	c.Status(http.StatusNoContent)
}
