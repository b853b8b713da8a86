// Package handler はnotificationsフィーチャーのHTTPハンドラを提供します。
package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"forum_backend/internal/feature/auth/transport/middleware"
	"forum_backend/internal/feature/notifications/domain/entity"
	"forum_backend/internal/feature/notifications/transport/http/dto"
	"forum_backend/internal/feature/notifications/usecase"
	"forum_backend/internal/shared/policy"
)

// NotificationUsecase はハンドラが必要とする通知操作を定義します。
type NotificationUsecase interface {
	Create(ctx context.Context, actor policy.Actor, in usecase.CreateNotificationInput) (*entity.Notification, error)
	List(ctx context.Context, actor policy.Actor, skip, limit int) ([]entity.Notification, error)
	ListByUser(ctx context.Context, actor policy.Actor, userID uint, skip, limit int) ([]entity.Notification, error)
	Update(ctx context.Context, actor policy.Actor, id uint, title string) (*entity.Notification, error)
	Delete(ctx context.Context, actor policy.Actor, id uint) error
}

// NotificationHandler は通知エンドポイントのHTTPハンドラです。
type NotificationHandler struct {
	notifications NotificationUsecase
}

// NewNotificationHandler はNotificationHandlerの新しいインスタンスを生成します。
func NewNotificationHandler(notifications NotificationUsecase) *NotificationHandler {
	return &NotificationHandler{notifications: notifications}
}

// statusOf はユースケースのsentinelエラーをHTTPステータスに対応付けます。
func statusOf(err error) int {
	switch {
	case errors.Is(err, usecase.ErrNotAdmin), errors.Is(err, usecase.ErrNotAddressee):
		return http.StatusForbidden
	case errors.Is(err, usecase.ErrNotificationNotFound),
		errors.Is(err, usecase.ErrUserMissing),
		errors.Is(err, usecase.ErrQuestionMissing):
		return http.StatusNotFound
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

func pathID(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid " + name})
		return 0, false
	}
	return uint(id), true
}

func paging(c *gin.Context) (skip, limit int) {
	skip, _ = strconv.Atoi(c.DefaultQuery("skip", "0"))
	limit, _ = strconv.Atoi(c.DefaultQuery("limit", "100"))
	return skip, limit
}

// Create は POST /notifications に対応します。管理者のみ作成できます。
func (h *NotificationHandler) Create(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "not authenticated"})
		return
	}

	var req dto.CreateNotificationReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	notification, err := h.notifications.Create(c.Request.Context(), user.Actor(), usecase.CreateNotificationInput{
		Title:      req.Title,
		UserID:     req.UserID,
		QuestionID: req.QuestionID,
	})
	if err != nil {
		respondError(c, "create notification", err)
		return
	}
	c.JSON(http.StatusCreated, dto.NewNotificationResponse(notification))
}

// List は GET /notifications に対応します。管理者のみ全件を閲覧できます。
func (h *NotificationHandler) List(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "not authenticated"})
		return
	}

	skip, limit := paging(c)
	notifications, err := h.notifications.List(c.Request.Context(), user.Actor(), skip, limit)
	if err != nil {
		respondError(c, "list notifications", err)
		return
	}
	c.JSON(http.StatusOK, dto.NewNotificationResponses(notifications))
}

// ListByUser は GET /notifications/user/:user_id に対応します。本人または管理者のみ閲覧できます。
func (h *NotificationHandler) ListByUser(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "not authenticated"})
		return
	}

	userID, ok := pathID(c, "user_id")
	if !ok {
		return
	}

	skip, limit := paging(c)
	notifications, err := h.notifications.ListByUser(c.Request.Context(), user.Actor(), userID, skip, limit)
	if err != nil {
		respondError(c, "list notifications by user", err)
		return
	}
	c.JSON(http.StatusOK, dto.NewNotificationResponses(notifications))
}

// Update は PATCH /notifications/:id に対応します。管理者のみ更新できます。
func (h *NotificationHandler) Update(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "not authenticated"})
		return
	}

	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req dto.UpdateNotificationReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	notification, err := h.notifications.Update(c.Request.Context(), user.Actor(), id, req.Title)
	if err != nil {
		respondError(c, "update notification", err)
		return
	}
	c.JSON(http.StatusOK, dto.NewNotificationResponse(notification))
}

// Delete は DELETE /notifications/:id に対応します。管理者または宛先の本人のみ削除できます。
func (h *NotificationHandler) Delete(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "not authenticated"})
		return
	}

	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	if err := h.notifications.Delete(c.Request.Context(), user.Actor(), id); err != nil {
		respondError(c, "delete notification", err)
		return
	}
	c.Status(http.StatusNoContent)
}
