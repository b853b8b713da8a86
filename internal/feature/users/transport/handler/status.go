package handler

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"forum_backend/internal/feature/users/usecase"
	"forum_backend/internal/shared/lookup"
)

// statusOf はユースケースのsentinelエラーをHTTPステータスに対応付けます。
func statusOf(err error) int {
	switch {
	case errors.Is(err, usecase.ErrNotAdmin), errors.Is(err, usecase.ErrNotSelf):
		return http.StatusForbidden
	case errors.Is(err, usecase.ErrRoleNotFound), errors.Is(err, usecase.ErrUserNotFound):
		return http.StatusNotFound
	case errors.Is(err, usecase.ErrRoleTitleTaken),
		errors.Is(err, usecase.ErrUserAlreadyExists),
		errors.Is(err, usecase.ErrEmailTaken):
		return http.StatusConflict
	case errors.Is(err, lookup.ErrBadKey):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// respondError はエラーをJSONで返します。500系は詳細を隠してログに残します。
func respondError(c *gin.Context, op string, err error) {
	status := statusOf(err)
	if status == http.StatusInternalServerError {
		slog.Error(op, "error", err)
		c.JSON(status, gin.H{"error": "internal server error"})
		return
	}
	c.JSON(status, gin.H{"error": err.Error()})
}

// paging はskip/limitクエリパラメータを読み取ります。デフォルトはskip=0, limit=100です。
func paging(c *gin.Context) (skip, limit int) {
	skip, _ = strconv.Atoi(c.DefaultQuery("skip", "0"))
	limit, _ = strconv.Atoi(c.DefaultQuery("limit", "100"))
	return skip, limit
}
