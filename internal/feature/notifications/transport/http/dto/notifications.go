// Package dto はnotificationsフィーチャーのHTTPトランスポート層のデータ転送オブジェクトを定義します。
package dto

import "forum_backend/internal/feature/notifications/domain/entity"

// CreateNotificationReq は通知作成のリクエストボディです。
type CreateNotificationReq struct {
	Title      string `json:"title" binding:"required"`
	UserID     uint   `json:"user_id" binding:"required"`
	QuestionID uint   `json:"question_id" binding:"required"`
}

// UpdateNotificationReq は通知更新のリクエストボディです。
type UpdateNotificationReq struct {
	Title string `json:"title" binding:"required"`
}

// NotificationResponse は通知のレスポンスボディです。
type NotificationResponse struct {
	ID         uint   `json:"id"`
	Title      string `json:"title"`
	UserID     uint   `json:"user_id"`
	QuestionID uint   `json:"question_id"`
}

// NewNotificationResponse はエンティティからNotificationResponseを組み立てます。
func NewNotificationResponse(n *entity.Notification) NotificationResponse {
	return NotificationResponse{
		ID:         n.ID,
		Title:      n.Title,
		UserID:     n.UserID,
		QuestionID: n.QuestionID,
	}
}

// NewNotificationResponses はエンティティのスライスを変換します。
func NewNotificationResponses(notifications []entity.Notification) []NotificationResponse {
	out := make([]NotificationResponse, len(notifications))
	for i := range notifications {
		out[i] = NewNotificationResponse(&notifications[i])
	}
	return out
}
