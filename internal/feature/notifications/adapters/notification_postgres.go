// Package adapters はnotificationsフィーチャーのリポジトリ実装を提供します。
package adapters

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"forum_backend/internal/feature/notifications/domain/entity"
	"forum_backend/internal/feature/notifications/usecase"
)

// notificationPostgres はNotificationRepositoryインターフェースのPostgreSQL実装です。
type notificationPostgres struct {
	db *gorm.DB
}

// notificationPostgresがNotificationRepositoryを実装していることをコンパイル時に検証します。
var _ usecase.NotificationRepository = (*notificationPostgres)(nil)

// NewNotificationPostgres は指定されたgorm.DB接続でnotificationPostgresの新しいインスタンスを生成します。
func NewNotificationPostgres(db *gorm.DB) *notificationPostgres {
	return &notificationPostgres{db: db}
}

// Create は通知をデータベースに追加します。
func (r *notificationPostgres) Create(ctx context.Context, n *entity.Notification) error {
	return r.db.WithContext(ctx).Create(n).Error
}

// List は通知をID順に取得します。
func (r *notificationPostgres) List(ctx context.Context, skip, limit int) ([]entity.Notification, error) {
	var notifications []entity.Notification
	err := r.db.WithContext(ctx).
		Order("id asc").
		Offset(skip).
		Limit(limit).
		Find(&notifications).Error
	if err != nil {
		return nil, err
	}
	return notifications, nil
}

// ListByUser は指定されたユーザー宛の通知を新しい順に取得します。
func (r *notificationPostgres) ListByUser(ctx context.Context, userID uint, skip, limit int) ([]entity.Notification, error) {
	var notifications []entity.Notification
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("id desc").
		Offset(skip).
		Limit(limit).
		Find(&notifications).Error
	if err != nil {
		return nil, err
	}
	return notifications, nil
}

// FindByID はIDで通知を取得します。
// 存在しない場合、usecase.ErrNotificationNotFoundを返します。
func (r *notificationPostgres) FindByID(ctx context.Context, id uint) (*entity.Notification, error) {
	var n entity.Notification
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&n).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, usecase.ErrNotificationNotFound
		}
		return nil, err
	}
	return &n, nil
}

// Update は通知の変更を保存します。
func (r *notificationPostgres) Update(ctx context.Context, n *entity.Notification) error {
	return r.db.WithContext(ctx).Save(n).Error
}

// Delete はIDで通知を削除します。
func (r *notificationPostgres) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&entity.Notification{}, id).Error
}
