// Package usecase はnotificationsフィーチャーのビジネスロジックを実装します。
package usecase

import (
	"context"

	"forum_backend/internal/feature/notifications/domain/entity"
	"forum_backend/internal/shared/policy"
)

// NotificationRepository は通知エンティティの永続化層を抽象化します。
// Goの慣例に従い、インターフェースはプロバイダー（adapters）ではなくコンシューマー（usecase）が定義します。
type NotificationRepository interface {
	// Create は新しい通知をストレージに永続化します。
	Create(ctx context.Context, n *entity.Notification) error

	// List は通知を skip/limit の範囲で取得します。
	List(ctx context.Context, skip, limit int) ([]entity.Notification, error)

	// ListByUser は指定されたユーザー宛の通知を新しい順に取得します。
	ListByUser(ctx context.Context, userID uint, skip, limit int) ([]entity.Notification, error)

	// FindByID は指定されたIDに一致する通知を取得します。
	// 存在しない場合、ErrNotificationNotFoundを返します。
	FindByID(ctx context.Context, id uint) (*entity.Notification, error)

	// Update は通知の変更を永続化します。
	Update(ctx context.Context, n *entity.Notification) error

	// Delete は指定されたIDの通知を削除します。
	Delete(ctx context.Context, id uint) error
}

// ExistenceChecker はIDによる存在確認を抽象化します。
// usersとforumのリポジトリが構造的に実装します。
type ExistenceChecker interface {
	ExistsByID(ctx context.Context, id uint) (bool, error)
}

// CreateNotificationInput は通知作成の入力です。
type CreateNotificationInput struct {
	Title      string
	UserID     uint
	QuestionID uint
}

// notificationUsecase は通知管理のビジネスロジックを実装します。
type notificationUsecase struct {
	notifications NotificationRepository
	users         ExistenceChecker
	questions     ExistenceChecker
}

// NewNotificationUsecase はnotificationUsecaseの新しいインスタンスを生成します。
func NewNotificationUsecase(notifications NotificationRepository, users, questions ExistenceChecker) *notificationUsecase {
	return &notificationUsecase{notifications: notifications, users: users, questions: questions}
}

// Create は新しい通知を作成します。管理者のみ可能です。
// 宛先ユーザーと対象の質問が存在しない場合エラーを返します。
func (u *notificationUsecase) Create(ctx context.Context, actor policy.Actor, in CreateNotificationInput) (*entity.Notification, error) {
	if !policy.AdminOnly(actor) {
		return nil, ErrNotAdmin
	}

	if ok, err := u.users.ExistsByID(ctx, in.UserID); err != nil {
		return nil, err
	} else if !ok {
		return nil, ErrUserMissing
	}
	if ok, err := u.questions.ExistsByID(ctx, in.QuestionID); err != nil {
		return nil, err
	} else if !ok {
		return nil, ErrQuestionMissing
	}

	n := &entity.Notification{
		Title:      in.Title,
		UserID:     in.UserID,
		QuestionID: in.QuestionID,
	}
	if err := u.notifications.Create(ctx, n); err != nil {
		return nil, err
	}
	return n, nil
}

// List はすべての通知を返します。管理者のみ可能です。
func (u *notificationUsecase) List(ctx context.Context, actor policy.Actor, skip, limit int) ([]entity.Notification, error) {
	if !policy.AdminOnly(actor) {
		return nil, ErrNotAdmin
	}
	return u.notifications.List(ctx, skip, limit)
}

// ListByUser は指定されたユーザー宛の通知を新しい順に返します。
// 管理者または宛先のユーザー本人のみ可能です。
func (u *notificationUsecase) ListByUser(ctx context.Context, actor policy.Actor, userID uint, skip, limit int) ([]entity.Notification, error) {
	if !policy.AdminOrOwner(actor, userID) {
		return nil, ErrNotAddressee
	}

	if ok, err := u.users.ExistsByID(ctx, userID); err != nil {
		return nil, err
	} else if !ok {
		return nil, ErrUserMissing
	}
	return u.notifications.ListByUser(ctx, userID, skip, limit)
}

// Update は通知のタイトルを変更します。管理者のみ可能です。
func (u *notificationUsecase) Update(ctx context.Context, actor policy.Actor, id uint, title string) (*entity.Notification, error) {
	if !policy.AdminOnly(actor) {
		return nil, ErrNotAdmin
	}

	n, err := u.notifications.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	n.Title = title
	if err := u.notifications.Update(ctx, n); err != nil {
		return nil, err
	}
	return n, nil
}

// Delete は通知を削除します。管理者または宛先のユーザー本人のみ可能です。
func (u *notificationUsecase) Delete(ctx context.Context, actor policy.Actor, id uint) error {
	n, err := u.notifications.FindByID(ctx, id)
	if err != nil {
		return err
	}

	if !policy.AdminOrOwner(actor, n.UserID) {
		return ErrNotAddressee
	}
	return u.notifications.Delete(ctx, id)
}
