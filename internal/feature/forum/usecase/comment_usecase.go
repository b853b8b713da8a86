package usecase

import (
	"context"
	"fmt"

	"forum_backend/internal/feature/forum/domain/entity"
	notifentity "forum_backend/internal/feature/notifications/domain/entity"
	usersentity "forum_backend/internal/feature/users/domain/entity"
	"forum_backend/internal/shared/policy"
)

// CommentRepository はコメントエンティティの永続化層を抽象化します。
// Goの慣例に従い、インターフェースはプロバイダー（adapters）ではなくコンシューマー（usecase）が定義します。
type CommentRepository interface {
	// Create は新しいコメントをストレージに永続化します。
	Create(ctx context.Context, c *entity.Comment) error

	// List はコメントを skip/limit の範囲で取得します。
	List(ctx context.Context, skip, limit int) ([]entity.Comment, error)

	// ListByQuestion は指定された質問のコメントを古い順に取得します。
	ListByQuestion(ctx context.Context, questionID uint) ([]entity.Comment, error)

	// FindByID は指定されたIDに一致するコメントを取得します。
	// 存在しない場合、ErrCommentNotFoundを返します。
	FindByID(ctx context.Context, id uint) (*entity.Comment, error)

	// Update はコメントの変更を永続化します。
	Update(ctx context.Context, c *entity.Comment) error

	// Delete は指定されたIDのコメントを削除します。
	Delete(ctx context.Context, id uint) error
}

// NotificationCreator はコメント時の通知作成を抽象化します。
// notificationsフィーチャーのリポジトリが構造的に実装します。
type NotificationCreator interface {
	Create(ctx context.Context, n *notifentity.Notification) error
}

// CreateCommentInput はコメント作成の入力です。
type CreateCommentInput struct {
	Content    string
	QuestionID uint
}

// UpdateCommentInput はコメント更新の入力です。nilのフィールドは変更されません。
type UpdateCommentInput struct {
	Content  *string
	IsAnswer *bool
}

// commentUsecase はコメント管理のビジネスロジックを実装します。
type commentUsecase struct {
	comments      CommentRepository
	questions     QuestionRepository
	notifications NotificationCreator
}

// NewCommentUsecase はcommentUsecaseの新しいインスタンスを生成します。
func NewCommentUsecase(comments CommentRepository, questions QuestionRepository, notifications NotificationCreator) *commentUsecase {
	return &commentUsecase{comments: comments, questions: questions, notifications: notifications}
}

// Create は新しいコメントを作成します。著者は常に呼び出したユーザーです。
// 他人の質問へのコメントは質問の著者に通知を作成します。
func (u *commentUsecase) Create(ctx context.Context, author *usersentity.User, in CreateCommentInput) (*entity.Comment, error) {
	question, err := u.questions.FindByID(ctx, in.QuestionID)
	if err != nil {
		return nil, err
	}

	comment := &entity.Comment{
		Content:    in.Content,
		AuthorID:   author.ID,
		QuestionID: question.ID,
	}
	if err := u.comments.Create(ctx, comment); err != nil {
		return nil, err
	}

	if author.ID != question.AuthorID {
		notification := &notifentity.Notification{
			Title:      fmt.Sprintf("User %s commented your question: %q.", author.Username, question.Title),
			UserID:     question.AuthorID,
			QuestionID: question.ID,
		}
		if err := u.notifications.Create(ctx, notification); err != nil {
			return nil, err
		}
	}

	return comment, nil
}

// List はすべてのコメントを返します。管理者のみ可能です。
func (u *commentUsecase) List(ctx context.Context, actor policy.Actor, skip, limit int) ([]entity.Comment, error) {
	if !policy.AdminOnly(actor) {
		return nil, ErrNotAdmin
	}
	return u.comments.List(ctx, skip, limit)
}

// ListByQuestion は指定された質問のコメントを古い順に返します。
func (u *commentUsecase) ListByQuestion(ctx context.Context, questionID uint) ([]entity.Comment, error) {
	return u.comments.ListByQuestion(ctx, questionID)
}

// Update はコメントを更新します。許可される組み合わせは決定表の通りです:
// 管理者は全フィールド、コメントの著者はcontentのみ、
// 質問の著者はis_answerのみ。それ以外はErrCommentEditDeniedになります。
func (u *commentUsecase) Update(ctx context.Context, actor policy.Actor, commentID uint, in UpdateCommentInput) (*entity.Comment, error) {
	comment, err := u.comments.FindByID(ctx, commentID)
	if err != nil {
		return nil, err
	}
	question, err := u.questions.FindByID(ctx, comment.QuestionID)
	if err != nil {
		return nil, err
	}

	ownership := policy.CommentOwnership{
		AuthorID:         comment.AuthorID,
		QuestionAuthorID: question.AuthorID,
	}
	patch := policy.CommentPatch{
		Content:  in.Content != nil,
		IsAnswer: in.IsAnswer != nil,
	}
	if !policy.CommentEditAllowed(actor, ownership, patch) {
		return nil, ErrCommentEditDenied
	}

	if in.Content != nil {
		comment.Content = *in.Content
	}
	if in.IsAnswer != nil {
		comment.IsAnswer = *in.IsAnswer
	}
	if err := u.comments.Update(ctx, comment); err != nil {
		return nil, err
	}
	return comment, nil
}

// Delete はコメントを削除します。管理者またはコメントの著者のみ可能です。
func (u *commentUsecase) Delete(ctx context.Context, actor policy.Actor, commentID uint) error {
	comment, err := u.comments.FindByID(ctx, commentID)
	if err != nil {
		return err
	}

	if !policy.AdminOrOwner(actor, comment.AuthorID) {
		return ErrNotCommentAuthor
	}
	return u.comments.Delete(ctx, commentID)
}
