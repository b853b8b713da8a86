package adapters

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"forum_backend/internal/feature/forum/domain/entity"
	"forum_backend/internal/feature/forum/usecase"
)

// commentPostgres はCommentRepositoryインターフェースのPostgreSQL実装です。
type commentPostgres struct {
	db *gorm.DB
}

// commentPostgresがCommentRepositoryを実装していることをコンパイル時に検証します。
var _ usecase.CommentRepository = (*commentPostgres)(nil)

// NewCommentPostgres は指定されたgorm.DB接続でcommentPostgresの新しいインスタンスを生成します。
func NewCommentPostgres(db *gorm.DB) *commentPostgres {
	return &commentPostgres{db: db}
}

// Create はコメントをデータベースに追加します。
func (r *commentPostgres) Create(ctx context.Context, c *entity.Comment) error {
	return r.db.WithContext(ctx).Create(c).Error
}

// List はコメントをID順に取得します。
func (r *commentPostgres) List(ctx context.Context, skip, limit int) ([]entity.Comment, error) {
	var comments []entity.Comment
	err := r.db.WithContext(ctx).
		Order("id asc").
		Offset(skip).
		Limit(limit).
		Find(&comments).Error
	if err != nil {
		return nil, err
	}
	return comments, nil
}

// ListByQuestion は指定された質問のコメントを古い順に取得します。
func (r *commentPostgres) ListByQuestion(ctx context.Context, questionID uint) ([]entity.Comment, error) {
	var comments []entity.Comment
	err := r.db.WithContext(ctx).
		Where("question_id = ?", questionID).
		Order("created_at asc").
		Find(&comments).Error
	if err != nil {
		return nil, err
	}
	return comments, nil
}

// FindByID はIDでコメントを取得します。
// 存在しない場合、usecase.ErrCommentNotFoundを返します。
func (r *commentPostgres) FindByID(ctx context.Context, id uint) (*entity.Comment, error) {
	var c entity.Comment
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&c).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, usecase.ErrCommentNotFound
		}
		return nil, err
	}
	return &c, nil
}

// Update はコメントの変更を保存します。
func (r *commentPostgres) Update(ctx context.Context, c *entity.Comment) error {
	// IsAnswerをfalseへ戻す更新も反映されるよう、対象カラムを明示します。
	return r.db.WithContext(ctx).
		Model(c).
		Select("content", "is_answer").
		Updates(c).Error
}

// Delete はIDでコメントを削除します。
func (r *commentPostgres) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&entity.Comment{}, id).Error
}
