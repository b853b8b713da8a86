package adapters

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"forum_backend/internal/feature/forum/domain/entity"
	"forum_backend/internal/feature/forum/usecase"
)

// questionPostgres はQuestionRepositoryインターフェースのPostgreSQL実装です。
// GORMを使用してデータベース操作を行います。
type questionPostgres struct {
	db *gorm.DB
}

// questionPostgresがQuestionRepositoryを実装していることをコンパイル時に検証します。
var _ usecase.QuestionRepository = (*questionPostgres)(nil)

// NewQuestionPostgres は指定されたgorm.DB接続でquestionPostgresの新しいインスタンスを生成します。
func NewQuestionPostgres(db *gorm.DB) *questionPostgres {
	return &questionPostgres{db: db}
}

// Create は質問をタグごとデータベースに追加します。
func (r *questionPostgres) Create(ctx context.Context, q *entity.Question) error {
	return r.db.WithContext(ctx).Create(q).Error
}

// orderClause はListOrderをSQLの並び順に変換します。
func orderClause(order usecase.ListOrder) string {
	switch order {
	case usecase.OrderDateAsc:
		return "created_at asc"
	case usecase.OrderDateDesc:
		return "created_at desc"
	case usecase.OrderViewsDesc:
		return "views desc"
	default:
		return "id asc"
	}
}

// List は指定された並び順・範囲で質問をタグ付きで取得します。
func (r *questionPostgres) List(ctx context.Context, opts usecase.ListOptions) ([]entity.Question, error) {
	var questions []entity.Question
	err := r.db.WithContext(ctx).
		Preload("Tags").
		Order(orderClause(opts.Order)).
		Offset(opts.Skip).
		Limit(opts.Limit).
		Find(&questions).Error
	if err != nil {
		return nil, err
	}
	return questions, nil
}

// ListAll はすべての質問をタグ付きで取得します。
func (r *questionPostgres) ListAll(ctx context.Context) ([]entity.Question, error) {
	var questions []entity.Question
	if err := r.db.WithContext(ctx).Preload("Tags").Find(&questions).Error; err != nil {
		return nil, err
	}
	return questions, nil
}

// ListByAuthor は指定された著者の質問をタグ付きで取得します。
func (r *questionPostgres) ListByAuthor(ctx context.Context, authorID uint) ([]entity.Question, error) {
	var questions []entity.Question
	err := r.db.WithContext(ctx).
		Preload("Tags").
		Where("author_id = ?", authorID).
		Find(&questions).Error
	if err != nil {
		return nil, err
	}
	return questions, nil
}

// FindByID はIDで質問をタグ付きで取得します。
// 存在しない場合、usecase.ErrQuestionNotFoundを返します。
func (r *questionPostgres) FindByID(ctx context.Context, id uint) (*entity.Question, error) {
	var q entity.Question
	if err := r.db.WithContext(ctx).Preload("Tags").Where("id = ?", id).First(&q).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, usecase.ErrQuestionNotFound
		}
		return nil, err
	}
	return &q, nil
}

// ExistsByID は指定されたIDの質問が存在するかを返します。
func (r *questionPostgres) ExistsByID(ctx context.Context, id uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&entity.Question{}).
		Where("id = ?", id).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// Update は質問の変更を保存します。タグの関連は変更しません。
func (r *questionPostgres) Update(ctx context.Context, q *entity.Question) error {
	// Save would also upsert the Tags association; update columns only.
	return r.db.WithContext(ctx).
		Model(q).
		Select("title", "content", "views").
		Updates(q).Error
}

// ReplaceTags は質問のタグ関連を置き換えます。
func (r *questionPostgres) ReplaceTags(ctx context.Context, q *entity.Question, tags []entity.Tag) error {
	if err := r.db.WithContext(ctx).Model(q).Association("Tags").Replace(tags); err != nil {
		return err
	}
	q.Tags = tags
	return nil
}

// Delete はIDで質問を削除します。
func (r *questionPostgres) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Select("Tags").Delete(&entity.Question{ID: id}).Error
}
