// Package adapters はnewsフィーチャーのリポジトリ実装を提供します。
package adapters

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"forum_backend/internal/feature/news/domain/entity"
	"forum_backend/internal/feature/news/usecase"
	usersentity "forum_backend/internal/feature/users/domain/entity"
)

// articlePostgres はArticleRepositoryインターフェースのPostgreSQL実装です。
// GORMを使用してデータベース操作を行います。
type articlePostgres struct {
	db *gorm.DB
}

// articlePostgresがArticleRepositoryを実装していることをコンパイル時に検証します。
var _ usecase.ArticleRepository = (*articlePostgres)(nil)

// NewArticlePostgres は指定されたgorm.DB接続でarticlePostgresの新しいインスタンスを生成します。
func NewArticlePostgres(db *gorm.DB) *articlePostgres {
	return &articlePostgres{db: db}
}

// Create は記事をデータベースに追加します。
func (r *articlePostgres) Create(ctx context.Context, a *entity.Article) error {
	return r.db.WithContext(ctx).Create(a).Error
}

// List は記事を評価付きで新しい順に取得します。
func (r *articlePostgres) List(ctx context.Context, skip, limit int) ([]entity.Article, error) {
	var articles []entity.Article
	err := r.db.WithContext(ctx).
		Preload("Likes").
		Preload("Dislikes").
		Order("created_at desc").
		Offset(skip).
		Limit(limit).
		Find(&articles).Error
	if err != nil {
		return nil, err
	}
	return articles, nil
}

// FindByID はIDで記事を評価付きで取得します。
// 存在しない場合、usecase.ErrArticleNotFoundを返します。
func (r *articlePostgres) FindByID(ctx context.Context, id uint) (*entity.Article, error) {
	var a entity.Article
	err := r.db.WithContext(ctx).
		Preload("Likes").
		Preload("Dislikes").
		Where("id = ?", id).
		First(&a).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, usecase.ErrArticleNotFound
		}
		return nil, err
	}
	return &a, nil
}

// Update は記事の変更を保存します。評価の関連は変更しません。
func (r *articlePostgres) Update(ctx context.Context, a *entity.Article) error {
	return r.db.WithContext(ctx).
		Model(a).
		Select("title", "content").
		Updates(a).Error
}

// association は評価種別をGORMの関連名に変換します。
func association(rating usecase.RatingType) string {
	if rating == usecase.RatingDislikes {
		return "Dislikes"
	}
	return "Likes"
}

// AddRating は指定されたユーザーを評価セットに追加します。
func (r *articlePostgres) AddRating(ctx context.Context, articleID uint, rating usecase.RatingType, userID uint) error {
	return r.db.WithContext(ctx).
		Model(&entity.Article{ID: articleID}).
		Association(association(rating)).
		Append(&usersentity.User{ID: userID})
}

// RemoveRating は指定されたユーザーを評価セットから外します。
func (r *articlePostgres) RemoveRating(ctx context.Context, articleID uint, rating usecase.RatingType, userID uint) error {
	return r.db.WithContext(ctx).
		Model(&entity.Article{ID: articleID}).
		Association(association(rating)).
		Delete(&usersentity.User{ID: userID})
}

// Delete はIDで記事を削除します。評価の関連も削除します。
func (r *articlePostgres) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).
		Select("Likes", "Dislikes").
		Delete(&entity.Article{ID: id}).Error
}
