// Package adapters はforumフィーチャーのリポジトリ実装を提供します。
package adapters

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	"forum_backend/internal/feature/forum/domain/entity"
	"forum_backend/internal/feature/forum/usecase"
)

// pgUniqueViolation はPostgreSQLの一意制約違反のSQLSTATEです。
const pgUniqueViolation = "23505"

// isUniqueViolation は一意制約違反のエラーかを判定します。
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation
}

// tagPostgres はTagRepositoryインターフェースのPostgreSQL実装です。
type tagPostgres struct {
	db *gorm.DB
}

// tagPostgresがTagRepositoryを実装していることをコンパイル時に検証します。
var _ usecase.TagRepository = (*tagPostgres)(nil)

// NewTagPostgres は指定されたgorm.DB接続でtagPostgresの新しいインスタンスを生成します。
func NewTagPostgres(db *gorm.DB) *tagPostgres {
	return &tagPostgres{db: db}
}

// Create はタグをデータベースに追加します。
// タイトルが重複する場合、usecase.ErrTagTitleTakenを返します。
func (r *tagPostgres) Create(ctx context.Context, tag *entity.Tag) error {
	if err := r.db.WithContext(ctx).Create(tag).Error; err != nil {
		if isUniqueViolation(err) {
			return usecase.ErrTagTitleTaken
		}
		return err
	}
	return nil
}

// List はタグをID順に取得します。
func (r *tagPostgres) List(ctx context.Context, skip, limit int) ([]entity.Tag, error) {
	var tags []entity.Tag
	err := r.db.WithContext(ctx).
		Order("id asc").
		Offset(skip).
		Limit(limit).
		Find(&tags).Error
	if err != nil {
		return nil, err
	}
	return tags, nil
}

// FindByID はIDでタグを取得します。
// 存在しない場合、usecase.ErrTagNotFoundを返します。
func (r *tagPostgres) FindByID(ctx context.Context, id uint) (*entity.Tag, error) {
	var tag entity.Tag
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&tag).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, usecase.ErrTagNotFound
		}
		return nil, err
	}
	return &tag, nil
}

// FindByTitle はタイトルでタグを取得します。
func (r *tagPostgres) FindByTitle(ctx context.Context, title string) (*entity.Tag, error) {
	var tag entity.Tag
	if err := r.db.WithContext(ctx).Where("title = ?", title).First(&tag).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, usecase.ErrTagNotFound
		}
		return nil, err
	}
	return &tag, nil
}

// Update はタグの変更を保存します。
func (r *tagPostgres) Update(ctx context.Context, tag *entity.Tag) error {
	if err := r.db.WithContext(ctx).Save(tag).Error; err != nil {
		if isUniqueViolation(err) {
			return usecase.ErrTagTitleTaken
		}
		return err
	}
	return nil
}

// Delete はIDでタグを削除します。
func (r *tagPostgres) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&entity.Tag{}, id).Error
}
