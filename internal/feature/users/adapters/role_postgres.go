// Package adapters はusersフィーチャーのリポジトリ実装を提供します。
package adapters

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	"forum_backend/internal/feature/users/domain/entity"
	"forum_backend/internal/feature/users/usecase"
)

// pgUniqueViolation はPostgreSQLの一意制約違反のSQLSTATEです。
const pgUniqueViolation = "23505"

// isUniqueViolation は一意制約違反のエラーかを判定します。
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation
}

// rolePostgres はRoleRepositoryインターフェースのPostgreSQL実装です。
type rolePostgres struct {
	db *gorm.DB
}

// rolePostgresがRoleRepositoryを実装していることをコンパイル時に検証します。
var _ usecase.RoleRepository = (*rolePostgres)(nil)

// NewRolePostgres は指定されたgorm.DB接続でrolePostgresの新しいインスタンスを生成します。
func NewRolePostgres(db *gorm.DB) *rolePostgres {
	return &rolePostgres{db: db}
}

// Create はロールをデータベースに追加します。
// タイトルが重複する場合、usecase.ErrRoleTitleTakenを返します。
func (r *rolePostgres) Create(ctx context.Context, role *entity.Role) error {
	if err := r.db.WithContext(ctx).Create(role).Error; err != nil {
		if isUniqueViolation(err) {
			return usecase.ErrRoleTitleTaken
		}
		return err
	}
	return nil
}

// List はロールをID順に取得します。
func (r *rolePostgres) List(ctx context.Context, skip, limit int) ([]entity.Role, error) {
	var roles []entity.Role
	err := r.db.WithContext(ctx).
		Order("id asc").
		Offset(skip).
		Limit(limit).
		Find(&roles).Error
	if err != nil {
		return nil, err
	}
	return roles, nil
}

// FindByID はIDでロールを取得します。
// 存在しない場合、usecase.ErrRoleNotFoundを返します。
func (r *rolePostgres) FindByID(ctx context.Context, id uint) (*entity.Role, error) {
	var role entity.Role
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&role).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, usecase.ErrRoleNotFound
		}
		return nil, err
	}
	return &role, nil
}

// FindByTitle はタイトルでロールを取得します。
// 存在しない場合、usecase.ErrRoleNotFoundを返します。
func (r *rolePostgres) FindByTitle(ctx context.Context, title string) (*entity.Role, error) {
	var role entity.Role
	if err := r.db.WithContext(ctx).Where("title = ?", title).First(&role).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, usecase.ErrRoleNotFound
		}
		return nil, err
	}
	return &role, nil
}

// Update はロールの変更を保存します。
func (r *rolePostgres) Update(ctx context.Context, role *entity.Role) error {
	if err := r.db.WithContext(ctx).Save(role).Error; err != nil {
		if isUniqueViolation(err) {
			return usecase.ErrRoleTitleTaken
		}
		return err
	}
	return nil
}

// Delete はIDでロールを削除します。
func (r *rolePostgres) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&entity.Role{}, id).Error
}
