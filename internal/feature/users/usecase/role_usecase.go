package usecase

import (
	"context"
	"errors"

	"forum_backend/internal/feature/users/domain/entity"
	"forum_backend/internal/shared/lookup"
	"forum_backend/internal/shared/policy"
)

// RoleRepository はロールエンティティの永続化層を抽象化します。
// Goの慣例に従い、インターフェースはプロバイダー（adapters）ではなくコンシューマー（usecase）が定義します。
type RoleRepository interface {
	// Create は新しいロールをストレージに永続化します。
	Create(ctx context.Context, role *entity.Role) error

	// List はロールを挿入順に skip/limit の範囲で取得します。
	List(ctx context.Context, skip, limit int) ([]entity.Role, error)

	// FindByID は指定されたIDに一致するロールを取得します。
	// 存在しない場合、ErrRoleNotFoundを返します。
	FindByID(ctx context.Context, id uint) (*entity.Role, error)

	// FindByTitle は指定されたタイトルに一致するロールを取得します。
	// 存在しない場合、ErrRoleNotFoundを返します。
	FindByTitle(ctx context.Context, title string) (*entity.Role, error)

	// Update はロールの変更を永続化します。
	Update(ctx context.Context, role *entity.Role) error

	// Delete は指定されたIDのロールを削除します。
	Delete(ctx context.Context, id uint) error
}

// roleUsecase はロール管理のビジネスロジックを実装します。
// すべての操作は管理者専用です。
type roleUsecase struct {
	roles RoleRepository
}

// NewRoleUsecase はroleUsecaseの新しいインスタンスを生成します。
func NewRoleUsecase(roles RoleRepository) *roleUsecase {
	return &roleUsecase{roles: roles}
}

// resolve はタグ付きキーをロールに解決します。
func (u *roleUsecase) resolve(ctx context.Context, key lookup.Key) (*entity.Role, error) {
	switch key.Kind {
	case lookup.KindID:
		return u.roles.FindByID(ctx, key.ID)
	case lookup.KindTitle:
		return u.roles.FindByTitle(ctx, key.Value)
	default:
		return nil, lookup.ErrBadKey
	}
}

// Create は新しいロールを作成します。タイトルの重複はErrRoleTitleTakenになります。
func (u *roleUsecase) Create(ctx context.Context, actor policy.Actor, title string) (*entity.Role, error) {
	if !policy.AdminOnly(actor) {
		return nil, ErrNotAdmin
	}

	if _, err := u.roles.FindByTitle(ctx, title); err == nil {
		return nil, ErrRoleTitleTaken
	} else if !errors.Is(err, ErrRoleNotFound) {
		return nil, err
	}

	role := &entity.Role{Title: title}
	if err := u.roles.Create(ctx, role); err != nil {
		return nil, err
	}
	return role, nil
}

// List はロールの一覧を返します。
func (u *roleUsecase) List(ctx context.Context, actor policy.Actor, skip, limit int) ([]entity.Role, error) {
	if !policy.AdminOnly(actor) {
		return nil, ErrNotAdmin
	}
	return u.roles.List(ctx, skip, limit)
}

// Get はIDまたはタイトルでロールを取得します。
func (u *roleUsecase) Get(ctx context.Context, actor policy.Actor, key lookup.Key) (*entity.Role, error) {
	if !policy.AdminOnly(actor) {
		return nil, ErrNotAdmin
	}
	return u.resolve(ctx, key)
}

// Update はロールのタイトルを変更します。
// 別のロールが同じタイトルを持つ場合、ErrRoleTitleTakenを返します。
func (u *roleUsecase) Update(ctx context.Context, actor policy.Actor, key lookup.Key, title string) (*entity.Role, error) {
	if !policy.AdminOnly(actor) {
		return nil, ErrNotAdmin
	}

	role, err := u.resolve(ctx, key)
	if err != nil {
		return nil, err
	}

	if other, err := u.roles.FindByTitle(ctx, title); err == nil && other.ID != role.ID {
		return nil, ErrRoleTitleTaken
	} else if err != nil && !errors.Is(err, ErrRoleNotFound) {
		return nil, err
	}

	role.Title = title
	if err := u.roles.Update(ctx, role); err != nil {
		return nil, err
	}
	return role, nil
}

// Delete はIDまたはタイトルでロールを削除します。
func (u *roleUsecase) Delete(ctx context.Context, actor policy.Actor, key lookup.Key) error {
	if !policy.AdminOnly(actor) {
		return ErrNotAdmin
	}

	role, err := u.resolve(ctx, key)
	if err != nil {
		return err
	}
	return u.roles.Delete(ctx, role.ID)
}
