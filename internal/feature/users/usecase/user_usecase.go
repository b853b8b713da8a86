package usecase

import (
	"context"
	"errors"

	"forum_backend/internal/feature/users/domain/entity"
	"forum_backend/internal/platform/password"
	"forum_backend/internal/shared/lookup"
	"forum_backend/internal/shared/policy"
)

// UserRepository はユーザーエンティティの永続化層を抽象化します。
// Goの慣例に従い、インターフェースはプロバイダー（adapters）ではなくコンシューマー（usecase）が定義します。
type UserRepository interface {
	// Create は新しいユーザーをストレージに永続化します。
	Create(ctx context.Context, user *entity.User) error

	// List はユーザーを skip/limit の範囲で取得します。ロールを含みます。
	List(ctx context.Context, skip, limit int) ([]entity.User, error)

	// FindByID は指定されたIDに一致するユーザーを取得します。
	// 存在しない場合、ErrUserNotFoundを返します。
	FindByID(ctx context.Context, id uint) (*entity.User, error)

	// FindByUsername は指定されたユーザー名に一致するユーザーを取得します。
	FindByUsername(ctx context.Context, username string) (*entity.User, error)

	// FindByEmail は指定されたメールアドレスに一致するユーザーを取得します。
	FindByEmail(ctx context.Context, email string) (*entity.User, error)

	// ExistsByUsernameOrEmail はユーザー名またはメールアドレスが使用済みかを返します。
	ExistsByUsernameOrEmail(ctx context.Context, username, email string) (bool, error)

	// Update はユーザーの変更を永続化します。
	Update(ctx context.Context, user *entity.User) error

	// Delete は指定されたIDのユーザーを削除します。
	Delete(ctx context.Context, id uint) error
}

// CreateUserInput はユーザー登録の入力です。
type CreateUserInput struct {
	Username string
	Email    string
	Password string
	RoleID   uint
}

// UpdateUserInput はユーザー更新の入力です。nilのフィールドは変更されません。
type UpdateUserInput struct {
	Email        *string
	Password     *string
	ProfileImage *string
}

// userUsecase はユーザー管理のビジネスロジックを実装します。
type userUsecase struct {
	users UserRepository
	roles RoleRepository
}

// NewUserUsecase はuserUsecaseの新しいインスタンスを生成します。
func NewUserUsecase(users UserRepository, roles RoleRepository) *userUsecase {
	return &userUsecase{users: users, roles: roles}
}

// Create はハッシュ化されたパスワードで新規ユーザーを登録します。
// ユーザー名・メールアドレスの重複はErrUserAlreadyExists、
// 存在しないロールはErrRoleNotFoundになります。
func (u *userUsecase) Create(ctx context.Context, in CreateUserInput) (*entity.User, error) {
	taken, err := u.users.ExistsByUsernameOrEmail(ctx, in.Username, in.Email)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, ErrUserAlreadyExists
	}

	role, err := u.roles.FindByID(ctx, in.RoleID)
	if err != nil {
		return nil, err
	}

	hashed, err := password.Hash(in.Password)
	if err != nil {
		return nil, err
	}

	user := &entity.User{
		Username:     in.Username,
		Email:        in.Email,
		Password:     hashed,
		ProfileImage: entity.DefaultProfileImage,
		RoleID:       role.ID,
		Role:         *role,
	}
	if err := u.users.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// List はユーザーの一覧を返します。
func (u *userUsecase) List(ctx context.Context, skip, limit int) ([]entity.User, error) {
	return u.users.List(ctx, skip, limit)
}

// Get はID・ユーザー名・メールアドレスのいずれかでユーザーを取得します。
func (u *userUsecase) Get(ctx context.Context, key lookup.Key) (*entity.User, error) {
	switch key.Kind {
	case lookup.KindID:
		return u.users.FindByID(ctx, key.ID)
	case lookup.KindEmail:
		return u.users.FindByEmail(ctx, key.Value)
	case lookup.KindUsername:
		return u.users.FindByUsername(ctx, key.Value)
	default:
		return nil, lookup.ErrBadKey
	}
}

// Update はユーザー自身または管理者によるプロフィール更新を行います。
// 他のユーザーが使用中のメールアドレスへの変更はErrEmailTakenになります。
func (u *userUsecase) Update(ctx context.Context, actor policy.Actor, userID uint, in UpdateUserInput) (*entity.User, error) {
	if !policy.AdminOrOwner(actor, userID) {
		return nil, ErrNotSelf
	}

	user, err := u.users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if in.Email != nil {
		if other, err := u.users.FindByEmail(ctx, *in.Email); err == nil && other.ID != userID {
			return nil, ErrEmailTaken
		} else if err != nil && !errors.Is(err, ErrUserNotFound) {
			return nil, err
		}
		user.Email = *in.Email
	}
	if in.Password != nil {
		hashed, err := password.Hash(*in.Password)
		if err != nil {
			return nil, err
		}
		user.Password = hashed
	}
	if in.ProfileImage != nil {
		user.ProfileImage = *in.ProfileImage
	}

	if err := u.users.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// Delete はユーザー自身または管理者によるユーザー削除を行います。
func (u *userUsecase) Delete(ctx context.Context, actor policy.Actor, userID uint) error {
	if !policy.AdminOrOwner(actor, userID) {
		return ErrNotSelf
	}

	if _, err := u.users.FindByID(ctx, userID); err != nil {
		return err
	}
	return u.users.Delete(ctx, userID)
}
