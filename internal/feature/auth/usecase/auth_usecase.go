// Package usecase はauthフィーチャーのビジネスロジックを実装します。
package usecase

import (
	"context"
	"time"

	usersentity "forum_backend/internal/feature/users/domain/entity"
	"forum_backend/internal/platform/password"
	"forum_backend/internal/platform/token"
	"forum_backend/internal/shared/lookup"
)

// UserRepository はユーザーの参照を抽象化します。
// Goの慣例に従い、インターフェースはプロバイダー（usersのadapters）ではなくコンシューマー（usecase）が定義します。
type UserRepository interface {
	// FindByUsername は指定されたユーザー名に一致するユーザーを取得します。
	FindByUsername(ctx context.Context, username string) (*usersentity.User, error)

	// FindByEmail は指定されたメールアドレスに一致するユーザーを取得します。
	FindByEmail(ctx context.Context, email string) (*usersentity.User, error)
}

// TokenService は署名付きトークンの発行と検証のインターフェースを定義します。
type TokenService interface {
	// IssueWithTTL は指定された有効期限の署名済みトークンを生成します。
	IssueWithTTL(subject string, ttl time.Duration) (string, error)

	// Parse はトークンを検証し、埋め込まれたサブジェクトを返します。
	Parse(tokenStr string) (string, error)
}

// authUsecase は認証ビジネスロジックを実装します。
type authUsecase struct {
	users  UserRepository
	tokens TokenService
}

// NewAuthUsecase はauthUsecaseの新しいインスタンスを生成します。
func NewAuthUsecase(users UserRepository, tokens TokenService) *authUsecase {
	return &authUsecase{users: users, tokens: tokens}
}

// findBySubject はサブジェクト文字列でユーザーを検索します。
// メールアドレスの形の文字列はメールで、それ以外はユーザー名で検索します。
// この振り分けはログインの利便性のためであり、セキュリティ境界ではありません。
func (u *authUsecase) findBySubject(ctx context.Context, subject string) (*usersentity.User, error) {
	if lookup.IsEmail(subject) {
		return u.users.FindByEmail(ctx, subject)
	}
	return u.users.FindByUsername(ctx, subject)
}

// Login はユーザーを認証し、成功時に60分有効のトークンを返します。
// タイミング攻撃を防止するため、ユーザーが存在しない場合でもbcrypt比較を実行します。
func (u *authUsecase) Login(ctx context.Context, username, plain string) (string, error) {
	user, err := u.findBySubject(ctx, username)

	// ユーザー未検出時もbcrypt比較が常に実行されることを保証するダミーハッシュ
	hash := password.DummyHash
	if err == nil {
		hash = user.Password
	}
	ok := password.Verify(plain, hash)

	// ユーザー未検出またはパスワード不一致の場合、汎用エラーを返す
	if err != nil || !ok {
		return "", ErrInvalidCredentials
	}

	return u.tokens.IssueWithTTL(user.Username, token.LoginTTL)
}

// ResolveToken はベアラートークンを検証し、対応するユーザーを返します。
// 署名・有効期限・サブジェクトのどれが不正でも同一のErrInvalidTokenを返します。
func (u *authUsecase) ResolveToken(ctx context.Context, tokenStr string) (*usersentity.User, error) {
	subject, err := u.tokens.Parse(tokenStr)
	if err != nil {
		return nil, ErrInvalidToken
	}

	user, err := u.findBySubject(ctx, subject)
	if err != nil {
		return nil, ErrInvalidToken
	}
	return user, nil
}
