package usecase_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"forum_backend/internal/feature/auth/usecase"
	usersentity "forum_backend/internal/feature/users/domain/entity"
	"forum_backend/internal/platform/password"
	"forum_backend/internal/platform/token"
)

// ErrNotFound はモックと期待値の間で共有されるセンチネルエラーです。
var ErrNotFound = errors.New("user not found")

// mockUserRepository はUserRepositoryインターフェースのモック実装です。
type mockUserRepository struct {
	FindByUsernameFunc func(ctx context.Context, username string) (*usersentity.User, error)
	FindByEmailFunc    func(ctx context.Context, email string) (*usersentity.User, error)
	EmailCalls         int
	UsernameCalls      int
}

func (m *mockUserRepository) FindByUsername(ctx context.Context, username string) (*usersentity.User, error) {
	m.UsernameCalls++
	if m.FindByUsernameFunc != nil {
		return m.FindByUsernameFunc(ctx, username)
	}
	return nil, ErrNotFound
}

func (m *mockUserRepository) FindByEmail(ctx context.Context, email string) (*usersentity.User, error) {
	m.EmailCalls++
	if m.FindByEmailFunc != nil {
		return m.FindByEmailFunc(ctx, email)
	}
	return nil, ErrNotFound
}

// mockTokenService はTokenServiceインターフェースのモック実装です。
type mockTokenService struct {
	IssueWithTTLFunc func(subject string, ttl time.Duration) (string, error)
	ParseFunc        func(tokenStr string) (string, error)
	IssuedSubject    string
	IssuedTTL        time.Duration
}

func (m *mockTokenService) IssueWithTTL(subject string, ttl time.Duration) (string, error) {
	m.IssuedSubject = subject
	m.IssuedTTL = ttl
	if m.IssueWithTTLFunc != nil {
		return m.IssueWithTTLFunc(subject, ttl)
	}
	return "signed-token", nil
}

func (m *mockTokenService) Parse(tokenStr string) (string, error) {
	if m.ParseFunc != nil {
		return m.ParseFunc(tokenStr)
	}
	return "", errors.New("ParseFunc is not implemented")
}

func testUser() *usersentity.User {
	hash, _ := password.Hash("secret-password")
	return &usersentity.User{
		ID:       1,
		Username: "alice",
		Email:    "alice@example.com",
		Password: hash,
		RoleID:   2,
		Role:     usersentity.Role{ID: 2, Title: "User"},
	}
}

// TestAuthUsecase_Login_Success はユーザー名によるログイン成功時のトークン発行を検証します。
func TestAuthUsecase_Login_Success(t *testing.T) {
	user := testUser()
	users := &mockUserRepository{
		FindByUsernameFunc: func(ctx context.Context, username string) (*usersentity.User, error) {
			if username != "alice" {
				return nil, ErrNotFound
			}
			return user, nil
		},
	}
	tokens := &mockTokenService{}

	uc := usecase.NewAuthUsecase(users, tokens)
	tok, err := uc.Login(context.Background(), "alice", "secret-password")

	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if tok != "signed-token" {
		t.Errorf("expected issued token, got %q", tok)
	}
	if tokens.IssuedSubject != "alice" {
		t.Errorf("token subject should be the username, got %q", tokens.IssuedSubject)
	}
	if tokens.IssuedTTL != token.LoginTTL {
		t.Errorf("expected login TTL %v, got %v", token.LoginTTL, tokens.IssuedTTL)
	}
}

// TestAuthUsecase_Login_ByEmail はメールアドレスでのログイン時にメール検索が使われ、
// トークンのサブジェクトはユーザー名になることを検証します。
func TestAuthUsecase_Login_ByEmail(t *testing.T) {
	user := testUser()
	users := &mockUserRepository{
		FindByEmailFunc: func(ctx context.Context, email string) (*usersentity.User, error) {
			if email != "alice@example.com" {
				return nil, ErrNotFound
			}
			return user, nil
		},
	}
	tokens := &mockTokenService{}

	uc := usecase.NewAuthUsecase(users, tokens)
	_, err := uc.Login(context.Background(), "alice@example.com", "secret-password")

	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if users.EmailCalls != 1 {
		t.Errorf("expected lookup by email, got %d email calls", users.EmailCalls)
	}
	if users.UsernameCalls != 0 {
		t.Errorf("expected no username lookup, got %d calls", users.UsernameCalls)
	}
	if tokens.IssuedSubject != "alice" {
		t.Errorf("token subject should be the username even for email login, got %q", tokens.IssuedSubject)
	}
}

// TestAuthUsecase_Login_Failures は未知のユーザーと不正なパスワードの両方で
// 同一の汎用エラーが返ることを検証します。
func TestAuthUsecase_Login_Failures(t *testing.T) {
	user := testUser()

	testCases := []struct {
		name     string
		username string
		plain    string
	}{
		{name: "unknown user", username: "nobody", plain: "secret-password"},
		{name: "wrong password", username: "alice", plain: "wrong-password"},
		{name: "empty password", username: "alice", plain: ""},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			users := &mockUserRepository{
				FindByUsernameFunc: func(ctx context.Context, username string) (*usersentity.User, error) {
					if username == "alice" {
						return user, nil
					}
					return nil, ErrNotFound
				},
			}
			uc := usecase.NewAuthUsecase(users, &mockTokenService{})

			_, err := uc.Login(context.Background(), tc.username, tc.plain)

			if !errors.Is(err, usecase.ErrInvalidCredentials) {
				t.Errorf("expected ErrInvalidCredentials, got %v", err)
			}
		})
	}
}

// TestAuthUsecase_ResolveToken はトークン解決の成功と失敗の経路を検証します。
func TestAuthUsecase_ResolveToken(t *testing.T) {
	user := testUser()
	users := &mockUserRepository{
		FindByUsernameFunc: func(ctx context.Context, username string) (*usersentity.User, error) {
			if username == "alice" {
				return user, nil
			}
			return nil, ErrNotFound
		},
	}

	t.Run("valid token", func(t *testing.T) {
		tokens := &mockTokenService{
			ParseFunc: func(tokenStr string) (string, error) { return "alice", nil },
		}
		uc := usecase.NewAuthUsecase(users, tokens)

		resolved, err := uc.ResolveToken(context.Background(), "any-token")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if resolved.ID != user.ID {
			t.Errorf("expected user %d, got %d", user.ID, resolved.ID)
		}
	})

	t.Run("invalid token", func(t *testing.T) {
		tokens := &mockTokenService{
			ParseFunc: func(tokenStr string) (string, error) { return "", errors.New("bad signature") },
		}
		uc := usecase.NewAuthUsecase(users, tokens)

		_, err := uc.ResolveToken(context.Background(), "garbage")
		if !errors.Is(err, usecase.ErrInvalidToken) {
			t.Errorf("expected ErrInvalidToken, got %v", err)
		}
	})

	t.Run("token subject no longer exists", func(t *testing.T) {
		tokens := &mockTokenService{
			ParseFunc: func(tokenStr string) (string, error) { return "ghost", nil },
		}
		uc := usecase.NewAuthUsecase(users, tokens)

		_, err := uc.ResolveToken(context.Background(), "stale-token")
		if !errors.Is(err, usecase.ErrInvalidToken) {
			t.Errorf("expected ErrInvalidToken, got %v", err)
		}
	})
}
