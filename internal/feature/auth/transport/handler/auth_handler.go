// Package handler はauthフィーチャーのHTTPハンドラーを提供します。
package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"forum_backend/internal/feature/auth/transport/http/dto"
	"forum_backend/internal/shared/ratelimiter"
)

// AuthUsecase は認証操作のユースケースを定義します。
// Goの慣例に従い、インターフェースはプロバイダー（usecase）ではなくコンシューマー（handler）が定義します。
type AuthUsecase interface {
	// Login はユーザーを認証し、成功時にトークンを返します。
	Login(ctx context.Context, username, password string) (string, error)
}

// AuthHandler は認証操作のHTTPリクエストを処理します。
type AuthHandler struct {
	auth    AuthUsecase
	limiter ratelimiter.RateLimiterInterface
}

// NewAuthHandler はAuthHandlerの新しいインスタンスを生成します。
// limiterはトークン発行の頻度を制限します（総当たり攻撃の減速用）。
func NewAuthHandler(auth AuthUsecase, limiter ratelimiter.RateLimiterInterface) *AuthHandler {
	return &AuthHandler{auth: auth, limiter: limiter}
}

// Token はトークン発行APIエンドポイントを処理します。
// - フォームをLoginFormにバインド
// - バリデーションエラー時は400を返却
// - 認証失敗時はWWW-Authenticateヘッダー付きで401を返却
// - 成功時は{access_token, token_type:"bearer"}で200を返却
func (h *AuthHandler) Token(c *gin.Context) {
	var form dto.LoginForm
	if err := c.ShouldBind(&form); err != nil {
		slog.Warn("token request validation failed", "error", err, "remote_addr", c.ClientIP())
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	if h.limiter != nil {
		h.limiter.WaitIfNeeded()
	}

	tok, err := h.auth.Login(c.Request.Context(), form.Username, form.Password)
	if err != nil {
		// どの検証に失敗したかは公開しない
		slog.Warn("login failed", "username", form.Username, "remote_addr", c.ClientIP())
		c.Header("WWW-Authenticate", "Bearer")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "incorrect username or password"})
		return
	}

	slog.Info("user login successful", "username", form.Username, "remote_addr", c.ClientIP())
	c.JSON(http.StatusOK, dto.TokenResponse{AccessToken: tok, TokenType: "bearer"})
}
