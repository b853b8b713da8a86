// Package dto はauthフィーチャーのHTTPトランスポート層のデータ転送オブジェクトを定義します。
package dto

// LoginForm は/api/tokenエンドポイントのフォームボディを表します。
// OAuth2のパスワードフローに合わせ、usernameフィールドには
// ユーザー名またはメールアドレスのどちらも指定できます。
type LoginForm struct {
	Username string `form:"username" binding:"required"`
	Password string `form:"password" binding:"required"`
}

// TokenResponse はトークン発行成功時のレスポンスボディです。
type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}
