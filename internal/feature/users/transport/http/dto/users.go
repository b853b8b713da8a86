// Package dto はusersフィーチャーのHTTPトランスポート層のデータ転送オブジェクトを定義します。
package dto

import (
	"time"

	"forum_backend/internal/feature/users/domain/entity"
)

// RoleReq は/rolesエンドポイントのリクエストボディを表します。
type RoleReq struct {
	Title string `json:"title" binding:"required"`
}

// RoleResponse はロールのレスポンスボディです。
type RoleResponse struct {
	ID    uint   `json:"id"`
	Title string `json:"title"`
}

// NewRoleResponse はエンティティからRoleResponseを組み立てます。
func NewRoleResponse(role *entity.Role) RoleResponse {
	return RoleResponse{ID: role.ID, Title: role.Title}
}

// CreateUserReq は/usersエンドポイントのリクエストボディを表します。
// 必須フィールドとメール形式のバリデーションを含みます。
type CreateUserReq struct {
	Username string `json:"username" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
	RoleID   uint   `json:"role_id" binding:"required"`
}

// UpdateUserReq はユーザー更新のリクエストボディです。省略されたフィールドは変更されません。
type UpdateUserReq struct {
	Email        *string `json:"email" binding:"omitempty,email"`
	Password     *string `json:"password" binding:"omitempty,min=8"`
	ProfileImage *string `json:"profile_image"`
}

// UserResponse はユーザーのレスポンスボディです。パスワードハッシュは含みません。
type UserResponse struct {
	ID           uint      `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	Role         string    `json:"role"`
	ProfileImage string    `json:"profile_image"`
	DateCreated  time.Time `json:"date_created"`
}

// NewUserResponse はエンティティからUserResponseを組み立てます。
func NewUserResponse(u *entity.User) UserResponse {
	return UserResponse{
		ID:           u.ID,
		Username:     u.Username,
		Email:        u.Email,
		Role:         u.Role.Title,
		ProfileImage: u.ProfileImage,
		DateCreated:  u.CreatedAt,
	}
}

// NewUserResponses はエンティティのスライスを変換します。
func NewUserResponses(users []entity.User) []UserResponse {
	out := make([]UserResponse, len(users))
	for i := range users {
		out[i] = NewUserResponse(&users[i])
	}
	return out
}
