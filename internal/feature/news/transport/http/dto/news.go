// Package dto はnewsフィーチャーのHTTPトランスポート層のデータ転送オブジェクトを定義します。
package dto

import (
	"time"

	"forum_backend/internal/feature/news/domain/entity"
	usersentity "forum_backend/internal/feature/users/domain/entity"
)

// CreateArticleReq は記事作成のリクエストボディです。
type CreateArticleReq struct {
	Title   string `json:"title" binding:"required"`
	Content string `json:"content" binding:"required"`
}

// UpdateArticleReq は記事更新のリクエストボディです。省略されたフィールドは変更されません。
type UpdateArticleReq struct {
	Title   *string `json:"title"`
	Content *string `json:"content"`
}

// ArticleResponse は記事のレスポンスボディです。評価はユーザー名の一覧で返します。
type ArticleResponse struct {
	ID          uint      `json:"id"`
	Title       string    `json:"title"`
	Content     string    `json:"content"`
	Likes       []string  `json:"likes"`
	Dislikes    []string  `json:"dislikes"`
	DateCreated time.Time `json:"date_created"`
}

func usernames(users []usersentity.User) []string {
	out := make([]string, len(users))
	for i := range users {
		out[i] = users[i].Username
	}
	return out
}

// NewArticleResponse はエンティティからArticleResponseを組み立てます。
func NewArticleResponse(a *entity.Article) ArticleResponse {
	return ArticleResponse{
		ID:          a.ID,
		Title:       a.Title,
		Content:     a.Content,
		Likes:       usernames(a.Likes),
		Dislikes:    usernames(a.Dislikes),
		DateCreated: a.CreatedAt,
	}
}

// NewArticleResponses はエンティティのスライスを変換します。
func NewArticleResponses(articles []entity.Article) []ArticleResponse {
	out := make([]ArticleResponse, len(articles))
	for i := range articles {
		out[i] = NewArticleResponse(&articles[i])
	}
	return out
}
