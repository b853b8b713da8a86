// Package dto はforumフィーチャーのHTTPトランスポート層のデータ転送オブジェクトを定義します。
package dto

import (
	"time"

	"forum_backend/internal/feature/forum/domain/entity"
)

// TagReq は/tagsエンドポイントのリクエストボディを表します。
type TagReq struct {
	Title string `json:"title" binding:"required"`
}

// TagResponse はタグのレスポンスボディです。
type TagResponse struct {
	ID    uint   `json:"id"`
	Title string `json:"title"`
}

// NewTagResponse はエンティティからTagResponseを組み立てます。
func NewTagResponse(tag *entity.Tag) TagResponse {
	return TagResponse{ID: tag.ID, Title: tag.Title}
}

// CreateQuestionReq は質問作成のリクエストボディです。
// author_idを指定できるのは管理者のみです。
type CreateQuestionReq struct {
	Title    string   `json:"title" binding:"required"`
	Content  string   `json:"content" binding:"required"`
	Tags     []string `json:"tags"`
	AuthorID *uint    `json:"author_id"`
}

// UpdateQuestionReq は質問更新のリクエストボディです。省略されたフィールドは変更されません。
type UpdateQuestionReq struct {
	Title   *string  `json:"title"`
	Content *string  `json:"content"`
	Views   *int     `json:"views"`
	Tags    []string `json:"tags"`
}

// ViewsReq は閲覧数更新のリクエストボディです。
type ViewsReq struct {
	Views *int `json:"views" binding:"required"`
}

// QuestionResponse は質問のレスポンスボディです。タグはタイトルの一覧で返します。
type QuestionResponse struct {
	ID          uint      `json:"id"`
	Title       string    `json:"title"`
	Content     string    `json:"content"`
	Views       int       `json:"views"`
	AuthorID    uint      `json:"author_id"`
	Tags        []string  `json:"tags"`
	DateCreated time.Time `json:"date_created"`
}

// NewQuestionResponse はエンティティからQuestionResponseを組み立てます。
func NewQuestionResponse(q *entity.Question) QuestionResponse {
	tags := make([]string, len(q.Tags))
	for i := range q.Tags {
		tags[i] = q.Tags[i].Title
	}
	return QuestionResponse{
		ID:          q.ID,
		Title:       q.Title,
		Content:     q.Content,
		Views:       q.Views,
		AuthorID:    q.AuthorID,
		Tags:        tags,
		DateCreated: q.CreatedAt,
	}
}

// NewQuestionResponses はエンティティのスライスを変換します。
func NewQuestionResponses(questions []entity.Question) []QuestionResponse {
	out := make([]QuestionResponse, len(questions))
	for i := range questions {
		out[i] = NewQuestionResponse(&questions[i])
	}
	return out
}

// CreateCommentReq はコメント作成のリクエストボディです。
type CreateCommentReq struct {
	Content    string `json:"content" binding:"required"`
	QuestionID uint   `json:"question_id" binding:"required"`
}

// UpdateCommentReq はコメント更新のリクエストボディです。省略されたフィールドは変更されません。
type UpdateCommentReq struct {
	Content  *string `json:"content"`
	IsAnswer *bool   `json:"is_answer"`
}

// CommentResponse はコメントのレスポンスボディです。
type CommentResponse struct {
	ID          uint      `json:"id"`
	Content     string    `json:"content"`
	IsAnswer    bool      `json:"is_answer"`
	AuthorID    uint      `json:"author_id"`
	QuestionID  uint      `json:"question_id"`
	DateCreated time.Time `json:"date_created"`
}

// NewCommentResponse はエンティティからCommentResponseを組み立てます。
func NewCommentResponse(comment *entity.Comment) CommentResponse {
	return CommentResponse{
		ID:          comment.ID,
		Content:     comment.Content,
		IsAnswer:    comment.IsAnswer,
		AuthorID:    comment.AuthorID,
		QuestionID:  comment.QuestionID,
		DateCreated: comment.CreatedAt,
	}
}

// NewCommentResponses はエンティティのスライスを変換します。
func NewCommentResponses(comments []entity.Comment) []CommentResponse {
	out := make([]CommentResponse, len(comments))
	for i := range comments {
		out[i] = NewCommentResponse(&comments[i])
	}
	return out
}
