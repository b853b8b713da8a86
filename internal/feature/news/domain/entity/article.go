// Package entity defines the domain entities for the news feature.
package entity

import (
	"time"

	usersentity "forum_backend/internal/feature/users/domain/entity"
)

// Article is an admin-authored news post that users can rate.
type Article struct {
	// ID is the unique identifier for the article.
	ID uint `gorm:"primaryKey"`

	// Title is the article's headline.
	Title string `gorm:"size:255;not null"`

	// Content is the article body.
	Content string `gorm:"not null"`

	// Likes and Dislikes hold the users who rated the article. A user
	// appears in at most one of the two sets.
	Likes    []usersentity.User `gorm:"many2many:article_likes;constraint:OnDelete:CASCADE"`
	Dislikes []usersentity.User `gorm:"many2many:article_dislikes;constraint:OnDelete:CASCADE"`

	// CreatedAt is the timestamp when the article was published.
	CreatedAt time.Time
}
