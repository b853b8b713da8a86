// Package entity defines the domain entities for the forum feature.
package entity

import "time"

// Question is a forum thread opened by a user.
type Question struct {
	// ID is the unique identifier for the question.
	ID uint `gorm:"primaryKey"`

	// Title is the question's headline.
	Title string `gorm:"size:255;not null"`

	// Content is the question body.
	Content string `gorm:"not null"`

	// Views counts how many times the question was opened.
	Views int `gorm:"not null;default:0"`

	// AuthorID is the id of the user who asked the question. It is the
	// owner id for authorization decisions.
	AuthorID uint `gorm:"index"`

	// Tags classify the question. Tag rows are shared across questions.
	Tags []Tag `gorm:"many2many:tag_questions;constraint:OnDelete:CASCADE"`

	// CreatedAt is the timestamp when the question was asked.
	CreatedAt time.Time
}

// Tag is a moderated label attached to questions. Titles are unique and
// stored lowercase.
type Tag struct {
	// ID is the unique identifier for the tag.
	ID uint `gorm:"primaryKey"`

	// Title is the tag's unique name.
	Title string `gorm:"uniqueIndex;size:50;not null"`
}

// Comment is a reply to a question. A comment the question's author has
// accepted carries IsAnswer.
type Comment struct {
	// ID is the unique identifier for the comment.
	ID uint `gorm:"primaryKey"`

	// Content is the comment body.
	Content string `gorm:"not null"`

	// IsAnswer marks the comment as the accepted answer.
	IsAnswer bool `gorm:"not null;default:false"`

	// AuthorID is the id of the user who wrote the comment.
	AuthorID uint `gorm:"index"`

	// QuestionID references the question the comment replies to.
	QuestionID uint `gorm:"index"`

	// CreatedAt is the timestamp when the comment was posted.
	CreatedAt time.Time
}
