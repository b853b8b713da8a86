// Package entity defines the domain entities for the notifications feature.
package entity

// Notification tells a user something happened on one of their
// questions. UserID is the addressee and the owner id for authorization
// decisions.
type Notification struct {
	// ID is the unique identifier for the notification.
	ID uint `gorm:"primaryKey"`

	// Title is the human-readable notification text.
	Title string `gorm:"size:255;not null"`

	// UserID is the id of the user the notification is addressed to.
	UserID uint `gorm:"index"`

	// QuestionID references the question the notification is about.
	QuestionID uint `gorm:"index"`
}
