// Package usecase implements the business logic for the notifications feature.
package usecase

import "errors"

var (
	// ErrNotificationNotFound is returned when a notification cannot be found by id.
	ErrNotificationNotFound = errors.New("notification with this id does not exist")

	// ErrUserMissing is returned when a notification addresses a user that does not exist.
	ErrUserMissing = errors.New("user with this id does not exist")

	// ErrQuestionMissing is returned when a notification references a question that does not exist.
	ErrQuestionMissing = errors.New("question with this id does not exist")

	// ErrNotAdmin is returned when an admin-only operation is attempted by a regular user.
	ErrNotAdmin = errors.New("you are not an admin")

	// ErrNotAddressee is returned when a user touches a notification addressed to someone else.
	ErrNotAddressee = errors.New("you are not that user")
)
