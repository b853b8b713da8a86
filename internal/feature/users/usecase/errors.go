// Package usecase implements the business logic for the users feature.
package usecase

import "errors"

var (
	// ErrRoleNotFound is returned when a role cannot be found by id or title.
	ErrRoleNotFound = errors.New("role with this key does not exist")

	// ErrRoleTitleTaken is returned when creating or renaming a role to a title that already exists.
	ErrRoleTitleTaken = errors.New("role with this title already exists")

	// ErrUserNotFound is returned when a user cannot be found by id, username or email.
	ErrUserNotFound = errors.New("user with this key does not exist")

	// ErrUserAlreadyExists is returned when registering with a username or email that is taken.
	ErrUserAlreadyExists = errors.New("user with this username or email already exists")

	// ErrEmailTaken is returned when changing a user's email to one that belongs to someone else.
	ErrEmailTaken = errors.New("user with this email already exists")

	// ErrNotAdmin is returned when an admin-only operation is attempted by a regular user.
	ErrNotAdmin = errors.New("you are not an admin")

	// ErrNotSelf is returned when a self-service operation targets a different user.
	ErrNotSelf = errors.New("you are not that user")
)
