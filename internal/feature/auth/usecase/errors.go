// Package usecase implements the business logic for the auth feature.
package usecase

import "errors"

var (
	// ErrInvalidCredentials is the uniform failure for login attempts
	// with a wrong username/email or password.
	ErrInvalidCredentials = errors.New("incorrect username or password")

	// ErrInvalidToken is the uniform failure for token resolution. Bad
	// signature, expired token and unknown subject are deliberately not
	// distinguished, so a probing client learns nothing from the error.
	ErrInvalidToken = errors.New("could not validate credentials")
)
