// Package entity defines the domain entities for the users feature.
package entity

import (
	"time"

	"forum_backend/internal/shared/policy"
)

// DefaultProfileImage is assigned to users who register without an
// avatar URL.
const DefaultProfileImage = "https://i.imgur.com/2VVImvn.jpg"

// Role groups users for authorization. Titles are unique; the well-known
// titles live in the policy package as a closed enumeration.
type Role struct {
	// ID is the unique identifier for the role.
	ID uint `gorm:"primaryKey"`

	// Title is the role's unique name, e.g. "Admin".
	Title string `gorm:"uniqueIndex;size:50;not null"`
}

// User represents a registered user in the system.
type User struct {
	// ID is the unique identifier for the user.
	ID uint `gorm:"primaryKey"`

	// Username is unique across all users.
	Username string `gorm:"uniqueIndex;size:50;not null"`

	// Email is unique across all users.
	Email string `gorm:"uniqueIndex;size:255;not null"`

	// Password is the bcrypt hash of the user's password.
	// Plaintext passwords are never stored.
	Password string `gorm:"size:255;not null"`

	// ProfileImage is the URL of the user's avatar.
	ProfileImage string `gorm:"size:255;not null"`

	// RoleID references the user's role.
	RoleID uint
	Role   Role

	// CreatedAt is the timestamp when the user registered.
	CreatedAt time.Time
}

// Actor converts the user into the identity the policy package decides
// over.
func (u *User) Actor() policy.Actor {
	return policy.Actor{ID: u.ID, Role: policy.Role(u.Role.Title)}
}
