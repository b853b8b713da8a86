// Package lookup parses the id-or-name path parameters used by the role,
// tag and user endpoints into a tagged key. The raw string is resolved
// exactly once at the route boundary; repositories then switch on the
// kind instead of re-guessing what the string means.
package lookup

import (
	"errors"
	"regexp"
	"strconv"
)

// ErrBadKey is returned when a path parameter matches none of the
// accepted shapes for the endpoint.
var ErrBadKey = errors.New("unresolved lookup key")

// Kind discriminates the variants of a Key.
type Kind int

const (
	// KindID is a numeric primary key.
	KindID Kind = iota
	// KindTitle is a role or tag title.
	KindTitle
	// KindUsername is a user's username.
	KindUsername
	// KindEmail is a user's email address.
	KindEmail
)

// Key is a parsed path parameter: exactly one variant is populated,
// selected by Kind.
type Key struct {
	Kind  Kind
	ID    uint
	Value string
}

var (
	alphaRe    = regexp.MustCompile(`^[A-Za-z]+$`)
	usernameRe = regexp.MustCompile(`^[A-Za-z0-9_]+$`)
	emailRe    = regexp.MustCompile(`^([A-Za-z0-9]+[.\-_])*[A-Za-z0-9]+@[A-Za-z0-9\-]+(\.[A-Za-z]{2,})+$`)
)

// IsEmail reports whether s has the shape of an email address. The same
// test decides whether a login subject is looked up by email or by
// username, so it lives here rather than in any one feature.
func IsEmail(s string) bool {
	return emailRe.MatchString(s)
}

// ParseTitleKey parses a role or tag path parameter: digits become an
// id, a purely alphabetic string becomes a title, anything else is
// rejected with ErrBadKey.
func ParseTitleKey(raw string) (Key, error) {
	if id, err := strconv.ParseUint(raw, 10, 32); err == nil {
		return Key{Kind: KindID, ID: uint(id)}, nil
	}
	if alphaRe.MatchString(raw) {
		return Key{Kind: KindTitle, Value: raw}, nil
	}
	return Key{}, ErrBadKey
}

// ParseUserKey parses a user path parameter: digits become an id, an
// email-shaped string is looked up by email, a username-shaped string
// by username. Anything else is rejected with ErrBadKey.
func ParseUserKey(raw string) (Key, error) {
	if id, err := strconv.ParseUint(raw, 10, 32); err == nil {
		return Key{Kind: KindID, ID: uint(id)}, nil
	}
	if IsEmail(raw) {
		return Key{Kind: KindEmail, Value: raw}, nil
	}
	if usernameRe.MatchString(raw) {
		return Key{Kind: KindUsername, Value: raw}, nil
	}
	return Key{}, ErrBadKey
}
