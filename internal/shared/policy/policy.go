// Package policy implements the access control decisions shared by all
// protected endpoints. Every function here is pure: it takes the acting
// user and the ownership of the target resource and returns allow/deny,
// with no I/O and no side effects.
package policy

// Role identifies a user's role as a closed enumeration.
// Role titles are compared against these constants, never against
// free-form strings, so a typo in a stored title cannot silently
// grant or revoke access.
type Role string

const (
	// RoleAdmin is allowed every action in the system.
	RoleAdmin Role = "Admin"

	// RoleUser is the default role for registered users.
	RoleUser Role = "User"
)

// Actor is the identity a policy decision is evaluated for.
type Actor struct {
	ID   uint
	Role Role
}

// IsAdmin reports whether the actor holds the Admin role.
func (a Actor) IsAdmin() bool {
	return a.Role == RoleAdmin
}

// AdminOnly permits the action only for admins.
func AdminOnly(actor Actor) bool {
	return actor.IsAdmin()
}

// AdminOrOwner permits the action for admins and for the owner of the
// target resource. ownerID is the user id the resource is attributed to
// (a question's author, a notification's addressee, or the user record's
// own id for self-service operations).
func AdminOrOwner(actor Actor, ownerID uint) bool {
	return actor.IsAdmin() || actor.ID == ownerID
}

// CommentOwnership carries the two identities a comment-edit decision
// depends on: the comment's author and the author of the question the
// comment belongs to.
type CommentOwnership struct {
	AuthorID         uint
	QuestionAuthorID uint
}

// CommentPatch describes which fields an edit request is trying to
// change. Only set fields participate in the decision.
type CommentPatch struct {
	Content  bool
	IsAnswer bool
}

// CommentEditAllowed evaluates the composite comment-edit policy:
//
//	admin            -> any field
//	comment author   -> content only
//	question author  -> is_answer only
//	anyone else      -> deny
//
// An empty patch is denied. The table is total: every combination maps
// to an explicit allow or deny.
func CommentEditAllowed(actor Actor, target CommentOwnership, patch CommentPatch) bool {
	if !patch.Content && !patch.IsAnswer {
		return false
	}
	if actor.IsAdmin() {
		return true
	}
	if actor.ID == target.AuthorID && patch.Content && !patch.IsAnswer {
		return true
	}
	if actor.ID == target.QuestionAuthorID && patch.IsAnswer && !patch.Content {
		return true
	}
	return false
}
