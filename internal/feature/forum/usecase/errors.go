// Package usecase implements the business logic for the forum feature.
package usecase

import "errors"

var (
	// ErrQuestionNotFound is returned when a question cannot be found by id.
	ErrQuestionNotFound = errors.New("question with this id does not exist")

	// ErrTagNotFound is returned when a tag cannot be found by id or title.
	ErrTagNotFound = errors.New("tag with this key does not exist")

	// ErrCommentNotFound is returned when a comment cannot be found by id.
	ErrCommentNotFound = errors.New("comment with this id does not exist")

	// ErrTagTitleTaken is returned when creating or renaming a tag to a title that already exists.
	ErrTagTitleTaken = errors.New("tag with this title already exists")

	// ErrBadTagTitle is returned when a tag title contains characters outside [a-z0-9._-].
	ErrBadTagTitle = errors.New("wrong tag title")

	// ErrQuestionAuthorMissing is returned when a question or comment names an author that does not exist.
	ErrQuestionAuthorMissing = errors.New("user with this id does not exist")

	// ErrNotAdmin is returned when an admin-only operation is attempted by a regular user.
	ErrNotAdmin = errors.New("you are not an admin")

	// ErrNotQuestionAuthor is returned when someone else's question is edited or deleted.
	ErrNotQuestionAuthor = errors.New("you are not the owner of the question")

	// ErrNotCommentAuthor is returned when someone else's comment is deleted.
	ErrNotCommentAuthor = errors.New("you are not author of comment")

	// ErrCommentEditDenied is returned when the comment-edit policy rejects the
	// combination of actor and patched fields.
	ErrCommentEditDenied = errors.New("you are not allowed to change these fields")
)
