package policy

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAdminOnly(t *testing.T) {
	assert.True(t, AdminOnly(Actor{ID: 1, Role: RoleAdmin}), "admin should be allowed")
	assert.False(t, AdminOnly(Actor{ID: 1, Role: RoleUser}), "plain user should be denied")
	assert.False(t, AdminOnly(Actor{ID: 1, Role: Role("Moderator")}), "unknown role should be denied")
}

func TestAdminOrOwner(t *testing.T) {
	tests := []struct {
		name    string
		actor   Actor
		ownerID uint
		want    bool
	}{
		{"admin may act on anyone", Actor{ID: 1, Role: RoleAdmin}, 99, true},
		{"owner may act on own resource", Actor{ID: 7, Role: RoleUser}, 7, true},
		{"non-owner non-admin is denied", Actor{ID: 7, Role: RoleUser}, 8, false},
		{"unknown role still owns own resource", Actor{ID: 7, Role: Role("")}, 7, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, AdminOrOwner(tt.actor, tt.ownerID))
		})
	}
}

func TestCommentEditAllowed(t *testing.T) {
	admin := Actor{ID: 1, Role: RoleAdmin}
	author := Actor{ID: 2, Role: RoleUser}
	questionAuthor := Actor{ID: 3, Role: RoleUser}
	stranger := Actor{ID: 4, Role: RoleUser}

	target := CommentOwnership{AuthorID: author.ID, QuestionAuthorID: questionAuthor.ID}

	tests := []struct {
		name  string
		actor Actor
		patch CommentPatch
		want  bool
	}{
		{"admin may change any field", admin, CommentPatch{Content: true, IsAnswer: true}, true},
		{"admin may change content", admin, CommentPatch{Content: true}, true},
		{"admin may change is_answer", admin, CommentPatch{IsAnswer: true}, true},
		{"author may change content only", author, CommentPatch{Content: true}, true},
		{"author may not change is_answer", author, CommentPatch{IsAnswer: true}, false},
		{"author may not mix content with is_answer", author, CommentPatch{Content: true, IsAnswer: true}, false},
		{"question author may change is_answer only", questionAuthor, CommentPatch{IsAnswer: true}, true},
		{"question author may not change content", questionAuthor, CommentPatch{Content: true}, false},
		{"question author may not mix fields", questionAuthor, CommentPatch{Content: true, IsAnswer: true}, false},
		{"stranger is denied everything", stranger, CommentPatch{Content: true}, false},
		{"empty patch is denied even for admin", admin, CommentPatch{}, false},
		{"empty patch is denied for author", author, CommentPatch{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CommentEditAllowed(tt.actor, target, tt.patch))
		})
	}
}

func TestCommentEditAllowed_AuthorIsAlsoQuestionAuthor(t *testing.T) {
	// A user commenting on their own question may edit either field,
	// but still only one at a time through the non-admin branches.
	self := Actor{ID: 5, Role: RoleUser}
	target := CommentOwnership{AuthorID: 5, QuestionAuthorID: 5}

	assert.True(t, CommentEditAllowed(self, target, CommentPatch{Content: true}))
	assert.True(t, CommentEditAllowed(self, target, CommentPatch{IsAnswer: true}))
	assert.False(t, CommentEditAllowed(self, target, CommentPatch{Content: true, IsAnswer: true}))
}
