package adapters

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"forum_backend/internal/feature/news/domain/entity"
	"forum_backend/internal/feature/news/usecase"
	usersentity "forum_backend/internal/feature/users/domain/entity"
)

// setupTestDB prepares an in-memory SQLite database for testing.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err, "failed to initialize test database")

	err = db.AutoMigrate(
		&usersentity.Role{},
		&usersentity.User{},
		&entity.Article{},
	)
	require.NoError(t, err, "failed to migrate tables")

	return db
}

// seedUser inserts a user that can rate articles.
func seedUser(t *testing.T, db *gorm.DB, username string) usersentity.User {
	t.Helper()
	role := usersentity.Role{Title: "User-" + username}
	require.NoError(t, db.Create(&role).Error)
	user := usersentity.User{Username: username, Email: username + "@example.com", Password: "hash", RoleID: role.ID}
	require.NoError(t, db.Create(&user).Error)
	return user
}

func TestArticlePostgres_CreateAndFind(t *testing.T) {
	db := setupTestDB(t)
	repo := NewArticlePostgres(db)

	a := &entity.Article{Title: "Release notes", Content: "body"}
	require.NoError(t, repo.Create(context.Background(), a))
	assert.NotZero(t, a.ID)

	found, err := repo.FindByID(context.Background(), a.ID)
	require.NoError(t, err)
	assert.Equal(t, "Release notes", found.Title)
	assert.Empty(t, found.Likes)
	assert.Empty(t, found.Dislikes)

	_, err = repo.FindByID(context.Background(), 999)
	assert.ErrorIs(t, err, usecase.ErrArticleNotFound)
}

func TestArticlePostgres_ListNewestFirst(t *testing.T) {
	db := setupTestDB(t)
	repo := NewArticlePostgres(db)

	base := time.Now().Add(-time.Hour)
	titles := []string{"first", "second", "third"}
	for i, title := range titles {
		a := &entity.Article{Title: title, Content: "body"}
		require.NoError(t, repo.Create(context.Background(), a))
		require.NoError(t, db.Model(a).Update("created_at", base.Add(time.Duration(i)*time.Minute)).Error)
	}

	articles, err := repo.List(context.Background(), 0, 100)
	require.NoError(t, err)
	require.Len(t, articles, 3)
	assert.Equal(t, "third", articles[0].Title)
	assert.Equal(t, "first", articles[2].Title)

	paged, err := repo.List(context.Background(), 1, 1)
	require.NoError(t, err)
	require.Len(t, paged, 1)
	assert.Equal(t, "second", paged[0].Title)
}

func TestArticlePostgres_Ratings(t *testing.T) {
	db := setupTestDB(t)
	repo := NewArticlePostgres(db)
	alice := seedUser(t, db, "alice")
	bob := seedUser(t, db, "bob")

	a := &entity.Article{Title: "Ratings", Content: "body"}
	require.NoError(t, repo.Create(context.Background(), a))

	require.NoError(t, repo.AddRating(context.Background(), a.ID, usecase.RatingLikes, alice.ID))
	require.NoError(t, repo.AddRating(context.Background(), a.ID, usecase.RatingDislikes, bob.ID))

	found, err := repo.FindByID(context.Background(), a.ID)
	require.NoError(t, err)
	require.Len(t, found.Likes, 1)
	require.Len(t, found.Dislikes, 1)
	assert.Equal(t, "alice", found.Likes[0].Username)
	assert.Equal(t, "bob", found.Dislikes[0].Username)

	// Moving a vote is remove from one set, add to the other.
	require.NoError(t, repo.RemoveRating(context.Background(), a.ID, usecase.RatingLikes, alice.ID))
	require.NoError(t, repo.AddRating(context.Background(), a.ID, usecase.RatingDislikes, alice.ID))

	found, err = repo.FindByID(context.Background(), a.ID)
	require.NoError(t, err)
	assert.Empty(t, found.Likes)
	assert.Len(t, found.Dislikes, 2)
}

func TestArticlePostgres_UpdateDoesNotTouchRatings(t *testing.T) {
	db := setupTestDB(t)
	repo := NewArticlePostgres(db)
	alice := seedUser(t, db, "alice")

	a := &entity.Article{Title: "Before", Content: "body"}
	require.NoError(t, repo.Create(context.Background(), a))
	require.NoError(t, repo.AddRating(context.Background(), a.ID, usecase.RatingLikes, alice.ID))

	a.Title = "After"
	a.Likes = nil
	require.NoError(t, repo.Update(context.Background(), a))

	found, err := repo.FindByID(context.Background(), a.ID)
	require.NoError(t, err)
	assert.Equal(t, "After", found.Title)
	assert.Len(t, found.Likes, 1)
}

func TestArticlePostgres_Delete(t *testing.T) {
	db := setupTestDB(t)
	repo := NewArticlePostgres(db)
	alice := seedUser(t, db, "alice")

	a := &entity.Article{Title: "Doomed", Content: "body"}
	require.NoError(t, repo.Create(context.Background(), a))
	require.NoError(t, repo.AddRating(context.Background(), a.ID, usecase.RatingLikes, alice.ID))

	require.NoError(t, repo.Delete(context.Background(), a.ID))

	_, err := repo.FindByID(context.Background(), a.ID)
	assert.ErrorIs(t, err, usecase.ErrArticleNotFound)

	var joined int64
	require.NoError(t, db.Table("article_likes").Count(&joined).Error)
	assert.Zero(t, joined)
}
