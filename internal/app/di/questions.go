// Package di provides dependency injection factories for creating application components.
package di

import (
	"time"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	forumadapters "forum_backend/internal/feature/forum/adapters"
	"forum_backend/internal/feature/forum/usecase"
	"forum_backend/internal/platform/cache"
)

// NewQuestionRepository creates a QuestionRepository implementation.
// If Redis is available, the PostgreSQL repository is wrapped with a
// read-through cache. Otherwise the plain repository is returned.
func NewQuestionRepository(rdb *redis.Client, db *gorm.DB) usecase.QuestionRepository {
	repo := forumadapters.NewQuestionPostgres(db)
	if rdb != nil {
		return cache.NewCachingQuestionRepository(rdb, 5*time.Minute, repo, "questions")
	}
	return repo
}
