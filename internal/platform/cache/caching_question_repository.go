// Package cache provides caching implementations for repository interfaces.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"forum_backend/internal/feature/forum/domain/entity"
	"forum_backend/internal/feature/forum/usecase"
)

// CachingQuestionRepository decorates a QuestionRepository with Redis caching.
// It implements the decorator pattern, transparently adding caching without
// modifying the underlying repository. Reads of question pages and single
// questions are cached; every write invalidates the whole namespace.
type CachingQuestionRepository struct {
	inner     usecase.QuestionRepository
	rdb       *redis.Client
	ttl       time.Duration
	namespace string
}

var _ usecase.QuestionRepository = (*CachingQuestionRepository)(nil)

// NewCachingQuestionRepository decorates a QuestionRepository with Redis caching.
// If ttl is 0, it defaults to 5 minutes. If namespace is empty, it uses "questions".
func NewCachingQuestionRepository(rdb *redis.Client, ttl time.Duration, inner usecase.QuestionRepository, namespace string) *CachingQuestionRepository {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	if namespace == "" {
		namespace = "questions"
	}
	return &CachingQuestionRepository{
		inner:     inner,
		rdb:       rdb,
		ttl:       ttl,
		namespace: namespace,
	}
}

// Create persists a question and invalidates the cache.
func (c *CachingQuestionRepository) Create(ctx context.Context, q *entity.Question) error {
	if err := c.inner.Create(ctx, q); err != nil {
		return err
	}
	c.invalidate(ctx)
	return nil
}

// List retrieves a page of questions, checking cache first then falling back
// to the database.
func (c *CachingQuestionRepository) List(ctx context.Context, opts usecase.ListOptions) ([]entity.Question, error) {
	if c.rdb == nil {
		return c.inner.List(ctx, opts)
	}

	key := fmt.Sprintf("%s:list:%d:%d:%d", c.namespace, opts.Skip, opts.Limit, opts.Order)

	// 1) Check cache
	if b, err := c.rdb.Get(ctx, key).Bytes(); err == nil && len(b) > 0 {
		var out []entity.Question
		if err := json.Unmarshal(b, &out); err == nil {
			return out, nil
		}
		// Delete corrupted cache entry
		_ = c.rdb.Del(ctx, key).Err()
	}

	// 2) Fallback to database
	out, err := c.inner.List(ctx, opts)
	if err != nil {
		return nil, err
	}

	// 3) Store in cache (best effort)
	if b, err := json.Marshal(out); err == nil {
		_ = c.rdb.Set(ctx, key, b, c.ttl).Err()
	}

	return out, nil
}

// ListAll bypasses the cache. It feeds the title similarity search, which
// needs a current view of every question.
func (c *CachingQuestionRepository) ListAll(ctx context.Context) ([]entity.Question, error) {
	return c.inner.ListAll(ctx)
}

// ListByAuthor bypasses the cache.
func (c *CachingQuestionRepository) ListByAuthor(ctx context.Context, authorID uint) ([]entity.Question, error) {
	return c.inner.ListByAuthor(ctx, authorID)
}

// FindByID retrieves a single question, checking cache first.
func (c *CachingQuestionRepository) FindByID(ctx context.Context, id uint) (*entity.Question, error) {
	if c.rdb == nil {
		return c.inner.FindByID(ctx, id)
	}

	key := fmt.Sprintf("%s:id:%d", c.namespace, id)

	if b, err := c.rdb.Get(ctx, key).Bytes(); err == nil && len(b) > 0 {
		var out entity.Question
		if err := json.Unmarshal(b, &out); err == nil {
			return &out, nil
		}
		_ = c.rdb.Del(ctx, key).Err()
	}

	out, err := c.inner.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if b, err := json.Marshal(out); err == nil {
		_ = c.rdb.Set(ctx, key, b, c.ttl).Err()
	}

	return out, nil
}

// Update persists changes and invalidates the cache.
func (c *CachingQuestionRepository) Update(ctx context.Context, q *entity.Question) error {
	if err := c.inner.Update(ctx, q); err != nil {
		return err
	}
	c.invalidate(ctx)
	return nil
}

// ReplaceTags replaces the tag association and invalidates the cache.
func (c *CachingQuestionRepository) ReplaceTags(ctx context.Context, q *entity.Question, tags []entity.Tag) error {
	if err := c.inner.ReplaceTags(ctx, q, tags); err != nil {
		return err
	}
	c.invalidate(ctx)
	return nil
}

// Delete removes a question and invalidates the cache.
func (c *CachingQuestionRepository) Delete(ctx context.Context, id uint) error {
	if err := c.inner.Delete(ctx, id); err != nil {
		return err
	}
	c.invalidate(ctx)
	return nil
}

// invalidate drops every key in the namespace. Best effort: cache misses are
// cheaper than stale reads.
func (c *CachingQuestionRepository) invalidate(ctx context.Context) {
	if c.rdb == nil {
		return
	}
	_ = c.deleteByPattern(ctx, c.namespace+":*")
}

// deleteByPattern deletes all cache keys matching a given pattern using SCAN.
func (c *CachingQuestionRepository) deleteByPattern(ctx context.Context, pattern string) error {
	var cursor uint64
	for {
		keys, cur, err := c.rdb.Scan(ctx, cursor, pattern, 200).Result()
		if err != nil {
			return err
		}
		if len(keys) > 0 {
			if err := c.rdb.Del(ctx, keys...).Err(); err != nil {
				return err
			}
		}
		cursor = cur
		if cursor == 0 {
			break
		}
	}
	return nil
}
