package cache

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/go-redis/redismock/v9"

	"forum_backend/internal/feature/forum/domain/entity"
	"forum_backend/internal/feature/forum/usecase"
)

// mockQuestionRepository はテスト用のQuestionRepositoryモック実装です。
type mockQuestionRepository struct {
	createFn   func(ctx context.Context, q *entity.Question) error
	listFn     func(ctx context.Context, opts usecase.ListOptions) ([]entity.Question, error)
	findByIDFn func(ctx context.Context, id uint) (*entity.Question, error)
	deleteFn   func(ctx context.Context, id uint) error
}

func (m *mockQuestionRepository) Create(ctx context.Context, q *entity.Question) error {
	if m.createFn != nil {
		return m.createFn(ctx, q)
	}
	return nil
}

func (m *mockQuestionRepository) List(ctx context.Context, opts usecase.ListOptions) ([]entity.Question, error) {
	if m.listFn != nil {
		return m.listFn(ctx, opts)
	}
	return nil, nil
}

func (m *mockQuestionRepository) ListAll(ctx context.Context) ([]entity.Question, error) {
	return nil, nil
}

func (m *mockQuestionRepository) ListByAuthor(ctx context.Context, authorID uint) ([]entity.Question, error) {
	return nil, nil
}

func (m *mockQuestionRepository) FindByID(ctx context.Context, id uint) (*entity.Question, error) {
	if m.findByIDFn != nil {
		return m.findByIDFn(ctx, id)
	}
	return nil, nil
}

func (m *mockQuestionRepository) Update(ctx context.Context, q *entity.Question) error {
	return nil
}

func (m *mockQuestionRepository) ReplaceTags(ctx context.Context, q *entity.Question, tags []entity.Tag) error {
	return nil
}

func (m *mockQuestionRepository) Delete(ctx context.Context, id uint) error {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, id)
	}
	return nil
}

// TestNewCachingQuestionRepository_Defaults はデフォルト値（TTLとnamespace）が正しく設定されることを検証します。
func TestNewCachingQuestionRepository_Defaults(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name              string
		ttl               time.Duration
		namespace         string
		expectedTTL       time.Duration
		expectedNamespace string
	}{
		{
			name:              "default values when zero/empty",
			ttl:               0,
			namespace:         "",
			expectedTTL:       5 * time.Minute,
			expectedNamespace: "questions",
		},
		{
			name:              "custom values preserved",
			ttl:               10 * time.Minute,
			namespace:         "custom",
			expectedTTL:       10 * time.Minute,
			expectedNamespace: "custom",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			repo := NewCachingQuestionRepository(nil, tt.ttl, &mockQuestionRepository{}, tt.namespace)

			if repo.ttl != tt.expectedTTL {
				t.Errorf("expected TTL %v, got %v", tt.expectedTTL, repo.ttl)
			}
			if repo.namespace != tt.expectedNamespace {
				t.Errorf("expected namespace %q, got %q", tt.expectedNamespace, repo.namespace)
			}
		})
	}
}

// TestCachingQuestionRepository_List_NilRedis はRedisがnilの場合にキャッシュをバイパスして内部リポジトリを直接呼び出すことを検証します。
func TestCachingQuestionRepository_List_NilRedis(t *testing.T) {
	t.Parallel()

	expected := []entity.Question{{ID: 1, Title: "first question"}}

	inner := &mockQuestionRepository{
		listFn: func(ctx context.Context, opts usecase.ListOptions) ([]entity.Question, error) {
			return expected, nil
		},
	}

	repo := NewCachingQuestionRepository(nil, 5*time.Minute, inner, "questions")

	questions, err := repo.List(context.Background(), usecase.ListOptions{Limit: 100})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(questions) != len(expected) {
		t.Errorf("expected %d questions, got %d", len(expected), len(questions))
	}
}

// TestCachingQuestionRepository_List_CacheHit はキャッシュヒット時にRedisからデータを返し、内部リポジトリを呼ばないことを検証します。
func TestCachingQuestionRepository_List_CacheHit(t *testing.T) {
	t.Parallel()

	rdb, mock := redismock.NewClientMock()
	defer func() { _ = rdb.Close() }()

	cached := []entity.Question{{ID: 1, Title: "cached question"}}
	cachedJSON, _ := json.Marshal(cached)

	mock.ExpectGet("questions:list:0:100:0").SetVal(string(cachedJSON))

	innerCalled := false
	inner := &mockQuestionRepository{
		listFn: func(ctx context.Context, opts usecase.ListOptions) ([]entity.Question, error) {
			innerCalled = true
			return nil, nil
		},
	}

	repo := NewCachingQuestionRepository(rdb, 5*time.Minute, inner, "questions")
	questions, err := repo.List(context.Background(), usecase.ListOptions{Skip: 0, Limit: 100})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if innerCalled {
		t.Error("inner repository should not be called on cache hit")
	}
	if len(questions) != 1 {
		t.Errorf("expected 1 question, got %d", len(questions))
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unfulfilled mock expectations: %v", err)
	}
}

// TestCachingQuestionRepository_List_CacheMiss はキャッシュミス時にDBからデータを取得し、キャッシュに保存することを検証します。
func TestCachingQuestionRepository_List_CacheMiss(t *testing.T) {
	t.Parallel()

	rdb, mock := redismock.NewClientMock()
	defer func() { _ = rdb.Close() }()

	expected := []entity.Question{{ID: 1, Title: "fresh question"}}
	expectedJSON, _ := json.Marshal(expected)

	mock.ExpectGet("questions:list:0:100:0").RedisNil()
	mock.ExpectSet("questions:list:0:100:0", expectedJSON, 5*time.Minute).SetVal("OK")

	inner := &mockQuestionRepository{
		listFn: func(ctx context.Context, opts usecase.ListOptions) ([]entity.Question, error) {
			return expected, nil
		},
	}

	repo := NewCachingQuestionRepository(rdb, 5*time.Minute, inner, "questions")
	questions, err := repo.List(context.Background(), usecase.ListOptions{Skip: 0, Limit: 100})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(questions) != 1 {
		t.Errorf("expected 1 question, got %d", len(questions))
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unfulfilled mock expectations: %v", err)
	}
}

// TestCachingQuestionRepository_List_InnerError は内部リポジトリがエラーを返した場合にそのエラーが伝播されることを検証します。
func TestCachingQuestionRepository_List_InnerError(t *testing.T) {
	t.Parallel()

	rdb, mock := redismock.NewClientMock()
	defer func() { _ = rdb.Close() }()

	expectedErr := errors.New("database error")

	mock.ExpectGet("questions:list:0:100:0").RedisNil()

	inner := &mockQuestionRepository{
		listFn: func(ctx context.Context, opts usecase.ListOptions) ([]entity.Question, error) {
			return nil, expectedErr
		},
	}

	repo := NewCachingQuestionRepository(rdb, 5*time.Minute, inner, "questions")
	_, err := repo.List(context.Background(), usecase.ListOptions{Skip: 0, Limit: 100})

	if !errors.Is(err, expectedErr) {
		t.Errorf("expected error %v, got %v", expectedErr, err)
	}
}

// TestCachingQuestionRepository_FindByID_CacheHit は単一質問のキャッシュヒットを検証します。
func TestCachingQuestionRepository_FindByID_CacheHit(t *testing.T) {
	t.Parallel()

	rdb, mock := redismock.NewClientMock()
	defer func() { _ = rdb.Close() }()

	cached := entity.Question{ID: 7, Title: "cached question"}
	cachedJSON, _ := json.Marshal(&cached)

	mock.ExpectGet("questions:id:7").SetVal(string(cachedJSON))

	innerCalled := false
	inner := &mockQuestionRepository{
		findByIDFn: func(ctx context.Context, id uint) (*entity.Question, error) {
			innerCalled = true
			return nil, nil
		},
	}

	repo := NewCachingQuestionRepository(rdb, 5*time.Minute, inner, "questions")
	question, err := repo.FindByID(context.Background(), 7)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if innerCalled {
		t.Error("inner repository should not be called on cache hit")
	}
	if question.ID != 7 {
		t.Errorf("expected question 7, got %d", question.ID)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unfulfilled mock expectations: %v", err)
	}
}

// TestCachingQuestionRepository_Delete_Invalidates は削除後にnamespace全体のキーが破棄されることを検証します。
func TestCachingQuestionRepository_Delete_Invalidates(t *testing.T) {
	t.Parallel()

	rdb, mock := redismock.NewClientMock()
	defer func() { _ = rdb.Close() }()

	mock.ExpectScan(0, "questions:*", 200).SetVal([]string{"questions:id:7"}, 0)
	mock.ExpectDel("questions:id:7").SetVal(1)

	deleted := false
	inner := &mockQuestionRepository{
		deleteFn: func(ctx context.Context, id uint) error {
			deleted = true
			return nil
		},
	}

	repo := NewCachingQuestionRepository(rdb, 5*time.Minute, inner, "questions")
	if err := repo.Delete(context.Background(), 7); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !deleted {
		t.Error("inner repository Delete should be called")
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unfulfilled mock expectations: %v", err)
	}
}
