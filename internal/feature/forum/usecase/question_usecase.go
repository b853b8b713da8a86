package usecase

import (
	"context"
	"errors"
	"sort"

	"github.com/lithammer/fuzzysearch/fuzzy"

	"forum_backend/internal/feature/forum/domain/entity"
	"forum_backend/internal/shared/policy"
)

// titleMatchThreshold はタイトル検索で一致とみなす正規化類似度の下限です。
const titleMatchThreshold = 0.6

// ListOrder は質問一覧の並び順です。
type ListOrder int

const (
	// OrderNone は挿入順です。
	OrderNone ListOrder = iota
	// OrderDateAsc は作成日時の昇順です。
	OrderDateAsc
	// OrderDateDesc は作成日時の降順です。
	OrderDateDesc
	// OrderViewsDesc は閲覧数の降順です。
	OrderViewsDesc
)

// ListOptions は質問一覧の取得条件です。
type ListOptions struct {
	Skip  int
	Limit int
	Order ListOrder
}

// QuestionRepository は質問エンティティの永続化層を抽象化します。
// Goの慣例に従い、インターフェースはプロバイダー（adapters)ではなくコンシューマー（usecase）が定義します。
type QuestionRepository interface {
	// Create は新しい質問をタグごと永続化します。
	Create(ctx context.Context, q *entity.Question) error

	// List は指定された並び順・範囲で質問を取得します。タグを含みます。
	List(ctx context.Context, opts ListOptions) ([]entity.Question, error)

	// ListAll はすべての質問を取得します。タイトル検索用です。
	ListAll(ctx context.Context) ([]entity.Question, error)

	// ListByAuthor は指定された著者の質問を取得します。
	ListByAuthor(ctx context.Context, authorID uint) ([]entity.Question, error)

	// FindByID は指定されたIDに一致する質問をタグ付きで取得します。
	// 存在しない場合、ErrQuestionNotFoundを返します。
	FindByID(ctx context.Context, id uint) (*entity.Question, error)

	// Update は質問の変更を永続化します。タグの関連は変更しません。
	Update(ctx context.Context, q *entity.Question) error

	// ReplaceTags は質問のタグ関連を置き換えます。
	ReplaceTags(ctx context.Context, q *entity.Question, tags []entity.Tag) error

	// Delete は指定されたIDの質問を削除します。
	Delete(ctx context.Context, id uint) error
}

// UserChecker は質問の著者となるユーザーの存在確認を抽象化します。
type UserChecker interface {
	// ExistsByID は指定されたIDのユーザーが存在するかを返します。
	ExistsByID(ctx context.Context, id uint) (bool, error)
}

// CreateQuestionInput は質問作成の入力です。
// AuthorIDがnilの場合、呼び出したユーザーが著者になります。
type CreateQuestionInput struct {
	Title    string
	Content  string
	Tags     []string
	AuthorID *uint
}

// UpdateQuestionInput は質問更新の入力です。nilのフィールドは変更されません。
type UpdateQuestionInput struct {
	Title   *string
	Content *string
	Views   *int
	Tags    []string
}

// questionUsecase は質問管理のビジネスロジックを実装します。
type questionUsecase struct {
	questions QuestionRepository
	tags      TagRepository
	users     UserChecker
}

// NewQuestionUsecase はquestionUsecaseの新しいインスタンスを生成します。
func NewQuestionUsecase(questions QuestionRepository, tags TagRepository, users UserChecker) *questionUsecase {
	return &questionUsecase{questions: questions, tags: tags, users: users}
}

// fillTags はタグタイトルを正規化し、存在しないタグを作成して返します。
func (u *questionUsecase) fillTags(ctx context.Context, titles []string) ([]entity.Tag, error) {
	tags := make([]entity.Tag, 0, len(titles))
	for _, raw := range titles {
		title, err := NormalizeTagTitle(raw)
		if err != nil {
			return nil, err
		}

		tag, err := u.tags.FindByTitle(ctx, title)
		if errors.Is(err, ErrTagNotFound) {
			tag = &entity.Tag{Title: title}
			if err := u.tags.Create(ctx, tag); err != nil {
				return nil, err
			}
		} else if err != nil {
			return nil, err
		}
		tags = append(tags, *tag)
	}
	return tags, nil
}

// Create は新しい質問を作成します。
// 指定された著者が存在しない場合エラーを返します。
func (u *questionUsecase) Create(ctx context.Context, actor policy.Actor, in CreateQuestionInput) (*entity.Question, error) {
	authorID := actor.ID
	if in.AuthorID != nil {
		authorID = *in.AuthorID
	}

	ok, err := u.users.ExistsByID(ctx, authorID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrQuestionAuthorMissing
	}

	tags, err := u.fillTags(ctx, in.Tags)
	if err != nil {
		return nil, err
	}

	q := &entity.Question{
		Title:    in.Title,
		Content:  in.Content,
		AuthorID: authorID,
		Tags:     tags,
	}
	if err := u.questions.Create(ctx, q); err != nil {
		return nil, err
	}
	return q, nil
}

// List は指定された並び順・範囲で質問の一覧を返します。
func (u *questionUsecase) List(ctx context.Context, opts ListOptions) ([]entity.Question, error) {
	return u.questions.List(ctx, opts)
}

// similarity は2つのタイトルの正規化類似度（0〜1）を返します。
func similarity(a, b string) float64 {
	longest := max(len([]rune(a)), len([]rune(b)))
	if longest == 0 {
		return 0
	}
	dist := fuzzy.LevenshteinDistance(a, b)
	return 1 - float64(dist)/float64(longest)
}

// SearchByTitle はタイトルが曖昧一致する質問を類似度の高い順に返します。
func (u *questionUsecase) SearchByTitle(ctx context.Context, title string) ([]entity.Question, error) {
	all, err := u.questions.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	type scored struct {
		q     entity.Question
		score float64
	}
	matches := make([]scored, 0)
	for _, q := range all {
		if s := similarity(q.Title, title); s >= titleMatchThreshold {
			matches = append(matches, scored{q: q, score: s})
		}
	}
	sort.SliceStable(matches, func(i, j int) bool { return matches[i].score > matches[j].score })

	result := make([]entity.Question, len(matches))
	for i, m := range matches {
		result[i] = m.q
	}
	return result, nil
}

// Get はIDで質問を取得します。
func (u *questionUsecase) Get(ctx context.Context, id uint) (*entity.Question, error) {
	return u.questions.FindByID(ctx, id)
}

// ListByAuthor は指定されたユーザーの質問を返します。
func (u *questionUsecase) ListByAuthor(ctx context.Context, authorID uint) ([]entity.Question, error) {
	return u.questions.ListByAuthor(ctx, authorID)
}

// Update は質問を更新します。管理者または著者のみ可能です。
// タグが指定された場合、関連を置き換えます。
func (u *questionUsecase) Update(ctx context.Context, actor policy.Actor, id uint, in UpdateQuestionInput) (*entity.Question, error) {
	q, err := u.questions.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if !policy.AdminOrOwner(actor, q.AuthorID) {
		return nil, ErrNotQuestionAuthor
	}

	if in.Title != nil {
		q.Title = *in.Title
	}
	if in.Content != nil {
		q.Content = *in.Content
	}
	if in.Views != nil {
		q.Views = *in.Views
	}
	if err := u.questions.Update(ctx, q); err != nil {
		return nil, err
	}

	if in.Tags != nil {
		tags, err := u.fillTags(ctx, in.Tags)
		if err != nil {
			return nil, err
		}
		if err := u.questions.ReplaceTags(ctx, q, tags); err != nil {
			return nil, err
		}
	}
	return q, nil
}

// UpdateViews は質問の閲覧数を更新します。認証は不要です。
func (u *questionUsecase) UpdateViews(ctx context.Context, id uint, views int) (*entity.Question, error) {
	q, err := u.questions.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	q.Views = views
	if err := u.questions.Update(ctx, q); err != nil {
		return nil, err
	}
	return q, nil
}

// Delete は質問を削除します。管理者または著者のみ可能です。
func (u *questionUsecase) Delete(ctx context.Context, actor policy.Actor, id uint) error {
	q, err := u.questions.FindByID(ctx, id)
	if err != nil {
		return err
	}

	if !policy.AdminOrOwner(actor, q.AuthorID) {
		return ErrNotQuestionAuthor
	}
	return u.questions.Delete(ctx, id)
}
