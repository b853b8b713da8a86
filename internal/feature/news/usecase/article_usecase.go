// Package usecase はnewsフィーチャーのビジネスロジックを実装します。
package usecase

import (
	"context"
	"errors"

	"forum_backend/internal/feature/news/domain/entity"
	"forum_backend/internal/shared/policy"
)

var (
	// ErrArticleNotFound is returned when an article cannot be found by id.
	ErrArticleNotFound = errors.New("article with this id does not exist")

	// ErrNotAdmin is returned when an admin-only operation is attempted by a regular user.
	ErrNotAdmin = errors.New("you have no access to edit articles")

	// ErrBadRatingType is returned when the rating path parameter is neither "likes" nor "dislikes".
	ErrBadRatingType = errors.New("unresolved rating type")
)

// RatingType は記事の評価の種別です。
type RatingType string

const (
	// RatingLikes は高評価のセットを指します。
	RatingLikes RatingType = "likes"
	// RatingDislikes は低評価のセットを指します。
	RatingDislikes RatingType = "dislikes"
)

// Opposite は反対側の評価セットを返します。
func (t RatingType) Opposite() RatingType {
	if t == RatingLikes {
		return RatingDislikes
	}
	return RatingLikes
}

// ParseRatingType はパスパラメータを評価種別に解析します。
func ParseRatingType(raw string) (RatingType, error) {
	switch RatingType(raw) {
	case RatingLikes:
		return RatingLikes, nil
	case RatingDislikes:
		return RatingDislikes, nil
	default:
		return "", ErrBadRatingType
	}
}

// ArticleRepository は記事エンティティの永続化層を抽象化します。
// Goの慣例に従い、インターフェースはプロバイダー（adapters）ではなくコンシューマー（usecase）が定義します。
type ArticleRepository interface {
	// Create は新しい記事をストレージに永続化します。
	Create(ctx context.Context, a *entity.Article) error

	// List は記事を新しい順に skip/limit の範囲で取得します。評価を含みます。
	List(ctx context.Context, skip, limit int) ([]entity.Article, error)

	// FindByID は指定されたIDに一致する記事を評価付きで取得します。
	// 存在しない場合、ErrArticleNotFoundを返します。
	FindByID(ctx context.Context, id uint) (*entity.Article, error)

	// Update は記事の変更を永続化します。評価の関連は変更しません。
	Update(ctx context.Context, a *entity.Article) error

	// AddRating は指定されたユーザーを評価セットに追加します。
	AddRating(ctx context.Context, articleID uint, rating RatingType, userID uint) error

	// RemoveRating は指定されたユーザーを評価セットから外します。
	RemoveRating(ctx context.Context, articleID uint, rating RatingType, userID uint) error

	// Delete は指定されたIDの記事を削除します。
	Delete(ctx context.Context, id uint) error
}

// CreateArticleInput は記事作成の入力です。
type CreateArticleInput struct {
	Title   string
	Content string
}

// UpdateArticleInput は記事更新の入力です。nilのフィールドは変更されません。
type UpdateArticleInput struct {
	Title   *string
	Content *string
}

// articleUsecase は記事管理のビジネスロジックを実装します。
// 記事の執筆・編集・削除は管理者のみ、閲覧と評価は全ユーザーが可能です。
type articleUsecase struct {
	articles ArticleRepository
}

// NewArticleUsecase はarticleUsecaseの新しいインスタンスを生成します。
func NewArticleUsecase(articles ArticleRepository) *articleUsecase {
	return &articleUsecase{articles: articles}
}

// Create は新しい記事を作成します。管理者のみ可能です。
func (u *articleUsecase) Create(ctx context.Context, actor policy.Actor, in CreateArticleInput) (*entity.Article, error) {
	if !policy.AdminOnly(actor) {
		return nil, ErrNotAdmin
	}

	a := &entity.Article{Title: in.Title, Content: in.Content}
	if err := u.articles.Create(ctx, a); err != nil {
		return nil, err
	}
	return a, nil
}

// List は記事を新しい順に返します。
func (u *articleUsecase) List(ctx context.Context, skip, limit int) ([]entity.Article, error) {
	return u.articles.List(ctx, skip, limit)
}

// Get はIDで記事を取得します。
func (u *articleUsecase) Get(ctx context.Context, id uint) (*entity.Article, error) {
	return u.articles.FindByID(ctx, id)
}

// Update は記事を更新します。管理者のみ可能です。
func (u *articleUsecase) Update(ctx context.Context, actor policy.Actor, id uint, in UpdateArticleInput) (*entity.Article, error) {
	if !policy.AdminOnly(actor) {
		return nil, ErrNotAdmin
	}

	a, err := u.articles.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if in.Title != nil {
		a.Title = *in.Title
	}
	if in.Content != nil {
		a.Content = *in.Content
	}
	if err := u.articles.Update(ctx, a); err != nil {
		return nil, err
	}
	return a, nil
}

// Rate は記事の評価をトグルします。
// 既に同じ評価をしている場合は取り消し、反対の評価をしている場合は付け替えます。
func (u *articleUsecase) Rate(ctx context.Context, actor policy.Actor, id uint, rating RatingType) (*entity.Article, error) {
	a, err := u.articles.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	inSet := func(t RatingType) bool {
		set := a.Likes
		if t == RatingDislikes {
			set = a.Dislikes
		}
		for _, user := range set {
			if user.ID == actor.ID {
				return true
			}
		}
		return false
	}

	if inSet(rating) {
		if err := u.articles.RemoveRating(ctx, a.ID, rating, actor.ID); err != nil {
			return nil, err
		}
	} else {
		if err := u.articles.AddRating(ctx, a.ID, rating, actor.ID); err != nil {
			return nil, err
		}
		if inSet(rating.Opposite()) {
			if err := u.articles.RemoveRating(ctx, a.ID, rating.Opposite(), actor.ID); err != nil {
				return nil, err
			}
		}
	}

	return u.articles.FindByID(ctx, a.ID)
}

// Delete は記事を削除します。管理者のみ可能です。
func (u *articleUsecase) Delete(ctx context.Context, actor policy.Actor, id uint) error {
	if !policy.AdminOnly(actor) {
		return ErrNotAdmin
	}

	if _, err := u.articles.FindByID(ctx, id); err != nil {
		return err
	}
	return u.articles.Delete(ctx, id)
}
