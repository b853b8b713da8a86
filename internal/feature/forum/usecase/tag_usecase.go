package usecase

import (
	"context"
	"errors"
	"regexp"
	"strings"

	"forum_backend/internal/feature/forum/domain/entity"
	"forum_backend/internal/shared/lookup"
	"forum_backend/internal/shared/policy"
)

// tagTitleRe はタグタイトルに許可される文字種です。小文字化の後に検証されます。
var tagTitleRe = regexp.MustCompile(`^[a-z0-9._\-]+$`)

// NormalizeTagTitle はタグタイトルを小文字化して検証します。
// 不正な文字を含む場合、ErrBadTagTitleを返します。
func NormalizeTagTitle(title string) (string, error) {
	title = strings.ToLower(title)
	if !tagTitleRe.MatchString(title) {
		return "", ErrBadTagTitle
	}
	return title, nil
}

// TagRepository はタグエンティティの永続化層を抽象化します。
// Goの慣例に従い、インターフェースはプロバイダー（adapters）ではなくコンシューマー（usecase）が定義します。
type TagRepository interface {
	// Create は新しいタグをストレージに永続化します。
	Create(ctx context.Context, tag *entity.Tag) error

	// List はタグを skip/limit の範囲で取得します。
	List(ctx context.Context, skip, limit int) ([]entity.Tag, error)

	// FindByID は指定されたIDに一致するタグを取得します。
	// 存在しない場合、ErrTagNotFoundを返します。
	FindByID(ctx context.Context, id uint) (*entity.Tag, error)

	// FindByTitle は指定されたタイトルに一致するタグを取得します。
	FindByTitle(ctx context.Context, title string) (*entity.Tag, error)

	// Update はタグの変更を永続化します。
	Update(ctx context.Context, tag *entity.Tag) error

	// Delete は指定されたIDのタグを削除します。
	Delete(ctx context.Context, id uint) error
}

// tagUsecase はタグ管理のビジネスロジックを実装します。
// 参照は誰でも、変更は管理者のみ可能です。
type tagUsecase struct {
	tags TagRepository
}

// NewTagUsecase はtagUsecaseの新しいインスタンスを生成します。
func NewTagUsecase(tags TagRepository) *tagUsecase {
	return &tagUsecase{tags: tags}
}

// Create は新しいタグを作成します。タイトルの重複はErrTagTitleTakenになります。
func (u *tagUsecase) Create(ctx context.Context, actor policy.Actor, title string) (*entity.Tag, error) {
	if !policy.AdminOnly(actor) {
		return nil, ErrNotAdmin
	}

	if _, err := u.tags.FindByTitle(ctx, title); err == nil {
		return nil, ErrTagTitleTaken
	} else if !errors.Is(err, ErrTagNotFound) {
		return nil, err
	}

	tag := &entity.Tag{Title: title}
	if err := u.tags.Create(ctx, tag); err != nil {
		return nil, err
	}
	return tag, nil
}

// List はタグの一覧を返します。
func (u *tagUsecase) List(ctx context.Context, skip, limit int) ([]entity.Tag, error) {
	return u.tags.List(ctx, skip, limit)
}

// Get はIDまたはタイトルでタグを取得します。
func (u *tagUsecase) Get(ctx context.Context, key lookup.Key) (*entity.Tag, error) {
	switch key.Kind {
	case lookup.KindID:
		return u.tags.FindByID(ctx, key.ID)
	case lookup.KindTitle:
		return u.tags.FindByTitle(ctx, key.Value)
	default:
		return nil, lookup.ErrBadKey
	}
}

// Update はタグのタイトルを変更します。
// 別のタグが同じタイトルを持つ場合、ErrTagTitleTakenを返します。
func (u *tagUsecase) Update(ctx context.Context, actor policy.Actor, id uint, title string) (*entity.Tag, error) {
	if !policy.AdminOnly(actor) {
		return nil, ErrNotAdmin
	}

	tag, err := u.tags.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if other, err := u.tags.FindByTitle(ctx, title); err == nil && other.ID != tag.ID {
		return nil, ErrTagTitleTaken
	} else if err != nil && !errors.Is(err, ErrTagNotFound) {
		return nil, err
	}

	tag.Title = title
	if err := u.tags.Update(ctx, tag); err != nil {
		return nil, err
	}
	return tag, nil
}

// Delete はIDでタグを削除します。
func (u *tagUsecase) Delete(ctx context.Context, actor policy.Actor, id uint) error {
	if !policy.AdminOnly(actor) {
		return ErrNotAdmin
	}

	if _, err := u.tags.FindByID(ctx, id); err != nil {
		return err
	}
	return u.tags.Delete(ctx, id)
}
