// Package usecase implements the business logic for posts and comments.
package usecase

import (
	"context"
	"log/slog"

	"github.com/jellydator/validation"

	authDomain "github.com/restboard/restboard/internal/auth/domain"
	"github.com/restboard/restboard/internal/post/domain"
	appValidation "github.com/restboard/restboard/internal/validation"
)

// PostRepository defines the data access contract for posts and comments.
type PostRepository interface {
	CreatePost(ctx context.Context, post *domain.Post) error
	GetPost(ctx context.Context, id int64) (*domain.Post, error)
	ListPosts(ctx context.Context, offset, limit int) ([]*domain.Post, error)
	UpdatePost(ctx context.Context, post *domain.Post) error
	DeletePost(ctx context.Context, id int64) error
	CountPosts(ctx context.Context) (int64, error)
	CreateComment(ctx context.Context, comment *domain.Comment) error
	GetComment(ctx context.Context, postID, commentID int64) (*domain.Comment, error)
	ListComments(ctx context.Context, postID int64) ([]*domain.Comment, error)
	UpdateComment(ctx context.Context, comment *domain.Comment) error
	DeleteComment(ctx context.Context, id int64) error
}

// CreatePostInput carries the fields needed to create a post.
type CreatePostInput struct {
	Title   string
	Content string
}

// Validate validates the CreatePostInput fields.
func (i CreatePostInput) Validate() error {
	err := validation.ValidateStruct(&i,
		validation.Field(&i.Title, validation.Required, validation.Length(1, 200), appValidation.NotBlank),
		validation.Field(&i.Content, validation.Required, validation.Length(1, 20000)),
	)
	return appValidation.WrapValidationError(err)
}

// CreateCommentInput carries the fields needed to create a comment.
type CreateCommentInput struct {
	Content string
}

// Validate validates the CreateCommentInput fields.
func (i CreateCommentInput) Validate() error {
	err := validation.ValidateStruct(&i,
		validation.Field(&i.Content, validation.Required, validation.Length(1, 2000)),
	)
	return appValidation.WrapValidationError(err)
}

// UseCase defines the business operations for posts and comments.
type UseCase interface {
	CreatePost(ctx context.Context, actor authDomain.Principal, input CreatePostInput) (*domain.Post, error)
	GetPost(ctx context.Context, id int64) (*domain.Post, error)
	ListPosts(ctx context.Context, offset, limit int) ([]*domain.Post, int64, error)
	UpdatePost(ctx context.Context, actor authDomain.Principal, id int64, input CreatePostInput) (*domain.Post, error)
	DeletePost(ctx context.Context, actor authDomain.Principal, id int64) error
	CreateComment(ctx context.Context, actor authDomain.Principal, postID int64, input CreateCommentInput) (*domain.Comment, error)
	ListComments(ctx context.Context, postID int64) ([]*domain.Comment, error)
	UpdateComment(ctx context.Context, actor authDomain.Principal, postID, commentID int64, input CreateCommentInput) (*domain.Comment, error)
	DeleteComment(ctx context.Context, actor authDomain.Principal, postID, commentID int64) error
}

type postUseCase struct {
	postRepository PostRepository
	logger         *slog.Logger
}

// NewPostUseCase creates a new post use case.
func NewPostUseCase(postRepository PostRepository, logger *slog.Logger) UseCase {
	return &postUseCase{
		postRepository: postRepository,
		logger:         logger,
	}
}

func (u *postUseCase) CreatePost(ctx context.Context, actor authDomain.Principal, input CreatePostInput) (*domain.Post, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	post := &domain.Post{
		AuthorID:   actor.ID,
		AuthorName: actor.Nickname,
		Title:      input.Title,
		Content:    input.Content,
	}
	if err := u.postRepository.CreatePost(ctx, post); err != nil {
		return nil, err
	}

	u.logger.InfoContext(ctx, "post created", slog.Int64("post_id", post.ID), slog.Int64("author_id", actor.ID))
	return post, nil
}

func (u *postUseCase) GetPost(ctx context.Context, id int64) (*domain.Post, error) {
	return u.postRepository.GetPost(ctx, id)
}

func (u *postUseCase) ListPosts(ctx context.Context, offset, limit int) ([]*domain.Post, int64, error) {
	posts, err := u.postRepository.ListPosts(ctx, offset, limit)
	if err != nil {
		return nil, 0, err
	}

	total, err := u.postRepository.CountPosts(ctx)
	if err != nil {
		return nil, 0, err
	}

	return posts, total, nil
}

func (u *postUseCase) UpdatePost(ctx context.Context, actor authDomain.Principal, id int64, input CreatePostInput) (*domain.Post, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	post, err := u.postRepository.GetPost(ctx, id)
	if err != nil {
		return nil, err
	}
	if !canModify(actor, post.AuthorID) {
		return nil, domain.ErrNotAuthor
	}

	post.Title = input.Title
	post.Content = input.Content
	if err := u.postRepository.UpdatePost(ctx, post); err != nil {
		return nil, err
	}

	return post, nil
}

func (u *postUseCase) DeletePost(ctx context.Context, actor authDomain.Principal, id int64) error {
	post, err := u.postRepository.GetPost(ctx, id)
	if err != nil {
		return err
	}
	if !canModify(actor, post.AuthorID) {
		return domain.ErrNotAuthor
	}

	if err := u.postRepository.DeletePost(ctx, id); err != nil {
		return err
	}

	u.logger.InfoContext(ctx, "post deleted", slog.Int64("post_id", id), slog.Int64("actor_id", actor.ID))
	return nil
}

func (u *postUseCase) CreateComment(ctx context.Context, actor authDomain.Principal, postID int64, input CreateCommentInput) (*domain.Comment, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	if _, err := u.postRepository.GetPost(ctx, postID); err != nil {
		return nil, err
	}

	comment := &domain.Comment{
		PostID:     postID,
		AuthorID:   actor.ID,
		AuthorName: actor.Nickname,
		Content:    input.Content,
	}
	if err := u.postRepository.CreateComment(ctx, comment); err != nil {
		return nil, err
	}

	return comment, nil
}

func (u *postUseCase) ListComments(ctx context.Context, postID int64) ([]*domain.Comment, error) {
	if _, err := u.postRepository.GetPost(ctx, postID); err != nil {
		return nil, err
	}
	return u.postRepository.ListComments(ctx, postID)
}

func (u *postUseCase) UpdateComment(ctx context.Context, actor authDomain.Principal, postID, commentID int64, input CreateCommentInput) (*domain.Comment, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	comment, err := u.postRepository.GetComment(ctx, postID, commentID)
	if err != nil {
		return nil, err
	}
	if !canModify(actor, comment.AuthorID) {
		return nil, domain.ErrNotAuthor
	}

	comment.Content = input.Content
	if err := u.postRepository.UpdateComment(ctx, comment); err != nil {
		return nil, err
	}

	return comment, nil
}

func (u *postUseCase) DeleteComment(ctx context.Context, actor authDomain.Principal, postID, commentID int64) error {
	comment, err := u.postRepository.GetComment(ctx, postID, commentID)
	if err != nil {
		return err
	}
	if !canModify(actor, comment.AuthorID) {
		return domain.ErrNotAuthor
	}

	return u.postRepository.DeleteComment(ctx, comment.ID)
}

// canModify reports whether the actor owns the resource or is an administrator.
func canModify(actor authDomain.Principal, authorID int64) bool {
	return actor.ID == authorID || actor.IsAdmin()
}
