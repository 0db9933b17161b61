package usecase

import (
	"context"
	"time"

	authDomain "github.com/restboard/restboard/internal/auth/domain"
	"github.com/restboard/restboard/internal/metrics"
	"github.com/restboard/restboard/internal/post/domain"
)

// postUseCaseWithMetrics decorates UseCase with metrics instrumentation.
type postUseCaseWithMetrics struct {
	next    UseCase
	metrics metrics.BusinessMetrics
}

// NewPostUseCaseWithMetrics wraps a post UseCase with metrics recording.
func NewPostUseCaseWithMetrics(useCase UseCase, m metrics.BusinessMetrics) UseCase {
	return &postUseCaseWithMetrics{
		next:    useCase,
		metrics: m,
	}
}

// CreatePost records metrics for post creation operations.
func (p *postUseCaseWithMetrics) CreatePost(ctx context.Context, actor authDomain.Principal, input CreatePostInput) (*domain.Post, error) {
	start := time.Now()
	post, err := p.next.CreatePost(ctx, actor, input)

	status := "success"
	if err != nil {
		status = "error"
	}

	p.metrics.RecordOperation(ctx, "post", "create", status)
	p.metrics.RecordDuration(ctx, "post", "create", time.Since(start), status)

	return post, err
}

// GetPost records metrics for post retrieval operations.
func (p *postUseCaseWithMetrics) GetPost(ctx context.Context, id int64) (*domain.Post, error) {
	start := time.Now()
	post, err := p.next.GetPost(ctx, id)

	status := "success"
	if err != nil {
		status = "error"
	}

	p.metrics.RecordOperation(ctx, "post", "get", status)
	p.metrics.RecordDuration(ctx, "post", "get", time.Since(start), status)

	return post, err
}

// ListPosts records metrics for post listing operations.
func (p *postUseCaseWithMetrics) ListPosts(ctx context.Context, offset, limit int) ([]*domain.Post, int64, error) {
	start := time.Now()
	posts, total, err := p.next.ListPosts(ctx, offset, limit)

	status := "success"
	if err != nil {
		status = "error"
	}

	p.metrics.RecordOperation(ctx, "post", "list", status)
	p.metrics.RecordDuration(ctx, "post", "list", time.Since(start), status)

	return posts, total, err
}

// UpdatePost records metrics for post update operations.
func (p *postUseCaseWithMetrics) UpdatePost(ctx context.Context, actor authDomain.Principal, id int64, input CreatePostInput) (*domain.Post, error) {
	start := time.Now()
	post, err := p.next.UpdatePost(ctx, actor, id, input)

	status := "success"
	if err != nil {
		status = "error"
	}

	p.metrics.RecordOperation(ctx, "post", "update", status)
	p.metrics.RecordDuration(ctx, "post", "update", time.Since(start), status)

	return post, err
}

// DeletePost records metrics for post deletion operations.
func (p *postUseCaseWithMetrics) DeletePost(ctx context.Context, actor authDomain.Principal, id int64) error {
	start := time.Now()
	err := p.next.DeletePost(ctx, actor, id)

	status := "success"
	if err != nil {
		status = "error"
	}

	p.metrics.RecordOperation(ctx, "post", "delete", status)
	p.metrics.RecordDuration(ctx, "post", "delete", time.Since(start), status)

	return err
}

// CreateComment records metrics for comment creation operations.
func (p *postUseCaseWithMetrics) CreateComment(ctx context.Context, actor authDomain.Principal, postID int64, input CreateCommentInput) (*domain.Comment, error) {
	start := time.Now()
	comment, err := p.next.CreateComment(ctx, actor, postID, input)

	status := "success"
	if err != nil {
		status = "error"
	}

	p.metrics.RecordOperation(ctx, "post", "comment_create", status)
	p.metrics.RecordDuration(ctx, "post", "comment_create", time.Since(start), status)

	return comment, err
}

// ListComments records metrics for comment listing operations.
func (p *postUseCaseWithMetrics) ListComments(ctx context.Context, postID int64) ([]*domain.Comment, error) {
	start := time.Now()
	comments, err := p.next.ListComments(ctx, postID)

	status := "success"
	if err != nil {
		status = "error"
	}

	p.metrics.RecordOperation(ctx, "post", "comment_list", status)
	p.metrics.RecordDuration(ctx, "post", "comment_list", time.Since(start), status)

	return comments, err
}

// UpdateComment records metrics for comment update operations.
func (p *postUseCaseWithMetrics) UpdateComment(ctx context.Context, actor authDomain.Principal, postID, commentID int64, input CreateCommentInput) (*domain.Comment, error) {
	start := time.Now()
	comment, err := p.next.UpdateComment(ctx, actor, postID, commentID, input)

	status := "success"
	if err != nil {
		status = "error"
	}

	p.metrics.RecordOperation(ctx, "post", "comment_update", status)
	p.metrics.RecordDuration(ctx, "post", "comment_update", time.Since(start), status)

	return comment, err
}

// DeleteComment records metrics for comment deletion operations.
func (p *postUseCaseWithMetrics) DeleteComment(ctx context.Context, actor authDomain.Principal, postID, commentID int64) error {
	start := time.Now()
	err := p.next.DeleteComment(ctx, actor, postID, commentID)

	status := "success"
	if err != nil {
		status = "error"
	}

	p.metrics.RecordOperation(ctx, "post", "comment_delete", status)
	p.metrics.RecordDuration(ctx, "post", "comment_delete", time.Since(start), status)

	return err
}
