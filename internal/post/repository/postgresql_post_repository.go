// Package repository provides data persistence implementations for posts and comments.
package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/restboard/restboard/internal/database"
	"github.com/restboard/restboard/internal/post/domain"

	apperrors "github.com/restboard/restboard/internal/errors"
)

// PostgreSQLPostRepository handles post and comment persistence for PostgreSQL.
type PostgreSQLPostRepository struct {
	db *sql.DB
}

// NewPostgreSQLPostRepository creates a new PostgreSQLPostRepository.
func NewPostgreSQLPostRepository(db *sql.DB) *PostgreSQLPostRepository {
	return &PostgreSQLPostRepository{
		db: db,
	}
}

// CreatePost inserts a new post and fills in its generated id.
func (r *PostgreSQLPostRepository) CreatePost(ctx context.Context, post *domain.Post) error {
	querier := database.GetTx(ctx, r.db)

	query := `INSERT INTO posts (author_id, title, content, created_at, updated_at)
			  VALUES ($1, $2, $3, NOW(), NOW())
			  RETURNING id`

	err := querier.QueryRowContext(ctx, query, post.AuthorID, post.Title, post.Content).Scan(&post.ID)
	if err != nil {
		return apperrors.Wrap(err, "failed to create post")
	}
	return nil
}

// GetPost retrieves a post by id, including the author's nickname.
func (r *PostgreSQLPostRepository) GetPost(ctx context.Context, id int64) (*domain.Post, error) {
	querier := database.GetTx(ctx, r.db)

	query := `SELECT p.id, p.author_id, a.nickname, p.title, p.content, p.created_at, p.updated_at
			  FROM posts p JOIN accounts a ON a.id = p.author_id
			  WHERE p.id = $1`

	var post domain.Post
	err := querier.QueryRowContext(ctx, query, id).Scan(
		&post.ID, &post.AuthorID, &post.AuthorName, &post.Title, &post.Content, &post.CreatedAt, &post.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrPostNotFound
		}
		return nil, apperrors.Wrap(err, "failed to get post")
	}

	return &post, nil
}

// ListPosts retrieves posts newest-first with offset/limit pagination.
func (r *PostgreSQLPostRepository) ListPosts(ctx context.Context, offset, limit int) ([]*domain.Post, error) {
	querier := database.GetTx(ctx, r.db)

	query := `SELECT p.id, p.author_id, a.nickname, p.title, p.content, p.created_at, p.updated_at
			  FROM posts p JOIN accounts a ON a.id = p.author_id
			  ORDER BY p.id DESC
			  OFFSET $1 LIMIT $2`

	rows, err := querier.QueryContext(ctx, query, offset, limit)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list posts")
	}
	defer func() { _ = rows.Close() }()

	posts := make([]*domain.Post, 0)
	for rows.Next() {
		var post domain.Post
		if err := rows.Scan(
			&post.ID, &post.AuthorID, &post.AuthorName, &post.Title, &post.Content, &post.CreatedAt, &post.UpdatedAt,
		); err != nil {
			return nil, apperrors.Wrap(err, "failed to scan post")
		}
		posts = append(posts, &post)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.Wrap(err, "failed to iterate posts")
	}

	return posts, nil
}

// UpdatePost persists the mutable post fields.
func (r *PostgreSQLPostRepository) UpdatePost(ctx context.Context, post *domain.Post) error {
	querier := database.GetTx(ctx, r.db)

	query := `UPDATE posts SET title = $1, content = $2, updated_at = NOW() WHERE id = $3`

	result, err := querier.ExecContext(ctx, query, post.Title, post.Content, post.ID)
	if err != nil {
		return apperrors.Wrap(err, "failed to update post")
	}
	return checkAffected(result, domain.ErrPostNotFound)
}

// DeletePost removes a post. Comments go with it via ON DELETE CASCADE.
func (r *PostgreSQLPostRepository) DeletePost(ctx context.Context, id int64) error {
	querier := database.GetTx(ctx, r.db)

	result, err := querier.ExecContext(ctx, `DELETE FROM posts WHERE id = $1`, id)
	if err != nil {
		return apperrors.Wrap(err, "failed to delete post")
	}
	return checkAffected(result, domain.ErrPostNotFound)
}

// CountPosts returns the number of stored posts.
func (r *PostgreSQLPostRepository) CountPosts(ctx context.Context) (int64, error) {
	querier := database.GetTx(ctx, r.db)

	var count int64
	if err := querier.QueryRowContext(ctx, `SELECT COUNT(*) FROM posts`).Scan(&count); err != nil {
		return 0, apperrors.Wrap(err, "failed to count posts")
	}
	return count, nil
}

// CreateComment inserts a new comment and fills in its generated id.
func (r *PostgreSQLPostRepository) CreateComment(ctx context.Context, comment *domain.Comment) error {
	querier := database.GetTx(ctx, r.db)

	query := `INSERT INTO post_comments (post_id, author_id, content, created_at, updated_at)
			  VALUES ($1, $2, $3, NOW(), NOW())
			  RETURNING id`

	err := querier.QueryRowContext(ctx, query, comment.PostID, comment.AuthorID, comment.Content).Scan(&comment.ID)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrPostNotFound
		}
		return apperrors.Wrap(err, "failed to create comment")
	}
	return nil
}

// GetComment retrieves a comment by id within a post.
func (r *PostgreSQLPostRepository) GetComment(ctx context.Context, postID, commentID int64) (*domain.Comment, error) {
	querier := database.GetTx(ctx, r.db)

	query := `SELECT c.id, c.post_id, c.author_id, a.nickname, c.content, c.created_at, c.updated_at
			  FROM post_comments c JOIN accounts a ON a.id = c.author_id
			  WHERE c.id = $1 AND c.post_id = $2`

	var comment domain.Comment
	err := querier.QueryRowContext(ctx, query, commentID, postID).Scan(
		&comment.ID, &comment.PostID, &comment.AuthorID, &comment.AuthorName,
		&comment.Content, &comment.CreatedAt, &comment.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrCommentNotFound
		}
		return nil, apperrors.Wrap(err, "failed to get comment")
	}

	return &comment, nil
}

// ListComments retrieves a post's comments oldest-first.
func (r *PostgreSQLPostRepository) ListComments(ctx context.Context, postID int64) ([]*domain.Comment, error) {
	querier := database.GetTx(ctx, r.db)

	query := `SELECT c.id, c.post_id, c.author_id, a.nickname, c.content, c.created_at, c.updated_at
			  FROM post_comments c JOIN accounts a ON a.id = c.author_id
			  WHERE c.post_id = $1
			  ORDER BY c.id ASC`

	rows, err := querier.QueryContext(ctx, query, postID)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list comments")
	}
	defer func() { _ = rows.Close() }()

	comments := make([]*domain.Comment, 0)
	for rows.Next() {
		var comment domain.Comment
		if err := rows.Scan(
			&comment.ID, &comment.PostID, &comment.AuthorID, &comment.AuthorName,
			&comment.Content, &comment.CreatedAt, &comment.UpdatedAt,
		); err != nil {
			return nil, apperrors.Wrap(err, "failed to scan comment")
		}
		comments = append(comments, &comment)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.Wrap(err, "failed to iterate comments")
	}

	return comments, nil
}

// UpdateComment persists the comment content.
func (r *PostgreSQLPostRepository) UpdateComment(ctx context.Context, comment *domain.Comment) error {
	querier := database.GetTx(ctx, r.db)

	query := `UPDATE post_comments SET content = $1, updated_at = NOW() WHERE id = $2`

	result, err := querier.ExecContext(ctx, query, comment.Content, comment.ID)
	if err != nil {
		return apperrors.Wrap(err, "failed to update comment")
	}
	return checkAffected(result, domain.ErrCommentNotFound)
}

// DeleteComment removes a comment.
func (r *PostgreSQLPostRepository) DeleteComment(ctx context.Context, id int64) error {
	querier := database.GetTx(ctx, r.db)

	result, err := querier.ExecContext(ctx, `DELETE FROM post_comments WHERE id = $1`, id)
	if err != nil {
		return apperrors.Wrap(err, "failed to delete comment")
	}
	return checkAffected(result, domain.ErrCommentNotFound)
}

// checkAffected translates a zero-row write into the given not-found error.
func checkAffected(result sql.Result, notFound error) error {
	rows, err := result.RowsAffected()
	if err != nil {
		return apperrors.Wrap(err, "failed to check affected rows")
	}
	if rows == 0 {
		return notFound
	}
	return nil
}

// isForeignKeyViolation checks if the error is a foreign key constraint violation.
func isForeignKeyViolation(err error) bool {
	if err == nil {
		return false
	}
	errMsg := strings.ToLower(err.Error())
	return strings.Contains(errMsg, "foreign key")
}
