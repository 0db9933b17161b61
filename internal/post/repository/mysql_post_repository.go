package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/restboard/restboard/internal/database"
	"github.com/restboard/restboard/internal/post/domain"

	apperrors "github.com/restboard/restboard/internal/errors"
)

// MySQLPostRepository handles post and comment persistence for MySQL.
type MySQLPostRepository struct {
	db *sql.DB
}

// NewMySQLPostRepository creates a new MySQLPostRepository.
func NewMySQLPostRepository(db *sql.DB) *MySQLPostRepository {
	return &MySQLPostRepository{
		db: db,
	}
}

// CreatePost inserts a new post and fills in its generated id.
func (r *MySQLPostRepository) CreatePost(ctx context.Context, post *domain.Post) error {
	querier := database.GetTx(ctx, r.db)

	query := `INSERT INTO posts (author_id, title, content, created_at, updated_at)
			  VALUES (?, ?, ?, NOW(), NOW())`

	result, err := querier.ExecContext(ctx, query, post.AuthorID, post.Title, post.Content)
	if err != nil {
		return apperrors.Wrap(err, "failed to create post")
	}

	id, err := result.LastInsertId()
	if err != nil {
		return apperrors.Wrap(err, "failed to get post id")
	}
	post.ID = id
	return nil
}

// GetPost retrieves a post by id, including the author's nickname.
func (r *MySQLPostRepository) GetPost(ctx context.Context, id int64) (*domain.Post, error) {
	querier := database.GetTx(ctx, r.db)

	query := `SELECT p.id, p.author_id, a.nickname, p.title, p.content, p.created_at, p.updated_at
			  FROM posts p JOIN accounts a ON a.id = p.author_id
			  WHERE p.id = ?`

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
func (r *MySQLPostRepository) ListPosts(ctx context.Context, offset, limit int) ([]*domain.Post, error) {
	querier := database.GetTx(ctx, r.db)

	query := `SELECT p.id, p.author_id, a.nickname, p.title, p.content, p.created_at, p.updated_at
			  FROM posts p JOIN accounts a ON a.id = p.author_id
			  ORDER BY p.id DESC
			  LIMIT ? OFFSET ?`

	rows, err := querier.QueryContext(ctx, query, limit, offset)
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
func (r *MySQLPostRepository) UpdatePost(ctx context.Context, post *domain.Post) error {
	querier := database.GetTx(ctx, r.db)

	query := `UPDATE posts SET title = ?, content = ?, updated_at = NOW() WHERE id = ?`

	result, err := querier.ExecContext(ctx, query, post.Title, post.Content, post.ID)
	if err != nil {
		return apperrors.Wrap(err, "failed to update post")
	}
	return checkAffected(result, domain.ErrPostNotFound)
}

// DeletePost removes a post. Comments go with it via ON DELETE CASCADE.
func (r *MySQLPostRepository) DeletePost(ctx context.Context, id int64) error {
	querier := database.GetTx(ctx, r.db)

	result, err := querier.ExecContext(ctx, `DELETE FROM posts WHERE id = ?`, id)
	if err != nil {
		return apperrors.Wrap(err, "failed to delete post")
	}
	return checkAffected(result, domain.ErrPostNotFound)
}

// CountPosts returns the number of stored posts.
func (r *MySQLPostRepository) CountPosts(ctx context.Context) (int64, error) {
	querier := database.GetTx(ctx, r.db)

	var count int64
	if err := querier.QueryRowContext(ctx, `SELECT COUNT(*) FROM posts`).Scan(&count); err != nil {
		return 0, apperrors.Wrap(err, "failed to count posts")
	}
	return count, nil
}

// CreateComment inserts a new comment and fills in its generated id.
func (r *MySQLPostRepository) CreateComment(ctx context.Context, comment *domain.Comment) error {
	querier := database.GetTx(ctx, r.db)

	query := `INSERT INTO post_comments (post_id, author_id, content, created_at, updated_at)
			  VALUES (?, ?, ?, NOW(), NOW())`

	result, err := querier.ExecContext(ctx, query, comment.PostID, comment.AuthorID, comment.Content)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrPostNotFound
		}
		return apperrors.Wrap(err, "failed to create comment")
	}

	id, err := result.LastInsertId()
	if err != nil {
		return apperrors.Wrap(err, "failed to get comment id")
	}
	comment.ID = id
	return nil
}

// GetComment retrieves a comment by id within a post.
func (r *MySQLPostRepository) GetComment(ctx context.Context, postID, commentID int64) (*domain.Comment, error) {
	querier := database.GetTx(ctx, r.db)

	query := `SELECT c.id, c.post_id, c.author_id, a.nickname, c.content, c.created_at, c.updated_at
			  FROM post_comments c JOIN accounts a ON a.id = c.author_id
			  WHERE c.id = ? AND c.post_id = ?`

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
func (r *MySQLPostRepository) ListComments(ctx context.Context, postID int64) ([]*domain.Comment, error) {
	querier := database.GetTx(ctx, r.db)

	query := `SELECT c.id, c.post_id, c.author_id, a.nickname, c.content, c.created_at, c.updated_at
			  FROM post_comments c JOIN accounts a ON a.id = c.author_id
			  WHERE c.post_id = ?
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
func (r *MySQLPostRepository) UpdateComment(ctx context.Context, comment *domain.Comment) error {
	querier := database.GetTx(ctx, r.db)

	query := `UPDATE post_comments SET content = ?, updated_at = NOW() WHERE id = ?`

	result, err := querier.ExecContext(ctx, query, comment.Content, comment.ID)
	if err != nil {
		return apperrors.Wrap(err, "failed to update comment")
	}
	return checkAffected(result, domain.ErrCommentNotFound)
}

// DeleteComment removes a comment.
func (r *MySQLPostRepository) DeleteComment(ctx context.Context, id int64) error {
	querier := database.GetTx(ctx, r.db)

	result, err := querier.ExecContext(ctx, `DELETE FROM post_comments WHERE id = ?`, id)
	if err != nil {
		return apperrors.Wrap(err, "failed to delete comment")
	}
	return checkAffected(result, domain.ErrCommentNotFound)
}
