// Package domain defines the post and comment domain entities.
package domain

import (
	"time"

	"github.com/restboard/restboard/internal/errors"
)

// Post represents a board post.
// AuthorName is denormalized from the author account on read.
type Post struct {
	ID         int64
	AuthorID   int64
	AuthorName string
	Title      string
	Content    string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// Comment represents a comment on a post.
type Comment struct {
	ID         int64
	PostID     int64
	AuthorID   int64
	AuthorName string
	Content    string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// Domain-specific errors for post operations.
var (
	// ErrPostNotFound indicates the requested post does not exist.
	ErrPostNotFound = errors.Wrap(errors.ErrNotFound, "post not found")

	// ErrCommentNotFound indicates the requested comment does not exist.
	ErrCommentNotFound = errors.Wrap(errors.ErrNotFound, "comment not found")

	// ErrNotAuthor indicates the caller is neither the author nor an admin.
	ErrNotAuthor = errors.Wrap(errors.ErrForbidden, "only the author can do this")
)
