package dto

import (
	"time"

	"github.com/restboard/restboard/internal/post/domain"
)

// PostResponse is the API representation of a post.
type PostResponse struct {
	ID         int64     `json:"id"`
	AuthorID   int64     `json:"authorId"`
	AuthorName string    `json:"authorName"`
	Title      string    `json:"title"`
	Content    string    `json:"content"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

// PostListResponse is the paginated list of posts.
type PostListResponse struct {
	Posts []PostResponse `json:"posts"`
	Total int64          `json:"total"`
}

// CommentResponse is the API representation of a comment.
type CommentResponse struct {
	ID         int64     `json:"id"`
	PostID     int64     `json:"postId"`
	AuthorID   int64     `json:"authorId"`
	AuthorName string    `json:"authorName"`
	Content    string    `json:"content"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

// CommentListResponse is the list of a post's comments.
type CommentListResponse struct {
	Comments []CommentResponse `json:"comments"`
}

// MapPostToResponse converts a domain post to its API representation.
func MapPostToResponse(post *domain.Post) PostResponse {
	return PostResponse{
		ID:         post.ID,
		AuthorID:   post.AuthorID,
		AuthorName: post.AuthorName,
		Title:      post.Title,
		Content:    post.Content,
		CreatedAt:  post.CreatedAt,
		UpdatedAt:  post.UpdatedAt,
	}
}

// MapPostsToListResponse converts domain posts to a paginated API response.
func MapPostsToListResponse(posts []*domain.Post, total int64) PostListResponse {
	items := make([]PostResponse, len(posts))
	for i, post := range posts {
		items[i] = MapPostToResponse(post)
	}
	return PostListResponse{Posts: items, Total: total}
}

// MapCommentToResponse converts a domain comment to its API representation.
func MapCommentToResponse(comment *domain.Comment) CommentResponse {
	return CommentResponse{
		ID:         comment.ID,
		PostID:     comment.PostID,
		AuthorID:   comment.AuthorID,
		AuthorName: comment.AuthorName,
		Content:    comment.Content,
		CreatedAt:  comment.CreatedAt,
		UpdatedAt:  comment.UpdatedAt,
	}
}

// MapCommentsToListResponse converts domain comments to an API response.
func MapCommentsToListResponse(comments []*domain.Comment) CommentListResponse {
	items := make([]CommentResponse, len(comments))
	for i, comment := range comments {
		items[i] = MapCommentToResponse(comment)
	}
	return CommentListResponse{Comments: items}
}
