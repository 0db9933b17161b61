// Package dto contains data transfer objects for post HTTP requests and responses.
package dto

import "github.com/restboard/restboard/internal/post/usecase"

// PostRequest is the request body for creating or updating a post.
type PostRequest struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

// ToInput converts the request into a use case input.
func (r PostRequest) ToInput() usecase.CreatePostInput {
	return usecase.CreatePostInput{
		Title:   r.Title,
		Content: r.Content,
	}
}

// CommentRequest is the request body for creating or updating a comment.
type CommentRequest struct {
	Content string `json:"content"`
}

// ToInput converts the request into a use case input.
func (r CommentRequest) ToInput() usecase.CreateCommentInput {
	return usecase.CreateCommentInput{
		Content: r.Content,
	}
}
