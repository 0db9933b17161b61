// Package http provides HTTP handlers for post and comment endpoints.
package http

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	authDomain "github.com/restboard/restboard/internal/auth/domain"
	authHTTP "github.com/restboard/restboard/internal/auth/http"
	"github.com/restboard/restboard/internal/httputil"
	"github.com/restboard/restboard/internal/post/http/dto"
	"github.com/restboard/restboard/internal/post/usecase"
)

// PostHandler handles HTTP requests for post and comment operations.
type PostHandler struct {
	postUseCase usecase.UseCase
	logger      *slog.Logger
}

// NewPostHandler creates a new PostHandler.
func NewPostHandler(postUseCase usecase.UseCase, logger *slog.Logger) *PostHandler {
	return &PostHandler{
		postUseCase: postUseCase,
		logger:      logger,
	}
}

// ListPostsHandler handles GET /api/v1/posts requests.
func (h *PostHandler) ListPostsHandler(c *gin.Context) {
	offset, limit, err := httputil.ParsePagination(c)
	if err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	posts, total, err := h.postUseCase.ListPosts(c.Request.Context(), offset, limit)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapPostsToListResponse(posts, total))
}

// GetPostHandler handles GET /api/v1/posts/:id requests.
func (h *PostHandler) GetPostHandler(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	post, err := h.postUseCase.GetPost(c.Request.Context(), id)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapPostToResponse(post))
}

// CreatePostHandler handles POST /api/v1/posts requests.
func (h *PostHandler) CreatePostHandler(c *gin.Context) {
	actor, ok := requirePrincipal(c)
	if !ok {
		return
	}

	var req dto.PostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	post, err := h.postUseCase.CreatePost(c.Request.Context(), actor, req.ToInput())
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusCreated, dto.MapPostToResponse(post))
}

// UpdatePostHandler handles PUT /api/v1/posts/:id requests.
func (h *PostHandler) UpdatePostHandler(c *gin.Context) {
	actor, ok := requirePrincipal(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req dto.PostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	post, err := h.postUseCase.UpdatePost(c.Request.Context(), actor, id, req.ToInput())
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapPostToResponse(post))
}

// DeletePostHandler handles DELETE /api/v1/posts/:id requests.
func (h *PostHandler) DeletePostHandler(c *gin.Context) {
	actor, ok := requirePrincipal(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	if err := h.postUseCase.DeletePost(c.Request.Context(), actor, id); err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.Status(http.StatusNoContent)
}

// ListCommentsHandler handles GET /api/v1/posts/:id/comments requests.
func (h *PostHandler) ListCommentsHandler(c *gin.Context) {
	postID, ok := pathID(c, "id")
	if !ok {
		return
	}

	comments, err := h.postUseCase.ListComments(c.Request.Context(), postID)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapCommentsToListResponse(comments))
}

// CreateCommentHandler handles POST /api/v1/posts/:id/comments requests.
func (h *PostHandler) CreateCommentHandler(c *gin.Context) {
	actor, ok := requirePrincipal(c)
	if !ok {
		return
	}
	postID, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req dto.CommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	comment, err := h.postUseCase.CreateComment(c.Request.Context(), actor, postID, req.ToInput())
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusCreated, dto.MapCommentToResponse(comment))
}

// UpdateCommentHandler handles PUT /api/v1/posts/:id/comments/:commentId requests.
func (h *PostHandler) UpdateCommentHandler(c *gin.Context) {
	actor, ok := requirePrincipal(c)
	if !ok {
		return
	}
	postID, ok := pathID(c, "id")
	if !ok {
		return
	}
	commentID, ok := pathID(c, "commentId")
	if !ok {
		return
	}

	var req dto.CommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	comment, err := h.postUseCase.UpdateComment(c.Request.Context(), actor, postID, commentID, req.ToInput())
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapCommentToResponse(comment))
}

// DeleteCommentHandler handles DELETE /api/v1/posts/:id/comments/:commentId requests.
func (h *PostHandler) DeleteCommentHandler(c *gin.Context) {
	actor, ok := requirePrincipal(c)
	if !ok {
		return
	}
	postID, ok := pathID(c, "id")
	if !ok {
		return
	}
	commentID, ok := pathID(c, "commentId")
	if !ok {
		return
	}

	if err := h.postUseCase.DeleteComment(c.Request.Context(), actor, postID, commentID); err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.Status(http.StatusNoContent)
}

// requirePrincipal aborts with 401 when the request carries no authenticated principal.
func requirePrincipal(c *gin.Context) (authDomain.Principal, bool) {
	p, found := authHTTP.GetPrincipal(c.Request.Context())
	if !found {
		c.JSON(
			http.StatusUnauthorized,
			httputil.NewErrorResponse(http.StatusUnauthorized, "unauthorized", "Authentication is required"),
		)
		return authDomain.Principal{}, false
	}
	return *p, true
}

// pathID parses a numeric path parameter, writing a 400 response on failure.
func pathID(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil {
		c.JSON(
			http.StatusBadRequest,
			httputil.NewErrorResponse(http.StatusBadRequest, "bad_request", "invalid "+name+" path parameter"),
		)
		return 0, false
	}
	return id, true
}
