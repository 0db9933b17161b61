// Package http provides the HTTP server, router assembly and operational endpoints.
package http

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	accountHTTP "github.com/restboard/restboard/internal/account/http"
	oauthHTTP "github.com/restboard/restboard/internal/oauth/http"
	postHTTP "github.com/restboard/restboard/internal/post/http"
)

// RouteConfig bundles the handlers and cross-cutting middleware needed to
// assemble the API routes.
type RouteConfig struct {
	AccountHandler *accountHTTP.AccountHandler
	OAuthHandler   *oauthHTTP.OAuthHandler
	PostHandler    *postHTTP.PostHandler

	// AuthMiddleware establishes the request identity for everything under
	// the protected prefix. Required.
	AuthMiddleware gin.HandlerFunc
	// RateLimitMiddleware limits authenticated requests per account. Optional.
	RateLimitMiddleware gin.HandlerFunc
	// MetricsMiddleware records HTTP request metrics. Optional.
	MetricsMiddleware gin.HandlerFunc

	CORSEnabled      bool
	CORSAllowOrigins string
}

// Server represents the HTTP server.
type Server struct {
	server *http.Server
	router *gin.Engine
	db     *sql.DB
	logger *slog.Logger
}

// NewServer creates a new HTTP server with the base middleware stack
// (recovery, request id, logging) and the operational endpoints. API routes
// are attached separately via SetupRoutes.
func NewServer(
	db *sql.DB,
	host string,
	port int,
	logger *slog.Logger,
) *Server {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(requestid.New(requestid.WithGenerator(func() string {
		return uuid.Must(uuid.NewV7()).String()
	})))
	router.Use(CustomLoggerMiddleware(logger))

	server := &Server{
		router: router,
		db:     db,
		logger: logger,
		server: &http.Server{
			Addr:         fmt.Sprintf("%s:%d", host, port),
			Handler:      router,
			ReadTimeout:  15 * time.Second,
			WriteTimeout: 15 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
	}

	router.GET("/health", server.healthHandler)
	router.GET("/ready", server.readinessHandler)

	return server
}

// SetupRoutes attaches the cross-cutting middleware and API routes.
func (s *Server) SetupRoutes(cfg RouteConfig) {
	if corsMiddleware := createCORSMiddleware(cfg.CORSEnabled, cfg.CORSAllowOrigins, s.logger); corsMiddleware != nil {
		s.router.Use(corsMiddleware)
	}
	if cfg.MetricsMiddleware != nil {
		s.router.Use(cfg.MetricsMiddleware)
	}
	s.router.Use(cfg.AuthMiddleware)
	if cfg.RateLimitMiddleware != nil {
		s.router.Use(cfg.RateLimitMiddleware)
	}

	// Federated login endpoints live outside the protected prefix: the
	// browser reaches them before it has any credential.
	s.router.GET("/oauth2/authorization/:provider", cfg.OAuthHandler.AuthorizeHandler)
	s.router.GET("/oauth2/callback/:provider", cfg.OAuthHandler.CallbackHandler)

	v1 := s.router.Group("/api/v1")
	{
		accounts := v1.Group("/accounts")
		{
			accounts.POST("", cfg.AccountHandler.JoinHandler)
			accounts.POST("/login", cfg.AccountHandler.LoginHandler)
			accounts.POST("/logout", cfg.AccountHandler.LogoutHandler)
			accounts.GET("/me", cfg.AccountHandler.MeHandler)
		}

		posts := v1.Group("/posts")
		{
			posts.GET("", cfg.PostHandler.ListPostsHandler)
			posts.POST("", cfg.PostHandler.CreatePostHandler)
			posts.GET("/:id", cfg.PostHandler.GetPostHandler)
			posts.PUT("/:id", cfg.PostHandler.UpdatePostHandler)
			posts.DELETE("/:id", cfg.PostHandler.DeletePostHandler)
			posts.GET("/:id/comments", cfg.PostHandler.ListCommentsHandler)
			posts.POST("/:id/comments", cfg.PostHandler.CreateCommentHandler)
			posts.PUT("/:id/comments/:commentId", cfg.PostHandler.UpdateCommentHandler)
			posts.DELETE("/:id/comments/:commentId", cfg.PostHandler.DeleteCommentHandler)
		}
	}
}

// GetHandler returns the http.Handler for testing purposes.
func (s *Server) GetHandler() http.Handler {
	return s.router
}

// Start starts the HTTP server.
func (s *Server) Start(ctx context.Context) error {
	s.logger.Info("starting http server", slog.String("addr", s.server.Addr))

	if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("failed to start server: %w", err)
	}

	return nil
}

// Shutdown gracefully shuts down the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("shutting down http server")
	return s.server.Shutdown(ctx)
}

// healthHandler reports process liveness.
func (s *Server) healthHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "healthy"})
}

// readinessHandler reports whether the server can serve traffic, checking
// each dependent component.
func (s *Server) readinessHandler(c *gin.Context) {
	components := gin.H{}
	status := "ready"
	statusCode := http.StatusOK

	if s.db == nil {
		components["database"] = "error"
		status = "not_ready"
		statusCode = http.StatusServiceUnavailable
	} else if err := s.db.PingContext(c.Request.Context()); err != nil {
		s.logger.Error("readiness check failed", slog.Any("error", err))
		components["database"] = "error"
		status = "not_ready"
		statusCode = http.StatusServiceUnavailable
	} else {
		components["database"] = "ok"
	}

	c.JSON(statusCode, gin.H{
		"status":     status,
		"components": components,
	})
}
