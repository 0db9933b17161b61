// Package http provides HTTP handlers for account management operations.
package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/restboard/restboard/internal/account/http/dto"
	accountUseCase "github.com/restboard/restboard/internal/account/usecase"
	authHTTP "github.com/restboard/restboard/internal/auth/http"
	apperrors "github.com/restboard/restboard/internal/errors"
	"github.com/restboard/restboard/internal/httputil"
	customValidation "github.com/restboard/restboard/internal/validation"
)

// AccountHandler handles HTTP requests for account operations.
type AccountHandler struct {
	accountUseCase accountUseCase.UseCase
	tokenTTL       time.Duration
	logger         *slog.Logger
}

// NewAccountHandler creates a new account handler with required dependencies.
func NewAccountHandler(
	accountUseCase accountUseCase.UseCase,
	tokenTTL time.Duration,
	logger *slog.Logger,
) *AccountHandler {
	return &AccountHandler{
		accountUseCase: accountUseCase,
		tokenTTL:       tokenTTL,
		logger:         logger,
	}
}

// JoinHandler creates a new native account.
// POST /api/v1/accounts - public endpoint.
// Returns 201 Created with the account data.
func (h *AccountHandler) JoinHandler(c *gin.Context) {
	var req dto.JoinRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	account, err := h.accountUseCase.Register(c.Request.Context(), accountUseCase.RegisterInput{
		Username: req.Username,
		Password: req.Password,
		Nickname: req.Nickname,
	})
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusCreated, dto.MapAccountToResponse(account))
}

// LoginHandler authenticates a native account.
// POST /api/v1/accounts/login - public endpoint.
// Returns 200 OK with the credential pair and sets the credential cookies.
func (h *AccountHandler) LoginHandler(c *gin.Context) {
	var req dto.LoginRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	output, err := h.accountUseCase.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	authHTTP.SetAPIKeyCookie(c, output.APIKey)
	authHTTP.SetAccessTokenCookie(c, output.AccessToken, h.tokenTTL)

	c.JSON(http.StatusOK, dto.LoginResponse{
		Account:     dto.MapAccountToResponse(output.Account),
		APIKey:      output.APIKey,
		AccessToken: output.AccessToken,
	})
}

// LogoutHandler discards the client's credentials.
// POST /api/v1/accounts/logout - public endpoint.
// Tokens are stateless, so logout is purely client-side: clear the cookies.
func (h *AccountHandler) LogoutHandler(c *gin.Context) {
	authHTTP.ClearCredentialCookies(c)
	c.JSON(http.StatusOK, gin.H{"message": "logged out"})
}

// MeHandler returns the authenticated account.
// GET /api/v1/accounts/me - requires an authenticated principal.
func (h *AccountHandler) MeHandler(c *gin.Context) {
	principal, ok := authHTTP.GetPrincipal(c.Request.Context())
	if !ok {
		httputil.HandleErrorGin(c, apperrors.ErrUnauthorized, h.logger)
		return
	}

	account, err := h.accountUseCase.GetByID(c.Request.Context(), principal.ID)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapAccountToResponse(account))
}
