// Package http provides HTTP handlers for the federated login round trip.
package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	authHTTP "github.com/restboard/restboard/internal/auth/http"
	"github.com/restboard/restboard/internal/httputil"
	oauthUseCase "github.com/restboard/restboard/internal/oauth/usecase"
)

// OAuthHandler handles the browser-facing endpoints of federated login.
type OAuthHandler struct {
	useCase  oauthUseCase.FederatedLoginUseCase
	tokenTTL time.Duration
	logger   *slog.Logger
}

// NewOAuthHandler creates a new OAuthHandler.
func NewOAuthHandler(
	useCase oauthUseCase.FederatedLoginUseCase,
	tokenTTL time.Duration,
	logger *slog.Logger,
) *OAuthHandler {
	return &OAuthHandler{
		useCase:  useCase,
		tokenTTL: tokenTTL,
		logger:   logger,
	}
}

// AuthorizeHandler starts a federated login.
// GET /oauth2/authorization/:provider?redirectUrl=/dashboard
// Redirects the browser to the provider's authorization endpoint with the
// custom state value carrying the desired post-login destination.
func (h *OAuthHandler) AuthorizeHandler(c *gin.Context) {
	url, err := h.useCase.AuthorizeURL(c.Param("provider"), c.Query("redirectUrl"))
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.Redirect(http.StatusFound, url)
}

// CallbackHandler finishes a federated login.
// GET /oauth2/callback/:provider?code=...&state=...
// Sets the credential cookies (long-lived API key plus fresh access token)
// and redirects the browser to the destination recovered from the state.
func (h *OAuthHandler) CallbackHandler(c *gin.Context) {
	result, err := h.useCase.HandleCallback(
		c.Request.Context(),
		c.Param("provider"),
		c.Query("code"),
		c.Query("state"),
	)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	authHTTP.SetAPIKeyCookie(c, result.Account.APIKey)
	authHTTP.SetAccessTokenCookie(c, result.AccessToken, h.tokenTTL)

	c.Redirect(http.StatusFound, result.RedirectTarget)
}
