package http

import (
	"log/slog"
	"net/http"
	"slices"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	authDomain "github.com/restboard/restboard/internal/auth/domain"
	authService "github.com/restboard/restboard/internal/auth/service"
	authUseCase "github.com/restboard/restboard/internal/auth/usecase"
	apperrors "github.com/restboard/restboard/internal/errors"
	"github.com/restboard/restboard/internal/httputil"
)

// MiddlewareConfig controls which requests the authentication middleware touches.
type MiddlewareConfig struct {
	// ProtectedPrefix is the path prefix under which credentials are resolved.
	// Requests outside it pass through untouched.
	ProtectedPrefix string
	// PublicPaths are credential-exempt endpoints under the protected prefix
	// (login, logout, account creation).
	PublicPaths []string
	// TokenTTL is the lifetime of access tokens minted on transparent refresh.
	TokenTTL time.Duration
}

// AuthenticationMiddleware establishes the request identity for every inbound
// request under the protected prefix.
//
// Per request it runs extraction → resolution → context establishment:
//
//  1. Requests outside ProtectedPrefix or on a public path pass through.
//  2. Requests without any credential pass through anonymously; endpoints
//     tolerate anonymous callers and downstream authorization is the
//     handler's concern.
//  3. A malformed Authorization header or an unresolvable credential rejects
//     the request with a structured error body; no downstream handler runs.
//  4. When resolution succeeded via the API key (the presented token was
//     absent, expired or tampered), a replacement token is minted and attached
//     to the response as both a cookie and an Authorization header, so the
//     client transparently re-acquires a valid token.
//  5. The resolved principal is attached to the request context; handlers
//     receive it via GetPrincipal.
func AuthenticationMiddleware(
	resolver authUseCase.Resolver,
	codec authService.TokenCodec,
	cfg MiddlewareConfig,
	logger *slog.Logger,
) gin.HandlerFunc {
	return func(c *gin.Context) {
		path := c.Request.URL.Path

		if !strings.HasPrefix(path, cfg.ProtectedPrefix) {
			c.Next()
			return
		}

		if slices.Contains(cfg.PublicPaths, path) {
			c.Next()
			return
		}

		apiKey, accessToken, err := authService.ExtractCredentials(c.Request)
		if err != nil {
			logger.Debug("authentication failed: malformed authorization header",
				slog.String("path", path))
			reject(c, err, logger)
			return
		}

		if apiKey == "" && accessToken == "" {
			// No credential at all: the request proceeds anonymously.
			c.Next()
			return
		}

		principal, tokenValid, err := resolver.Resolve(c.Request.Context(), apiKey, accessToken)
		if err != nil {
			logger.Debug("authentication failed",
				slog.String("path", path),
				slog.String("error", err.Error()))
			reject(c, err, logger)
			return
		}

		if !tokenValid {
			// Self-healing refresh: re-anchored via the API key, so hand the
			// client a fresh token before the response is finalized.
			freshToken, issueErr := codec.Issue(authService.TokenClaims{
				AccountID: principal.ID,
				Username:  principal.Username,
				Nickname:  principal.Nickname,
			}, cfg.TokenTTL)
			if issueErr != nil {
				httputil.HandleErrorGin(c, issueErr, logger)
				c.Abort()
				return
			}

			SetAccessTokenCookie(c, freshToken, cfg.TokenTTL)
			c.Header(authDomain.AuthorizationHeaderName, freshToken)

			logger.Debug("access token refreshed",
				slog.Int64("account_id", principal.ID),
				slog.String("username", principal.Username))
		}

		c.Request = c.Request.WithContext(WithPrincipal(c.Request.Context(), principal))

		logger.Debug("authentication successful",
			slog.Int64("account_id", principal.ID),
			slog.String("username", principal.Username),
			slog.Bool("token_valid", tokenValid))

		c.Next()
	}
}

// reject short-circuits the request with a structured error body carrying a
// stable machine-readable code.
func reject(c *gin.Context, err error, logger *slog.Logger) {
	statusCode := http.StatusUnauthorized
	code := "unauthorized"

	switch {
	case apperrors.Is(err, authDomain.ErrMalformedAuthHeader):
		code = "malformed_auth_header"
	case apperrors.Is(err, authDomain.ErrInvalidCredential):
		code = "invalid_credential"
	case !apperrors.Is(err, apperrors.ErrUnauthorized):
		// Store failures and other unexpected errors keep the generic mapping.
		httputil.HandleErrorGin(c, err, logger)
		c.Abort()
		return
	}

	if logger != nil {
		logger.Warn("request rejected",
			slog.Int("status_code", statusCode),
			slog.String("error_code", code),
			slog.Any("error", err),
		)
	}

	c.JSON(statusCode, httputil.NewErrorResponse(statusCode, code, err.Error()))
	c.Abort()
}

// SetAccessTokenCookie attaches a signed access token to the response.
func SetAccessTokenCookie(c *gin.Context, token string, ttl time.Duration) {
	c.SetCookie(authDomain.AccessTokenCookieName, token, int(ttl.Seconds()), "/", "", false, true)
}

// SetAPIKeyCookie attaches the account's long-lived API key to the response.
// The cookie is session-scoped on purpose: the key itself never expires.
func SetAPIKeyCookie(c *gin.Context, apiKey string) {
	c.SetCookie(authDomain.APIKeyCookieName, apiKey, 0, "/", "", false, true)
}

// ClearCredentialCookies removes both credential cookies on logout.
func ClearCredentialCookies(c *gin.Context) {
	c.SetCookie(authDomain.AccessTokenCookieName, "", -1, "/", "", false, true)
	c.SetCookie(authDomain.APIKeyCookieName, "", -1, "/", "", false, true)
}
