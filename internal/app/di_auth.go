package app

import (
	"fmt"

	"github.com/gin-gonic/gin"

	authHTTP "github.com/restboard/restboard/internal/auth/http"
	authService "github.com/restboard/restboard/internal/auth/service"
	authUsecase "github.com/restboard/restboard/internal/auth/usecase"
)

// publicPaths are the credential-exempt endpoints under the protected prefix.
var publicPaths = []string{
	"/api/v1/accounts",
	"/api/v1/accounts/login",
	"/api/v1/accounts/logout",
}

// TokenCodec returns the signed access token codec.
func (c *Container) TokenCodec() (authService.TokenCodec, error) {
	c.tokenCodecInit.Do(func() {
		c.tokenCodec = authService.NewTokenCodec(c.config.JWTSecretKey)
	})
	return c.tokenCodec, nil
}

// Resolver returns the principal resolver.
func (c *Container) Resolver() (authUsecase.Resolver, error) {
	var err error
	c.resolverInit.Do(func() {
		c.resolver, err = c.initResolver()
		if err != nil {
			c.initErrors["resolver"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["resolver"]; exists {
		return nil, storedErr
	}
	return c.resolver, nil
}

// AuthenticationMiddleware builds the request authentication middleware.
func (c *Container) AuthenticationMiddleware() (gin.HandlerFunc, error) {
	resolver, err := c.Resolver()
	if err != nil {
		return nil, fmt.Errorf("failed to get resolver for authentication middleware: %w", err)
	}

	codec, err := c.TokenCodec()
	if err != nil {
		return nil, fmt.Errorf("failed to get token codec for authentication middleware: %w", err)
	}

	return authHTTP.AuthenticationMiddleware(resolver, codec, authHTTP.MiddlewareConfig{
		ProtectedPrefix: "/api/",
		PublicPaths:     publicPaths,
		TokenTTL:        c.config.AccessTokenExpiration,
	}, c.Logger()), nil
}

// rateLimitMiddleware builds the per-account rate limiting middleware, or nil
// when rate limiting is disabled.
func (c *Container) rateLimitMiddleware() gin.HandlerFunc {
	if !c.config.RateLimitEnabled {
		return nil
	}
	return authHTTP.RateLimitMiddleware(
		c.config.RateLimitRequestsPerSec,
		c.config.RateLimitBurst,
		c.Logger(),
	)
}

// initResolver creates the principal resolver with its account lookup.
func (c *Container) initResolver() (authUsecase.Resolver, error) {
	codec, err := c.TokenCodec()
	if err != nil {
		return nil, fmt.Errorf("failed to get token codec for resolver: %w", err)
	}

	accountRepo, err := c.AccountRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get account repository for resolver: %w", err)
	}

	return authUsecase.NewResolver(codec, accountRepo), nil
}
