package app

import (
	"fmt"

	oauthHTTP "github.com/restboard/restboard/internal/oauth/http"
	oauthService "github.com/restboard/restboard/internal/oauth/service"
	oauthUsecase "github.com/restboard/restboard/internal/oauth/usecase"
)

// ProviderClient returns the federated login provider client.
func (c *Container) ProviderClient() (oauthService.ProviderClient, error) {
	c.providerClientInit.Do(func() {
		c.providerClient = oauthService.NewProviderClient(
			c.config.OAuthRedirectBaseURL,
			c.config.OAuthKakao,
			c.config.OAuthGoogle,
			c.config.OAuthNaver,
		)
	})
	return c.providerClient, nil
}

// FederatedLoginUseCase returns the federated login use case instance.
func (c *Container) FederatedLoginUseCase() (oauthUsecase.FederatedLoginUseCase, error) {
	var err error
	c.federatedLoginUseCaseInit.Do(func() {
		c.federatedLoginUseCase, err = c.initFederatedLoginUseCase()
		if err != nil {
			c.initErrors["federatedLoginUseCase"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["federatedLoginUseCase"]; exists {
		return nil, storedErr
	}
	return c.federatedLoginUseCase, nil
}

// OAuthHandler returns the federated login HTTP handler instance.
func (c *Container) OAuthHandler() (*oauthHTTP.OAuthHandler, error) {
	var err error
	c.oauthHandlerInit.Do(func() {
		c.oauthHandler, err = c.initOAuthHandler()
		if err != nil {
			c.initErrors["oauthHandler"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["oauthHandler"]; exists {
		return nil, storedErr
	}
	return c.oauthHandler, nil
}

// initFederatedLoginUseCase creates the federated login use case with all its dependencies.
func (c *Container) initFederatedLoginUseCase() (oauthUsecase.FederatedLoginUseCase, error) {
	providerClient, err := c.ProviderClient()
	if err != nil {
		return nil, fmt.Errorf("failed to get provider client for federated login use case: %w", err)
	}

	accountUseCase, err := c.AccountUseCase()
	if err != nil {
		return nil, fmt.Errorf("failed to get account use case for federated login use case: %w", err)
	}

	codec, err := c.TokenCodec()
	if err != nil {
		return nil, fmt.Errorf("failed to get token codec for federated login use case: %w", err)
	}

	useCase := oauthUsecase.NewFederatedLoginUseCase(
		providerClient,
		accountUseCase,
		codec,
		c.config.AccessTokenExpiration,
		c.Logger(),
	)

	businessMetrics, err := c.BusinessMetrics()
	if err != nil {
		return nil, fmt.Errorf("failed to get business metrics for federated login use case: %w", err)
	}

	return oauthUsecase.NewFederatedLoginUseCaseWithMetrics(useCase, businessMetrics), nil
}

// initOAuthHandler creates the federated login HTTP handler.
func (c *Container) initOAuthHandler() (*oauthHTTP.OAuthHandler, error) {
	useCase, err := c.FederatedLoginUseCase()
	if err != nil {
		return nil, fmt.Errorf("failed to get federated login use case for oauth handler: %w", err)
	}

	return oauthHTTP.NewOAuthHandler(useCase, c.config.AccessTokenExpiration, c.Logger()), nil
}
