// Package service implements the OAuth2 client side of federated login:
// building authorization URLs and exchanging callback codes for user profiles.
package service

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"golang.org/x/oauth2"

	"github.com/restboard/restboard/internal/config"
	oauthDomain "github.com/restboard/restboard/internal/oauth/domain"
	apperrors "github.com/restboard/restboard/internal/errors"
)

// Provider endpoints. Kakao and Naver are not shipped with x/oauth2's
// endpoint catalog, so all three are spelled out here.
var (
	kakaoEndpoint = oauth2.Endpoint{
		AuthURL:  "https://kauth.kakao.com/oauth/authorize",
		TokenURL: "https://kauth.kakao.com/oauth/token",
	}
	googleEndpoint = oauth2.Endpoint{
		AuthURL:  "https://accounts.google.com/o/oauth2/auth",
		TokenURL: "https://oauth2.googleapis.com/token",
	}
	naverEndpoint = oauth2.Endpoint{
		AuthURL:  "https://nid.naver.com/oauth2.0/authorize",
		TokenURL: "https://nid.naver.com/oauth2.0/token",
	}
)

// userInfoURLs are the per-provider user payload endpoints.
var userInfoURLs = map[oauthDomain.Provider]string{
	oauthDomain.ProviderKakao:  "https://kapi.kakao.com/v2/user/me",
	oauthDomain.ProviderGoogle: "https://openidconnect.googleapis.com/v1/userinfo",
	oauthDomain.ProviderNaver:  "https://openapi.naver.com/v1/nid/me",
}

// ProviderClient talks OAuth2 to the external identity providers.
type ProviderClient interface {
	// AuthCodeURL builds the provider authorization redirect URL carrying the
	// given state value in place of any provider-default state.
	AuthCodeURL(provider oauthDomain.Provider, state string) (string, error)

	// FetchProfile exchanges the callback code for an access token and
	// retrieves the provider's raw user payload.
	FetchProfile(ctx context.Context, provider oauthDomain.Provider, code string) (map[string]any, error)
}

// oauth2ProviderClient implements ProviderClient with golang.org/x/oauth2.
type oauth2ProviderClient struct {
	configs map[oauthDomain.Provider]*oauth2.Config
}

// NewProviderClient builds a ProviderClient from the configured provider
// credentials. Callback URLs are derived from the redirect base URL as
// "<base>/oauth2/callback/<provider>".
func NewProviderClient(redirectBaseURL string, kakao, google, naver config.OAuthProviderConfig) ProviderClient {
	buildConfig := func(provider oauthDomain.Provider, creds config.OAuthProviderConfig, endpoint oauth2.Endpoint, scopes []string) *oauth2.Config {
		return &oauth2.Config{
			ClientID:     creds.ClientID,
			ClientSecret: creds.ClientSecret,
			Endpoint:     endpoint,
			RedirectURL:  fmt.Sprintf("%s/oauth2/callback/%s", redirectBaseURL, provider),
			Scopes:       scopes,
		}
	}

	return &oauth2ProviderClient{
		configs: map[oauthDomain.Provider]*oauth2.Config{
			oauthDomain.ProviderKakao:  buildConfig(oauthDomain.ProviderKakao, kakao, kakaoEndpoint, []string{"profile_nickname", "profile_image"}),
			oauthDomain.ProviderGoogle: buildConfig(oauthDomain.ProviderGoogle, google, googleEndpoint, []string{"openid", "profile"}),
			oauthDomain.ProviderNaver:  buildConfig(oauthDomain.ProviderNaver, naver, naverEndpoint, nil),
		},
	}
}

// AuthCodeURL builds the authorization redirect for the provider.
func (c *oauth2ProviderClient) AuthCodeURL(provider oauthDomain.Provider, state string) (string, error) {
	conf, ok := c.configs[provider]
	if !ok {
		return "", apperrors.Wrap(oauthDomain.ErrUnsupportedProvider, string(provider))
	}
	return conf.AuthCodeURL(state), nil
}

// FetchProfile exchanges the code and fetches the raw user payload.
func (c *oauth2ProviderClient) FetchProfile(
	ctx context.Context,
	provider oauthDomain.Provider,
	code string,
) (map[string]any, error) {
	conf, ok := c.configs[provider]
	if !ok {
		return nil, apperrors.Wrap(oauthDomain.ErrUnsupportedProvider, string(provider))
	}

	token, err := conf.Exchange(ctx, code)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrUnauthorized, "failed to exchange authorization code: "+err.Error())
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, userInfoURLs[provider], nil)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to build user info request")
	}

	resp, err := conf.Client(ctx, token).Do(req)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to fetch user info")
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, apperrors.Wrap(
			apperrors.ErrUnauthorized,
			fmt.Sprintf("user info request failed with status %d", resp.StatusCode),
		)
	}

	var attrs map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&attrs); err != nil {
		return nil, apperrors.Wrap(err, "failed to decode user info payload")
	}

	return attrs, nil
}
