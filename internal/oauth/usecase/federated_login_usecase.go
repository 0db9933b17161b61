// Package usecase implements the federated login coordination: authorization
// request customization and callback reconciliation into a local account.
package usecase

import (
	"context"
	"log/slog"
	"time"

	accountDomain "github.com/restboard/restboard/internal/account/domain"
	authService "github.com/restboard/restboard/internal/auth/service"
	apperrors "github.com/restboard/restboard/internal/errors"
	oauthDomain "github.com/restboard/restboard/internal/oauth/domain"
	oauthService "github.com/restboard/restboard/internal/oauth/service"
)

// AccountUpserter is the slice of the account module the coordinator needs:
// modify-or-join semantics keyed by the derived federated username.
type AccountUpserter interface {
	UpsertFederated(ctx context.Context, username, nickname, avatarURL string) (*accountDomain.Account, error)
}

// CallbackResult carries everything the HTTP layer needs to finish a
// successful federated login.
type CallbackResult struct {
	Account        *accountDomain.Account
	AccessToken    string
	RedirectTarget string
}

// FederatedLoginUseCase coordinates the external-login round trip.
type FederatedLoginUseCase interface {
	// AuthorizeURL builds the provider authorization redirect, substituting a
	// tamper-evident state value that encodes the caller's desired post-login
	// destination plus a CSRF nonce.
	AuthorizeURL(provider, redirectTarget string) (string, error)

	// HandleCallback reconciles a successful federated authentication:
	// normalizes the provider payload, upserts the local account, mints an
	// access token and recovers the redirect target from the state value.
	HandleCallback(ctx context.Context, provider, code, state string) (*CallbackResult, error)
}

// federatedLoginUseCase implements FederatedLoginUseCase.
type federatedLoginUseCase struct {
	providerClient oauthService.ProviderClient
	accounts       AccountUpserter
	codec          authService.TokenCodec
	tokenTTL       time.Duration
	logger         *slog.Logger
}

// NewFederatedLoginUseCase creates a FederatedLoginUseCase.
func NewFederatedLoginUseCase(
	providerClient oauthService.ProviderClient,
	accounts AccountUpserter,
	codec authService.TokenCodec,
	tokenTTL time.Duration,
	logger *slog.Logger,
) FederatedLoginUseCase {
	return &federatedLoginUseCase{
		providerClient: providerClient,
		accounts:       accounts,
		codec:          codec,
		tokenTTL:       tokenTTL,
		logger:         logger,
	}
}

// AuthorizeURL builds the outbound authorization redirect.
func (uc *federatedLoginUseCase) AuthorizeURL(provider, redirectTarget string) (string, error) {
	parsed, err := oauthDomain.ParseProvider(provider)
	if err != nil {
		return "", err
	}

	state := oauthDomain.EncodeState(redirectTarget, oauthDomain.NewStateNonce())

	return uc.providerClient.AuthCodeURL(parsed, state)
}

// HandleCallback finishes the federated login.
func (uc *federatedLoginUseCase) HandleCallback(
	ctx context.Context,
	provider, code, state string,
) (*CallbackResult, error) {
	parsed, err := oauthDomain.ParseProvider(provider)
	if err != nil {
		return nil, err
	}

	attrs, err := uc.providerClient.FetchProfile(ctx, parsed, code)
	if err != nil {
		return nil, err
	}

	profile, err := parsed.Normalize(attrs)
	if err != nil {
		return nil, err
	}

	username := profile.LocalUsername(parsed)

	// Federated profile fields are provider-authoritative: display name and
	// avatar are always overwritten with the freshly retrieved values.
	account, err := uc.accounts.UpsertFederated(ctx, username, profile.Nickname, profile.AvatarURL)
	if err != nil {
		return nil, err
	}

	accessToken, err := uc.codec.Issue(authService.TokenClaims{
		AccountID: account.ID,
		Username:  account.Username,
		Nickname:  account.Nickname,
	}, uc.tokenTTL)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to mint access token after federated login")
	}

	uc.logger.Info("federated login succeeded",
		slog.String("provider", string(parsed)),
		slog.Int64("account_id", account.ID),
		slog.String("username", account.Username),
	)

	return &CallbackResult{
		Account:        account,
		AccessToken:    accessToken,
		RedirectTarget: oauthDomain.DecodeState(state),
	}, nil
}
