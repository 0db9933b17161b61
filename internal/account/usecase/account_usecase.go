// Package usecase implements the account business logic and orchestrates
// account domain operations.
package usecase

import (
	"context"
	"log/slog"
	"strings"
	"time"

	validation "github.com/jellydator/validation"

	"github.com/allisson/go-pwdhash"
	"github.com/google/uuid"

	"github.com/restboard/restboard/internal/account/domain"
	authService "github.com/restboard/restboard/internal/auth/service"
	"github.com/restboard/restboard/internal/database"
	apperrors "github.com/restboard/restboard/internal/errors"
	appValidation "github.com/restboard/restboard/internal/validation"
)

// RegisterInput contains the input data for account registration.
type RegisterInput struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Nickname string `json:"nickname"`
}

// LoginOutput carries the credentials handed to a client after login.
type LoginOutput struct {
	Account     *domain.Account
	APIKey      string
	AccessToken string
}

// UseCase defines the interface for account business logic operations.
type UseCase interface {
	Register(ctx context.Context, input RegisterInput) (*domain.Account, error)
	Login(ctx context.Context, username, password string) (*LoginOutput, error)
	GetByID(ctx context.Context, id int64) (*domain.Account, error)
	GetByUsername(ctx context.Context, username string) (*domain.Account, error)
	GetByAPIKey(ctx context.Context, apiKey string) (*domain.Account, error)
	Count(ctx context.Context) (int64, error)
	UpsertFederated(ctx context.Context, username, nickname, avatarURL string) (*domain.Account, error)
	GenAccessToken(account *domain.Account) (string, error)
}

// AccountRepository interface defines account repository operations.
type AccountRepository interface {
	Create(ctx context.Context, account *domain.Account) error
	Update(ctx context.Context, account *domain.Account) error
	GetByID(ctx context.Context, id int64) (*domain.Account, error)
	GetByUsername(ctx context.Context, username string) (*domain.Account, error)
	GetByAPIKey(ctx context.Context, apiKey string) (*domain.Account, error)
	Count(ctx context.Context) (int64, error)
}

// AccountUseCase handles account-related business logic.
type AccountUseCase struct {
	txManager      database.TxManager
	accountRepo    AccountRepository
	codec          authService.TokenCodec
	tokenTTL       time.Duration
	passwordHasher *pwdhash.PasswordHasher
	logger         *slog.Logger
}

// NewAccountUseCase creates a new AccountUseCase.
func NewAccountUseCase(
	txManager database.TxManager,
	accountRepo AccountRepository,
	codec authService.TokenCodec,
	tokenTTL time.Duration,
	logger *slog.Logger,
) (UseCase, error) {
	// Interactive policy keeps login latency acceptable for a web backend.
	hasher, err := pwdhash.New(pwdhash.WithPolicy(pwdhash.PolicyInteractive))
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to create password hasher")
	}

	return &AccountUseCase{
		txManager:      txManager,
		accountRepo:    accountRepo,
		codec:          codec,
		tokenTTL:       tokenTTL,
		passwordHasher: hasher,
		logger:         logger,
	}, nil
}

// validateRegisterInput validates the registration input.
func (uc *AccountUseCase) validateRegisterInput(input RegisterInput) error {
	err := validation.ValidateStruct(&input,
		validation.Field(&input.Username,
			validation.Required.Error("username is required"),
			appValidation.NotBlank,
			appValidation.Username,
			validation.Length(2, 30).Error("username must be between 2 and 30 characters"),
		),
		validation.Field(&input.Password,
			validation.Required.Error("password is required"),
			validation.Length(4, 128).Error("password must be between 4 and 128 characters"),
		),
		validation.Field(&input.Nickname,
			validation.Required.Error("nickname is required"),
			appValidation.NotBlank,
			validation.Length(1, 50).Error("nickname must be between 1 and 50 characters"),
		),
	)
	return appValidation.WrapValidationError(err)
}

// Register creates a native (password-based) account with a fresh API key.
func (uc *AccountUseCase) Register(ctx context.Context, input RegisterInput) (*domain.Account, error) {
	if err := uc.validateRegisterInput(input); err != nil {
		return nil, err
	}

	hashedPassword, err := uc.passwordHasher.Hash([]byte(input.Password))
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to hash password")
	}

	account := &domain.Account{
		Username: strings.TrimSpace(input.Username),
		Password: hashedPassword,
		Nickname: strings.TrimSpace(input.Nickname),
		APIKey:   uuid.NewString(),
	}

	if err := uc.accountRepo.Create(ctx, account); err != nil {
		return nil, err
	}

	uc.logger.Info("account registered",
		slog.Int64("account_id", account.ID),
		slog.String("username", account.Username),
	)

	return account, nil
}

// Login verifies the password and mints the credential pair for the client.
func (uc *AccountUseCase) Login(ctx context.Context, username, password string) (*LoginOutput, error) {
	account, err := uc.accountRepo.GetByUsername(ctx, username)
	if err != nil {
		if apperrors.Is(err, apperrors.ErrNotFound) {
			// Unknown username and wrong password are indistinguishable.
			return nil, domain.ErrPasswordMismatch
		}
		return nil, err
	}

	if account.Password == "" {
		// Federated accounts have no password; they must log in through
		// their provider.
		return nil, domain.ErrPasswordMismatch
	}

	valid, err := uc.passwordHasher.Verify([]byte(password), account.Password)
	if err != nil || !valid {
		return nil, domain.ErrPasswordMismatch
	}

	accessToken, err := uc.GenAccessToken(account)
	if err != nil {
		return nil, err
	}

	return &LoginOutput{
		Account:     account,
		APIKey:      account.APIKey,
		AccessToken: accessToken,
	}, nil
}

// GetByID retrieves an account by id.
func (uc *AccountUseCase) GetByID(ctx context.Context, id int64) (*domain.Account, error) {
	return uc.accountRepo.GetByID(ctx, id)
}

// GetByUsername retrieves an account by username.
func (uc *AccountUseCase) GetByUsername(ctx context.Context, username string) (*domain.Account, error) {
	return uc.accountRepo.GetByUsername(ctx, username)
}

// GetByAPIKey retrieves an account by its long-lived API key.
func (uc *AccountUseCase) GetByAPIKey(ctx context.Context, apiKey string) (*domain.Account, error) {
	return uc.accountRepo.GetByAPIKey(ctx, apiKey)
}

// Count returns the number of stored accounts.
func (uc *AccountUseCase) Count(ctx context.Context) (int64, error) {
	return uc.accountRepo.Count(ctx)
}

// UpsertFederated looks up the account by its derived federated username and
// creates it (without a password) when absent, or refreshes nickname and
// avatar when present. Profile fields are provider-authoritative, so they are
// always overwritten, never merged.
func (uc *AccountUseCase) UpsertFederated(
	ctx context.Context,
	username, nickname, avatarURL string,
) (*domain.Account, error) {
	var account *domain.Account

	err := uc.txManager.WithTx(ctx, func(ctx context.Context) error {
		existing, err := uc.accountRepo.GetByUsername(ctx, username)
		if err != nil {
			if !apperrors.Is(err, apperrors.ErrNotFound) {
				return err
			}

			account = &domain.Account{
				Username:  username,
				Nickname:  nickname,
				APIKey:    uuid.NewString(),
				AvatarURL: avatarURL,
			}
			return uc.accountRepo.Create(ctx, account)
		}

		existing.Nickname = nickname
		existing.AvatarURL = avatarURL
		account = existing
		return uc.accountRepo.Update(ctx, existing)
	})
	if err != nil {
		return nil, err
	}

	return account, nil
}

// GenAccessToken mints a signed access token for the account.
func (uc *AccountUseCase) GenAccessToken(account *domain.Account) (string, error) {
	return uc.codec.Issue(authService.TokenClaims{
		AccountID: account.ID,
		Username:  account.Username,
		Nickname:  account.Nickname,
	}, uc.tokenTTL)
}
