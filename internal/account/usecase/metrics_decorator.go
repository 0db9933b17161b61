package usecase

import (
	"context"
	"time"

	"github.com/restboard/restboard/internal/account/domain"
	"github.com/restboard/restboard/internal/metrics"
)

// accountUseCaseWithMetrics decorates UseCase with metrics instrumentation.
type accountUseCaseWithMetrics struct {
	next    UseCase
	metrics metrics.BusinessMetrics
}

// NewAccountUseCaseWithMetrics wraps an account UseCase with metrics recording.
func NewAccountUseCaseWithMetrics(useCase UseCase, m metrics.BusinessMetrics) UseCase {
	return &accountUseCaseWithMetrics{
		next:    useCase,
		metrics: m,
	}
}

// Register records metrics for account registration operations.
func (a *accountUseCaseWithMetrics) Register(ctx context.Context, input RegisterInput) (*domain.Account, error) {
	start := time.Now()
	account, err := a.next.Register(ctx, input)

	status := "success"
	if err != nil {
		status = "error"
	}

	a.metrics.RecordOperation(ctx, "account", "register", status)
	a.metrics.RecordDuration(ctx, "account", "register", time.Since(start), status)

	return account, err
}

// Login records metrics for login operations.
func (a *accountUseCaseWithMetrics) Login(ctx context.Context, username, password string) (*LoginOutput, error) {
	start := time.Now()
	output, err := a.next.Login(ctx, username, password)

	status := "success"
	if err != nil {
		status = "error"
	}

	a.metrics.RecordOperation(ctx, "account", "login", status)
	a.metrics.RecordDuration(ctx, "account", "login", time.Since(start), status)

	return output, err
}

// GetByID records metrics for account retrieval by id.
func (a *accountUseCaseWithMetrics) GetByID(ctx context.Context, id int64) (*domain.Account, error) {
	start := time.Now()
	account, err := a.next.GetByID(ctx, id)

	status := "success"
	if err != nil {
		status = "error"
	}

	a.metrics.RecordOperation(ctx, "account", "get_by_id", status)
	a.metrics.RecordDuration(ctx, "account", "get_by_id", time.Since(start), status)

	return account, err
}

// GetByUsername records metrics for account retrieval by username.
func (a *accountUseCaseWithMetrics) GetByUsername(ctx context.Context, username string) (*domain.Account, error) {
	start := time.Now()
	account, err := a.next.GetByUsername(ctx, username)

	status := "success"
	if err != nil {
		status = "error"
	}

	a.metrics.RecordOperation(ctx, "account", "get_by_username", status)
	a.metrics.RecordDuration(ctx, "account", "get_by_username", time.Since(start), status)

	return account, err
}

// GetByAPIKey records metrics for account retrieval by API key.
func (a *accountUseCaseWithMetrics) GetByAPIKey(ctx context.Context, apiKey string) (*domain.Account, error) {
	start := time.Now()
	account, err := a.next.GetByAPIKey(ctx, apiKey)

	status := "success"
	if err != nil {
		status = "error"
	}

	a.metrics.RecordOperation(ctx, "account", "get_by_api_key", status)
	a.metrics.RecordDuration(ctx, "account", "get_by_api_key", time.Since(start), status)

	return account, err
}

// Count records metrics for account count operations.
func (a *accountUseCaseWithMetrics) Count(ctx context.Context) (int64, error) {
	start := time.Now()
	count, err := a.next.Count(ctx)

	status := "success"
	if err != nil {
		status = "error"
	}

	a.metrics.RecordOperation(ctx, "account", "count", status)
	a.metrics.RecordDuration(ctx, "account", "count", time.Since(start), status)

	return count, err
}

// UpsertFederated records metrics for federated account upsert operations.
func (a *accountUseCaseWithMetrics) UpsertFederated(
	ctx context.Context,
	username, nickname, avatarURL string,
) (*domain.Account, error) {
	start := time.Now()
	account, err := a.next.UpsertFederated(ctx, username, nickname, avatarURL)

	status := "success"
	if err != nil {
		status = "error"
	}

	a.metrics.RecordOperation(ctx, "account", "upsert_federated", status)
	a.metrics.RecordDuration(ctx, "account", "upsert_federated", time.Since(start), status)

	return account, err
}

// GenAccessToken delegates token minting without instrumentation.
// Token minting is CPU-only and already covered by the callers' metrics.
func (a *accountUseCaseWithMetrics) GenAccessToken(account *domain.Account) (string, error) {
	return a.next.GenAccessToken(account)
}
