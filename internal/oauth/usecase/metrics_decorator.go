package usecase

import (
	"context"
	"time"

	"github.com/restboard/restboard/internal/metrics"
)

// federatedLoginUseCaseWithMetrics decorates FederatedLoginUseCase with metrics instrumentation.
type federatedLoginUseCaseWithMetrics struct {
	next    FederatedLoginUseCase
	metrics metrics.BusinessMetrics
}

// NewFederatedLoginUseCaseWithMetrics wraps a FederatedLoginUseCase with metrics recording.
func NewFederatedLoginUseCaseWithMetrics(useCase FederatedLoginUseCase, m metrics.BusinessMetrics) FederatedLoginUseCase {
	return &federatedLoginUseCaseWithMetrics{
		next:    useCase,
		metrics: m,
	}
}

// AuthorizeURL records metrics for authorization redirect construction.
func (f *federatedLoginUseCaseWithMetrics) AuthorizeURL(provider, redirectTarget string) (string, error) {
	start := time.Now()
	url, err := f.next.AuthorizeURL(provider, redirectTarget)

	status := "success"
	if err != nil {
		status = "error"
	}

	ctx := context.Background()
	f.metrics.RecordOperation(ctx, "oauth", "authorize_url", status)
	f.metrics.RecordDuration(ctx, "oauth", "authorize_url", time.Since(start), status)

	return url, err
}

// HandleCallback records metrics for federated login callback handling.
func (f *federatedLoginUseCaseWithMetrics) HandleCallback(
	ctx context.Context,
	provider, code, state string,
) (*CallbackResult, error) {
	start := time.Now()
	result, err := f.next.HandleCallback(ctx, provider, code, state)

	status := "success"
	if err != nil {
		status = "error"
	}

	f.metrics.RecordOperation(ctx, "oauth", "federated_login", status)
	f.metrics.RecordDuration(ctx, "oauth", "federated_login", time.Since(start), status)

	return result, err
}
