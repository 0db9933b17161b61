package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/restboard/restboard/internal/account/domain"
	"github.com/restboard/restboard/internal/metrics"
)

// mockAccountUseCase is a mock implementation of UseCase for decorator testing.
type mockAccountUseCase struct {
	mock.Mock
}

func (m *mockAccountUseCase) Register(ctx context.Context, input RegisterInput) (*domain.Account, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *mockAccountUseCase) Login(ctx context.Context, username, password string) (*LoginOutput, error) {
	args := m.Called(ctx, username, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*LoginOutput), args.Error(1)
}

func (m *mockAccountUseCase) GetByID(ctx context.Context, id int64) (*domain.Account, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *mockAccountUseCase) GetByUsername(ctx context.Context, username string) (*domain.Account, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *mockAccountUseCase) GetByAPIKey(ctx context.Context, apiKey string) (*domain.Account, error) {
	args := m.Called(ctx, apiKey)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *mockAccountUseCase) Count(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockAccountUseCase) UpsertFederated(
	ctx context.Context,
	username, nickname, avatarURL string,
) (*domain.Account, error) {
	args := m.Called(ctx, username, nickname, avatarURL)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *mockAccountUseCase) GenAccessToken(account *domain.Account) (string, error) {
	args := m.Called(account)
	return args.String(0), args.Error(1)
}

// mockBusinessMetrics is a mock implementation of metrics.BusinessMetrics for testing.
type mockBusinessMetrics struct {
	mock.Mock
}

func (m *mockBusinessMetrics) RecordOperation(ctx context.Context, domain, operation, status string) {
	m.Called(ctx, domain, operation, status)
}

func (m *mockBusinessMetrics) RecordDuration(
	ctx context.Context,
	domain, operation string,
	duration time.Duration,
	status string,
) {
	m.Called(ctx, domain, operation, duration, status)
}

var _ metrics.BusinessMetrics = (*mockBusinessMetrics)(nil)

func TestNewAccountUseCaseWithMetrics(t *testing.T) {
	t.Parallel()

	mockUseCase := &mockAccountUseCase{}
	mockMetrics := &mockBusinessMetrics{}

	decorator := NewAccountUseCaseWithMetrics(mockUseCase, mockMetrics)

	assert.NotNil(t, decorator)
	assert.Implements(t, (*UseCase)(nil), decorator)
}

func TestMetricsDecorator_Register(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("Success_RecordsSuccessMetrics", func(t *testing.T) {
		t.Parallel()
		mockUseCase := &mockAccountUseCase{}
		mockMetrics := &mockBusinessMetrics{}

		input := RegisterInput{Username: "user1", Password: "secret-pass", Nickname: "User One"}
		expectedAccount := &domain.Account{ID: 1, Username: "user1", Nickname: "User One"}

		mockUseCase.On("Register", ctx, input).Return(expectedAccount, nil).Once()

		mockMetrics.On("RecordOperation", ctx, "account", "register", "success").
			Return().
			Once()

		mockMetrics.On("RecordDuration", ctx, "account", "register", mock.AnythingOfType("time.Duration"), "success").
			Return().
			Once()

		decorator := NewAccountUseCaseWithMetrics(mockUseCase, mockMetrics)
		result, err := decorator.Register(ctx, input)

		assert.NoError(t, err)
		assert.Equal(t, expectedAccount, result)
		mockMetrics.AssertExpectations(t)
	})

	t.Run("Error_RecordsErrorMetrics", func(t *testing.T) {
		t.Parallel()
		mockUseCase := &mockAccountUseCase{}
		mockMetrics := &mockBusinessMetrics{}

		input := RegisterInput{Username: "user1", Password: "secret-pass", Nickname: "User One"}
		expectedError := domain.ErrAccountAlreadyExists

		mockUseCase.On("Register", ctx, input).Return(nil, expectedError).Once()

		mockMetrics.On("RecordOperation", ctx, "account", "register", "error").
			Return().
			Once()

		mockMetrics.On("RecordDuration", ctx, "account", "register", mock.AnythingOfType("time.Duration"), "error").
			Return().
			Once()

		decorator := NewAccountUseCaseWithMetrics(mockUseCase, mockMetrics)
		result, err := decorator.Register(ctx, input)

		assert.Error(t, err)
		assert.Nil(t, result)
		assert.Equal(t, expectedError, err)
		mockMetrics.AssertExpectations(t)
	})
}

func TestMetricsDecorator_Login(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("Success_RecordsSuccessMetrics", func(t *testing.T) {
		t.Parallel()
		mockUseCase := &mockAccountUseCase{}
		mockMetrics := &mockBusinessMetrics{}

		expectedOutput := &LoginOutput{
			Account:     &domain.Account{ID: 1, Username: "user1"},
			APIKey:      "api-key-1",
			AccessToken: "token-abc",
		}

		mockUseCase.On("Login", ctx, "user1", "secret-pass").Return(expectedOutput, nil).Once()

		mockMetrics.On("RecordOperation", ctx, "account", "login", "success").
			Return().
			Once()

		mockMetrics.On("RecordDuration", ctx, "account", "login", mock.AnythingOfType("time.Duration"), "success").
			Return().
			Once()

		decorator := NewAccountUseCaseWithMetrics(mockUseCase, mockMetrics)
		result, err := decorator.Login(ctx, "user1", "secret-pass")

		assert.NoError(t, err)
		assert.Equal(t, expectedOutput, result)
		mockMetrics.AssertExpectations(t)
	})

	t.Run("Error_RecordsErrorMetrics", func(t *testing.T) {
		t.Parallel()
		mockUseCase := &mockAccountUseCase{}
		mockMetrics := &mockBusinessMetrics{}

		expectedError := domain.ErrPasswordMismatch

		mockUseCase.On("Login", ctx, "user1", "wrong-pass").Return(nil, expectedError).Once()

		mockMetrics.On("RecordOperation", ctx, "account", "login", "error").
			Return().
			Once()

		mockMetrics.On("RecordDuration", ctx, "account", "login", mock.AnythingOfType("time.Duration"), "error").
			Return().
			Once()

		decorator := NewAccountUseCaseWithMetrics(mockUseCase, mockMetrics)
		result, err := decorator.Login(ctx, "user1", "wrong-pass")

		assert.Error(t, err)
		assert.Nil(t, result)
		assert.Equal(t, expectedError, err)
		mockMetrics.AssertExpectations(t)
	})
}

func TestMetricsDecorator_UpsertFederated(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("Success_RecordsSuccessMetrics", func(t *testing.T) {
		t.Parallel()
		mockUseCase := &mockAccountUseCase{}
		mockMetrics := &mockBusinessMetrics{}

		expectedAccount := &domain.Account{
			ID:       7,
			Username: "GOOGLE__108177632",
			Nickname: "Jane Doe",
		}

		mockUseCase.On("UpsertFederated", ctx, "GOOGLE__108177632", "Jane Doe", "https://cdn.example.com/a.png").
			Return(expectedAccount, nil).
			Once()

		mockMetrics.On("RecordOperation", ctx, "account", "upsert_federated", "success").
			Return().
			Once()

		mockMetrics.On("RecordDuration", ctx, "account", "upsert_federated", mock.AnythingOfType("time.Duration"), "success").
			Return().
			Once()

		decorator := NewAccountUseCaseWithMetrics(mockUseCase, mockMetrics)
		result, err := decorator.UpsertFederated(ctx, "GOOGLE__108177632", "Jane Doe", "https://cdn.example.com/a.png")

		assert.NoError(t, err)
		assert.Equal(t, expectedAccount, result)
		mockMetrics.AssertExpectations(t)
	})

	t.Run("Error_RecordsErrorMetrics", func(t *testing.T) {
		t.Parallel()
		mockUseCase := &mockAccountUseCase{}
		mockMetrics := &mockBusinessMetrics{}

		expectedError := errors.New("database error")

		mockUseCase.On("UpsertFederated", ctx, "GOOGLE__108177632", "Jane Doe", "").
			Return(nil, expectedError).
			Once()

		mockMetrics.On("RecordOperation", ctx, "account", "upsert_federated", "error").
			Return().
			Once()

		mockMetrics.On("RecordDuration", ctx, "account", "upsert_federated", mock.AnythingOfType("time.Duration"), "error").
			Return().
			Once()

		decorator := NewAccountUseCaseWithMetrics(mockUseCase, mockMetrics)
		result, err := decorator.UpsertFederated(ctx, "GOOGLE__108177632", "Jane Doe", "")

		assert.Error(t, err)
		assert.Nil(t, result)
		mockMetrics.AssertExpectations(t)
	})
}

func TestMetricsDecorator_GetByAPIKey(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("Success_RecordsSuccessMetrics", func(t *testing.T) {
		t.Parallel()
		mockUseCase := &mockAccountUseCase{}
		mockMetrics := &mockBusinessMetrics{}

		expectedAccount := &domain.Account{ID: 1, Username: "user1", APIKey: "api-key-1"}

		mockUseCase.On("GetByAPIKey", ctx, "api-key-1").Return(expectedAccount, nil).Once()

		mockMetrics.On("RecordOperation", ctx, "account", "get_by_api_key", "success").
			Return().
			Once()

		mockMetrics.On("RecordDuration", ctx, "account", "get_by_api_key", mock.AnythingOfType("time.Duration"), "success").
			Return().
			Once()

		decorator := NewAccountUseCaseWithMetrics(mockUseCase, mockMetrics)
		result, err := decorator.GetByAPIKey(ctx, "api-key-1")

		assert.NoError(t, err)
		assert.Equal(t, expectedAccount, result)
		mockMetrics.AssertExpectations(t)
	})
}

func TestMetricsDecorator_GenAccessToken(t *testing.T) {
	t.Parallel()

	// Token minting is not instrumented; the decorator just delegates.
	mockUseCase := &mockAccountUseCase{}
	mockMetrics := &mockBusinessMetrics{}

	account := &domain.Account{ID: 1, Username: "user1"}
	mockUseCase.On("GenAccessToken", account).Return("token-abc", nil).Once()

	decorator := NewAccountUseCaseWithMetrics(mockUseCase, mockMetrics)
	token, err := decorator.GenAccessToken(account)

	assert.NoError(t, err)
	assert.Equal(t, "token-abc", token)
	mockMetrics.AssertNotCalled(t, "RecordOperation", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}
