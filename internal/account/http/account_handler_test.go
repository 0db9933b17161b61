package http

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/restboard/restboard/internal/account/domain"
	"github.com/restboard/restboard/internal/account/http/dto"
	"github.com/restboard/restboard/internal/account/usecase"
	authDomain "github.com/restboard/restboard/internal/auth/domain"
	authHTTP "github.com/restboard/restboard/internal/auth/http"
)

// mockAccountUseCase is a mock implementation of usecase.UseCase for testing.
type mockAccountUseCase struct {
	mock.Mock
}

func (m *mockAccountUseCase) Register(ctx context.Context, input usecase.RegisterInput) (*domain.Account, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *mockAccountUseCase) Login(ctx context.Context, username, password string) (*usecase.LoginOutput, error) {
	args := m.Called(ctx, username, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*usecase.LoginOutput), args.Error(1)
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

func (m *mockAccountUseCase) UpsertFederated(ctx context.Context, username, nickname, avatarURL string) (*domain.Account, error) {
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

// setupTestAccountHandler creates a test handler with a mocked use case.
func setupTestAccountHandler(t *testing.T) (*AccountHandler, *mockAccountUseCase) {
	t.Helper()

	gin.SetMode(gin.TestMode)

	mockUseCase := &mockAccountUseCase{}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	handler := NewAccountHandler(mockUseCase, time.Minute, logger)
	return handler, mockUseCase
}

// createTestContext builds a gin context with an optional JSON body.
func createTestContext(method, url string, body any) (*gin.Context, *httptest.ResponseRecorder) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	var reader io.Reader
	if body != nil {
		payload, _ := json.Marshal(body)
		reader = bytes.NewReader(payload)
	}

	c.Request = httptest.NewRequest(method, url, reader)
	c.Request.Header.Set("Content-Type", "application/json")
	return c, w
}

func TestAccountHandler_JoinHandler(t *testing.T) {
	t.Run("Success_CreatesAccount", func(t *testing.T) {
		handler, mockUseCase := setupTestAccountHandler(t)

		mockUseCase.On("Register", mock.Anything, usecase.RegisterInput{
			Username: "user1",
			Password: "1234",
			Nickname: "User One",
		}).Return(&domain.Account{
			ID:       1,
			Username: "user1",
			Nickname: "User One",
			APIKey:   "secret-key",
		}, nil).Once()

		c, w := createTestContext(http.MethodPost, "/api/v1/accounts", dto.JoinRequest{
			Username: "user1",
			Password: "1234",
			Nickname: "User One",
		})

		handler.JoinHandler(c)

		assert.Equal(t, http.StatusCreated, w.Code)

		var response dto.AccountResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
		assert.Equal(t, int64(1), response.ID)
		assert.Equal(t, "user1", response.Username)
		assert.False(t, response.IsAdmin)
		// Credentials never appear in the account representation
		assert.NotContains(t, w.Body.String(), "secret-key")
	})

	t.Run("Error_InvalidJSON", func(t *testing.T) {
		handler, _ := setupTestAccountHandler(t)

		c, w := createTestContext(http.MethodPost, "/api/v1/accounts", nil)
		c.Request.Body = io.NopCloser(bytes.NewReader([]byte("invalid json")))

		handler.JoinHandler(c)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("Error_ValidationFailed_BlankNickname", func(t *testing.T) {
		handler, mockUseCase := setupTestAccountHandler(t)

		c, w := createTestContext(http.MethodPost, "/api/v1/accounts", dto.JoinRequest{
			Username: "user1",
			Password: "1234",
			Nickname: "   ",
		})

		handler.JoinHandler(c)

		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
		mockUseCase.AssertNotCalled(t, "Register", mock.Anything, mock.Anything)
	})

	t.Run("Error_DuplicateUsername", func(t *testing.T) {
		handler, mockUseCase := setupTestAccountHandler(t)

		mockUseCase.On("Register", mock.Anything, mock.AnythingOfType("usecase.RegisterInput")).
			Return(nil, domain.ErrAccountAlreadyExists).Once()

		c, w := createTestContext(http.MethodPost, "/api/v1/accounts", dto.JoinRequest{
			Username: "user1",
			Password: "1234",
			Nickname: "User One",
		})

		handler.JoinHandler(c)

		assert.Equal(t, http.StatusConflict, w.Code)
	})
}

func TestAccountHandler_LoginHandler(t *testing.T) {
	t.Run("Success_SetsCredentialCookies", func(t *testing.T) {
		handler, mockUseCase := setupTestAccountHandler(t)

		account := &domain.Account{ID: 5, Username: "user1", Nickname: "User One", APIKey: "api-key-5"}
		mockUseCase.On("Login", mock.Anything, "user1", "1234").
			Return(&usecase.LoginOutput{
				Account:     account,
				APIKey:      "api-key-5",
				AccessToken: "token-abc",
			}, nil).Once()

		c, w := createTestContext(http.MethodPost, "/api/v1/accounts/login", dto.LoginRequest{
			Username: "user1",
			Password: "1234",
		})

		handler.LoginHandler(c)

		assert.Equal(t, http.StatusOK, w.Code)

		var response dto.LoginResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
		assert.Equal(t, "api-key-5", response.APIKey)
		assert.Equal(t, "token-abc", response.AccessToken)
		assert.Equal(t, "user1", response.Account.Username)

		cookies := w.Result().Cookies()
		byName := map[string]string{}
		for _, cookie := range cookies {
			byName[cookie.Name] = cookie.Value
		}
		assert.Equal(t, "api-key-5", byName[authDomain.APIKeyCookieName])
		assert.Equal(t, "token-abc", byName[authDomain.AccessTokenCookieName])
	})

	t.Run("Error_WrongPassword", func(t *testing.T) {
		handler, mockUseCase := setupTestAccountHandler(t)

		mockUseCase.On("Login", mock.Anything, "user1", "wrong").
			Return(nil, domain.ErrPasswordMismatch).Once()

		c, w := createTestContext(http.MethodPost, "/api/v1/accounts/login", dto.LoginRequest{
			Username: "user1",
			Password: "wrong",
		})

		handler.LoginHandler(c)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Empty(t, w.Result().Cookies())
	})

	t.Run("Error_MissingFields", func(t *testing.T) {
		handler, _ := setupTestAccountHandler(t)

		c, w := createTestContext(http.MethodPost, "/api/v1/accounts/login", dto.LoginRequest{})

		handler.LoginHandler(c)

		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	})
}

func TestAccountHandler_LogoutHandler(t *testing.T) {
	handler, _ := setupTestAccountHandler(t)

	c, w := createTestContext(http.MethodPost, "/api/v1/accounts/logout", nil)

	handler.LogoutHandler(c)

	assert.Equal(t, http.StatusOK, w.Code)

	// Both credential cookies are expired
	cookies := w.Result().Cookies()
	require.Len(t, cookies, 2)
	for _, cookie := range cookies {
		assert.Empty(t, cookie.Value)
		assert.Negative(t, cookie.MaxAge)
	}
}

func TestAccountHandler_MeHandler(t *testing.T) {
	t.Run("Success_ReturnsAuthenticatedAccount", func(t *testing.T) {
		handler, mockUseCase := setupTestAccountHandler(t)

		mockUseCase.On("GetByID", mock.Anything, int64(5)).
			Return(&domain.Account{ID: 5, Username: "user1", Nickname: "User One"}, nil).Once()

		c, w := createTestContext(http.MethodGet, "/api/v1/accounts/me", nil)
		principal := &authDomain.Principal{ID: 5, Username: "user1", Nickname: "User One"}
		c.Request = c.Request.WithContext(authHTTP.WithPrincipal(c.Request.Context(), principal))

		handler.MeHandler(c)

		assert.Equal(t, http.StatusOK, w.Code)

		var response dto.AccountResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
		assert.Equal(t, int64(5), response.ID)
	})

	t.Run("Error_AnonymousRequest", func(t *testing.T) {
		handler, mockUseCase := setupTestAccountHandler(t)

		c, w := createTestContext(http.MethodGet, "/api/v1/accounts/me", nil)

		handler.MeHandler(c)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		mockUseCase.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
	})
}
