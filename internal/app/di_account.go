package app

import (
	"fmt"

	accountHTTP "github.com/restboard/restboard/internal/account/http"
	accountRepository "github.com/restboard/restboard/internal/account/repository"
	accountUsecase "github.com/restboard/restboard/internal/account/usecase"
)

// AccountRepository returns the account repository instance.
func (c *Container) AccountRepository() (accountUsecase.AccountRepository, error) {
	var err error
	c.accountRepoInit.Do(func() {
		c.accountRepo, err = c.initAccountRepository()
		if err != nil {
			c.initErrors["accountRepo"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["accountRepo"]; exists {
		return nil, storedErr
	}
	return c.accountRepo, nil
}

// AccountUseCase returns the account use case instance.
func (c *Container) AccountUseCase() (accountUsecase.UseCase, error) {
	var err error
	c.accountUseCaseInit.Do(func() {
		c.accountUseCase, err = c.initAccountUseCase()
		if err != nil {
			c.initErrors["accountUseCase"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["accountUseCase"]; exists {
		return nil, storedErr
	}
	return c.accountUseCase, nil
}

// AccountHandler returns the account HTTP handler instance.
func (c *Container) AccountHandler() (*accountHTTP.AccountHandler, error) {
	var err error
	c.accountHandlerInit.Do(func() {
		c.accountHandler, err = c.initAccountHandler()
		if err != nil {
			c.initErrors["accountHandler"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["accountHandler"]; exists {
		return nil, storedErr
	}
	return c.accountHandler, nil
}

// initAccountRepository creates the account repository instance.
func (c *Container) initAccountRepository() (accountUsecase.AccountRepository, error) {
	db, err := c.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database for account repository: %w", err)
	}

	// Select the appropriate repository based on the database driver
	switch c.config.DBDriver {
	case "mysql":
		return accountRepository.NewMySQLAccountRepository(db), nil
	case "postgres":
		return accountRepository.NewPostgreSQLAccountRepository(db), nil
	default:
		return nil, fmt.Errorf("unsupported database driver: %s", c.config.DBDriver)
	}
}

// initAccountUseCase creates the account use case with all its dependencies.
func (c *Container) initAccountUseCase() (accountUsecase.UseCase, error) {
	txManager, err := c.TxManager()
	if err != nil {
		return nil, fmt.Errorf("failed to get tx manager for account use case: %w", err)
	}

	accountRepo, err := c.AccountRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get account repository for account use case: %w", err)
	}

	codec, err := c.TokenCodec()
	if err != nil {
		return nil, fmt.Errorf("failed to get token codec for account use case: %w", err)
	}

	useCase, err := accountUsecase.NewAccountUseCase(
		txManager,
		accountRepo,
		codec,
		c.config.AccessTokenExpiration,
		c.Logger(),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create account use case: %w", err)
	}

	businessMetrics, err := c.BusinessMetrics()
	if err != nil {
		return nil, fmt.Errorf("failed to get business metrics for account use case: %w", err)
	}

	return accountUsecase.NewAccountUseCaseWithMetrics(useCase, businessMetrics), nil
}

// initAccountHandler creates the account HTTP handler.
func (c *Container) initAccountHandler() (*accountHTTP.AccountHandler, error) {
	useCase, err := c.AccountUseCase()
	if err != nil {
		return nil, fmt.Errorf("failed to get account use case for account handler: %w", err)
	}

	return accountHTTP.NewAccountHandler(useCase, c.config.AccessTokenExpiration, c.Logger()), nil
}
