package app

import (
	"fmt"

	postHTTP "github.com/restboard/restboard/internal/post/http"
	postRepository "github.com/restboard/restboard/internal/post/repository"
	postUsecase "github.com/restboard/restboard/internal/post/usecase"
)

// PostRepository returns the post repository instance.
func (c *Container) PostRepository() (postUsecase.PostRepository, error) {
	var err error
	c.postRepoInit.Do(func() {
		c.postRepo, err = c.initPostRepository()
		if err != nil {
			c.initErrors["postRepo"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["postRepo"]; exists {
		return nil, storedErr
	}
	return c.postRepo, nil
}

// PostUseCase returns the post use case instance.
func (c *Container) PostUseCase() (postUsecase.UseCase, error) {
	var err error
	c.postUseCaseInit.Do(func() {
		c.postUseCase, err = c.initPostUseCase()
		if err != nil {
			c.initErrors["postUseCase"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["postUseCase"]; exists {
		return nil, storedErr
	}
	return c.postUseCase, nil
}

// PostHandler returns the post HTTP handler instance.
func (c *Container) PostHandler() (*postHTTP.PostHandler, error) {
	var err error
	c.postHandlerInit.Do(func() {
		c.postHandler, err = c.initPostHandler()
		if err != nil {
			c.initErrors["postHandler"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["postHandler"]; exists {
		return nil, storedErr
	}
	return c.postHandler, nil
}

// initPostRepository creates the post repository instance.
func (c *Container) initPostRepository() (postUsecase.PostRepository, error) {
	db, err := c.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database for post repository: %w", err)
	}

	// Select the appropriate repository based on the database driver
	switch c.config.DBDriver {
	case "mysql":
		return postRepository.NewMySQLPostRepository(db), nil
	case "postgres":
		return postRepository.NewPostgreSQLPostRepository(db), nil
	default:
		return nil, fmt.Errorf("unsupported database driver: %s", c.config.DBDriver)
	}
}

// initPostUseCase creates the post use case with its dependencies.
func (c *Container) initPostUseCase() (postUsecase.UseCase, error) {
	postRepo, err := c.PostRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get post repository for post use case: %w", err)
	}

	useCase := postUsecase.NewPostUseCase(postRepo, c.Logger())

	businessMetrics, err := c.BusinessMetrics()
	if err != nil {
		return nil, fmt.Errorf("failed to get business metrics for post use case: %w", err)
	}

	return postUsecase.NewPostUseCaseWithMetrics(useCase, businessMetrics), nil
}

// initPostHandler creates the post HTTP handler.
func (c *Container) initPostHandler() (*postHTTP.PostHandler, error) {
	useCase, err := c.PostUseCase()
	if err != nil {
		return nil, fmt.Errorf("failed to get post use case for post handler: %w", err)
	}

	return postHTTP.NewPostHandler(useCase, c.Logger()), nil
}
