package app

import (
	"fmt"

	ratelimitRepository "github.com/allisson/subtrack/internal/ratelimit/repository"
	ratelimitUseCase "github.com/allisson/subtrack/internal/ratelimit/usecase"
)

// CounterRepository returns the rate limit counter repository based on the database driver.
func (c *Container) CounterRepository() (ratelimitUseCase.CounterRepository, error) {
	c.counterRepoInit.Do(func() {
		db, err := c.DB()
		if err != nil {
			c.initErrors["counterRepo"] = fmt.Errorf("failed to get database for counter repository: %w", err)
			return
		}

		switch c.config.DBDriver {
		case "mysql":
			c.counterRepo = ratelimitRepository.NewMySQLCounterRepository(db)
		case "postgres":
			c.counterRepo = ratelimitRepository.NewPostgreSQLCounterRepository(db)
		default:
			c.initErrors["counterRepo"] = fmt.Errorf("unsupported database driver: %s", c.config.DBDriver)
		}
	})
	if storedErr, exists := c.initErrors["counterRepo"]; exists {
		return nil, storedErr
	}
	return c.counterRepo, nil
}

// RateLimitUseCase returns the rate limit use case instance.
func (c *Container) RateLimitUseCase() (ratelimitUseCase.UseCase, error) {
	c.rateLimitUCInit.Do(func() {
		counterRepo, err := c.CounterRepository()
		if err != nil {
			c.initErrors["rateLimitUseCase"] = err
			return
		}

		c.rateLimitUC = ratelimitUseCase.NewRateLimitUseCase(counterRepo, ratelimitUseCase.NewClock())
	})
	if storedErr, exists := c.initErrors["rateLimitUseCase"]; exists {
		return nil, storedErr
	}
	return c.rateLimitUC, nil
}
