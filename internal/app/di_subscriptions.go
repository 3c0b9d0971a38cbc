package app

import (
	"fmt"

	subscriptionsHTTP "github.com/allisson/subtrack/internal/subscriptions/http"
	subscriptionsRepository "github.com/allisson/subtrack/internal/subscriptions/repository"
	subscriptionsUseCase "github.com/allisson/subtrack/internal/subscriptions/usecase"
)

// SubscriptionRepository returns the subscription repository based on the database driver.
func (c *Container) SubscriptionRepository() (subscriptionsUseCase.SubscriptionRepository, error) {
	c.subscriptionRepoInit.Do(func() {
		db, err := c.DB()
		if err != nil {
			c.initErrors["subscriptionRepo"] = fmt.Errorf("failed to get database for subscription repository: %w", err)
			return
		}

		switch c.config.DBDriver {
		case "mysql":
			c.subscriptionRepo = subscriptionsRepository.NewMySQLSubscriptionRepository(db)
		case "postgres":
			c.subscriptionRepo = subscriptionsRepository.NewPostgreSQLSubscriptionRepository(db)
		default:
			c.initErrors["subscriptionRepo"] = fmt.Errorf("unsupported database driver: %s", c.config.DBDriver)
		}
	})
	if storedErr, exists := c.initErrors["subscriptionRepo"]; exists {
		return nil, storedErr
	}
	return c.subscriptionRepo, nil
}

// SubscriptionUseCase returns the subscription use case instance.
// Deletes cascade through the sharing repositories inside one transaction.
func (c *Container) SubscriptionUseCase() (subscriptionsUseCase.SubscriptionUseCase, error) {
	c.subscriptionUCInit.Do(func() {
		txManager, err := c.TxManager()
		if err != nil {
			c.initErrors["subscriptionUseCase"] = fmt.Errorf("failed to get tx manager for subscription use case: %w", err)
			return
		}

		subscriptionRepo, err := c.SubscriptionRepository()
		if err != nil {
			c.initErrors["subscriptionUseCase"] = err
			return
		}

		shareRepo, err := c.ShareRepository()
		if err != nil {
			c.initErrors["subscriptionUseCase"] = err
			return
		}

		inviteRepo, err := c.InviteRepository()
		if err != nil {
			c.initErrors["subscriptionUseCase"] = err
			return
		}

		c.subscriptionUC = subscriptionsUseCase.NewSubscriptionUseCase(txManager, subscriptionRepo, shareRepo, inviteRepo)
	})
	if storedErr, exists := c.initErrors["subscriptionUseCase"]; exists {
		return nil, storedErr
	}
	return c.subscriptionUC, nil
}

// SubscriptionHandler returns the subscription HTTP handler instance.
func (c *Container) SubscriptionHandler() (*subscriptionsHTTP.SubscriptionHandler, error) {
	c.subscriptionHandlerInit.Do(func() {
		useCase, err := c.SubscriptionUseCase()
		if err != nil {
			c.initErrors["subscriptionHandler"] = err
			return
		}
		c.subscriptionHandler = subscriptionsHTTP.NewSubscriptionHandler(useCase, c.Logger())
	})
	if storedErr, exists := c.initErrors["subscriptionHandler"]; exists {
		return nil, storedErr
	}
	return c.subscriptionHandler, nil
}
