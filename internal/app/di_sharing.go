package app

import (
	"fmt"

	sharingHTTP "github.com/allisson/subtrack/internal/sharing/http"
	sharingRepository "github.com/allisson/subtrack/internal/sharing/repository"
	sharingUseCase "github.com/allisson/subtrack/internal/sharing/usecase"
)

// ShareRepository returns the share repository based on the database driver.
func (c *Container) ShareRepository() (sharingUseCase.ShareRepository, error) {
	c.shareRepoInit.Do(func() {
		db, err := c.DB()
		if err != nil {
			c.initErrors["shareRepo"] = fmt.Errorf("failed to get database for share repository: %w", err)
			return
		}

		switch c.config.DBDriver {
		case "mysql":
			c.shareRepo = sharingRepository.NewMySQLShareRepository(db)
		case "postgres":
			c.shareRepo = sharingRepository.NewPostgreSQLShareRepository(db)
		default:
			c.initErrors["shareRepo"] = fmt.Errorf("unsupported database driver: %s", c.config.DBDriver)
		}
	})
	if storedErr, exists := c.initErrors["shareRepo"]; exists {
		return nil, storedErr
	}
	return c.shareRepo, nil
}

// InviteRepository returns the invite repository based on the database driver.
func (c *Container) InviteRepository() (sharingUseCase.InviteRepository, error) {
	c.inviteRepoInit.Do(func() {
		db, err := c.DB()
		if err != nil {
			c.initErrors["inviteRepo"] = fmt.Errorf("failed to get database for invite repository: %w", err)
			return
		}

		switch c.config.DBDriver {
		case "mysql":
			c.inviteRepo = sharingRepository.NewMySQLInviteRepository(db)
		case "postgres":
			c.inviteRepo = sharingRepository.NewPostgreSQLInviteRepository(db)
		default:
			c.initErrors["inviteRepo"] = fmt.Errorf("unsupported database driver: %s", c.config.DBDriver)
		}
	})
	if storedErr, exists := c.initErrors["inviteRepo"]; exists {
		return nil, storedErr
	}
	return c.inviteRepo, nil
}

// ShareUseCase returns the share use case instance.
// Owner names resolve through the credentials use case, and the result is
// wrapped with business metrics when metrics are enabled.
func (c *Container) ShareUseCase() (sharingUseCase.ShareUseCase, error) {
	c.shareUCInit.Do(func() {
		txManager, err := c.TxManager()
		if err != nil {
			c.initErrors["shareUseCase"] = fmt.Errorf("failed to get tx manager for share use case: %w", err)
			return
		}

		inviteRepo, err := c.InviteRepository()
		if err != nil {
			c.initErrors["shareUseCase"] = err
			return
		}

		shareRepo, err := c.ShareRepository()
		if err != nil {
			c.initErrors["shareUseCase"] = err
			return
		}

		subscriptionRepo, err := c.SubscriptionRepository()
		if err != nil {
			c.initErrors["shareUseCase"] = err
			return
		}

		credentialsUC, err := c.CredentialsUseCase()
		if err != nil {
			c.initErrors["shareUseCase"] = err
			return
		}

		useCase := sharingUseCase.NewShareUseCase(
			txManager,
			inviteRepo,
			shareRepo,
			subscriptionRepo,
			credentialsUC,
			sharingUseCase.NewClock(),
		)

		businessMetrics, err := c.BusinessMetrics()
		if err != nil {
			c.initErrors["shareUseCase"] = err
			return
		}

		c.shareUC = sharingUseCase.NewShareUseCaseWithMetrics(useCase, businessMetrics)
	})
	if storedErr, exists := c.initErrors["shareUseCase"]; exists {
		return nil, storedErr
	}
	return c.shareUC, nil
}

// ROIUseCase returns the seat utilization use case instance.
func (c *Container) ROIUseCase() (sharingUseCase.ROIUseCase, error) {
	c.roiUCInit.Do(func() {
		shareRepo, err := c.ShareRepository()
		if err != nil {
			c.initErrors["roiUseCase"] = err
			return
		}

		subscriptionRepo, err := c.SubscriptionRepository()
		if err != nil {
			c.initErrors["roiUseCase"] = err
			return
		}

		c.roiUC = sharingUseCase.NewROIUseCase(shareRepo, subscriptionRepo)
	})
	if storedErr, exists := c.initErrors["roiUseCase"]; exists {
		return nil, storedErr
	}
	return c.roiUC, nil
}

// ShareHandler returns the sharing HTTP handler instance.
func (c *Container) ShareHandler() (*sharingHTTP.ShareHandler, error) {
	c.shareHandlerInit.Do(func() {
		shareUC, err := c.ShareUseCase()
		if err != nil {
			c.initErrors["shareHandler"] = err
			return
		}

		roiUC, err := c.ROIUseCase()
		if err != nil {
			c.initErrors["shareHandler"] = err
			return
		}

		c.shareHandler = sharingHTTP.NewShareHandler(shareUC, roiUC, c.config.InviteBaseURL, c.Logger())
	})
	if storedErr, exists := c.initErrors["shareHandler"]; exists {
		return nil, storedErr
	}
	return c.shareHandler, nil
}
