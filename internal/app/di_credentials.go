package app

import (
	"fmt"

	credentialsHTTP "github.com/allisson/subtrack/internal/credentials/http"
	credentialsRepository "github.com/allisson/subtrack/internal/credentials/repository"
	credentialsUseCase "github.com/allisson/subtrack/internal/credentials/usecase"
)

// SettingsRepository returns the user settings repository based on the database driver.
func (c *Container) SettingsRepository() (credentialsUseCase.SettingsRepository, error) {
	c.settingsRepoInit.Do(func() {
		db, err := c.DB()
		if err != nil {
			c.initErrors["settingsRepo"] = fmt.Errorf("failed to get database for settings repository: %w", err)
			return
		}

		switch c.config.DBDriver {
		case "mysql":
			c.settingsRepo = credentialsRepository.NewMySQLSettingsRepository(db)
		case "postgres":
			c.settingsRepo = credentialsRepository.NewPostgreSQLSettingsRepository(db)
		default:
			c.initErrors["settingsRepo"] = fmt.Errorf("unsupported database driver: %s", c.config.DBDriver)
		}
	})
	if storedErr, exists := c.initErrors["settingsRepo"]; exists {
		return nil, storedErr
	}
	return c.settingsRepo, nil
}

// CredentialsUseCase returns the credentials use case instance.
func (c *Container) CredentialsUseCase() (credentialsUseCase.CredentialsUseCase, error) {
	c.credentialsUCInit.Do(func() {
		settingsRepo, err := c.SettingsRepository()
		if err != nil {
			c.initErrors["credentialsUseCase"] = err
			return
		}

		keychain, err := c.Keychain()
		if err != nil {
			c.initErrors["credentialsUseCase"] = err
			return
		}

		c.credentialsUC = credentialsUseCase.NewCredentialsUseCase(settingsRepo, keychain)
	})
	if storedErr, exists := c.initErrors["credentialsUseCase"]; exists {
		return nil, storedErr
	}
	return c.credentialsUC, nil
}

// SettingsHandler returns the settings HTTP handler instance.
func (c *Container) SettingsHandler() (*credentialsHTTP.SettingsHandler, error) {
	c.settingsHandlerInit.Do(func() {
		useCase, err := c.CredentialsUseCase()
		if err != nil {
			c.initErrors["settingsHandler"] = err
			return
		}
		c.settingsHandler = credentialsHTTP.NewSettingsHandler(useCase, c.Logger())
	})
	if storedErr, exists := c.initErrors["settingsHandler"]; exists {
		return nil, storedErr
	}
	return c.settingsHandler, nil
}
