// Package app provides dependency injection container for assembling application components.
package app

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"sync"

	"go.opentelemetry.io/otel/metric"

	"github.com/allisson/subtrack/internal/config"
	credentialsHTTP "github.com/allisson/subtrack/internal/credentials/http"
	credentialsUseCase "github.com/allisson/subtrack/internal/credentials/usecase"
	cryptoService "github.com/allisson/subtrack/internal/crypto/service"
	"github.com/allisson/subtrack/internal/database"
	"github.com/allisson/subtrack/internal/http"
	"github.com/allisson/subtrack/internal/metrics"
	ratelimitUseCase "github.com/allisson/subtrack/internal/ratelimit/usecase"
	sharingHTTP "github.com/allisson/subtrack/internal/sharing/http"
	sharingUseCase "github.com/allisson/subtrack/internal/sharing/usecase"
	subscriptionsHTTP "github.com/allisson/subtrack/internal/subscriptions/http"
	subscriptionsUseCase "github.com/allisson/subtrack/internal/subscriptions/usecase"
)

// Container holds all application dependencies and provides methods to access them.
// It follows the lazy initialization pattern - components are created on first access.
type Container struct {
	// Configuration
	config *config.Config

	// Infrastructure
	logger *slog.Logger
	db     *sql.DB

	// Managers and services
	txManager       database.TxManager
	keychain        *cryptoService.Keychain
	metricsProvider *metrics.Provider
	businessMetrics metrics.BusinessMetrics

	// Repositories
	subscriptionRepo subscriptionsUseCase.SubscriptionRepository
	shareRepo        sharingUseCase.ShareRepository
	inviteRepo       sharingUseCase.InviteRepository
	settingsRepo     credentialsUseCase.SettingsRepository
	counterRepo      ratelimitUseCase.CounterRepository

	// Use Cases
	subscriptionUC subscriptionsUseCase.SubscriptionUseCase
	shareUC        sharingUseCase.ShareUseCase
	roiUC          sharingUseCase.ROIUseCase
	credentialsUC  credentialsUseCase.CredentialsUseCase
	rateLimitUC    ratelimitUseCase.UseCase

	// Handlers
	subscriptionHandler *subscriptionsHTTP.SubscriptionHandler
	shareHandler        *sharingHTTP.ShareHandler
	settingsHandler     *credentialsHTTP.SettingsHandler

	// Servers
	httpServer    *http.Server
	metricsServer *http.MetricsServer

	// Initialization flags and mutex for thread-safety
	mu                      sync.Mutex
	loggerInit              sync.Once
	dbInit                  sync.Once
	txManagerInit           sync.Once
	keychainInit            sync.Once
	metricsProviderInit     sync.Once
	businessMetricsInit     sync.Once
	subscriptionRepoInit    sync.Once
	shareRepoInit           sync.Once
	inviteRepoInit          sync.Once
	settingsRepoInit        sync.Once
	counterRepoInit         sync.Once
	subscriptionUCInit      sync.Once
	shareUCInit             sync.Once
	roiUCInit               sync.Once
	credentialsUCInit       sync.Once
	rateLimitUCInit         sync.Once
	subscriptionHandlerInit sync.Once
	shareHandlerInit        sync.Once
	settingsHandlerInit     sync.Once
	httpServerInit          sync.Once
	metricsServerInit       sync.Once
	initErrors              map[string]error
}

// NewContainer creates a new dependency injection container with the provided configuration.
func NewContainer(cfg *config.Config) *Container {
	return &Container{
		config:     cfg,
		initErrors: make(map[string]error),
	}
}

// Config returns the application configuration.
func (c *Container) Config() *config.Config {
	return c.config
}

// Logger returns the configured logger instance.
// It creates a new logger on first access based on the log level in configuration.
func (c *Container) Logger() *slog.Logger {
	c.loggerInit.Do(func() {
		c.logger = c.initLogger()
	})
	return c.logger
}

// DB returns the database connection.
// It creates and configures the database connection on first access.
func (c *Container) DB() (*sql.DB, error) {
	c.dbInit.Do(func() {
		db, err := c.initDB()
		if err != nil {
			c.initErrors["db"] = err
			return
		}
		c.db = db
	})
	if storedErr, exists := c.initErrors["db"]; exists {
		return nil, storedErr
	}
	return c.db, nil
}

// TxManager returns the transaction manager.
// It requires a database connection to be initialized first.
func (c *Container) TxManager() (database.TxManager, error) {
	c.txManagerInit.Do(func() {
		db, err := c.DB()
		if err != nil {
			c.initErrors["txManager"] = fmt.Errorf("failed to get database for tx manager: %w", err)
			return
		}
		c.txManager = database.NewTxManager(db)
	})
	if storedErr, exists := c.initErrors["txManager"]; exists {
		return nil, storedErr
	}
	return c.txManager, nil
}

// Keychain returns the envelope encryption keychain.
// When a KMS key URI is configured, the key values are unwrapped at startup.
func (c *Container) Keychain() (*cryptoService.Keychain, error) {
	c.keychainInit.Do(func() {
		keychain, err := c.initKeychain()
		if err != nil {
			c.initErrors["keychain"] = err
			return
		}
		c.keychain = keychain
	})
	if storedErr, exists := c.initErrors["keychain"]; exists {
		return nil, storedErr
	}
	return c.keychain, nil
}

// MetricsProvider returns the metrics provider, nil when metrics are disabled.
func (c *Container) MetricsProvider() (*metrics.Provider, error) {
	c.metricsProviderInit.Do(func() {
		if !c.config.MetricsEnabled {
			return
		}
		provider, err := metrics.NewProvider(c.config.MetricsNamespace)
		if err != nil {
			c.initErrors["metricsProvider"] = fmt.Errorf("failed to create metrics provider: %w", err)
			return
		}
		c.metricsProvider = provider
	})
	if storedErr, exists := c.initErrors["metricsProvider"]; exists {
		return nil, storedErr
	}
	return c.metricsProvider, nil
}

// BusinessMetrics returns the business metrics recorder.
// A no-op recorder is returned when metrics are disabled.
func (c *Container) BusinessMetrics() (metrics.BusinessMetrics, error) {
	c.businessMetricsInit.Do(func() {
		provider, err := c.MetricsProvider()
		if err != nil {
			c.initErrors["businessMetrics"] = err
			return
		}
		if provider == nil {
			c.businessMetrics = metrics.NewNoOpBusinessMetrics()
			return
		}
		businessMetrics, err := metrics.NewBusinessMetrics(provider.MeterProvider(), c.config.MetricsNamespace)
		if err != nil {
			c.initErrors["businessMetrics"] = fmt.Errorf("failed to create business metrics: %w", err)
			return
		}
		c.businessMetrics = businessMetrics
	})
	if storedErr, exists := c.initErrors["businessMetrics"]; exists {
		return nil, storedErr
	}
	return c.businessMetrics, nil
}

// HTTPServer returns the API HTTP server instance.
func (c *Container) HTTPServer() (*http.Server, error) {
	c.httpServerInit.Do(func() {
		server, err := c.initHTTPServer()
		if err != nil {
			c.initErrors["httpServer"] = err
			return
		}
		c.httpServer = server
	})
	if storedErr, exists := c.initErrors["httpServer"]; exists {
		return nil, storedErr
	}
	return c.httpServer, nil
}

// MetricsServer returns the metrics server instance, nil when metrics are disabled.
func (c *Container) MetricsServer() (*http.MetricsServer, error) {
	c.metricsServerInit.Do(func() {
		provider, err := c.MetricsProvider()
		if err != nil {
			c.initErrors["metricsServer"] = err
			return
		}
		if provider == nil {
			return
		}
		c.metricsServer = http.NewMetricsServer(
			c.config.ServerHost,
			c.config.MetricsPort,
			c.Logger(),
			provider,
		)
	})
	if storedErr, exists := c.initErrors["metricsServer"]; exists {
		return nil, storedErr
	}
	return c.metricsServer, nil
}

// Shutdown performs cleanup of all initialized resources.
// It should be called when the application is shutting down.
func (c *Container) Shutdown(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	var shutdownErrors []error

	if c.httpServer != nil {
		if err := c.httpServer.Shutdown(ctx); err != nil {
			shutdownErrors = append(shutdownErrors, fmt.Errorf("http server shutdown: %w", err))
		}
	}

	if c.metricsServer != nil {
		if err := c.metricsServer.Shutdown(ctx); err != nil {
			shutdownErrors = append(shutdownErrors, fmt.Errorf("metrics server shutdown: %w", err))
		}
	}

	if c.metricsProvider != nil {
		if err := c.metricsProvider.Shutdown(ctx); err != nil {
			shutdownErrors = append(shutdownErrors, fmt.Errorf("metrics provider shutdown: %w", err))
		}
	}

	if c.db != nil {
		if err := c.db.Close(); err != nil {
			shutdownErrors = append(shutdownErrors, fmt.Errorf("database close: %w", err))
		}
	}

	if len(shutdownErrors) > 0 {
		return fmt.Errorf("shutdown errors: %v", shutdownErrors)
	}

	return nil
}

// initLogger creates and configures a structured logger based on the log level.
func (c *Container) initLogger() *slog.Logger {
	var logLevel slog.Level
	switch c.config.LogLevel {
	case "debug":
		logLevel = slog.LevelDebug
	case "info":
		logLevel = slog.LevelInfo
	case "warn":
		logLevel = slog.LevelWarn
	case "error":
		logLevel = slog.LevelError
	default:
		logLevel = slog.LevelInfo
	}

	handler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	})

	return slog.New(handler)
}

// initDB creates and configures the database connection.
func (c *Container) initDB() (*sql.DB, error) {
	db, err := database.Connect(database.Config{
		Driver:             c.config.DBDriver,
		ConnectionString:   c.config.DBConnectionString,
		MaxOpenConnections: c.config.DBMaxOpenConnections,
		MaxIdleConnections: c.config.DBMaxIdleConnections,
		ConnMaxLifetime:    c.config.DBConnMaxLifetime,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	return db, nil
}

// initKeychain builds the keychain, unwrapping KMS-wrapped key values when a
// KMS key URI is configured.
func (c *Container) initKeychain() (*cryptoService.Keychain, error) {
	currentKey := c.config.EncryptionKey
	previousKey := c.config.EncryptionKeyPrevious

	if c.config.EncryptionKMSKeyURI != "" {
		ctx := context.Background()

		keeper, err := cryptoService.NewKMSService().OpenKeeper(ctx, c.config.EncryptionKMSKeyURI)
		if err != nil {
			return nil, fmt.Errorf("failed to open kms keeper: %w", err)
		}
		defer func() { _ = keeper.Close() }()

		currentKey, err = cryptoService.UnwrapKey(ctx, keeper, currentKey)
		if err != nil {
			return nil, fmt.Errorf("failed to unwrap current encryption key: %w", err)
		}

		if previousKey != "" {
			previousKey, err = cryptoService.UnwrapKey(ctx, keeper, previousKey)
			if err != nil {
				return nil, fmt.Errorf("failed to unwrap previous encryption key: %w", err)
			}
		}
	}

	keychain, err := cryptoService.NewKeychain(cryptoService.KeychainConfig{
		CurrentKey:  currentKey,
		PreviousKey: previousKey,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create keychain: %w", err)
	}
	return keychain, nil
}

// initHTTPServer creates the API HTTP server with all its dependencies.
func (c *Container) initHTTPServer() (*http.Server, error) {
	subscriptionHandler, err := c.SubscriptionHandler()
	if err != nil {
		return nil, fmt.Errorf("failed to get subscription handler for http server: %w", err)
	}

	shareHandler, err := c.ShareHandler()
	if err != nil {
		return nil, fmt.Errorf("failed to get share handler for http server: %w", err)
	}

	settingsHandler, err := c.SettingsHandler()
	if err != nil {
		return nil, fmt.Errorf("failed to get settings handler for http server: %w", err)
	}

	rateLimitUC, err := c.RateLimitUseCase()
	if err != nil {
		return nil, fmt.Errorf("failed to get rate limit use case for http server: %w", err)
	}

	serverConfig := http.ServerConfig{
		Host:                 c.config.ServerHost,
		Port:                 c.config.ServerPort,
		JWTSecret:            c.config.JWTSecret,
		RateLimitEnabled:     c.config.RateLimitEnabled,
		InviteRequestsPerSec: c.config.RateLimitInviteRequestsPerSec,
		InviteBurst:          c.config.RateLimitInviteBurst,
		CORSEnabled:          c.config.CORSEnabled,
		CORSAllowOrigins:     c.config.CORSAllowOrigins,
		MetricsNamespace:     c.config.MetricsNamespace,
	}

	provider, err := c.MetricsProvider()
	if err != nil {
		return nil, err
	}

	server := http.NewServer(
		serverConfig,
		c.Logger(),
		subscriptionHandler,
		shareHandler,
		settingsHandler,
		rateLimitUC,
		meterProviderOrNil(provider),
	)

	return server, nil
}

// meterProviderOrNil avoids handing the server a typed nil when metrics are
// disabled.
func meterProviderOrNil(provider *metrics.Provider) metric.MeterProvider {
	if provider == nil {
		return nil
	}
	return provider.MeterProvider()
}
