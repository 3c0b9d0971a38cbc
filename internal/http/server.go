package http

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/metric"

	authHTTP "github.com/allisson/subtrack/internal/auth/http"
	credentialsHTTP "github.com/allisson/subtrack/internal/credentials/http"
	"github.com/allisson/subtrack/internal/metrics"
	ratelimitDomain "github.com/allisson/subtrack/internal/ratelimit/domain"
	ratelimitHTTP "github.com/allisson/subtrack/internal/ratelimit/http"
	ratelimitUseCase "github.com/allisson/subtrack/internal/ratelimit/usecase"
	sharingHTTP "github.com/allisson/subtrack/internal/sharing/http"
	subscriptionsHTTP "github.com/allisson/subtrack/internal/subscriptions/http"
)

// ServerConfig holds the settings the server needs beyond its handlers.
type ServerConfig struct {
	Host                 string
	Port                 int
	JWTSecret            string
	RateLimitEnabled     bool
	InviteRequestsPerSec float64
	InviteBurst          int
	CORSEnabled          bool
	CORSAllowOrigins     string
	MetricsNamespace     string
}

// Server represents the API HTTP server.
type Server struct {
	server *http.Server
	config ServerConfig
	logger *slog.Logger

	subscriptionHandler *subscriptionsHTTP.SubscriptionHandler
	shareHandler        *sharingHTTP.ShareHandler
	settingsHandler     *credentialsHTTP.SettingsHandler
	rateLimitUseCase    ratelimitUseCase.UseCase
	meterProvider       metric.MeterProvider
}

// NewServer creates a new API server. meterProvider may be nil when metrics
// are disabled.
func NewServer(
	cfg ServerConfig,
	logger *slog.Logger,
	subscriptionHandler *subscriptionsHTTP.SubscriptionHandler,
	shareHandler *sharingHTTP.ShareHandler,
	settingsHandler *credentialsHTTP.SettingsHandler,
	rateLimitUseCase ratelimitUseCase.UseCase,
	meterProvider metric.MeterProvider,
) *Server {
	return &Server{
		config:              cfg,
		logger:              logger,
		subscriptionHandler: subscriptionHandler,
		shareHandler:        shareHandler,
		settingsHandler:     settingsHandler,
		rateLimitUseCase:    rateLimitUseCase,
		meterProvider:       meterProvider,
		server: &http.Server{
			Addr:         fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
			ReadTimeout:  15 * time.Second,
			WriteTimeout: 15 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
	}
}

// setupRouter assembles the gin router with all middleware and routes.
// ctx drives the readiness endpoint: once it is cancelled the server reports
// not ready so load balancers drain before shutdown completes.
func (s *Server) setupRouter(ctx context.Context) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(requestid.New())
	router.Use(CustomLoggerMiddleware(s.logger))

	if corsMiddleware := createCORSMiddleware(s.config.CORSEnabled, s.config.CORSAllowOrigins, s.logger); corsMiddleware != nil {
		router.Use(corsMiddleware)
	}

	if s.meterProvider != nil {
		router.Use(metrics.HTTPMetricsMiddleware(s.meterProvider, s.config.MetricsNamespace))
	}

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "healthy"})
	})
	router.GET("/ready", func(c *gin.Context) {
		select {
		case <-ctx.Done():
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "not ready"})
		default:
			c.JSON(http.StatusOK, gin.H{"status": "ready"})
		}
	})

	// Public invite endpoints. These carry capability tokens instead of
	// credentials, so abuse control is per source IP.
	public := router.Group("/v1")
	public.Use(ratelimitHTTP.IPRateLimitMiddleware(
		s.config.InviteRequestsPerSec,
		s.config.InviteBurst,
		s.logger,
	))
	public.GET("/invites/:token", s.shareHandler.GetInviteInfoHandler)
	public.GET("/invites/:token/qrcode", s.shareHandler.InviteQRCodeHandler)

	// Authenticated endpoints. Mutations share one durable per-user window.
	authenticated := router.Group("/v1")
	authenticated.Use(authHTTP.AuthenticationMiddleware(s.config.JWTSecret, s.logger))

	mutations := ratelimitHTTP.RateLimitMiddleware(
		ratelimitDomain.OperationMutations,
		s.rateLimitUseCase,
		s.config.RateLimitEnabled,
		s.logger,
	)

	authenticated.GET("/subscriptions", s.subscriptionHandler.ListHandler)
	authenticated.POST("/subscriptions", mutations, s.subscriptionHandler.CreateHandler)
	authenticated.GET("/subscriptions/:id", s.subscriptionHandler.GetHandler)
	authenticated.PUT("/subscriptions/:id", mutations, s.subscriptionHandler.UpdateHandler)
	authenticated.DELETE("/subscriptions/:id", mutations, s.subscriptionHandler.DeleteHandler)
	authenticated.GET("/subscriptions/:id/roi", s.shareHandler.SubscriptionROIHandler)

	authenticated.POST("/subscriptions/:id/invites", mutations, s.shareHandler.CreateInviteHandler)
	authenticated.POST("/invites/:token/claim", mutations, s.shareHandler.ClaimInviteHandler)
	authenticated.DELETE("/invites/:id", mutations, s.shareHandler.RevokeInviteHandler)

	authenticated.POST("/subscriptions/:id/shares", mutations, s.shareHandler.AddAnonymousShareHandler)
	authenticated.DELETE("/shares/:id", mutations, s.shareHandler.RemoveShareHandler)
	authenticated.POST("/shares/:id/hide", mutations, s.shareHandler.ToggleHideShareHandler)
	authenticated.GET("/shared-with-me", s.shareHandler.SharedWithMeHandler)

	authenticated.GET("/settings", s.settingsHandler.GetSettingsHandler)
	authenticated.PUT("/settings/display-name", mutations, s.settingsHandler.SetDisplayNameHandler)
	authenticated.PUT("/settings/api-key", mutations, s.settingsHandler.SetAPIKeyHandler)
	authenticated.GET("/settings/api-key", s.settingsHandler.GetAPIKeyHandler)

	return router
}

// Start assembles the router and starts the HTTP server.
func (s *Server) Start(ctx context.Context) error {
	s.server.Handler = s.setupRouter(ctx)

	s.logger.Info("starting http server", slog.String("addr", s.server.Addr))

	if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("failed to start server: %w", err)
	}

	return nil
}

// Shutdown gracefully shuts down the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("shutting down http server")
	return s.server.Shutdown(ctx)
}
