package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/rtsdrums-eng/kitchen-app/internal/api/handler"
	"github.com/rtsdrums-eng/kitchen-app/internal/api/middleware"
	"github.com/rtsdrums-eng/kitchen-app/internal/core/service"
	"github.com/rtsdrums-eng/kitchen-app/internal/infrastructure/config"
	mongostore "github.com/rtsdrums-eng/kitchen-app/internal/infrastructure/db/mongo"
	redisdb "github.com/rtsdrums-eng/kitchen-app/internal/infrastructure/db/redis"
	"github.com/rtsdrums-eng/kitchen-app/internal/infrastructure/http/handlers"
)

// NewRouter builds and returns the Echo instance with all routes registered.
// audit is the asynchronous sink for acceptance audit events; its lifecycle
// (worker startup/shutdown) is owned by the caller.
func NewRouter(
	client *mongo.Client,
	db *mongo.Database,
	rdb *redis.Client,
	audit service.AuditSink,
	cfg *config.Config,
	log zerolog.Logger,
) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echoprometheus.NewMiddleware("household"))

	// --- Dependencies ---
	store := mongostore.NewAcceptanceStore(client, db)
	cache := redisdb.NewTerminalCache(rdb)
	acceptanceService := service.NewAcceptanceService(store, cache, audit, cfg.AcceptTxMaxAttempts, log)
	invitationHandler := handler.NewInvitationHandler(acceptanceService)

	// --- Acceptance route ---
	// Bearer verification applies only when a secret is configured; tokens
	// themselves come from the external identity provider.
	if cfg.JWTSecret != "" {
		e.POST("/acceptInvitation", invitationHandler.Accept, middleware.Auth(cfg.JWTSecret))
	} else {
		e.POST("/acceptInvitation", invitationHandler.Accept)
	}

	// --- Health probes (no auth required) ---
	healthHandler := handlers.NewHealthHandler()
	healthDepsHandler := handlers.NewHealthDependenciesHandler(db, rdb)

	e.GET("/health", healthHandler.Liveness)            // liveness  – is the process alive?
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness – are dependencies up?

	// --- Metrics scrape endpoint ---
	e.GET("/metrics", echoprometheus.NewHandler())

	return e
}
