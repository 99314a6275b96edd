package app

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/reclab/blendsvc/internal/clients"
	"github.com/reclab/blendsvc/internal/config"
	"github.com/reclab/blendsvc/internal/handlers"
	"github.com/reclab/blendsvc/internal/middleware"
	"github.com/reclab/blendsvc/internal/offline"
	"github.com/reclab/blendsvc/internal/services"
)

type App struct {
	config   *config.Config
	logger   *logrus.Logger
	store    *offline.Store
	redis    *redis.Client
	services *services.Services
	handlers *handlers.Handlers
	router   *gin.Engine
}

func New(cfg *config.Config) (*App, error) {
	app := &App{
		config: cfg,
		logger: setupLogger(cfg),
	}

	// Load the offline snapshot collections. A missing or malformed
	// collection is fatal here so it never surfaces per-request.
	personal, err := offline.Load(offline.CollectionPersonal, cfg.Offline.PersonalPath, offline.PersonalColumns, app.logger)
	if err != nil {
		return nil, fmt.Errorf("failed to load personal collection: %w", err)
	}

	fallback, err := offline.Load(offline.CollectionDefault, cfg.Offline.DefaultPath, offline.DefaultColumns, app.logger)
	if err != nil {
		return nil, fmt.Errorf("failed to load default collection: %w", err)
	}

	store, err := offline.NewStore(personal, fallback, app.logger)
	if err != nil {
		return nil, err
	}
	app.store = store

	// One shared HTTP client for both collaborator stores; it carries the
	// outbound timeout.
	httpClient := &http.Client{Timeout: cfg.Stores.Timeout}
	events := clients.NewEventStoreClient(cfg.Stores.EventsURL, httpClient, app.logger)
	features := clients.NewFeatureStoreClient(cfg.Stores.FeaturesURL, httpClient, app.logger)

	if cfg.RateLimit.Enabled {
		opts, err := redis.ParseURL(cfg.RateLimit.RedisURL)
		if err != nil {
			return nil, fmt.Errorf("failed to parse rate limit redis url: %w", err)
		}
		app.redis = redis.NewClient(opts)
	}

	svcs, err := services.New(cfg, app.logger, store, events, features, app.redis)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize services: %w", err)
	}
	app.services = svcs

	app.handlers = handlers.New(app.logger, svcs, cfg)

	app.setupRouter()

	return app, nil
}

func (a *App) Router() *gin.Engine {
	return a.router
}

func (a *App) Shutdown(ctx context.Context) error {
	a.logger.Info("Shutting down application...")

	a.store.LogStats()

	if a.redis != nil {
		if err := a.redis.Close(); err != nil {
			a.logger.WithError(err).Error("Error closing redis connection")
			return err
		}
	}

	return nil
}

func setupLogger(cfg *config.Config) *logrus.Logger {
	logger := logrus.New()

	level, err := logrus.ParseLevel(cfg.Logging.Level)
	if err != nil {
		level = logrus.InfoLevel
	}
	logger.SetLevel(level)

	if cfg.Logging.Format == "json" {
		logger.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logger.SetFormatter(&logrus.TextFormatter{
			FullTimestamp: true,
		})
	}

	return logger
}

func (a *App) setupRouter() {
	if a.config.Server.Mode == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	// Global middleware
	router.Use(middleware.RequestID())
	router.Use(middleware.Logger(a.logger))
	router.Use(middleware.Recovery(a.logger))
	router.Use(middleware.CORS(a.config))
	router.Use(middleware.Compression())

	// Health check endpoint
	router.GET("/health", a.handlers.Health.Check)

	// Prometheus metrics endpoint
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// API routes
	api := router.Group("/api/v1")
	{
		if a.services.RateLimit != nil {
			api.Use(middleware.RateLimit(a.services.RateLimit, a.logger))
		}

		// Recommendation routes
		recommendations := api.Group("/recommendations")
		{
			recommendations.GET("/:userId", a.handlers.Recommendation.Blended)
			recommendations.GET("/:userId/offline", a.handlers.Recommendation.Offline)
			recommendations.GET("/:userId/online", a.handlers.Recommendation.Online)
		}

		// Interaction write path, proxied to the event store
		api.POST("/events", a.handlers.Event.Record)
	}

	a.router = router
}
