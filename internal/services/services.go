package services

import (
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/reclab/blendsvc/internal/clients"
	"github.com/reclab/blendsvc/internal/config"
	"github.com/reclab/blendsvc/internal/offline"
)

type Services struct {
	Health       *HealthService
	RateLimit    *RateLimitService
	Events       EventStore
	Online       *OnlineRecommender
	Orchestrator *RecommendationOrchestrator
}

func New(
	cfg *config.Config,
	logger *logrus.Logger,
	store *offline.Store,
	events *clients.EventStoreClient,
	features *clients.FeatureStoreClient,
	redisClient *redis.Client,
) (*Services, error) {
	healthService := NewHealthService(cfg, logger, store)

	// Rate limiting is optional; redisClient is nil when disabled.
	var rateLimitService *RateLimitService
	if redisClient != nil {
		rateLimitService = NewRateLimitService(cfg, logger, redisClient)
	}

	online := NewOnlineRecommender(events, features, cfg.Recommendation.HistorySize, logger)

	orchestrator, err := NewRecommendationOrchestrator(store, online, logger)
	if err != nil {
		return nil, err
	}

	return &Services{
		Health:       healthService,
		RateLimit:    rateLimitService,
		Events:       events,
		Online:       online,
		Orchestrator: orchestrator,
	}, nil
}
