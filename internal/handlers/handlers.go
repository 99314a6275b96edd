package handlers

import (
	"github.com/sirupsen/logrus"

	"github.com/reclab/blendsvc/internal/config"
	"github.com/reclab/blendsvc/internal/services"
)

type Handlers struct {
	Health         *HealthHandler
	Recommendation *RecommendationHandler
	Event          *EventHandler
}

func New(logger *logrus.Logger, services *services.Services, cfg *config.Config) *Handlers {
	return &Handlers{
		Health:         NewHealthHandler(logger, services.Health),
		Recommendation: NewRecommendationHandler(services.Orchestrator, cfg.Recommendation.DefaultK, logger),
		Event:          NewEventHandler(logger, services.Events),
	}
}
