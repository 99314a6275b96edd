package services

import (
	"context"

	"github.com/reclab/blendsvc/pkg/models"
)

// EventStore defines the interface for the event store collaborator.
type EventStore interface {
	RecentEvents(ctx context.Context, userID int64, limit int) ([]int64, error)
	RecordEvent(ctx context.Context, userID, itemID int64) error
}

// FeatureStore defines the interface for the similarity collaborator.
// Responses are ranked by score descending with the query item at index 0.
type FeatureStore interface {
	SimilarItems(ctx context.Context, itemID int64, limit int) ([]models.ScoredItem, error)
}

// OfflineStore defines the read contract of the offline recommendation
// snapshot loaded at startup.
type OfflineStore interface {
	Get(userID int64, k int) []int64
}

// OnlineRecommenderInterface defines the interface for real-time
// recommendation aggregation.
type OnlineRecommenderInterface interface {
	Recommend(ctx context.Context, userID int64, k int) ([]int64, error)
}

// RecommendationOrchestratorInterface defines the interface the handlers
// program against.
type RecommendationOrchestratorInterface interface {
	OfflineRecommendations(userID int64, k int) []int64
	OnlineRecommendations(ctx context.Context, userID int64, k int) ([]int64, error)
	BlendedRecommendations(ctx context.Context, userID int64, k int) ([]int64, error)
}
