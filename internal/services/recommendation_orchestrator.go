package services

import (
	"context"
	"fmt"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/sirupsen/logrus"
)

// RecommendationOrchestrator fronts the three recommendation operations. The
// offline snapshot is read-only after startup and the online recommender is
// stateless, so the orchestrator itself carries no cross-request state.
type RecommendationOrchestrator struct {
	offline OfflineStore
	online  OnlineRecommenderInterface
	logger  *logrus.Logger

	requests *prometheus.CounterVec
}

func NewRecommendationOrchestrator(
	offline OfflineStore,
	online OnlineRecommenderInterface,
	logger *logrus.Logger,
) (*RecommendationOrchestrator, error) {
	o := &RecommendationOrchestrator{
		offline: offline,
		online:  online,
		logger:  logger,
	}

	o.requests = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "recommendation_requests_total",
		Help: "Recommendation computations served, by source",
	}, []string{"source"})

	if err := prometheus.Register(o.requests); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			o.requests = are.ExistingCollector.(*prometheus.CounterVec)
		} else {
			return nil, fmt.Errorf("recommendation orchestrator: %w", err)
		}
	}

	return o, nil
}

// OfflineRecommendations returns the precomputed ranking for the user, or
// the shared fallback ranking for cold-start users.
func (o *RecommendationOrchestrator) OfflineRecommendations(userID int64, k int) []int64 {
	o.requests.WithLabelValues("offline").Inc()
	return o.offline.Get(userID, k)
}

// OnlineRecommendations returns the real-time ranking derived from the
// user's recent events.
func (o *RecommendationOrchestrator) OnlineRecommendations(ctx context.Context, userID int64, k int) ([]int64, error) {
	o.requests.WithLabelValues("online").Inc()
	return o.online.Recommend(ctx, userID, k)
}

// BlendedRecommendations interleaves the offline and online rankings into
// the final bounded list. The two branches have no data dependency, so they
// run concurrently and are joined before blending.
func (o *RecommendationOrchestrator) BlendedRecommendations(ctx context.Context, userID int64, k int) ([]int64, error) {
	o.requests.WithLabelValues("blended").Inc()

	var (
		offlineRecs []int64
		onlineRecs  []int64
		onlineErr   error
	)

	var wg sync.WaitGroup
	wg.Add(2)

	go func() {
		defer wg.Done()
		offlineRecs = o.offline.Get(userID, k)
	}()

	go func() {
		defer wg.Done()
		onlineRecs, onlineErr = o.online.Recommend(ctx, userID, k)
	}()

	wg.Wait()

	if onlineErr != nil {
		return nil, fmt.Errorf("blend for user %d: %w", userID, onlineErr)
	}

	return Blend(offlineRecs, onlineRecs, k), nil
}
