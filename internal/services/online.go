package services

import (
	"context"
	"fmt"
	"sort"

	"github.com/sirupsen/logrus"

	"github.com/reclab/blendsvc/pkg/models"
)

// OnlineRecommender derives a real-time ranking from the user's most recent
// interaction events and per-item similarity lookups. It carries no state
// between calls.
type OnlineRecommender struct {
	events      EventStore
	features    FeatureStore
	historySize int
	logger      *logrus.Logger
}

func NewOnlineRecommender(events EventStore, features FeatureStore, historySize int, logger *logrus.Logger) *OnlineRecommender {
	return &OnlineRecommender{
		events:      events,
		features:    features,
		historySize: historySize,
		logger:      logger,
	}
}

// Recommend aggregates similar items across the user's recent events into a
// single score-ordered, deduplicated ranking. The result is not truncated to
// k: each of the up-to-historySize events contributes up to k candidates, and
// bounding happens downstream in the blend.
//
// Collaborator failures propagate. Masking them with an empty result would
// misrepresent a live user as cold-start.
func (r *OnlineRecommender) Recommend(ctx context.Context, userID int64, k int) ([]int64, error) {
	if k <= 0 {
		return []int64{}, nil
	}

	history, err := r.events.RecentEvents(ctx, userID, r.historySize)
	if err != nil {
		return nil, fmt.Errorf("fetch recent events for user %d: %w", userID, err)
	}
	if len(history) == 0 {
		return []int64{}, nil
	}

	// History order is preserved through accumulation: the stable sort below
	// breaks score ties by first-seen order.
	var candidates []models.ScoredItem
	for _, itemID := range history {
		// k+1 because index 0 is the query item itself.
		similar, err := r.features.SimilarItems(ctx, itemID, k+1)
		if err != nil {
			return nil, fmt.Errorf("fetch items similar to %d: %w", itemID, err)
		}
		if len(similar) <= 1 {
			// Sparse similarity graph: nothing beyond the self-match.
			continue
		}

		contributed := similar[1:]
		if len(contributed) > k {
			contributed = contributed[:k]
		}
		candidates = append(candidates, contributed...)
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].Score > candidates[j].Score
	})

	seen := make(map[int64]struct{}, len(candidates))
	recs := make([]int64, 0, len(candidates))
	for _, candidate := range candidates {
		if _, ok := seen[candidate.ItemID]; ok {
			continue
		}
		seen[candidate.ItemID] = struct{}{}
		recs = append(recs, candidate.ItemID)
	}

	r.logger.WithFields(logrus.Fields{
		"user_id":    userID,
		"events":     len(history),
		"candidates": len(candidates),
		"recs":       len(recs),
	}).Debug("Computed online recommendations")

	return recs, nil
}
