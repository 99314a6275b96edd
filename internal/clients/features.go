package clients

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/sirupsen/logrus"

	"github.com/reclab/blendsvc/pkg/models"
)

// FeatureStoreClient talks to the feature store collaborator, which serves
// item-to-item similarity lookups.
type FeatureStoreClient struct {
	baseURL string
	http    *http.Client
	logger  *logrus.Logger
}

func NewFeatureStoreClient(baseURL string, hc *http.Client, logger *logrus.Logger) *FeatureStoreClient {
	return &FeatureStoreClient{
		baseURL: baseURL,
		http:    hc,
		logger:  logger,
	}
}

// The store answers with parallel arrays: item_id_2[i] scored score[i].
type similarItemsResponse struct {
	ItemIDs []int64   `json:"item_id_2"`
	Scores  []float64 `json:"score"`
}

// SimilarItems returns up to limit items similar to itemID, ranked by score
// descending. Index 0 is always the query item itself (self-match); callers
// are expected to drop it.
func (c *FeatureStoreClient) SimilarItems(ctx context.Context, itemID int64, limit int) ([]models.ScoredItem, error) {
	params := url.Values{}
	params.Set("item_id", strconv.FormatInt(itemID, 10))
	params.Set("k", strconv.Itoa(limit))

	var resp similarItemsResponse
	if err := postJSON(ctx, c.http, "features", c.baseURL, "/similar_items", params, &resp); err != nil {
		return nil, err
	}

	if len(resp.ItemIDs) != len(resp.Scores) {
		return nil, fmt.Errorf("%w: features /similar_items: %d item ids but %d scores",
			ErrUpstreamUnavailable, len(resp.ItemIDs), len(resp.Scores))
	}

	items := make([]models.ScoredItem, len(resp.ItemIDs))
	for i := range resp.ItemIDs {
		items[i] = models.ScoredItem{ItemID: resp.ItemIDs[i], Score: resp.Scores[i]}
	}

	return items, nil
}
