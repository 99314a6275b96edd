package clients

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"github.com/sirupsen/logrus"
)

// EventStoreClient talks to the event store collaborator, which records user
// interactions and returns a user's most recent ones, newest first.
type EventStoreClient struct {
	baseURL string
	http    *http.Client
	logger  *logrus.Logger
}

func NewEventStoreClient(baseURL string, hc *http.Client, logger *logrus.Logger) *EventStoreClient {
	return &EventStoreClient{
		baseURL: baseURL,
		http:    hc,
		logger:  logger,
	}
}

type eventsResponse struct {
	Events []int64 `json:"events"`
}

// RecentEvents returns up to limit item IDs the user interacted with, most
// recent first. The returned order is load-bearing downstream: it drives
// tie-breaking in the online aggregation.
func (c *EventStoreClient) RecentEvents(ctx context.Context, userID int64, limit int) ([]int64, error) {
	params := url.Values{}
	params.Set("user_id", strconv.FormatInt(userID, 10))
	params.Set("k", strconv.Itoa(limit))

	var resp eventsResponse
	if err := postJSON(ctx, c.http, "events", c.baseURL, "/get", params, &resp); err != nil {
		return nil, err
	}

	return resp.Events, nil
}

// RecordEvent appends one interaction to the user's history.
func (c *EventStoreClient) RecordEvent(ctx context.Context, userID, itemID int64) error {
	params := url.Values{}
	params.Set("user_id", strconv.FormatInt(userID, 10))
	params.Set("item_id", strconv.FormatInt(itemID, 10))

	if err := postJSON(ctx, c.http, "events", c.baseURL, "/put", params, nil); err != nil {
		return err
	}

	c.logger.WithFields(logrus.Fields{
		"user_id": userID,
		"item_id": itemID,
	}).Debug("Recorded interaction event")

	return nil
}
