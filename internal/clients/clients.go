// Package clients holds the HTTP clients for the external collaborator
// services: the event store that records user interactions and the feature
// store that serves item-to-item similarity lookups.
package clients

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// ErrUpstreamUnavailable marks a collaborator that could not be reached or
// answered with a non-success status. Callers must surface it, never mask it
// with an empty result: an empty list would misrepresent a live user as
// cold-start.
var ErrUpstreamUnavailable = errors.New("upstream store unavailable")

var upstreamLatency = prometheus.NewHistogramVec(prometheus.HistogramOpts{
	Name:    "upstream_request_duration_seconds",
	Help:    "Latency of collaborator store requests",
	Buckets: prometheus.DefBuckets,
}, []string{"store", "operation"})

func init() {
	if err := prometheus.Register(upstreamLatency); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			upstreamLatency = are.ExistingCollector.(*prometheus.HistogramVec)
		}
	}
}

// postJSON issues one collaborator call. Both stores take their parameters in
// the query string and answer with a JSON body.
func postJSON(ctx context.Context, hc *http.Client, store, baseURL, path string, params url.Values, out interface{}) error {
	reqURL := baseURL + path + "?" + params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, reqURL, nil)
	if err != nil {
		return fmt.Errorf("build %s request: %w", path, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := hc.Do(req)
	upstreamLatency.WithLabelValues(store, path).Observe(time.Since(start).Seconds())
	if err != nil {
		return fmt.Errorf("%w: %s %s: %v", ErrUpstreamUnavailable, store, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("%w: %s %s returned status %d", ErrUpstreamUnavailable, store, path, resp.StatusCode)
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: %s %s: malformed response: %v", ErrUpstreamUnavailable, store, path, err)
	}

	return nil
}
