package clients

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reclab/blendsvc/pkg/models"
)

func TestFeatureStoreClient_SimilarItems(t *testing.T) {
	t.Run("Parses parallel arrays with self-match first", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodPost, r.Method)
			assert.Equal(t, "/similar_items", r.URL.Path)
			assert.Equal(t, "5", r.URL.Query().Get("item_id"))
			assert.Equal(t, "2", r.URL.Query().Get("k"))

			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(`{"item_id_2": [5, 7], "score": [1.0, 0.9]}`))
		}))
		defer server.Close()

		client := NewFeatureStoreClient(server.URL, testHTTPClient(), clientTestLogger())

		items, err := client.SimilarItems(context.Background(), 5, 2)

		require.NoError(t, err)
		assert.Equal(t, []models.ScoredItem{
			{ItemID: 5, Score: 1.0},
			{ItemID: 7, Score: 0.9},
		}, items)
	})

	t.Run("Mismatched array lengths are rejected", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"item_id_2": [5, 7], "score": [1.0]}`))
		}))
		defer server.Close()

		client := NewFeatureStoreClient(server.URL, testHTTPClient(), clientTestLogger())

		_, err := client.SimilarItems(context.Background(), 5, 2)

		require.Error(t, err)
		assert.ErrorIs(t, err, ErrUpstreamUnavailable)
	})

	t.Run("Malformed body maps to ErrUpstreamUnavailable", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`not json`))
		}))
		defer server.Close()

		client := NewFeatureStoreClient(server.URL, testHTTPClient(), clientTestLogger())

		_, err := client.SimilarItems(context.Background(), 5, 2)

		require.Error(t, err)
		assert.ErrorIs(t, err, ErrUpstreamUnavailable)
	})

	t.Run("Non-success status maps to ErrUpstreamUnavailable", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusServiceUnavailable)
		}))
		defer server.Close()

		client := NewFeatureStoreClient(server.URL, testHTTPClient(), clientTestLogger())

		_, err := client.SimilarItems(context.Background(), 5, 2)

		require.Error(t, err)
		assert.ErrorIs(t, err, ErrUpstreamUnavailable)
	})
}
