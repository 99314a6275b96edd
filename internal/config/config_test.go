package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8000", cfg.Server.Port)
	assert.Equal(t, "http://127.0.0.1:8020", cfg.Stores.EventsURL)
	assert.Equal(t, "http://127.0.0.1:8010", cfg.Stores.FeaturesURL)
	assert.Equal(t, 5*time.Second, cfg.Stores.Timeout)
	assert.Equal(t, 100, cfg.Recommendation.DefaultK)
	assert.Equal(t, 3, cfg.Recommendation.HistorySize)
	assert.False(t, cfg.RateLimit.Enabled)
	assert.Equal(t, "info", cfg.Logging.Level)
}
