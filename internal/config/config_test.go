package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 5050, cfg.ServerPort)
	assert.Equal(t, "./tweetpulse.db", cfg.DatabasePath)
	assert.Equal(t, "mongodb://localhost:27017", cfg.MongoURI)
	assert.Equal(t, "tweetpulse", cfg.MongoDatabase)
	assert.Equal(t, "http://localhost:5001", cfg.UpstreamBaseURL)
	assert.Equal(t, 30*time.Second, cfg.UpstreamTimeout)
	assert.Equal(t, BatchPolicyAbort, cfg.BatchPolicy)
	assert.Equal(t, "* * * * *", cfg.ProbeSchedule)
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("UPSTREAM_URL", "http://analysis:5001")
	t.Setenv("ANALYZE_BATCH_POLICY", "partial")
	t.Setenv("JWT_SECRET", "hunter2")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.ServerPort)
	assert.Equal(t, "http://analysis:5001", cfg.UpstreamBaseURL)
	assert.Equal(t, BatchPolicyPartial, cfg.BatchPolicy)
	assert.Equal(t, "hunter2", cfg.JWTSecret)
}

func TestLoadRejectsBadPort(t *testing.T) {
	t.Setenv("PORT", "not-a-port")

	_, err := Load()
	assert.Error(t, err)
}

func TestLoadFallsBackOnUnknownPolicy(t *testing.T) {
	t.Setenv("ANALYZE_BATCH_POLICY", "sometimes")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, BatchPolicyAbort, cfg.BatchPolicy)
}
