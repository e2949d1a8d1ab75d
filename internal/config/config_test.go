package config

import (
	"testing"
	"time"

	"github.com/adawatch/adawatch/internal/pkg/validator"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	t.Run("defaults are usable out of the box", func(t *testing.T) {
		cfg, err := Load()
		require.NoError(t, err)

		assert.Equal(t, "info", cfg.LogLevel)
		assert.False(t, cfg.TelemetryEnabled)
		assert.Equal(t, "ws://localhost:8080/ws", cfg.FeedURL)
		assert.Equal(t, 3*time.Second, cfg.FeedReconnectDelay)
		assert.Equal(t, "http://localhost:8080", cfg.ViewerAPIBaseURL)
		assert.Equal(t, 512, cfg.MaxResidentGroups)
		assert.Empty(t, cfg.RedisAddr)
	})

	t.Run("environment overrides are honored", func(t *testing.T) {
		t.Setenv("ADAWATCH_LOG_LEVEL", "debug")
		t.Setenv("ADAWATCH_FEED_URL", "wss://feed.example.com/ws")
		t.Setenv("ADAWATCH_FEED_RECONNECT_DELAY", "5s")
		t.Setenv("ADAWATCH_MAX_RESIDENT_GROUPS", "64")
		t.Setenv("ADAWATCH_REDIS_ADDR", "localhost:6379")

		cfg, err := Load()
		require.NoError(t, err)

		assert.Equal(t, "debug", cfg.LogLevel)
		assert.Equal(t, "wss://feed.example.com/ws", cfg.FeedURL)
		assert.Equal(t, 5*time.Second, cfg.FeedReconnectDelay)
		assert.Equal(t, 64, cfg.MaxResidentGroups)
		assert.Equal(t, "localhost:6379", cfg.RedisAddr)
	})

	t.Run("rejects a non-positive group cap", func(t *testing.T) {
		t.Setenv("ADAWATCH_MAX_RESIDENT_GROUPS", "0")

		_, err := Load()
		assert.ErrorIs(t, err, validator.ErrValidationFailed)
	})

	t.Run("rejects a malformed reconnect delay", func(t *testing.T) {
		t.Setenv("ADAWATCH_FEED_RECONNECT_DELAY", "not-a-duration")

		_, err := Load()
		assert.Error(t, err)
	})
}
