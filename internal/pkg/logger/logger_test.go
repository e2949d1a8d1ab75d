package logger

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// resetLogger resets the global logger state for testing.
func resetLogger() {
	log = nil
	initOnce = sync.Once{}
}

func TestInit(t *testing.T) {
	t.Run("initializes with the default level", func(t *testing.T) {
		resetLogger()

		err := Init()
		require.NoError(t, err)
		assert.NotNil(t, log)
	})

	t.Run("accepts every zapcore level name", func(t *testing.T) {
		for _, level := range []string{"debug", "info", "warn", "error"} {
			t.Run(level, func(t *testing.T) {
				resetLogger()

				err := Init(WithLevel(level))
				require.NoError(t, err)
				assert.NotNil(t, log)
			})
		}
	})

	t.Run("rejects an unknown level", func(t *testing.T) {
		resetLogger()

		err := Init(WithLevel("loud"))
		assert.Error(t, err)
		assert.Nil(t, log)
	})

	t.Run("initializes only once", func(t *testing.T) {
		resetLogger()

		require.NoError(t, Init(WithLevel("debug")))
		first := log

		require.NoError(t, Init(WithLevel("error")))
		assert.Same(t, first, log, "Init should only initialize once")
	})
}

func TestLoggingFunctions(t *testing.T) {
	resetLogger()
	require.NoError(t, Init(WithLevel("debug")))

	ctx := context.Background()

	// These must not panic with an initialized logger.
	assert.NotPanics(t, func() { Debug(ctx, "debug message", "key", "value") })
	assert.NotPanics(t, func() { Info(ctx, "info message") })
	assert.NotPanics(t, func() { Warn(ctx, "warn message", "count", 3) })
	assert.NotPanics(t, func() { Error(ctx, "error message", "error", assert.AnError) })
	assert.Panics(t, func() { Panic(ctx, "panic message") })
}
