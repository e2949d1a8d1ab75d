package retry

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRetryExecute(t *testing.T) {
	t.Run("successful operation", func(t *testing.T) {
		r := New()
		callCount := 0

		err := r.Execute(t.Context(), func() error {
			callCount++
			return nil
		})

		assert.NoError(t, err)
		assert.Equal(t, 1, callCount, "Operation should be called exactly once")
	})

	t.Run("retry until success", func(t *testing.T) {
		r := New(WithAttempts(3), WithDelay(time.Millisecond))
		callCount := 0

		err := r.Execute(t.Context(), func() error {
			callCount++
			if callCount < 2 {
				return errors.New("temporary error")
			}
			return nil
		})

		assert.NoError(t, err)
		assert.Equal(t, 2, callCount, "Operation should be called exactly twice")
	})

	t.Run("retry exhausted", func(t *testing.T) {
		r := New(
			WithAttempts(3),
			WithDelay(time.Millisecond),
			WithMaxDelay(5*time.Millisecond),
		)
		callCount := 0
		expectedErr := errors.New("persistent error")

		err := r.Execute(t.Context(), func() error {
			callCount++
			return expectedErr
		})

		assert.ErrorIs(t, err, expectedErr)
		assert.Equal(t, 3, callCount, "Operation should be called exactly 3 times")
	})

	t.Run("unlimited attempts stop on success", func(t *testing.T) {
		r := New(WithAttempts(0), WithFixedDelay(), WithDelay(time.Millisecond))
		callCount := 0

		err := r.Execute(t.Context(), func() error {
			callCount++
			if callCount < 5 {
				return errors.New("not yet")
			}
			return nil
		})

		assert.NoError(t, err)
		assert.Equal(t, 5, callCount)
	})

	t.Run("context cancellation", func(t *testing.T) {
		r := New(
			WithAttempts(5),
			WithDelay(100*time.Millisecond),
		)
		callCount := 0

		ctx, cancel := context.WithCancel(t.Context())
		go func() {
			time.Sleep(10 * time.Millisecond)
			cancel()
		}()

		err := r.Execute(ctx, func() error {
			callCount++
			return errors.New("error that would normally trigger retry")
		})

		assert.ErrorIs(t, err, context.Canceled)
		assert.Equal(t, 1, callCount, "Operation should be called exactly once due to context cancellation")
	})

	t.Run("context cancellation stops unlimited fixed-delay retries", func(t *testing.T) {
		r := New(WithAttempts(0), WithFixedDelay(), WithDelay(5*time.Millisecond))

		ctx, cancel := context.WithTimeout(t.Context(), 30*time.Millisecond)
		defer cancel()

		err := r.Execute(ctx, func() error {
			return errors.New("always failing")
		})

		assert.ErrorIs(t, err, context.DeadlineExceeded)
	})
}

func TestRetryOptions(t *testing.T) {
	t.Run("default options", func(t *testing.T) {
		r := New()
		retrier, ok := r.(*retrier)
		require.True(t, ok, "Expected r to be of type *retrier")

		assert.Equal(t, uint(3), retrier.cfg.attempts, "Default attempts should be 3")
		assert.Equal(t, 1*time.Second, retrier.cfg.delay, "Default delay should be 1s")
		assert.Equal(t, 5*time.Second, retrier.cfg.maxDelay, "Default maxDelay should be 5s")
		assert.False(t, retrier.cfg.fixedDelay, "Default delay type should be backoff")
		assert.True(t, retrier.cfg.lastErrOnly, "Default should report only the last error")
	})

	t.Run("custom options", func(t *testing.T) {
		r := New(
			WithAttempts(5),
			WithDelay(2*time.Second),
			WithMaxDelay(10*time.Second),
			WithFixedDelay(),
			WithLastErrorOnly(false),
		)
		retrier, ok := r.(*retrier)
		require.True(t, ok, "Expected r to be of type *retrier")

		assert.Equal(t, uint(5), retrier.cfg.attempts, "Attempts should be 5")
		assert.Equal(t, 2*time.Second, retrier.cfg.delay, "Delay should be 2s")
		assert.Equal(t, 10*time.Second, retrier.cfg.maxDelay, "MaxDelay should be 10s")
		assert.True(t, retrier.cfg.fixedDelay, "Delay type should be fixed")
		assert.False(t, retrier.cfg.lastErrOnly, "Every attempt's error should be reported")
	})
}
