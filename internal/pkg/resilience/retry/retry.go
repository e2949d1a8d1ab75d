// Package retry wraps avast/retry-go behind a small interface with
// functional options. The default policy is exponential backoff with a
// bounded number of attempts; callers that need a flat cadence (such as a
// connection loop that redials every few seconds until canceled) can switch
// to a fixed delay and unlimited attempts.
package retry

import (
	"context"
	"time"

	retry "github.com/avast/retry-go/v4"
)

// Retry executes operations that may fail transiently, reattempting them
// according to the configured policy.
type Retry interface {
	// Execute runs operation until it succeeds, the configured attempts are
	// exhausted, or ctx is canceled. The operation must be safe to invoke
	// multiple times. A nil return means the operation eventually succeeded.
	Execute(ctx context.Context, operation func() error) error
}

// config holds the knobs applied through Options.
type config struct {
	attempts    uint          // maximum attempts; 0 means retry forever
	delay       time.Duration // base delay between attempts
	maxDelay    time.Duration // backoff ceiling (ignored for fixed delay)
	fixedDelay  bool          // flat cadence instead of exponential backoff
	lastErrOnly bool          // report only the final attempt's error
}

// Option customizes the retry policy built by New.
type Option func(*config)

// retrier implements Retry on top of retry-go.
type retrier struct {
	cfg config
}

var _ Retry = (*retrier)(nil)

// New builds a Retry with the given options. Defaults: 3 attempts,
// exponential backoff starting at 1s capped at 5s, only the last error
// reported.
func New(opts ...Option) Retry {
	cfg := config{
		attempts:    3,
		delay:       time.Second,
		maxDelay:    5 * time.Second,
		lastErrOnly: true,
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	return &retrier{cfg: cfg}
}

// Execute implements Retry.
func (r *retrier) Execute(ctx context.Context, operation func() error) error {
	delayType := retry.BackOffDelay
	if r.cfg.fixedDelay {
		delayType = retry.FixedDelay
	}

	options := []retry.Option{
		retry.Attempts(r.cfg.attempts),
		retry.Delay(r.cfg.delay),
		retry.MaxDelay(r.cfg.maxDelay),
		retry.DelayType(delayType),
		retry.LastErrorOnly(r.cfg.lastErrOnly),
		retry.Context(ctx),
	}

	return retry.Do(operation, options...)
}

// WithAttempts sets the maximum number of attempts, counting the initial
// one. Zero means unlimited: Execute only stops on success or context
// cancellation. Default: 3.
func WithAttempts(n uint) Option {
	return func(c *config) {
		c.attempts = n
	}
}

// WithDelay sets the base delay between attempts. Under backoff this is the
// first retry's delay; under a fixed cadence it is every retry's delay.
// Default: 1 second.
func WithDelay(d time.Duration) Option {
	return func(c *config) {
		c.delay = d
	}
}

// WithMaxDelay caps the exponential backoff growth. It has no effect when a
// fixed delay is selected. Default: 5 seconds.
func WithMaxDelay(d time.Duration) Option {
	return func(c *config) {
		c.maxDelay = d
	}
}

// WithFixedDelay keeps the delay flat at the WithDelay value instead of
// growing it exponentially.
func WithFixedDelay() Option {
	return func(c *config) {
		c.fixedDelay = true
	}
}

// WithLastErrorOnly controls whether Execute reports just the final
// attempt's error (true, the default) or every attempt's error combined.
func WithLastErrorOnly(b bool) Option {
	return func(c *config) {
		c.lastErrOnly = b
	}
}
