// Package http builds retrying HTTP clients on top of hashicorp's
// retryablehttp, with functional options for timeout and retry tuning.
package http

import (
	"time"

	"github.com/hashicorp/go-retryablehttp"
)

// config holds the client settings applied through Options.
type config struct {
	timeout      time.Duration // per-request deadline
	retryWaitMin time.Duration // shortest pause between retries
	retryWaitMax time.Duration // longest pause between retries
	retryMax     int           // retry attempts after the initial request
}

// Option customizes the client built by NewClient.
type Option func(*config)

// NewClient returns a retryablehttp.Client. Defaults: 5s request timeout,
// retries paced between 1s and 5s, at most 2 retries. The retryablehttp
// internal logger is disabled; callers log through the shared logger instead.
func NewClient(opts ...Option) *retryablehttp.Client {
	cfg := config{
		timeout:      5 * time.Second,
		retryWaitMin: time.Second,
		retryWaitMax: 5 * time.Second,
		retryMax:     2,
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	client := retryablehttp.NewClient()
	client.Logger = nil
	client.HTTPClient.Timeout = cfg.timeout
	client.RetryWaitMin = cfg.retryWaitMin
	client.RetryWaitMax = cfg.retryWaitMax
	client.RetryMax = cfg.retryMax
	return client
}

// WithTimeout sets the per-request deadline. Default: 5 seconds.
func WithTimeout(d time.Duration) Option {
	return func(c *config) {
		c.timeout = d
	}
}

// WithRetryWaitMin sets the shortest pause between retries. Default: 1 second.
func WithRetryWaitMin(d time.Duration) Option {
	return func(c *config) {
		c.retryWaitMin = d
	}
}

// WithRetryWaitMax sets the longest pause between retries. Default: 5 seconds.
func WithRetryWaitMax(d time.Duration) Option {
	return func(c *config) {
		c.retryWaitMax = d
	}
}

// WithRetryMax sets how many times a failed request is retried. Default: 2.
func WithRetryMax(n int) Option {
	return func(c *config) {
		c.retryMax = n
	}
}
