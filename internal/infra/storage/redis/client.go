// Package redis holds the Redis-backed storage adapters.
package redis

import (
	"context"
	"time"

	redis "github.com/redis/go-redis/v9"
)

// defaultCredentialTTL bounds how long a cached bearer credential is
// reused before the wallet has to sign a fresh challenge.
const defaultCredentialTTL = time.Hour

type client struct {
	conn          *redis.Client
	credentialTTL time.Duration
}

func (c *client) Close() error {
	return c.conn.Close()
}

// config collects construction options.
type config struct {
	credentialTTL time.Duration
}

// Option adjusts client construction.
type Option func(*config)

// WithCredentialTTL overrides the default 1h credential cache lifetime.
func WithCredentialTTL(d time.Duration) Option {
	return func(cfg *config) {
		cfg.credentialTTL = d
	}
}

// NewClient connects to Redis and verifies the connection with a ping.
func NewClient(ctx context.Context, addr, username, password string, db int, opts ...Option) (*client, error) {
	cfg := config{
		credentialTTL: defaultCredentialTTL,
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	conn := redis.NewClient(&redis.Options{
		Addr:     addr,
		Username: username,
		Password: password,
		DB:       db,
	})

	if err := conn.Ping(ctx).Err(); err != nil {
		return nil, err
	}

	return &client{
		conn:          conn,
		credentialTTL: cfg.credentialTTL,
	}, nil
}
