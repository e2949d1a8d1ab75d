// Package config loads the application configuration from environment
// variables and validates it before anything else is wired.
package config

import (
	"time"

	"github.com/adawatch/adawatch/internal/pkg/validator"

	"github.com/kelseyhightower/envconfig"
)

// envPrefix namespaces every environment variable, e.g. ADAWATCH_FEED_URL.
const envPrefix = "adawatch"

// Config carries every tunable the process needs at startup.
type Config struct {
	// LogLevel is the minimum level emitted by the shared logger.
	LogLevel string `envconfig:"LOG_LEVEL" default:"info"`

	// TelemetryEnabled turns on the OTLP telemetry pipelines.
	TelemetryEnabled bool `envconfig:"TELEMETRY_ENABLED" default:"false"`

	// FeedURL is the websocket endpoint of the live event feed.
	FeedURL string `envconfig:"FEED_URL" default:"ws://localhost:8080/ws" validate:"required,uri"`

	// FeedReconnectDelay is the flat pause between reconnect attempts after
	// the feed session drops.
	FeedReconnectDelay time.Duration `envconfig:"FEED_RECONNECT_DELAY" default:"3s" validate:"required"`

	// ViewerAPIBaseURL is the REST endpoint serving the auth handshake and
	// the historical wallet queries.
	ViewerAPIBaseURL string `envconfig:"VIEWER_API_BASE_URL" default:"http://localhost:8080" validate:"required,uri"`

	// MaxResidentGroups caps how many block groups the store keeps before
	// evicting the oldest ones.
	MaxResidentGroups int `envconfig:"MAX_RESIDENT_GROUPS" default:"512" validate:"gt=0"`

	// WalletSignCommand is the external helper invoked to sign challenge
	// messages, e.g. a hardware wallet bridge. It receives the address and
	// message as arguments and prints the signature material as JSON. The
	// wallet commands fail without it; the pipeline does not need it.
	WalletSignCommand string `envconfig:"WALLET_SIGN_COMMAND"`

	// Redis settings for the bearer credential cache. Leaving the address
	// empty disables the cache.
	RedisAddr     string `envconfig:"REDIS_ADDR"`
	RedisUsername string `envconfig:"REDIS_USERNAME"`
	RedisPassword string `envconfig:"REDIS_PASSWORD"`
	RedisDB       int    `envconfig:"REDIS_DB" default:"0"`
}

// Load reads the configuration from the environment and validates it.
func Load() (Config, error) {
	var cfg Config
	if err := envconfig.Process(envPrefix, &cfg); err != nil {
		return Config{}, err
	}

	if err := validator.Validate(cfg); err != nil {
		return Config{}, err
	}

	return cfg, nil
}
