// Package logger exposes a process-wide sugared Zap logger. It writes JSON to
// stdout, takes its minimum level from a functional option, and forwards
// entries to OpenTelemetry through the otelzap bridge whenever the telemetry
// package has a LoggerProvider registered.
package logger

import (
	"context"
	"os"
	"sync"

	"github.com/adawatch/adawatch/internal/pkg/telemetry"

	"go.opentelemetry.io/contrib/bridges/otelzap"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	// log is the shared SugaredLogger. Init must run before any logging call.
	log *zap.SugaredLogger

	// initOnce guards the one-time construction of the shared logger.
	initOnce sync.Once
)

// config collects the options applied during Init.
type config struct {
	level string
}

// Option adjusts the logger configuration before initialization.
type Option func(*config)

// WithLevel sets the minimum level the logger emits. Accepted values are the
// zapcore level names: "debug", "info", "warn", "error", "panic" and "fatal".
func WithLevel(l string) Option {
	return func(c *config) {
		c.level = l
	}
}

// Init builds the shared logger. Without options it logs JSON to stdout at
// "info". When telemetry.LoggerProvider() returns a provider, an otelzap core
// is teed in so every entry also reaches the telemetry backend. Repeated
// calls after the first successful one are no-ops.
func Init(opts ...Option) error {
	cfg := config{level: "info"}
	for _, opt := range opts {
		opt(&cfg)
	}

	level, err := zapcore.ParseLevel(cfg.level)
	if err != nil {
		return err
	}

	initOnce.Do(func() {
		cores := []zapcore.Core{
			zapcore.NewCore(
				zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig()),
				zapcore.AddSync(os.Stdout),
				level,
			),
		}

		if lp := telemetry.LoggerProvider(); lp != nil {
			cores = append(cores, otelzap.NewCore("", otelzap.WithLoggerProvider(lp)))
		}

		log = zap.New(zapcore.NewTee(cores...)).Sugar()
	})

	return nil
}

// Sync flushes buffered entries. Call it once during shutdown.
func Sync() error {
	return log.Sync()
}

// Debug logs at debug level with optional key/value pairs.
func Debug(ctx context.Context, msg string, keysAndValues ...any) {
	log.Debugw(msg, keysAndValues...)
}

// Info logs at info level with optional key/value pairs.
func Info(ctx context.Context, msg string, keysAndValues ...any) {
	log.Infow(msg, keysAndValues...)
}

// Warn logs at warn level with optional key/value pairs.
func Warn(ctx context.Context, msg string, keysAndValues ...any) {
	log.Warnw(msg, keysAndValues...)
}

// Error logs at error level with optional key/value pairs.
func Error(ctx context.Context, msg string, keysAndValues ...any) {
	log.Errorw(msg, keysAndValues...)
}

// Panic logs at panic level and then panics.
func Panic(ctx context.Context, msg string, keysAndValues ...any) {
	log.Panicw(msg, keysAndValues...)
}

// Fatal logs at fatal level and then exits the process.
func Fatal(ctx context.Context, msg string, keysAndValues ...any) {
	log.Fatalw(msg, keysAndValues...)
}
