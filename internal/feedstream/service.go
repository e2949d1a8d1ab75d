// Package feedstream owns the long-lived connection to the live event feed.
// It keeps exactly one logical session alive, classifies every inbound frame
// through the feed package, emits the resulting events on a channel, and
// redials with a flat delay whenever the session drops. Malformed frames are
// logged and dropped without touching the session; connectivity is the only
// state the service exposes beyond the event channel.
package feedstream

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/adawatch/adawatch/internal/feed"
	"github.com/adawatch/adawatch/internal/pkg/logger"
	"github.com/adawatch/adawatch/internal/pkg/resilience/retry"
	"github.com/adawatch/adawatch/internal/pkg/x/chflow"

	"github.com/google/uuid"
)

// ErrServiceAlreadyStarted is returned when Start is called on a service
// that already has a live session loop.
var ErrServiceAlreadyStarted = errors.New("service already started")

const (
	// defaultReconnectDelay is the flat pause between redial attempts.
	// There is no backoff and no attempt cap; the loop only stops when the
	// service is closed.
	defaultReconnectDelay = 3 * time.Second

	// eventChannelBufferSize absorbs short bursts between the read loop
	// and the consumer applying events to the store.
	eventChannelBufferSize = 10
)

// connectivityHandler observes connectivity transitions. It runs inline in
// the session loop, so implementations must be quick.
type connectivityHandler func(ctx context.Context, connected bool)

// Service is the feed connection manager lifecycle.
type Service interface {
	// Start launches the session loop and returns the channel of
	// classified events. It fails with ErrServiceAlreadyStarted when the
	// loop is already running. Call Close to stop it.
	Start(ctx context.Context) (<-chan feed.Event, error)

	// Connected reports whether a feed session is currently open.
	Connected() bool

	// Close tears down the active session and cancels any pending
	// reconnect; the session loop then closes the event channel on its way
	// out. Safe to call when never started.
	Close()
}

type closeFunc func()

type service struct {
	mu        sync.Mutex
	isStarted bool
	closeFunc closeFunc

	transport Transport

	reconnectDelay time.Duration
	connected      atomic.Bool
	onConnectivity connectivityHandler
}

var _ Service = (*service)(nil)

// Start implements Service.
func (s *service) Start(ctx context.Context) (<-chan feed.Event, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.isStarted {
		return nil, ErrServiceAlreadyStarted
	}

	ctx, cancel := context.WithCancel(ctx)
	eventCh := make(chan feed.Event, eventChannelBufferSize)

	s.closeFunc = func() {
		cancel()
	}

	go s.runSessionLoop(ctx, eventCh)

	s.isStarted = true
	return eventCh, nil
}

// Connected implements Service.
func (s *service) Connected() bool {
	return s.connected.Load()
}

// Close implements Service.
func (s *service) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closeFunc != nil {
		s.closeFunc()
	}
	s.closeFunc = nil
	s.isStarted = false
}

// runSessionLoop keeps exactly one session alive until ctx is canceled. The
// retry policy is a fixed delay with unlimited attempts, so every session
// end, clean or not, is followed by one scheduled redial. The loop is the
// only sender on eventCh, so it alone closes the channel on the way out;
// Close never touches it.
func (s *service) runSessionLoop(ctx context.Context, eventCh chan<- feed.Event) {
	defer close(eventCh)

	reconnect := retry.New(
		retry.WithAttempts(0),
		retry.WithFixedDelay(),
		retry.WithDelay(s.reconnectDelay),
	)

	err := reconnect.Execute(ctx, func() error {
		return s.runSession(ctx, eventCh)
	})
	if err != nil && !errors.Is(err, context.Canceled) {
		logger.Error(ctx, "feed session loop ended", "error", err)
	}
}

// runSession dials one session and pumps it until it fails. The returned
// error is never nil while the context is live: a session ending is always
// a reason to reconnect.
func (s *service) runSession(ctx context.Context, eventCh chan<- feed.Event) error {
	session, err := s.transport.Dial(ctx)
	if err != nil {
		logger.Warn(ctx, "feed dial failed", "error", err)
		return fmt.Errorf("dial feed: %w", err)
	}
	defer session.Close()

	sessionID := uuid.Must(uuid.NewV7()).String()
	s.setConnected(ctx, true, sessionID)
	defer s.setConnected(ctx, false, sessionID)

	logger.Info(ctx, "feed session established", "session.id", sessionID)

	for {
		raw, err := session.ReadMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}

			logger.Warn(ctx, "feed session lost", "session.id", sessionID, "error", err)
			return fmt.Errorf("read feed message: %w", err)
		}

		event, err := feed.Decode(raw)
		if err != nil {
			// A bad frame never terminates the session.
			logger.Warn(ctx, "dropping malformed feed message", "session.id", sessionID, "error", err)
			continue
		}

		if ok := chflow.Send(ctx, eventCh, event); !ok {
			return ctx.Err()
		}
	}
}

// setConnected flips the connectivity flag and notifies the handler on
// actual transitions only.
func (s *service) setConnected(ctx context.Context, connected bool, sessionID string) {
	if s.connected.Swap(connected) == connected {
		return
	}

	logger.Info(ctx, "feed connectivity changed", "session.id", sessionID, "connected", connected)
	if s.onConnectivity != nil {
		s.onConnectivity(ctx, connected)
	}
}

// config collects construction options.
type config struct {
	reconnectDelay time.Duration
	onConnectivity connectivityHandler
}

// Option adjusts service construction.
type Option func(*config)

// WithReconnectDelay overrides the flat pause between redial attempts.
// Default: 3 seconds.
func WithReconnectDelay(d time.Duration) Option {
	return func(c *config) {
		if d > 0 {
			c.reconnectDelay = d
		}
	}
}

// WithConnectivityHandler registers a callback invoked on every
// connectivity transition, e.g. to drive a "disconnected, retrying"
// indicator.
func WithConnectivityHandler(f connectivityHandler) Option {
	return func(c *config) {
		c.onConnectivity = f
	}
}

// New builds a feedstream service over the given transport.
func New(transport Transport, opts ...Option) *service {
	cfg := config{
		reconnectDelay: defaultReconnectDelay,
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	return &service{
		transport:      transport,
		reconnectDelay: cfg.reconnectDelay,
		onConnectivity: cfg.onConnectivity,
	}
}
