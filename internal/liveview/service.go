// Package liveview wires the feed connection into the reconciliation store.
// It is the single writer: each inbound event is fully applied before the
// next one is read, and registered view notifiers run after every mutation
// so pull-based views know to re-render.
package liveview

import (
	"context"
	"errors"
	"sync"

	"github.com/adawatch/adawatch/internal/feed"
	"github.com/adawatch/adawatch/internal/feedstream"
	"github.com/adawatch/adawatch/internal/pkg/x/chflow"
	"github.com/adawatch/adawatch/internal/reconcile"
)

// ErrServiceAlreadyStarted is returned if Start is called more than once.
var ErrServiceAlreadyStarted = errors.New("service already started")

// ViewNotifier is called after every store mutation. Notifiers run inline on
// the event loop, so they must only schedule work, never block.
type ViewNotifier func(ctx context.Context)

// Service drives the live reconciliation pipeline.
type Service interface {
	// Start begins consuming the feed and applying events to the store.
	// Returns ErrServiceAlreadyStarted when called twice.
	Start(ctx context.Context) error

	// Connected reports the feed connectivity flag for the views.
	Connected() bool

	// Store exposes the read-only side of the reconciled state. Views
	// hold this reference and pull through its accessors; they never
	// receive a copy that could drift.
	Store() *reconcile.Store

	// Close stops the pipeline and the underlying feed session.
	Close()
}

type closeFunc func()

type service struct {
	mu        sync.Mutex
	isStarted bool
	closeFunc closeFunc

	stream feedstream.Service
	store  *reconcile.Store

	notifiers []ViewNotifier
}

var _ Service = (*service)(nil)

// Start implements Service.
func (s *service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.isStarted {
		return ErrServiceAlreadyStarted
	}

	ctx, cancel := context.WithCancel(ctx)

	eventCh, err := s.stream.Start(ctx)
	if err != nil {
		cancel()
		return err
	}

	go s.applyEvents(ctx, eventCh)

	s.closeFunc = func() {
		cancel()
		s.stream.Close()
	}
	s.isStarted = true
	return nil
}

// Connected implements Service.
func (s *service) Connected() bool {
	return s.stream.Connected()
}

// Store implements Service.
func (s *service) Store() *reconcile.Store {
	return s.store
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

// applyEvents is the single mutation loop: one event is classified,
// applied and fanned out before the next is received.
func (s *service) applyEvents(ctx context.Context, eventCh <-chan feed.Event) {
	for {
		event, ok := chflow.Receive(ctx, eventCh)
		if !ok {
			return
		}

		s.store.Apply(event)

		for _, notify := range s.notifiers {
			notify(ctx)
		}
	}
}

// config collects construction options.
type config struct {
	notifiers []ViewNotifier
}

// Option adjusts service construction.
type Option func(*config)

// WithViewNotifier registers a callback invoked after every store mutation.
// It may be given multiple times; notifiers run in registration order.
func WithViewNotifier(f ViewNotifier) Option {
	return func(c *config) {
		c.notifiers = append(c.notifiers, f)
	}
}

// New wires the feed stream into the store.
func New(stream feedstream.Service, store *reconcile.Store, opts ...Option) *service {
	var cfg config
	for _, opt := range opts {
		opt(&cfg)
	}

	return &service{
		stream:    stream,
		store:     store,
		notifiers: cfg.notifiers,
	}
}
