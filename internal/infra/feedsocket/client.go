// Package feedsocket is the gorilla/websocket implementation of the live
// feed transport. It dials the viewer's websocket endpoint and hands frames
// up one at a time; session lifecycle and reconnection belong to the
// feedstream service, not here.
package feedsocket

import (
	"context"
	"fmt"
	"time"

	"github.com/adawatch/adawatch/internal/feedstream"

	"github.com/gorilla/websocket"
)

const (
	defaultHandshakeTimeout = 10 * time.Second
	defaultReadTimeout      = 60 * time.Second
	defaultPingInterval     = 30 * time.Second
	defaultWriteTimeout     = 10 * time.Second
)

type transport struct {
	url              string
	handshakeTimeout time.Duration
	readTimeout      time.Duration
	pingInterval     time.Duration
	writeTimeout     time.Duration
}

var _ feedstream.Transport = (*transport)(nil)

// Dial implements feedstream.Transport.
func (t *transport) Dial(ctx context.Context) (feedstream.Session, error) {
	dialer := websocket.Dialer{
		HandshakeTimeout: t.handshakeTimeout,
	}

	conn, _, err := dialer.DialContext(ctx, t.url, nil)
	if err != nil {
		return nil, fmt.Errorf("websocket dial: %w", err)
	}

	conn.SetReadDeadline(time.Now().Add(t.readTimeout))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(t.readTimeout))
	})

	s := &session{
		conn:         conn,
		readTimeout:  t.readTimeout,
		writeTimeout: t.writeTimeout,
		done:         make(chan struct{}),
	}

	go s.pingLoop(t.pingInterval)

	return s, nil
}

type session struct {
	conn         *websocket.Conn
	readTimeout  time.Duration
	writeTimeout time.Duration
	done         chan struct{}
}

var _ feedstream.Session = (*session)(nil)

// ReadMessage implements feedstream.Session. It blocks until a frame
// arrives, the context is canceled or the connection breaks.
func (s *session) ReadMessage(ctx context.Context) ([]byte, error) {
	readDone := make(chan struct{})
	defer close(readDone)

	// Gorilla reads cannot be canceled directly; expiring the read
	// deadline unblocks the pending ReadMessage.
	go func() {
		select {
		case <-ctx.Done():
			s.conn.SetReadDeadline(time.Now())
		case <-readDone:
		}
	}()

	s.conn.SetReadDeadline(time.Now().Add(s.readTimeout))

	_, payload, err := s.conn.ReadMessage()
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}

		return nil, fmt.Errorf("websocket read: %w", err)
	}

	return payload, nil
}

// Close implements feedstream.Session.
func (s *session) Close() error {
	select {
	case <-s.done:
		return nil
	default:
	}
	close(s.done)

	s.conn.SetWriteDeadline(time.Now().Add(s.writeTimeout))
	s.conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))

	return s.conn.Close()
}

// pingLoop keeps the connection alive for quiet stretches of the chain.
func (s *session) pingLoop(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-s.done:
			return
		case <-ticker.C:
			s.conn.SetWriteDeadline(time.Now().Add(s.writeTimeout))
			if err := s.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				// A dead connection surfaces to the reader as well.
				return
			}
		}
	}
}

// config collects construction options.
type config struct {
	handshakeTimeout time.Duration
	readTimeout      time.Duration
	pingInterval     time.Duration
	writeTimeout     time.Duration
}

// Option adjusts transport construction.
type Option func(*config)

// WithHandshakeTimeout overrides the default 10s websocket handshake timeout.
func WithHandshakeTimeout(d time.Duration) Option {
	return func(cfg *config) {
		cfg.handshakeTimeout = d
	}
}

// WithReadTimeout overrides the default 60s read deadline. A session whose
// feed stays silent past the deadline is treated as broken.
func WithReadTimeout(d time.Duration) Option {
	return func(cfg *config) {
		cfg.readTimeout = d
	}
}

// WithPingInterval overrides the default 30s keepalive ping interval.
func WithPingInterval(d time.Duration) Option {
	return func(cfg *config) {
		cfg.pingInterval = d
	}
}

// NewTransport builds the websocket transport for the given feed URL.
func NewTransport(url string, opts ...Option) *transport {
	cfg := config{
		handshakeTimeout: defaultHandshakeTimeout,
		readTimeout:      defaultReadTimeout,
		pingInterval:     defaultPingInterval,
		writeTimeout:     defaultWriteTimeout,
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	return &transport{
		url:              url,
		handshakeTimeout: cfg.handshakeTimeout,
		readTimeout:      cfg.readTimeout,
		pingInterval:     cfg.pingInterval,
		writeTimeout:     cfg.writeTimeout,
	}
}
