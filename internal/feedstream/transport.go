package feedstream

import "context"

// Transport dials the upstream event feed. Implementations live under
// internal/infra; the service only ever holds one live Session at a time.
type Transport interface {
	// Dial establishes one physical connection to the feed. It returns a
	// Session ready to read from, or an error if the connection could not
	// be established.
	Dial(ctx context.Context) (Session, error)
}

// Session is one physical feed connection delivering raw frames.
type Session interface {
	// ReadMessage blocks until the next frame arrives, the connection
	// drops, or ctx is canceled. A non-nil error means the session is
	// over: clean closes and socket failures both surface here and both
	// lead to the same reconnect path.
	ReadMessage(ctx context.Context) ([]byte, error)

	// Close tears down the connection. It is safe to call after
	// ReadMessage has already failed.
	Close() error
}
