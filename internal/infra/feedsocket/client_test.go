package feedsocket

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newFeedServer starts a websocket server that pushes the given frames and
// then keeps the connection open until the test ends.
func newFeedServer(t *testing.T, frames ...string) string {
	t.Helper()

	upgrader := websocket.Upgrader{}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		defer conn.Close()

		for _, frame := range frames {
			if err := conn.WriteMessage(websocket.TextMessage, []byte(frame)); err != nil {
				return
			}
		}

		// Drain control frames until the client goes away.
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}))
	t.Cleanup(srv.Close)

	return "ws" + strings.TrimPrefix(srv.URL, "http")
}

func TestTransportDial(t *testing.T) {
	t.Run("delivers frames in order", func(t *testing.T) {
		url := newFeedServer(t, `{"type":"Block"}`, `{"type":"stats","data":{}}`)

		session, err := NewTransport(url).Dial(context.Background())
		require.NoError(t, err)
		defer session.Close()

		first, err := session.ReadMessage(context.Background())
		require.NoError(t, err)
		assert.JSONEq(t, `{"type":"Block"}`, string(first))

		second, err := session.ReadMessage(context.Background())
		require.NoError(t, err)
		assert.JSONEq(t, `{"type":"stats","data":{}}`, string(second))
	})

	t.Run("fails when nothing is listening", func(t *testing.T) {
		_, err := NewTransport("ws://127.0.0.1:1", WithHandshakeTimeout(100*time.Millisecond)).
			Dial(context.Background())

		assert.Error(t, err)
	})

	t.Run("a canceled context unblocks the read", func(t *testing.T) {
		url := newFeedServer(t)

		session, err := NewTransport(url).Dial(context.Background())
		require.NoError(t, err)
		defer session.Close()

		ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
		defer cancel()

		_, err = session.ReadMessage(ctx)
		assert.ErrorIs(t, err, context.DeadlineExceeded)
	})

	t.Run("a silent feed trips the read deadline", func(t *testing.T) {
		url := newFeedServer(t)

		session, err := NewTransport(url, WithReadTimeout(50*time.Millisecond)).
			Dial(context.Background())
		require.NoError(t, err)
		defer session.Close()

		_, err = session.ReadMessage(context.Background())
		assert.Error(t, err)
	})

	t.Run("reads fail after Close", func(t *testing.T) {
		url := newFeedServer(t)

		session, err := NewTransport(url).Dial(context.Background())
		require.NoError(t, err)
		require.NoError(t, session.Close())

		_, err = session.ReadMessage(context.Background())
		assert.Error(t, err)
	})

	t.Run("Close is idempotent", func(t *testing.T) {
		url := newFeedServer(t)

		session, err := NewTransport(url).Dial(context.Background())
		require.NoError(t, err)

		require.NoError(t, session.Close())
		assert.NoError(t, session.Close())
	})
}
