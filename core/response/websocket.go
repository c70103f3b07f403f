package response

import (
	"context"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"github.com/dmitrymomot/headcount/core/handler"
)

const (
	// DefaultWSWriteTimeout bounds each frame write.
	DefaultWSWriteTimeout = 10 * time.Second

	// DefaultWSPingInterval is how often idle connections are pinged.
	DefaultWSPingInterval = 30 * time.Second
)

type wsConfig struct {
	upgrader     *websocket.Upgrader
	writeTimeout time.Duration
	pingInterval time.Duration
	onError      func(context.Context, error)
}

// WebSocketOption configures WebSocket behavior.
type WebSocketOption func(*wsConfig)

// WithWSAllowAnyOrigin disables the same-origin check.
func WithWSAllowAnyOrigin() WebSocketOption {
	return func(c *wsConfig) {
		c.upgrader.CheckOrigin = func(r *http.Request) bool { return true }
	}
}

// WithWSWriteTimeout sets the deadline for each frame write.
func WithWSWriteTimeout(timeout time.Duration) WebSocketOption {
	return func(c *wsConfig) {
		if timeout > 0 {
			c.writeTimeout = timeout
		}
	}
}

// WithWSPingInterval sets the ping interval. Zero disables pings.
func WithWSPingInterval(interval time.Duration) WebSocketOption {
	return func(c *wsConfig) {
		c.pingInterval = interval
	}
}

// WithWSErrorHandler sets an error handler for upgrade and streaming errors.
func WithWSErrorHandler(fn func(context.Context, error)) WebSocketOption {
	return func(c *wsConfig) {
		c.onError = fn
	}
}

// WebSocketStream upgrades the connection and writes every value from
// events as a JSON text frame. Client frames are read and discarded; the
// stream ends when the client closes, a write fails, the request context
// is done, or events is closed, in which case a close frame is sent.
func WebSocketStream[T any](events <-chan T, opts ...WebSocketOption) handler.Response {
	cfg := &wsConfig{
		upgrader: &websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
		writeTimeout: DefaultWSWriteTimeout,
		pingInterval: DefaultWSPingInterval,
	}
	for _, opt := range opts {
		opt(cfg)
	}

	return func(w http.ResponseWriter, r *http.Request) error {
		ctx := r.Context()

		conn, err := cfg.upgrader.Upgrade(w, r, nil)
		if err != nil {
			// Upgrade has already replied to the client.
			if cfg.onError != nil {
				cfg.onError(ctx, err)
			}
			return nil
		}
		defer func() { _ = conn.Close() }()
		_ = conn.SetReadDeadline(time.Time{})

		peerGone := make(chan struct{})
		go func() {
			defer close(peerGone)
			for {
				if _, _, err := conn.NextReader(); err != nil {
					return
				}
			}
		}()

		var ping <-chan time.Time
		if cfg.pingInterval > 0 {
			ticker := time.NewTicker(cfg.pingInterval)
			defer ticker.Stop()
			ping = ticker.C
		}

		for {
			select {
			case <-ctx.Done():
				return nil

			case <-peerGone:
				return nil

			case <-ping:
				deadline := time.Now().Add(cfg.writeTimeout)
				if err := conn.WriteControl(websocket.PingMessage, nil, deadline); err != nil {
					return nil
				}

			case data, ok := <-events:
				_ = conn.SetWriteDeadline(time.Now().Add(cfg.writeTimeout))
				if !ok {
					_ = conn.WriteMessage(websocket.CloseMessage,
						websocket.FormatCloseMessage(websocket.CloseGoingAway, ""))
					return nil
				}
				if err := conn.WriteJSON(data); err != nil {
					if cfg.onError != nil && !websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
						cfg.onError(ctx, err)
					}
					return nil
				}
			}
		}
	}
}
