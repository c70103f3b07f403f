package response

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/dmitrymomot/headcount/core/handler"
)

// DefaultSSEKeepAlive is the default keep-alive interval for SSE connections.
const DefaultSSEKeepAlive = 30 * time.Second

type sseConfig struct {
	eventName   string
	reconnect   int
	keepAlive   time.Duration
	noKeepAlive bool
	onError     func(context.Context, error)
}

// EventOption configures Server-Sent Events behavior.
type EventOption func(*sseConfig)

// WithEventName sets the event name for SSE events.
func WithEventName(name string) EventOption {
	return func(s *sseConfig) {
		s.eventName = name
	}
}

// WithReconnectTime sets the client reconnection time in milliseconds.
func WithReconnectTime(milliseconds int) EventOption {
	return func(s *sseConfig) {
		s.reconnect = milliseconds
	}
}

// WithKeepAlive sets the keep-alive interval for SSE connections.
func WithKeepAlive(interval time.Duration) EventOption {
	return func(s *sseConfig) {
		s.keepAlive = interval
	}
}

// WithoutKeepAlive disables keep-alive comments.
func WithoutKeepAlive() EventOption {
	return func(s *sseConfig) {
		s.noKeepAlive = true
	}
}

// WithSSEErrorHandler sets an error handler for streaming errors.
func WithSSEErrorHandler(fn func(context.Context, error)) EventOption {
	return func(s *sseConfig) {
		s.onError = fn
	}
}

// SSE streams values from events as Server-Sent Events until events is
// closed, a write fails, or the client goes away. Values are JSON encoded
// unless they are strings or byte slices. Event ids are sequential per
// connection.
func SSE[T any](events <-chan T, opts ...EventOption) handler.Response {
	cfg := &sseConfig{keepAlive: DefaultSSEKeepAlive}
	for _, opt := range opts {
		opt(cfg)
	}

	return func(w http.ResponseWriter, req *http.Request) error {
		flusher, ok := w.(http.Flusher)
		if !ok {
			return ErrInternalServerError.WithMessage("streaming unsupported")
		}

		// The stream outlives the server's write timeout.
		_ = http.NewResponseController(w).SetWriteDeadline(time.Time{})

		w.Header().Set("Content-Type", "text/event-stream")
		w.Header().Set("Cache-Control", "no-cache")
		w.Header().Set("Connection", "keep-alive")
		w.Header().Set("X-Accel-Buffering", "no")
		w.WriteHeader(http.StatusOK)

		fail := func(err error) error {
			if cfg.onError != nil {
				cfg.onError(req.Context(), err)
			}
			return nil
		}

		if cfg.reconnect > 0 {
			if _, err := fmt.Fprintf(w, "retry: %d\n\n", cfg.reconnect); err != nil {
				return fail(fmt.Errorf("failed to write retry: %w", err))
			}
		}
		if _, err := io.WriteString(w, ": connected\n\n"); err != nil {
			return fail(fmt.Errorf("failed to write connection message: %w", err))
		}
		flusher.Flush()

		var keepAlive <-chan time.Time
		var ticker *time.Ticker
		if !cfg.noKeepAlive && cfg.keepAlive > 0 {
			ticker = time.NewTicker(cfg.keepAlive)
			keepAlive = ticker.C
			defer ticker.Stop()
		}

		var seq uint64
		for {
			select {
			case <-req.Context().Done():
				return nil

			case <-keepAlive:
				if _, err := io.WriteString(w, ": keepalive\n\n"); err != nil {
					return fail(fmt.Errorf("failed to send keepalive: %w", err))
				}
				flusher.Flush()

			case data, ok := <-events:
				if !ok {
					return nil
				}
				if ticker != nil {
					ticker.Reset(cfg.keepAlive)
				}

				seq++
				if err := writeSSEEvent(w, data, cfg.eventName, strconv.FormatUint(seq, 10)); err != nil {
					return fail(fmt.Errorf("failed to write event: %w", err))
				}
				flusher.Flush()
			}
		}
	}
}

func writeSSEEvent(w io.Writer, data any, eventName, eventID string) error {
	if eventName != "" {
		if _, err := fmt.Fprintf(w, "event: %s\n", eventName); err != nil {
			return err
		}
	}
	if eventID != "" {
		if _, err := fmt.Fprintf(w, "id: %s\n", eventID); err != nil {
			return err
		}
	}

	var payload string
	switch v := data.(type) {
	case string:
		payload = v
	case []byte:
		payload = string(v)
	default:
		b, err := json.Marshal(data)
		if err != nil {
			return err
		}
		payload = string(b)
	}

	_, err := fmt.Fprintf(w, "data: %s\n\n", payload)
	return err
}
