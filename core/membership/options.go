package membership

import "log/slog"

// DefaultBufferSize is the default capacity of each subscriber's delivery channel.
const DefaultBufferSize = 4

// Option configures a Hub.
type Option func(*Hub)

// WithBufferSize sets the per-subscriber delivery buffer.
// Non-positive values are ignored.
func WithBufferSize(size int) Option {
	return func(h *Hub) {
		if size > 0 {
			h.bufferSize = size
		}
	}
}

// WithLogger configures structured logging for the hub.
func WithLogger(logger *slog.Logger) Option {
	return func(h *Hub) {
		if logger != nil {
			h.logger = logger
		}
	}
}
