package counter

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/dmitrymomot/headcount/core/handler"
	"github.com/dmitrymomot/headcount/core/logger"
	"github.com/dmitrymomot/headcount/core/membership"
	"github.com/dmitrymomot/headcount/core/response"
	"github.com/dmitrymomot/headcount/core/router"
)

// SSEEventName is the event name of every Server-Sent Event carrying a count.
const SSEEventName = "count"

// HTTP serves the hub over plain HTTP routes.
type HTTP[C handler.Context] struct {
	hub    Hub
	logger *slog.Logger
	sse    []response.EventOption
	ws     []response.WebSocketOption
}

// HTTPOption configures the HTTP handlers.
type HTTPOption[C handler.Context] func(*HTTP[C])

// WithSSEOptions appends options applied to every SSE stream.
func WithSSEOptions[C handler.Context](opts ...response.EventOption) HTTPOption[C] {
	return func(h *HTTP[C]) {
		h.sse = append(h.sse, opts...)
	}
}

// WithWebSocketOptions appends options applied to every WebSocket stream.
func WithWebSocketOptions[C handler.Context](opts ...response.WebSocketOption) HTTPOption[C] {
	return func(h *HTTP[C]) {
		h.ws = append(h.ws, opts...)
	}
}

// NewHTTP creates the HTTP handlers. A nil logger discards output.
func NewHTTP[C handler.Context](hub Hub, log *slog.Logger, opts ...HTTPOption[C]) *HTTP[C] {
	if log == nil {
		log = logger.Nop()
	}
	h := &HTTP[C]{
		hub:    hub,
		logger: log.With(logger.Component("counter.http")),
	}
	h.sse = []response.EventOption{
		response.WithEventName(SSEEventName),
		response.WithSSEErrorHandler(h.streamError("sse")),
	}
	h.ws = []response.WebSocketOption{
		response.WithWSErrorHandler(h.streamError("websocket")),
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Register mounts the counter routes on r.
func Register[C handler.Context](r router.Router[C], h *HTTP[C]) {
	r.Get("/count", h.Count)
	r.Get("/subscribe", h.Subscribe)
	r.Get("/ws", h.WebSocket)
	r.Get("/stats", h.Stats)
}

// Count responds with {"count": N}.
func (h *HTTP[C]) Count(C) handler.Response {
	return response.JSON(membership.Notification{Count: h.hub.Count()})
}

// Stats responds with the hub counters.
func (h *HTTP[C]) Stats(C) handler.Response {
	return response.JSON(h.hub.Stats())
}

// Subscribe streams counts as Server-Sent Events.
func (h *HTTP[C]) Subscribe(ctx C) handler.Response {
	sub, err := h.hub.Subscribe(ctx)
	if err != nil {
		return unavailable(err)
	}
	return released(sub, response.SSE(sub.Updates(), h.sse...))
}

// WebSocket streams counts as JSON text frames.
func (h *HTTP[C]) WebSocket(ctx C) handler.Response {
	sub, err := h.hub.Subscribe(ctx)
	if err != nil {
		return unavailable(err)
	}
	return released(sub, response.WebSocketStream(sub.Updates(), h.ws...))
}

func (h *HTTP[C]) streamError(transport string) func(context.Context, error) {
	return func(ctx context.Context, err error) {
		h.logger.DebugContext(ctx, "stream ended with error",
			logger.Transport(transport),
			logger.Error(err),
		)
	}
}

// released wraps a streaming response so the subscription ends with it.
func released(sub *membership.Stream, next handler.Response) handler.Response {
	return func(w http.ResponseWriter, r *http.Request) error {
		defer sub.Release()
		return next(w, r)
	}
}

func unavailable(err error) handler.Response {
	return response.Error(response.ErrServiceUnavailable.WithError(err))
}
