package membership

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"sync/atomic"

	"github.com/dmitrymomot/headcount/core/logger"
)

// Hub tracks active subscribers and broadcasts the subscriber count to all
// of them whenever a subscriber joins or leaves.
// Safe for concurrent use.
type Hub struct {
	reg        *registry
	closed     bool // guarded by reg.mu
	bufferSize int
	logger     *slog.Logger
	watchers   sync.WaitGroup

	joins      atomic.Uint64
	leaves     atomic.Uint64
	broadcasts atomic.Uint64
	dropped    atomic.Uint64
	orphaned   atomic.Uint64
}

// Stats is a point-in-time snapshot of hub activity.
type Stats struct {
	Active     uint32 `json:"active"`
	Joins      uint64 `json:"joins"`
	Leaves     uint64 `json:"leaves"`
	Broadcasts uint64 `json:"broadcasts"`
	Dropped    uint64 `json:"dropped"`
	Orphaned   uint64 `json:"orphaned"`
}

// New creates a Hub. Defaults to DefaultBufferSize and a no-op logger.
func New(opts ...Option) *Hub {
	h := &Hub{
		reg:        newRegistry(),
		bufferSize: DefaultBufferSize,
		logger:     slog.New(slog.NewTextHandler(io.Discard, nil)),
	}

	for _, opt := range opts {
		opt(h)
	}

	return h
}

// Subscribe registers a new subscriber and announces the new count to every
// subscriber, including the new one, before returning its stream.
// The subscription ends when the stream is released or ctx is done.
func (h *Hub) Subscribe(ctx context.Context) (*Stream, error) {
	id := nextID()
	updates := make(chan Notification, h.bufferSize)
	det := newDetector()

	h.reg.mu.Lock()
	if h.closed {
		h.reg.mu.Unlock()
		return nil, ErrHubClosed
	}
	h.reg.insert(&entry{
		id:       id,
		updates:  updates,
		gone:     det.released,
		detector: det,
	})
	h.joins.Add(1)
	h.broadcastLocked()
	h.watchers.Add(1)
	h.reg.mu.Unlock()

	go h.watch(id, det)

	h.logger.DebugContext(ctx, "subscriber joined",
		logger.Event("join"),
		logger.ID("subscription_id", uint64(id)),
	)

	return newStream(ctx, id, updates, det), nil
}

// Count returns the number of active subscribers.
func (h *Hub) Count() uint32 {
	return uint32(h.reg.count())
}

// Stats returns a snapshot of hub counters.
func (h *Hub) Stats() Stats {
	return Stats{
		Active:     h.Count(),
		Joins:      h.joins.Load(),
		Leaves:     h.leaves.Load(),
		Broadcasts: h.broadcasts.Load(),
		Dropped:    h.dropped.Load(),
		Orphaned:   h.orphaned.Load(),
	}
}

// Closed reports whether Close has been called.
func (h *Hub) Closed() bool {
	h.reg.mu.RLock()
	defer h.reg.mu.RUnlock()
	return h.closed
}

// Close removes every subscriber, closes their update channels and waits for
// all disconnect watchers to exit. Pending disconnect notifiers are orphaned,
// so no departure broadcast follows. Safe to call multiple times.
func (h *Hub) Close() {
	h.reg.mu.Lock()
	if h.closed {
		h.reg.mu.Unlock()
		return
	}
	h.closed = true
	entries := h.reg.drain()
	h.reg.mu.Unlock()

	for _, e := range entries {
		e.detector.orphan()
	}

	h.watchers.Wait()

	h.logger.Info("membership hub closed",
		logger.Event("shutdown"),
		logger.Count("subscribers", len(entries)),
	)
}

// watch blocks until the subscription's disconnect notifier resolves.
func (h *Hub) watch(id SubscriptionID, det *detector) {
	defer h.watchers.Done()

	if _, ok := <-det.signal; !ok {
		h.orphaned.Add(1)
		h.logger.Warn("disconnect notifier dropped without firing",
			logger.Error(ErrOrphanedNotifier),
			logger.ID("subscription_id", uint64(id)),
		)
		return
	}

	if h.leave(id) {
		h.logger.Debug("subscriber left",
			logger.Event("leave"),
			logger.ID("subscription_id", uint64(id)),
		)
	}
}

// leave removes id and, if it was present, broadcasts the new count under
// the same lock acquisition.
func (h *Hub) leave(id SubscriptionID) bool {
	h.reg.mu.Lock()
	defer h.reg.mu.Unlock()

	if !h.reg.remove(id) {
		return false
	}
	h.leaves.Add(1)
	h.broadcastLocked()
	return true
}
