package membership

import (
	"errors"

	"github.com/dmitrymomot/headcount/core/logger"
)

// broadcastLocked pushes the current count to every subscriber.
// h.reg.mu must be held for writing by the caller, so the count announced
// is exactly the registry size seen by every subscriber in this round.
//
// Delivery never blocks: a full buffer drops the update for that subscriber
// only, and a released subscriber is skipped and left in place for its
// disconnect watcher to remove.
func (h *Hub) broadcastLocked() {
	n := Notification{Count: uint32(h.reg.size())}
	h.broadcasts.Add(1)

	h.reg.forEach(func(e *entry) {
		err := e.deliver(n)
		switch {
		case err == nil:
		case errors.Is(err, ErrBufferFull):
			h.dropped.Add(1)
			h.logger.Warn("dropping count update for slow subscriber",
				logger.Error(err),
				logger.ID("subscription_id", uint64(e.id)),
				logger.Count("count", int(n.Count)),
			)
		default:
			h.logger.Debug("skipping count update",
				logger.Error(err),
				logger.ID("subscription_id", uint64(e.id)),
			)
		}
	})
}
