package membership

import (
	"fmt"
	"sync"
	"sync/atomic"
)

// SubscriptionID identifies a subscription for the lifetime of the process.
type SubscriptionID uint64

// lastID is shared by every hub so that ids stay unique process-wide.
var lastID atomic.Uint64

func nextID() SubscriptionID {
	return SubscriptionID(lastID.Add(1))
}

// Notification is the payload pushed to subscribers on every membership change.
type Notification struct {
	Count uint32 `json:"count"`
}

// entry is the registry's handle on one subscriber. The registry owns the
// send side of updates and is the only place that closes it.
type entry struct {
	id       SubscriptionID
	updates  chan Notification
	gone     <-chan struct{}
	detector *detector
}

// deliver attempts a non-blocking send of n.
func (e *entry) deliver(n Notification) error {
	select {
	case <-e.gone:
		return ErrSubscriberGone
	default:
	}

	select {
	case e.updates <- n:
		return nil
	default:
		return ErrBufferFull
	}
}

// registry maps subscription ids to entries. Every method except count
// expects the caller to hold mu; insert and remove need it exclusively.
type registry struct {
	mu      sync.RWMutex
	entries map[SubscriptionID]*entry
}

func newRegistry() *registry {
	return &registry{entries: make(map[SubscriptionID]*entry)}
}

func (r *registry) insert(e *entry) {
	if _, ok := r.entries[e.id]; ok {
		panic(fmt.Sprintf("membership: duplicate subscription id %d", e.id))
	}
	r.entries[e.id] = e
}

func (r *registry) remove(id SubscriptionID) bool {
	e, ok := r.entries[id]
	if !ok {
		return false
	}
	delete(r.entries, id)
	close(e.updates)
	return true
}

// drain removes every entry and returns them.
func (r *registry) drain() []*entry {
	out := make([]*entry, 0, len(r.entries))
	for id, e := range r.entries {
		delete(r.entries, id)
		close(e.updates)
		out = append(out, e)
	}
	return out
}

func (r *registry) size() int {
	return len(r.entries)
}

func (r *registry) forEach(fn func(*entry)) {
	for _, e := range r.entries {
		fn(e)
	}
}

// count takes the shared lock on its own.
func (r *registry) count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.entries)
}
