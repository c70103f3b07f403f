package membership

import (
	"context"
	"sync"
)

// detector is a one-shot disconnect notifier. fire delivers a value on
// signal and closes it; orphan closes signal without a value. Whichever
// runs first wins and the other becomes a no-op.
type detector struct {
	once     sync.Once
	released chan struct{}
	signal   chan struct{}
}

func newDetector() *detector {
	return &detector{
		released: make(chan struct{}),
		signal:   make(chan struct{}, 1),
	}
}

func (d *detector) fire() bool {
	fired := false
	d.once.Do(func() {
		close(d.released)
		d.signal <- struct{}{}
		close(d.signal)
		fired = true
	})
	return fired
}

func (d *detector) orphan() {
	d.once.Do(func() {
		close(d.released)
		close(d.signal)
	})
}

// Stream is the consumer side of a subscription handed to a transport.
// The transport drains Updates until it is closed or the peer goes away,
// then calls Release. Release may be called any number of times.
//
// The subscription also ends when the context passed to Subscribe is done,
// so a transport that ties it to the peer's request or RPC context leaves
// the registry even if it never reaches Release. Reachability of the Stream
// itself plays no part: a consumer may keep only the Updates channel.
type Stream struct {
	id      SubscriptionID
	updates <-chan Notification
	det     *detector
	stop    func() bool
}

func newStream(ctx context.Context, id SubscriptionID, updates <-chan Notification, det *detector) *Stream {
	s := &Stream{
		id:      id,
		updates: updates,
		det:     det,
	}

	s.stop = context.AfterFunc(ctx, func() { det.fire() })

	return s
}

// ID returns the subscription identity.
func (s *Stream) ID() SubscriptionID {
	return s.id
}

// Updates returns the delivery channel. It is closed when the subscription
// is removed from the hub or the hub shuts down.
func (s *Stream) Updates() <-chan Notification {
	return s.updates
}

// Done is closed once the stream has been released or orphaned.
func (s *Stream) Done() <-chan struct{} {
	return s.det.released
}

// Release signals that the consumer is gone.
func (s *Stream) Release() {
	s.stop()
	s.det.fire()
}
