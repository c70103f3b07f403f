// Package membership tracks live subscribers and broadcasts the subscriber
// count to all of them whenever the set changes.
//
// # Usage
//
//	hub := membership.New(
//		membership.WithBufferSize(4),
//		membership.WithLogger(log),
//	)
//	defer hub.Close()
//
//	stream, err := hub.Subscribe(ctx)
//	if err != nil {
//		return err
//	}
//	defer stream.Release()
//
//	for n := range stream.Updates() {
//		fmt.Println("subscribers:", n.Count)
//	}
//
// # Ordering
//
// A join is inserted into the registry and broadcast under one exclusive
// lock acquisition, before Subscribe returns. The first value in a new
// stream therefore already counts the new subscriber. A departure is
// removed and broadcast the same way, so Count never observes a registry
// that disagrees with the last announced count.
//
// # Delivery
//
// Each subscriber has a small bounded buffer. Broadcasts never block: if a
// buffer is full the update is dropped for that subscriber and counted in
// Stats.Dropped. Slow consumers miss intermediate counts but never stall
// the hub or other subscribers.
//
// # Departure
//
// There is no unsubscribe call. A subscriber leaves when its Stream is
// released, either explicitly through Release or because the context passed
// to Subscribe is done. Pass the peer's request or RPC context so that an
// abandoned stream still leaves. Release is idempotent; the departure
// broadcast happens at most once.
//
// Streams found released during a broadcast are skipped but stay in the
// registry until their disconnect watcher removes them.
package membership
