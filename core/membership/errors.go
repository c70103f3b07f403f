package membership

import "errors"

var (
	// ErrHubClosed is returned by Subscribe once the hub has been closed.
	ErrHubClosed = errors.New("membership hub is closed")

	// ErrBufferFull marks an update dropped because the subscriber's buffer is saturated.
	ErrBufferFull = errors.New("subscriber buffer is full")

	// ErrSubscriberGone marks an update skipped because the consumer already released its stream.
	ErrSubscriberGone = errors.New("subscriber is gone")

	// ErrOrphanedNotifier marks a disconnect notifier that was torn down without firing.
	ErrOrphanedNotifier = errors.New("disconnect notifier orphaned")
)
