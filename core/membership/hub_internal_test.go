package membership

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHub_LeaveIsIdempotent(t *testing.T) {
	t.Parallel()

	h := New()
	defer h.Close()

	keep, err := h.Subscribe(context.Background())
	require.NoError(t, err)
	gone, err := h.Subscribe(context.Background())
	require.NoError(t, err)
	defer keep.Release()
	defer gone.Release()

	before := h.broadcasts.Load()

	assert.True(t, h.leave(gone.ID()))
	assert.False(t, h.leave(gone.ID()))

	assert.Equal(t, before+1, h.broadcasts.Load())
	assert.Equal(t, uint32(1), h.Count())
}

func TestEntry_Deliver(t *testing.T) {
	t.Parallel()

	t.Run("full_buffer", func(t *testing.T) {
		t.Parallel()

		e := &entry{updates: make(chan Notification, 1), gone: make(chan struct{})}
		require.NoError(t, e.deliver(Notification{Count: 1}))
		assert.ErrorIs(t, e.deliver(Notification{Count: 2}), ErrBufferFull)
	})

	t.Run("released_consumer", func(t *testing.T) {
		t.Parallel()

		gone := make(chan struct{})
		close(gone)
		e := &entry{updates: make(chan Notification, 1), gone: gone}
		assert.ErrorIs(t, e.deliver(Notification{Count: 1}), ErrSubscriberGone)
		assert.Empty(t, e.updates)
	})
}

func TestHub_BroadcastSkipsReleasedWithoutRemoving(t *testing.T) {
	t.Parallel()

	h := New()
	defer h.Close()

	det := newDetector()
	det.fire()
	stale := &entry{
		id:       nextID(),
		updates:  make(chan Notification, 1),
		gone:     det.released,
		detector: det,
	}

	h.reg.mu.Lock()
	h.reg.insert(stale)
	h.broadcastLocked()
	h.reg.mu.Unlock()

	assert.Empty(t, stale.updates)
	assert.Equal(t, uint32(1), h.Count())
}

func TestRegistry_DuplicateInsertPanics(t *testing.T) {
	t.Parallel()

	r := newRegistry()
	e := &entry{id: nextID(), updates: make(chan Notification, 1)}
	r.insert(e)

	assert.Panics(t, func() { r.insert(e) })
	assert.True(t, r.remove(e.id))
	assert.False(t, r.remove(e.id))
}

func TestDetector_FiresOnce(t *testing.T) {
	t.Parallel()

	d := newDetector()
	assert.True(t, d.fire())
	assert.False(t, d.fire())
	d.orphan()

	_, ok := <-d.signal
	assert.True(t, ok)
	_, ok = <-d.signal
	assert.False(t, ok)
}

func TestDetector_Orphan(t *testing.T) {
	t.Parallel()

	d := newDetector()
	d.orphan()
	assert.False(t, d.fire())

	_, ok := <-d.signal
	assert.False(t, ok)
}
