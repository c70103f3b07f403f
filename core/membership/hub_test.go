package membership_test

import (
	"context"
	"runtime"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/dmitrymomot/headcount/core/membership"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func recv(t *testing.T, s *membership.Stream) membership.Notification {
	t.Helper()
	select {
	case n, ok := <-s.Updates():
		require.True(t, ok, "updates channel closed")
		return n
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for count update")
		return membership.Notification{}
	}
}

// waitFor drains s until a notification with the wanted count arrives.
func waitFor(t *testing.T, s *membership.Stream, want uint32) {
	t.Helper()
	deadline := time.After(time.Second)
	for {
		select {
		case n, ok := <-s.Updates():
			require.True(t, ok, "updates channel closed")
			if n.Count == want {
				return
			}
		case <-deadline:
			t.Fatalf("timed out waiting for count %d", want)
		}
	}
}

func subscribe(t *testing.T, hub *membership.Hub) *membership.Stream {
	t.Helper()
	s, err := hub.Subscribe(context.Background())
	require.NoError(t, err)
	return s
}

func TestHub_SequentialSubscribe(t *testing.T) {
	t.Parallel()

	hub := membership.New()
	defer hub.Close()

	s1 := subscribe(t, hub)
	s2 := subscribe(t, hub)
	s3 := subscribe(t, hub)

	assert.Equal(t, uint32(1), recv(t, s1).Count)
	assert.Equal(t, uint32(2), recv(t, s1).Count)
	assert.Equal(t, uint32(3), recv(t, s1).Count)

	assert.Equal(t, uint32(2), recv(t, s2).Count)
	assert.Equal(t, uint32(3), recv(t, s2).Count)

	assert.Equal(t, uint32(3), recv(t, s3).Count)

	assert.Equal(t, uint32(3), hub.Count())
}

func TestHub_JoinNotificationIncludesSelf(t *testing.T) {
	t.Parallel()

	hub := membership.New(membership.WithBufferSize(16))
	defer hub.Close()

	for i := 1; i <= 5; i++ {
		s := subscribe(t, hub)
		n := recv(t, s)
		assert.Equal(t, uint32(i), n.Count)
		assert.Equal(t, hub.Count(), n.Count)
	}
}

func TestHub_UniqueIDs(t *testing.T) {
	t.Parallel()

	hub := membership.New()
	defer hub.Close()

	const workers = 64
	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		streams = make([]*membership.Stream, 0, workers)
	)

	for range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			s, err := hub.Subscribe(context.Background())
			if !assert.NoError(t, err) {
				return
			}
			mu.Lock()
			streams = append(streams, s)
			mu.Unlock()
		}()
	}
	wg.Wait()

	require.Len(t, streams, workers)
	seen := make(map[membership.SubscriptionID]struct{}, workers)
	for _, s := range streams {
		_, dup := seen[s.ID()]
		assert.False(t, dup, "duplicate subscription id %d", s.ID())
		seen[s.ID()] = struct{}{}
	}
	assert.Equal(t, uint32(workers), hub.Count())

	for _, s := range streams {
		s.Release()
	}
	assert.Eventually(t, func() bool { return hub.Count() == 0 }, time.Second, 5*time.Millisecond)
}

func TestHub_CountAccuracy(t *testing.T) {
	t.Parallel()

	hub := membership.New()
	defer hub.Close()

	streams := make([]*membership.Stream, 10)
	for i := range streams {
		streams[i] = subscribe(t, hub)
	}
	for _, s := range streams[:4] {
		s.Release()
	}

	assert.Eventually(t, func() bool { return hub.Count() == 6 }, time.Second, 5*time.Millisecond)

	stats := hub.Stats()
	assert.Equal(t, uint64(10), stats.Joins)
	assert.Equal(t, uint64(4), stats.Leaves)
	assert.Equal(t, uint32(6), stats.Active)
}

func TestHub_LeaveNotification(t *testing.T) {
	t.Parallel()

	hub := membership.New()
	defer hub.Close()

	a := subscribe(t, hub)
	b := subscribe(t, hub)
	c := subscribe(t, hub)

	assert.Equal(t, uint32(1), recv(t, a).Count)
	assert.Equal(t, uint32(2), recv(t, a).Count)
	assert.Equal(t, uint32(3), recv(t, a).Count)
	assert.Equal(t, uint32(2), recv(t, b).Count)
	assert.Equal(t, uint32(3), recv(t, b).Count)

	c.Release()

	waitFor(t, a, 2)
	waitFor(t, b, 2)
	assert.Equal(t, uint32(2), hub.Count())

	select {
	case _, ok := <-c.Updates():
		for ok {
			_, ok = <-c.Updates()
		}
	case <-time.After(time.Second):
		t.Fatal("released stream was not closed")
	}
}

func TestHub_ReleaseTwice(t *testing.T) {
	t.Parallel()

	hub := membership.New()
	defer hub.Close()

	keep := subscribe(t, hub)
	gone := subscribe(t, hub)
	assert.Equal(t, uint32(1), recv(t, keep).Count)
	assert.Equal(t, uint32(2), recv(t, keep).Count)
	before := hub.Stats().Broadcasts

	var wg sync.WaitGroup
	for range 2 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			gone.Release()
		}()
	}
	wg.Wait()
	gone.Release()

	waitFor(t, keep, 1)
	assert.Equal(t, uint32(1), hub.Count())

	assert.Never(t, func() bool {
		return hub.Stats().Broadcasts != before+1
	}, 50*time.Millisecond, 5*time.Millisecond)

	stats := hub.Stats()
	assert.Equal(t, before+1, stats.Broadcasts)
	assert.Equal(t, uint64(1), stats.Leaves)
}

func TestHub_SlowConsumerIsolation(t *testing.T) {
	t.Parallel()

	hub := membership.New(membership.WithBufferSize(1))
	defer hub.Close()

	slow := subscribe(t, hub)
	fast := subscribe(t, hub)

	assert.Equal(t, uint32(2), recv(t, fast).Count)

	// slow still holds its first update, so the second one was dropped.
	assert.Equal(t, uint32(1), recv(t, slow).Count)
	assert.Equal(t, uint64(1), hub.Stats().Dropped)

	other := subscribe(t, hub)
	assert.Equal(t, uint32(3), recv(t, fast).Count)
	assert.Equal(t, uint32(3), recv(t, slow).Count)
	assert.Equal(t, uint32(3), recv(t, other).Count)
}

func TestHub_ContextCancelReleases(t *testing.T) {
	t.Parallel()

	hub := membership.New()
	defer hub.Close()

	ctx, cancel := context.WithCancel(context.Background())
	s, err := hub.Subscribe(ctx)
	require.NoError(t, err)
	assert.Equal(t, uint32(1), hub.Count())

	cancel()

	select {
	case <-s.Done():
	case <-time.After(time.Second):
		t.Fatal("stream was not released on context cancellation")
	}
	assert.Eventually(t, func() bool { return hub.Count() == 0 }, time.Second, 5*time.Millisecond)
}

func TestHub_UnreachableStreamKeepsSubscription(t *testing.T) {
	t.Parallel()

	hub := membership.New()
	defer hub.Close()

	// Only the channel survives; the Stream wrapper is garbage.
	updates := func() <-chan membership.Notification {
		s, err := hub.Subscribe(context.Background())
		require.NoError(t, err)
		return s.Updates()
	}()

	select {
	case n := <-updates:
		assert.Equal(t, uint32(1), n.Count)
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for count update")
	}

	for range 5 {
		runtime.GC()
	}

	assert.Never(t, func() bool {
		runtime.GC()
		return hub.Count() != 1
	}, 100*time.Millisecond, 10*time.Millisecond)
	assert.Equal(t, uint64(0), hub.Stats().Leaves)

	select {
	case _, ok := <-updates:
		t.Fatalf("unexpected delivery on a live subscription (open=%v)", ok)
	default:
	}
}

func TestHub_CountStableUnderGC(t *testing.T) {
	t.Parallel()

	hub := membership.New()
	defer hub.Close()

	const n = 3
	for i := range n {
		s := subscribe(t, hub)
		assert.Equal(t, uint32(i+1), recv(t, s).Count)
	}

	for range 5 {
		runtime.GC()
	}
	assert.Equal(t, uint32(n), hub.Count())
}

func TestHub_Close(t *testing.T) {
	t.Parallel()

	hub := membership.New()

	a := subscribe(t, hub)
	b := subscribe(t, hub)

	hub.Close()
	hub.Close()

	assert.True(t, hub.Closed())
	assert.Equal(t, uint32(0), hub.Count())

	for _, s := range []*membership.Stream{a, b} {
		for range s.Updates() {
		}
		select {
		case <-s.Done():
		default:
			t.Fatal("stream not marked done after close")
		}
	}

	stats := hub.Stats()
	assert.Equal(t, uint64(2), stats.Orphaned)
	assert.Equal(t, uint64(0), stats.Leaves)

	// Releasing after close is a no-op.
	a.Release()

	_, err := hub.Subscribe(context.Background())
	assert.ErrorIs(t, err, membership.ErrHubClosed)
}
