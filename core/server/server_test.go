package server_test

import (
	"context"
	"io"
	"net"
	"net/http"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"

	"github.com/dmitrymomot/headcount/core/server"
)

func testHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = io.WriteString(w, "OK")
	})
}

func listen(t *testing.T) net.Listener {
	t.Helper()
	lis, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	return lis
}

func TestNewFromConfig(t *testing.T) {
	t.Parallel()

	t.Run("creates server from config with defaults", func(t *testing.T) {
		srv, err := server.NewFromConfig(server.DefaultConfig())
		require.NoError(t, err)
		assert.NotNil(t, srv)
	})

	t.Run("allows overriding config values with options", func(t *testing.T) {
		srv, err := server.NewFromConfig(
			server.Config{Addr: ":8080", ShutdownTimeout: 30 * time.Second},
			server.WithShutdownTimeout(10*time.Second),
		)
		require.NoError(t, err)
		assert.NotNil(t, srv)
	})

	t.Run("fails without address", func(t *testing.T) {
		srv, err := server.NewFromConfig(server.Config{ReadTimeout: 10 * time.Second})
		assert.ErrorIs(t, err, server.ErrMissingAddress)
		assert.Nil(t, srv)
	})
}

func TestServer_ServeAndStop(t *testing.T) {
	t.Parallel()

	lis := listen(t)
	addr := lis.Addr().String()

	var hookCalled atomic.Bool
	srv := server.New(addr, server.WithShutdownTimeout(time.Second))
	srv.OnShutdown(func() { hookCalled.Store(true) })

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	errCh := make(chan error, 1)
	go func() { errCh <- srv.Serve(ctx, lis, testHandler()) }()

	require.Eventually(t, func() bool {
		resp, err := http.Get("http://" + addr)
		if err != nil {
			return false
		}
		defer resp.Body.Close()
		return resp.StatusCode == http.StatusOK
	}, time.Second, 10*time.Millisecond)

	assert.ErrorIs(t, srv.Serve(ctx, listen(t), testHandler()), server.ErrServerAlreadyRunning)

	require.NoError(t, srv.Stop())
	assert.Eventually(t, hookCalled.Load, time.Second, 5*time.Millisecond)

	cancel()
	assert.ErrorIs(t, <-errCh, context.Canceled)
}

func TestServer_RunStopsOnCancel(t *testing.T) {
	t.Parallel()

	lis := listen(t)
	addr := lis.Addr().String()
	require.NoError(t, lis.Close())

	srv := server.New(addr, server.WithShutdownTimeout(time.Second))
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 1)
	go func() { done <- srv.Run(ctx, testHandler())() }()

	require.Eventually(t, func() bool {
		conn, err := net.Dial("tcp", addr)
		if err != nil {
			return false
		}
		_ = conn.Close()
		return true
	}, time.Second, 10*time.Millisecond)

	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not return after cancellation")
	}
}

func TestGRPCServer_Lifecycle(t *testing.T) {
	t.Parallel()

	lis := listen(t)
	srv := server.NewGRPC(lis.Addr().String(), grpc.NewServer(), server.WithGRPCShutdownTimeout(time.Second))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	errCh := make(chan error, 1)
	go func() { errCh <- srv.Serve(ctx, lis) }()

	require.Eventually(t, func() bool {
		conn, err := net.Dial("tcp", lis.Addr().String())
		if err != nil {
			return false
		}
		_ = conn.Close()
		return true
	}, time.Second, 10*time.Millisecond)

	require.NoError(t, srv.Stop())
	require.NoError(t, srv.Stop())

	cancel()
	assert.ErrorIs(t, <-errCh, context.Canceled)
}

func TestGRPCServer_MissingAddress(t *testing.T) {
	t.Parallel()

	srv := server.NewGRPC("", grpc.NewServer())
	assert.ErrorIs(t, srv.Start(context.Background()), server.ErrMissingAddress)
}

func TestGRPCServer_StopMarksHealthNotServing(t *testing.T) {
	t.Parallel()

	hs := health.NewServer()
	lis := listen(t)
	srv := server.NewGRPC(lis.Addr().String(), grpc.NewServer(), server.WithGRPCHealth(hs))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	errCh := make(chan error, 1)
	go func() { errCh <- srv.Serve(ctx, lis) }()

	check := func() healthpb.HealthCheckResponse_ServingStatus {
		resp, err := hs.Check(context.Background(), &healthpb.HealthCheckRequest{})
		require.NoError(t, err)
		return resp.GetStatus()
	}
	require.Equal(t, healthpb.HealthCheckResponse_SERVING, check())

	require.Eventually(t, func() bool {
		conn, err := net.Dial("tcp", lis.Addr().String())
		if err != nil {
			return false
		}
		_ = conn.Close()
		return true
	}, time.Second, 10*time.Millisecond)

	require.NoError(t, srv.Stop())
	assert.Equal(t, healthpb.HealthCheckResponse_NOT_SERVING, check())

	cancel()
	<-errCh
}
