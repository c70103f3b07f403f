package server

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net"
	"sync"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
)

// GRPCServer runs a *grpc.Server with the same lifecycle as Server.
// Safe for concurrent use.
type GRPCServer struct {
	mu       sync.Mutex
	addr     string
	server   *grpc.Server
	logger   *slog.Logger
	shutdown time.Duration
	health   *health.Server
	running  bool
}

// NewGRPC wraps srv, which should already have its services registered.
func NewGRPC(addr string, srv *grpc.Server, opts ...GRPCOption) *GRPCServer {
	s := &GRPCServer{
		addr:     addr,
		server:   srv,
		logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
		shutdown: DefaultShutdownTimeout,
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Start listens on the configured address and serves until the context is
// canceled or serving fails.
func (s *GRPCServer) Start(ctx context.Context) error {
	if s.addr == "" {
		return ErrMissingAddress
	}
	lis, err := net.Listen("tcp", s.addr)
	if err != nil {
		return err
	}
	return s.Serve(ctx, lis)
}

// Serve is like Start but accepts connections on lis.
func (s *GRPCServer) Serve(ctx context.Context, lis net.Listener) error {
	if err := ctx.Err(); err != nil {
		_ = lis.Close()
		return err
	}

	s.mu.Lock()
	if s.running {
		s.mu.Unlock()
		_ = lis.Close()
		return ErrServerAlreadyRunning
	}
	s.running = true
	s.mu.Unlock()

	errCh := make(chan error, 1)
	go func() {
		s.logger.InfoContext(ctx, "starting grpc server", "addr", lis.Addr().String())

		if err := s.server.Serve(lis); err != nil && !errors.Is(err, grpc.ErrServerStopped) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		s.mu.Lock()
		s.running = false
		s.mu.Unlock()
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Stop drains in-flight RPCs, falling back to a hard stop once the
// shutdown timeout elapses. Returns immediately if the server is not running.
func (s *GRPCServer) Stop() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.running {
		return nil
	}

	s.logger.Info("shutting down grpc server gracefully", "timeout", s.shutdown)

	// Health clients see NOT_SERVING while streams drain.
	if s.health != nil {
		s.health.Shutdown()
	}

	done := make(chan struct{})
	go func() {
		s.server.GracefulStop()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(s.shutdown):
		s.logger.Warn("grpc graceful shutdown timed out, forcing stop")
		s.server.Stop()
		<-done
	}

	s.running = false
	s.logger.Info("grpc server shutdown complete")
	return nil
}

// Run provides errgroup compatibility, mirroring Server.Run.
func (s *GRPCServer) Run(ctx context.Context) func() error {
	return func() error {
		errCh := make(chan error, 1)
		go func() {
			errCh <- s.Start(ctx)
		}()

		select {
		case <-ctx.Done():
			<-errCh
			if err := s.Stop(); err != nil {
				s.logger.Error("failed to stop grpc server during context cancellation", "error", err)
			}
			return nil
		case err := <-errCh:
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				return nil
			}
			return err
		}
	}
}
