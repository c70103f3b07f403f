package server

import (
	"log/slog"
	"time"

	"google.golang.org/grpc/health"
)

// Option configures server behavior.
type Option func(*Server)

// WithLogger sets a custom logger for server operations.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		s.mu.Lock()
		defer s.mu.Unlock()
		s.logger = logger
	}
}

// WithShutdownTimeout sets the maximum time to wait for graceful shutdown.
func WithShutdownTimeout(timeout time.Duration) Option {
	return func(s *Server) {
		s.mu.Lock()
		defer s.mu.Unlock()
		s.shutdown = timeout
	}
}

// WithReadTimeout sets the maximum duration for reading the entire request.
func WithReadTimeout(timeout time.Duration) Option {
	return func(s *Server) {
		s.mu.Lock()
		defer s.mu.Unlock()
		s.readTimeout = timeout
	}
}

// WithWriteTimeout sets the maximum duration before timing out writes of the response.
func WithWriteTimeout(timeout time.Duration) Option {
	return func(s *Server) {
		s.mu.Lock()
		defer s.mu.Unlock()
		s.writeTimeout = timeout
	}
}

// WithIdleTimeout sets the keep-alive idle timeout.
func WithIdleTimeout(timeout time.Duration) Option {
	return func(s *Server) {
		s.mu.Lock()
		defer s.mu.Unlock()
		s.idleTimeout = timeout
	}
}

// WithMaxHeaderBytes sets the maximum size of request headers.
func WithMaxHeaderBytes(n int) Option {
	return func(s *Server) {
		s.mu.Lock()
		defer s.mu.Unlock()
		s.maxHeaderBytes = n
	}
}

// GRPCOption configures a GRPCServer.
type GRPCOption func(*GRPCServer)

// WithGRPCLogger sets a custom logger for gRPC server operations.
func WithGRPCLogger(logger *slog.Logger) GRPCOption {
	return func(s *GRPCServer) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithGRPCShutdownTimeout bounds how long Stop waits for in-flight RPCs
// before closing connections forcibly.
func WithGRPCShutdownTimeout(timeout time.Duration) GRPCOption {
	return func(s *GRPCServer) {
		if timeout > 0 {
			s.shutdown = timeout
		}
	}
}

// WithGRPCHealth sets the health server that is switched to NOT_SERVING
// when Stop begins.
func WithGRPCHealth(h *health.Server) GRPCOption {
	return func(s *GRPCServer) {
		s.health = h
	}
}
