// Package server runs the HTTP and gRPC listeners with graceful shutdown
// and production-ready defaults.
//
// Both Server and GRPCServer expose Start, Stop and Run; Run returns a
// function suitable for errgroup so both listeners share one lifecycle:
//
//	g, ctx := errgroup.WithContext(ctx)
//	g.Go(httpSrv.Run(ctx, router))
//	g.Go(grpcSrv.Run(ctx))
//	if err := g.Wait(); err != nil {
//		log.Error("server failed", logger.Error(err))
//	}
//
// Configuration is read from the environment through Config:
//
//	SERVER_ADDR             HTTP listen address (default ":8080")
//	GRPC_ADDR               gRPC listen address (default ":50051")
//	SERVER_READ_TIMEOUT     request read timeout (default 15s)
//	SERVER_WRITE_TIMEOUT    response write timeout (default 15s)
//	SERVER_IDLE_TIMEOUT     keep-alive idle timeout (default 60s)
//	SERVER_SHUTDOWN_TIMEOUT graceful shutdown timeout (default 30s)
//	SERVER_MAX_HEADER_BYTES maximum request header size (default 1MB)
//
// UnaryLoggingInterceptor, StreamLoggingInterceptor and the matching
// recovery interceptors give gRPC calls the same logging and panic handling
// the HTTP middleware provides.
//
// Streaming HTTP responses outlive the write timeout only if they clear
// their connection deadline; OnShutdown hooks let them end promptly when
// Stop is called.
package server
