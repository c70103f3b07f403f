// Package app wires the membership hub, its transports and the servers that
// expose them into one runnable process.
package app

import (
	"context"
	"errors"
	"log/slog"

	"golang.org/x/sync/errgroup"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/reflection"

	counterv1 "github.com/dmitrymomot/headcount/api/counter/v1"
	"github.com/dmitrymomot/headcount/core/config"
	"github.com/dmitrymomot/headcount/core/counter"
	"github.com/dmitrymomot/headcount/core/handler"
	corehealth "github.com/dmitrymomot/headcount/core/health"
	"github.com/dmitrymomot/headcount/core/logger"
	"github.com/dmitrymomot/headcount/core/membership"
	"github.com/dmitrymomot/headcount/core/response"
	"github.com/dmitrymomot/headcount/core/router"
	"github.com/dmitrymomot/headcount/core/server"
	"github.com/dmitrymomot/headcount/middleware"
)

// App owns the hub and both servers.
type App struct {
	config Config
	logger *slog.Logger
	hub    *membership.Hub
	router router.Router[*router.Context]
	http   *server.Server
	grpc   *server.GRPCServer
	health *health.Server
}

// AppOption customizes an App before its defaults are filled in.
type AppOption func(*App) error

// NewApp loads Config from the environment, builds an App and installs its
// logger as the slog default.
func NewApp(opts ...AppOption) (*App, error) {
	var cfg Config
	if err := config.Load(&cfg); err != nil {
		return nil, err
	}
	a, err := New(cfg, opts...)
	if err != nil {
		return nil, err
	}
	logger.SetAsDefault(a.logger)
	return a, nil
}

// New builds an App from cfg.
func New(cfg Config, opts ...AppOption) (*App, error) {
	a := &App{config: cfg}

	for _, opt := range opts {
		if err := opt(a); err != nil {
			return nil, err
		}
	}

	if a.logger == nil {
		a.logger = newLogger(cfg)
	}

	a.hub = membership.New(
		membership.WithBufferSize(cfg.SubscriberBuffer),
		membership.WithLogger(a.logger.With(logger.Component("membership"))),
	)

	a.router = a.newRouter()

	httpSrv, err := server.NewFromConfig(cfg.Server, server.WithLogger(a.logger.With(logger.Component("http"))))
	if err != nil {
		return nil, err
	}
	// Streaming responses end once the hub closes their update channels.
	httpSrv.OnShutdown(a.hub.Close)
	a.http = httpSrv

	a.health = health.NewServer()
	a.grpc = server.NewGRPC(cfg.Server.GRPCAddr, a.newGRPCServer(),
		server.WithGRPCLogger(a.logger.With(logger.Component("grpc"))),
		server.WithGRPCShutdownTimeout(cfg.Server.ShutdownTimeout),
		server.WithGRPCHealth(a.health),
	)

	return a, nil
}

// WithLogger overrides the logger built from Config.
func WithLogger(l *slog.Logger) AppOption {
	return func(a *App) error {
		if l == nil {
			return errors.New("logger cannot be nil")
		}
		a.logger = l
		return nil
	}
}

// Hub returns the membership hub.
func (a *App) Hub() *membership.Hub { return a.hub }

// Handler returns the HTTP handler.
func (a *App) Handler() router.Router[*router.Context] { return a.router }

// Run serves HTTP and gRPC until ctx is canceled or a server fails, then
// closes the hub so open streams end before the servers drain.
func (a *App) Run(ctx context.Context) error {
	g, ctx := errgroup.WithContext(ctx)

	g.Go(a.http.Run(ctx, a.router))
	g.Go(a.grpc.Run(ctx))
	g.Go(func() error {
		<-ctx.Done()
		a.health.Shutdown()
		a.hub.Close()
		return nil
	})

	a.logger.InfoContext(ctx, "headcount started",
		logger.Addr(a.config.Server.Addr),
		logger.Key("grpc_addr", a.config.Server.GRPCAddr),
		logger.Key("subscriber_buffer", a.config.SubscriberBuffer),
	)

	err := g.Wait()
	stats := a.hub.Stats()
	a.logger.Info("headcount stopped", logger.Group("stats",
		logger.Key("joins", stats.Joins),
		logger.Key("dropped", stats.Dropped),
		logger.Key("orphaned", stats.Orphaned),
	))
	return err
}

func (a *App) newRouter() router.Router[*router.Context] {
	streaming := map[string]bool{"/subscribe": true, "/ws": true}

	r := router.New[*router.Context](
		router.WithErrorHandler[*router.Context](response.JSONErrorHandler[*router.Context]),
		router.WithLogger[*router.Context](a.logger.With(logger.Component("router"))),
		router.WithMiddleware[*router.Context](
			middleware.RequestID[*router.Context](),
			middleware.LoggingWithConfig[*router.Context](middleware.LoggingConfig{
				Logger: a.logger,
				Skip: func(ctx handler.Context) bool {
					return streaming[ctx.Request().URL.Path]
				},
			}),
		),
	)

	counter.Register(r, counter.NewHTTP[*router.Context](a.hub, a.logger))
	r.Get("/health/live", corehealth.Liveness[*router.Context])
	r.Get("/health/ready", corehealth.Readiness[*router.Context](a.logger, counter.Ready(a.hub)))

	return r
}

func (a *App) newGRPCServer() *grpc.Server {
	log := a.logger.With(logger.Component("grpc"))
	srv := grpc.NewServer(
		grpc.ChainUnaryInterceptor(
			server.UnaryRecoveryInterceptor(log),
			server.UnaryLoggingInterceptor(log),
		),
		grpc.ChainStreamInterceptor(
			server.StreamRecoveryInterceptor(log),
			server.StreamLoggingInterceptor(log),
		),
	)

	counterv1.RegisterSubscriptionCounterServer(srv, counter.NewService(a.hub, a.logger))
	healthpb.RegisterHealthServer(srv, a.health)
	a.health.SetServingStatus(counterv1.ServiceName, healthpb.HealthCheckResponse_SERVING)
	reflection.Register(srv)

	return srv
}

func newLogger(cfg Config) *slog.Logger {
	opts := []logger.Option{}
	switch cfg.Env {
	case "production":
		opts = append(opts, logger.WithProduction(cfg.AppName))
	case "staging":
		opts = append(opts, logger.WithStaging(cfg.AppName))
	default:
		opts = append(opts, logger.WithDevelopment(cfg.AppName))
	}
	if cfg.LogLevel != "" {
		opts = append(opts, logger.WithLevel(logger.ParseLevel(cfg.LogLevel)))
	}
	return logger.New(opts...)
}
