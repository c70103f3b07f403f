package counter

import (
	"context"
	"errors"
	"log/slog"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/wrapperspb"

	counterv1 "github.com/dmitrymomot/headcount/api/counter/v1"
	"github.com/dmitrymomot/headcount/core/logger"
	"github.com/dmitrymomot/headcount/core/membership"
)

// Hub is the part of membership.Hub the transports depend on.
type Hub interface {
	Subscribe(ctx context.Context) (*membership.Stream, error)
	Count() uint32
	Stats() membership.Stats
	Closed() bool
}

// Service implements counterv1.SubscriptionCounterServer on top of a Hub.
type Service struct {
	counterv1.UnimplementedSubscriptionCounterServer

	hub    Hub
	logger *slog.Logger
}

// NewService creates the gRPC counter service. A nil logger discards output.
func NewService(hub Hub, log *slog.Logger) *Service {
	if log == nil {
		log = logger.Nop()
	}
	return &Service{
		hub:    hub,
		logger: log.With(logger.Component("counter.grpc")),
	}
}

// Subscribe streams the subscriber count until the client cancels, a send
// fails or the hub shuts down.
func (s *Service) Subscribe(_ *emptypb.Empty, stream grpc.ServerStreamingServer[wrapperspb.UInt32Value]) error {
	ctx := stream.Context()

	sub, err := s.hub.Subscribe(ctx)
	if err != nil {
		return toStatus(err)
	}
	defer sub.Release()

	log := s.logger.With(logger.ID("subscription_id", uint64(sub.ID())))
	log.DebugContext(ctx, "stream opened", logger.Transport("grpc"))

	for {
		select {
		case <-ctx.Done():
			log.DebugContext(ctx, "stream closed by client")
			return nil
		case n, ok := <-sub.Updates():
			if !ok {
				return status.Error(codes.Unavailable, "server is shutting down")
			}
			if err := stream.Send(wrapperspb.UInt32(n.Count)); err != nil {
				log.DebugContext(ctx, "stream send failed", logger.Error(err))
				return err
			}
		}
	}
}

// GetSubscriptionCount returns the current subscriber count.
func (s *Service) GetSubscriptionCount(context.Context, *emptypb.Empty) (*wrapperspb.UInt32Value, error) {
	return wrapperspb.UInt32(s.hub.Count()), nil
}

func toStatus(err error) error {
	if errors.Is(err, membership.ErrHubClosed) {
		return status.Error(codes.Unavailable, err.Error())
	}
	return status.Error(codes.Internal, err.Error())
}

var _ counterv1.SubscriptionCounterServer = (*Service)(nil)
