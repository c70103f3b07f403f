// Package counterv1 holds the gRPC contract of the subscription counter
// described in counter.proto.
//
// Requests and responses are protobuf well-known types, so the package only
// carries the service descriptor, client and server bindings.
package counterv1

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

// ServiceName is the fully-qualified gRPC service name.
const ServiceName = "headcount.v1.SubscriptionCounter"

const (
	SubscribeFullMethodName            = "/" + ServiceName + "/Subscribe"
	GetSubscriptionCountFullMethodName = "/" + ServiceName + "/GetSubscriptionCount"
)

// SubscriptionCounterClient is the client API for the SubscriptionCounter service.
type SubscriptionCounterClient interface {
	Subscribe(ctx context.Context, in *emptypb.Empty, opts ...grpc.CallOption) (grpc.ServerStreamingClient[wrapperspb.UInt32Value], error)
	GetSubscriptionCount(ctx context.Context, in *emptypb.Empty, opts ...grpc.CallOption) (*wrapperspb.UInt32Value, error)
}

type subscriptionCounterClient struct {
	cc grpc.ClientConnInterface
}

// NewSubscriptionCounterClient creates a client bound to cc.
func NewSubscriptionCounterClient(cc grpc.ClientConnInterface) SubscriptionCounterClient {
	return &subscriptionCounterClient{cc}
}

func (c *subscriptionCounterClient) Subscribe(ctx context.Context, in *emptypb.Empty, opts ...grpc.CallOption) (grpc.ServerStreamingClient[wrapperspb.UInt32Value], error) {
	cOpts := append([]grpc.CallOption{grpc.StaticMethod()}, opts...)
	stream, err := c.cc.NewStream(ctx, &ServiceDesc.Streams[0], SubscribeFullMethodName, cOpts...)
	if err != nil {
		return nil, err
	}
	x := &grpc.GenericClientStream[emptypb.Empty, wrapperspb.UInt32Value]{ClientStream: stream}
	if err := x.ClientStream.SendMsg(in); err != nil {
		return nil, err
	}
	if err := x.ClientStream.CloseSend(); err != nil {
		return nil, err
	}
	return x, nil
}

func (c *subscriptionCounterClient) GetSubscriptionCount(ctx context.Context, in *emptypb.Empty, opts ...grpc.CallOption) (*wrapperspb.UInt32Value, error) {
	cOpts := append([]grpc.CallOption{grpc.StaticMethod()}, opts...)
	out := new(wrapperspb.UInt32Value)
	if err := c.cc.Invoke(ctx, GetSubscriptionCountFullMethodName, in, out, cOpts...); err != nil {
		return nil, err
	}
	return out, nil
}

// SubscriptionCounterServer is the server API for the SubscriptionCounter service.
// Implementations must embed UnimplementedSubscriptionCounterServer.
type SubscriptionCounterServer interface {
	Subscribe(*emptypb.Empty, grpc.ServerStreamingServer[wrapperspb.UInt32Value]) error
	GetSubscriptionCount(context.Context, *emptypb.Empty) (*wrapperspb.UInt32Value, error)
	mustEmbedUnimplementedSubscriptionCounterServer()
}

// UnimplementedSubscriptionCounterServer returns Unimplemented for every method.
// Embed it by value.
type UnimplementedSubscriptionCounterServer struct{}

func (UnimplementedSubscriptionCounterServer) Subscribe(*emptypb.Empty, grpc.ServerStreamingServer[wrapperspb.UInt32Value]) error {
	return status.Error(codes.Unimplemented, "method Subscribe not implemented")
}

func (UnimplementedSubscriptionCounterServer) GetSubscriptionCount(context.Context, *emptypb.Empty) (*wrapperspb.UInt32Value, error) {
	return nil, status.Error(codes.Unimplemented, "method GetSubscriptionCount not implemented")
}

func (UnimplementedSubscriptionCounterServer) mustEmbedUnimplementedSubscriptionCounterServer() {}

// RegisterSubscriptionCounterServer registers srv with s.
func RegisterSubscriptionCounterServer(s grpc.ServiceRegistrar, srv SubscriptionCounterServer) {
	s.RegisterService(&ServiceDesc, srv)
}

func subscribeHandler(srv any, stream grpc.ServerStream) error {
	m := new(emptypb.Empty)
	if err := stream.RecvMsg(m); err != nil {
		return err
	}
	return srv.(SubscriptionCounterServer).Subscribe(m, &grpc.GenericServerStream[emptypb.Empty, wrapperspb.UInt32Value]{ServerStream: stream})
}

func getSubscriptionCountHandler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(emptypb.Empty)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(SubscriptionCounterServer).GetSubscriptionCount(ctx, in)
	}
	info := &grpc.UnaryServerInfo{
		Server:     srv,
		FullMethod: GetSubscriptionCountFullMethodName,
	}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(SubscriptionCounterServer).GetSubscriptionCount(ctx, req.(*emptypb.Empty))
	}
	return interceptor(ctx, in, info, handler)
}

// ServiceDesc is the grpc.ServiceDesc for the SubscriptionCounter service.
var ServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*SubscriptionCounterServer)(nil),
	Methods: []grpc.MethodDesc{
		{
			MethodName: "GetSubscriptionCount",
			Handler:    getSubscriptionCountHandler,
		},
	},
	Streams: []grpc.StreamDesc{
		{
			StreamName:    "Subscribe",
			Handler:       subscribeHandler,
			ServerStreams: true,
		},
	},
	Metadata: "api/counter/v1/counter.proto",
}
