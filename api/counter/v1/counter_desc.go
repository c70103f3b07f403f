package counterv1

import (
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/reflect/protodesc"
	"google.golang.org/protobuf/reflect/protoreflect"
	"google.golang.org/protobuf/reflect/protoregistry"
	"google.golang.org/protobuf/types/descriptorpb"
	_ "google.golang.org/protobuf/types/known/emptypb"
	_ "google.golang.org/protobuf/types/known/wrapperspb"
)

// File_api_counter_v1_counter_proto describes counter.proto. It is
// registered in protoregistry.GlobalFiles so server reflection can serve it.
var File_api_counter_v1_counter_proto protoreflect.FileDescriptor

func init() {
	fd, err := protodesc.NewFile(counterFileProto(), protoregistry.GlobalFiles)
	if err != nil {
		panic("counterv1: build file descriptor: " + err.Error())
	}
	if err := protoregistry.GlobalFiles.RegisterFile(fd); err != nil {
		panic("counterv1: register file descriptor: " + err.Error())
	}
	File_api_counter_v1_counter_proto = fd
}

// counterFileProto mirrors counter.proto.
func counterFileProto() *descriptorpb.FileDescriptorProto {
	return &descriptorpb.FileDescriptorProto{
		Name:    proto.String(ServiceDesc.Metadata.(string)),
		Package: proto.String("headcount.v1"),
		Dependency: []string{
			"google/protobuf/empty.proto",
			"google/protobuf/wrappers.proto",
		},
		Service: []*descriptorpb.ServiceDescriptorProto{{
			Name: proto.String("SubscriptionCounter"),
			Method: []*descriptorpb.MethodDescriptorProto{
				{
					Name:            proto.String("Subscribe"),
					InputType:       proto.String(".google.protobuf.Empty"),
					OutputType:      proto.String(".google.protobuf.UInt32Value"),
					ServerStreaming: proto.Bool(true),
				},
				{
					Name:       proto.String("GetSubscriptionCount"),
					InputType:  proto.String(".google.protobuf.Empty"),
					OutputType: proto.String(".google.protobuf.UInt32Value"),
				},
			},
		}},
		Options: &descriptorpb.FileOptions{
			GoPackage: proto.String("github.com/dmitrymomot/headcount/api/counter/v1;counterv1"),
		},
		Syntax: proto.String("proto3"),
	}
}
