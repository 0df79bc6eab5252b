// Package server exposes the storefront over gRPC. The service has a
// single unary Handle method carrying google.protobuf.Struct in both
// directions; the request's "command" field selects the operation.
package server

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/structpb"
)

const (
	ServiceName  = "storefront.v1.Storefront"
	HandleMethod = "/" + ServiceName + "/Handle"
)

// Handler executes one storefront command.
type Handler interface {
	Handle(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error)
}

func handleHandler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(structpb.Struct)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(Handler).Handle(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: HandleMethod}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(Handler).Handle(ctx, req.(*structpb.Struct))
	}
	return interceptor(ctx, in, info, handler)
}

// ServiceDesc describes storefront.v1.Storefront.
var ServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*Handler)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "Handle", Handler: handleHandler},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "storefront/v1/storefront.proto",
}

// RegisterStorefrontServer registers h on s.
func RegisterStorefrontServer(s grpc.ServiceRegistrar, h Handler) {
	s.RegisterService(&ServiceDesc, h)
}
