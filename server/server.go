package server

import (
	"context"
	"time"

	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/health"
	"google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"

	"storefront/metrics"
	"storefront/shop"
)

// Server dispatches Handle requests to a shop.
type Server struct {
	shop    *shop.Shop
	logger  *zap.Logger
	metrics *metrics.ShopMetrics
}

func New(s *shop.Shop, logger *zap.Logger, m *metrics.ShopMetrics) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Server{shop: s, logger: logger, metrics: m}
}

func (s *Server) Handle(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	start := time.Now()
	a := args(req.GetFields())
	command := a.str("command")
	if command == "" {
		return nil, status.Error(codes.InvalidArgument, "command is required")
	}

	resp, err := s.dispatchCommand(ctx, command, a)
	s.metrics.Request(command, status.Code(err).String(), time.Since(start))
	if err != nil {
		s.logger.Debug("command failed", zap.String("command", command), zap.Error(err))
		return nil, err
	}
	return resp, nil
}

// NewGRPCServer builds a gRPC server with the storefront and health
// services registered. The health status is SERVING.
func NewGRPCServer(h Handler, opts ...grpc.ServerOption) (*grpc.Server, *health.Server) {
	s := grpc.NewServer(opts...)
	RegisterStorefrontServer(s, h)

	healthServer := health.NewServer()
	grpc_health_v1.RegisterHealthServer(s, healthServer)
	healthServer.SetServingStatus("", grpc_health_v1.HealthCheckResponse_SERVING)
	healthServer.SetServingStatus(ServiceName, grpc_health_v1.HealthCheckResponse_SERVING)
	return s, healthServer
}
