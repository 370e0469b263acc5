// Package grpc runs the gRPC health service clients use as a connectivity
// probe.
package grpc

import (
	"context"
	"net"
	"time"

	"github.com/AHx92/my-workout-tracker/internal/logging"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
)

// ServiceName is reported alongside the overall ("") status.
const ServiceName = "workouts.Backend"

type HealthServer struct {
	address string
	logger  logging.Logger
	health  *health.Server
}

func NewHealthServer(address string, l logging.Logger) *HealthServer {
	return &HealthServer{
		address: address,
		logger:  l.With("module", "grpc_health"),
		health:  health.NewServer(),
	}
}

// Run listens on the configured address until ctx is cancelled.
func (s *HealthServer) Run(ctx context.Context) error {
	listen, err := net.Listen("tcp", s.address)
	if err != nil {
		return err
	}
	return s.Serve(ctx, listen)
}

// Serve serves on lis until ctx is cancelled. The status flips to
// NOT_SERVING before the server drains.
func (s *HealthServer) Serve(ctx context.Context, lis net.Listener) error {
	srv := grpc.NewServer(grpc.ChainUnaryInterceptor(s.logInterceptor))
	healthpb.RegisterHealthServer(srv, s.health)
	s.SetServing(true)

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping gRPC health server...")
		s.health.Shutdown()
		srv.GracefulStop()
	}()

	s.logger.Info(ctx, "Starting gRPC health server", "address", lis.Addr().String())

	if err := srv.Serve(lis); err != nil {
		return err
	}
	return nil
}

func (s *HealthServer) SetServing(serving bool) {
	st := healthpb.HealthCheckResponse_NOT_SERVING
	if serving {
		st = healthpb.HealthCheckResponse_SERVING
	}
	s.health.SetServingStatus("", st)
	s.health.SetServingStatus(ServiceName, st)
}

// Watch runs check every interval and reports its outcome as the serving
// status. It returns when ctx is cancelled.
func (s *HealthServer) Watch(ctx context.Context, check func(context.Context) error, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	serving := true
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			cctx, cancel := context.WithTimeout(ctx, interval)
			err := check(cctx)
			cancel()

			if ok := err == nil; ok != serving {
				serving = ok
				s.SetServing(ok)
				if ok {
					s.logger.Info(ctx, "backend healthy again")
				} else {
					s.logger.Warn(ctx, "backend unhealthy", "error", err)
				}
			}
		}
	}
}

func (s *HealthServer) logInterceptor(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
	resp, err := handler(ctx, req)
	if err != nil {
		s.logger.Debug(ctx, "rpc failed", "method", info.FullMethod, "error", err)
	} else {
		s.logger.Debug(ctx, "rpc", "method", info.FullMethod)
	}
	return resp, err
}
