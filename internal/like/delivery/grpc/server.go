package grpc

import (
	"context"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/google.golang.org/grpc/otelgrpc"
	"go.opentelemetry.io/otel/trace"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/reflection"

	"github.com/tair/article-likes/pkg/logger"
)

// ServiceName is the name the likes service reports health under
const ServiceName = "likes.v1.LikeService"

// Pinger is satisfied by *sql.DB
type Pinger interface {
	PingContext(ctx context.Context) error
}

// NewServer builds the gRPC server with the health and reflection services
// registered. Both the overall status and ServiceName start NOT_SERVING.
func NewServer(tp trace.TracerProvider) (*grpc.Server, *health.Server) {
	var statsOpts []otelgrpc.Option
	if tp != nil {
		statsOpts = append(statsOpts, otelgrpc.WithTracerProvider(tp))
	}

	server := grpc.NewServer(
		grpc.StatsHandler(otelgrpc.NewServerHandler(statsOpts...)),
		grpc.ChainUnaryInterceptor(
			RecoveryInterceptor,
			LoggingInterceptor,
		),
	)

	hs := health.NewServer()
	hs.SetServingStatus("", healthpb.HealthCheckResponse_NOT_SERVING)
	hs.SetServingStatus(ServiceName, healthpb.HealthCheckResponse_NOT_SERVING)
	healthpb.RegisterHealthServer(server, hs)

	reflection.Register(server)

	return server, hs
}

// SetServing flips both health entries at once
func SetServing(hs *health.Server, serving bool) {
	status := healthpb.HealthCheckResponse_NOT_SERVING
	if serving {
		status = healthpb.HealthCheckResponse_SERVING
	}
	hs.SetServingStatus("", status)
	hs.SetServingStatus(ServiceName, status)
}

// MonitorDatabase pings db every interval and mirrors the result into hs
// until ctx is cancelled.
func MonitorDatabase(ctx context.Context, hs *health.Server, db Pinger, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	serving := true
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			pingCtx, cancel := context.WithTimeout(ctx, interval)
			err := db.PingContext(pingCtx)
			cancel()

			if (err == nil) != serving {
				serving = err == nil
				SetServing(hs, serving)
				if err != nil {
					logger.Logger.Warn().Err(err).Msg("Database unreachable, reporting NOT_SERVING")
				} else {
					logger.Logger.Info().Msg("Database reachable again, reporting SERVING")
				}
			}
		}
	}
}
