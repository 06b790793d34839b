package main

import (
	"context"
	"database/sql"
	"errors"
	"net"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"

	"github.com/tair/article-likes/internal/config"
	"github.com/tair/article-likes/internal/like"
	grpcDelivery "github.com/tair/article-likes/internal/like/delivery/grpc"
	httpDelivery "github.com/tair/article-likes/internal/like/delivery/http"
	"github.com/tair/article-likes/internal/like/repository"
	"github.com/tair/article-likes/pkg/cache"
	"github.com/tair/article-likes/pkg/database"
	"github.com/tair/article-likes/pkg/logger"
	"github.com/tair/article-likes/pkg/tracing"
)

const (
	serviceVersion  = "1.0.0"
	shutdownTimeout = 15 * time.Second
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		// logger is not configured yet
		logger.Init("likes-service", true)
		logger.Logger.Fatal().Err(err).Msg("Failed to load configuration")
	}

	// Initialize logger
	logger.Init(cfg.ServiceName, cfg.IsDevelopment())
	logger.SetLevel(cfg.LogLevel)

	logger.Logger.Info().
		Str("service", cfg.ServiceName).
		Str("environment", cfg.Env).
		Str("log_level", cfg.LogLevel).
		Msg("Starting likes service")

	// Initialize tracing; the service still runs without a collector
	var tp trace.TracerProvider
	tp, err = tracing.InitTracer(cfg.ServiceName, serviceVersion, cfg.JaegerEndpoint)
	if err != nil {
		logger.Logger.Warn().Err(err).Msg("Tracing disabled")
		tp = otel.GetTracerProvider()
	}

	// Connect to database
	db, err := database.NewGormConnection(cfg.Database())
	if err != nil {
		logger.Logger.Fatal().Err(err).Msg("Failed to connect to database")
	}

	sqlDB, err := db.DB()
	if err != nil {
		logger.Logger.Fatal().Err(err).Msg("Failed to get database instance")
	}
	defer sqlDB.Close()

	// Run migrations
	if err := repository.NewGormLikeRepository(db).AutoMigrate(); err != nil {
		logger.Logger.Fatal().Err(err).Msg("Failed to run migrations")
	}
	logger.Logger.Info().Msg("Database initialized successfully")

	// Lookup cache is optional
	rdb, err := cache.NewRedisClient(cfg.RedisAddr, cfg.RedisPassword)
	if err != nil {
		logger.Logger.Warn().Err(err).Msg("Continuing without lookup cache")
	}
	defer cache.Close(rdb)

	// Initialize handler with Wire DI
	svc, err := like.InitializeService(db, rdb, cfg, tp, prometheus.DefaultRegisterer)
	if err != nil {
		logger.Logger.Fatal().Err(err).Msg("Failed to initialize service")
	}

	logger.Logger.Info().
		Str("article_service", cfg.ArticleServiceURL).
		Str("user_service", cfg.UserServiceURL).
		Msg("Likes handler initialized")

	httpServer := newHTTPServer(svc, sqlDB, cfg, tp)
	grpcServer, healthServer := grpcDelivery.NewServer(tp)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 2)

	go func() {
		logger.Logger.Info().
			Str("port", cfg.HTTPPort).
			Str("metrics_endpoint", "/metrics").
			Msg("HTTP server started")
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	go func() {
		if err := serveGRPC(grpcServer, healthServer, cfg.GRPCPort); err != nil {
			errCh <- err
		}
	}()

	go grpcDelivery.MonitorDatabase(ctx, healthServer, sqlDB, 10*time.Second)

	select {
	case <-ctx.Done():
		logger.Logger.Info().Msg("Shutting down server...")
	case err := <-errCh:
		logger.Logger.Error().Err(err).Msg("Server failed, shutting down")
	}

	grpcDelivery.SetServing(healthServer, false)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Logger.Error().Err(err).Msg("HTTP server shutdown failed")
	}
	grpcServer.GracefulStop()

	if err := tracing.Shutdown(shutdownCtx, tp); err != nil {
		logger.Logger.Error().Err(err).Msg("Tracer shutdown failed")
	}

	logger.Logger.Info().Msg("Server exited")
}

func newHTTPServer(svc *like.Service, db *sql.DB, cfg *config.Config, tp trace.TracerProvider) *http.Server {
	router := mux.NewRouter()

	mwConfig := httpDelivery.DefaultMiddlewareConfig(cfg.Origins())
	mwConfig.TracerProvider = tp
	httpDelivery.RegisterMiddlewares(router, mwConfig)

	svc.Handler.RegisterRoutes(router)
	svc.Handler.RegisterHealthCheck(router, db, svc.Breakers...)
	httpDelivery.RegisterSwaggerDocs(router)

	// Prometheus metrics endpoint
	router.Handle("/metrics", promhttp.Handler())

	return &http.Server{
		Addr:              ":" + cfg.HTTPPort,
		Handler:           httpDelivery.SetupCORS(mwConfig)(router),
		ReadHeaderTimeout: 10 * time.Second,
	}
}

func serveGRPC(server *grpc.Server, hs *health.Server, port string) error {
	lis, err := net.Listen("tcp", ":"+port)
	if err != nil {
		return err
	}

	grpcDelivery.SetServing(hs, true)

	logger.Logger.Info().
		Str("port", port).
		Msg("gRPC health server started")

	return server.Serve(lis)
}
