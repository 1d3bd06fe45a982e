package main

import (
	"context"
	"log/slog"
	"net"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	"google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/reflection"

	grpc_logging "github.com/grpc-ecosystem/go-grpc-middleware/v2/interceptors/logging"
	grpc_recovery "github.com/grpc-ecosystem/go-grpc-middleware/v2/interceptors/recovery"

	"github.com/KirkDiggler/chargen/internal/config"
	"github.com/KirkDiggler/chargen/internal/dice"
	"github.com/KirkDiggler/chargen/internal/errors"
	chargenv1 "github.com/KirkDiggler/chargen/internal/handlers/chargen/v1"
	"github.com/KirkDiggler/chargen/internal/handlers/web"
	"github.com/KirkDiggler/chargen/internal/orchestrators/character"
	"github.com/KirkDiggler/chargen/internal/pkg/idgen"
	"github.com/KirkDiggler/chargen/internal/telemetry"
)

const shutdownTimeout = 30 * time.Second

var (
	httpAddr string
	grpcAddr string
	store    string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP wizard and the gRPC API",
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().StringVar(&httpAddr, "http-addr", "", "HTTP listen address (overrides CHARGEN_HTTP_ADDR)")
	serveCmd.Flags().StringVar(&grpcAddr, "grpc-addr", "", "gRPC listen address (overrides CHARGEN_GRPC_ADDR)")
	serveCmd.Flags().StringVar(&store, "store", "", "character store, redis or sqlite (overrides CHARGEN_STORE)")
}

func loadServeConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := config.Load(envFile)
	if err != nil {
		return nil, err
	}

	if cmd.Flags().Changed("http-addr") {
		cfg.HTTPAddr = httpAddr
	}
	if cmd.Flags().Changed("grpc-addr") {
		cfg.GRPCAddr = grpcAddr
	}
	if cmd.Flags().Changed("store") {
		cfg.Store = store
	}

	return cfg, cfg.Validate()
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, err := loadServeConfig(cmd)
	if err != nil {
		return err
	}
	setupLogging(cfg)

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	shutdownTracing, err := telemetry.Setup(ctx, telemetry.Config{
		Enabled:        cfg.TelemetryEnabled,
		ServiceVersion: version,
	})
	if err != nil {
		return err
	}
	defer func() {
		flushCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdownTracing(flushCtx); err != nil {
			slog.Warn("failed to flush traces", "error", err.Error())
		}
	}()

	repo, closeRepo, err := openRepository(ctx, cfg)
	if err != nil {
		return err
	}
	defer func() {
		if err := closeRepo(); err != nil {
			slog.Warn("failed to close character store", "error", err.Error())
		}
	}()

	gear, err := loadEquipment(ctx, cfg)
	if err != nil {
		return err
	}

	svc, err := character.New(&character.Config{
		CharacterRepo: repo,
		DiceRoller:    dice.New(nil),
		Equipment:     gear,
		IDGenerator:   idgen.NewUUID(),
		Tracer:        telemetry.Tracer("orchestrators/character"),
	})
	if err != nil {
		return err
	}

	webHandler, err := web.NewHandler(&web.Config{CharacterService: svc})
	if err != nil {
		return err
	}
	grpcHandler, err := chargenv1.NewHandler(&chargenv1.HandlerConfig{CharacterService: svc})
	if err != nil {
		return err
	}

	httpSrv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           webHandler.Routes(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	grpcSrv := newGRPCServer(slog.Default(), grpcHandler)

	lis, err := net.Listen("tcp", cfg.GRPCAddr)
	if err != nil {
		return errors.Wrapf(err, "failed to listen on %s", cfg.GRPCAddr)
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		slog.InfoContext(gctx, "http server starting", "addr", cfg.HTTPAddr, "prefix", web.DefaultPrefix)
		if err := httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return errors.Wrap(err, "http server failed")
		}
		return nil
	})

	g.Go(func() error {
		slog.InfoContext(gctx, "grpc server starting", "addr", cfg.GRPCAddr)
		if err := grpcSrv.Serve(lis); err != nil {
			return errors.Wrap(err, "grpc server failed")
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		slog.Info("shutting down")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		stopped := make(chan struct{})
		go func() {
			grpcSrv.GracefulStop()
			close(stopped)
		}()

		httpErr := httpSrv.Shutdown(shutdownCtx)

		select {
		case <-shutdownCtx.Done():
			slog.Warn("graceful shutdown timeout exceeded, forcing stop")
			grpcSrv.Stop()
		case <-stopped:
		}

		return httpErr
	})

	return g.Wait()
}

func newGRPCServer(logger *slog.Logger, handler chargenv1.CharacterServiceServer) *grpc.Server {
	recoveryOpt := grpc_recovery.WithRecoveryHandlerContext(func(ctx context.Context, p any) error {
		slog.ErrorContext(ctx, "recovered from panic in grpc handler", "panic", p)
		return errors.ToGRPCError(errors.Internal("internal error"))
	})

	srv := grpc.NewServer(
		grpc.ChainUnaryInterceptor(
			grpc_logging.UnaryServerInterceptor(interceptorLogger(logger)),
			grpc_recovery.UnaryServerInterceptor(recoveryOpt),
		),
		grpc.ChainStreamInterceptor(
			grpc_logging.StreamServerInterceptor(interceptorLogger(logger)),
			grpc_recovery.StreamServerInterceptor(recoveryOpt),
		),
	)

	chargenv1.RegisterCharacterServiceServer(srv, handler)

	healthServer := health.NewServer()
	grpc_health_v1.RegisterHealthServer(srv, healthServer)
	healthServer.SetServingStatus("", grpc_health_v1.HealthCheckResponse_SERVING)
	healthServer.SetServingStatus(chargenv1.ServiceName, grpc_health_v1.HealthCheckResponse_SERVING)

	reflection.Register(srv)

	return srv
}

// interceptorLogger adapts slog to the go-grpc-middleware logger
func interceptorLogger(l *slog.Logger) grpc_logging.Logger {
	return grpc_logging.LoggerFunc(func(ctx context.Context, lvl grpc_logging.Level, msg string, fields ...any) {
		l.Log(ctx, slog.Level(lvl), msg, fields...)
	})
}
