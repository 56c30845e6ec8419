package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/MakeMoneyOnly/Meqenet-sub004/internal/application/usecase"
	"github.com/MakeMoneyOnly/Meqenet-sub004/internal/domain/service"
	"github.com/MakeMoneyOnly/Meqenet-sub004/internal/infrastructure/adapter"
	"github.com/MakeMoneyOnly/Meqenet-sub004/internal/infrastructure/config"
	pgRepo "github.com/MakeMoneyOnly/Meqenet-sub004/internal/infrastructure/postgres"
	grpcPresentation "github.com/MakeMoneyOnly/Meqenet-sub004/internal/presentation/grpc"
	"github.com/MakeMoneyOnly/Meqenet-sub004/internal/presentation/rest"
	"github.com/MakeMoneyOnly/Meqenet-sub004/pkg/auth"
	"github.com/MakeMoneyOnly/Meqenet-sub004/pkg/observability"
	pkgpostgres "github.com/MakeMoneyOnly/Meqenet-sub004/pkg/postgres"
)

// utcClock satisfies port.Clock with wall time in UTC.
type utcClock struct{}

func (utcClock) Now() time.Time { return time.Now().UTC() }

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	// Load configuration.
	cfg := config.Load()

	// Initialize structured logger via shared observability package.
	logger := observability.InitLogger(observability.LogConfig{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
	})
	slog.SetDefault(logger)

	logger.Info("starting contract-engine",
		"http_port", cfg.HTTPPort,
		"grpc_port", cfg.GRPCPort,
	)

	// Initialize metrics.
	meterProvider, metricsHandler, err := observability.InitMetrics(observability.MetricsConfig{
		ServiceName: cfg.ServiceName,
	})
	if err != nil {
		logger.Warn("failed to initialize metrics, continuing without them", "error", err)
	} else {
		defer func() { _ = meterProvider.Shutdown(ctx) }() //nolint:errcheck // best-effort shutdown
	}

	// Database connection.
	dbCtx, dbCancel := context.WithTimeout(ctx, 10*time.Second)
	defer dbCancel()

	pgCfg := pkgpostgres.Config{
		Host:     cfg.DB.Host,
		Port:     cfg.DB.Port,
		User:     cfg.DB.User,
		Password: cfg.DB.Password,
		Database: cfg.DB.Name,
		SSLMode:  cfg.DB.SSLMode,
	}
	pool, err := pkgpostgres.NewPool(dbCtx, pgCfg)
	if err != nil {
		logger.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer pool.Close()
	logger.Info("connected to database")

	// Run database migrations.
	if migErr := pkgpostgres.RunMigrations(pgCfg.DSN(), "file://internal/infrastructure/postgres/migrations"); migErr != nil {
		logger.Warn("migration warning", "error", migErr)
	}

	// Wire infrastructure adapters.
	contractRepo := pgRepo.NewContractRepo(pool)
	paymentRepo := pgRepo.NewPaymentRepo(pool)
	eligibility := adapter.NewStubMerchantEligibility()
	refGen := service.NewReferenceGenerator(func() time.Time { return time.Now().UTC() })
	clock := utcClock{}

	// Wire use cases.
	createContractUC := usecase.NewCreateContractUseCase(contractRepo, eligibility, refGen, clock, logger)
	getContractUC := usecase.NewGetContractUseCase(contractRepo)
	processPaymentUC := usecase.NewProcessPaymentUseCase(contractRepo, paymentRepo, refGen, clock, logger)

	// JWT service (validation-only: public key preferred, secret as fallback).
	jwtCfg := auth.JWTConfig{
		Issuer: "meqenet-gateway",
	}
	switch {
	case os.Getenv("JWT_PUBLIC_KEY") != "":
		jwtCfg.PublicKeyPEM = os.Getenv("JWT_PUBLIC_KEY")
	case os.Getenv("JWT_PUBLIC_KEY_FILE") != "":
		keyData, loadErr := auth.LoadKeyFromFile(os.Getenv("JWT_PUBLIC_KEY_FILE"))
		if loadErr != nil {
			logger.Error("failed to load JWT public key file", "error", loadErr)
			os.Exit(1)
		}
		jwtCfg.PublicKeyPEM = string(keyData)
	default:
		jwtSecret := os.Getenv("JWT_SECRET")
		if jwtSecret == "" {
			logger.Error("JWT_SECRET or a public key is required")
			os.Exit(1)
		}
		jwtCfg.Secret = jwtSecret
	}
	jwtSvc, err := auth.NewJWTService(jwtCfg)
	if err != nil {
		logger.Error("failed to initialize JWT service", "error", err)
		os.Exit(1)
	}

	// gRPC server.
	handler := grpcPresentation.NewContractHandler(createContractUC, getContractUC, processPaymentUC, logger)
	grpcServer := grpcPresentation.NewServer(handler, logger, jwtSvc)

	// HTTP server (health checks and metrics).
	mux := http.NewServeMux()
	healthHandler := rest.NewHealthHandler(pool, logger)
	healthHandler.RegisterRoutes(mux)
	if metricsHandler != nil {
		mux.Handle("GET /metrics", metricsHandler)
	}

	httpServer := &http.Server{
		Addr:              cfg.HTTPAddr(),
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Start servers.
	errCh := make(chan error, 2)

	go func() {
		if err := grpcServer.Serve(cfg.GRPCAddr()); err != nil {
			errCh <- fmt.Errorf("gRPC server error: %w", err)
		}
	}()

	go func() {
		logger.Info("HTTP server starting", "port", cfg.HTTPPort)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- fmt.Errorf("HTTP server error: %w", err)
		}
	}()

	// Wait for shutdown signal.
	select {
	case <-ctx.Done():
		logger.Info("shutdown signal received")
	case err := <-errCh:
		logger.Error("server error", "error", err)
	}

	// Graceful shutdown.
	grpcServer.GracefulStop()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutdownCancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Error("HTTP server shutdown error", "error", err)
	}

	logger.Info("contract-engine stopped")
}
