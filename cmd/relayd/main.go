package main

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/MakeMoneyOnly/Meqenet-sub004/internal/infrastructure/config"
	"github.com/MakeMoneyOnly/Meqenet-sub004/internal/infrastructure/messaging"
	pgRepo "github.com/MakeMoneyOnly/Meqenet-sub004/internal/infrastructure/postgres"
	"github.com/MakeMoneyOnly/Meqenet-sub004/pkg/kafka"
	"github.com/MakeMoneyOnly/Meqenet-sub004/pkg/observability"
	pkgpostgres "github.com/MakeMoneyOnly/Meqenet-sub004/pkg/postgres"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	cfg := config.Load()

	logger := observability.InitLogger(observability.LogConfig{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
	})
	slog.SetDefault(logger)

	logger.Info("starting outbox relay",
		"brokers", strings.Join(cfg.Kafka.Brokers, ","),
		"topic", cfg.Kafka.Topic,
		"batch_size", cfg.Relay.BatchSize,
		"poll_interval", cfg.Relay.PollInterval.String(),
	)

	dbCtx, dbCancel := context.WithTimeout(ctx, 10*time.Second)
	defer dbCancel()

	pool, err := pkgpostgres.NewPool(dbCtx, pkgpostgres.Config{
		Host:     cfg.DB.Host,
		Port:     cfg.DB.Port,
		User:     cfg.DB.User,
		Password: cfg.DB.Password,
		Database: cfg.DB.Name,
		SSLMode:  cfg.DB.SSLMode,
	})
	if err != nil {
		logger.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer pool.Close()

	producer, err := kafka.NewProducer(kafka.Config{
		Brokers:       cfg.Kafka.Brokers,
		TLS:           cfg.Kafka.TLSEnabled,
		SASLEnabled:   cfg.Kafka.SASLEnabled,
		SASLMechanism: cfg.Kafka.SASLMechanism,
		SASLUsername:  cfg.Kafka.SASLUsername,
		SASLPassword:  cfg.Kafka.SASLPassword,
	})
	if err != nil {
		logger.Error("failed to configure kafka producer", "error", err)
		os.Exit(1)
	}
	defer producer.Close() //nolint:errcheck

	relay := messaging.NewOutboxRelay(
		pgRepo.NewOutboxRepo(pool),
		producer,
		cfg.Kafka.Topic,
		cfg.Relay.BatchSize,
		cfg.Relay.PollInterval,
		logger,
	)

	if err := relay.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		logger.Error("relay stopped with error", "error", err)
		os.Exit(1)
	}

	logger.Info("outbox relay stopped")
}
