package main

import (
	"context"
	"errors"
	"log"
	"os/signal"
	"syscall"

	"github.com/BolivianProgrammer/RazorPedidos/internal/config"
	kafkainfra "github.com/BolivianProgrammer/RazorPedidos/internal/infrastructure/messaging/kafka"
	"github.com/BolivianProgrammer/RazorPedidos/internal/infrastructure/persistence/postgres"
	"github.com/BolivianProgrammer/RazorPedidos/pkg/logger"
)

// Consumes the order-events topic into the order_audit table.
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config failed: %v", err)
	}

	zlog, err := logger.NewZapLogger(cfg.App.Env)
	if err != nil {
		log.Fatalf("init logger failed: %v", err)
	}
	defer zlog.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pool, err := postgres.NewPool(cfg.DB)
	if err != nil {
		zlog.Fatal("postgres connection failed", logger.Error(err))
	}
	defer pool.Close()

	if err := postgres.EnsureSchema(ctx, pool); err != nil {
		zlog.Fatal("ensure schema failed", logger.Error(err))
	}

	audit := postgres.NewAuditRepository(pool)

	consumer, err := kafkainfra.NewAuditConsumer(cfg.Kafka, audit, zlog)
	if err != nil {
		zlog.Fatal("kafka consumer init failed", logger.Error(err))
	}
	defer consumer.Close()

	zlog.Info("order audit consumer started",
		logger.String("topic", cfg.Kafka.EventTopic),
		logger.String("group", cfg.Kafka.ConsumerGroup),
	)

	if err := consumer.Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
		zlog.Fatal("consumer stopped", logger.Error(err))
	}
	zlog.Info("order audit consumer shutting down")
}
