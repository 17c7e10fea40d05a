package main

import (
	"context"
	"log"

	appcatalog "github.com/BolivianProgrammer/RazorPedidos/internal/application/catalog"
	"github.com/BolivianProgrammer/RazorPedidos/internal/config"
	"github.com/BolivianProgrammer/RazorPedidos/internal/infrastructure/http/supplier"
	"github.com/BolivianProgrammer/RazorPedidos/internal/infrastructure/persistence/postgres"
	"github.com/BolivianProgrammer/RazorPedidos/pkg/logger"
)

// One-shot import of the supplier catalog feed into the products table.
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config failed: %v", err)
	}
	if cfg.Supplier.BaseURL == "" {
		log.Fatal("SUPPLIER_FEED_BASE_URL is empty")
	}

	zlog, err := logger.NewZapLogger(cfg.App.Env)
	if err != nil {
		log.Fatalf("init logger failed: %v", err)
	}
	defer zlog.Sync()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pool, err := postgres.NewPool(cfg.DB)
	if err != nil {
		zlog.Fatal("postgres connection failed", logger.Error(err))
	}
	defer pool.Close()

	if err := postgres.EnsureSchema(ctx, pool); err != nil {
		zlog.Fatal("ensure schema failed", logger.Error(err))
	}

	store := postgres.NewStore(pool)
	client := supplier.NewClient(cfg.Supplier, zlog)
	sync := appcatalog.NewFeedSync(client, store.Repositories().Products, zlog)

	result, err := sync.Run(ctx)
	if err != nil {
		zlog.Fatal("catalog sync failed", logger.Error(err))
	}

	zlog.Info("catalog sync complete",
		logger.Int("created", result.Created),
		logger.Int("updated", result.Updated),
		logger.Int("skipped", result.Skipped),
	)
}
