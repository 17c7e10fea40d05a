package main

import (
	"context"
	"log"

	appaccount "github.com/BolivianProgrammer/RazorPedidos/internal/application/account"
	appcatalog "github.com/BolivianProgrammer/RazorPedidos/internal/application/catalog"
	"github.com/BolivianProgrammer/RazorPedidos/internal/application/ordering"
	"github.com/BolivianProgrammer/RazorPedidos/internal/config"
	ginserver "github.com/BolivianProgrammer/RazorPedidos/internal/infrastructure/http/gin"
	kafkainfra "github.com/BolivianProgrammer/RazorPedidos/internal/infrastructure/messaging/kafka"
	"github.com/BolivianProgrammer/RazorPedidos/internal/infrastructure/persistence/postgres"
	"github.com/BolivianProgrammer/RazorPedidos/internal/interfaces/http/handler"
	"github.com/BolivianProgrammer/RazorPedidos/internal/interfaces/http/router"
	"github.com/BolivianProgrammer/RazorPedidos/pkg/logger"
)

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
	repos := store.Repositories()

	producer, err := kafkainfra.NewOrderEventProducer(cfg.Kafka, zlog)
	if err != nil {
		zlog.Fatal("kafka producer init failed", logger.Error(err))
	}
	defer producer.Close(ctx)

	orderService := ordering.NewService(store, repos.Orders, producer, zlog)
	productService := appcatalog.NewService(repos.Products)
	userService := appaccount.NewService(repos.Users)

	orderHandler := handler.NewOrderHandler(orderService)
	productHandler := handler.NewProductHandler(productService)
	userHandler := handler.NewUserHandler(userService)

	engine := ginserver.NewEngine()
	router.RegisterRoutes(engine, repos.Users, orderHandler, productHandler, userHandler)

	zlog.Info("starting API server",
		logger.String("addr", cfg.Server.Address()),
		logger.String("env", cfg.App.Env),
	)

	server := ginserver.NewServer(cfg.Server, engine)
	if err := server.Run(); err != nil {
		zlog.Fatal("server run failed", logger.Error(err))
	}
}
