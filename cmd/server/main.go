package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/girafadepapel/storefront-service/internal/application/cartstore"
	"github.com/girafadepapel/storefront-service/internal/application/commands"
	"github.com/girafadepapel/storefront-service/internal/config"
	"github.com/girafadepapel/storefront-service/internal/infrastructure/gateway/mercadopago"
	"github.com/girafadepapel/storefront-service/internal/infrastructure/http/server"
	"github.com/girafadepapel/storefront-service/internal/infrastructure/monitoring"
	"github.com/girafadepapel/storefront-service/internal/infrastructure/persistence/postgres"
	"github.com/girafadepapel/storefront-service/internal/infrastructure/persistence/redis"
	"github.com/girafadepapel/storefront-service/internal/infrastructure/scheduler"
	"github.com/girafadepapel/storefront-service/internal/pkg/clock"
	"github.com/girafadepapel/storefront-service/internal/pkg/logger"
)

func main() {
	configPath := flag.String("config", "config.json", "Path to configuration file")
	flag.Parse()

	log := logger.NewLogger()
	log.Info("Starting storefront service")

	cfg, configErr := config.LoadConfig(*configPath)
	if configErr != nil {
		log.Fatal("Failed to load configuration", "error", configErr)
	}

	db, dbErr := postgres.NewConnection(cfg.Database)
	if dbErr != nil {
		log.Fatal("Failed to connect to database", "error", dbErr)
	}
	defer db.Close()

	if migrationErr := postgres.RunMigrations(cfg.Database); migrationErr != nil {
		log.Fatal("Failed to run migrations", "error", migrationErr)
	}

	redisConn, err := redis.NewConnection(cfg.Redis)
	if err != nil {
		log.Fatal("Failed to connect to Redis", "error", err)
	}
	defer redisConn.Close()
	monitoring.InstrumentRedisClient(redisConn.GetClient())

	dbMetricsCollector := monitoring.NewDBMetricsCollector(db.GetDB())
	dbMetricsCollector.StartCollecting(context.Background(), 30*time.Second)

	clk := clock.NewRealClock()
	gateway := mercadopago.NewClient(cfg.MercadoPago, log)

	cartTTL := time.Duration(cfg.Redis.CartTTLHours) * time.Hour
	snapshotTTL := time.Duration(cfg.Redis.SnapshotTTLHours) * time.Hour
	carts := cartstore.New(redis.NewCartStore(redisConn, cartTTL, log), log)
	snapshots := redis.NewSnapshotStore(redisConn, snapshotTTL)

	payments := postgres.NewPaymentRepository(db)
	orders := postgres.NewOrderRepository(db, clk)

	events := commands.NewPaymentEventHandler(gateway, payments, orders, clk, log)

	reconciler := scheduler.NewReconciliationScheduler(
		events, payments, orders, gateway, log,
		5*time.Minute, 10*time.Minute,
	)

	httpServer := server.NewServer(cfg, server.Dependencies{
		DB:        db.GetDB(),
		PG:        db,
		Redis:     redisConn,
		Gateway:   gateway,
		Clock:     clk,
		Logger:    log,
		Carts:     carts,
		Snapshots: snapshots,
		Payments:  payments,
		Orders:    orders,
		Events:    events,
	})

	serverCtx, serverStopCtx := context.WithCancel(context.Background())

	go reconciler.Start(serverCtx)

	var metricsServer *monitoring.MetricsServer
	if cfg.Monitoring.Addr != "" {
		metricsServer = monitoring.NewMetricsServer(cfg.Monitoring.Addr)
		go func() {
			if err := metricsServer.Start(); err != nil && err != http.ErrServerClosed {
				log.Error("Metrics server failed", "error", err)
			}
		}()
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGHUP, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigChan
		shutdownCtx, cancel := context.WithTimeout(serverCtx, 30*time.Second)
		defer cancel()

		log.Info("Shutting down server...")
		reconciler.Stop()
		if metricsServer != nil {
			if err := metricsServer.Stop(shutdownCtx); err != nil {
				log.Error("Metrics server shutdown error", "error", err)
			}
		}
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			log.Error("Server shutdown error", "error", err)
		}

		serverStopCtx()
	}()

	log.Info("Server starting", "address", fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port))
	if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatal("Server failed", "error", err)
	}

	<-serverCtx.Done()
	log.Info("Server stopped")
}
