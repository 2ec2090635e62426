package server

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"time"

	"github.com/girafadepapel/storefront-service/internal/application/cartstore"
	"github.com/girafadepapel/storefront-service/internal/application/commands"
	"github.com/girafadepapel/storefront-service/internal/config"
	"github.com/girafadepapel/storefront-service/internal/infrastructure/gateway/mercadopago"
	"github.com/girafadepapel/storefront-service/internal/infrastructure/http/handlers"
	"github.com/girafadepapel/storefront-service/internal/infrastructure/persistence/postgres"
	"github.com/girafadepapel/storefront-service/internal/infrastructure/persistence/redis"
	"github.com/girafadepapel/storefront-service/internal/pkg/clock"
	"github.com/girafadepapel/storefront-service/internal/pkg/logger"
)

type Server struct {
	server          *http.Server
	logger          *logger.Logger
	adminToken      string
	healthHandler   *handlers.HealthHandler
	cartHandler     *handlers.CartHandler
	checkoutHandler *handlers.CheckoutHandler
	webhookHandler  *handlers.WebhookHandler
	paymentHandler  *handlers.PaymentHandler
	orderHandler    *handlers.OrderHandler
	productHandler  *handlers.ProductHandler
	bannerHandler   *handlers.BannerHandler
	colorHandler    *handlers.ColorHandler
}

// Dependencies carries the shared infrastructure main already constructed,
// so the server wires handlers without opening its own connections.
type Dependencies struct {
	DB        *sql.DB
	PG        *postgres.Connection
	Redis     *redis.Connection
	Gateway   *mercadopago.Client
	Clock     clock.Clock
	Logger    *logger.Logger
	Carts     *cartstore.Store
	Snapshots *redis.SnapshotStore
	Payments  *postgres.PaymentRepository
	Orders    *postgres.OrderRepository
	Events    *commands.PaymentEventHandler
}

func NewServer(cfg *config.Config, deps Dependencies) *Server {
	checkoutCommand := commands.NewCheckoutHandler(
		deps.Carts,
		deps.Gateway,
		deps.Payments,
		deps.Orders,
		deps.Snapshots,
		cfg.Store,
		cfg.MercadoPago,
		deps.Clock,
		deps.Logger,
	)

	products := postgres.NewProductRepository(deps.PG)
	banners := postgres.NewBannerRepository(deps.PG)
	colors := postgres.NewColorRepository(deps.PG)

	server := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	return &Server{
		server:          server,
		logger:          deps.Logger,
		adminToken:      cfg.Admin.Token,
		healthHandler:   handlers.NewHealthHandler(deps.DB, deps.Redis.GetClient(), deps.Logger),
		cartHandler:     handlers.NewCartHandler(deps.Carts, deps.Logger),
		checkoutHandler: handlers.NewCheckoutHandler(checkoutCommand, deps.Logger),
		webhookHandler:  handlers.NewWebhookHandler(deps.Events, cfg.MercadoPago.WebhookSecret, deps.Logger),
		paymentHandler:  handlers.NewPaymentHandler(deps.Gateway, deps.Payments, deps.Logger),
		orderHandler:    handlers.NewOrderHandler(deps.Orders, deps.Snapshots, deps.Logger),
		productHandler:  handlers.NewProductHandler(products, deps.Clock, deps.Logger),
		bannerHandler:   handlers.NewBannerHandler(banners, deps.Clock, deps.Logger),
		colorHandler:    handlers.NewColorHandler(colors, deps.Clock, deps.Logger),
	}
}

func (s *Server) ListenAndServe() error {
	s.server.Handler = s.setupRoutes()

	s.logger.Info("Starting HTTP server", "address", s.server.Addr)

	return s.server.ListenAndServe()
}

func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("Shutting down HTTP server")
	return s.server.Shutdown(ctx)
}
