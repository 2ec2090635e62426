package server

import (
	"net/http"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/girafadepapel/storefront-service/internal/infrastructure/http/middleware"
	"github.com/girafadepapel/storefront-service/internal/infrastructure/monitoring"
)

func (s *Server) setupRoutes() http.Handler {
	mux := http.NewServeMux()

	mux.Handle("/metrics", promhttp.Handler())
	mux.HandleFunc("/health", s.healthHandler.HandleHealth())

	mux.HandleFunc("/api/cart", s.cartHandler.HandleCart)
	mux.HandleFunc("/api/cart/items", s.cartHandler.HandleAddItem)
	mux.HandleFunc("/api/cart/items/", s.handleCartItemRoutes)
	mux.HandleFunc("/api/cart/shipping", s.cartHandler.HandleSetShipping)
	mux.HandleFunc("/api/cart/discount", s.cartHandler.HandleSetDiscount)

	mux.HandleFunc("/api/checkout", s.checkoutHandler.HandleCheckout())
	mux.HandleFunc("/api/mercadopago/webhook", s.webhookHandler.HandleWebhook())
	mux.HandleFunc("/api/payments/", s.handlePaymentRoutes)
	mux.HandleFunc("/api/orders/last", s.orderHandler.HandleLastOrder)
	mux.HandleFunc("/api/orders/", s.handleOrderRoutes)

	mux.HandleFunc("/api/products", s.productHandler.HandleList)
	mux.HandleFunc("/api/products/", s.handleProductRoutes)
	mux.HandleFunc("/api/banners", s.bannerHandler.HandleListActive)
	mux.HandleFunc("/api/colors", s.colorHandler.HandleList)

	adminAuth := middleware.NewAdminAuthMiddleware(s.adminToken, s.logger)
	mux.Handle("/admin/", adminAuth(http.HandlerFunc(s.handleAdminRoutes)))

	handler := middleware.NewRecoveryMiddleware(s.logger)(mux)
	handler = middleware.NewLoggingMiddleware(s.logger)(handler)
	handler = monitoring.WrapHandler(handler)
	handler = s.corsMiddleware(handler)
	handler = s.timeoutMiddleware(handler)

	return handler
}

func (s *Server) handleCartItemRoutes(w http.ResponseWriter, r *http.Request) {
	itemID := strings.TrimPrefix(r.URL.Path, "/api/cart/items/")
	if itemID == "" || strings.Contains(itemID, "/") {
		http.NotFound(w, r)
		return
	}
	s.cartHandler.HandleItem(w, r, itemID)
}

func (s *Server) handlePaymentRoutes(w http.ResponseWriter, r *http.Request) {
	paymentID := strings.TrimPrefix(r.URL.Path, "/api/payments/")
	if paymentID == "" || strings.Contains(paymentID, "/") {
		http.NotFound(w, r)
		return
	}
	s.paymentHandler.HandleGetPayment(w, r, paymentID)
}

func (s *Server) handleOrderRoutes(w http.ResponseWriter, r *http.Request) {
	reference := strings.TrimPrefix(r.URL.Path, "/api/orders/")
	if reference == "" || strings.Contains(reference, "/") {
		http.NotFound(w, r)
		return
	}
	s.orderHandler.HandleGetOrder(w, r, reference)
}

func (s *Server) handleProductRoutes(w http.ResponseWriter, r *http.Request) {
	id := strings.TrimPrefix(r.URL.Path, "/api/products/")
	if id == "" || strings.Contains(id, "/") {
		http.NotFound(w, r)
		return
	}
	s.productHandler.HandleGet(w, r, id)
}

// handleAdminRoutes dispatches the back-office CRUD. The auth middleware has
// already run for everything that lands here.
func (s *Server) handleAdminRoutes(w http.ResponseWriter, r *http.Request) {
	path := strings.TrimPrefix(r.URL.Path, "/admin/")
	resource, id, _ := strings.Cut(path, "/")

	switch resource {
	case "products":
		s.dispatchAdminCRUD(w, r, id,
			s.productHandler.HandleList, s.productHandler.HandleCreate,
			s.productHandler.HandleUpdate, s.productHandler.HandleDelete)
	case "banners":
		s.dispatchAdminCRUD(w, r, id,
			s.bannerHandler.HandleListAll, s.bannerHandler.HandleCreate,
			s.bannerHandler.HandleUpdate, s.bannerHandler.HandleDelete)
	case "colors":
		s.dispatchAdminCRUD(w, r, id,
			s.colorHandler.HandleList, s.colorHandler.HandleCreate,
			s.colorHandler.HandleUpdate, s.colorHandler.HandleDelete)
	default:
		http.NotFound(w, r)
	}
}

func (s *Server) dispatchAdminCRUD(
	w http.ResponseWriter, r *http.Request, id string,
	list, create http.HandlerFunc,
	update, remove func(http.ResponseWriter, *http.Request, string),
) {
	if id == "" {
		switch r.Method {
		case http.MethodGet:
			list(w, r)
		case http.MethodPost:
			create(w, r)
		default:
			w.WriteHeader(http.StatusMethodNotAllowed)
		}
		return
	}

	if strings.Contains(id, "/") {
		http.NotFound(w, r)
		return
	}

	switch r.Method {
	case http.MethodPut, http.MethodPatch:
		update(w, r, id)
	case http.MethodDelete:
		remove(w, r, id)
	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

func (s *Server) corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Accept, Authorization, Content-Type, X-Session-ID")
		w.Header().Set("Access-Control-Max-Age", "300")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func (s *Server) timeoutMiddleware(next http.Handler) http.Handler {
	return http.TimeoutHandler(next, 90*time.Second, "Request timeout")
}
