package handlers

import (
	"context"
	"database/sql"
	"net/http"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/girafadepapel/storefront-service/internal/infrastructure/http/response"
	"github.com/girafadepapel/storefront-service/internal/pkg/logger"
)

// HealthHandler probes the service's two hard dependencies. Orders and
// payments cannot be taken without Postgres; carts cannot be read without
// Redis. Either one down degrades the whole service to 503 so the load
// balancer stops routing checkouts here.
type HealthHandler struct {
	db        *sql.DB
	redis     *redis.Client
	log       *logger.Logger
	startTime time.Time
}

func NewHealthHandler(db *sql.DB, redis *redis.Client, log *logger.Logger) *HealthHandler {
	return &HealthHandler{
		db:        db,
		redis:     redis,
		log:       log,
		startTime: time.Now().UTC(),
	}
}

type DependencyStatus struct {
	Status    string `json:"status"`
	LatencyMS int64  `json:"latency_ms"`
	Error     string `json:"error,omitempty"`
}

type HealthData struct {
	Status   string                      `json:"status"`
	Uptime   string                      `json:"uptime"`
	Services map[string]DependencyStatus `json:"services"`
}

func (h *HealthHandler) HandleHealth() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		services := map[string]DependencyStatus{
			"postgres": h.probe(func() error { return h.db.PingContext(ctx) }),
			"redis":    h.probe(func() error { return h.redis.Ping(ctx).Err() }),
		}

		status := "up"
		code := http.StatusOK
		for name, dep := range services {
			if dep.Status != "up" {
				status = "degraded"
				code = http.StatusServiceUnavailable
				h.log.Error("Health check failed", "dependency", name, "error", dep.Error)
			}
		}

		data := HealthData{
			Status:   status,
			Uptime:   time.Since(h.startTime).Round(time.Second).String(),
			Services: services,
		}

		response.WriteJSON(w, code, data)
	}
}

func (h *HealthHandler) probe(ping func() error) DependencyStatus {
	start := time.Now()
	err := ping()
	dep := DependencyStatus{
		Status:    "up",
		LatencyMS: time.Since(start).Milliseconds(),
	}
	if err != nil {
		dep.Status = "down"
		dep.Error = err.Error()
	}
	return dep
}
