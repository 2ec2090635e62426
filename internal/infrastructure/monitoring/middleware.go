package monitoring

import (
	"net/http"
	"strconv"
	"strings"
	"time"
)

type HTTPMetricsMiddleware struct {
	next http.Handler
}

func NewHTTPMetricsMiddleware(next http.Handler) *HTTPMetricsMiddleware {
	return &HTTPMetricsMiddleware{
		next: next,
	}
}

func (m *HTTPMetricsMiddleware) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	wrapped := &responseWriter{
		ResponseWriter: w,
		statusCode:     http.StatusOK, // default to 200
	}

	handlerName := extractHandlerName(r.URL.Path)

	m.next.ServeHTTP(wrapped, r)

	duration := time.Since(start).Seconds()
	statusCode := strconv.Itoa(wrapped.statusCode)

	HTTPRequestDuration.WithLabelValues(handlerName, r.Method, statusCode).Observe(duration)
	HTTPRequestsTotal.WithLabelValues(handlerName, r.Method, statusCode).Inc()
}

type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

// extractHandlerName buckets paths so per-id URLs do not blow up label
// cardinality.
func extractHandlerName(path string) string {
	path = strings.TrimPrefix(path, "/")

	switch {
	case strings.HasPrefix(path, "api/mercadopago/webhook"):
		return "webhook"
	case strings.HasPrefix(path, "api/cart"):
		return "cart"
	case strings.HasPrefix(path, "api/checkout"):
		return "checkout"
	case strings.HasPrefix(path, "api/payments"):
		return "payments"
	case strings.HasPrefix(path, "api/orders"):
		return "orders"
	case strings.HasPrefix(path, "api/products"):
		return "products"
	case strings.HasPrefix(path, "api/banners"):
		return "banners"
	case strings.HasPrefix(path, "api/colors"):
		return "colors"
	case strings.HasPrefix(path, "admin/products"):
		return "admin_products"
	case strings.HasPrefix(path, "admin/banners"):
		return "admin_banners"
	case strings.HasPrefix(path, "admin/colors"):
		return "admin_colors"
	case strings.HasPrefix(path, "metrics"):
		return "metrics"
	case strings.HasPrefix(path, "health"):
		return "health"
	default:
		parts := strings.Split(path, "/")
		if len(parts) > 0 && parts[0] != "" {
			return parts[0]
		}
		return "unknown"
	}
}
