package middleware

import (
	"crypto/subtle"
	"net/http"
	"strings"

	"github.com/girafadepapel/storefront-service/internal/infrastructure/http/response"
	"github.com/girafadepapel/storefront-service/internal/pkg/logger"
)

// NewAdminAuthMiddleware guards the back-office routes with a single bearer
// token. An empty configured token locks the routes entirely instead of
// leaving them open.
func NewAdminAuthMiddleware(token string, log *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			presented := strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer ")

			if token == "" || presented == "" ||
				subtle.ConstantTimeCompare([]byte(presented), []byte(token)) != 1 {
				log.Warn("Rejected admin request",
					"path", r.URL.Path,
					"method", r.Method,
					"remote_addr", r.RemoteAddr,
				)
				response.WriteError(w, http.StatusUnauthorized, response.StatusUnauthorized, "Authorization required")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
