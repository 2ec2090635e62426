package handlers

import (
	"net/http"

	"github.com/girafadepapel/storefront-service/internal/application/ports"
	"github.com/girafadepapel/storefront-service/internal/domain/errors"
	"github.com/girafadepapel/storefront-service/internal/infrastructure/http/response"
	"github.com/girafadepapel/storefront-service/internal/pkg/logger"
)

type OrderHandler struct {
	orders    ports.OrderRepository
	snapshots ports.OrderSnapshotStore
	log       *logger.Logger
}

func NewOrderHandler(orders ports.OrderRepository, snapshots ports.OrderSnapshotStore, log *logger.Logger) *OrderHandler {
	return &OrderHandler{
		orders:    orders,
		snapshots: snapshots,
		log:       log,
	}
}

// HandleLastOrder returns the session's most recent order snapshot for the
// payment result pages.
func (h *OrderHandler) HandleLastOrder(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	sessionID := SessionID(r)
	if sessionID == "" {
		response.WriteDomainError(w, errors.ErrSessionRequired)
		return
	}

	o, err := h.snapshots.GetLast(r.Context(), sessionID)
	if err != nil {
		response.WriteDomainError(w, err)
		return
	}

	response.WriteSuccess(w, o)
}

func (h *OrderHandler) HandleGetOrder(w http.ResponseWriter, r *http.Request, reference string) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	o, err := h.orders.GetByReference(r.Context(), reference)
	if err != nil {
		response.WriteDomainError(w, err)
		return
	}

	response.WriteSuccess(w, o)
}
