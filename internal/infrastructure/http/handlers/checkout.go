package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/girafadepapel/storefront-service/internal/application/commands"
	domainErrors "github.com/girafadepapel/storefront-service/internal/domain/errors"
	"github.com/girafadepapel/storefront-service/internal/domain/order"
	"github.com/girafadepapel/storefront-service/internal/infrastructure/http/response"
	"github.com/girafadepapel/storefront-service/internal/pkg/logger"
)

type CheckoutHandler struct {
	checkout *commands.CheckoutHandler
	log      *logger.Logger
}

func NewCheckoutHandler(checkout *commands.CheckoutHandler, log *logger.Logger) *CheckoutHandler {
	return &CheckoutHandler{
		checkout: checkout,
		log:      log,
	}
}

type checkoutRequest struct {
	Customer order.Customer `json:"customer"`
}

func (h *CheckoutHandler) HandleCheckout() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}

		sessionID := SessionID(r)
		if sessionID == "" {
			response.WriteDomainError(w, domainErrors.ErrSessionRequired)
			return
		}

		var req checkoutRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			response.WriteError(w, http.StatusBadRequest, response.StatusError, "Invalid request body")
			return
		}

		h.log.Info("Checkout request received",
			"session_id", sessionID,
			"email", req.Customer.Email,
		)

		resp, err := h.checkout.Handle(r.Context(), commands.CheckoutCommand{
			SessionID: sessionID,
			Customer:  req.Customer,
		})
		if err != nil {
			var validationErr *commands.ValidationError
			if errors.As(err, &validationErr) {
				response.WriteValidationError(w, "Validation failed", validationErr.Fields)
				return
			}

			h.log.Error("Checkout failed",
				"session_id", sessionID,
				"error", err.Error(),
			)
			response.WriteDomainError(w, err)
			return
		}

		response.WriteSuccess(w, resp)
	}
}
