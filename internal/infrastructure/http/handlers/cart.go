package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/girafadepapel/storefront-service/internal/application/cartstore"
	"github.com/girafadepapel/storefront-service/internal/domain/cart"
	"github.com/girafadepapel/storefront-service/internal/domain/errors"
	"github.com/girafadepapel/storefront-service/internal/infrastructure/http/response"
	"github.com/girafadepapel/storefront-service/internal/pkg/logger"
)

// SessionID pulls the shopper's session from the request. The storefront
// sends it as a header; the query parameter exists for link-based flows.
func SessionID(r *http.Request) string {
	if id := r.Header.Get("X-Session-ID"); id != "" {
		return id
	}
	return r.URL.Query().Get("session_id")
}

type CartHandler struct {
	carts *cartstore.Store
	log   *logger.Logger
}

func NewCartHandler(carts *cartstore.Store, log *logger.Logger) *CartHandler {
	return &CartHandler{
		carts: carts,
		log:   log,
	}
}

type addItemRequest struct {
	ProductID string  `json:"product_id"`
	Name      string  `json:"name"`
	UnitPrice float64 `json:"unit_price"`
	Quantity  int     `json:"quantity"`
	Image     string  `json:"image,omitempty"`
	Category  string  `json:"category,omitempty"`
	Color     string  `json:"color,omitempty"`
	Size      string  `json:"size,omitempty"`
}

type updateQuantityRequest struct {
	Quantity int `json:"quantity"`
}

type setAmountRequest struct {
	Value float64 `json:"value"`
}

// HandleCart serves GET (current state), POST /items (add), DELETE (clear).
func (h *CartHandler) HandleCart(w http.ResponseWriter, r *http.Request) {
	sessionID := SessionID(r)
	if sessionID == "" {
		response.WriteDomainError(w, errors.ErrSessionRequired)
		return
	}

	switch r.Method {
	case http.MethodGet:
		response.WriteSuccess(w, h.carts.Get(r.Context(), sessionID))
	case http.MethodDelete:
		response.WriteSuccess(w, h.carts.Clear(r.Context(), sessionID))
	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

func (h *CartHandler) HandleAddItem(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	sessionID := SessionID(r)
	if sessionID == "" {
		response.WriteDomainError(w, errors.ErrSessionRequired)
		return
	}

	var req addItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.WriteError(w, http.StatusBadRequest, response.StatusError, "Invalid request body")
		return
	}

	fieldErrs := make(map[string]string)
	if strings.TrimSpace(req.ProductID) == "" {
		fieldErrs["product_id"] = "product id is required"
	}
	if strings.TrimSpace(req.Name) == "" {
		fieldErrs["name"] = "name is required"
	}
	if req.UnitPrice < 0 {
		fieldErrs["unit_price"] = "unit price cannot be negative"
	}
	if len(fieldErrs) > 0 {
		response.WriteValidationError(w, "Validation failed", fieldErrs)
		return
	}

	if req.Quantity <= 0 {
		req.Quantity = 1
	}

	updated := h.carts.AddItem(r.Context(), sessionID, cart.Item{
		ProductID: req.ProductID,
		Name:      req.Name,
		UnitPrice: req.UnitPrice,
		Quantity:  req.Quantity,
		Image:     req.Image,
		Category:  req.Category,
		Color:     req.Color,
		Size:      req.Size,
	})

	response.WriteSuccess(w, updated)
}

// HandleItem serves PATCH (quantity) and DELETE on /api/cart/items/{id}.
func (h *CartHandler) HandleItem(w http.ResponseWriter, r *http.Request, itemID string) {
	sessionID := SessionID(r)
	if sessionID == "" {
		response.WriteDomainError(w, errors.ErrSessionRequired)
		return
	}

	switch r.Method {
	case http.MethodPatch, http.MethodPut:
		var req updateQuantityRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			response.WriteError(w, http.StatusBadRequest, response.StatusError, "Invalid request body")
			return
		}
		response.WriteSuccess(w, h.carts.UpdateQuantity(r.Context(), sessionID, itemID, req.Quantity))
	case http.MethodDelete:
		response.WriteSuccess(w, h.carts.RemoveItem(r.Context(), sessionID, itemID))
	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

func (h *CartHandler) HandleSetShipping(w http.ResponseWriter, r *http.Request) {
	h.handleSetAmount(w, r, func(ctx *http.Request, sessionID string, value float64) cart.Cart {
		return h.carts.SetShipping(ctx.Context(), sessionID, value)
	})
}

func (h *CartHandler) HandleSetDiscount(w http.ResponseWriter, r *http.Request) {
	h.handleSetAmount(w, r, func(ctx *http.Request, sessionID string, value float64) cart.Cart {
		return h.carts.SetDiscount(ctx.Context(), sessionID, value)
	})
}

func (h *CartHandler) handleSetAmount(w http.ResponseWriter, r *http.Request, apply func(*http.Request, string, float64) cart.Cart) {
	if r.Method != http.MethodPut && r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	sessionID := SessionID(r)
	if sessionID == "" {
		response.WriteDomainError(w, errors.ErrSessionRequired)
		return
	}

	var req setAmountRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.WriteError(w, http.StatusBadRequest, response.StatusError, "Invalid request body")
		return
	}

	response.WriteSuccess(w, apply(r, sessionID, req.Value))
}
