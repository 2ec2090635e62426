package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/girafadepapel/storefront-service/internal/application/ports"
	"github.com/girafadepapel/storefront-service/internal/domain/catalog"
	"github.com/girafadepapel/storefront-service/internal/infrastructure/http/response"
	"github.com/girafadepapel/storefront-service/internal/pkg/clock"
	"github.com/girafadepapel/storefront-service/internal/pkg/generator"
	"github.com/girafadepapel/storefront-service/internal/pkg/logger"
)

// ProductHandler serves the public catalog reads and the admin CRUD. The
// admin routes are expected to sit behind the auth middleware.
type ProductHandler struct {
	products ports.ProductRepository
	clock    clock.Clock
	log      *logger.Logger
}

func NewProductHandler(products ports.ProductRepository, clk clock.Clock, log *logger.Logger) *ProductHandler {
	return &ProductHandler{
		products: products,
		clock:    clk,
		log:      log,
	}
}

func (h *ProductHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	filter := ports.ProductFilter{
		Category: r.URL.Query().Get("category"),
	}
	if raw := r.URL.Query().Get("featured"); raw != "" {
		featured := raw == "true" || raw == "1"
		filter.Featured = &featured
	}

	products, err := h.products.List(r.Context(), filter)
	if err != nil {
		h.log.Error("Failed to list products", "error", err.Error())
		response.WriteDomainError(w, err)
		return
	}
	if products == nil {
		products = []*catalog.Product{}
	}

	response.WriteSuccess(w, products)
}

func (h *ProductHandler) HandleGet(w http.ResponseWriter, r *http.Request, id string) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	product, err := h.products.GetByID(r.Context(), id)
	if err != nil {
		response.WriteDomainError(w, err)
		return
	}

	response.WriteSuccess(w, product)
}

func (h *ProductHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	var product catalog.Product
	if err := json.NewDecoder(r.Body).Decode(&product); err != nil {
		response.WriteError(w, http.StatusBadRequest, response.StatusError, "Invalid request body")
		return
	}

	if err := product.Validate(); err != nil {
		response.WriteError(w, http.StatusBadRequest, response.StatusValidationError, err.Error())
		return
	}

	now := h.clock.Now()
	product.ID = generator.NewEntityID()
	product.CreatedAt = now
	product.UpdatedAt = now

	if err := h.products.Create(r.Context(), &product); err != nil {
		h.log.Error("Failed to create product", "error", err.Error())
		response.WriteDomainError(w, err)
		return
	}

	h.log.Info("Product created", "product_id", product.ID, "name", product.Name)
	response.WriteJSON(w, http.StatusCreated, response.Success(&product))
}

func (h *ProductHandler) HandleUpdate(w http.ResponseWriter, r *http.Request, id string) {
	var product catalog.Product
	if err := json.NewDecoder(r.Body).Decode(&product); err != nil {
		response.WriteError(w, http.StatusBadRequest, response.StatusError, "Invalid request body")
		return
	}

	if err := product.Validate(); err != nil {
		response.WriteError(w, http.StatusBadRequest, response.StatusValidationError, err.Error())
		return
	}

	existing, err := h.products.GetByID(r.Context(), id)
	if err != nil {
		response.WriteDomainError(w, err)
		return
	}

	product.ID = id
	product.CreatedAt = existing.CreatedAt
	product.UpdatedAt = h.clock.Now()

	if err := h.products.Update(r.Context(), &product); err != nil {
		h.log.Error("Failed to update product", "product_id", id, "error", err.Error())
		response.WriteDomainError(w, err)
		return
	}

	response.WriteSuccess(w, &product)
}

func (h *ProductHandler) HandleDelete(w http.ResponseWriter, r *http.Request, id string) {
	if err := h.products.Delete(r.Context(), id); err != nil {
		response.WriteDomainError(w, err)
		return
	}

	h.log.Info("Product deleted", "product_id", id)
	response.WriteSuccess(w, map[string]string{"deleted": id})
}
