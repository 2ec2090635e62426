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

type ColorHandler struct {
	colors ports.ColorRepository
	clock  clock.Clock
	log    *logger.Logger
}

func NewColorHandler(colors ports.ColorRepository, clk clock.Clock, log *logger.Logger) *ColorHandler {
	return &ColorHandler{
		colors: colors,
		clock:  clk,
		log:    log,
	}
}

func (h *ColorHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	colors, err := h.colors.List(r.Context())
	if err != nil {
		response.WriteDomainError(w, err)
		return
	}
	if colors == nil {
		colors = []*catalog.Color{}
	}

	response.WriteSuccess(w, colors)
}

func (h *ColorHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	var color catalog.Color
	if err := json.NewDecoder(r.Body).Decode(&color); err != nil {
		response.WriteError(w, http.StatusBadRequest, response.StatusError, "Invalid request body")
		return
	}

	if err := color.Validate(); err != nil {
		response.WriteError(w, http.StatusBadRequest, response.StatusValidationError, err.Error())
		return
	}

	now := h.clock.Now()
	color.ID = generator.NewEntityID()
	color.CreatedAt = now
	color.UpdatedAt = now

	if err := h.colors.Create(r.Context(), &color); err != nil {
		response.WriteDomainError(w, err)
		return
	}

	h.log.Info("Color created", "color_id", color.ID, "name", color.Name)
	response.WriteJSON(w, http.StatusCreated, response.Success(&color))
}

func (h *ColorHandler) HandleUpdate(w http.ResponseWriter, r *http.Request, id string) {
	var color catalog.Color
	if err := json.NewDecoder(r.Body).Decode(&color); err != nil {
		response.WriteError(w, http.StatusBadRequest, response.StatusError, "Invalid request body")
		return
	}

	if err := color.Validate(); err != nil {
		response.WriteError(w, http.StatusBadRequest, response.StatusValidationError, err.Error())
		return
	}

	existing, err := h.colors.GetByID(r.Context(), id)
	if err != nil {
		response.WriteDomainError(w, err)
		return
	}

	color.ID = id
	color.CreatedAt = existing.CreatedAt
	color.UpdatedAt = h.clock.Now()

	if err := h.colors.Update(r.Context(), &color); err != nil {
		response.WriteDomainError(w, err)
		return
	}

	response.WriteSuccess(w, &color)
}

func (h *ColorHandler) HandleDelete(w http.ResponseWriter, r *http.Request, id string) {
	if err := h.colors.Delete(r.Context(), id); err != nil {
		response.WriteDomainError(w, err)
		return
	}

	h.log.Info("Color deleted", "color_id", id)
	response.WriteSuccess(w, map[string]string{"deleted": id})
}
