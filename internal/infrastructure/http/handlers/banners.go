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

type BannerHandler struct {
	banners ports.BannerRepository
	clock   clock.Clock
	log     *logger.Logger
}

func NewBannerHandler(banners ports.BannerRepository, clk clock.Clock, log *logger.Logger) *BannerHandler {
	return &BannerHandler{
		banners: banners,
		clock:   clk,
		log:     log,
	}
}

// HandleListActive is the public carousel feed.
func (h *BannerHandler) HandleListActive(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	banners, err := h.banners.ListActive(r.Context())
	if err != nil {
		h.log.Error("Failed to list banners", "error", err.Error())
		response.WriteDomainError(w, err)
		return
	}
	if banners == nil {
		banners = []*catalog.Banner{}
	}

	response.WriteSuccess(w, banners)
}

func (h *BannerHandler) HandleListAll(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	banners, err := h.banners.ListAll(r.Context())
	if err != nil {
		response.WriteDomainError(w, err)
		return
	}
	if banners == nil {
		banners = []*catalog.Banner{}
	}

	response.WriteSuccess(w, banners)
}

func (h *BannerHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	var banner catalog.Banner
	if err := json.NewDecoder(r.Body).Decode(&banner); err != nil {
		response.WriteError(w, http.StatusBadRequest, response.StatusError, "Invalid request body")
		return
	}

	if err := banner.Validate(); err != nil {
		response.WriteError(w, http.StatusBadRequest, response.StatusValidationError, err.Error())
		return
	}

	now := h.clock.Now()
	banner.ID = generator.NewEntityID()
	banner.CreatedAt = now
	banner.UpdatedAt = now

	if err := h.banners.Create(r.Context(), &banner); err != nil {
		h.log.Error("Failed to create banner", "error", err.Error())
		response.WriteDomainError(w, err)
		return
	}

	h.log.Info("Banner created", "banner_id", banner.ID, "title", banner.Title)
	response.WriteJSON(w, http.StatusCreated, response.Success(&banner))
}

func (h *BannerHandler) HandleUpdate(w http.ResponseWriter, r *http.Request, id string) {
	var banner catalog.Banner
	if err := json.NewDecoder(r.Body).Decode(&banner); err != nil {
		response.WriteError(w, http.StatusBadRequest, response.StatusError, "Invalid request body")
		return
	}

	if err := banner.Validate(); err != nil {
		response.WriteError(w, http.StatusBadRequest, response.StatusValidationError, err.Error())
		return
	}

	existing, err := h.banners.GetByID(r.Context(), id)
	if err != nil {
		response.WriteDomainError(w, err)
		return
	}

	banner.ID = id
	banner.CreatedAt = existing.CreatedAt
	banner.UpdatedAt = h.clock.Now()

	if err := h.banners.Update(r.Context(), &banner); err != nil {
		response.WriteDomainError(w, err)
		return
	}

	response.WriteSuccess(w, &banner)
}

func (h *BannerHandler) HandleDelete(w http.ResponseWriter, r *http.Request, id string) {
	if err := h.banners.Delete(r.Context(), id); err != nil {
		response.WriteDomainError(w, err)
		return
	}

	h.log.Info("Banner deleted", "banner_id", id)
	response.WriteSuccess(w, map[string]string{"deleted": id})
}
