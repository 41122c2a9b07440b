package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"fleetgrid/internal/models"
	"fleetgrid/internal/repository"
	"fleetgrid/internal/service"
	"fleetgrid/internal/validation"
)

// LinksHandler exposes the vehicle to meter mapping registry.
type LinksHandler struct {
	service *service.LinksService
	logger  *zap.Logger
}

// NewLinksHandler returns handler.
func NewLinksHandler(service *service.LinksService, logger *zap.Logger) *LinksHandler {
	return &LinksHandler{service: service, logger: logger}
}

// Create handles POST /v1/links.
func (h *LinksHandler) Create(w http.ResponseWriter, r *http.Request) {
	var body map[string]any
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeInvalidPayload(w, "request body must be a JSON object")
		return
	}

	link, violations := validation.ValidateLinkPayload(body)
	if len(violations) > 0 {
		writeInvalidPayload(w, strings.Join(violations, ", "))
		return
	}

	saved, err := h.service.UpsertLink(r.Context(), link.VehicleID, link.MeterID)
	if err != nil {
		h.logger.Error("failed to upsert link", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "failed to save link")
		return
	}

	writeJSON(w, http.StatusCreated, map[string]string{
		"message":   "Link saved",
		"vehicleId": saved.VehicleID,
		"meterId":   saved.MeterID,
	})
}

// Get handles GET /v1/links/{vehicleId}.
func (h *LinksHandler) Get(w http.ResponseWriter, r *http.Request) {
	vehicleID := r.PathValue("vehicleId")

	link, err := h.service.GetLink(r.Context(), vehicleID)
	if errors.Is(err, repository.ErrLinkNotFound) {
		writeError(w, http.StatusNotFound, "Link not found")
		return
	}
	if err != nil {
		h.logger.Error("failed to get link", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "failed to get link")
		return
	}

	writeJSON(w, http.StatusOK, link)
}

// List handles GET /v1/links.
func (h *LinksHandler) List(w http.ResponseWriter, r *http.Request) {
	links, err := h.service.ListLinks(r.Context())
	if err != nil {
		h.logger.Error("failed to list links", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "failed to list links")
		return
	}
	if links == nil {
		links = []models.Link{}
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"count": len(links),
		"links": links,
	})
}
