package handlers

import (
	"net/http"

	"go.uber.org/zap"

	"fleetgrid/internal/metrics"
	"fleetgrid/internal/service"
)

// AnalyticsHandler serves the vehicle performance query.
type AnalyticsHandler struct {
	service *service.AnalyticsService
	logger  *zap.Logger
}

// NewAnalyticsHandler returns handler.
func NewAnalyticsHandler(service *service.AnalyticsService, logger *zap.Logger) *AnalyticsHandler {
	return &AnalyticsHandler{service: service, logger: logger}
}

// ServeHTTP handles GET /v1/analytics/performance/{vehicleId}.
func (h *AnalyticsHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	vehicleID := r.PathValue("vehicleId")

	report, err := h.service.VehiclePerformance(r.Context(), vehicleID)
	if err != nil {
		metrics.CountPerformanceQuery("error")
		h.logger.Error("failed to compute vehicle performance",
			zap.String("vehicle_id", vehicleID),
			zap.Error(err),
		)
		writeError(w, http.StatusInternalServerError, "failed to compute performance")
		return
	}
	if report == nil {
		metrics.CountPerformanceQuery("not_linked")
		writeError(w, http.StatusNotFound, "Vehicle not linked to a meter")
		return
	}

	metrics.CountPerformanceQuery("ok")
	writeJSON(w, http.StatusOK, report)
}
