package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"fleetgrid/internal/metrics"
	"fleetgrid/internal/service"
	"fleetgrid/internal/validation"
)

// TelemetryHandler ingests polymorphic meter/vehicle readings.
type TelemetryHandler struct {
	service *service.TelemetryService
	logger  *zap.Logger
}

// NewTelemetryHandler returns handler.
func NewTelemetryHandler(service *service.TelemetryService, logger *zap.Logger) *TelemetryHandler {
	return &TelemetryHandler{service: service, logger: logger}
}

// ServeHTTP handles POST /v1/telemetry. Validation runs before any store
// write; a rejected payload leaves no row behind.
func (h *TelemetryHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var body map[string]any
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		metrics.CountRejected()
		writeInvalidPayload(w, "request body must be a JSON object")
		return
	}

	payloadType, err := validation.DetectPayloadType(body)
	if err != nil {
		metrics.CountRejected()
		writeInvalidPayload(w, err.Error())
		return
	}

	switch payloadType {
	case validation.PayloadMeter:
		reading, violations := validation.ValidateMeterPayload(body)
		if len(violations) > 0 {
			metrics.CountRejected()
			writeInvalidPayload(w, strings.Join(violations, ", "))
			return
		}
		if err := h.service.IngestMeter(r.Context(), reading); err != nil {
			h.logger.Error("failed to ingest meter reading", zap.Error(err))
			writeError(w, http.StatusInternalServerError, "failed to store telemetry")
			return
		}
	case validation.PayloadVehicle:
		reading, violations := validation.ValidateVehiclePayload(body)
		if len(violations) > 0 {
			metrics.CountRejected()
			writeInvalidPayload(w, strings.Join(violations, ", "))
			return
		}
		if err := h.service.IngestVehicle(r.Context(), reading); err != nil {
			h.logger.Error("failed to ingest vehicle reading", zap.Error(err))
			writeError(w, http.StatusInternalServerError, "failed to store telemetry")
			return
		}
	}

	metrics.CountIngested(string(payloadType))
	writeJSON(w, http.StatusAccepted, map[string]string{
		"status": "accepted",
		"type":   string(payloadType),
	})
}
