package validation

import (
	"strings"

	"fleetgrid/internal/models"
)

// ValidateLinkPayload checks a raw link body and returns the typed mapping,
// or the full list of violated constraints.
func ValidateLinkPayload(body map[string]any) (models.Link, []string) {
	var violations []string

	vehicleID, ok := stringField(body, "vehicleId")
	if !ok || strings.TrimSpace(vehicleID) == "" {
		violations = append(violations, "vehicleId must be a non-empty string")
	}

	meterID, ok := stringField(body, "meterId")
	if !ok || strings.TrimSpace(meterID) == "" {
		violations = append(violations, "meterId must be a non-empty string")
	}

	if len(violations) > 0 {
		return models.Link{}, violations
	}

	return models.Link{
		VehicleID: strings.TrimSpace(vehicleID),
		MeterID:   strings.TrimSpace(meterID),
	}, nil
}
