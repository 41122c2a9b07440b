package validation

import (
	"errors"
	"math"
	"strings"
	"time"

	"fleetgrid/internal/models"
)

// PayloadType discriminates the two reading variants sharing one endpoint.
type PayloadType string

// Known payload types.
const (
	PayloadMeter   PayloadType = "meter"
	PayloadVehicle PayloadType = "vehicle"
)

// ErrUnknownPayload is returned when neither discriminator field is present.
var ErrUnknownPayload = errors.New("unknown telemetry type, payload must include meterId or vehicleId")

// DetectPayloadType probes the discriminator field of a raw telemetry body.
// meterId wins when both are present.
func DetectPayloadType(body map[string]any) (PayloadType, error) {
	if body == nil {
		return "", errors.New("request body must be a JSON object")
	}
	if present(body, "meterId") {
		return PayloadMeter, nil
	}
	if present(body, "vehicleId") {
		return PayloadVehicle, nil
	}
	return "", ErrUnknownPayload
}

// ValidateMeterPayload checks a raw meter body and returns the typed reading,
// or the full list of violated constraints.
func ValidateMeterPayload(body map[string]any) (models.MeterReading, []string) {
	var violations []string

	meterID, ok := stringField(body, "meterId")
	if !ok || strings.TrimSpace(meterID) == "" {
		violations = append(violations, "meterId must be a non-empty string")
	}

	kwh, ok := numberField(body, "kwhConsumedAc")
	if !ok || kwh < 0 {
		violations = append(violations, "kwhConsumedAc must be a non-negative number")
	}

	voltage, ok := numberField(body, "voltage")
	if !ok || voltage <= 0 {
		violations = append(violations, "voltage must be a positive number")
	}

	ts, ok := timestampField(body, "timestamp")
	if !ok {
		violations = append(violations, "timestamp must be a valid RFC 3339 datetime string")
	}

	if len(violations) > 0 {
		return models.MeterReading{}, violations
	}

	return models.MeterReading{
		MeterID:       strings.TrimSpace(meterID),
		KWhConsumedAC: kwh,
		Voltage:       voltage,
		Timestamp:     ts.UTC(),
	}, nil
}

// ValidateVehiclePayload checks a raw vehicle body and returns the typed
// reading, or the full list of violated constraints.
func ValidateVehiclePayload(body map[string]any) (models.VehicleReading, []string) {
	var violations []string

	vehicleID, ok := stringField(body, "vehicleId")
	if !ok || strings.TrimSpace(vehicleID) == "" {
		violations = append(violations, "vehicleId must be a non-empty string")
	}

	soc, ok := numberField(body, "soc")
	if !ok || soc != math.Trunc(soc) || soc < 0 || soc > 100 {
		violations = append(violations, "soc must be an integer between 0 and 100")
	}

	kwh, ok := numberField(body, "kwhDeliveredDc")
	if !ok || kwh < 0 {
		violations = append(violations, "kwhDeliveredDc must be a non-negative number")
	}

	temp, ok := numberField(body, "batteryTemp")
	if !ok {
		violations = append(violations, "batteryTemp must be a number")
	}

	ts, ok := timestampField(body, "timestamp")
	if !ok {
		violations = append(violations, "timestamp must be a valid RFC 3339 datetime string")
	}

	if len(violations) > 0 {
		return models.VehicleReading{}, violations
	}

	return models.VehicleReading{
		VehicleID:      strings.TrimSpace(vehicleID),
		SOC:            int(soc),
		KWhDeliveredDC: kwh,
		BatteryTemp:    temp,
		Timestamp:      ts.UTC(),
	}, nil
}

func present(body map[string]any, key string) bool {
	value, ok := body[key]
	if !ok || value == nil {
		return false
	}
	if s, isString := value.(string); isString && s == "" {
		return false
	}
	return true
}

func stringField(body map[string]any, key string) (string, bool) {
	value, ok := body[key].(string)
	return value, ok
}

func numberField(body map[string]any, key string) (float64, bool) {
	value, ok := body[key].(float64)
	return value, ok
}

func timestampField(body map[string]any, key string) (time.Time, bool) {
	raw, ok := body[key].(string)
	if !ok {
		return time.Time{}, false
	}
	ts, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return time.Time{}, false
	}
	return ts, true
}
