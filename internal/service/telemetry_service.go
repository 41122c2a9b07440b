package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"fleetgrid/internal/models"
	redisstore "fleetgrid/internal/redis"
	"fleetgrid/internal/repository"
)

// LiveStatusWriter is the hot-state sink for ingested readings.
type LiveStatusWriter interface {
	SaveMeter(ctx context.Context, status redisstore.MeterLiveStatus) error
	SaveVehicle(ctx context.Context, status redisstore.VehicleLiveStatus) error
}

// TelemetryService is the sole writer path for history and live status.
//
// Each ingest performs two sub-operations without a cross-store transaction:
// the history append is a no-op on a duplicate (device id, ts) key and the
// live overwrite always produces the same result for the same input, so a
// caller retry after a crash between the two converges.
type TelemetryService struct {
	meters   *repository.MeterHistoryRepository
	vehicles *repository.VehicleHistoryRepository
	live     LiveStatusWriter
	logger   *zap.Logger
}

// NewTelemetryService returns service instance.
func NewTelemetryService(
	meters *repository.MeterHistoryRepository,
	vehicles *repository.VehicleHistoryRepository,
	live LiveStatusWriter,
	logger *zap.Logger,
) *TelemetryService {
	return &TelemetryService{
		meters:   meters,
		vehicles: vehicles,
		live:     live,
		logger:   logger,
	}
}

// IngestMeter records a validated meter reading in history and live status.
func (s *TelemetryService) IngestMeter(ctx context.Context, reading models.MeterReading) error {
	reading.Timestamp = reading.Timestamp.UTC()

	if err := s.meters.Insert(ctx, &reading); err != nil {
		return fmt.Errorf("meter history append: %w", err)
	}

	status := redisstore.MeterLiveStatus{
		MeterID:       reading.MeterID,
		KWhConsumedAC: reading.KWhConsumedAC,
		Voltage:       reading.Voltage,
		LastSeen:      reading.Timestamp,
	}
	if err := s.live.SaveMeter(ctx, status); err != nil {
		return fmt.Errorf("meter live status: %w", err)
	}

	s.logger.Debug("meter reading ingested",
		zap.String("meter_id", reading.MeterID),
		zap.Time("ts", reading.Timestamp),
	)
	return nil
}

// IngestVehicle records a validated vehicle reading in history and live status.
func (s *TelemetryService) IngestVehicle(ctx context.Context, reading models.VehicleReading) error {
	reading.Timestamp = reading.Timestamp.UTC()

	if err := s.vehicles.Insert(ctx, &reading); err != nil {
		return fmt.Errorf("vehicle history append: %w", err)
	}

	status := redisstore.VehicleLiveStatus{
		VehicleID:      reading.VehicleID,
		SOC:            reading.SOC,
		KWhDeliveredDC: reading.KWhDeliveredDC,
		BatteryTemp:    reading.BatteryTemp,
		LastSeen:       reading.Timestamp,
	}
	if err := s.live.SaveVehicle(ctx, status); err != nil {
		return fmt.Errorf("vehicle live status: %w", err)
	}

	s.logger.Debug("vehicle reading ingested",
		zap.String("vehicle_id", reading.VehicleID),
		zap.Time("ts", reading.Timestamp),
	)
	return nil
}
