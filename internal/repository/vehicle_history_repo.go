package repository

import (
	"context"
	"database/sql"
	"time"

	"fleetgrid/internal/models"
)

// VehicleHistoryRepository persists vehicle readings in the append-only history table.
type VehicleHistoryRepository struct {
	db *sql.DB
}

// NewVehicleHistoryRepository returns repository.
func NewVehicleHistoryRepository(db *sql.DB) *VehicleHistoryRepository {
	return &VehicleHistoryRepository{db: db}
}

// Insert appends a reading. A duplicate (vehicle_id, ts) key is a silent no-op.
func (r *VehicleHistoryRepository) Insert(ctx context.Context, reading *models.VehicleReading) error {
	const query = `
		INSERT INTO vehicle_telemetry (vehicle_id, soc, kwh_delivered_dc, battery_temp, ts, created_at)
		VALUES ($1, $2, $3, $4, $5, NOW())
		ON CONFLICT (vehicle_id, ts) DO NOTHING
	`
	_, err := r.db.ExecContext(ctx, query,
		reading.VehicleID,
		reading.SOC,
		reading.KWhDeliveredDC,
		reading.BatteryTemp,
		reading.Timestamp,
	)
	return err
}

// DeliveredSince returns summed DC delivery and average battery temperature
// for readings at or after since. The lower bound is inclusive. An empty
// window yields 0 for both aggregates.
func (r *VehicleHistoryRepository) DeliveredSince(ctx context.Context, vehicleID string, since time.Time) (float64, float64, error) {
	const query = `
		SELECT COALESCE(SUM(kwh_delivered_dc), 0), COALESCE(AVG(battery_temp), 0)
		FROM vehicle_telemetry
		WHERE vehicle_id = $1 AND ts >= $2
	`
	var (
		totalDC float64
		avgTemp float64
	)
	if err := r.db.QueryRowContext(ctx, query, vehicleID, since).Scan(&totalDC, &avgTemp); err != nil {
		return 0, 0, err
	}
	return totalDC, avgTemp, nil
}
