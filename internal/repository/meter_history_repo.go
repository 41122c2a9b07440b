package repository

import (
	"context"
	"database/sql"
	"time"

	"fleetgrid/internal/models"
)

// MeterHistoryRepository persists meter readings in the append-only history table.
type MeterHistoryRepository struct {
	db *sql.DB
}

// NewMeterHistoryRepository returns repository.
func NewMeterHistoryRepository(db *sql.DB) *MeterHistoryRepository {
	return &MeterHistoryRepository{db: db}
}

// Insert appends a reading. A duplicate (meter_id, ts) key is a silent no-op:
// the uniqueness constraint is the sole replay guard, there is no pre-check.
func (r *MeterHistoryRepository) Insert(ctx context.Context, reading *models.MeterReading) error {
	const query = `
		INSERT INTO meter_telemetry (meter_id, kwh_consumed_ac, voltage, ts, created_at)
		VALUES ($1, $2, $3, $4, NOW())
		ON CONFLICT (meter_id, ts) DO NOTHING
	`
	_, err := r.db.ExecContext(ctx, query,
		reading.MeterID,
		reading.KWhConsumedAC,
		reading.Voltage,
		reading.Timestamp,
	)
	return err
}

// TotalConsumedSince returns summed AC consumption for readings at or after
// since. The lower bound is inclusive. An empty window sums to 0.
func (r *MeterHistoryRepository) TotalConsumedSince(ctx context.Context, meterID string, since time.Time) (float64, error) {
	const query = `
		SELECT COALESCE(SUM(kwh_consumed_ac), 0)
		FROM meter_telemetry
		WHERE meter_id = $1 AND ts >= $2
	`
	var total float64
	if err := r.db.QueryRowContext(ctx, query, meterID, since).Scan(&total); err != nil {
		return 0, err
	}
	return total, nil
}
