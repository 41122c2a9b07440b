package repository

import (
	"context"
	"database/sql"
	"errors"

	"fleetgrid/internal/models"
)

// ErrLinkNotFound indicates the vehicle has no meter mapping.
var ErrLinkNotFound = errors.New("link not found")

// LinkRepository persists vehicle to meter mappings.
type LinkRepository struct {
	db *sql.DB
}

// NewLinkRepository returns repository.
func NewLinkRepository(db *sql.DB) *LinkRepository {
	return &LinkRepository{db: db}
}

// Upsert creates the mapping or replaces the meter for an already linked vehicle.
func (r *LinkRepository) Upsert(ctx context.Context, vehicleID, meterID string) (*models.Link, error) {
	const query = `
		INSERT INTO fleet_links (vehicle_id, meter_id)
		VALUES ($1, $2)
		ON CONFLICT (vehicle_id) DO UPDATE SET meter_id = EXCLUDED.meter_id
		RETURNING vehicle_id, meter_id
	`
	var link models.Link
	err := r.db.QueryRowContext(ctx, query, vehicleID, meterID).Scan(&link.VehicleID, &link.MeterID)
	if err != nil {
		return nil, err
	}
	return &link, nil
}

// Get returns the mapping for a vehicle.
func (r *LinkRepository) Get(ctx context.Context, vehicleID string) (*models.Link, error) {
	const query = `
		SELECT vehicle_id, meter_id
		FROM fleet_links
		WHERE vehicle_id = $1
	`
	var link models.Link
	err := r.db.QueryRowContext(ctx, query, vehicleID).Scan(&link.VehicleID, &link.MeterID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrLinkNotFound
	}
	if err != nil {
		return nil, err
	}
	return &link, nil
}

// List returns all mappings ordered by vehicle id.
func (r *LinkRepository) List(ctx context.Context) ([]models.Link, error) {
	const query = `
		SELECT vehicle_id, meter_id
		FROM fleet_links
		ORDER BY vehicle_id ASC
	`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var links []models.Link
	for rows.Next() {
		var link models.Link
		if err := rows.Scan(&link.VehicleID, &link.MeterID); err != nil {
			return nil, err
		}
		links = append(links, link)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return links, nil
}
