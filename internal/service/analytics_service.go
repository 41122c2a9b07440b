package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"fleetgrid/internal/models"
	"fleetgrid/internal/repository"
)

// Trailing window evaluated relative to query time; fixed policy, not configurable.
const (
	performanceWindow      = 24 * time.Hour
	performanceWindowLabel = "24h"
)

// AnalyticsService answers the windowed vehicle/meter correlation query.
type AnalyticsService struct {
	links    *repository.LinkRepository
	meters   *repository.MeterHistoryRepository
	vehicles *repository.VehicleHistoryRepository
	logger   *zap.Logger
}

// NewAnalyticsService builds service.
func NewAnalyticsService(
	links *repository.LinkRepository,
	meters *repository.MeterHistoryRepository,
	vehicles *repository.VehicleHistoryRepository,
	logger *zap.Logger,
) *AnalyticsService {
	return &AnalyticsService{
		links:    links,
		meters:   meters,
		vehicles: vehicles,
		logger:   logger,
	}
}

// VehiclePerformance correlates the vehicle's DC delivery with its linked
// meter's AC consumption over the trailing 24h window. Returns (nil, nil)
// when the vehicle has no meter mapping; that is a domain condition, not an
// error, and distinct from a linked vehicle with empty aggregates.
func (s *AnalyticsService) VehiclePerformance(ctx context.Context, vehicleID string) (*models.PerformanceReport, error) {
	link, err := s.links.Get(ctx, vehicleID)
	if errors.Is(err, repository.ErrLinkNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("resolve link: %w", err)
	}

	since := time.Now().UTC().Add(-performanceWindow)

	totalDC, avgTemp, err := s.vehicles.DeliveredSince(ctx, vehicleID, since)
	if err != nil {
		return nil, fmt.Errorf("vehicle window aggregate: %w", err)
	}

	totalAC, err := s.meters.TotalConsumedSince(ctx, link.MeterID, since)
	if err != nil {
		return nil, fmt.Errorf("meter window aggregate: %w", err)
	}

	// An all-zero consumption window has no defined efficiency; report 0
	// rather than dividing by zero.
	ratio := 0.0
	if totalAC != 0 {
		ratio = totalDC / totalAC
	}

	return &models.PerformanceReport{
		VehicleID:        vehicleID,
		MeterID:          link.MeterID,
		Window:           performanceWindowLabel,
		TotalACConsumed:  totalAC,
		TotalDCDelivered: totalDC,
		EfficiencyRatio:  ratio,
		AvgBatteryTemp:   avgTemp,
	}, nil
}
