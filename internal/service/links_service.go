package service

import (
	"context"

	"go.uber.org/zap"

	"fleetgrid/internal/models"
	"fleetgrid/internal/repository"
)

// LinksService manages the vehicle to meter mapping registry.
type LinksService struct {
	links  *repository.LinkRepository
	logger *zap.Logger
}

// NewLinksService builds service.
func NewLinksService(links *repository.LinkRepository, logger *zap.Logger) *LinksService {
	return &LinksService{links: links, logger: logger}
}

// UpsertLink creates or replaces the mapping for a vehicle.
func (s *LinksService) UpsertLink(ctx context.Context, vehicleID, meterID string) (*models.Link, error) {
	link, err := s.links.Upsert(ctx, vehicleID, meterID)
	if err != nil {
		return nil, err
	}
	s.logger.Info("link saved",
		zap.String("vehicle_id", link.VehicleID),
		zap.String("meter_id", link.MeterID),
	)
	return link, nil
}

// GetLink returns the mapping for a vehicle, repository.ErrLinkNotFound when absent.
func (s *LinksService) GetLink(ctx context.Context, vehicleID string) (*models.Link, error) {
	return s.links.Get(ctx, vehicleID)
}

// ListLinks returns all mappings ordered by vehicle id.
func (s *LinksService) ListLinks(ctx context.Context) ([]models.Link, error) {
	return s.links.List(ctx)
}
