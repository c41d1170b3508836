package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/overdrive-dev/garage16-visit-scheduler/internal/core/domain"
	"github.com/overdrive-dev/garage16-visit-scheduler/internal/core/ports/out"
)

type ListingService struct {
	storePort out.StorePort
	logger    out.LoggerPort
}

func NewListingService(storePort out.StorePort, logger out.LoggerPort) *ListingService {
	return &ListingService{
		storePort: storePort,
		logger:    logger.WithModule("ListingService"),
	}
}

func (s *ListingService) CreateListing(ctx context.Context, listing *domain.VehicleListing) (*domain.VehicleListing, error) {
	listing.ID = uuid.New()
	listing.Status = domain.ListingStatusDraft
	listing.CreatedAt = time.Now()
	listing.UpdatedAt = listing.CreatedAt

	if err := s.storePort.CreateListing(ctx, listing); err != nil {
		s.logger.Error("listing.create.store_failed", out.LogFields{
			"sellerId": listing.SellerID,
			"error":    err.Error(),
		})
		return nil, err
	}

	s.logger.Info("listing.create.success", out.LogFields{
		"listingId": listing.ID,
		"sellerId":  listing.SellerID,
	})

	return listing, nil
}

func (s *ListingService) GetListing(ctx context.Context, listingID uuid.UUID) (*domain.VehicleListing, error) {
	return s.storePort.GetListing(ctx, listingID)
}

func (s *ListingService) SellerListings(ctx context.Context, sellerID string) ([]domain.VehicleListing, error) {
	return s.storePort.GetSellerListings(ctx, sellerID)
}

func (s *ListingService) UpdateListing(ctx context.Context, listing *domain.VehicleListing) (*domain.VehicleListing, error) {
	current, err := s.storePort.GetListing(ctx, listing.ID)
	if err != nil {
		return nil, err
	}

	// Статус меняется только через ChangeListingStatus
	listing.Status = current.Status
	listing.CreatedAt = current.CreatedAt
	listing.UpdatedAt = time.Now()

	if err := s.storePort.UpdateListing(ctx, listing); err != nil {
		s.logger.Error("listing.update.store_failed", out.LogFields{
			"listingId": listing.ID,
			"error":     err.Error(),
		})
		return nil, err
	}

	return listing, nil
}

func (s *ListingService) ChangeListingStatus(ctx context.Context, listingID uuid.UUID, to domain.ListingStatus) (*domain.VehicleListing, error) {
	listing, err := s.storePort.GetListing(ctx, listingID)
	if err != nil {
		return nil, err
	}

	if !listing.Status.CanTransition(to) {
		s.logger.Warn("listing.status.rejected", out.LogFields{
			"listingId": listingID,
			"from":      listing.Status,
			"to":        to,
		})
		return nil, fmt.Errorf("invalid listing status change: %s -> %s", listing.Status, to)
	}

	listing.Status = to
	listing.UpdatedAt = time.Now()

	if err := s.storePort.UpdateListing(ctx, listing); err != nil {
		return nil, err
	}

	s.logger.Info("listing.status.changed", out.LogFields{
		"listingId": listingID,
		"status":    to,
	})

	return listing, nil
}
