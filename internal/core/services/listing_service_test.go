package services

import (
	"context"
	"testing"

	"github.com/overdrive-dev/garage16-visit-scheduler/internal/core/domain"
)

func TestListingLifecycle(t *testing.T) {
	store := newFakeStore(allWeekSettings(t))
	svc := NewListingService(store, nopLogger{})

	listing, err := svc.CreateListing(context.Background(), &domain.VehicleListing{
		SellerID:   "seller-1",
		Title:      "Golf GTI 2019",
		Brand:      "Volkswagen",
		Model:      "Golf",
		Year:       2019,
		PriceCents: 12500000,
	})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if listing.Status != domain.ListingStatusDraft {
		t.Fatalf("new listing must start as draft, got %s", listing.Status)
	}

	published, err := svc.ChangeListingStatus(context.Background(), listing.ID, domain.ListingStatusPublished)
	if err != nil {
		t.Fatalf("publish failed: %v", err)
	}
	if !published.IsBookable() {
		t.Fatal("published listing must be bookable")
	}

	sold, err := svc.ChangeListingStatus(context.Background(), listing.ID, domain.ListingStatusSold)
	if err != nil {
		t.Fatalf("sell failed: %v", err)
	}
	if sold.IsBookable() {
		t.Fatal("sold listing must not be bookable")
	}

	// sold терминальный
	if _, err := svc.ChangeListingStatus(context.Background(), listing.ID, domain.ListingStatusPublished); err == nil {
		t.Fatal("expected error when republishing a sold listing")
	}
}

func TestUpdateListingKeepsStatus(t *testing.T) {
	store := newFakeStore(allWeekSettings(t))
	svc := NewListingService(store, nopLogger{})

	listing, err := svc.CreateListing(context.Background(), &domain.VehicleListing{
		SellerID: "seller-1",
		Title:    "Corolla XEi 2021",
	})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if _, err := svc.ChangeListingStatus(context.Background(), listing.ID, domain.ListingStatusPublished); err != nil {
		t.Fatalf("publish failed: %v", err)
	}

	updated, err := svc.UpdateListing(context.Background(), &domain.VehicleListing{
		ID:       listing.ID,
		SellerID: "seller-1",
		Title:    "Corolla XEi 2021 (novo preço)",
		Status:   domain.ListingStatusSold, // попытка сменить статус через update
	})
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if updated.Status != domain.ListingStatusPublished {
		t.Fatalf("update must not change status, got %s", updated.Status)
	}
}
