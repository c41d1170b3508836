package domain

import (
	"time"

	"github.com/google/uuid"
)

type ListingStatus string

const (
	ListingStatusDraft     ListingStatus = "draft"
	ListingStatusPublished ListingStatus = "published"
	ListingStatusPaused    ListingStatus = "paused"
	ListingStatusSold      ListingStatus = "sold"
)

// Переходы статусов объявления. sold терминальный.
var listingTransitions = map[ListingStatus][]ListingStatus{
	ListingStatusDraft:     {ListingStatusPublished},
	ListingStatusPublished: {ListingStatusPaused, ListingStatusSold},
	ListingStatusPaused:    {ListingStatusPublished, ListingStatusSold},
}

func (s ListingStatus) CanTransition(to ListingStatus) bool {
	for _, allowed := range listingTransitions[s] {
		if allowed == to {
			return true
		}
	}
	return false
}

// VehicleListing - объявление о продаже автомобиля.
// Визиты можно назначать только на опубликованные объявления.
type VehicleListing struct {
	ID         uuid.UUID     `json:"id"`
	SellerID   string        `json:"sellerId"`
	Title      string        `json:"title"`
	Brand      string        `json:"brand"`
	Model      string        `json:"model"`
	Year       int           `json:"year"`
	PriceCents int64         `json:"priceCents"`
	Status     ListingStatus `json:"status"`
	CreatedAt  time.Time     `json:"createdAt"`
	UpdatedAt  time.Time     `json:"updatedAt"`
}

func (l *VehicleListing) IsBookable() bool {
	return l.Status == ListingStatusPublished
}
