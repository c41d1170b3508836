package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	nurl "net/url"

	"github.com/google/uuid"
	"github.com/overdrive-dev/garage16-visit-scheduler/internal/core/domain"
	"github.com/overdrive-dev/garage16-visit-scheduler/internal/core/ports/out"
)

// Методы для работы с объявлениями

func (a *BackendAdapter) GetListing(ctx context.Context, listingID uuid.UUID) (*domain.VehicleListing, error) {
	url := fmt.Sprintf("%s/VehicleListing/%s", a.baseURL, listingID)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}

	req.SetBasicAuth(a.username, a.password)

	resp, err := a.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	var listing domain.VehicleListing
	if err := json.NewDecoder(resp.Body).Decode(&listing); err != nil {
		return nil, err
	}

	return &listing, nil
}

func (a *BackendAdapter) GetSellerListings(ctx context.Context, sellerID string) ([]domain.VehicleListing, error) {
	a.logger.Info("backend.listings.fetch", out.LogFields{
		"sellerId": sellerID,
	})

	url := fmt.Sprintf("%s/VehicleListing", a.baseURL)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}

	query := nurl.Values{}
	query.Add("seller", sellerID)
	req.URL.RawQuery = query.Encode()

	req.SetBasicAuth(a.username, a.password)

	resp, err := a.client.Do(req)
	if err != nil {
		a.logger.Error("backend.listings.fetch_failed", out.LogFields{
			"error": err.Error(),
		})
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		a.logger.Error("backend.listings.fetch_failed", out.LogFields{
			"status": resp.StatusCode,
		})
		return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	var bundle BundleResponse
	if err := json.NewDecoder(resp.Body).Decode(&bundle); err != nil {
		return nil, err
	}

	var listings []domain.VehicleListing
	for _, entry := range bundle.Entry {
		var listing domain.VehicleListing
		if err := json.Unmarshal(entry.Resource, &listing); err != nil {
			a.logger.Error("backend.listings.decode_resource_failed", out.LogFields{
				"error": err.Error(),
			})
			return nil, err
		}
		listings = append(listings, listing)
	}

	return listings, nil
}

func (a *BackendAdapter) CreateListing(ctx context.Context, listing *domain.VehicleListing) error {
	return a.writeListing(ctx, http.MethodPost, fmt.Sprintf("%s/VehicleListing", a.baseURL), listing)
}

func (a *BackendAdapter) UpdateListing(ctx context.Context, listing *domain.VehicleListing) error {
	return a.writeListing(ctx, http.MethodPut, fmt.Sprintf("%s/VehicleListing/%s", a.baseURL, listing.ID), listing)
}

func (a *BackendAdapter) writeListing(ctx context.Context, method, url string, listing *domain.VehicleListing) error {
	body, err := json.Marshal(listing)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, method, url, bytes.NewReader(body))
	if err != nil {
		return err
	}

	req.Header.Set("Content-Type", "application/json")
	req.SetBasicAuth(a.username, a.password)

	resp, err := a.client.Do(req)
	if err != nil {
		a.logger.Error("backend.listing.write_failed", out.LogFields{
			"listingId": listing.ID,
			"error":     err.Error(),
		})
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		a.logger.Error("backend.listing.write_failed", out.LogFields{
			"listingId": listing.ID,
			"status":    resp.StatusCode,
		})
		return fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	return nil
}
