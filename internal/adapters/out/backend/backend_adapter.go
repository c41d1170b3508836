package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	nurl "net/url"
	"time"

	"github.com/google/uuid"
	"github.com/overdrive-dev/garage16-visit-scheduler/internal/config"
	"github.com/overdrive-dev/garage16-visit-scheduler/internal/core/domain"
	"github.com/overdrive-dev/garage16-visit-scheduler/internal/core/ports/out"
	"github.com/overdrive-dev/garage16-visit-scheduler/internal/utils"
)

// BundleResponse - конверт списочных ответов документного бэкенда
type BundleResponse struct {
	Entry []struct {
		Resource json.RawMessage `json:"resource"`
	} `json:"entry"`
}

type BackendAdapter struct {
	client   *http.Client
	baseURL  string
	username string
	password string
	logger   out.LoggerPort
}

func NewBackendAdapter(cfg *config.Config, logger out.LoggerPort) *BackendAdapter {
	return &BackendAdapter{
		client:   &http.Client{Timeout: 10 * time.Second},
		baseURL:  cfg.Backend.URL,
		username: cfg.Backend.Username,
		password: cfg.Backend.Password,
		logger:   logger,
	}
}

func (a *BackendAdapter) GetStoreSettings(ctx context.Context) (*domain.StoreSettings, error) {
	a.logger.Info("backend.store_settings.fetch", out.LogFields{})

	url := fmt.Sprintf("%s/StoreSettings", a.baseURL)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}

	query := nurl.Values{}
	query.Add("count", "1")
	req.URL.RawQuery = query.Encode()
	req.SetBasicAuth(a.username, a.password)

	resp, err := a.client.Do(req)
	if err != nil {
		a.logger.Error("backend.store_settings.fetch_failed", out.LogFields{
			"error": err.Error(),
		})
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		a.logger.Error("backend.store_settings.fetch_failed", out.LogFields{
			"status": resp.StatusCode,
		})
		return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	var bundle BundleResponse
	if err := json.NewDecoder(resp.Body).Decode(&bundle); err != nil {
		a.logger.Error("backend.store_settings.decode_response_failed", out.LogFields{
			"error": err.Error(),
		})
		return nil, err
	}

	if len(bundle.Entry) == 0 {
		a.logger.Error("backend.store_settings.no_entry", out.LogFields{})
		return nil, fmt.Errorf("no active store settings record")
	}

	var settings domain.StoreSettings
	if err := json.Unmarshal(bundle.Entry[0].Resource, &settings); err != nil {
		a.logger.Error("backend.store_settings.decode_resource_failed", out.LogFields{
			"error": err.Error(),
		})
		return nil, err
	}

	a.logger.Debug("backend.store_settings.fetch_success", out.LogFields{
		"id": settings.ID,
	})

	return &settings, nil
}

func (a *BackendAdapter) GetAvailabilityConfig(ctx context.Context, sellerID string) (*domain.AvailabilityConfig, error) {
	a.logger.Info("backend.availability_config.fetch", out.LogFields{
		"sellerId": sellerID,
	})

	url := fmt.Sprintf("%s/AvailabilityConfig/%s", a.baseURL, nurl.PathEscape(sellerID))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}

	req.SetBasicAuth(a.username, a.password)

	resp, err := a.client.Do(req)
	if err != nil {
		a.logger.Error("backend.availability_config.fetch_failed", out.LogFields{
			"sellerId": sellerID,
			"error":    err.Error(),
		})
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		a.logger.Error("backend.availability_config.fetch_failed", out.LogFields{
			"sellerId": sellerID,
			"status":   resp.StatusCode,
		})
		return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	var availabilityConfig domain.AvailabilityConfig
	if err := json.NewDecoder(resp.Body).Decode(&availabilityConfig); err != nil {
		a.logger.Error("backend.availability_config.decode_failed", out.LogFields{
			"sellerId": sellerID,
			"error":    err.Error(),
		})
		return nil, err
	}

	a.logger.Debug("backend.availability_config.fetch_success", out.LogFields{
		"sellerId": sellerID,
		"mode":     availabilityConfig.Mode,
	})

	return &availabilityConfig, nil
}

func (a *BackendAdapter) GetSellerAppointments(ctx context.Context, sellerID string, date time.Time) ([]domain.Appointment, error) {
	a.logger.Info("backend.appointments.fetch", out.LogFields{
		"sellerId": sellerID,
		"date":     utils.DateKey(date),
	})

	url := fmt.Sprintf("%s/Appointment", a.baseURL)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}

	query := nurl.Values{}
	query.Add("seller", sellerID)
	query.Add("date", utils.DateKey(date))
	req.URL.RawQuery = query.Encode()

	req.SetBasicAuth(a.username, a.password)

	resp, err := a.client.Do(req)
	if err != nil {
		a.logger.Error("backend.appointments.fetch_failed", out.LogFields{
			"error": err.Error(),
		})
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		a.logger.Error("backend.appointments.fetch_failed", out.LogFields{
			"status": resp.StatusCode,
		})
		return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	var bundle BundleResponse
	if err := json.NewDecoder(resp.Body).Decode(&bundle); err != nil {
		a.logger.Error("backend.appointments.decode_response_failed", out.LogFields{
			"error": err.Error(),
		})
		return nil, err
	}

	var appointments []domain.Appointment
	for _, entry := range bundle.Entry {
		var appointment domain.Appointment
		if err := json.Unmarshal(entry.Resource, &appointment); err != nil {
			a.logger.Error("backend.appointments.decode_resource_failed", out.LogFields{
				"error": err.Error(),
			})
			return nil, err
		}
		appointments = append(appointments, appointment)
	}

	a.logger.Debug("backend.appointments.fetch_success", out.LogFields{
		"count": len(appointments),
	})

	return appointments, nil
}

func (a *BackendAdapter) GetAppointmentByID(ctx context.Context, appointmentID uuid.UUID) (*domain.Appointment, error) {
	url := fmt.Sprintf("%s/Appointment/%s", a.baseURL, appointmentID)
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

	var appointment domain.Appointment
	if err := json.NewDecoder(resp.Body).Decode(&appointment); err != nil {
		return nil, err
	}

	return &appointment, nil
}

// CreateAppointment пишет визит через операцию $book.
// Бэкенд держит уникальность (sellerId, date, time) среди неотмененных
// визитов и на конфликте отвечает 409, который мапится в ErrSlotUnavailable.
func (a *BackendAdapter) CreateAppointment(ctx context.Context, appointment *domain.Appointment) error {
	a.logger.Info("backend.appointment.book", out.LogFields{
		"appointmentId": appointment.ID,
		"sellerId":      appointment.SellerID,
		"date":          appointment.Date.Key(),
		"time":          appointment.Time.String(),
	})

	body, err := json.Marshal(appointment)
	if err != nil {
		return err
	}

	url := fmt.Sprintf("%s/Appointment/$book", a.baseURL)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return err
	}

	req.Header.Set("Content-Type", "application/json")
	req.SetBasicAuth(a.username, a.password)

	resp, err := a.client.Do(req)
	if err != nil {
		a.logger.Error("backend.appointment.book_failed", out.LogFields{
			"error": err.Error(),
		})
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusConflict {
		a.logger.Warn("backend.appointment.book_conflict", out.LogFields{
			"sellerId": appointment.SellerID,
			"date":     appointment.Date.Key(),
			"time":     appointment.Time.String(),
		})
		return domain.ErrSlotUnavailable
	}

	if resp.StatusCode != http.StatusCreated && resp.StatusCode != http.StatusOK {
		a.logger.Error("backend.appointment.book_failed", out.LogFields{
			"status": resp.StatusCode,
		})
		return fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	return nil
}

func (a *BackendAdapter) UpdateAppointment(ctx context.Context, appointment *domain.Appointment) error {
	body, err := json.Marshal(appointment)
	if err != nil {
		return err
	}

	url := fmt.Sprintf("%s/Appointment/%s", a.baseURL, appointment.ID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPut, url, bytes.NewReader(body))
	if err != nil {
		return err
	}

	req.Header.Set("Content-Type", "application/json")
	req.SetBasicAuth(a.username, a.password)

	resp, err := a.client.Do(req)
	if err != nil {
		a.logger.Error("backend.appointment.update_failed", out.LogFields{
			"appointmentId": appointment.ID,
			"error":         err.Error(),
		})
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		a.logger.Error("backend.appointment.update_failed", out.LogFields{
			"appointmentId": appointment.ID,
			"status":        resp.StatusCode,
		})
		return fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	return nil
}
