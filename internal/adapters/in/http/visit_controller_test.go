package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/overdrive-dev/garage16-visit-scheduler/internal/config"
	"github.com/overdrive-dev/garage16-visit-scheduler/internal/core/domain"
	"github.com/overdrive-dev/garage16-visit-scheduler/internal/core/json_types"
	"github.com/overdrive-dev/garage16-visit-scheduler/internal/core/ports/out"
	"github.com/overdrive-dev/garage16-visit-scheduler/internal/utils"
)

type nopLogger struct{}

func (l nopLogger) Debug(event string, fields out.LogFields) {}
func (l nopLogger) Info(event string, fields out.LogFields)  {}
func (l nopLogger) Warn(event string, fields out.LogFields)  {}
func (l nopLogger) Error(event string, fields out.LogFields) {}

func (l nopLogger) WithFields(fields out.LogFields) out.LoggerPort { return l }
func (l nopLogger) WithModule(module string) out.LoggerPort        { return l }

// fakeScheduler отдает заранее заданные слоты и записывает вызовы
type fakeScheduler struct {
	slots      []json_types.ClockTime
	slotsErr   error
	created    *domain.Appointment
	createErr  error
	transition *domain.Appointment
}

func (f *fakeScheduler) AvailableSlots(ctx context.Context, sellerID string, date time.Time) ([]json_types.ClockTime, error) {
	return f.slots, f.slotsErr
}

func (f *fakeScheduler) AvailableSlotsRange(ctx context.Context, sellerID string, startDate, endDate time.Time) (map[string][]json_types.ClockTime, error) {
	return map[string][]json_types.ClockTime{utils.DateKey(startDate): f.slots}, f.slotsErr
}

func (f *fakeScheduler) CreateAppointment(ctx context.Context, vehicleID uuid.UUID, buyerID, sellerID string, date time.Time, slot json_types.ClockTime) (*domain.Appointment, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	return f.created, nil
}

func (f *fakeScheduler) TransitionAppointment(ctx context.Context, appointmentID uuid.UUID, to domain.AppointmentStatus, reason string) (*domain.Appointment, error) {
	return f.transition, nil
}

func (f *fakeScheduler) InvalidateSellerCache(ctx context.Context, sellerID string) {}
func (f *fakeScheduler) InvalidateStoreSettingsCache(ctx context.Context)           {}
func (f *fakeScheduler) InvalidateAllCache(ctx context.Context)                     {}

func buildTestRouter(scheduler *fakeScheduler) *gin.Engine {
	gin.SetMode(gin.TestMode)

	cfg := &config.Config{}
	cfg.Auth.BasicClients = []config.ConfigBasicClient{
		{Username: "client", Password: "secret"},
	}

	router := gin.New()
	controller := NewVisitController(scheduler, cfg, nopLogger{})
	controller.RegisterRoutes(router)
	return router
}

func doRequest(router *gin.Engine, method, url, body string, withAuth bool) *httptest.ResponseRecorder {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, url, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, url, nil)
	}
	if withAuth {
		req.SetBasicAuth("client", "secret")
	}

	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	return resp
}

func mustClock(t *testing.T, str string) json_types.ClockTime {
	t.Helper()
	clock, err := json_types.ParseClockTime(str)
	if err != nil {
		t.Fatalf("bad clock time %q: %v", str, err)
	}
	return clock
}

func TestSlotsEndpointRequiresAuth(t *testing.T) {
	router := buildTestRouter(&fakeScheduler{})

	resp := doRequest(router, http.MethodGet, "/api/v1/sellers/seller-1/slots?date=2024-03-18", "", false)
	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without credentials, got %d", resp.Code)
	}
}

func TestSlotsEndpoint(t *testing.T) {
	scheduler := &fakeScheduler{
		slots: []json_types.ClockTime{mustClock(t, "09:00"), mustClock(t, "10:00")},
	}
	router := buildTestRouter(scheduler)

	resp := doRequest(router, http.MethodGet, "/api/v1/sellers/seller-1/slots?date=2024-03-18", "", true)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", resp.Code, resp.Body.String())
	}

	var body struct {
		SellerID string   `json:"sellerId"`
		Date     string   `json:"date"`
		Slots    []string `json:"slots"`
	}
	if err := json.Unmarshal(resp.Body.Bytes(), &body); err != nil {
		t.Fatalf("bad response body: %v", err)
	}
	if body.Date != "2024-03-18" {
		t.Fatalf("expected date 2024-03-18, got %s", body.Date)
	}
	if len(body.Slots) != 2 || body.Slots[0] != "09:00" || body.Slots[1] != "10:00" {
		t.Fatalf("unexpected slots: %v", body.Slots)
	}
}

func TestSlotsEndpointRejectsBadDate(t *testing.T) {
	router := buildTestRouter(&fakeScheduler{})

	resp := doRequest(router, http.MethodGet, "/api/v1/sellers/seller-1/slots?date=18-03-2024", "", true)
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for malformed date, got %d", resp.Code)
	}
}

func TestCreateAppointmentConflict(t *testing.T) {
	scheduler := &fakeScheduler{createErr: domain.ErrSlotUnavailable}
	router := buildTestRouter(scheduler)

	body := `{"vehicleId":"` + uuid.NewString() + `","buyerId":"buyer-1","sellerId":"seller-1","date":"2024-03-18","time":"09:00"}`
	resp := doRequest(router, http.MethodPost, "/api/v1/appointments", body, true)
	if resp.Code != http.StatusConflict {
		t.Fatalf("expected 409 for taken slot, got %d: %s", resp.Code, resp.Body.String())
	}
}

func TestCreateAppointmentCreated(t *testing.T) {
	appointmentID := uuid.New()
	scheduler := &fakeScheduler{
		created: &domain.Appointment{
			ID:     appointmentID,
			Status: domain.AppointmentStatusRequested,
		},
	}
	router := buildTestRouter(scheduler)

	body := `{"vehicleId":"` + uuid.NewString() + `","buyerId":"buyer-1","sellerId":"seller-1","date":"2024-03-18","time":"09:00"}`
	resp := doRequest(router, http.MethodPost, "/api/v1/appointments", body, true)
	if resp.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", resp.Code, resp.Body.String())
	}

	var created domain.Appointment
	if err := json.Unmarshal(resp.Body.Bytes(), &created); err != nil {
		t.Fatalf("bad response body: %v", err)
	}
	if created.ID != appointmentID {
		t.Fatalf("expected appointment %s, got %s", appointmentID, created.ID)
	}
}

func TestCreateAppointmentRejectsMissingFields(t *testing.T) {
	router := buildTestRouter(&fakeScheduler{})

	resp := doRequest(router, http.MethodPost, "/api/v1/appointments", `{"buyerId":"buyer-1"}`, true)
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for incomplete body, got %d", resp.Code)
	}
}

func TestCancelRequiresReason(t *testing.T) {
	router := buildTestRouter(&fakeScheduler{})

	url := "/api/v1/appointments/" + uuid.NewString() + "/cancel"
	resp := doRequest(router, http.MethodPost, url, `{}`, true)
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for cancel without reason, got %d", resp.Code)
	}
}
