package router

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/FUAD-ALSHABIBI/mee-ad-app/internal/availability"
	"github.com/FUAD-ALSHABIBI/mee-ad-app/internal/booking"
	"github.com/FUAD-ALSHABIBI/mee-ad-app/internal/catalog"
	"github.com/FUAD-ALSHABIBI/mee-ad-app/internal/schedule"
	"github.com/FUAD-ALSHABIBI/mee-ad-app/pkg/logging"
)

const testSecret = "owner-secret"

type testEnv struct {
	handler   http.Handler
	schedules *schedule.InMemoryRepository
	catalog   *catalog.InMemoryRepository
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	logger := logging.Default()

	scheduleRepo := schedule.NewInMemoryRepository()
	catalogRepo := catalog.NewInMemoryRepository()
	bookingRepo := booking.NewInMemoryRepository()

	availSvc := availability.NewService(scheduleRepo, bookingRepo, catalogRepo, 21, time.UTC, logger)
	coordinator := booking.NewCoordinator(bookingRepo, availSvc, catalogRepo, nil, nil, logger)

	handler := New(&Config{
		Logger:              logger,
		ScheduleHandler:     schedule.NewHandler(scheduleRepo, logger),
		CatalogHandler:      catalog.NewHandler(catalogRepo, logger),
		AvailabilityHandler: availability.NewHandler(availSvc, nil, logger),
		BookingHandler:      booking.NewHandler(coordinator, logger),
		OwnerAuthSecret:     testSecret,
	})

	return &testEnv{handler: handler, schedules: scheduleRepo, catalog: catalogRepo}
}

func (e *testEnv) openEveryDay(t *testing.T, businessID string) {
	t.Helper()
	start, end := "09:00", "17:00"
	var inputs []schedule.RuleInput
	for day := 0; day < 7; day++ {
		inputs = append(inputs, schedule.RuleInput{
			DayOfWeek: day, IsOpen: true, StartTime: &start, EndTime: &end,
		})
	}
	_, err := e.schedules.ReplaceForBusiness(context.Background(), businessID, inputs)
	require.NoError(t, err)
}

func (e *testEnv) addService(t *testing.T, businessID string) *catalog.Service {
	t.Helper()
	svc, err := e.catalog.Create(context.Background(), &catalog.CreateServiceRequest{
		BusinessID:      businessID,
		Name:            "Facial",
		DurationMinutes: 60,
	})
	require.NoError(t, err)
	return svc
}

func ownerToken(t *testing.T, businessID string) string {
	t.Helper()
	claims := jwt.RegisteredClaims{
		Subject:   businessID,
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(5 * time.Minute)),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	require.NoError(t, err)
	return signed
}

func futureDate(days int) string {
	return time.Now().UTC().AddDate(0, 0, days).Format("2006-01-02")
}

func TestHealthEndpoint(t *testing.T) {
	env := newTestEnv(t)

	rec := httptest.NewRecorder()
	env.handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

func TestPublicDatesEndpoint(t *testing.T) {
	env := newTestEnv(t)
	env.openEveryDay(t, "biz-1")

	rec := httptest.NewRecorder()
	env.handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/public/businesses/biz-1/dates", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	var body struct {
		Dates []string `json:"dates"`
		Count int      `json:"count"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, 21, body.Count, "open every day fills the whole window")
}

func TestPublicSlotsEndpoint(t *testing.T) {
	env := newTestEnv(t)
	env.openEveryDay(t, "biz-1")
	svc := env.addService(t, "biz-1")

	url := fmt.Sprintf("/public/businesses/biz-1/slots?date=%s&service_id=%s", futureDate(7), svc.ID)
	rec := httptest.NewRecorder()
	env.handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, url, nil))

	require.Equal(t, http.StatusOK, rec.Code)
	var day availability.DayAvailability
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &day))
	assert.True(t, day.IsOpen)
	assert.Len(t, day.Slots, 8) // 09:00..16:00 hourly
}

func TestPublicBookingFlow(t *testing.T) {
	env := newTestEnv(t)
	env.openEveryDay(t, "biz-1")
	svc := env.addService(t, "biz-1")

	payload := map[string]any{
		"service_id":       svc.ID,
		"appointment_date": futureDate(7),
		"appointment_time": "10:00",
		"client_name":      "Dana",
		"client_email":     "dana@example.com",
		"client_phone":     "+15550100",
		"terms_accepted":   true,
	}
	body, err := json.Marshal(payload)
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	env.handler.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/public/businesses/biz-1/bookings", bytes.NewReader(body)))
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var appt booking.Appointment
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &appt))
	assert.Equal(t, booking.StatusNew, appt.Status)

	// Same slot again conflicts.
	rec = httptest.NewRecorder()
	env.handler.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/public/businesses/biz-1/bookings", bytes.NewReader(body)))
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestPublicBookingValidationErrors(t *testing.T) {
	env := newTestEnv(t)
	env.openEveryDay(t, "biz-1")
	svc := env.addService(t, "biz-1")

	payload := map[string]any{
		"service_id":       svc.ID,
		"appointment_date": futureDate(7),
		"appointment_time": "10:00",
		"client_name":      "",
		"client_email":     "not-an-email",
		"client_phone":     "+15550100",
		"terms_accepted":   false,
	}
	body, err := json.Marshal(payload)
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	env.handler.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/public/businesses/biz-1/bookings", bytes.NewReader(body)))
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	var resp struct {
		Fields map[string]string `json:"fields"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Contains(t, resp.Fields, "client_name")
	assert.Contains(t, resp.Fields, "client_email")
	assert.Contains(t, resp.Fields, "terms_accepted")
}

func TestOwnerRoutesRequireJWT(t *testing.T) {
	env := newTestEnv(t)

	rec := httptest.NewRecorder()
	env.handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/businesses/biz-1/appointments", nil))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestOwnerRoutesRejectForeignToken(t *testing.T) {
	env := newTestEnv(t)

	req := httptest.NewRequest(http.MethodGet, "/businesses/biz-1/appointments", nil)
	req.Header.Set("Authorization", "Bearer "+ownerToken(t, "biz-2"))
	rec := httptest.NewRecorder()
	env.handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestOwnerWorkingHoursRoundTrip(t *testing.T) {
	env := newTestEnv(t)

	payload := `{"working_hours":[{"day_of_week":1,"is_open":true,"start_time":"09:00","end_time":"17:00"}]}`
	req := httptest.NewRequest(http.MethodPut, "/businesses/biz-1/working-hours", bytes.NewReader([]byte(payload)))
	req.Header.Set("Authorization", "Bearer "+ownerToken(t, "biz-1"))
	rec := httptest.NewRecorder()
	env.handler.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	req = httptest.NewRequest(http.MethodGet, "/businesses/biz-1/working-hours", nil)
	req.Header.Set("Authorization", "Bearer "+ownerToken(t, "biz-1"))
	rec = httptest.NewRecorder()
	env.handler.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Count int `json:"count"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, 1, body.Count)
}

func TestWithBusinessContextExposesTenant(t *testing.T) {
	var got string
	probe := withBusinessContext(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if id, ok := businessIDFromRequest(r); ok {
			got = id
		}
	}))

	mux := chi.NewRouter()
	mux.Handle("/public/businesses/{businessID}/dates", probe)

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/public/businesses/biz-9/dates", nil))
	assert.Equal(t, "biz-9", got)
}
