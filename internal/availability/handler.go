package availability

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/FUAD-ALSHABIBI/mee-ad-app/internal/catalog"
	"github.com/FUAD-ALSHABIBI/mee-ad-app/internal/observability/metrics"
	"github.com/FUAD-ALSHABIBI/mee-ad-app/pkg/logging"
)

// Handler serves the public availability endpoints
type Handler struct {
	svc     *Service
	metrics *metrics.BookingMetrics
	logger  *logging.Logger
}

// NewHandler creates a new availability handler
func NewHandler(svc *Service, m *metrics.BookingMetrics, logger *logging.Logger) *Handler {
	return &Handler{
		svc:     svc,
		metrics: m,
		logger:  logger,
	}
}

// GetDates handles GET /public/businesses/{businessID}/dates requests.
// An optional days query param narrows the window below the configured size.
func (h *Handler) GetDates(w http.ResponseWriter, r *http.Request) {
	businessID := chi.URLParam(r, "businessID")
	if businessID == "" {
		http.Error(w, "missing business id", http.StatusBadRequest)
		return
	}

	days := 0
	if raw := r.URL.Query().Get("days"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil {
			days = parsed
		}
	}

	dates, err := h.svc.BookableDates(r.Context(), businessID, days)
	if err != nil {
		h.metrics.ObserveAvailability("dates", "error")
		h.logger.Error("failed to compute bookable dates", "error", err, "business_id", businessID)
		http.Error(w, "failed to compute bookable dates", http.StatusInternalServerError)
		return
	}
	h.metrics.ObserveAvailability("dates", "ok")

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{
		"dates": dates,
		"count": len(dates),
	})
}

// GetSlots handles GET /public/businesses/{businessID}/slots requests.
// Query params: date (required, YYYY-MM-DD) and service_id (optional).
func (h *Handler) GetSlots(w http.ResponseWriter, r *http.Request) {
	businessID := chi.URLParam(r, "businessID")
	if businessID == "" {
		http.Error(w, "missing business id", http.StatusBadRequest)
		return
	}
	rawDate := r.URL.Query().Get("date")
	if rawDate == "" {
		http.Error(w, "missing date", http.StatusBadRequest)
		return
	}
	serviceID := r.URL.Query().Get("service_id")

	day, err := h.svc.DayAvailability(r.Context(), businessID, serviceID, rawDate)
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidDate):
			http.Error(w, "invalid date", http.StatusBadRequest)
		case errors.Is(err, catalog.ErrServiceNotFound):
			http.Error(w, "service not found", http.StatusNotFound)
		default:
			h.metrics.ObserveAvailability("slots", "error")
			h.logger.Error("failed to compute slots", "error", err, "business_id", businessID, "date", rawDate)
			http.Error(w, "failed to compute slots", http.StatusInternalServerError)
		}
		return
	}
	h.metrics.ObserveAvailability("slots", "ok")

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(day)
}
