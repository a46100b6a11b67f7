package booking

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/FUAD-ALSHABIBI/mee-ad-app/internal/availability"
	"github.com/FUAD-ALSHABIBI/mee-ad-app/internal/catalog"
	"github.com/FUAD-ALSHABIBI/mee-ad-app/pkg/logging"
)

// Handler serves the public booking endpoint and the owner appointment views
type Handler struct {
	coordinator *Coordinator
	logger      *logging.Logger
}

// NewHandler creates a new booking handler
func NewHandler(coordinator *Coordinator, logger *logging.Logger) *Handler {
	return &Handler{
		coordinator: coordinator,
		logger:      logger,
	}
}

// SubmitBooking handles POST /public/businesses/{businessID}/bookings requests
func (h *Handler) SubmitBooking(w http.ResponseWriter, r *http.Request) {
	businessID := chi.URLParam(r, "businessID")
	if businessID == "" {
		http.Error(w, "missing business id", http.StatusBadRequest)
		return
	}

	var req SubmitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Error("failed to decode request", "error", err)
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	req.BusinessID = businessID

	appt, err := h.coordinator.Submit(r.Context(), &req)
	if err != nil {
		var vErr *ValidationError
		switch {
		case errors.As(err, &vErr):
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusUnprocessableEntity)
			json.NewEncoder(w).Encode(map[string]any{
				"error":  "validation failed",
				"fields": vErr.Fields,
			})
		case errors.Is(err, catalog.ErrServiceNotFound):
			http.Error(w, "service not found", http.StatusNotFound)
		case errors.Is(err, ErrSlotTaken), errors.Is(err, availability.ErrSlotUnavailable):
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusConflict)
			json.NewEncoder(w).Encode(map[string]any{
				"error": "slot no longer available",
			})
		case errors.Is(err, availability.ErrInvalidDate):
			http.Error(w, "invalid date", http.StatusBadRequest)
		default:
			h.logger.Error("failed to submit booking", "error", err, "business_id", businessID)
			http.Error(w, "failed to submit booking", http.StatusInternalServerError)
		}
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(appt)
}

// ListAppointments handles GET /businesses/{businessID}/appointments requests
func (h *Handler) ListAppointments(w http.ResponseWriter, r *http.Request) {
	businessID := chi.URLParam(r, "businessID")
	if businessID == "" {
		http.Error(w, "missing business id", http.StatusBadRequest)
		return
	}

	appts, err := h.coordinator.ListForBusiness(r.Context(), businessID)
	if err != nil {
		h.logger.Error("failed to list appointments", "error", err, "business_id", businessID)
		http.Error(w, "failed to list appointments", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{
		"appointments": appts,
		"count":        len(appts),
	})
}

// UpdateStatusRequest is the request body for appointment status changes
type UpdateStatusRequest struct {
	Status Status `json:"status"`
}

// UpdateStatus handles PATCH /businesses/{businessID}/appointments/{appointmentID} requests
func (h *Handler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	businessID := chi.URLParam(r, "businessID")
	appointmentID := chi.URLParam(r, "appointmentID")
	if businessID == "" || appointmentID == "" {
		http.Error(w, "missing business or appointment id", http.StatusBadRequest)
		return
	}

	var req UpdateStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	appt, err := h.coordinator.UpdateStatus(r.Context(), businessID, appointmentID, req.Status)
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidStatus):
			http.Error(w, "invalid status", http.StatusBadRequest)
		case errors.Is(err, ErrAppointmentNotFound):
			http.Error(w, "appointment not found", http.StatusNotFound)
		case errors.Is(err, ErrInvalidTransition):
			http.Error(w, "invalid status transition", http.StatusConflict)
		default:
			h.logger.Error("failed to update appointment", "error", err, "appointment_id", appointmentID)
			http.Error(w, "failed to update appointment", http.StatusInternalServerError)
		}
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(appt)
}
