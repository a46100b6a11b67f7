package catalog

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/FUAD-ALSHABIBI/mee-ad-app/pkg/logging"
)

// Handler handles HTTP requests for the service catalog
type Handler struct {
	repo   Repository
	logger *logging.Logger
}

// NewHandler creates a new catalog handler
func NewHandler(repo Repository, logger *logging.Logger) *Handler {
	return &Handler{
		repo:   repo,
		logger: logger,
	}
}

// ListServices handles GET /businesses/{businessID}/services requests
func (h *Handler) ListServices(w http.ResponseWriter, r *http.Request) {
	businessID := chi.URLParam(r, "businessID")
	if businessID == "" {
		http.Error(w, "missing business id", http.StatusBadRequest)
		return
	}

	services, err := h.repo.ListByBusiness(r.Context(), businessID)
	if err != nil {
		h.logger.Error("failed to list services", "error", err, "business_id", businessID)
		http.Error(w, "failed to list services", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{
		"services": services,
		"count":    len(services),
	})
}

// GetService handles GET /businesses/{businessID}/services/{serviceID} requests
func (h *Handler) GetService(w http.ResponseWriter, r *http.Request) {
	businessID := chi.URLParam(r, "businessID")
	serviceID := chi.URLParam(r, "serviceID")
	if businessID == "" || serviceID == "" {
		http.Error(w, "missing business or service id", http.StatusBadRequest)
		return
	}

	svc, err := h.repo.GetByID(r.Context(), businessID, serviceID)
	if err != nil {
		if errors.Is(err, ErrServiceNotFound) {
			http.Error(w, "service not found", http.StatusNotFound)
			return
		}
		h.logger.Error("failed to get service", "error", err, "service_id", serviceID)
		http.Error(w, "failed to get service", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(svc)
}

// CreateService handles POST /businesses/{businessID}/services requests
func (h *Handler) CreateService(w http.ResponseWriter, r *http.Request) {
	businessID := chi.URLParam(r, "businessID")
	if businessID == "" {
		http.Error(w, "missing business id", http.StatusBadRequest)
		return
	}

	var req CreateServiceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Error("failed to decode request", "error", err)
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	req.BusinessID = businessID

	svc, err := h.repo.Create(r.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidName),
			errors.Is(err, ErrInvalidDuration),
			errors.Is(err, ErrInvalidPrice),
			errors.Is(err, ErrMissingBusinessID):
			http.Error(w, err.Error(), http.StatusBadRequest)
		default:
			h.logger.Error("failed to create service", "error", err, "business_id", businessID)
			http.Error(w, "failed to create service", http.StatusInternalServerError)
		}
		return
	}

	h.logger.Info("service created", "business_id", businessID, "service_id", svc.ID, "duration_minutes", svc.DurationMinutes)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(svc)
}
