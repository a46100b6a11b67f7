package schedule

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/FUAD-ALSHABIBI/mee-ad-app/pkg/logging"
)

// Handler handles HTTP requests for working hours
type Handler struct {
	repo   Repository
	logger *logging.Logger
}

// NewHandler creates a new schedule handler
func NewHandler(repo Repository, logger *logging.Logger) *Handler {
	return &Handler{
		repo:   repo,
		logger: logger,
	}
}

// GetWorkingHours handles GET /businesses/{businessID}/working-hours requests
func (h *Handler) GetWorkingHours(w http.ResponseWriter, r *http.Request) {
	businessID := chi.URLParam(r, "businessID")
	if businessID == "" {
		http.Error(w, "missing business id", http.StatusBadRequest)
		return
	}

	rules, err := h.repo.ListForBusiness(r.Context(), businessID)
	if err != nil {
		h.logger.Error("failed to list working hours", "error", err, "business_id", businessID)
		http.Error(w, "failed to list working hours", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{
		"working_hours": rules,
		"count":         len(rules),
	})
}

// ReplaceWorkingHoursRequest is the request body for replacing a schedule
type ReplaceWorkingHoursRequest struct {
	WorkingHours []RuleInput `json:"working_hours"`
}

// ReplaceWorkingHours handles PUT /businesses/{businessID}/working-hours requests.
// The submitted rules replace the stored schedule wholesale.
func (h *Handler) ReplaceWorkingHours(w http.ResponseWriter, r *http.Request) {
	businessID := chi.URLParam(r, "businessID")
	if businessID == "" {
		http.Error(w, "missing business id", http.StatusBadRequest)
		return
	}

	var req ReplaceWorkingHoursRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Error("failed to decode request", "error", err)
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	for _, in := range req.WorkingHours {
		if in.DayOfWeek < 0 || in.DayOfWeek > 6 {
			http.Error(w, ErrInvalidDay.Error(), http.StatusBadRequest)
			return
		}
	}

	rules, err := h.repo.ReplaceForBusiness(r.Context(), businessID, req.WorkingHours)
	if err != nil {
		h.logger.Error("failed to replace working hours", "error", err, "business_id", businessID)
		http.Error(w, "failed to replace working hours", http.StatusInternalServerError)
		return
	}

	h.logger.Info("working hours replaced", "business_id", businessID, "rules", len(rules))

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{
		"working_hours": rules,
		"count":         len(rules),
	})
}
