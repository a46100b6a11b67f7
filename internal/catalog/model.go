package catalog

import "strings"

// Service is a bookable offering owned by a business. Duration drives slot
// granularity and is treated as immutable during a booking session.
type Service struct {
	ID              string `json:"id"`
	BusinessID      string `json:"business_id"`
	Name            string `json:"name"`
	Description     string `json:"description,omitempty"`
	DurationMinutes int    `json:"duration_minutes"`
	PriceCents      int    `json:"price_cents"`
	Currency        string `json:"currency"`
	Category        string `json:"category,omitempty"`
}

// CreateServiceRequest is the request body for creating a service
type CreateServiceRequest struct {
	BusinessID      string `json:"-"`
	Name            string `json:"name"`
	Description     string `json:"description"`
	DurationMinutes int    `json:"duration_minutes"`
	PriceCents      int    `json:"price_cents"`
	Currency        string `json:"currency"`
	Category        string `json:"category"`
}

// Validate validates the create service request
func (r *CreateServiceRequest) Validate() error {
	if strings.TrimSpace(r.BusinessID) == "" {
		return ErrMissingBusinessID
	}
	if strings.TrimSpace(r.Name) == "" {
		return ErrInvalidName
	}
	if r.DurationMinutes <= 0 {
		return ErrInvalidDuration
	}
	if r.PriceCents < 0 {
		return ErrInvalidPrice
	}
	return nil
}
