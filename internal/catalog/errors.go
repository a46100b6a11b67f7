package catalog

import "errors"

var (
	// ErrMissingBusinessID is returned when the owning business is absent
	ErrMissingBusinessID = errors.New("business id is required")

	// ErrInvalidName is returned when the service name is empty
	ErrInvalidName = errors.New("service name is required")

	// ErrInvalidDuration is returned when duration_minutes is not positive
	ErrInvalidDuration = errors.New("duration_minutes must be greater than zero")

	// ErrInvalidPrice is returned when the price is negative
	ErrInvalidPrice = errors.New("price_cents must not be negative")

	// ErrServiceNotFound is returned when a service is not found
	ErrServiceNotFound = errors.New("service not found")
)
