package availability

import "errors"

var (
	// ErrSlotUnavailable is returned when the requested slot is not offered
	// on that date or is already booked
	ErrSlotUnavailable = errors.New("slot unavailable")

	// ErrInvalidDate is returned when the date string cannot be parsed
	ErrInvalidDate = errors.New("invalid date")
)
