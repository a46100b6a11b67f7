package booking

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

var (
	// ErrSlotTaken is returned when the requested slot was booked by
	// someone else first
	ErrSlotTaken = errors.New("slot already booked")

	// ErrAppointmentNotFound is returned when an appointment is not found
	ErrAppointmentNotFound = errors.New("appointment not found")

	// ErrInvalidTransition is returned when a status change violates the
	// appointment state machine
	ErrInvalidTransition = errors.New("invalid status transition")

	// ErrInvalidStatus is returned for unknown status values
	ErrInvalidStatus = errors.New("invalid status")
)

// ValidationError carries per-field failures from a booking submission.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	names := make([]string, 0, len(e.Fields))
	for f := range e.Fields {
		names = append(names, f)
	}
	sort.Strings(names)
	return fmt.Sprintf("validation failed: %s", strings.Join(names, ", "))
}
