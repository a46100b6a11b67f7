package booking

import (
	"regexp"
	"strings"
	"time"
)

// Status is the lifecycle state of an appointment.
type Status string

const (
	StatusNew       Status = "new"
	StatusConfirmed Status = "confirmed"
	StatusCancelled Status = "cancelled"
	StatusCompleted Status = "completed"
)

// ValidStatus reports whether s is a known appointment status.
func ValidStatus(s Status) bool {
	switch s {
	case StatusNew, StatusConfirmed, StatusCancelled, StatusCompleted:
		return true
	}
	return false
}

// CanTransition encodes the status state machine. New appointments may be
// confirmed or cancelled; confirmed ones completed or cancelled. Cancelled
// and completed are terminal.
func CanTransition(from, to Status) bool {
	switch from {
	case StatusNew:
		return to == StatusConfirmed || to == StatusCancelled
	case StatusConfirmed:
		return to == StatusCompleted || to == StatusCancelled
	}
	return false
}

// Appointment is a committed booking for a single slot.
type Appointment struct {
	ID              string    `json:"id"`
	BusinessID      string    `json:"business_id"`
	ServiceID       string    `json:"service_id"`
	AppointmentDate string    `json:"appointment_date"` // YYYY-MM-DD
	AppointmentTime string    `json:"appointment_time"` // HH:mm
	Status          Status    `json:"status"`
	ClientName      string    `json:"client_name"`
	ClientEmail     string    `json:"client_email"`
	ClientPhone     string    `json:"client_phone"`
	Notes           string    `json:"notes,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
}

var emailPattern = regexp.MustCompile(`\S+@\S+\.\S+`)

// SubmitRequest is the public booking submission.
type SubmitRequest struct {
	BusinessID      string `json:"-"`
	ServiceID       string `json:"service_id"`
	AppointmentDate string `json:"appointment_date"`
	AppointmentTime string `json:"appointment_time"`
	ClientName      string `json:"client_name"`
	ClientEmail     string `json:"client_email"`
	ClientPhone     string `json:"client_phone"`
	Notes           string `json:"notes"`
	TermsAccepted   bool   `json:"terms_accepted"`
}

// Validate checks the client-submitted fields and collects every failure so
// the caller can report them per field in one round trip.
func (r *SubmitRequest) Validate() error {
	fields := map[string]string{}

	if strings.TrimSpace(r.BusinessID) == "" {
		fields["business_id"] = "required"
	}
	if strings.TrimSpace(r.ServiceID) == "" {
		fields["service_id"] = "required"
	}
	if strings.TrimSpace(r.AppointmentDate) == "" {
		fields["appointment_date"] = "required"
	}
	if strings.TrimSpace(r.AppointmentTime) == "" {
		fields["appointment_time"] = "required"
	}
	if strings.TrimSpace(r.ClientName) == "" {
		fields["client_name"] = "required"
	}
	if strings.TrimSpace(r.ClientPhone) == "" {
		fields["client_phone"] = "required"
	}
	if email := strings.TrimSpace(r.ClientEmail); email == "" {
		fields["client_email"] = "required"
	} else if !emailPattern.MatchString(email) {
		fields["client_email"] = "invalid"
	}
	if !r.TermsAccepted {
		fields["terms_accepted"] = "must be accepted"
	}

	if len(fields) > 0 {
		return &ValidationError{Fields: fields}
	}
	return nil
}
