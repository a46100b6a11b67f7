package notify

import (
	"context"
	"fmt"

	"github.com/FUAD-ALSHABIBI/mee-ad-app/pkg/logging"
)

// BookingNotice carries the appointment details needed for a confirmation
// message. Kept as plain fields so this package stays decoupled from the
// booking domain types.
type BookingNotice struct {
	BusinessName    string
	ServiceName     string
	ClientName      string
	ClientEmail     string
	AppointmentDate string // YYYY-MM-DD
	AppointmentTime string // HH:mm
}

// Service sends booking notifications. Delivery is best effort: callers fire
// it off the request path and a failure never rolls back the booking.
type Service struct {
	email  EmailSender
	logger *logging.Logger
}

// NewService creates a notification service.
func NewService(email EmailSender, logger *logging.Logger) *Service {
	if logger == nil {
		logger = logging.Default()
	}
	return &Service{
		email:  email,
		logger: logger,
	}
}

// BookingConfirmation emails the client that their appointment was received.
func (s *Service) BookingConfirmation(ctx context.Context, notice BookingNotice) error {
	if s.email == nil || notice.ClientEmail == "" {
		s.logger.Debug("notify: email not configured or recipient missing, skipping confirmation")
		return nil
	}

	business := notice.BusinessName
	if business == "" {
		business = "your provider"
	}

	subject := fmt.Sprintf("Booking received - %s on %s", notice.ServiceName, notice.AppointmentDate)
	body := fmt.Sprintf(`Hi %s,

Your booking request was received.

Service: %s
Date: %s
Time: %s

%s will confirm your appointment shortly.`,
		notice.ClientName, notice.ServiceName, notice.AppointmentDate, notice.AppointmentTime, business)

	msg := EmailMessage{
		To:      notice.ClientEmail,
		ToName:  notice.ClientName,
		Subject: subject,
		Body:    body,
	}
	if err := s.email.Send(ctx, msg); err != nil {
		s.logger.Error("notify: failed to send booking confirmation", "error", err, "to", notice.ClientEmail)
		return fmt.Errorf("notify: booking confirmation failed: %w", err)
	}

	s.logger.Info("notify: booking confirmation sent", "to", notice.ClientEmail, "date", notice.AppointmentDate, "time", notice.AppointmentTime)
	return nil
}
