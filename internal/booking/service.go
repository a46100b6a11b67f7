package booking

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	"github.com/FUAD-ALSHABIBI/mee-ad-app/internal/availability"
	"github.com/FUAD-ALSHABIBI/mee-ad-app/internal/catalog"
	"github.com/FUAD-ALSHABIBI/mee-ad-app/internal/notify"
	"github.com/FUAD-ALSHABIBI/mee-ad-app/internal/observability/metrics"
	"github.com/FUAD-ALSHABIBI/mee-ad-app/internal/timeparse"
	"github.com/FUAD-ALSHABIBI/mee-ad-app/pkg/logging"
)

var bookingTracer = otel.Tracer("meead.internal.booking")

// SelectionValidator checks a requested slot against current availability.
type SelectionValidator interface {
	ValidateSelection(ctx context.Context, businessID, serviceID, rawDate, rawStart string) error
}

// ServiceSource resolves the booked service for existence checks and
// notification copy.
type ServiceSource interface {
	GetByID(ctx context.Context, businessID, id string) (*catalog.Service, error)
}

// ConfirmationSender delivers the post-booking confirmation.
type ConfirmationSender interface {
	BookingConfirmation(ctx context.Context, notice notify.BookingNotice) error
}

// Coordinator runs the booking write path: validate the submission, check
// the slot against live availability, then insert. The repository's unique
// index stays the final arbiter between concurrent bookers; the in-flight
// guard only stops double submits from the same process.
type Coordinator struct {
	repo     Repository
	avail    SelectionValidator
	services ServiceSource
	notifier ConfirmationSender
	metrics  *metrics.BookingMetrics
	logger   *logging.Logger

	mu       sync.Mutex
	inFlight map[string]struct{}
}

// NewCoordinator creates a booking coordinator. notifier and metrics may be nil.
func NewCoordinator(repo Repository, avail SelectionValidator, services ServiceSource, notifier ConfirmationSender, m *metrics.BookingMetrics, logger *logging.Logger) *Coordinator {
	if logger == nil {
		logger = logging.Default()
	}
	return &Coordinator{
		repo:     repo,
		avail:    avail,
		services: services,
		notifier: notifier,
		metrics:  m,
		logger:   logger,
		inFlight: make(map[string]struct{}),
	}
}

// Submit validates and commits a booking. Exactly one of two concurrent
// submissions for the same slot succeeds; the loser gets ErrSlotTaken.
func (c *Coordinator) Submit(ctx context.Context, req *SubmitRequest) (*Appointment, error) {
	ctx, span := bookingTracer.Start(ctx, "booking.submit")
	defer span.End()
	span.SetAttributes(
		attribute.String("business.id", req.BusinessID),
		attribute.String("appointment.date", req.AppointmentDate),
	)
	started := time.Now()
	defer func() {
		c.metrics.ObserveLatency("submit", time.Since(started).Seconds())
	}()

	if err := req.Validate(); err != nil {
		c.metrics.ObserveBooking("invalid")
		return nil, err
	}

	if _, err := time.Parse(availability.DateLayout, req.AppointmentDate); err != nil {
		c.metrics.ObserveBooking("invalid")
		return nil, &ValidationError{Fields: map[string]string{"appointment_date": "invalid"}}
	}
	startTime, ok := timeparse.Normalize(req.AppointmentTime)
	if !ok {
		c.metrics.ObserveBooking("invalid")
		return nil, &ValidationError{Fields: map[string]string{"appointment_time": "invalid"}}
	}

	svc, err := c.services.GetByID(ctx, req.BusinessID, req.ServiceID)
	if err != nil {
		c.metrics.ObserveBooking("invalid")
		return nil, err
	}

	if err := c.avail.ValidateSelection(ctx, req.BusinessID, req.ServiceID, req.AppointmentDate, startTime); err != nil {
		c.metrics.ObserveBooking("unavailable")
		return nil, err
	}

	key := fmt.Sprintf("%s|%s|%s", req.BusinessID, req.AppointmentDate, startTime)
	if !c.acquire(key) {
		c.metrics.ObserveSlotConflict()
		c.metrics.ObserveBooking("conflict")
		return nil, ErrSlotTaken
	}
	defer c.release(key)

	appt := &Appointment{
		ID:              uuid.NewString(),
		BusinessID:      req.BusinessID,
		ServiceID:       req.ServiceID,
		AppointmentDate: req.AppointmentDate,
		AppointmentTime: startTime,
		Status:          StatusNew,
		ClientName:      req.ClientName,
		ClientEmail:     req.ClientEmail,
		ClientPhone:     req.ClientPhone,
		Notes:           req.Notes,
		CreatedAt:       time.Now().UTC(),
	}

	if err := c.repo.Create(ctx, appt); err != nil {
		if errors.Is(err, ErrSlotTaken) {
			c.metrics.ObserveSlotConflict()
			c.metrics.ObserveBooking("conflict")
			c.logger.Info("booking lost slot race", "business_id", req.BusinessID, "date", req.AppointmentDate, "time", startTime)
			return nil, ErrSlotTaken
		}
		c.metrics.ObserveBooking("error")
		return nil, err
	}

	c.metrics.ObserveBooking("created")
	c.logger.Info("booking created",
		"business_id", appt.BusinessID,
		"appointment_id", appt.ID,
		"date", appt.AppointmentDate,
		"time", appt.AppointmentTime,
	)
	span.SetAttributes(attribute.String("appointment.id", appt.ID))

	if c.notifier != nil {
		notice := notify.BookingNotice{
			ServiceName:     svc.Name,
			ClientName:      appt.ClientName,
			ClientEmail:     appt.ClientEmail,
			AppointmentDate: appt.AppointmentDate,
			AppointmentTime: appt.AppointmentTime,
		}
		go func() {
			sendCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 10*time.Second)
			defer cancel()
			if err := c.notifier.BookingConfirmation(sendCtx, notice); err != nil {
				c.logger.Warn("booking confirmation failed", "error", err, "appointment_id", appt.ID)
			}
		}()
	}

	return appt, nil
}

// UpdateStatus applies an owner-initiated status change.
func (c *Coordinator) UpdateStatus(ctx context.Context, businessID, id string, status Status) (*Appointment, error) {
	appt, err := c.repo.UpdateStatus(ctx, businessID, id, status)
	if err != nil {
		return nil, err
	}
	c.logger.Info("appointment status changed", "business_id", businessID, "appointment_id", id, "status", status)
	return appt, nil
}

// ListForBusiness returns the business's appointments.
func (c *Coordinator) ListForBusiness(ctx context.Context, businessID string) ([]*Appointment, error) {
	return c.repo.ListForBusiness(ctx, businessID)
}

func (c *Coordinator) acquire(key string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, busy := c.inFlight[key]; busy {
		return false
	}
	c.inFlight[key] = struct{}{}
	return true
}

func (c *Coordinator) release(key string) {
	c.mu.Lock()
	delete(c.inFlight, key)
	c.mu.Unlock()
}
