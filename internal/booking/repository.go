package booking

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Repository defines the interface for appointment storage. Create must be
// the serialization point for double bookings: a second insert for the same
// live {business, date, time} slot returns ErrSlotTaken.
type Repository interface {
	Create(ctx context.Context, appt *Appointment) error
	GetByID(ctx context.Context, businessID, id string) (*Appointment, error)
	ListForBusiness(ctx context.Context, businessID string) ([]*Appointment, error)
	ListTimesForDay(ctx context.Context, businessID string, date time.Time) ([]string, error)
	UpdateStatus(ctx context.Context, businessID, id string, status Status) (*Appointment, error)
}

// InMemoryRepository is a stub implementation of Repository using in-memory storage
type InMemoryRepository struct {
	mu    sync.Mutex
	appts map[string]*Appointment
}

// NewInMemoryRepository creates a new in-memory repository
func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{
		appts: make(map[string]*Appointment),
	}
}

func slotKey(businessID, date, timeOfDay string) string {
	return fmt.Sprintf("%s|%s|%s", businessID, date, timeOfDay)
}

// Create stores the appointment, enforcing slot uniqueness among live
// (new or confirmed) appointments the way the relational index does.
func (r *InMemoryRepository) Create(ctx context.Context, appt *Appointment) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.appts {
		if existing.BusinessID == appt.BusinessID &&
			existing.AppointmentDate == appt.AppointmentDate &&
			existing.AppointmentTime == appt.AppointmentTime &&
			(existing.Status == StatusNew || existing.Status == StatusConfirmed) {
			return ErrSlotTaken
		}
	}

	if appt.ID == "" {
		appt.ID = uuid.NewString()
	}
	if appt.CreatedAt.IsZero() {
		appt.CreatedAt = time.Now()
	}
	stored := *appt
	r.appts[appt.ID] = &stored
	return nil
}

// GetByID retrieves an appointment scoped to the business
func (r *InMemoryRepository) GetByID(ctx context.Context, businessID, id string) (*Appointment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	appt, ok := r.appts[id]
	if !ok || appt.BusinessID != businessID {
		return nil, ErrAppointmentNotFound
	}
	out := *appt
	return &out, nil
}

// ListForBusiness returns the business's appointments ordered by date then time.
func (r *InMemoryRepository) ListForBusiness(ctx context.Context, businessID string) ([]*Appointment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []*Appointment
	for _, appt := range r.appts {
		if appt.BusinessID == businessID {
			copied := *appt
			out = append(out, &copied)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].AppointmentDate != out[j].AppointmentDate {
			return out[i].AppointmentDate < out[j].AppointmentDate
		}
		return out[i].AppointmentTime < out[j].AppointmentTime
	})
	return out, nil
}

// ListTimesForDay returns start times of live appointments on the date.
func (r *InMemoryRepository) ListTimesForDay(ctx context.Context, businessID string, date time.Time) ([]string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	day := date.Format("2006-01-02")
	var times []string
	for _, appt := range r.appts {
		if appt.BusinessID == businessID &&
			appt.AppointmentDate == day &&
			(appt.Status == StatusNew || appt.Status == StatusConfirmed) {
			times = append(times, appt.AppointmentTime)
		}
	}
	sort.Strings(times)
	return times, nil
}

// UpdateStatus applies a state-machine-checked status change.
func (r *InMemoryRepository) UpdateStatus(ctx context.Context, businessID, id string, status Status) (*Appointment, error) {
	if !ValidStatus(status) {
		return nil, ErrInvalidStatus
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	appt, ok := r.appts[id]
	if !ok || appt.BusinessID != businessID {
		return nil, ErrAppointmentNotFound
	}
	if !CanTransition(appt.Status, status) {
		return nil, ErrInvalidTransition
	}
	appt.Status = status
	out := *appt
	return &out, nil
}
