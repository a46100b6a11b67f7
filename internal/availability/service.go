package availability

import (
	"context"
	"fmt"
	"time"

	"github.com/FUAD-ALSHABIBI/mee-ad-app/internal/catalog"
	"github.com/FUAD-ALSHABIBI/mee-ad-app/internal/schedule"
	"github.com/FUAD-ALSHABIBI/mee-ad-app/internal/timeparse"
	"github.com/FUAD-ALSHABIBI/mee-ad-app/pkg/logging"
)

// DateLayout is the wire format for calendar dates.
const DateLayout = "2006-01-02"

// RuleSource provides the weekly schedule for a business.
type RuleSource interface {
	ListForBusiness(ctx context.Context, businessID string) ([]schedule.Rule, error)
}

// BookedLookup returns the start times already taken on a date. Times may
// arrive in any parseable shape; the service normalizes before matching.
type BookedLookup interface {
	ListTimesForDay(ctx context.Context, businessID string, date time.Time) ([]string, error)
}

// ServiceSource resolves a service's slot duration.
type ServiceSource interface {
	GetByID(ctx context.Context, businessID, id string) (*catalog.Service, error)
}

// DayAvailability is the public availability view for one date.
type DayAvailability struct {
	Date   string `json:"date"`
	IsOpen bool   `json:"is_open"`
	Slots  []Slot `json:"slots"`
}

// Service computes bookable dates and slots by composing the schedule
// resolver, the service catalog and the booked-slot lookup.
type Service struct {
	rules      RuleSource
	booked     BookedLookup
	services   ServiceSource
	resolver   *schedule.Resolver
	logger     *logging.Logger
	windowDays int
	loc        *time.Location
	now        func() time.Time
}

// NewService creates an availability service. windowDays <= 0 falls back to
// the default 21-day rolling window; loc nil falls back to time.Local.
func NewService(rules RuleSource, booked BookedLookup, services ServiceSource, windowDays int, loc *time.Location, logger *logging.Logger) *Service {
	if windowDays <= 0 {
		windowDays = 21
	}
	if loc == nil {
		loc = time.Local
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &Service{
		rules:      rules,
		booked:     booked,
		services:   services,
		resolver:   schedule.NewResolver(logger),
		logger:     logger,
		windowDays: windowDays,
		loc:        loc,
		now:        time.Now,
	}
}

// BookableDates returns the dates inside the rolling window that have at
// least one open interval, formatted as YYYY-MM-DD. windowDays overrides the
// configured window when positive, capped at the configured size.
func (s *Service) BookableDates(ctx context.Context, businessID string, windowDays int) ([]string, error) {
	if windowDays <= 0 || windowDays > s.windowDays {
		windowDays = s.windowDays
	}

	rules, err := s.rules.ListForBusiness(ctx, businessID)
	if err != nil {
		return nil, fmt.Errorf("availability: list rules failed: %w", err)
	}

	dates := s.resolver.BookableDates(rules, s.now().In(s.loc), windowDays)
	out := make([]string, 0, len(dates))
	for _, d := range dates {
		out = append(out, d.Format(DateLayout))
	}
	return out, nil
}

// DayAvailability returns the slot grid for one date. serviceID is optional;
// when present the service's duration drives slot width, otherwise the
// default applies. A closed or unconfigured date comes back IsOpen=false
// with no slots rather than an error.
func (s *Service) DayAvailability(ctx context.Context, businessID, serviceID, rawDate string) (*DayAvailability, error) {
	date, err := time.ParseInLocation(DateLayout, rawDate, s.loc)
	if err != nil {
		return nil, ErrInvalidDate
	}

	duration := 0
	if serviceID != "" {
		svc, err := s.services.GetByID(ctx, businessID, serviceID)
		if err != nil {
			return nil, err
		}
		duration = svc.DurationMinutes
	}

	rules, err := s.rules.ListForBusiness(ctx, businessID)
	if err != nil {
		return nil, fmt.Errorf("availability: list rules failed: %w", err)
	}

	day := s.resolver.ResolveDay(rules, date)
	result := &DayAvailability{Date: date.Format(DateLayout), IsOpen: len(day.Intervals) > 0}
	if !result.IsOpen {
		return result, nil
	}

	slots := GenerateSlots(day.Intervals, duration, date, s.now().In(s.loc))
	booked, err := s.booked.ListTimesForDay(ctx, businessID, date)
	if err != nil {
		return nil, fmt.Errorf("availability: booked lookup failed: %w", err)
	}
	result.Slots = MarkBooked(slots, booked)
	return result, nil
}

// ValidateSelection re-derives the slot grid and checks the requested start
// time against it. It is the pre-insert guard; the database unique index
// remains the final word under concurrency.
func (s *Service) ValidateSelection(ctx context.Context, businessID, serviceID, rawDate, rawStart string) error {
	start, ok := timeparse.Normalize(rawStart)
	if !ok {
		return ErrSlotUnavailable
	}

	day, err := s.DayAvailability(ctx, businessID, serviceID, rawDate)
	if err != nil {
		return err
	}
	for _, slot := range day.Slots {
		if slot.StartTime == start {
			if slot.IsBooked {
				return ErrSlotUnavailable
			}
			return nil
		}
	}
	return ErrSlotUnavailable
}
