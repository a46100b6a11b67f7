package availability

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/FUAD-ALSHABIBI/mee-ad-app/internal/catalog"
	"github.com/FUAD-ALSHABIBI/mee-ad-app/internal/schedule"
	"github.com/FUAD-ALSHABIBI/mee-ad-app/pkg/logging"
)

type fakeRules struct {
	rules []schedule.Rule
	err   error
}

func (f *fakeRules) ListForBusiness(ctx context.Context, businessID string) ([]schedule.Rule, error) {
	return f.rules, f.err
}

type fakeBooked struct {
	times map[string][]string // keyed by date YYYY-MM-DD
	err   error
}

func (f *fakeBooked) ListTimesForDay(ctx context.Context, businessID string, date time.Time) ([]string, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.times[date.Format(DateLayout)], nil
}

type fakeCatalog struct {
	services map[string]*catalog.Service
}

func (f *fakeCatalog) GetByID(ctx context.Context, businessID, id string) (*catalog.Service, error) {
	svc, ok := f.services[id]
	if !ok {
		return nil, catalog.ErrServiceNotFound
	}
	return svc, nil
}

func openAllWeekdays(start, end string) []schedule.Rule {
	var rules []schedule.Rule
	for day := 1; day <= 5; day++ {
		s, e := start, end
		rules = append(rules, schedule.Rule{
			ID: "r", BusinessID: "biz-1", DayOfWeek: day, IsOpen: true,
			StartTime: &s, EndTime: &e,
		})
	}
	return rules
}

func newTestService(rules []schedule.Rule, booked *fakeBooked, services map[string]*catalog.Service, now time.Time) *Service {
	svc := NewService(
		&fakeRules{rules: rules},
		booked,
		&fakeCatalog{services: services},
		21,
		time.UTC,
		logging.Default(),
	)
	svc.now = func() time.Time { return now }
	return svc
}

func TestBookableDatesRollingWindow(t *testing.T) {
	// 2026-03-02 is a Monday.
	now := time.Date(2026, 3, 2, 8, 0, 0, 0, time.UTC)
	svc := newTestService(openAllWeekdays("09:00", "17:00"), &fakeBooked{}, nil, now)

	dates, err := svc.BookableDates(context.Background(), "biz-1", 0)
	require.NoError(t, err)

	// 21-day window covers three full Mon-Fri work weeks.
	assert.Len(t, dates, 15)
	assert.Equal(t, "2026-03-02", dates[0])
	assert.NotContains(t, dates, "2026-03-07") // Saturday
	for _, d := range dates {
		parsed, err := time.Parse(DateLayout, d)
		require.NoError(t, err)
		assert.Less(t, int(parsed.Sub(now).Hours()), 21*24)
	}
}

func TestBookableDatesNarrowedWindow(t *testing.T) {
	now := time.Date(2026, 3, 2, 8, 0, 0, 0, time.UTC)
	svc := newTestService(openAllWeekdays("09:00", "17:00"), &fakeBooked{}, nil, now)

	dates, err := svc.BookableDates(context.Background(), "biz-1", 7)
	require.NoError(t, err)
	assert.Len(t, dates, 5) // one Mon-Fri work week

	// Requests above the configured window are capped at it.
	capped, err := svc.BookableDates(context.Background(), "biz-1", 90)
	require.NoError(t, err)
	assert.Len(t, capped, 15)
}

func TestDayAvailabilityMarksBookedSlots(t *testing.T) {
	now := time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC)
	booked := &fakeBooked{times: map[string][]string{
		"2026-03-02": {"10:00:00"},
	}}
	services := map[string]*catalog.Service{
		"svc-1": {ID: "svc-1", BusinessID: "biz-1", Name: "Facial", DurationMinutes: 60},
	}
	svc := newTestService(openAllWeekdays("09:00", "12:00"), booked, services, now)

	day, err := svc.DayAvailability(context.Background(), "biz-1", "svc-1", "2026-03-02")
	require.NoError(t, err)

	require.True(t, day.IsOpen)
	require.Len(t, day.Slots, 3) // 09:00, 10:00, 11:00
	assert.False(t, day.Slots[0].IsBooked)
	assert.True(t, day.Slots[1].IsBooked)
	assert.False(t, day.Slots[2].IsBooked)
}

func TestDayAvailabilityFreesSlotAfterCancellation(t *testing.T) {
	now := time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC)
	booked := &fakeBooked{times: map[string][]string{
		"2026-03-02": {"10:00"},
	}}
	svc := newTestService(openAllWeekdays("09:00", "12:00"), booked, nil, now)

	day, err := svc.DayAvailability(context.Background(), "biz-1", "", "2026-03-02")
	require.NoError(t, err)
	assert.True(t, day.Slots[2].IsBooked) // default 30m grid, 10:00 is index 2

	// A cancelled appointment no longer shows up in the booked lookup.
	booked.times["2026-03-02"] = nil
	day, err = svc.DayAvailability(context.Background(), "biz-1", "", "2026-03-02")
	require.NoError(t, err)
	for _, s := range day.Slots {
		assert.False(t, s.IsBooked)
	}
}

func TestDayAvailabilityClosedDay(t *testing.T) {
	now := time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC)
	svc := newTestService(openAllWeekdays("09:00", "12:00"), &fakeBooked{}, nil, now)

	// 2026-03-08 is a Sunday with no rules.
	day, err := svc.DayAvailability(context.Background(), "biz-1", "", "2026-03-08")
	require.NoError(t, err)
	assert.False(t, day.IsOpen)
	assert.Empty(t, day.Slots)
}

func TestDayAvailabilityUnknownService(t *testing.T) {
	now := time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC)
	svc := newTestService(openAllWeekdays("09:00", "12:00"), &fakeBooked{}, nil, now)

	_, err := svc.DayAvailability(context.Background(), "biz-1", "missing", "2026-03-02")
	assert.ErrorIs(t, err, catalog.ErrServiceNotFound)
}

func TestDayAvailabilityInvalidDate(t *testing.T) {
	now := time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC)
	svc := newTestService(openAllWeekdays("09:00", "12:00"), &fakeBooked{}, nil, now)

	_, err := svc.DayAvailability(context.Background(), "biz-1", "", "03/02/2026")
	assert.ErrorIs(t, err, ErrInvalidDate)
}

func TestValidateSelection(t *testing.T) {
	now := time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC)
	booked := &fakeBooked{times: map[string][]string{
		"2026-03-02": {"10:00"},
	}}
	svc := newTestService(openAllWeekdays("09:00", "12:00"), booked, nil, now)

	assert.NoError(t, svc.ValidateSelection(context.Background(), "biz-1", "", "2026-03-02", "09:30"))
	assert.NoError(t, svc.ValidateSelection(context.Background(), "biz-1", "", "2026-03-02", "9:30"), "unpadded input normalizes")

	assert.ErrorIs(t, svc.ValidateSelection(context.Background(), "biz-1", "", "2026-03-02", "10:00"), ErrSlotUnavailable)
	assert.ErrorIs(t, svc.ValidateSelection(context.Background(), "biz-1", "", "2026-03-02", "12:00"), ErrSlotUnavailable)
	assert.ErrorIs(t, svc.ValidateSelection(context.Background(), "biz-1", "", "2026-03-02", "not-a-time"), ErrSlotUnavailable)
	assert.ErrorIs(t, svc.ValidateSelection(context.Background(), "biz-1", "", "2026-03-08", "09:00"), ErrSlotUnavailable, "closed day offers nothing")
}
