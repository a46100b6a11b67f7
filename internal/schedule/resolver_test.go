package schedule

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strptr(s string) *string { return &s }

func openRule(day int, start, end string) Rule {
	return Rule{
		ID:         "rule-" + start,
		BusinessID: "biz-1",
		DayOfWeek:  day,
		IsOpen:     true,
		StartTime:  strptr(start),
		EndTime:    strptr(end),
	}
}

// 2026-03-02 is a Monday (weekday 1).
var monday = time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)

func TestResolveDayFiltersWeekday(t *testing.T) {
	r := NewResolver(nil)
	rules := []Rule{
		openRule(1, "09:00", "12:00"),
		openRule(2, "10:00", "16:00"), // Tuesday, ignored
	}

	day := r.ResolveDay(rules, monday)

	require.Len(t, day.Intervals, 1)
	assert.Equal(t, "09:00", day.Intervals[0].Start.String())
	assert.Equal(t, "12:00", day.Intervals[0].End.String())
	assert.True(t, day.HasDefinedHours)
}

func TestResolveDayNoRulesForWeekday(t *testing.T) {
	r := NewResolver(nil)
	rules := []Rule{openRule(3, "09:00", "12:00")}

	day := r.ResolveDay(rules, monday)

	assert.Empty(t, day.Intervals)
	assert.False(t, day.HasDefinedHours)
}

func TestResolveDayClosedMarkerDefinesHours(t *testing.T) {
	r := NewResolver(nil)
	rules := []Rule{{BusinessID: "biz-1", DayOfWeek: 1, IsOpen: false}}

	day := r.ResolveDay(rules, monday)

	assert.Empty(t, day.Intervals)
	assert.True(t, day.HasDefinedHours, "closed day is still a defined day")
}

func TestResolveDayDropsInvalidRulesKeepsValid(t *testing.T) {
	r := NewResolver(nil)
	rules := []Rule{
		openRule(1, "18:00", "09:00"), // inverted
		openRule(1, "14:00", "17:00"),
		{BusinessID: "biz-1", DayOfWeek: 1, IsOpen: true, StartTime: strptr("garbage"), EndTime: strptr("12:00")},
		{BusinessID: "biz-1", DayOfWeek: 1, IsOpen: true, StartTime: nil, EndTime: strptr("12:00")},
	}

	day := r.ResolveDay(rules, monday)

	require.Len(t, day.Intervals, 1)
	assert.Equal(t, "14:00", day.Intervals[0].Start.String())
	assert.True(t, day.HasDefinedHours)
}

func TestResolveDaySortsIntervals(t *testing.T) {
	r := NewResolver(nil)
	rules := []Rule{
		openRule(1, "14:00", "17:00"),
		openRule(1, "09:00", "12:00"),
	}

	day := r.ResolveDay(rules, monday)

	require.Len(t, day.Intervals, 2)
	assert.Equal(t, "09:00", day.Intervals[0].Start.String())
	assert.Equal(t, "14:00", day.Intervals[1].Start.String())
}

func TestResolveDayIsIdempotent(t *testing.T) {
	r := NewResolver(nil)
	rules := []Rule{
		openRule(1, "09:00", "12:00"),
		openRule(1, "14:00", "17:00"),
	}

	first := r.ResolveDay(rules, monday)
	second := r.ResolveDay(rules, monday)

	assert.Equal(t, first, second)
}

func TestBookableDates(t *testing.T) {
	r := NewResolver(nil)
	// Open Mondays and Thursdays only.
	rules := []Rule{
		openRule(1, "09:00", "17:00"),
		openRule(4, "09:00", "17:00"),
		{BusinessID: "biz-1", DayOfWeek: 0, IsOpen: false},
	}

	dates := r.BookableDates(rules, monday, 21)

	// 3 Mondays + 3 Thursdays in a 21-day window starting on a Monday.
	require.Len(t, dates, 6)
	for _, d := range dates {
		wd := d.Weekday()
		assert.True(t, wd == time.Monday || wd == time.Thursday, "unexpected weekday %s", wd)
	}
	assert.Equal(t, monday, dates[0])
}

func TestBookableDatesDefaultsWindow(t *testing.T) {
	r := NewResolver(nil)
	rules := []Rule{openRule(1, "09:00", "17:00")}

	dates := r.BookableDates(rules, monday, 0)

	assert.Len(t, dates, 3, "21-day default window holds three Mondays")
}

func TestBookableDatesEmptySchedule(t *testing.T) {
	r := NewResolver(nil)

	assert.Empty(t, r.BookableDates(nil, monday, 21))
}
