package schedule

import (
	"sort"
	"time"

	"github.com/FUAD-ALSHABIBI/mee-ad-app/internal/timeparse"
	"github.com/FUAD-ALSHABIBI/mee-ad-app/pkg/logging"
)

// Resolver projects weekly working-hour rules onto concrete calendar dates.
// Resolution is a pure function of the rules and the date's weekday; rules
// that fail to parse or are inverted are dropped, never fatal.
type Resolver struct {
	logger *logging.Logger
}

// NewResolver creates a resolver.
func NewResolver(logger *logging.Logger) *Resolver {
	if logger == nil {
		logger = logging.Default()
	}
	return &Resolver{logger: logger}
}

// ResolveDay returns the open intervals for the given date, sorted by start
// time ascending. HasDefinedHours is true iff any rule exists for the
// weekday, regardless of whether it produced a usable interval.
func (r *Resolver) ResolveDay(rules []Rule, date time.Time) DaySchedule {
	weekday := Weekday(date)

	var day DaySchedule
	for _, rule := range rules {
		if rule.DayOfWeek != weekday {
			continue
		}
		day.HasDefinedHours = true

		if !rule.IsOpen || rule.StartTime == nil || rule.EndTime == nil {
			continue
		}
		start, okStart := timeparse.Parse(*rule.StartTime)
		end, okEnd := timeparse.Parse(*rule.EndTime)
		if !okStart || !okEnd {
			r.logger.Warn("dropping unparseable working-hour rule",
				"business_id", rule.BusinessID,
				"rule_id", rule.ID,
				"day_of_week", rule.DayOfWeek,
			)
			continue
		}
		if !start.Before(end) {
			r.logger.Warn("dropping inverted working-hour rule",
				"business_id", rule.BusinessID,
				"rule_id", rule.ID,
				"start", start.String(),
				"end", end.String(),
			)
			continue
		}
		day.Intervals = append(day.Intervals, Interval{Start: start, End: end})
	}

	sort.Slice(day.Intervals, func(i, j int) bool {
		return day.Intervals[i].Start.Minutes() < day.Intervals[j].Start.Minutes()
	})

	return day
}

// BookableDates walks a rolling window starting at from and returns every
// date with at least one valid open interval. Dates are midnight-anchored in
// from's location.
func (r *Resolver) BookableDates(rules []Rule, from time.Time, windowDays int) []time.Time {
	if windowDays <= 0 {
		windowDays = 21
	}
	start := time.Date(from.Year(), from.Month(), from.Day(), 0, 0, 0, 0, from.Location())

	var dates []time.Time
	for offset := 0; offset < windowDays; offset++ {
		date := start.AddDate(0, 0, offset)
		if day := r.ResolveDay(rules, date); len(day.Intervals) > 0 {
			dates = append(dates, date)
		}
	}
	return dates
}
