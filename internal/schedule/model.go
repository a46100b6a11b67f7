package schedule

import (
	"time"

	"github.com/FUAD-ALSHABIBI/mee-ad-app/internal/timeparse"
)

// Rule is one weekly working-hour row for a business. A weekday may carry
// several open rows (morning/evening shifts) or a single closed marker with
// null times. Rules are replaced wholesale on schedule edits.
type Rule struct {
	ID         string  `json:"id"`
	BusinessID string  `json:"business_id"`
	DayOfWeek  int     `json:"day_of_week"` // 0=Sunday .. 6=Saturday
	IsOpen     bool    `json:"is_open"`
	StartTime  *string `json:"start_time"`
	EndTime    *string `json:"end_time"`
}

// RuleInput is the owner-submitted shape used when replacing a schedule.
type RuleInput struct {
	DayOfWeek int     `json:"day_of_week"`
	IsOpen    bool    `json:"is_open"`
	StartTime *string `json:"start_time"`
	EndTime   *string `json:"end_time"`
}

// Interval is an open [Start, End) wall-clock range on a single day.
type Interval struct {
	Start timeparse.TimeOfDay
	End   timeparse.TimeOfDay
}

// DaySchedule is the resolved set of open intervals for one calendar date.
// HasDefinedHours distinguishes "explicitly closed" from "nothing configured":
// it is true whenever at least one rule exists for the weekday, even if every
// rule failed to parse.
type DaySchedule struct {
	Intervals       []Interval
	HasDefinedHours bool
}

// NormalizeInputs sanitizes owner-submitted rules the way the setup wizard
// does: open rows need both times parseable with start < end, duplicate
// {day,start,end} rows collapse to one, and a day whose open rows all fail
// validation degrades to a single closed marker.
func NormalizeInputs(inputs []RuleInput) []RuleInput {
	type daySlot struct {
		day        int
		start, end string
	}
	seen := make(map[daySlot]struct{})
	openByDay := make(map[int][]RuleInput)
	daysSubmitted := make(map[int]struct{})

	for _, in := range inputs {
		if in.DayOfWeek < 0 || in.DayOfWeek > 6 {
			continue
		}
		daysSubmitted[in.DayOfWeek] = struct{}{}
		if !in.IsOpen || in.StartTime == nil || in.EndTime == nil {
			continue
		}
		start, okStart := timeparse.Parse(*in.StartTime)
		end, okEnd := timeparse.Parse(*in.EndTime)
		if !okStart || !okEnd || !start.Before(end) {
			continue
		}
		normStart, normEnd := start.String(), end.String()
		key := daySlot{day: in.DayOfWeek, start: normStart, end: normEnd}
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		openByDay[in.DayOfWeek] = append(openByDay[in.DayOfWeek], RuleInput{
			DayOfWeek: in.DayOfWeek,
			IsOpen:    true,
			StartTime: &normStart,
			EndTime:   &normEnd,
		})
	}

	var out []RuleInput
	for day := 0; day < 7; day++ {
		if _, ok := daysSubmitted[day]; !ok {
			continue
		}
		if slots := openByDay[day]; len(slots) > 0 {
			out = append(out, slots...)
			continue
		}
		out = append(out, RuleInput{DayOfWeek: day, IsOpen: false})
	}
	return out
}

// Weekday maps a calendar date to the rule indexing scheme (0=Sunday).
func Weekday(date time.Time) int {
	return int(date.Weekday())
}
