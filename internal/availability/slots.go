package availability

import (
	"time"

	"github.com/FUAD-ALSHABIBI/mee-ad-app/internal/schedule"
	"github.com/FUAD-ALSHABIBI/mee-ad-app/internal/timeparse"
)

// DefaultSlotMinutes is used when a service duration is missing or invalid.
const DefaultSlotMinutes = 30

// Slot is one offerable appointment window on a given date.
type Slot struct {
	StartTime string `json:"start_time"` // HH:mm
	EndTime   string `json:"end_time"`   // HH:mm
	IsBooked  bool   `json:"is_booked"`
}

// GenerateSlots cuts the day's open intervals into back-to-back slots of the
// given duration. A slot is emitted only when it fits entirely inside its
// interval; the leftover tail is discarded. When date is today (relative to
// now), slots that already started are skipped. Duplicate {start,end} pairs
// across overlapping intervals collapse to one.
func GenerateSlots(intervals []schedule.Interval, durationMinutes int, date time.Time, now time.Time) []Slot {
	if durationMinutes <= 0 {
		durationMinutes = DefaultSlotMinutes
	}

	sameDay := date.Year() == now.Year() && date.Month() == now.Month() && date.Day() == now.Day()

	type slotKey struct{ start, end string }
	seen := make(map[slotKey]struct{})

	var slots []Slot
	for _, iv := range intervals {
		pointer := iv.Start
		for {
			end := pointer.AddMinutes(durationMinutes)
			if end.Minutes() > iv.End.Minutes() {
				break
			}
			if !sameDay || !pointer.At(date).Before(now) {
				key := slotKey{start: pointer.String(), end: end.String()}
				if _, dup := seen[key]; !dup {
					seen[key] = struct{}{}
					slots = append(slots, Slot{StartTime: pointer.String(), EndTime: end.String()})
				}
			}
			pointer = end
		}
	}
	return slots
}

// MarkBooked flags every slot whose start time appears in booked. Booked
// entries are normalized before comparison so "09:00:00" and "9:00" both
// match a "09:00" slot.
func MarkBooked(slots []Slot, booked []string) []Slot {
	if len(booked) == 0 {
		return slots
	}
	taken := make(map[string]struct{}, len(booked))
	for _, raw := range booked {
		if norm, ok := timeparse.Normalize(raw); ok {
			taken[norm] = struct{}{}
		}
	}
	for i := range slots {
		if _, ok := taken[slots[i].StartTime]; ok {
			slots[i].IsBooked = true
		}
	}
	return slots
}
