// Package timeparse normalizes free-form time-of-day strings coming from
// schedule rows and appointment records. Input arrives in mixed shapes
// ("09:00", "09:00:00", "9:5"), so parsing is tolerant and never fatal:
// callers treat a failed parse as "drop this rule or slot".
package timeparse

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

var layouts = []string{"15:04:05", "15:04"}

// TimeOfDay is a wall-clock time at minute granularity.
type TimeOfDay struct {
	Hour   int
	Minute int
}

// Parse converts a raw time string into a TimeOfDay. It tries strict
// HH:mm:ss and HH:mm layouts first, then falls back to manual colon
// splitting that tolerates missing seconds and unpadded digits. Seconds
// are accepted and truncated. Returns ok=false on anything unparseable.
func Parse(raw string) (TimeOfDay, bool) {
	value := strings.TrimSpace(raw)
	if value == "" {
		return TimeOfDay{}, false
	}

	for _, layout := range layouts {
		if t, err := time.Parse(layout, value); err == nil {
			return TimeOfDay{Hour: t.Hour(), Minute: t.Minute()}, true
		}
	}

	segments := strings.Split(value, ":")
	if len(segments) < 2 {
		return TimeOfDay{}, false
	}

	hour, err := strconv.Atoi(strings.TrimSpace(segments[0]))
	if err != nil {
		return TimeOfDay{}, false
	}
	minute, err := strconv.Atoi(strings.TrimSpace(segments[1]))
	if err != nil {
		return TimeOfDay{}, false
	}
	seconds := 0
	if len(segments) > 2 {
		if parsed, err := strconv.Atoi(strings.TrimSpace(segments[2])); err == nil {
			seconds = parsed
		}
	}

	if hour < 0 || hour > 23 || minute < 0 || minute > 59 || seconds < 0 || seconds > 59 {
		return TimeOfDay{}, false
	}

	return TimeOfDay{Hour: hour, Minute: minute}, true
}

// Normalize parses raw and renders it back at HH:mm granularity.
func Normalize(raw string) (string, bool) {
	tod, ok := Parse(raw)
	if !ok {
		return "", false
	}
	return tod.String(), true
}

// String renders the time as "HH:mm", the canonical comparison form.
func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d", t.Hour, t.Minute)
}

// Minutes returns minutes since midnight, used for interval ordering.
func (t TimeOfDay) Minutes() int {
	return t.Hour*60 + t.Minute
}

// At anchors the time of day onto a calendar date in the date's location.
func (t TimeOfDay) At(date time.Time) time.Time {
	return time.Date(date.Year(), date.Month(), date.Day(), t.Hour, t.Minute, 0, 0, date.Location())
}

// Before reports whether t is strictly earlier than other.
func (t TimeOfDay) Before(other TimeOfDay) bool {
	return t.Minutes() < other.Minutes()
}

// AddMinutes returns the time of day d minutes later. The result may pass
// midnight; callers compare via Minutes which keeps growing monotonically.
func (t TimeOfDay) AddMinutes(d int) TimeOfDay {
	total := t.Minutes() + d
	return TimeOfDay{Hour: total / 60, Minute: total % 60}
}
