package schedule

import "errors"

var (
	// ErrNoRules is returned when a business has no working hours configured at all
	ErrNoRules = errors.New("no working hours configured")

	// ErrInvalidDay is returned when a day_of_week falls outside 0..6
	ErrInvalidDay = errors.New("day_of_week must be between 0 and 6")
)
