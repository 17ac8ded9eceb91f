package booking

import (
	"fmt"
	"time"
)

const (
	// DateLayout is the calendar-day format used across booking slots.
	DateLayout = "2006-01-02"
	// ClockLayout is the time-of-day format used across booking slots.
	ClockLayout = "15:04"
	// ClockGranularityMinutes is the smallest start-time increment accepted.
	ClockGranularityMinutes = 15

	minutesPerHour = 60
	minutesPerDay  = 24 * minutesPerHour
)

// Slot is a time span on a single calendar day: date, start time, and a
// duration in whole hours.
type Slot struct {
	Date      string
	StartTime string
	Duration  int
}

// ParseClock converts a HH:MM string to minutes since midnight.
func ParseClock(value string) (int, error) {
	parsed, err := time.Parse(ClockLayout, value)
	if err != nil {
		return 0, fmt.Errorf("invalid clock time %q: %w", value, err)
	}
	return parsed.Hour()*minutesPerHour + parsed.Minute(), nil
}

// ParseDate converts a YYYY-MM-DD string to a UTC midnight instant.
func ParseDate(value string) (time.Time, error) {
	parsed, err := time.Parse(DateLayout, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: %w", value, err)
	}
	return parsed, nil
}

// OnGranularity reports whether the clock time falls on the accepted increment.
func OnGranularity(value string) bool {
	minutes, err := ParseClock(value)
	if err != nil {
		return false
	}
	return minutes%ClockGranularityMinutes == 0
}

// CrossesMidnight reports whether the slot's end would pass 24:00. Such slots
// cannot be compared under the same-day overlap contract and are rejected at
// validation.
func (s Slot) CrossesMidnight() bool {
	start, err := ParseClock(s.StartTime)
	if err != nil {
		return false
	}
	return start+s.Duration*minutesPerHour > minutesPerDay
}

// Overlaps reports whether two slots overlap under the exclusive boundary
// rule: spans that touch end-to-end do not conflict. Slots on different
// calendar days never overlap. Malformed start times have been rejected by
// validation before slots reach this point; they compare as non-overlapping.
func (s Slot) Overlaps(other Slot) bool {
	if s.Date != other.Date {
		return false
	}

	aStart, err := ParseClock(s.StartTime)
	if err != nil {
		return false
	}
	bStart, err := ParseClock(other.StartTime)
	if err != nil {
		return false
	}

	aEnd := aStart + s.Duration*minutesPerHour
	bEnd := bStart + other.Duration*minutesPerHour

	return aStart < bEnd && bStart < aEnd
}

// FindConflict returns the first existing booking that blocks the candidate
// slot for the given hall. Rejected bookings never block a slot.
func FindConflict(existing []Booking, hallID string, candidate Slot) (Booking, bool) {
	for _, b := range existing {
		if b.HallID != hallID || b.Status == StatusRejected {
			continue
		}
		if b.Slot().Overlaps(candidate) {
			return b, true
		}
	}
	return Booking{}, false
}
