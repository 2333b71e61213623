package domain

import "time"

// BusyInterval is an externally reserved half-open span [Start, End).
type BusyInterval struct {
	Start time.Time
	End   time.Time
}

// IsEmpty reports whether the interval covers no time.
func (b BusyInterval) IsEmpty() bool {
	return !b.Start.Before(b.End)
}

// Overlaps reports whether [start, end) shares any time with the interval.
// Touching boundaries do not overlap, and an empty interval overlaps nothing.
func (b BusyInterval) Overlaps(start, end time.Time) bool {
	if b.IsEmpty() {
		return false
	}
	return start.Before(b.End) && end.After(b.Start)
}

// Slot is one fixed-width bookable interval of a day.
type Slot struct {
	Start     time.Time
	End       time.Time
	Available bool
}

// Duration returns the slot width.
func (s Slot) Duration() time.Duration {
	return s.End.Sub(s.Start)
}
