package domain

import "time"

// TimeRange is a half-open time interval [Start, End).
// All overlap checks in the booking engine go through this type so the
// semantics stay identical across slot generation, holds and bookings.
type TimeRange struct {
	Start time.Time
	End   time.Time
}

// IsValid returns true if the range is well-formed (End after Start)
func (r TimeRange) IsValid() bool {
	return r.End.After(r.Start)
}

// Duration returns the length of the range
func (r TimeRange) Duration() time.Duration {
	return r.End.Sub(r.Start)
}

// Overlaps reports whether two ranges intersect.
// Half-open semantics: a session ending at 10:00 and one starting at
// 10:00 do not conflict.
func (r TimeRange) Overlaps(other TimeRange) bool {
	return r.Start.Before(other.End) && other.Start.Before(r.End)
}
