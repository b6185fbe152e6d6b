package domain

import "time"

// Hold is a short-lived exclusive reservation on a counselor/time-range
// pair. It blocks a slot while one client completes the booking flow.
// Holds are never extended: a lapsed hold must be re-requested.
//
// A Hold is not consumed by booking creation: booking creation
// re-validates against all live holds and bookings independently.
type Hold struct {
	ID             string
	CounselorID    string
	StartTime      time.Time
	EndTime        time.Time
	OwnerSessionID string
	ExpiresAt      time.Time
	CreatedAt      time.Time
}

// Range returns the hold's time range
func (h *Hold) Range() TimeRange {
	return TimeRange{Start: h.StartTime, End: h.EndTime}
}

// IsExpired reports whether the hold has lapsed at the given instant.
// An expired hold must be treated as non-existent by every overlap
// check, regardless of whether the row has been swept yet.
func (h *Hold) IsExpired(now time.Time) bool {
	return !h.ExpiresAt.After(now)
}
