package domain

import "time"

// CounselorSessionStats are per-counselor session counters maintained
// as a side effect of booking lifecycle transitions: creation
// increments total, completion increments completed, cancellation
// increments cancelled.
type CounselorSessionStats struct {
	CounselorID       string
	TotalSessions     int64
	CompletedSessions int64
	CancelledSessions int64
	UpdatedAt         time.Time
}
