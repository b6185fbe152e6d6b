package domain

import (
	"time"

	"github.com/manmitra25/MM-BookingService/pkg/types"
)

// WeeklyAvailability is a counselor's recurring weekly schedule: for
// each weekday, an ordered list of session start times. Each entry
// implies one fixed-duration session slot.
//
// Owned by counselor profile management; the booking engine only reads it.
type WeeklyAvailability struct {
	Monday    []types.TimeString
	Tuesday   []types.TimeString
	Wednesday []types.TimeString
	Thursday  []types.TimeString
	Friday    []types.TimeString
	Saturday  []types.TimeString
	Sunday    []types.TimeString
}

// ForWeekday returns the template entries for the given weekday
func (a WeeklyAvailability) ForWeekday(weekday time.Weekday) []types.TimeString {
	switch weekday {
	case time.Monday:
		return a.Monday
	case time.Tuesday:
		return a.Tuesday
	case time.Wednesday:
		return a.Wednesday
	case time.Thursday:
		return a.Thursday
	case time.Friday:
		return a.Friday
	case time.Saturday:
		return a.Saturday
	case time.Sunday:
		return a.Sunday
	default:
		return nil
	}
}

// IsEmpty returns true if no weekday has any template entry
func (a WeeklyAvailability) IsEmpty() bool {
	return len(a.Monday) == 0 && len(a.Tuesday) == 0 && len(a.Wednesday) == 0 &&
		len(a.Thursday) == 0 && len(a.Friday) == 0 && len(a.Saturday) == 0 &&
		len(a.Sunday) == 0
}
