package domain

import "time"

// BookingStatus represents the status of a counseling session booking
type BookingStatus string

const (
	StatusConfirmed BookingStatus = "confirmed"
	StatusCompleted BookingStatus = "completed"
	StatusCancelled BookingStatus = "cancelled"
	StatusNoShow    BookingStatus = "no_show"
)

// SessionType represents how the counseling session is conducted
type SessionType string

const (
	SessionVideo    SessionType = "video"
	SessionAudio    SessionType = "audio"
	SessionChat     SessionType = "chat"
	SessionInPerson SessionType = "in_person"
)

// ActorRole is the role of the user performing an operation
type ActorRole string

const (
	RoleStudent    ActorRole = "student"
	RoleCounselor  ActorRole = "counselor"
	RoleAdmin      ActorRole = "admin"
	RoleSuperAdmin ActorRole = "super_admin"
)

// IsAdmin returns true for roles with administrative privileges
func (r ActorRole) IsAdmin() bool {
	return r == RoleAdmin || r == RoleSuperAdmin
}

// Booking represents one scheduled counseling session.
// Bookings are never deleted: terminal statuses keep the history intact.
type Booking struct {
	ID          int64
	StudentID   string
	CounselorID string
	StartTime   time.Time
	EndTime     time.Time
	Status      BookingStatus
	SessionType SessionType

	UserNotes      *string
	CounselorNotes *string
	MeetingLink    *string

	StudentRating   *int
	CounselorRating *int

	CancelledBy        *string
	CancellationReason *string
	CancelledAt        *time.Time

	RescheduledFrom *int64
	RescheduledTo   *int64

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Range returns the booking's time range
func (b *Booking) Range() TimeRange {
	return TimeRange{Start: b.StartTime, End: b.EndTime}
}

// DurationMinutes returns the session length in whole minutes
func (b *Booking) DurationMinutes() int {
	return int(b.EndTime.Sub(b.StartTime) / time.Minute)
}

// BlocksSlot returns true if the booking occupies its time range:
// confirmed and completed sessions block, cancelled and no-show do not
func (b *Booking) BlocksSlot() bool {
	return b.Status == StatusConfirmed || b.Status == StatusCompleted
}

// IsTerminal returns true if no further status transition is permitted
func (b *Booking) IsTerminal() bool {
	return b.Status != StatusConfirmed
}

// CanBeCancelled returns true if the booking is in a cancellable state
func (b *Booking) CanBeCancelled() bool {
	return b.Status == StatusConfirmed
}

// CanBeCompleted returns true if the booking is in a completable state
func (b *Booking) CanBeCompleted() bool {
	return b.Status == StatusConfirmed
}

// BookingsFilter фильтр для выборки бронирований
type BookingsFilter struct {
	StudentID    *string        // Фильтр по студенту (опционально)
	CounselorID  *string        // Фильтр по консультанту (опционально)
	Status       *BookingStatus // Фильтр по статусу (опционально)
	StartAfter   *time.Time     // Начало периода (опционально)
	StartBefore  *time.Time     // Конец периода (опционально)
	OnlyBlocking bool           // Только confirmed/completed (для проверки занятости)
}
