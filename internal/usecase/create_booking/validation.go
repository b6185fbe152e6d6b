package create_booking

import (
	"fmt"
	"time"

	"github.com/manmitra25/MM-BookingService/internal/domain"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.StudentID == "" {
		return fmt.Errorf("%w: studentID is required", ErrInvalidInput)
	}

	if req.CounselorID == "" {
		return fmt.Errorf("%w: counselorID is required", ErrInvalidInput)
	}

	if req.StartTime.IsZero() {
		return fmt.Errorf("%w: startTime is required", ErrInvalidInput)
	}

	if req.EndTime.IsZero() {
		return fmt.Errorf("%w: endTime is required", ErrInvalidInput)
	}

	if !req.EndTime.After(req.StartTime) {
		return fmt.Errorf("%w: endTime must be after startTime", ErrInvalidInput)
	}

	if !domain.IsValidSessionType(domain.SessionType(req.SessionType)) {
		return fmt.Errorf("%w: unknown session type %q", ErrInvalidInput, req.SessionType)
	}

	if req.UserNotes != nil && len(*req.UserNotes) > domain.MaxUserNotesLength {
		return fmt.Errorf("%w: userNotes exceeds %d characters", ErrInvalidInput, domain.MaxUserNotesLength)
	}

	return nil
}

// validateDuration проверяет, что длительность сессии в допустимом
// диапазоне. Границы диапазона включительны.
func validateDuration(start, end time.Time) error {
	minutes := int(end.Sub(start) / time.Minute)

	if minutes < domain.MinBookingDurationMinutes || minutes > domain.MaxBookingDurationMinutes {
		return fmt.Errorf("%w: duration must be between %d and %d minutes, got %d",
			ErrInvalidDuration, domain.MinBookingDurationMinutes, domain.MaxBookingDurationMinutes, minutes)
	}

	return nil
}

// validateStartInFuture проверяет, что сессия начинается строго в будущем
func validateStartInFuture(start, now time.Time) error {
	if !start.After(now) {
		return ErrStartInPast
	}
	return nil
}

// blockingHoldExists проверяет, есть ли среди удержаний живое удержание
// другого владельца. Собственное удержание заявителя слот не блокирует.
func blockingHoldExists(holds []*domain.Hold, ownerSessionID string) bool {
	for _, h := range holds {
		if h.OwnerSessionID != ownerSessionID {
			return true
		}
	}
	return false
}
