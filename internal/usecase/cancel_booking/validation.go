package cancel_booking

import (
	"fmt"
	"time"

	"github.com/manmitra25/MM-BookingService/internal/domain"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.BookingID <= 0 {
		return fmt.Errorf("%w: bookingID must be positive", ErrInvalidInput)
	}

	if req.ActorID == "" {
		return fmt.Errorf("%w: actorID is required", ErrInvalidInput)
	}

	role := domain.ActorRole(req.ActorRole)
	if role != domain.RoleStudent && role != domain.RoleCounselor && !role.IsAdmin() {
		return fmt.Errorf("%w: unknown actor role %q", ErrInvalidInput, req.ActorRole)
	}

	if req.Reason != nil && len(*req.Reason) > domain.MaxCancellationReasonLength {
		return fmt.Errorf("%w: reason exceeds %d characters", ErrInvalidInput, domain.MaxCancellationReasonLength)
	}

	return nil
}

// authorizeCancel проверяет право актора отменить запись.
// Студент и консультант отменяют только собственные записи,
// администраторы любые.
func authorizeCancel(booking *domain.Booking, actorID string, role domain.ActorRole) error {
	if role.IsAdmin() {
		return nil
	}

	switch role {
	case domain.RoleStudent:
		if booking.StudentID == actorID {
			return nil
		}
	case domain.RoleCounselor:
		if booking.CounselorID == actorID {
			return nil
		}
	}

	return ErrAccessDenied
}

// validateCancellationWindow проверяет, что до начала сессии остаётся
// строго больше допустимого запаса: ровно на границе отмена уже закрыта
func validateCancellationWindow(booking *domain.Booking, now time.Time, cutoffHours int) error {
	cutoff := time.Duration(cutoffHours) * time.Hour
	if booking.StartTime.Sub(now) <= cutoff {
		return fmt.Errorf("%w: must cancel more than %d hours before the session", ErrCancellationWindowClosed, cutoffHours)
	}
	return nil
}
