package get_available_slots

import (
	"fmt"
	"time"

	"github.com/manmitra25/MM-BookingService/internal/domain"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.CounselorID == "" {
		return fmt.Errorf("%w: counselorID is required", ErrInvalidInput)
	}

	if req.StartDate.IsZero() {
		return fmt.Errorf("%w: startDate is required", ErrInvalidInput)
	}

	if !req.EndDate.IsZero() && req.EndDate.Before(req.StartDate) {
		return fmt.Errorf("%w: endDate must not precede startDate", ErrInvalidInput)
	}

	return nil
}

// validateRange проверяет ширину запрошенного периода
func validateRange(start, end time.Time) error {
	days := int(end.Sub(start)/(24*time.Hour)) + 1
	if days > domain.MaxSlotRangeDays {
		return fmt.Errorf("%w: at most %d days per request", ErrRangeTooWide, domain.MaxSlotRangeDays)
	}
	return nil
}
