package cancel_booking

import (
	"time"

	cancelBooking "github.com/manmitra25/MM-BookingService/internal/usecase/cancel_booking"
)

// CancelBookingRequest HTTP request model
type CancelBookingRequest struct {
	Reason *string `json:"reason,omitempty"`
}

// BookingResponse HTTP response model
type BookingResponse struct {
	ID                 int64   `json:"id"`
	StudentID          string  `json:"studentId"`
	CounselorID        string  `json:"counselorId"`
	StartTime          string  `json:"startTime"`
	EndTime            string  `json:"endTime"`
	Status             string  `json:"status"`
	CancelledBy        *string `json:"cancelledBy,omitempty"`
	CancellationReason *string `json:"cancellationReason,omitempty"`
	CancelledAt        *string `json:"cancelledAt,omitempty"`
	UpdatedAt          string  `json:"updatedAt"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *cancelBooking.Response) *BookingResponse {
	var cancelledAt *string
	if resp.CancelledAt != nil {
		formatted := resp.CancelledAt.Format(time.RFC3339)
		cancelledAt = &formatted
	}

	return &BookingResponse{
		ID:                 resp.ID,
		StudentID:          resp.StudentID,
		CounselorID:        resp.CounselorID,
		StartTime:          resp.StartTime.Format(time.RFC3339),
		EndTime:            resp.EndTime.Format(time.RFC3339),
		Status:             resp.Status,
		CancelledBy:        resp.CancelledBy,
		CancellationReason: resp.CancellationReason,
		CancelledAt:        cancelledAt,
		UpdatedAt:          resp.UpdatedAt.Format(time.RFC3339),
	}
}
