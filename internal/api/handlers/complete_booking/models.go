package complete_booking

import (
	"time"

	completeBooking "github.com/manmitra25/MM-BookingService/internal/usecase/complete_booking"
)

// CompleteBookingRequest HTTP request model
type CompleteBookingRequest struct {
	CounselorNotes  *string `json:"counselorNotes,omitempty"`
	CounselorRating *int    `json:"counselorRating,omitempty"`
}

// BookingResponse HTTP response model
type BookingResponse struct {
	ID              int64   `json:"id"`
	StudentID       string  `json:"studentId"`
	CounselorID     string  `json:"counselorId"`
	StartTime       string  `json:"startTime"`
	EndTime         string  `json:"endTime"`
	Status          string  `json:"status"`
	CounselorNotes  *string `json:"counselorNotes,omitempty"`
	CounselorRating *int    `json:"counselorRating,omitempty"`
	UpdatedAt       string  `json:"updatedAt"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *completeBooking.Response) *BookingResponse {
	return &BookingResponse{
		ID:              resp.ID,
		StudentID:       resp.StudentID,
		CounselorID:     resp.CounselorID,
		StartTime:       resp.StartTime.Format(time.RFC3339),
		EndTime:         resp.EndTime.Format(time.RFC3339),
		Status:          resp.Status,
		CounselorNotes:  resp.CounselorNotes,
		CounselorRating: resp.CounselorRating,
		UpdatedAt:       resp.UpdatedAt.Format(time.RFC3339),
	}
}
