package create_booking

import (
	"time"

	createBooking "github.com/manmitra25/MM-BookingService/internal/usecase/create_booking"
)

// CreateBookingRequest HTTP request model
type CreateBookingRequest struct {
	CounselorID string  `json:"counselorId"`
	StartTime   string  `json:"startTime"` // RFC 3339
	EndTime     string  `json:"endTime"`   // RFC 3339
	SessionType string  `json:"sessionType"`
	UserNotes   *string `json:"userNotes,omitempty"`
}

// BookingResponse HTTP response model
type BookingResponse struct {
	ID          int64   `json:"id"`
	StudentID   string  `json:"studentId"`
	CounselorID string  `json:"counselorId"`
	StartTime   string  `json:"startTime"`
	EndTime     string  `json:"endTime"`
	Status      string  `json:"status"`
	SessionType string  `json:"sessionType"`
	UserNotes   *string `json:"userNotes,omitempty"`
	MeetingLink *string `json:"meetingLink,omitempty"`
	CreatedAt   string  `json:"createdAt"`
	UpdatedAt   string  `json:"updatedAt"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateBookingRequest) ToUseCaseRequest(studentID, ownerSessionID string) (*createBooking.Request, error) {
	startTime, err := time.Parse(time.RFC3339, r.StartTime)
	if err != nil {
		return nil, err
	}

	endTime, err := time.Parse(time.RFC3339, r.EndTime)
	if err != nil {
		return nil, err
	}

	return &createBooking.Request{
		StudentID:      studentID,
		CounselorID:    r.CounselorID,
		StartTime:      startTime,
		EndTime:        endTime,
		SessionType:    r.SessionType,
		UserNotes:      r.UserNotes,
		OwnerSessionID: ownerSessionID,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createBooking.Response) *BookingResponse {
	return &BookingResponse{
		ID:          resp.ID,
		StudentID:   resp.StudentID,
		CounselorID: resp.CounselorID,
		StartTime:   resp.StartTime.Format(time.RFC3339),
		EndTime:     resp.EndTime.Format(time.RFC3339),
		Status:      resp.Status,
		SessionType: resp.SessionType,
		UserNotes:   resp.UserNotes,
		MeetingLink: resp.MeetingLink,
		CreatedAt:   resp.CreatedAt.Format(time.RFC3339),
		UpdatedAt:   resp.UpdatedAt.Format(time.RFC3339),
	}
}
