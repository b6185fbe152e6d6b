package models

import (
	"errors"
	"time"

	"github.com/manmitra25/MM-BookingService/internal/domain"
)

var (
	// ErrInvalidStatus возвращается при некорректном статусе
	ErrInvalidStatus = errors.New("invalid booking status")
)

// Request модели

// GetUserBookingsRequest запрос на получение записей пользователя
type GetUserBookingsRequest struct {
	UserID    string  `json:"userId"`
	ActorID   string  `json:"actorId"`
	ActorRole string  `json:"actorRole"`
	Status    *string `json:"status,omitempty"`
}

// Response модели

// BookingResponse ответ с данными записи
type BookingResponse struct {
	ID                 int64      `json:"id"`
	StudentID          string     `json:"studentId"`
	CounselorID        string     `json:"counselorId"`
	StartTime          time.Time  `json:"startTime"`
	EndTime            time.Time  `json:"endTime"`
	Status             string     `json:"status"`
	SessionType        string     `json:"sessionType"`
	UserNotes          *string    `json:"userNotes,omitempty"`
	CounselorNotes     *string    `json:"counselorNotes,omitempty"`
	MeetingLink        *string    `json:"meetingLink,omitempty"`
	StudentRating      *int       `json:"studentRating,omitempty"`
	CounselorRating    *int       `json:"counselorRating,omitempty"`
	CancelledBy        *string    `json:"cancelledBy,omitempty"`
	CancellationReason *string    `json:"cancellationReason,omitempty"`
	CancelledAt        *time.Time `json:"cancelledAt,omitempty"`
	CreatedAt          time.Time  `json:"createdAt"`
	UpdatedAt          time.Time  `json:"updatedAt"`
}

// BookingListResponse ответ со списком записей
type BookingListResponse struct {
	Bookings []*BookingResponse `json:"bookings"`
	Total    int                `json:"total"`
}

// FromDomainBooking конвертирует доменную запись в response
func FromDomainBooking(b *domain.Booking) *BookingResponse {
	return &BookingResponse{
		ID:                 b.ID,
		StudentID:          b.StudentID,
		CounselorID:        b.CounselorID,
		StartTime:          b.StartTime,
		EndTime:            b.EndTime,
		Status:             string(b.Status),
		SessionType:        string(b.SessionType),
		UserNotes:          b.UserNotes,
		CounselorNotes:     b.CounselorNotes,
		MeetingLink:        b.MeetingLink,
		StudentRating:      b.StudentRating,
		CounselorRating:    b.CounselorRating,
		CancelledBy:        b.CancelledBy,
		CancellationReason: b.CancellationReason,
		CancelledAt:        b.CancelledAt,
		CreatedAt:          b.CreatedAt,
		UpdatedAt:          b.UpdatedAt,
	}
}

// FromDomainBookingList конвертирует список доменных записей в response
func FromDomainBookingList(bookings []*domain.Booking) *BookingListResponse {
	result := make([]*BookingResponse, len(bookings))
	for i, b := range bookings {
		result[i] = FromDomainBooking(b)
	}
	return &BookingListResponse{
		Bookings: result,
		Total:    len(result),
	}
}

// SessionStatsResponse ответ со счётчиками сессий консультанта
type SessionStatsResponse struct {
	CounselorID       string `json:"counselorId"`
	TotalSessions     int64  `json:"totalSessions"`
	CompletedSessions int64  `json:"completedSessions"`
	CancelledSessions int64  `json:"cancelledSessions"`
}

// FromDomainSessionStats конвертирует доменные счётчики в response
func FromDomainSessionStats(s *domain.CounselorSessionStats) *SessionStatsResponse {
	return &SessionStatsResponse{
		CounselorID:       s.CounselorID,
		TotalSessions:     s.TotalSessions,
		CompletedSessions: s.CompletedSessions,
		CancelledSessions: s.CancelledSessions,
	}
}

// ToDomainBookingStatus конвертирует строку в доменный статус
func ToDomainBookingStatus(s string) (domain.BookingStatus, error) {
	status := domain.BookingStatus(s)
	switch status {
	case domain.StatusConfirmed, domain.StatusCompleted, domain.StatusCancelled, domain.StatusNoShow:
		return status, nil
	default:
		return "", ErrInvalidStatus
	}
}
