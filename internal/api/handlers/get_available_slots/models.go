package get_available_slots

import (
	"time"

	"github.com/manmitra25/MM-BookingService/internal/domain"
	getSlots "github.com/manmitra25/MM-BookingService/internal/usecase/get_available_slots"
)

// SlotResponse HTTP модель бронируемого слота
type SlotResponse struct {
	StartTime       string `json:"startTime"`
	EndTime         string `json:"endTime"`
	DurationMinutes int    `json:"durationMinutes"`
}

// AvailableSlotsResponse HTTP модель ответа со слотами
type AvailableSlotsResponse struct {
	CounselorID string         `json:"counselorId"`
	StartDate   string         `json:"startDate"`
	EndDate     string         `json:"endDate"`
	Slots       []SlotResponse `json:"slots"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getSlots.Response) *AvailableSlotsResponse {
	slots := make([]SlotResponse, len(resp.Slots))
	for i, s := range resp.Slots {
		slots[i] = SlotResponse{
			StartTime:       s.StartTime.Format(time.RFC3339),
			EndTime:         s.EndTime.Format(time.RFC3339),
			DurationMinutes: s.DurationMinutes,
		}
	}

	return &AvailableSlotsResponse{
		CounselorID: resp.CounselorID,
		StartDate:   resp.StartDate.Format(domain.DateFormat),
		EndDate:     resp.EndDate.Format(domain.DateFormat),
		Slots:       slots,
	}
}
