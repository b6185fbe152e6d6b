package create_hold

import (
	"time"

	createHold "github.com/manmitra25/MM-BookingService/internal/usecase/create_hold"
)

// CreateHoldRequest HTTP request model
type CreateHoldRequest struct {
	CounselorID string `json:"counselorId"`
	StartTime   string `json:"startTime"` // RFC 3339
	EndTime     string `json:"endTime"`   // RFC 3339
}

// HoldResponse HTTP response model
type HoldResponse struct {
	HoldID    string `json:"holdId"`
	ExpiresAt string `json:"expiresAt"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateHoldRequest) ToUseCaseRequest(ownerSessionID string) (*createHold.Request, error) {
	startTime, err := time.Parse(time.RFC3339, r.StartTime)
	if err != nil {
		return nil, err
	}

	endTime, err := time.Parse(time.RFC3339, r.EndTime)
	if err != nil {
		return nil, err
	}

	return &createHold.Request{
		CounselorID:    r.CounselorID,
		StartTime:      startTime,
		EndTime:        endTime,
		OwnerSessionID: ownerSessionID,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createHold.Response) *HoldResponse {
	return &HoldResponse{
		HoldID:    resp.HoldID,
		ExpiresAt: resp.ExpiresAt.Format(time.RFC3339),
	}
}
