package create_hold

import (
	"errors"
	"net/http"

	"github.com/manmitra25/MM-BookingService/internal/api/handlers"
	"github.com/manmitra25/MM-BookingService/internal/api/middleware"
	createHold "github.com/manmitra25/MM-BookingService/internal/usecase/create_hold"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidTime        = "некорректный формат времени, ожидается RFC 3339"
	msgSlotNotAvailable   = "выбранный временной интервал недоступен"
	msgStartInPast        = "интервал должен начинаться в будущем"
)

type Handler struct {
	useCase CreateHoldUseCase
	logger  Logger
}

func NewHandler(useCase CreateHoldUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/holds
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req CreateHoldRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /holds - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(middleware.SessionID(r.Context()))
	if err != nil {
		h.logger.Warn("POST /holds - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidTime)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, createHold.ErrSlotNotAvailable):
			h.logger.Warn("POST /holds - Slot not available: counselor_id=%s", req.CounselorID)
			handlers.RespondConflict(w, msgSlotNotAvailable)

		case errors.Is(err, createHold.ErrStartInPast):
			h.logger.Warn("POST /holds - Start in past: counselor_id=%s", req.CounselorID)
			handlers.RespondBadRequest(w, msgStartInPast)

		case errors.Is(err, createHold.ErrInvalidInput):
			h.logger.Warn("POST /holds - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidRequestBody)

		default:
			h.logger.Error("POST /holds - Failed to create hold: counselor_id=%s, error=%v", req.CounselorID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /holds - Hold created successfully: hold_id=%s, counselor_id=%s", result.HoldID, req.CounselorID)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}
