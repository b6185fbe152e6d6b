package create_booking

import (
	"errors"
	"net/http"

	"github.com/manmitra25/MM-BookingService/internal/api/handlers"
	"github.com/manmitra25/MM-BookingService/internal/api/middleware"
	createBooking "github.com/manmitra25/MM-BookingService/internal/usecase/create_booking"
)

const (
	msgInvalidRequestBody   = "некорректное тело запроса"
	msgInvalidTime          = "некорректный формат времени, ожидается RFC 3339"
	msgSlotNotAvailable     = "выбранный временной слот недоступен"
	msgCounselorNotFound    = "консультант не найден"
	msgCounselorUnavailable = "консультант не принимает записи"
	msgStartInPast          = "сессия должна начинаться в будущем"
	msgInvalidDuration      = "недопустимая длительность сессии"
)

type Handler struct {
	useCase CreateBookingUseCase
	logger  Logger
}

func NewHandler(useCase CreateBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/bookings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	studentID, ok := middleware.UserID(r.Context())
	if !ok {
		handlers.RespondError(w, http.StatusUnauthorized, msgInvalidRequestBody)
		return
	}

	var req CreateBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(studentID, middleware.SessionID(r.Context()))
	if err != nil {
		h.logger.Warn("POST /bookings - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidTime)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, createBooking.ErrSlotNotAvailable):
			h.logger.Warn("POST /bookings - Slot not available: student_id=%s, counselor_id=%s", studentID, req.CounselorID)
			handlers.RespondConflict(w, msgSlotNotAvailable)

		case errors.Is(err, createBooking.ErrCounselorNotFound):
			h.logger.Warn("POST /bookings - Counselor not found: counselor_id=%s", req.CounselorID)
			handlers.RespondNotFound(w, msgCounselorNotFound)

		case errors.Is(err, createBooking.ErrCounselorUnavailable):
			h.logger.Warn("POST /bookings - Counselor unavailable: counselor_id=%s", req.CounselorID)
			handlers.RespondConflict(w, msgCounselorUnavailable)

		case errors.Is(err, createBooking.ErrStartInPast):
			h.logger.Warn("POST /bookings - Start in past: student_id=%s", studentID)
			handlers.RespondBadRequest(w, msgStartInPast)

		case errors.Is(err, createBooking.ErrInvalidDuration):
			h.logger.Warn("POST /bookings - Invalid duration: student_id=%s", studentID)
			handlers.RespondBadRequest(w, msgInvalidDuration)

		case errors.Is(err, createBooking.ErrInvalidInput):
			h.logger.Warn("POST /bookings - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidRequestBody)

		default:
			h.logger.Error("POST /bookings - Failed to create booking: student_id=%s, counselor_id=%s, error=%v",
				studentID, req.CounselorID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /bookings - Booking created successfully: booking_id=%d, student_id=%s, counselor_id=%s",
		result.ID, studentID, req.CounselorID)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}
