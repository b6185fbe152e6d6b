package complete_booking

import (
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/manmitra25/MM-BookingService/internal/api/handlers"
	"github.com/manmitra25/MM-BookingService/internal/api/middleware"
	completeBooking "github.com/manmitra25/MM-BookingService/internal/usecase/complete_booking"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidBookingID   = "некорректный идентификатор записи"
	msgBookingNotFound    = "запись не найдена"
	msgAccessDenied       = "завершить сессию может только её консультант"
	msgNotCompletable     = "запись нельзя завершить в текущем статусе"
	msgSessionNotStarted  = "сессия ещё не началась"
)

type Handler struct {
	useCase CompleteBookingUseCase
	logger  Logger
}

func NewHandler(useCase CompleteBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle PATCH /api/v1/bookings/{bookingId}/complete
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	counselorID, ok := middleware.UserID(r.Context())
	if !ok {
		handlers.RespondError(w, http.StatusUnauthorized, msgAccessDenied)
		return
	}

	bookingID, err := strconv.ParseInt(mux.Vars(r)["bookingId"], 10, 64)
	if err != nil {
		h.logger.Warn("PATCH /bookings/{id}/complete - Invalid booking id: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBookingID)
		return
	}

	// Тело опционально: заметки и оценка не обязательны
	var req CompleteBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil && !errors.Is(err, io.EOF) {
		h.logger.Warn("PATCH /bookings/{id}/complete - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &completeBooking.Request{
		BookingID:       bookingID,
		CounselorID:     counselorID,
		CounselorNotes:  req.CounselorNotes,
		CounselorRating: req.CounselorRating,
	})
	if err != nil {
		switch {
		case errors.Is(err, completeBooking.ErrBookingNotFound):
			h.logger.Warn("PATCH /bookings/{id}/complete - Booking not found: booking_id=%d", bookingID)
			handlers.RespondNotFound(w, msgBookingNotFound)

		case errors.Is(err, completeBooking.ErrAccessDenied):
			h.logger.Warn("PATCH /bookings/{id}/complete - Access denied: booking_id=%d, counselor_id=%s",
				bookingID, counselorID)
			handlers.RespondForbidden(w, msgAccessDenied)

		case errors.Is(err, completeBooking.ErrNotCompletable):
			h.logger.Warn("PATCH /bookings/{id}/complete - Not completable: booking_id=%d", bookingID)
			handlers.RespondBadRequest(w, msgNotCompletable)

		case errors.Is(err, completeBooking.ErrSessionNotStarted):
			h.logger.Warn("PATCH /bookings/{id}/complete - Session not started: booking_id=%d", bookingID)
			handlers.RespondBadRequest(w, msgSessionNotStarted)

		case errors.Is(err, completeBooking.ErrInvalidInput):
			h.logger.Warn("PATCH /bookings/{id}/complete - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidRequestBody)

		default:
			h.logger.Error("PATCH /bookings/{id}/complete - Failed: booking_id=%d, error=%v", bookingID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /bookings/{id}/complete - Booking completed successfully: booking_id=%d, counselor_id=%s",
		bookingID, counselorID)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
