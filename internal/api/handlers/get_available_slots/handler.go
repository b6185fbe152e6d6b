package get_available_slots

import (
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/manmitra25/MM-BookingService/internal/api/handlers"
	"github.com/manmitra25/MM-BookingService/internal/domain"
	getSlots "github.com/manmitra25/MM-BookingService/internal/usecase/get_available_slots"
)

const (
	msgInvalidDate       = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgInvalidRange      = "некорректный период запроса"
	msgRangeTooWide      = "запрошенный период слишком широкий"
	msgCounselorNotFound = "консультант не найден"
)

type Handler struct {
	useCase GetAvailableSlotsUseCase
	logger  Logger
}

func NewHandler(useCase GetAvailableSlotsUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/counselors/{counselorId}/available-slots
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	counselorID := mux.Vars(r)["counselorId"]

	query := r.URL.Query()

	startDate, err := time.Parse(domain.DateFormat, query.Get("startDate"))
	if err != nil {
		h.logger.Warn("GET /counselors/{id}/available-slots - Invalid startDate: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	var endDate time.Time
	if raw := query.Get("endDate"); raw != "" {
		endDate, err = time.Parse(domain.DateFormat, raw)
		if err != nil {
			h.logger.Warn("GET /counselors/{id}/available-slots - Invalid endDate: %v", err)
			handlers.RespondBadRequest(w, msgInvalidDate)
			return
		}
	}

	result, err := h.useCase.Execute(r.Context(), &getSlots.Request{
		CounselorID: counselorID,
		StartDate:   startDate,
		EndDate:     endDate,
	})
	if err != nil {
		switch {
		case errors.Is(err, getSlots.ErrCounselorNotFound):
			h.logger.Warn("GET /counselors/{id}/available-slots - Counselor not found: counselor_id=%s", counselorID)
			handlers.RespondNotFound(w, msgCounselorNotFound)

		case errors.Is(err, getSlots.ErrRangeTooWide):
			h.logger.Warn("GET /counselors/{id}/available-slots - Range too wide: counselor_id=%s", counselorID)
			handlers.RespondBadRequest(w, msgRangeTooWide)

		case errors.Is(err, getSlots.ErrInvalidInput):
			h.logger.Warn("GET /counselors/{id}/available-slots - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidRange)

		default:
			h.logger.Error("GET /counselors/{id}/available-slots - Failed: counselor_id=%s, error=%v", counselorID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /counselors/{id}/available-slots - Returned %d slot(s): counselor_id=%s",
		len(result.Slots), counselorID)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
