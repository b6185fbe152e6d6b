package get_counselor_stats

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/manmitra25/MM-BookingService/internal/api/handlers"
	"github.com/manmitra25/MM-BookingService/internal/api/middleware"
	"github.com/manmitra25/MM-BookingService/internal/service/bookings"
)

const (
	msgMissingCounselorID = "не указан идентификатор консультанта"
	msgAccessDenied       = "недостаточно прав для просмотра статистики"
)

type Handler struct {
	service BookingService
	logger  Logger
}

func NewHandler(service BookingService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/counselors/{counselorId}/stats
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	actorID, ok := middleware.UserID(r.Context())
	if !ok {
		handlers.RespondError(w, http.StatusUnauthorized, msgAccessDenied)
		return
	}

	counselorID := mux.Vars(r)["counselorId"]
	if counselorID == "" {
		h.logger.Warn("GET /counselors/{id}/stats - Missing counselor id")
		handlers.RespondBadRequest(w, msgMissingCounselorID)
		return
	}

	result, err := h.service.GetCounselorStats(r.Context(), counselorID, actorID, middleware.UserRole(r.Context()))
	if err != nil {
		switch {
		case errors.Is(err, bookings.ErrAccessDenied):
			h.logger.Warn("GET /counselors/{id}/stats - Access denied: counselor_id=%s, actor_id=%s", counselorID, actorID)
			handlers.RespondForbidden(w, msgAccessDenied)

		default:
			h.logger.Error("GET /counselors/{id}/stats - Failed: counselor_id=%s, error=%v", counselorID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /counselors/{id}/stats - Stats fetched successfully: counselor_id=%s", counselorID)
	handlers.RespondJSON(w, http.StatusOK, result)
}
