package get_counselor_stats

import (
	"context"

	"github.com/manmitra25/MM-BookingService/internal/service/bookings/models"
)

type BookingService interface {
	GetCounselorStats(ctx context.Context, counselorID string, actorID string, actorRole string) (*models.SessionStatsResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
