package bookings

import (
	"context"

	"github.com/manmitra25/MM-BookingService/internal/domain"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	ListWithFilter(ctx context.Context, filter domain.BookingsFilter) ([]*domain.Booking, error)
}

// StatsRepository интерфейс репозитория счётчиков сессий
type StatsRepository interface {
	GetByCounselor(ctx context.Context, counselorID string) (*domain.CounselorSessionStats, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
