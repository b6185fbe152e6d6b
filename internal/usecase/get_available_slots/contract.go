package get_available_slots

import (
	"context"
	"time"

	"github.com/manmitra25/MM-BookingService/internal/domain"
	"github.com/manmitra25/MM-BookingService/internal/integrations/counselordirectory"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	ListWithFilter(ctx context.Context, filter domain.BookingsFilter) ([]*domain.Booking, error)
}

// HoldRepository интерфейс репозитория удержаний слотов
type HoldRepository interface {
	ListLiveBetween(ctx context.Context, counselorID string, from, to time.Time, now time.Time) ([]*domain.Hold, error)
}

// CounselorDirectoryClient интерфейс клиента каталога консультантов
type CounselorDirectoryClient interface {
	GetCounselor(ctx context.Context, counselorID string) (*counselordirectory.Counselor, error)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
