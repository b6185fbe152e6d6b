package create_hold

import (
	"context"
	"time"

	"github.com/manmitra25/MM-BookingService/internal/domain"
)

// HoldRepository интерфейс репозитория удержаний слотов
type HoldRepository interface {
	Create(ctx context.Context, hold *domain.Hold) (*domain.Hold, error)
	GetOverlapping(ctx context.Context, counselorID string, rng domain.TimeRange, now time.Time) ([]*domain.Hold, error)
	DeleteExpiredForCounselor(ctx context.Context, counselorID string, now time.Time) error
}

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetOverlapping(ctx context.Context, counselorID string, rng domain.TimeRange) ([]*domain.Booking, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
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
