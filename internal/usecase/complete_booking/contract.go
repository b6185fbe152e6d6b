package complete_booking

import (
	"context"
	"time"

	"github.com/manmitra25/MM-BookingService/internal/domain"
	"github.com/manmitra25/MM-BookingService/internal/integrations/auditsink"
	"github.com/manmitra25/MM-BookingService/internal/integrations/notifier"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	Complete(ctx context.Context, id int64, counselorNotes *string, counselorRating *int) error
}

// StatsRepository интерфейс репозитория статистики консультантов
type StatsRepository interface {
	IncrementCompleted(ctx context.Context, counselorID string) error
}

// NotifierClient интерфейс клиента уведомлений
type NotifierClient interface {
	Notify(ctx context.Context, userID string, notification notifier.Notification) error
}

// AuditSinkClient интерфейс клиента журнала аудита
type AuditSinkClient interface {
	Record(ctx context.Context, event auditsink.AuditEvent) error
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
