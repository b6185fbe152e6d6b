package cancel_booking

import (
	"context"
	"errors"
	"fmt"

	"github.com/manmitra25/MM-BookingService/internal/domain"
	bookingRepo "github.com/manmitra25/MM-BookingService/internal/infra/storage/booking"
	"github.com/manmitra25/MM-BookingService/internal/integrations/auditsink"
	"github.com/manmitra25/MM-BookingService/internal/integrations/notifier"
)

// UseCase use case для отмены записи на консультацию
type UseCase struct {
	bookingRepo             BookingRepository
	statsRepo               StatsRepository
	notifierClient          NotifierClient
	auditClient             AuditSinkClient
	txManager               TransactionManager
	timeProvider            TimeProvider
	cancellationCutoffHours int
	logger                  Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepository BookingRepository,
	statsRepo StatsRepository,
	notifierClient NotifierClient,
	auditClient AuditSinkClient,
	txManager TransactionManager,
	cancellationCutoffHours int,
	logger Logger,
) *UseCase {
	if cancellationCutoffHours <= 0 {
		cancellationCutoffHours = domain.DefaultCancellationCutoffHours
	}
	return &UseCase{
		bookingRepo:             bookingRepository,
		statsRepo:               statsRepo,
		notifierClient:          notifierClient,
		auditClient:             auditClient,
		txManager:               txManager,
		timeProvider:            &RealTimeProvider{},
		cancellationCutoffHours: cancellationCutoffHours,
		logger:                  logger,
	}
}

// Execute выполняет use case отмены записи.
// Чтение записи внутри транзакции берёт блокировку строки, поэтому
// конкурирующие переходы статуса выстраиваются в очередь, а второй
// в очереди увидит уже терминальный статус.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CancelBooking: booking=%d, actor=%s, role=%s", req.BookingID, req.ActorID, req.ActorRole)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CancelBooking: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем текущее время
	now := uc.timeProvider.Now()

	var result *domain.Booking

	// 3. Выполняем операции с БД в сериализуемой транзакции
	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 3.1. Читаем запись с блокировкой строки
		booking, err := uc.bookingRepo.GetByID(txCtx, req.BookingID)
		if err != nil {
			if errors.Is(err, bookingRepo.ErrBookingNotFound) {
				uc.logger.Warn("CancelBooking: booking id=%d not found", req.BookingID)
				return ErrBookingNotFound
			}
			uc.logger.Error("CancelBooking: failed to get booking id=%d: %v", req.BookingID, err)
			return fmt.Errorf("%w: failed to get booking: %v", ErrInternal, err)
		}

		// 3.2. Проверяем права актора
		if err := authorizeCancel(booking, req.ActorID, domain.ActorRole(req.ActorRole)); err != nil {
			uc.logger.Warn("CancelBooking: actor id=%s role=%s denied for booking id=%d",
				req.ActorID, req.ActorRole, req.BookingID)
			return err
		}

		// 3.3. Отменить можно только подтверждённую запись
		if !booking.CanBeCancelled() {
			uc.logger.Warn("CancelBooking: booking id=%d is in status %s", req.BookingID, booking.Status)
			return ErrNotCancellable
		}

		// 3.4. Проверяем окно отмены
		if err := validateCancellationWindow(booking, now, uc.cancellationCutoffHours); err != nil {
			uc.logger.Warn("CancelBooking: window closed for booking id=%d, starts at %s",
				req.BookingID, booking.StartTime.Format(domain.TimeFormatFull))
			return err
		}

		// 3.5. Переводим статус
		reason := ""
		if req.Reason != nil {
			reason = *req.Reason
		}

		if err := uc.bookingRepo.Cancel(txCtx, req.BookingID, req.ActorID, reason); err != nil {
			uc.logger.Error("CancelBooking: failed to cancel booking id=%d: %v", req.BookingID, err)
			return fmt.Errorf("%w: failed to cancel booking: %v", ErrInternal, err)
		}

		// 3.6. Счётчик отменённых сессий меняется в той же транзакции
		if err := uc.statsRepo.IncrementCancelled(txCtx, booking.CounselorID); err != nil {
			uc.logger.Error("CancelBooking: failed to increment cancelled sessions: %v", err)
			return fmt.Errorf("%w: failed to increment cancelled sessions: %v", ErrInternal, err)
		}

		booking.Status = domain.StatusCancelled
		booking.CancelledBy = &req.ActorID
		booking.CancellationReason = req.Reason
		booking.CancelledAt = &now
		booking.UpdatedAt = now

		result = booking
		return nil
	})

	if err != nil {
		return nil, err
	}

	uc.logger.Info("CancelBooking: successfully cancelled booking id=%d", result.ID)

	// 4. Побочные эффекты после коммита, неуспех только логируется
	uc.sendSideEffects(ctx, result, req.ActorID)

	return &Response{
		ID:                 result.ID,
		StudentID:          result.StudentID,
		CounselorID:        result.CounselorID,
		StartTime:          result.StartTime,
		EndTime:            result.EndTime,
		Status:             string(result.Status),
		CancelledBy:        result.CancelledBy,
		CancellationReason: result.CancellationReason,
		CancelledAt:        result.CancelledAt,
		UpdatedAt:          result.UpdatedAt,
	}, nil
}

// sendSideEffects отправляет уведомления сторонам и событие аудита
func (uc *UseCase) sendSideEffects(ctx context.Context, booking *domain.Booking, actorID string) {
	notification := notifier.Notification{
		Type:      notifier.TypeBookingCancelled,
		Message:   fmt.Sprintf("Session on %s was cancelled", booking.StartTime.Format(domain.TimeFormatFull)),
		BookingID: booking.ID,
	}

	if err := uc.notifierClient.Notify(ctx, booking.StudentID, notification); err != nil {
		uc.logger.Error("CancelBooking: failed to notify student id=%s: %v", booking.StudentID, err)
	}
	if err := uc.notifierClient.Notify(ctx, booking.CounselorID, notification); err != nil {
		uc.logger.Error("CancelBooking: failed to notify counselor id=%s: %v", booking.CounselorID, err)
	}

	event := auditsink.AuditEvent{
		EventType: auditsink.EventBookingCancelled,
		ActorID:   actorID,
		Metadata: map[string]string{
			"booking_id":   fmt.Sprintf("%d", booking.ID),
			"counselor_id": booking.CounselorID,
		},
	}

	if err := uc.auditClient.Record(ctx, event); err != nil {
		uc.logger.Error("CancelBooking: failed to record audit event: %v", err)
	}
}
