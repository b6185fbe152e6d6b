package complete_booking

import (
	"context"
	"errors"
	"fmt"

	"github.com/manmitra25/MM-BookingService/internal/domain"
	bookingRepo "github.com/manmitra25/MM-BookingService/internal/infra/storage/booking"
	"github.com/manmitra25/MM-BookingService/internal/integrations/auditsink"
	"github.com/manmitra25/MM-BookingService/internal/integrations/notifier"
)

// UseCase use case для завершения проведённой сессии
type UseCase struct {
	bookingRepo    BookingRepository
	statsRepo      StatsRepository
	notifierClient NotifierClient
	auditClient    AuditSinkClient
	txManager      TransactionManager
	timeProvider   TimeProvider
	logger         Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepository BookingRepository,
	statsRepo StatsRepository,
	notifierClient NotifierClient,
	auditClient AuditSinkClient,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:    bookingRepository,
		statsRepo:      statsRepo,
		notifierClient: notifierClient,
		auditClient:    auditClient,
		txManager:      txManager,
		timeProvider:   &RealTimeProvider{},
		logger:         logger,
	}
}

// Execute выполняет use case завершения сессии.
// Завершить запись может только её консультант и только после начала
// сессии.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CompleteBooking: booking=%d, counselor=%s", req.BookingID, req.CounselorID)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CompleteBooking: validation failed: %v", err)
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
				uc.logger.Warn("CompleteBooking: booking id=%d not found", req.BookingID)
				return ErrBookingNotFound
			}
			uc.logger.Error("CompleteBooking: failed to get booking id=%d: %v", req.BookingID, err)
			return fmt.Errorf("%w: failed to get booking: %v", ErrInternal, err)
		}

		// 3.2. Завершает только консультант, к которому была запись
		if booking.CounselorID != req.CounselorID {
			uc.logger.Warn("CompleteBooking: counselor id=%s denied for booking id=%d",
				req.CounselorID, req.BookingID)
			return ErrAccessDenied
		}

		// 3.3. Завершить можно только подтверждённую запись
		if !booking.CanBeCompleted() {
			uc.logger.Warn("CompleteBooking: booking id=%d is in status %s", req.BookingID, booking.Status)
			return ErrNotCompletable
		}

		// 3.4. Сессия должна была начаться
		if booking.StartTime.After(now) {
			uc.logger.Warn("CompleteBooking: booking id=%d starts at %s, not started yet",
				req.BookingID, booking.StartTime.Format(domain.TimeFormatFull))
			return ErrSessionNotStarted
		}

		// 3.5. Переводим статус
		if err := uc.bookingRepo.Complete(txCtx, req.BookingID, req.CounselorNotes, req.CounselorRating); err != nil {
			uc.logger.Error("CompleteBooking: failed to complete booking id=%d: %v", req.BookingID, err)
			return fmt.Errorf("%w: failed to complete booking: %v", ErrInternal, err)
		}

		// 3.6. Счётчик завершённых сессий меняется в той же транзакции
		if err := uc.statsRepo.IncrementCompleted(txCtx, booking.CounselorID); err != nil {
			uc.logger.Error("CompleteBooking: failed to increment completed sessions: %v", err)
			return fmt.Errorf("%w: failed to increment completed sessions: %v", ErrInternal, err)
		}

		booking.Status = domain.StatusCompleted
		if req.CounselorNotes != nil {
			booking.CounselorNotes = req.CounselorNotes
		}
		if req.CounselorRating != nil {
			booking.CounselorRating = req.CounselorRating
		}
		booking.UpdatedAt = now

		result = booking
		return nil
	})

	if err != nil {
		return nil, err
	}

	uc.logger.Info("CompleteBooking: successfully completed booking id=%d", result.ID)

	// 4. Побочные эффекты после коммита, неуспех только логируется
	uc.sendSideEffects(ctx, result)

	return &Response{
		ID:              result.ID,
		StudentID:       result.StudentID,
		CounselorID:     result.CounselorID,
		StartTime:       result.StartTime,
		EndTime:         result.EndTime,
		Status:          string(result.Status),
		CounselorNotes:  result.CounselorNotes,
		CounselorRating: result.CounselorRating,
		UpdatedAt:       result.UpdatedAt,
	}, nil
}

// sendSideEffects отправляет уведомление студенту и событие аудита
func (uc *UseCase) sendSideEffects(ctx context.Context, booking *domain.Booking) {
	notification := notifier.Notification{
		Type:      notifier.TypeBookingCompleted,
		Message:   fmt.Sprintf("Session on %s was completed", booking.StartTime.Format(domain.TimeFormatFull)),
		BookingID: booking.ID,
	}

	if err := uc.notifierClient.Notify(ctx, booking.StudentID, notification); err != nil {
		uc.logger.Error("CompleteBooking: failed to notify student id=%s: %v", booking.StudentID, err)
	}

	event := auditsink.AuditEvent{
		EventType: auditsink.EventBookingCompleted,
		ActorID:   booking.CounselorID,
		Metadata: map[string]string{
			"booking_id": fmt.Sprintf("%d", booking.ID),
			"student_id": booking.StudentID,
		},
	}

	if err := uc.auditClient.Record(ctx, event); err != nil {
		uc.logger.Error("CompleteBooking: failed to record audit event: %v", err)
	}
}

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.BookingID <= 0 {
		return fmt.Errorf("%w: bookingID must be positive", ErrInvalidInput)
	}

	if req.CounselorID == "" {
		return fmt.Errorf("%w: counselorID is required", ErrInvalidInput)
	}

	if req.CounselorNotes != nil && len(*req.CounselorNotes) > domain.MaxCounselorNotesLength {
		return fmt.Errorf("%w: counselorNotes exceeds %d characters", ErrInvalidInput, domain.MaxCounselorNotesLength)
	}

	if req.CounselorRating != nil && (*req.CounselorRating < domain.MinRating || *req.CounselorRating > domain.MaxRating) {
		return fmt.Errorf("%w: rating must be between %d and %d", ErrInvalidInput, domain.MinRating, domain.MaxRating)
	}

	return nil
}
