package create_booking

import (
	"context"
	"errors"
	"fmt"

	"github.com/manmitra25/MM-BookingService/internal/domain"
	bookingRepo "github.com/manmitra25/MM-BookingService/internal/infra/storage/booking"
	directoryClient "github.com/manmitra25/MM-BookingService/internal/integrations/counselordirectory"
	"github.com/manmitra25/MM-BookingService/internal/integrations/auditsink"
	"github.com/manmitra25/MM-BookingService/internal/integrations/notifier"
)

// UseCase use case для создания записи на консультацию
type UseCase struct {
	bookingRepo     BookingRepository
	holdRepo        HoldRepository
	statsRepo       StatsRepository
	directoryClient CounselorDirectoryClient
	notifierClient  NotifierClient
	auditClient     AuditSinkClient
	txManager       TransactionManager
	timeProvider    TimeProvider
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepository BookingRepository,
	holdRepo HoldRepository,
	statsRepo StatsRepository,
	directory CounselorDirectoryClient,
	notifierClient NotifierClient,
	auditClient AuditSinkClient,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:     bookingRepository,
		holdRepo:        holdRepo,
		statsRepo:       statsRepo,
		directoryClient: directory,
		notifierClient:  notifierClient,
		auditClient:     auditClient,
		txManager:       txManager,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// Execute выполняет use case создания записи.
// Проверка пересечений внутри транзакции отвечает за дружелюбный
// отказ; гарантию от двойного бронирования даёт exclusion constraint
// таблицы bookings, ошибка которого транслируется в тот же
// ErrSlotNotAvailable.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateBooking: student=%s, counselor=%s, start=%s, end=%s, type=%s",
		req.StudentID, req.CounselorID, req.StartTime.Format(domain.TimeFormatFull), req.EndTime.Format(domain.TimeFormatFull), req.SessionType)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateBooking: validation failed: %v", err)
		return nil, err
	}

	if err := validateDuration(req.StartTime, req.EndTime); err != nil {
		uc.logger.Warn("CreateBooking: duration validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем текущее время
	now := uc.timeProvider.Now()

	if err := validateStartInFuture(req.StartTime, now); err != nil {
		uc.logger.Warn("CreateBooking: start time %s is not in the future", req.StartTime.Format(domain.TimeFormatFull))
		return nil, err
	}

	// 3. Проверяем консультанта в каталоге
	counselor, err := uc.directoryClient.GetCounselor(ctx, req.CounselorID)
	if err != nil {
		if errors.Is(err, directoryClient.ErrCounselorNotFound) {
			uc.logger.Warn("CreateBooking: counselor id=%s not found", req.CounselorID)
			return nil, ErrCounselorNotFound
		}
		uc.logger.Error("CreateBooking: failed to get counselor id=%s: %v", req.CounselorID, err)
		return nil, fmt.Errorf("%w: failed to get counselor: %v", ErrInternal, err)
	}

	if !counselor.IsActive || !counselor.IsAvailable {
		uc.logger.Warn("CreateBooking: counselor id=%s is not accepting bookings", req.CounselorID)
		return nil, ErrCounselorUnavailable
	}

	rng := domain.TimeRange{Start: req.StartTime, End: req.EndTime}

	// Переменная для хранения результата
	var result *domain.Booking

	// 4. Выполняем операции с БД в сериализуемой транзакции
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 4.1. Проверяем пересечения с подтверждёнными записями
		overlapping, err := uc.bookingRepo.GetOverlapping(txCtx, req.CounselorID, rng)
		if err != nil {
			uc.logger.Error("CreateBooking: failed to get overlapping bookings: %v", err)
			return fmt.Errorf("%w: failed to get overlapping bookings: %v", ErrInternal, err)
		}

		if len(overlapping) > 0 {
			uc.logger.Warn("CreateBooking: interval overlaps %d existing booking(s)", len(overlapping))
			return ErrSlotNotAvailable
		}

		// 4.2. Проверяем живые удержания чужих владельцев
		holds, err := uc.holdRepo.GetOverlapping(txCtx, req.CounselorID, rng, now)
		if err != nil {
			uc.logger.Error("CreateBooking: failed to get overlapping holds: %v", err)
			return fmt.Errorf("%w: failed to get overlapping holds: %v", ErrInternal, err)
		}

		if blockingHoldExists(holds, req.OwnerSessionID) {
			uc.logger.Warn("CreateBooking: interval is held by another session")
			return ErrSlotNotAvailable
		}

		// 4.3. Создаем запись
		booking := &domain.Booking{
			StudentID:   req.StudentID,
			CounselorID: req.CounselorID,
			StartTime:   req.StartTime,
			EndTime:     req.EndTime,
			Status:      domain.StatusConfirmed,
			SessionType: domain.SessionType(req.SessionType),
			UserNotes:   req.UserNotes,
		}

		created, err := uc.bookingRepo.Create(txCtx, booking)
		if err != nil {
			if errors.Is(err, bookingRepo.ErrSlotConflict) {
				uc.logger.Warn("CreateBooking: lost insert race for counselor=%s", req.CounselorID)
				return ErrSlotNotAvailable
			}
			uc.logger.Error("CreateBooking: failed to create booking: %v", err)
			return fmt.Errorf("%w: failed to create booking: %v", ErrInternal, err)
		}

		// 4.4. Счётчик сессий консультанта меняется в той же транзакции
		if err := uc.statsRepo.IncrementTotal(txCtx, req.CounselorID); err != nil {
			uc.logger.Error("CreateBooking: failed to increment total sessions: %v", err)
			return fmt.Errorf("%w: failed to increment total sessions: %v", ErrInternal, err)
		}

		result = created
		return nil
	})

	if err != nil {
		return nil, err
	}

	uc.logger.Info("CreateBooking: successfully created booking id=%d", result.ID)

	// 5. Побочные эффекты после коммита, неуспех только логируется
	uc.sendSideEffects(ctx, result)

	return &Response{
		ID:          result.ID,
		StudentID:   result.StudentID,
		CounselorID: result.CounselorID,
		StartTime:   result.StartTime,
		EndTime:     result.EndTime,
		Status:      string(result.Status),
		SessionType: string(result.SessionType),
		UserNotes:   result.UserNotes,
		MeetingLink: result.MeetingLink,
		CreatedAt:   result.CreatedAt,
		UpdatedAt:   result.UpdatedAt,
	}, nil
}

// sendSideEffects отправляет уведомления сторонам и событие аудита
func (uc *UseCase) sendSideEffects(ctx context.Context, booking *domain.Booking) {
	notification := notifier.Notification{
		Type:      notifier.TypeBookingConfirmed,
		Message:   fmt.Sprintf("Session confirmed for %s", booking.StartTime.Format(domain.TimeFormatFull)),
		BookingID: booking.ID,
	}

	if err := uc.notifierClient.Notify(ctx, booking.StudentID, notification); err != nil {
		uc.logger.Error("CreateBooking: failed to notify student id=%s: %v", booking.StudentID, err)
	}
	if err := uc.notifierClient.Notify(ctx, booking.CounselorID, notification); err != nil {
		uc.logger.Error("CreateBooking: failed to notify counselor id=%s: %v", booking.CounselorID, err)
	}

	event := auditsink.AuditEvent{
		EventType: auditsink.EventBookingCreated,
		ActorID:   booking.StudentID,
		Metadata: map[string]string{
			"booking_id":   fmt.Sprintf("%d", booking.ID),
			"counselor_id": booking.CounselorID,
			"start_time":   booking.StartTime.Format(domain.TimeFormatFull),
		},
	}

	if err := uc.auditClient.Record(ctx, event); err != nil {
		uc.logger.Error("CreateBooking: failed to record audit event: %v", err)
	}
}
