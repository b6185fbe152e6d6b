package create_hold

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/manmitra25/MM-BookingService/internal/domain"
	holdRepo "github.com/manmitra25/MM-BookingService/internal/infra/storage/hold"
)

// UseCase use case для временного удержания слота на время оформления
type UseCase struct {
	holdRepo            HoldRepository
	bookingRepo         BookingRepository
	txManager           TransactionManager
	timeProvider        TimeProvider
	holdDurationMinutes int
	logger              Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	holdRepository HoldRepository,
	bookingRepository BookingRepository,
	txManager TransactionManager,
	holdDurationMinutes int,
	logger Logger,
) *UseCase {
	if holdDurationMinutes <= 0 {
		holdDurationMinutes = domain.DefaultHoldDurationMinutes
	}
	return &UseCase{
		holdRepo:            holdRepository,
		bookingRepo:         bookingRepository,
		txManager:           txManager,
		timeProvider:        &RealTimeProvider{},
		holdDurationMinutes: holdDurationMinutes,
		logger:              logger,
	}
}

// Execute выполняет use case создания удержания.
// Истёкшие удержания консультанта вычищаются в той же транзакции до
// вставки: exclusion constraint таблицы не отличает живую строку от
// истёкшей, и без зачистки повторное удержание того же интервала
// отклонялось бы до прихода фонового уборщика.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateHold: counselor=%s, start=%s, end=%s, owner=%s",
		req.CounselorID, req.StartTime.Format(domain.TimeFormatFull), req.EndTime.Format(domain.TimeFormatFull), req.OwnerSessionID)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateHold: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем текущее время
	now := uc.timeProvider.Now()

	if !req.StartTime.After(now) {
		uc.logger.Warn("CreateHold: start time %s is not in the future", req.StartTime.Format(domain.TimeFormatFull))
		return nil, ErrStartInPast
	}

	rng := domain.TimeRange{Start: req.StartTime, End: req.EndTime}
	expiresAt := now.Add(time.Duration(uc.holdDurationMinutes) * time.Minute)

	var result *domain.Hold

	// 3. Выполняем операции с БД в сериализуемой транзакции
	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 3.1. Освобождаем место под constraint от истёкших строк
		if err := uc.holdRepo.DeleteExpiredForCounselor(txCtx, req.CounselorID, now); err != nil {
			uc.logger.Error("CreateHold: failed to delete expired holds: %v", err)
			return fmt.Errorf("%w: failed to delete expired holds: %v", ErrInternal, err)
		}

		// 3.2. Проверяем пересечения с подтверждёнными записями
		bookings, err := uc.bookingRepo.GetOverlapping(txCtx, req.CounselorID, rng)
		if err != nil {
			uc.logger.Error("CreateHold: failed to get overlapping bookings: %v", err)
			return fmt.Errorf("%w: failed to get overlapping bookings: %v", ErrInternal, err)
		}

		if len(bookings) > 0 {
			uc.logger.Warn("CreateHold: interval overlaps %d existing booking(s)", len(bookings))
			return ErrSlotNotAvailable
		}

		// 3.3. Проверяем живые удержания. Пересечение с собственным
		// удержанием тоже отклоняется: повторный запрос того же
		// интервала обязан дождаться истечения первого.
		holds, err := uc.holdRepo.GetOverlapping(txCtx, req.CounselorID, rng, now)
		if err != nil {
			uc.logger.Error("CreateHold: failed to get overlapping holds: %v", err)
			return fmt.Errorf("%w: failed to get overlapping holds: %v", ErrInternal, err)
		}

		if len(holds) > 0 {
			uc.logger.Warn("CreateHold: interval overlaps %d live hold(s)", len(holds))
			return ErrSlotNotAvailable
		}

		// 3.4. Вставляем удержание
		hold := &domain.Hold{
			ID:             uuid.NewString(),
			CounselorID:    req.CounselorID,
			StartTime:      req.StartTime,
			EndTime:        req.EndTime,
			OwnerSessionID: req.OwnerSessionID,
			ExpiresAt:      expiresAt,
		}

		created, err := uc.holdRepo.Create(txCtx, hold)
		if err != nil {
			if errors.Is(err, holdRepo.ErrSlotConflict) {
				uc.logger.Warn("CreateHold: lost insert race for counselor=%s", req.CounselorID)
				return ErrSlotNotAvailable
			}
			uc.logger.Error("CreateHold: failed to create hold: %v", err)
			return fmt.Errorf("%w: failed to create hold: %v", ErrInternal, err)
		}

		result = created
		return nil
	})

	if err != nil {
		return nil, err
	}

	uc.logger.Info("CreateHold: successfully created hold id=%s, expires=%s",
		result.ID, result.ExpiresAt.Format(domain.TimeFormatFull))

	return &Response{
		HoldID:    result.ID,
		ExpiresAt: result.ExpiresAt,
	}, nil
}

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.CounselorID == "" {
		return fmt.Errorf("%w: counselorID is required", ErrInvalidInput)
	}

	if req.StartTime.IsZero() {
		return fmt.Errorf("%w: startTime is required", ErrInvalidInput)
	}

	if req.EndTime.IsZero() {
		return fmt.Errorf("%w: endTime is required", ErrInvalidInput)
	}

	if !req.EndTime.After(req.StartTime) {
		return fmt.Errorf("%w: endTime must be after startTime", ErrInvalidInput)
	}

	if req.OwnerSessionID == "" {
		return fmt.Errorf("%w: ownerSessionID is required", ErrInvalidInput)
	}

	return nil
}
