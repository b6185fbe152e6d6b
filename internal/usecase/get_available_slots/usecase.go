package get_available_slots

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/manmitra25/MM-BookingService/internal/domain"
	directoryClient "github.com/manmitra25/MM-BookingService/internal/integrations/counselordirectory"
	"github.com/manmitra25/MM-BookingService/pkg/ptr"
)

// UseCase use case для получения доступных слотов консультанта
type UseCase struct {
	bookingRepo     BookingRepository
	holdRepo        HoldRepository
	directoryClient CounselorDirectoryClient
	timeProvider    TimeProvider
	slotMinutes     int
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepository BookingRepository,
	holdRepository HoldRepository,
	directory CounselorDirectoryClient,
	slotMinutes int,
	logger Logger,
) *UseCase {
	if slotMinutes <= 0 {
		slotMinutes = domain.DefaultSessionSlotMinutes
	}
	return &UseCase{
		bookingRepo:     bookingRepository,
		holdRepo:        holdRepository,
		directoryClient: directory,
		timeProvider:    &RealTimeProvider{},
		slotMinutes:     slotMinutes,
		logger:          logger,
	}
}

// Execute выполняет use case получения доступных слотов.
// Выдача чисто информационная: слот из ответа может быть занят к
// моменту оформления, финальное слово за транзакцией создания записи.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetAvailableSlots: counselor=%s, start=%s, end=%s",
		req.CounselorID, req.StartDate.Format(domain.DateFormat), req.EndDate.Format(domain.DateFormat))

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetAvailableSlots: validation failed: %v", err)
		return nil, err
	}

	// 2. Нормализуем период: без конца периода выдаётся неделя
	startDate := truncateToDay(req.StartDate)
	endDate := req.EndDate
	if endDate.IsZero() {
		endDate = startDate.AddDate(0, 0, domain.DefaultSlotRangeDays-1)
	}
	endDate = truncateToDay(endDate)

	if err := validateRange(startDate, endDate); err != nil {
		uc.logger.Warn("GetAvailableSlots: range validation failed: %v", err)
		return nil, err
	}

	// 3. Получаем текущее время
	now := uc.timeProvider.Now()

	// 4. Получаем профиль консультанта с шаблоном доступности
	counselor, err := uc.directoryClient.GetCounselor(ctx, req.CounselorID)
	if err != nil {
		if errors.Is(err, directoryClient.ErrCounselorNotFound) {
			uc.logger.Warn("GetAvailableSlots: counselor id=%s not found", req.CounselorID)
			return nil, ErrCounselorNotFound
		}
		uc.logger.Error("GetAvailableSlots: failed to get counselor id=%s: %v", req.CounselorID, err)
		return nil, fmt.Errorf("%w: failed to get counselor: %v", ErrInternal, err)
	}

	// Неактивный консультант или пустой шаблон: слотов нет, это не ошибка
	availability := counselor.ToDomainAvailability()
	if !counselor.IsActive || availability.IsEmpty() {
		uc.logger.Info("GetAvailableSlots: counselor id=%s has no bookable schedule", req.CounselorID)
		return &Response{
			CounselorID: req.CounselorID,
			StartDate:   startDate,
			EndDate:     endDate,
			Slots:       []Slot{},
		}, nil
	}

	// Окно выборки расширено на максимальную длительность сессии:
	// запись, начавшаяся до полуночи первого дня, может пересекать период
	rangeStart := startDate.Add(-domain.MaxBookingDurationMinutes * time.Minute)
	rangeEnd := endDate.AddDate(0, 0, 1)

	// 5. Собираем занятые интервалы периода одной парой запросов
	bookings, err := uc.bookingRepo.ListWithFilter(ctx, domain.BookingsFilter{
		CounselorID:  ptr.Ptr(req.CounselorID),
		StartAfter:   ptr.Ptr(rangeStart),
		StartBefore:  ptr.Ptr(rangeEnd),
		OnlyBlocking: true,
	})
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to list bookings: %v", err)
		return nil, fmt.Errorf("%w: failed to list bookings: %v", ErrInternal, err)
	}

	holds, err := uc.holdRepo.ListLiveBetween(ctx, req.CounselorID, rangeStart, rangeEnd, now)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to list holds: %v", err)
		return nil, fmt.Errorf("%w: failed to list holds: %v", ErrInternal, err)
	}

	busy := collectBusyRanges(bookings, holds)

	// 6. Генерируем и фильтруем слоты по дням
	slots := make([]Slot, 0)
	for day := startDate; !day.After(endDate); day = day.AddDate(0, 0, 1) {
		daySlots, err := generateDaySlots(availability, day, uc.slotMinutes)
		if err != nil {
			uc.logger.Error("GetAvailableSlots: failed to generate slots for %s: %v",
				day.Format(domain.DateFormat), err)
			return nil, fmt.Errorf("%w: failed to generate slots: %v", ErrInternal, err)
		}

		for _, rng := range filterAvailable(daySlots, busy, now) {
			slots = append(slots, Slot{
				StartTime:       rng.Start,
				EndTime:         rng.End,
				DurationMinutes: int(rng.End.Sub(rng.Start) / time.Minute),
			})
		}
	}

	uc.logger.Info("GetAvailableSlots: counselor id=%s has %d available slot(s)", req.CounselorID, len(slots))

	return &Response{
		CounselorID: req.CounselorID,
		StartDate:   startDate,
		EndDate:     endDate,
		Slots:       slots,
	}, nil
}
