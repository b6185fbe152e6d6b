package get_available_slots

import (
	"time"

	"github.com/manmitra25/MM-BookingService/internal/domain"
)

// generateDaySlots генерирует слоты одного дня по недельному шаблону
// консультанта. Каждая запись шаблона "HH:MM" порождает один слот
// фиксированной длительности, начинающийся в это время указанного дня.
func generateDaySlots(
	availability domain.WeeklyAvailability,
	day time.Time,
	slotMinutes int,
) ([]domain.TimeRange, error) {
	template := availability.ForWeekday(day.Weekday())
	if len(template) == 0 {
		return []domain.TimeRange{}, nil
	}

	slots := make([]domain.TimeRange, 0, len(template))
	for _, ts := range template {
		start, err := ts.At(day)
		if err != nil {
			return nil, err
		}
		slots = append(slots, domain.TimeRange{
			Start: start,
			End:   start.Add(time.Duration(slotMinutes) * time.Minute),
		})
	}

	return slots, nil
}

// filterAvailable отбрасывает слоты, которые уже начались или
// пересекаются с занятыми интервалами. Полуоткрытая семантика:
// слот, граничащий с записью, остаётся доступным.
func filterAvailable(
	slots []domain.TimeRange,
	busy []domain.TimeRange,
	now time.Time,
) []domain.TimeRange {
	available := make([]domain.TimeRange, 0, len(slots))

	for _, slot := range slots {
		if !slot.Start.After(now) {
			continue
		}

		overlaps := false
		for _, b := range busy {
			if slot.Overlaps(b) {
				overlaps = true
				break
			}
		}

		if !overlaps {
			available = append(available, slot)
		}
	}

	return available
}

// collectBusyRanges собирает занятые интервалы из активных записей
// и живых удержаний
func collectBusyRanges(bookings []*domain.Booking, holds []*domain.Hold) []domain.TimeRange {
	busy := make([]domain.TimeRange, 0, len(bookings)+len(holds))

	for _, b := range bookings {
		if !b.BlocksSlot() {
			continue
		}
		busy = append(busy, b.Range())
	}

	for _, h := range holds {
		busy = append(busy, h.Range())
	}

	return busy
}

// truncateToDay обнуляет время, оставляя только дату
func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
