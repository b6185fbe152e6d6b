package get_available_slots

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/manmitra25/MM-BookingService/internal/domain"
	"github.com/manmitra25/MM-BookingService/internal/integrations/counselordirectory"
)

// 2026-09-07 понедельник
var testNow = time.Date(2026, 9, 7, 12, 0, 0, 0, time.UTC)

type fixedTime struct{ t time.Time }

func (f fixedTime) Now() time.Time { return f.t }

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type fakeBookingRepo struct {
	bookings []*domain.Booking
}

func (f *fakeBookingRepo) ListWithFilter(_ context.Context, filter domain.BookingsFilter) ([]*domain.Booking, error) {
	result := make([]*domain.Booking, 0, len(f.bookings))
	for _, b := range f.bookings {
		if filter.StartAfter != nil && b.StartTime.Before(*filter.StartAfter) {
			continue
		}
		if filter.StartBefore != nil && !b.StartTime.Before(*filter.StartBefore) {
			continue
		}
		result = append(result, b)
	}
	return result, nil
}

type fakeHoldRepo struct {
	holds []*domain.Hold
}

func (f *fakeHoldRepo) ListLiveBetween(_ context.Context, _ string, from, to time.Time, _ time.Time) ([]*domain.Hold, error) {
	result := make([]*domain.Hold, 0, len(f.holds))
	for _, h := range f.holds {
		if h.StartTime.Before(from) || !h.StartTime.Before(to) {
			continue
		}
		result = append(result, h)
	}
	return result, nil
}

type fakeDirectory struct {
	counselor *counselordirectory.Counselor
	err       error
}

func (f *fakeDirectory) GetCounselor(_ context.Context, _ string) (*counselordirectory.Counselor, error) {
	return f.counselor, f.err
}

func mondayCounselor() *counselordirectory.Counselor {
	return &counselordirectory.Counselor{
		ID:          "c-1",
		IsActive:    true,
		IsAvailable: true,
		Availability: map[string][]string{
			"monday": {"09:00", "10:00", "14:00"},
		},
	}
}

func newTestUseCase(repo *fakeBookingRepo, holds *fakeHoldRepo, directory *fakeDirectory) *UseCase {
	uc := NewUseCase(repo, holds, directory, 50, nopLogger{})
	uc.timeProvider = fixedTime{testNow}
	return uc
}

func at(day time.Time, hour, minute int) time.Time {
	return time.Date(day.Year(), day.Month(), day.Day(), hour, minute, 0, 0, day.Location())
}

func TestExecute_TemplateEntryBecomesSlot(t *testing.T) {
	uc := newTestUseCase(&fakeBookingRepo{}, &fakeHoldRepo{}, &fakeDirectory{counselor: mondayCounselor()})

	// Следующий понедельник, чтобы фильтр прошедших слотов не мешал
	monday := testNow.AddDate(0, 0, 7)
	resp, err := uc.Execute(context.Background(), &Request{
		CounselorID: "c-1",
		StartDate:   monday,
		EndDate:     monday,
	})
	require.NoError(t, err)

	require.Len(t, resp.Slots, 3)
	assert.Equal(t, at(monday, 9, 0), resp.Slots[0].StartTime)
	assert.Equal(t, at(monday, 9, 50), resp.Slots[0].EndTime)
	assert.Equal(t, 50, resp.Slots[0].DurationMinutes)

	// Хронологический порядок
	assert.True(t, resp.Slots[0].StartTime.Before(resp.Slots[1].StartTime))
	assert.True(t, resp.Slots[1].StartTime.Before(resp.Slots[2].StartTime))
}

func TestExecute_PastSlotsFiltered(t *testing.T) {
	uc := newTestUseCase(&fakeBookingRepo{}, &fakeHoldRepo{}, &fakeDirectory{counselor: mondayCounselor()})

	// Сегодня понедельник, сейчас 12:00: утренние слоты уже прошли
	resp, err := uc.Execute(context.Background(), &Request{
		CounselorID: "c-1",
		StartDate:   testNow,
		EndDate:     testNow,
	})
	require.NoError(t, err)

	require.Len(t, resp.Slots, 1)
	assert.Equal(t, at(testNow, 14, 0), resp.Slots[0].StartTime)
}

func TestExecute_BookedSlotFiltered(t *testing.T) {
	monday := testNow.AddDate(0, 0, 7)
	repo := &fakeBookingRepo{
		bookings: []*domain.Booking{{
			CounselorID: "c-1",
			StartTime:   at(monday, 14, 0),
			EndTime:     at(monday, 14, 50),
			Status:      domain.StatusConfirmed,
		}},
	}
	uc := newTestUseCase(repo, &fakeHoldRepo{}, &fakeDirectory{counselor: mondayCounselor()})

	resp, err := uc.Execute(context.Background(), &Request{
		CounselorID: "c-1",
		StartDate:   monday,
		EndDate:     monday,
	})
	require.NoError(t, err)

	require.Len(t, resp.Slots, 2)
	for _, s := range resp.Slots {
		assert.NotEqual(t, at(monday, 14, 0), s.StartTime)
	}
}

func TestExecute_AdjacentBookingDoesNotBlock(t *testing.T) {
	monday := testNow.AddDate(0, 0, 7)
	repo := &fakeBookingRepo{
		bookings: []*domain.Booking{{
			CounselorID: "c-1",
			StartTime:   at(monday, 13, 10),
			EndTime:     at(monday, 14, 0),
			Status:      domain.StatusConfirmed,
		}},
	}
	uc := newTestUseCase(repo, &fakeHoldRepo{}, &fakeDirectory{counselor: mondayCounselor()})

	resp, err := uc.Execute(context.Background(), &Request{
		CounselorID: "c-1",
		StartDate:   monday,
		EndDate:     monday,
	})
	require.NoError(t, err)
	assert.Len(t, resp.Slots, 3, "a booking ending at 14:00 must not block the 14:00 slot")
}

func TestExecute_BookingAcrossMidnightBlocksFirstDaySlot(t *testing.T) {
	counselor := mondayCounselor()
	counselor.Availability["monday"] = []string{"00:00", "09:00"}

	monday := testNow.AddDate(0, 0, 7)
	sunday := monday.AddDate(0, 0, -1)

	// Запись начинается в воскресенье, но захватывает начало понедельника
	repo := &fakeBookingRepo{
		bookings: []*domain.Booking{{
			CounselorID: "c-1",
			StartTime:   at(sunday, 23, 30),
			EndTime:     at(monday, 0, 30),
			Status:      domain.StatusConfirmed,
		}},
	}
	uc := newTestUseCase(repo, &fakeHoldRepo{}, &fakeDirectory{counselor: counselor})

	resp, err := uc.Execute(context.Background(), &Request{
		CounselorID: "c-1",
		StartDate:   monday,
		EndDate:     monday,
	})
	require.NoError(t, err)

	require.Len(t, resp.Slots, 1)
	assert.Equal(t, at(monday, 9, 0), resp.Slots[0].StartTime)
}

func TestExecute_LiveHoldFilters(t *testing.T) {
	monday := testNow.AddDate(0, 0, 7)
	holds := &fakeHoldRepo{
		holds: []*domain.Hold{{
			ID:          "h-1",
			CounselorID: "c-1",
			StartTime:   at(monday, 10, 0),
			EndTime:     at(monday, 10, 50),
		}},
	}
	uc := newTestUseCase(&fakeBookingRepo{}, holds, &fakeDirectory{counselor: mondayCounselor()})

	resp, err := uc.Execute(context.Background(), &Request{
		CounselorID: "c-1",
		StartDate:   monday,
		EndDate:     monday,
	})
	require.NoError(t, err)

	require.Len(t, resp.Slots, 2)
	for _, s := range resp.Slots {
		assert.NotEqual(t, at(monday, 10, 0), s.StartTime)
	}
}

func TestExecute_DefaultRangeIsOneWeek(t *testing.T) {
	uc := newTestUseCase(&fakeBookingRepo{}, &fakeHoldRepo{}, &fakeDirectory{counselor: mondayCounselor()})

	start := testNow.AddDate(0, 0, 1) // вторник
	resp, err := uc.Execute(context.Background(), &Request{
		CounselorID: "c-1",
		StartDate:   start,
	})
	require.NoError(t, err)

	// Неделя со вторника включает один понедельник
	assert.Equal(t, time.Date(2026, 9, 8, 0, 0, 0, 0, time.UTC), resp.StartDate)
	assert.Equal(t, time.Date(2026, 9, 14, 0, 0, 0, 0, time.UTC), resp.EndDate)
	assert.Len(t, resp.Slots, 3)
}

func TestExecute_EmptyScheduleAndInactive(t *testing.T) {
	empty := &counselordirectory.Counselor{ID: "c-1", IsActive: true, IsAvailable: true}
	uc := newTestUseCase(&fakeBookingRepo{}, &fakeHoldRepo{}, &fakeDirectory{counselor: empty})

	resp, err := uc.Execute(context.Background(), &Request{
		CounselorID: "c-1",
		StartDate:   testNow,
	})
	require.NoError(t, err)
	assert.Empty(t, resp.Slots)

	inactive := mondayCounselor()
	inactive.IsActive = false
	uc = newTestUseCase(&fakeBookingRepo{}, &fakeHoldRepo{}, &fakeDirectory{counselor: inactive})

	resp, err = uc.Execute(context.Background(), &Request{
		CounselorID: "c-1",
		StartDate:   testNow,
	})
	require.NoError(t, err)
	assert.Empty(t, resp.Slots)
}

func TestExecute_Errors(t *testing.T) {
	uc := newTestUseCase(&fakeBookingRepo{}, &fakeHoldRepo{},
		&fakeDirectory{err: counselordirectory.ErrCounselorNotFound})
	_, err := uc.Execute(context.Background(), &Request{CounselorID: "c-404", StartDate: testNow})
	assert.ErrorIs(t, err, ErrCounselorNotFound)

	uc = newTestUseCase(&fakeBookingRepo{}, &fakeHoldRepo{}, &fakeDirectory{counselor: mondayCounselor()})
	_, err = uc.Execute(context.Background(), &Request{
		CounselorID: "c-1",
		StartDate:   testNow,
		EndDate:     testNow.AddDate(0, 0, domain.MaxSlotRangeDays+5),
	})
	assert.ErrorIs(t, err, ErrRangeTooWide)

	_, err = uc.Execute(context.Background(), &Request{
		CounselorID: "c-1",
		StartDate:   testNow,
		EndDate:     testNow.AddDate(0, 0, -1),
	})
	assert.ErrorIs(t, err, ErrInvalidInput)
}
