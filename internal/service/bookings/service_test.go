package bookings

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/manmitra25/MM-BookingService/internal/domain"
	bookingRepo "github.com/manmitra25/MM-BookingService/internal/infra/storage/booking"
	statsRepo "github.com/manmitra25/MM-BookingService/internal/infra/storage/stats"
	"github.com/manmitra25/MM-BookingService/internal/service/bookings/models"
	"github.com/manmitra25/MM-BookingService/pkg/ptr"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type fakeBookingRepo struct {
	booking    *domain.Booking
	getErr     error
	bookings   []*domain.Booking
	lastFilter domain.BookingsFilter
}

func (f *fakeBookingRepo) GetByID(_ context.Context, _ int64) (*domain.Booking, error) {
	return f.booking, f.getErr
}

func (f *fakeBookingRepo) ListWithFilter(_ context.Context, filter domain.BookingsFilter) ([]*domain.Booking, error) {
	f.lastFilter = filter
	return f.bookings, nil
}

type fakeStatsRepo struct {
	stats *domain.CounselorSessionStats
	err   error
}

func (f *fakeStatsRepo) GetByCounselor(_ context.Context, _ string) (*domain.CounselorSessionStats, error) {
	return f.stats, f.err
}

func testBooking() *domain.Booking {
	return &domain.Booking{
		ID:          42,
		StudentID:   "student-1",
		CounselorID: "counselor-1",
		StartTime:   time.Date(2026, 9, 14, 9, 0, 0, 0, time.UTC),
		EndTime:     time.Date(2026, 9, 14, 9, 50, 0, 0, time.UTC),
		Status:      domain.StatusConfirmed,
	}
}

func TestGetByID_AccessMatrix(t *testing.T) {
	tests := []struct {
		name      string
		actorID   string
		actorRole string
		wantErr   error
	}{
		{name: "owning student", actorID: "student-1", actorRole: "student"},
		{name: "owning counselor", actorID: "counselor-1", actorRole: "counselor"},
		{name: "admin sees any booking", actorID: "admin-1", actorRole: "admin"},
		{name: "super_admin sees any booking", actorID: "root-1", actorRole: "super_admin"},
		{name: "foreign student denied", actorID: "student-2", actorRole: "student", wantErr: ErrAccessDenied},
		{name: "foreign counselor denied", actorID: "counselor-2", actorRole: "counselor", wantErr: ErrAccessDenied},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := NewService(&fakeBookingRepo{booking: testBooking()}, &fakeStatsRepo{}, nopLogger{})

			resp, err := svc.GetByID(context.Background(), 42, tt.actorID, tt.actorRole)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, int64(42), resp.ID)
			assert.Equal(t, "confirmed", resp.Status)
		})
	}
}

func TestGetByID_NotFound(t *testing.T) {
	svc := NewService(&fakeBookingRepo{getErr: bookingRepo.ErrBookingNotFound}, &fakeStatsRepo{}, nopLogger{})

	_, err := svc.GetByID(context.Background(), 404, "student-1", "student")
	assert.ErrorIs(t, err, ErrBookingNotFound)
}

func TestGetUserBookings_FilterByRole(t *testing.T) {
	repo := &fakeBookingRepo{bookings: []*domain.Booking{testBooking()}}
	svc := NewService(repo, &fakeStatsRepo{}, nopLogger{})

	// Студент фильтруется по своей стороне записи
	resp, err := svc.GetUserBookings(context.Background(), &models.GetUserBookingsRequest{
		UserID:    "student-1",
		ActorID:   "student-1",
		ActorRole: "student",
	})
	require.NoError(t, err)
	assert.Len(t, resp.Bookings, 1)
	require.NotNil(t, repo.lastFilter.StudentID)
	assert.Equal(t, "student-1", *repo.lastFilter.StudentID)
	assert.Nil(t, repo.lastFilter.CounselorID)

	// Консультант по своей
	_, err = svc.GetUserBookings(context.Background(), &models.GetUserBookingsRequest{
		UserID:    "counselor-1",
		ActorID:   "counselor-1",
		ActorRole: "counselor",
	})
	require.NoError(t, err)
	require.NotNil(t, repo.lastFilter.CounselorID)
	assert.Equal(t, "counselor-1", *repo.lastFilter.CounselorID)
	assert.Nil(t, repo.lastFilter.StudentID)
}

func TestGetUserBookings_Authorization(t *testing.T) {
	repo := &fakeBookingRepo{}
	svc := NewService(repo, &fakeStatsRepo{}, nopLogger{})

	// Чужая история закрыта для не-администраторов
	_, err := svc.GetUserBookings(context.Background(), &models.GetUserBookingsRequest{
		UserID:    "student-1",
		ActorID:   "student-2",
		ActorRole: "student",
	})
	assert.ErrorIs(t, err, ErrAccessDenied)

	// Администратору доступна история любого пользователя
	_, err = svc.GetUserBookings(context.Background(), &models.GetUserBookingsRequest{
		UserID:    "student-1",
		ActorID:   "admin-1",
		ActorRole: "admin",
	})
	require.NoError(t, err)
}

func TestGetCounselorStats(t *testing.T) {
	stats := &fakeStatsRepo{stats: &domain.CounselorSessionStats{
		CounselorID:       "counselor-1",
		TotalSessions:     10,
		CompletedSessions: 7,
		CancelledSessions: 2,
	}}

	tests := []struct {
		name      string
		actorID   string
		actorRole string
		wantErr   error
	}{
		{name: "counselor reads own stats", actorID: "counselor-1", actorRole: "counselor"},
		{name: "admin reads any stats", actorID: "admin-1", actorRole: "admin"},
		{name: "foreign counselor denied", actorID: "counselor-2", actorRole: "counselor", wantErr: ErrAccessDenied},
		{name: "student denied", actorID: "student-1", actorRole: "student", wantErr: ErrAccessDenied},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := NewService(&fakeBookingRepo{}, stats, nopLogger{})

			resp, err := svc.GetCounselorStats(context.Background(), "counselor-1", tt.actorID, tt.actorRole)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, int64(10), resp.TotalSessions)
			assert.Equal(t, int64(7), resp.CompletedSessions)
			assert.Equal(t, int64(2), resp.CancelledSessions)
		})
	}
}

func TestGetCounselorStats_NoSessionsYet(t *testing.T) {
	svc := NewService(&fakeBookingRepo{}, &fakeStatsRepo{err: statsRepo.ErrStatsNotFound}, nopLogger{})

	// Отсутствие строки счётчиков: нулевая статистика, не ошибка
	resp, err := svc.GetCounselorStats(context.Background(), "counselor-1", "counselor-1", "counselor")
	require.NoError(t, err)
	assert.Equal(t, "counselor-1", resp.CounselorID)
	assert.Zero(t, resp.TotalSessions)
	assert.Zero(t, resp.CompletedSessions)
	assert.Zero(t, resp.CancelledSessions)
}

func TestGetUserBookings_StatusFilter(t *testing.T) {
	repo := &fakeBookingRepo{}
	svc := NewService(repo, &fakeStatsRepo{}, nopLogger{})

	_, err := svc.GetUserBookings(context.Background(), &models.GetUserBookingsRequest{
		UserID:    "student-1",
		ActorID:   "student-1",
		ActorRole: "student",
		Status:    ptr.Ptr("completed"),
	})
	require.NoError(t, err)
	require.NotNil(t, repo.lastFilter.Status)
	assert.Equal(t, domain.StatusCompleted, *repo.lastFilter.Status)

	_, err = svc.GetUserBookings(context.Background(), &models.GetUserBookingsRequest{
		UserID:    "student-1",
		ActorID:   "student-1",
		ActorRole: "student",
		Status:    ptr.Ptr("archived"),
	})
	assert.ErrorIs(t, err, ErrInvalidInput)
}
