package create_booking

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/manmitra25/MM-BookingService/internal/domain"
	bookingRepo "github.com/manmitra25/MM-BookingService/internal/infra/storage/booking"
	"github.com/manmitra25/MM-BookingService/internal/integrations/auditsink"
	"github.com/manmitra25/MM-BookingService/internal/integrations/counselordirectory"
	"github.com/manmitra25/MM-BookingService/internal/integrations/notifier"
	"github.com/manmitra25/MM-BookingService/pkg/ptr"
)

// Фиксированный момент времени для детерминированных тестов
var testNow = time.Date(2026, 9, 7, 12, 0, 0, 0, time.UTC)

type fixedTime struct{ t time.Time }

func (f fixedTime) Now() time.Time { return f.t }

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type fakeTxManager struct{}

func (fakeTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fakeBookingRepo struct {
	overlapping []*domain.Booking
	createErr   error
	created     *domain.Booking
}

func (f *fakeBookingRepo) Create(_ context.Context, b *domain.Booking) (*domain.Booking, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	b.ID = 42
	b.CreatedAt = testNow
	b.UpdatedAt = testNow
	f.created = b
	return b, nil
}

func (f *fakeBookingRepo) GetOverlapping(_ context.Context, _ string, _ domain.TimeRange) ([]*domain.Booking, error) {
	return f.overlapping, nil
}

type fakeHoldRepo struct {
	holds []*domain.Hold
}

func (f *fakeHoldRepo) GetOverlapping(_ context.Context, _ string, _ domain.TimeRange, _ time.Time) ([]*domain.Hold, error) {
	return f.holds, nil
}

type fakeStatsRepo struct {
	totalCalls int
}

func (f *fakeStatsRepo) IncrementTotal(_ context.Context, _ string) error {
	f.totalCalls++
	return nil
}

type fakeDirectory struct {
	counselor *counselordirectory.Counselor
	err       error
}

func (f *fakeDirectory) GetCounselor(_ context.Context, _ string) (*counselordirectory.Counselor, error) {
	return f.counselor, f.err
}

type fakeNotifier struct {
	notified []string
}

func (f *fakeNotifier) Notify(_ context.Context, userID string, _ notifier.Notification) error {
	f.notified = append(f.notified, userID)
	return nil
}

type fakeAudit struct {
	events []auditsink.AuditEvent
}

func (f *fakeAudit) Record(_ context.Context, event auditsink.AuditEvent) error {
	f.events = append(f.events, event)
	return nil
}

func activeCounselor() *counselordirectory.Counselor {
	return &counselordirectory.Counselor{
		ID:          "c-1",
		FullName:    "Dr. Mehta",
		IsActive:    true,
		IsAvailable: true,
	}
}

func newTestUseCase(
	repo *fakeBookingRepo,
	holds *fakeHoldRepo,
	stats *fakeStatsRepo,
	directory *fakeDirectory,
) (*UseCase, *fakeNotifier, *fakeAudit) {
	notify := &fakeNotifier{}
	audit := &fakeAudit{}
	uc := NewUseCase(repo, holds, stats, directory, notify, audit, fakeTxManager{}, nopLogger{})
	uc.timeProvider = fixedTime{testNow}
	return uc, notify, audit
}

func validRequest(durationMinutes int) *Request {
	start := testNow.Add(24 * time.Hour)
	return &Request{
		StudentID:      "s-1",
		CounselorID:    "c-1",
		StartTime:      start,
		EndTime:        start.Add(time.Duration(durationMinutes) * time.Minute),
		SessionType:    "video",
		OwnerSessionID: "s-1",
	}
}

func TestExecute_Success(t *testing.T) {
	repo := &fakeBookingRepo{}
	stats := &fakeStatsRepo{}
	uc, notify, audit := newTestUseCase(repo, &fakeHoldRepo{}, stats, &fakeDirectory{counselor: activeCounselor()})

	resp, err := uc.Execute(context.Background(), validRequest(50))
	require.NoError(t, err)

	assert.Equal(t, int64(42), resp.ID)
	assert.Equal(t, string(domain.StatusConfirmed), resp.Status)
	assert.Equal(t, 1, stats.totalCalls)
	assert.ElementsMatch(t, []string{"s-1", "c-1"}, notify.notified)
	require.Len(t, audit.events, 1)
	assert.Equal(t, auditsink.EventBookingCreated, audit.events[0].EventType)
}

func TestExecute_DurationBounds(t *testing.T) {
	tests := []struct {
		minutes int
		wantErr error
	}{
		{30, nil},
		{120, nil},
		{29, ErrInvalidDuration},
		{121, ErrInvalidDuration},
		{20, ErrInvalidDuration},
		{130, ErrInvalidDuration},
	}

	for _, tt := range tests {
		uc, _, _ := newTestUseCase(&fakeBookingRepo{}, &fakeHoldRepo{}, &fakeStatsRepo{}, &fakeDirectory{counselor: activeCounselor()})

		_, err := uc.Execute(context.Background(), validRequest(tt.minutes))
		if tt.wantErr != nil {
			assert.ErrorIs(t, err, tt.wantErr, "duration %d", tt.minutes)
		} else {
			assert.NoError(t, err, "duration %d", tt.minutes)
		}
	}
}

func TestExecute_StartMustBeInFuture(t *testing.T) {
	uc, _, _ := newTestUseCase(&fakeBookingRepo{}, &fakeHoldRepo{}, &fakeStatsRepo{}, &fakeDirectory{counselor: activeCounselor()})

	req := validRequest(50)
	req.StartTime = testNow.Add(-time.Hour)
	req.EndTime = req.StartTime.Add(50 * time.Minute)

	_, err := uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrStartInPast)

	// Начало ровно сейчас тоже отклоняется
	req.StartTime = testNow
	req.EndTime = testNow.Add(50 * time.Minute)
	_, err = uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrStartInPast)
}

func TestExecute_CounselorChecks(t *testing.T) {
	uc, _, _ := newTestUseCase(&fakeBookingRepo{}, &fakeHoldRepo{}, &fakeStatsRepo{},
		&fakeDirectory{err: counselordirectory.ErrCounselorNotFound})
	_, err := uc.Execute(context.Background(), validRequest(50))
	assert.ErrorIs(t, err, ErrCounselorNotFound)

	inactive := activeCounselor()
	inactive.IsActive = false
	uc, _, _ = newTestUseCase(&fakeBookingRepo{}, &fakeHoldRepo{}, &fakeStatsRepo{}, &fakeDirectory{counselor: inactive})
	_, err = uc.Execute(context.Background(), validRequest(50))
	assert.ErrorIs(t, err, ErrCounselorUnavailable)

	paused := activeCounselor()
	paused.IsAvailable = false
	uc, _, _ = newTestUseCase(&fakeBookingRepo{}, &fakeHoldRepo{}, &fakeStatsRepo{}, &fakeDirectory{counselor: paused})
	_, err = uc.Execute(context.Background(), validRequest(50))
	assert.ErrorIs(t, err, ErrCounselorUnavailable)
}

func TestExecute_OverlappingBookingRejected(t *testing.T) {
	repo := &fakeBookingRepo{
		overlapping: []*domain.Booking{{ID: 7, Status: domain.StatusConfirmed}},
	}
	stats := &fakeStatsRepo{}
	uc, _, _ := newTestUseCase(repo, &fakeHoldRepo{}, stats, &fakeDirectory{counselor: activeCounselor()})

	_, err := uc.Execute(context.Background(), validRequest(50))
	assert.ErrorIs(t, err, ErrSlotNotAvailable)
	assert.Zero(t, stats.totalCalls)
}

func TestExecute_ForeignHoldBlocks(t *testing.T) {
	holds := &fakeHoldRepo{
		holds: []*domain.Hold{{ID: "h-1", OwnerSessionID: "someone-else"}},
	}
	uc, _, _ := newTestUseCase(&fakeBookingRepo{}, holds, &fakeStatsRepo{}, &fakeDirectory{counselor: activeCounselor()})

	_, err := uc.Execute(context.Background(), validRequest(50))
	assert.ErrorIs(t, err, ErrSlotNotAvailable)
}

func TestExecute_OwnHoldDoesNotBlock(t *testing.T) {
	holds := &fakeHoldRepo{
		holds: []*domain.Hold{{ID: "h-1", OwnerSessionID: "s-1"}},
	}
	uc, _, _ := newTestUseCase(&fakeBookingRepo{}, holds, &fakeStatsRepo{}, &fakeDirectory{counselor: activeCounselor()})

	_, err := uc.Execute(context.Background(), validRequest(50))
	assert.NoError(t, err)
}

func TestExecute_LostInsertRace(t *testing.T) {
	// Проигравший гонку на constraint получает тот же отказ, что и при
	// проверке пересечений
	repo := &fakeBookingRepo{createErr: bookingRepo.ErrSlotConflict}
	uc, _, _ := newTestUseCase(repo, &fakeHoldRepo{}, &fakeStatsRepo{}, &fakeDirectory{counselor: activeCounselor()})

	_, err := uc.Execute(context.Background(), validRequest(50))
	assert.ErrorIs(t, err, ErrSlotNotAvailable)
}

func TestExecute_InputValidation(t *testing.T) {
	uc, _, _ := newTestUseCase(&fakeBookingRepo{}, &fakeHoldRepo{}, &fakeStatsRepo{}, &fakeDirectory{counselor: activeCounselor()})

	req := validRequest(50)
	req.SessionType = "hologram"
	_, err := uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrInvalidInput)

	req = validRequest(50)
	req.EndTime = req.StartTime
	_, err = uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrInvalidInput)

	req = validRequest(50)
	req.UserNotes = ptr.Ptr(strings.Repeat("x", domain.MaxUserNotesLength+1))
	_, err = uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrInvalidInput)
}
