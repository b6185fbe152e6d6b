package complete_booking

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
	"github.com/manmitra25/MM-BookingService/internal/integrations/notifier"
	"github.com/manmitra25/MM-BookingService/pkg/ptr"
)

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
	booking        *domain.Booking
	getErr         error
	completeCalled bool
}

func (f *fakeBookingRepo) GetByID(_ context.Context, _ int64) (*domain.Booking, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	b := *f.booking
	return &b, nil
}

func (f *fakeBookingRepo) Complete(_ context.Context, _ int64, _ *string, _ *int) error {
	f.completeCalled = true
	return nil
}

type fakeStatsRepo struct {
	completedCalls int
}

func (f *fakeStatsRepo) IncrementCompleted(_ context.Context, _ string) error {
	f.completedCalls++
	return nil
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

// pastBooking запись, чья сессия уже началась
func pastBooking() *domain.Booking {
	start := testNow.Add(-time.Hour)
	return &domain.Booking{
		ID:          42,
		StudentID:   "s-1",
		CounselorID: "c-1",
		StartTime:   start,
		EndTime:     start.Add(50 * time.Minute),
		Status:      domain.StatusConfirmed,
		SessionType: domain.SessionVideo,
	}
}

func newTestUseCase(repo *fakeBookingRepo, stats *fakeStatsRepo) *UseCase {
	uc := NewUseCase(repo, stats, &fakeNotifier{}, &fakeAudit{}, fakeTxManager{}, nopLogger{})
	uc.timeProvider = fixedTime{testNow}
	return uc
}

func TestExecute_Success(t *testing.T) {
	repo := &fakeBookingRepo{booking: pastBooking()}
	stats := &fakeStatsRepo{}
	uc := newTestUseCase(repo, stats)

	resp, err := uc.Execute(context.Background(), &Request{
		BookingID:       42,
		CounselorID:     "c-1",
		CounselorNotes:  ptr.Ptr("productive session"),
		CounselorRating: ptr.Ptr(5),
	})
	require.NoError(t, err)

	assert.Equal(t, string(domain.StatusCompleted), resp.Status)
	require.NotNil(t, resp.CounselorRating)
	assert.Equal(t, 5, *resp.CounselorRating)
	assert.True(t, repo.completeCalled)
	assert.Equal(t, 1, stats.completedCalls)
}

func TestExecute_OnlyOwningCounselor(t *testing.T) {
	repo := &fakeBookingRepo{booking: pastBooking()}
	uc := newTestUseCase(repo, &fakeStatsRepo{})

	_, err := uc.Execute(context.Background(), &Request{
		BookingID:   42,
		CounselorID: "c-2",
	})
	assert.ErrorIs(t, err, ErrAccessDenied)
	assert.False(t, repo.completeCalled)
}

func TestExecute_SessionNotStarted(t *testing.T) {
	b := pastBooking()
	b.StartTime = testNow.Add(time.Hour)
	b.EndTime = b.StartTime.Add(50 * time.Minute)
	repo := &fakeBookingRepo{booking: b}
	uc := newTestUseCase(repo, &fakeStatsRepo{})

	_, err := uc.Execute(context.Background(), &Request{
		BookingID:   42,
		CounselorID: "c-1",
	})
	assert.ErrorIs(t, err, ErrSessionNotStarted)
}

func TestExecute_SessionStartedButNotOver(t *testing.T) {
	// Начавшуюся, но не закончившуюся сессию завершить можно
	b := pastBooking()
	b.StartTime = testNow.Add(-10 * time.Minute)
	b.EndTime = testNow.Add(40 * time.Minute)
	repo := &fakeBookingRepo{booking: b}
	uc := newTestUseCase(repo, &fakeStatsRepo{})

	_, err := uc.Execute(context.Background(), &Request{
		BookingID:   42,
		CounselorID: "c-1",
	})
	assert.NoError(t, err)
}

func TestExecute_TerminalStatusNotCompletable(t *testing.T) {
	for _, status := range []domain.BookingStatus{domain.StatusCompleted, domain.StatusCancelled, domain.StatusNoShow} {
		b := pastBooking()
		b.Status = status
		repo := &fakeBookingRepo{booking: b}
		stats := &fakeStatsRepo{}
		uc := newTestUseCase(repo, stats)

		_, err := uc.Execute(context.Background(), &Request{
			BookingID:   42,
			CounselorID: "c-1",
		})
		assert.ErrorIs(t, err, ErrNotCompletable, "status %s", status)
		assert.Zero(t, stats.completedCalls, "status %s", status)
	}
}

func TestExecute_InputValidation(t *testing.T) {
	uc := newTestUseCase(&fakeBookingRepo{booking: pastBooking()}, &fakeStatsRepo{})

	_, err := uc.Execute(context.Background(), &Request{
		BookingID:       42,
		CounselorID:     "c-1",
		CounselorRating: ptr.Ptr(0),
	})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = uc.Execute(context.Background(), &Request{
		BookingID:       42,
		CounselorID:     "c-1",
		CounselorRating: ptr.Ptr(6),
	})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = uc.Execute(context.Background(), &Request{
		BookingID:      42,
		CounselorID:    "c-1",
		CounselorNotes: ptr.Ptr(strings.Repeat("x", domain.MaxCounselorNotesLength+1)),
	})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestExecute_BookingNotFound(t *testing.T) {
	repo := &fakeBookingRepo{getErr: bookingRepo.ErrBookingNotFound}
	uc := newTestUseCase(repo, &fakeStatsRepo{})

	_, err := uc.Execute(context.Background(), &Request{
		BookingID:   99,
		CounselorID: "c-1",
	})
	assert.ErrorIs(t, err, ErrBookingNotFound)
}
