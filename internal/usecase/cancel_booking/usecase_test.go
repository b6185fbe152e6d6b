package cancel_booking

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/manmitra25/MM-BookingService/internal/domain"
	bookingRepo "github.com/manmitra25/MM-BookingService/internal/infra/storage/booking"
	"github.com/manmitra25/MM-BookingService/internal/integrations/auditsink"
	"github.com/manmitra25/MM-BookingService/internal/integrations/notifier"
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
	booking      *domain.Booking
	getErr       error
	cancelCalled bool
}

func (f *fakeBookingRepo) GetByID(_ context.Context, _ int64) (*domain.Booking, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	// Копия, чтобы usecase не мутировал общее состояние теста
	b := *f.booking
	return &b, nil
}

func (f *fakeBookingRepo) Cancel(_ context.Context, _ int64, _ string, _ string) error {
	f.cancelCalled = true
	return nil
}

type fakeStatsRepo struct {
	cancelledCalls int
}

func (f *fakeStatsRepo) IncrementCancelled(_ context.Context, _ string) error {
	f.cancelledCalls++
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

func confirmedBooking(startIn time.Duration) *domain.Booking {
	start := testNow.Add(startIn)
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
	uc := NewUseCase(repo, stats, &fakeNotifier{}, &fakeAudit{}, fakeTxManager{}, 2, nopLogger{})
	uc.timeProvider = fixedTime{testNow}
	return uc
}

func TestExecute_StudentCancelsOwnBooking(t *testing.T) {
	repo := &fakeBookingRepo{booking: confirmedBooking(24 * time.Hour)}
	stats := &fakeStatsRepo{}
	uc := newTestUseCase(repo, stats)

	resp, err := uc.Execute(context.Background(), &Request{
		BookingID: 42,
		ActorID:   "s-1",
		ActorRole: string(domain.RoleStudent),
	})
	require.NoError(t, err)

	assert.Equal(t, string(domain.StatusCancelled), resp.Status)
	require.NotNil(t, resp.CancelledBy)
	assert.Equal(t, "s-1", *resp.CancelledBy)
	assert.True(t, repo.cancelCalled)
	assert.Equal(t, 1, stats.cancelledCalls)
}

func TestExecute_AuthorizationMatrix(t *testing.T) {
	tests := []struct {
		name      string
		actorID   string
		actorRole domain.ActorRole
		wantErr   error
	}{
		{"owning student", "s-1", domain.RoleStudent, nil},
		{"owning counselor", "c-1", domain.RoleCounselor, nil},
		{"admin cancels any", "adm-1", domain.RoleAdmin, nil},
		{"super admin cancels any", "root-1", domain.RoleSuperAdmin, nil},
		{"foreign student", "s-2", domain.RoleStudent, ErrAccessDenied},
		{"foreign counselor", "c-2", domain.RoleCounselor, ErrAccessDenied},
		{"counselor posing as student", "c-1", domain.RoleStudent, ErrAccessDenied},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &fakeBookingRepo{booking: confirmedBooking(24 * time.Hour)}
			uc := newTestUseCase(repo, &fakeStatsRepo{})

			_, err := uc.Execute(context.Background(), &Request{
				BookingID: 42,
				ActorID:   tt.actorID,
				ActorRole: string(tt.actorRole),
			})
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestExecute_CancellationWindow(t *testing.T) {
	tests := []struct {
		name    string
		startIn time.Duration
		wantErr error
	}{
		{"well before cutoff", 24 * time.Hour, nil},
		{"just outside cutoff", 2*time.Hour + time.Minute, nil},
		{"exactly at cutoff", 2 * time.Hour, ErrCancellationWindowClosed},
		{"one second past cutoff", 2*time.Hour + time.Second, nil},
		{"just inside cutoff", time.Hour + 59*time.Minute, ErrCancellationWindowClosed},
		{"session about to start", time.Minute, ErrCancellationWindowClosed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &fakeBookingRepo{booking: confirmedBooking(tt.startIn)}
			uc := newTestUseCase(repo, &fakeStatsRepo{})

			_, err := uc.Execute(context.Background(), &Request{
				BookingID: 42,
				ActorID:   "s-1",
				ActorRole: string(domain.RoleStudent),
			})
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestExecute_TerminalStatusNotCancellable(t *testing.T) {
	for _, status := range []domain.BookingStatus{domain.StatusCancelled, domain.StatusCompleted, domain.StatusNoShow} {
		b := confirmedBooking(24 * time.Hour)
		b.Status = status
		repo := &fakeBookingRepo{booking: b}
		stats := &fakeStatsRepo{}
		uc := newTestUseCase(repo, stats)

		_, err := uc.Execute(context.Background(), &Request{
			BookingID: 42,
			ActorID:   "s-1",
			ActorRole: string(domain.RoleStudent),
		})
		assert.ErrorIs(t, err, ErrNotCancellable, "status %s", status)
		assert.False(t, repo.cancelCalled, "status %s", status)
		assert.Zero(t, stats.cancelledCalls, "status %s", status)
	}
}

func TestExecute_BookingNotFound(t *testing.T) {
	repo := &fakeBookingRepo{getErr: bookingRepo.ErrBookingNotFound}
	uc := newTestUseCase(repo, &fakeStatsRepo{})

	_, err := uc.Execute(context.Background(), &Request{
		BookingID: 99,
		ActorID:   "s-1",
		ActorRole: string(domain.RoleStudent),
	})
	assert.ErrorIs(t, err, ErrBookingNotFound)
}
