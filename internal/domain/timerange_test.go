package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func mustRange(startHour, startMin, endHour, endMin int) TimeRange {
	day := time.Date(2026, 9, 7, 0, 0, 0, 0, time.UTC)
	return TimeRange{
		Start: day.Add(time.Duration(startHour)*time.Hour + time.Duration(startMin)*time.Minute),
		End:   day.Add(time.Duration(endHour)*time.Hour + time.Duration(endMin)*time.Minute),
	}
}

func TestTimeRange_Overlaps(t *testing.T) {
	tests := []struct {
		name string
		a    TimeRange
		b    TimeRange
		want bool
	}{
		{
			name: "identical ranges overlap",
			a:    mustRange(10, 0, 11, 0),
			b:    mustRange(10, 0, 11, 0),
			want: true,
		},
		{
			name: "partial overlap",
			a:    mustRange(10, 0, 11, 0),
			b:    mustRange(10, 30, 11, 30),
			want: true,
		},
		{
			name: "containment overlaps",
			a:    mustRange(10, 0, 12, 0),
			b:    mustRange(10, 30, 11, 0),
			want: true,
		},
		{
			name: "back to back sessions do not conflict",
			a:    mustRange(10, 0, 11, 0),
			b:    mustRange(11, 0, 12, 0),
			want: false,
		},
		{
			name: "back to back reversed order",
			a:    mustRange(11, 0, 12, 0),
			b:    mustRange(10, 0, 11, 0),
			want: false,
		},
		{
			name: "disjoint ranges",
			a:    mustRange(9, 0, 9, 50),
			b:    mustRange(14, 0, 14, 50),
			want: false,
		},
		{
			name: "one minute overlap",
			a:    mustRange(10, 0, 11, 1),
			b:    mustRange(11, 0, 12, 0),
			want: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.a.Overlaps(tt.b))
			// Пересечение симметрично
			assert.Equal(t, tt.want, tt.b.Overlaps(tt.a))
		})
	}
}

func TestTimeRange_IsValid(t *testing.T) {
	assert.True(t, mustRange(10, 0, 10, 50).IsValid())
	assert.False(t, mustRange(10, 50, 10, 0).IsValid())
	assert.False(t, mustRange(10, 0, 10, 0).IsValid())
}

func TestBooking_BlocksSlot(t *testing.T) {
	tests := []struct {
		status BookingStatus
		want   bool
	}{
		{StatusConfirmed, true},
		{StatusCompleted, true},
		{StatusCancelled, false},
		{StatusNoShow, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.status), func(t *testing.T) {
			b := &Booking{Status: tt.status}
			assert.Equal(t, tt.want, b.BlocksSlot())
		})
	}
}

func TestBooking_Transitions(t *testing.T) {
	confirmed := &Booking{Status: StatusConfirmed}
	assert.True(t, confirmed.CanBeCancelled())
	assert.True(t, confirmed.CanBeCompleted())
	assert.False(t, confirmed.IsTerminal())

	for _, status := range []BookingStatus{StatusCompleted, StatusCancelled, StatusNoShow} {
		b := &Booking{Status: status}
		assert.False(t, b.CanBeCancelled(), "status %s", status)
		assert.False(t, b.CanBeCompleted(), "status %s", status)
		assert.True(t, b.IsTerminal(), "status %s", status)
	}
}

func TestHold_IsExpired(t *testing.T) {
	now := time.Date(2026, 9, 7, 12, 0, 0, 0, time.UTC)

	live := &Hold{ExpiresAt: now.Add(time.Minute)}
	assert.False(t, live.IsExpired(now))

	lapsed := &Hold{ExpiresAt: now.Add(-time.Minute)}
	assert.True(t, lapsed.IsExpired(now))

	// Ровно в момент истечения удержание уже мертво
	boundary := &Hold{ExpiresAt: now}
	assert.True(t, boundary.IsExpired(now))
}
