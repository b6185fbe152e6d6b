package domain

// Default configuration values
const (
	DefaultHoldDurationMinutes     = 5
	DefaultSessionSlotMinutes      = 50
	DefaultCancellationCutoffHours = 2
	DefaultSlotRangeDays           = 7
)

// Business validation constants
const (
	MinBookingDurationMinutes   = 30
	MaxBookingDurationMinutes   = 120
	MaxSlotRangeDays            = 31
	MaxUserNotesLength          = 500
	MaxCounselorNotesLength     = 1000
	MaxCancellationReasonLength = 500
	MinRating                   = 1
	MaxRating                   = 5
)

// Time format constants
const (
	TimeFormat     = "15:04"                // HH:MM
	DateFormat     = "2006-01-02"           // YYYY-MM-DD
	TimeFormatFull = "2006-01-02T15:04:05Z07:00" // RFC 3339
)

// BlockingStatuses список статусов, при которых бронирование занимает
// свой временной интервал. Используется во всех проверках конфликтов.
var BlockingStatuses = []BookingStatus{
	StatusConfirmed,
	StatusCompleted,
}

// TerminalStatuses список терминальных статусов, из них нет переходов
var TerminalStatuses = []BookingStatus{
	StatusCompleted,
	StatusCancelled,
	StatusNoShow,
}

// ValidSessionTypes допустимые типы сессий
var ValidSessionTypes = []SessionType{
	SessionVideo,
	SessionAudio,
	SessionChat,
	SessionInPerson,
}

// IsValidSessionType проверяет, что тип сессии допустим
func IsValidSessionType(t SessionType) bool {
	for _, valid := range ValidSessionTypes {
		if t == valid {
			return true
		}
	}
	return false
}
