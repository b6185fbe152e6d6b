package notifier

// Notification уведомление пользователю о событии бронирования
type Notification struct {
	Type      string `json:"type"`
	Message   string `json:"message"`
	BookingID int64  `json:"booking_id,omitempty"`
	ActionURL string `json:"action_url,omitempty"`
}

// Типы уведомлений
const (
	TypeBookingConfirmed = "booking_confirmed"
	TypeBookingCancelled = "booking_cancelled"
	TypeBookingCompleted = "booking_completed"
)
