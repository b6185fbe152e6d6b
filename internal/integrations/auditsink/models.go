package auditsink

// AuditEvent событие аудита действий над бронированиями
type AuditEvent struct {
	EventType string            `json:"event_type"`
	ActorID   string            `json:"actor_id"`
	Metadata  map[string]string `json:"metadata,omitempty"`
}

// Типы событий аудита
const (
	EventBookingCreated   = "booking_created"
	EventBookingCancelled = "booking_cancelled"
	EventBookingCompleted = "booking_completed"
)
