package cancel_booking

import "time"

// Request модель запроса на отмену записи
type Request struct {
	BookingID int64   // ID записи
	ActorID   string  // ID актора, выполняющего отмену
	ActorRole string  // Роль актора (student, counselor, admin, super_admin)
	Reason    *string // Причина отмены (опционально)
}

// Response модель ответа с отменённой записью
type Response struct {
	ID                 int64      // ID записи
	StudentID          string     // ID студента
	CounselorID        string     // ID консультанта
	StartTime          time.Time  // Начало сессии
	EndTime            time.Time  // Конец сессии
	Status             string     // Статус записи
	CancelledBy        *string    // Кто отменил
	CancellationReason *string    // Причина отмены
	CancelledAt        *time.Time // Момент отмены
	UpdatedAt          time.Time  // Время обновления
}
