package complete_booking

import "time"

// Request модель запроса на завершение сессии
type Request struct {
	BookingID       int64   // ID записи
	CounselorID     string  // ID консультанта, выполняющего завершение
	CounselorNotes  *string // Заметки консультанта (опционально)
	CounselorRating *int    // Оценка сессии консультантом 1..5 (опционально)
}

// Response модель ответа с завершённой записью
type Response struct {
	ID              int64     // ID записи
	StudentID       string    // ID студента
	CounselorID     string    // ID консультанта
	StartTime       time.Time // Начало сессии
	EndTime         time.Time // Конец сессии
	Status          string    // Статус записи
	CounselorNotes  *string   // Заметки консультанта
	CounselorRating *int      // Оценка сессии
	UpdatedAt       time.Time // Время обновления
}
