package create_booking

import "time"

// Request модель запроса на создание записи к консультанту
type Request struct {
	StudentID      string     // ID студента
	CounselorID    string     // ID консультанта
	StartTime      time.Time  // Начало сессии
	EndTime        time.Time  // Конец сессии
	SessionType    string     // Формат сессии (video, audio, chat, in_person)
	UserNotes      *string    // Заметки студента (опционально)
	OwnerSessionID string     // Идентификатор сессии для сопоставления собственных удержаний
}

// Response модель ответа с созданной записью
type Response struct {
	ID          int64     // ID созданной записи
	StudentID   string    // ID студента
	CounselorID string    // ID консультанта
	StartTime   time.Time // Начало сессии
	EndTime     time.Time // Конец сессии
	Status      string    // Статус записи
	SessionType string    // Формат сессии
	UserNotes   *string   // Заметки студента
	MeetingLink *string   // Ссылка на встречу

	CreatedAt time.Time // Время создания
	UpdatedAt time.Time // Время обновления
}
