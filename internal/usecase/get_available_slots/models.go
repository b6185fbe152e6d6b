package get_available_slots

import "time"

// Request модель запроса на получение доступных слотов
type Request struct {
	CounselorID string    // ID консультанта
	StartDate   time.Time // Первый день периода
	EndDate     time.Time // Последний день периода (нулевое значение: неделя от StartDate)
}

// Response модель ответа со списком доступных слотов
type Response struct {
	CounselorID string    // ID консультанта
	StartDate   time.Time // Первый день периода
	EndDate     time.Time // Последний день периода
	Slots       []Slot    // Свободные слоты в хронологическом порядке
}

// Slot модель бронируемого слота
type Slot struct {
	StartTime       time.Time // Начало слота
	EndTime         time.Time // Конец слота
	DurationMinutes int       // Длительность слота в минутах
}
