package create_hold

import "time"

// Request модель запроса на временное удержание слота
type Request struct {
	CounselorID    string    // ID консультанта
	StartTime      time.Time // Начало удерживаемого интервала
	EndTime        time.Time // Конец удерживаемого интервала
	OwnerSessionID string    // Идентификатор сессии владельца удержания
}

// Response модель ответа с созданным удержанием
type Response struct {
	HoldID    string    // ID удержания
	ExpiresAt time.Time // Момент истечения удержания
}
