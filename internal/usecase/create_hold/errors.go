package create_hold

import "errors"

var (
	// ErrSlotNotAvailable возвращается, когда интервал уже занят записью или чужим удержанием
	ErrSlotNotAvailable = errors.New("create_hold: slot is not available")

	// ErrStartInPast возвращается, когда удерживаемый интервал начинается не в будущем
	ErrStartInPast = errors.New("create_hold: start time must be in the future")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_hold: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_hold: internal error")
)
