package create_booking

import "errors"

var (
	// ErrCounselorNotFound возвращается, когда консультант не найден в каталоге
	ErrCounselorNotFound = errors.New("create_booking: counselor not found")

	// ErrCounselorUnavailable возвращается, когда консультант неактивен или не принимает записи
	ErrCounselorUnavailable = errors.New("create_booking: counselor is not available for booking")

	// ErrSlotNotAvailable возвращается, когда интервал пересекается с существующей записью или удержанием
	ErrSlotNotAvailable = errors.New("create_booking: slot is not available")

	// ErrStartInPast возвращается, когда запись начинается не в будущем
	ErrStartInPast = errors.New("create_booking: start time must be in the future")

	// ErrInvalidDuration возвращается при длительности вне допустимого диапазона
	ErrInvalidDuration = errors.New("create_booking: invalid session duration")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_booking: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_booking: internal error")
)
