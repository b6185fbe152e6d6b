package get_available_slots

import "errors"

var (
	// ErrCounselorNotFound возвращается, когда консультант не найден в каталоге
	ErrCounselorNotFound = errors.New("get_available_slots: counselor not found")

	// ErrRangeTooWide возвращается, когда запрошенный период превышает допустимый
	ErrRangeTooWide = errors.New("get_available_slots: date range is too wide")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("get_available_slots: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("get_available_slots: internal error")
)
