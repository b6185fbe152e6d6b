package complete_booking

import "errors"

var (
	// ErrBookingNotFound возвращается, когда запись не найдена
	ErrBookingNotFound = errors.New("complete_booking: booking not found")

	// ErrAccessDenied возвращается, когда завершить запись пытается не её консультант
	ErrAccessDenied = errors.New("complete_booking: access denied")

	// ErrNotCompletable возвращается при попытке завершить запись не в статусе confirmed
	ErrNotCompletable = errors.New("complete_booking: booking is not in a completable state")

	// ErrSessionNotStarted возвращается при попытке завершить сессию до её начала
	ErrSessionNotStarted = errors.New("complete_booking: session has not started yet")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("complete_booking: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("complete_booking: internal error")
)
