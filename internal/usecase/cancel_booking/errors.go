package cancel_booking

import "errors"

var (
	// ErrBookingNotFound возвращается, когда запись не найдена
	ErrBookingNotFound = errors.New("cancel_booking: booking not found")

	// ErrAccessDenied возвращается, когда актор не вправе отменять эту запись
	ErrAccessDenied = errors.New("cancel_booking: access denied")

	// ErrNotCancellable возвращается при попытке отменить запись в терминальном статусе
	ErrNotCancellable = errors.New("cancel_booking: booking is not in a cancellable state")

	// ErrCancellationWindowClosed возвращается при отмене позже допустимого срока до начала сессии
	ErrCancellationWindowClosed = errors.New("cancel_booking: cancellation window is closed")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("cancel_booking: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("cancel_booking: internal error")
)
