package counselordirectory

import "errors"

var (
	// ErrCounselorNotFound возвращается, когда консультант не зарегистрирован
	ErrCounselorNotFound = errors.New("counselor not found")

	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("counselordirectory client: internal error")

	// ErrInvalidResponse возвращается при некорректном ответе от сервиса
	ErrInvalidResponse = errors.New("counselordirectory client: invalid response")
)
