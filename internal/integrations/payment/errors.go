package payment

import "errors"

var (
	// ErrInternal возвращается при внутренних ошибках клиента (сеть, таймаут)
	ErrInternal = errors.New("payment client: internal error")

	// ErrInvalidResponse возвращается при некорректном ответе от платежного провайдера
	ErrInvalidResponse = errors.New("payment client: invalid response")

	// ErrRejected возвращается, когда провайдер отклонил операцию
	ErrRejected = errors.New("payment client: operation rejected")

	// ErrInvalidAmount возвращается для отрицательной суммы
	ErrInvalidAmount = errors.New("payment client: invalid amount")
)
