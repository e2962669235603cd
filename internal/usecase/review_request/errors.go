package review_request

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("review_request: invalid input data")

	// ErrRequestNotFound возвращается, когда заявка не найдена
	ErrRequestNotFound = errors.New("review_request: request not found")

	// ErrNotAuthorized возвращается, когда решение принимает не владелец услуги
	ErrNotAuthorized = errors.New("review_request: only the service owner can resolve requests")

	// ErrAlreadyResolved возвращается, когда заявка уже не в статусе pending
	ErrAlreadyResolved = errors.New("review_request: request already resolved")

	// ErrSlotUnavailable возвращается при подтверждении, если дата уже зарезервирована или закрыта
	ErrSlotUnavailable = errors.New("review_request: slot unavailable")

	// ErrStorageFailure возвращается при ошибках хранилища
	ErrStorageFailure = errors.New("review_request: storage failure")
)
