package submit_request

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("submit_request: invalid input data")

	// ErrInvalidTimeRange возвращается, когда конец не позже начала или диапазон меньше часа после округления
	ErrInvalidTimeRange = errors.New("submit_request: invalid time range")

	// ErrServiceNotFound возвращается, когда услуга не найдена
	ErrServiceNotFound = errors.New("submit_request: service not found")

	// ErrSlotUnavailable возвращается, когда дата или часы уже заняты, закрыты или вне окна услуги
	ErrSlotUnavailable = errors.New("submit_request: slot unavailable")

	// ErrTimeout возвращается, когда операция не уложилась в таймаут. Частичных записей нет.
	ErrTimeout = errors.New("submit_request: timeout")

	// ErrStorageFailure возвращается при ошибках хранилища
	ErrStorageFailure = errors.New("submit_request: storage failure")
)
