package request

import "errors"

var (
	// ErrRequestNotFound возвращается, когда заявка не найдена
	ErrRequestNotFound = errors.New("request.repository: request not found")

	// ErrSlotConflict возвращается при нарушении уникальности активной заявки на слот
	// или при конфликте сериализации
	ErrSlotConflict = errors.New("request.repository: slot conflict")

	// ErrStatusConflict возвращается, когда статус заявки уже изменился
	ErrStatusConflict = errors.New("request.repository: request status changed concurrently")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("request.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("request.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("request.repository: failed to scan row")
)
