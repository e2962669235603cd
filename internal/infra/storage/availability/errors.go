package availability

import "errors"

var (
	// ErrRecordNotFound возвращается, когда запись о дате не найдена
	ErrRecordNotFound = errors.New("availability.repository: record not found")

	// ErrConflict возвращается при конфликте сериализации или блокировки
	ErrConflict = errors.New("availability.repository: concurrent update conflict")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("availability.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("availability.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("availability.repository: failed to scan row")
)
