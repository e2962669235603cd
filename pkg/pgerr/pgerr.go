package pgerr

import (
	"errors"

	"github.com/lib/pq"
)

// Коды ошибок PostgreSQL, на которые реагирует сервис
const (
	CodeUniqueViolation      = pq.ErrorCode("23505")
	CodeSerializationFailure = pq.ErrorCode("40001")
	CodeDeadlockDetected     = pq.ErrorCode("40P01")
)

// Code возвращает код ошибки PostgreSQL, если err (или любая обернутая ошибка) это *pq.Error
func Code(err error) (pq.ErrorCode, bool) {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code, true
	}
	return "", false
}

// IsUniqueViolation нарушение уникального индекса
func IsUniqueViolation(err error) bool {
	code, ok := Code(err)
	return ok && code == CodeUniqueViolation
}

// IsConflict ошибка конкурентного доступа: уникальный индекс, сериализация или дедлок.
// Для бронирования все три означают, что слот занял кто-то другой.
func IsConflict(err error) bool {
	code, ok := Code(err)
	if !ok {
		return false
	}
	switch code {
	case CodeUniqueViolation, CodeSerializationFailure, CodeDeadlockDetected:
		return true
	default:
		return false
	}
}
