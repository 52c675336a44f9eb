// Package storage содержит общую классификацию ошибок PostgreSQL
// для репозиториев и слоев выше.
package storage

import (
	"errors"

	"github.com/lib/pq"
)

// Классы кодов ошибок PostgreSQL
const (
	pgSerializationFailure = "40001"
	pgDeadlockDetected     = "40P01"
	pgLockNotAvailable     = "55P03"
	pgTooManyConnections   = "53300"
	pgUniqueViolation      = "23505"
)

// IsRetryable возвращает true для преходящих ошибок (конфликт сериализации,
// deadlock, перегрузка), после которых операцию можно повторить
func IsRetryable(err error) bool {
	var pqErr *pq.Error
	if !errors.As(err, &pqErr) {
		return false
	}
	switch string(pqErr.Code) {
	case pgSerializationFailure, pgDeadlockDetected, pgLockNotAvailable, pgTooManyConnections:
		return true
	}
	return false
}

// IsUniqueViolation возвращает true при нарушении уникального ограничения
// (проигрыш гонки за составной ключ слота на коммите)
func IsUniqueViolation(err error) bool {
	var pqErr *pq.Error
	if !errors.As(err, &pqErr) {
		return false
	}
	return string(pqErr.Code) == pgUniqueViolation
}
