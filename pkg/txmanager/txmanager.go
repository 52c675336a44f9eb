package txmanager

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/lib/pq"

	"github.com/m04kA/SRS-RoomReservationService/pkg/dbmetrics"
)

const (
	// maxAttempts максимальное число попыток выполнения транзакции
	// при конфликте сериализации
	maxAttempts = 5

	// retryBaseDelay базовая задержка перед повтором, удваивается с каждой попыткой
	retryBaseDelay = 10 * time.Millisecond
)

// Коды ошибок PostgreSQL, при которых сериализуемую транзакцию можно повторить
const (
	pgSerializationFailure = "40001"
	pgDeadlockDetected     = "40P01"
)

var (
	// ErrTxBegin возвращается при ошибке начала транзакции
	ErrTxBegin = errors.New("txmanager: failed to begin transaction")

	// ErrTxCommit возвращается при ошибке коммита транзакции
	ErrTxCommit = errors.New("txmanager: failed to commit transaction")

	// ErrRetriesExhausted возвращается, когда все попытки исчерпаны
	ErrRetriesExhausted = errors.New("txmanager: serialization retries exhausted")
)

// TxBeginner интерфейс источника транзакций (*dbmetrics.DB или иная обёртка)
type TxBeginner interface {
	BeginTx(ctx context.Context, opts *sql.TxOptions) (dbmetrics.TxExecutor, error)
}

// TransactionManager выполняет функции в сериализуемых транзакциях
// с автоматическим повтором при конфликте сериализации.
// Вызывающий видит только итоговый успех или итоговую ошибку.
type TransactionManager struct {
	db TxBeginner
}

// NewTransactionManager создает новый transaction manager
func NewTransactionManager(db TxBeginner) *TransactionManager {
	return &TransactionManager{db: db}
}

// DoSerializable выполняет fn внутри транзакции с уровнем изоляции SERIALIZABLE.
// Транзакция кладется в контекст (см. dbmetrics.WithExecutor), репозитории
// внутри fn автоматически выполняют запросы в ней.
// При конфликте сериализации (40001) или deadlock (40P01) транзакция
// откатывается и повторяется целиком, до maxAttempts раз.
func (m *TransactionManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	var lastErr error

	for attempt := 0; attempt < maxAttempts; attempt++ {
		if attempt > 0 {
			delay := retryBaseDelay << (attempt - 1)
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(delay):
			}
		}

		err := m.runOnce(ctx, fn)
		if err == nil {
			return nil
		}

		if !isSerializationFailure(err) {
			return err
		}
		lastErr = err
	}

	return fmt.Errorf("%w: after %d attempts: %v", ErrRetriesExhausted, maxAttempts, lastErr)
}

func (m *TransactionManager) runOnce(ctx context.Context, fn func(ctx context.Context) error) error {
	tx, err := m.db.BeginTx(ctx, &sql.TxOptions{Isolation: sql.LevelSerializable})
	if err != nil {
		return fmt.Errorf("%w: %v", ErrTxBegin, err)
	}

	txCtx := dbmetrics.WithExecutor(ctx, tx)

	if err := fn(txCtx); err != nil {
		_ = tx.Rollback()
		return err
	}

	if err := tx.Commit(); err != nil {
		_ = tx.Rollback()
		if isSerializationFailure(err) {
			return err
		}
		return fmt.Errorf("%w: %v", ErrTxCommit, err)
	}

	return nil
}

// isSerializationFailure проверяет, является ли ошибка конфликтом сериализации
func isSerializationFailure(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return string(pqErr.Code) == pgSerializationFailure || string(pqErr.Code) == pgDeadlockDetected
	}
	return false
}
