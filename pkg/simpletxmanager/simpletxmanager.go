package simpletxmanager

import (
	"context"
	"database/sql"

	"github.com/m04kA/SRS-RoomReservationService/pkg/dbmetrics"
	"github.com/m04kA/SRS-RoomReservationService/pkg/txmanager"
)

// sqlBeginner адаптирует *sql.DB к интерфейсу txmanager.TxBeginner
type sqlBeginner struct {
	db *sql.DB
}

func (b sqlBeginner) BeginTx(ctx context.Context, opts *sql.TxOptions) (dbmetrics.TxExecutor, error) {
	return b.db.BeginTx(ctx, opts)
}

// NewTransactionManager создает transaction manager поверх чистого *sql.DB
// (без обёртки метрик)
func NewTransactionManager(db *sql.DB) *txmanager.TransactionManager {
	return txmanager.NewTransactionManager(sqlBeginner{db: db})
}
