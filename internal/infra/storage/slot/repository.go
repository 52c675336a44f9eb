package slot

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SRS-RoomReservationService/internal/domain"
	"github.com/m04kA/SRS-RoomReservationService/internal/infra/storage"
	"github.com/m04kA/SRS-RoomReservationService/pkg/dbmetrics"
	"github.com/m04kA/SRS-RoomReservationService/pkg/psqlbuilder"
)

var slotColumns = []string{
	"room_id",
	"slot_date",
	"period",
	"kind",
	"reservation_id",
	"template_id",
	"created_by",
	"created_at",
}

// Repository репозиторий таблицы занятости слотов.
// Таблица slots — таблица владения: первичный ключ (room_id, slot_date,
// period) гарантирует не более одной записи на ячейку на уровне БД,
// даже если проверка в транзакции была обойдена.
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория слотов
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetForKeys читает слоты ячеек (roomID, date, periods).
// Внутри транзакции добавляет FOR UPDATE: конкурирующая транзакция,
// претендующая на те же ячейки, блокируется до коммита первой.
func (r *Repository) GetForKeys(ctx context.Context, roomID int64, date time.Time, periods []string) ([]*domain.Slot, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(slotColumns...).
		From("slots").
		Where(squirrel.Eq{
			"room_id":   roomID,
			"slot_date": date,
			"period":    periods,
		})

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetForKeys - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetForKeys - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return r.scanSlots(rows)
}

// Get читает один слот по ключу (без блокировки)
func (r *Repository) Get(ctx context.Context, key domain.SlotKey) (*domain.Slot, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(slotColumns...).
		From("slots").
		Where(squirrel.Eq{
			"room_id":   key.RoomID,
			"slot_date": key.Date,
			"period":    key.Period,
		}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Get - build select query: %v", ErrBuildQuery, err)
	}

	s, err := r.scanSlot(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrSlotNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: Get - scan slot: %v", ErrScanRow, err)
	}

	return s, nil
}

// Insert записывает слоты. Нарушение первичного ключа транслируется
// в ErrDuplicateKey.
func (r *Repository) Insert(ctx context.Context, slots []*domain.Slot) error {
	if len(slots) == 0 {
		return nil
	}

	executor := dbmetrics.GetExecutor(ctx, r.db)

	insertBuilder := psqlbuilder.Insert("slots").
		Columns(
			"room_id",
			"slot_date",
			"period",
			"kind",
			"reservation_id",
			"template_id",
			"created_by",
		)

	for _, s := range slots {
		insertBuilder = insertBuilder.Values(
			s.RoomID,
			s.Date,
			s.Period,
			s.Kind,
			s.ReservationID,
			s.TemplateID,
			s.CreatedBy,
		)
	}

	query, args, err := insertBuilder.ToSql()
	if err != nil {
		return fmt.Errorf("%w: Insert - build insert query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		if storage.IsUniqueViolation(err) {
			return fmt.Errorf("%w: %v", ErrDuplicateKey, err)
		}
		return fmt.Errorf("%w: Insert - execute insert: %v", ErrExecQuery, err)
	}

	return nil
}

// DeleteByKeys удаляет слоты указанных ячеек
func (r *Repository) DeleteByKeys(ctx context.Context, roomID int64, date time.Time, periods []string) error {
	if len(periods) == 0 {
		return nil
	}

	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("slots").
		Where(squirrel.Eq{
			"room_id":   roomID,
			"slot_date": date,
			"period":    periods,
		}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: DeleteByKeys - build delete query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: DeleteByKeys - execute delete: %v", ErrExecQuery, err)
	}

	return nil
}

// DeleteByReservation удаляет все слоты бронирования
func (r *Repository) DeleteByReservation(ctx context.Context, reservationID int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("slots").
		Where(squirrel.Eq{"reservation_id": reservationID}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: DeleteByReservation - build delete query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: DeleteByReservation - execute delete: %v", ErrExecQuery, err)
	}

	return nil
}

// DeleteByTemplate удаляет слоты, привязанные к шаблону.
// kind опционально ограничивает вид слотов (например, только заглушки),
// from/to — диапазон дат. Возвращает число удаленных строк.
func (r *Repository) DeleteByTemplate(ctx context.Context, templateID int64, kind *domain.SlotKind, from, to *time.Time) (int64, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	deleteBuilder := psqlbuilder.Delete("slots").
		Where(squirrel.Eq{"template_id": templateID})

	if kind != nil {
		deleteBuilder = deleteBuilder.Where(squirrel.Eq{"kind": *kind})
	}
	if from != nil {
		deleteBuilder = deleteBuilder.Where(squirrel.GtOrEq{"slot_date": *from})
	}
	if to != nil {
		deleteBuilder = deleteBuilder.Where(squirrel.LtOrEq{"slot_date": *to})
	}

	query, args, err := deleteBuilder.ToSql()
	if err != nil {
		return 0, fmt.Errorf("%w: DeleteByTemplate - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("%w: DeleteByTemplate - execute delete: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%w: DeleteByTemplate - get rows affected: %v", ErrExecQuery, err)
	}

	return rowsAffected, nil
}

// ListOccupiedRooms возвращает ID аудиторий из roomIDs, у которых ячейка
// (date, period) занята. Используется при поиске аудитории для переноса.
func (r *Repository) ListOccupiedRooms(ctx context.Context, date time.Time, period string, roomIDs []int64) ([]int64, error) {
	if len(roomIDs) == 0 {
		return []int64{}, nil
	}

	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("room_id").
		From("slots").
		Where(squirrel.Eq{
			"slot_date": date,
			"period":    period,
			"room_id":   roomIDs,
		}).
		OrderBy("room_id ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ListOccupiedRooms - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListOccupiedRooms - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	occupied := make([]int64, 0)
	for rows.Next() {
		var roomID int64
		if err := rows.Scan(&roomID); err != nil {
			return nil, fmt.Errorf("%w: ListOccupiedRooms - scan room_id: %v", ErrScanRow, err)
		}
		occupied = append(occupied, roomID)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListOccupiedRooms - rows error: %v", ErrScanRow, err)
	}

	return occupied, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func (r *Repository) scanSlot(row rowScanner) (*domain.Slot, error) {
	var s domain.Slot
	var createdAt sql.NullTime

	err := row.Scan(
		&s.RoomID,
		&s.Date,
		&s.Period,
		&s.Kind,
		&s.ReservationID,
		&s.TemplateID,
		&s.CreatedBy,
		&createdAt,
	)
	if err != nil {
		return nil, err
	}

	s.CreatedAt = createdAt.Time
	return &s, nil
}

// scanSlots сканирует результаты запроса в слайс слотов
func (r *Repository) scanSlots(rows *sql.Rows) ([]*domain.Slot, error) {
	slots := make([]*domain.Slot, 0)

	for rows.Next() {
		s, err := r.scanSlot(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: scanSlots - scan row: %v", ErrScanRow, err)
		}
		slots = append(slots, s)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanSlots - rows error: %v", ErrScanRow, err)
	}

	return slots, nil
}
