package reservation

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/m04kA/SRS-RoomReservationService/internal/domain"
	"github.com/m04kA/SRS-RoomReservationService/pkg/dbmetrics"
	"github.com/m04kA/SRS-RoomReservationService/pkg/psqlbuilder"
)

var reservationColumns = []string{
	"id",
	"room_id",
	"room_name",
	"title",
	"owner_name",
	"reserve_date",
	"start_time",
	"end_time",
	"periods",
	"period_label",
	"template_id",
	"created_by",
	"created_at",
}

// Repository репозиторий для работы с бронированиями
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория бронирований
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает новое бронирование.
// Если в контексте передана активная транзакция, использует её — при создании
// бронирования вместе со слотами это обязательно: запись бронирования и его
// слоты должны фиксироваться атомарно.
func (r *Repository) Create(ctx context.Context, res *domain.Reservation) (*domain.Reservation, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("reservations").
		Columns(
			"room_id",
			"room_name",
			"title",
			"owner_name",
			"reserve_date",
			"start_time",
			"end_time",
			"periods",
			"period_label",
			"template_id",
			"created_by",
		).
		Values(
			res.RoomID,
			res.RoomName,
			res.Title,
			res.OwnerName,
			res.Date,
			res.StartTime,
			res.EndTime,
			pq.StringArray(res.Periods),
			res.PeriodLabel,
			res.TemplateID,
			res.CreatedBy,
		).
		Suffix("RETURNING id, created_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&res.ID, &createdAt)
	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	res.CreatedAt = createdAt.Time
	return res, nil
}

// GetByID получает бронирование по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Reservation, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(reservationColumns...).
		From("reservations").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	res, err := r.scanReservation(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrReservationNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan reservation: %v", ErrScanRow, err)
	}

	return res, nil
}

// GetByIDs получает бронирования по списку ID.
// Отсутствующие ID молча пропускаются — метод используется для проверки,
// какие из бронирований, на которые ссылаются слоты, еще существуют.
func (r *Repository) GetByIDs(ctx context.Context, ids []int64) ([]*domain.Reservation, error) {
	if len(ids) == 0 {
		return []*domain.Reservation{}, nil
	}

	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(reservationColumns...).
		From("reservations").
		Where(squirrel.Eq{"id": ids}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByIDs - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByIDs - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return r.scanReservations(rows)
}

// ListByRoomDate получает бронирования аудитории на дату,
// упорядоченные по времени начала
func (r *Repository) ListByRoomDate(ctx context.Context, filter domain.RoomDayFilter) ([]*domain.Reservation, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(reservationColumns...).
		From("reservations").
		Where(squirrel.Eq{"room_id": filter.RoomID, "reserve_date": filter.Date}).
		OrderBy("start_time ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ListByRoomDate - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListByRoomDate - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return r.scanReservations(rows)
}

// ListByTemplate получает бронирования, материализованные из шаблона,
// опционально ограниченные диапазоном дат
func (r *Repository) ListByTemplate(ctx context.Context, templateID int64, from, to *time.Time) ([]*domain.Reservation, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(reservationColumns...).
		From("reservations").
		Where(squirrel.Eq{"template_id": templateID})

	if from != nil {
		selectBuilder = selectBuilder.Where(squirrel.GtOrEq{"reserve_date": *from})
	}
	if to != nil {
		selectBuilder = selectBuilder.Where(squirrel.LtOrEq{"reserve_date": *to})
	}

	query, args, err := selectBuilder.
		OrderBy("reserve_date ASC, start_time ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ListByTemplate - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListByTemplate - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return r.scanReservations(rows)
}

// Update обновляет бронирование после переноса: аудитория, периоды,
// временной диапазон и подпись пересчитаны под новые ячейки
func (r *Repository) Update(ctx context.Context, res *domain.Reservation) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("reservations").
		Set("room_id", res.RoomID).
		Set("room_name", res.RoomName).
		Set("start_time", res.StartTime).
		Set("end_time", res.EndTime).
		Set("periods", pq.StringArray(res.Periods)).
		Set("period_label", res.PeriodLabel).
		Where(squirrel.Eq{"id": res.ID}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Update - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Update - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Update - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrReservationNotFound
	}

	return nil
}

// Delete удаляет бронирование (физическое удаление; слоты бронирования
// должны удаляться в той же транзакции)
func (r *Repository) Delete(ctx context.Context, id int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("reservations").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Delete - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Delete - execute delete: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Delete - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrReservationNotFound
	}

	return nil
}

// DeleteByTemplate удаляет бронирования, материализованные из шаблона,
// опционально ограниченные диапазоном дат. Возвращает число удаленных строк.
func (r *Repository) DeleteByTemplate(ctx context.Context, templateID int64, from, to *time.Time) (int64, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	deleteBuilder := psqlbuilder.Delete("reservations").
		Where(squirrel.Eq{"template_id": templateID})

	if from != nil {
		deleteBuilder = deleteBuilder.Where(squirrel.GtOrEq{"reserve_date": *from})
	}
	if to != nil {
		deleteBuilder = deleteBuilder.Where(squirrel.LtOrEq{"reserve_date": *to})
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

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func (r *Repository) scanReservation(row rowScanner) (*domain.Reservation, error) {
	var res domain.Reservation
	var periods pq.StringArray
	var createdAt sql.NullTime

	err := row.Scan(
		&res.ID,
		&res.RoomID,
		&res.RoomName,
		&res.Title,
		&res.OwnerName,
		&res.Date,
		&res.StartTime,
		&res.EndTime,
		&periods,
		&res.PeriodLabel,
		&res.TemplateID,
		&res.CreatedBy,
		&createdAt,
	)
	if err != nil {
		return nil, err
	}

	res.Periods = []string(periods)
	res.CreatedAt = createdAt.Time
	return &res, nil
}

// scanReservations сканирует результаты запроса в слайс бронирований
func (r *Repository) scanReservations(rows *sql.Rows) ([]*domain.Reservation, error) {
	reservations := make([]*domain.Reservation, 0)

	for rows.Next() {
		res, err := r.scanReservation(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: scanReservations - scan row: %v", ErrScanRow, err)
		}
		reservations = append(reservations, res)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanReservations - rows error: %v", ErrScanRow, err)
	}

	return reservations, nil
}
