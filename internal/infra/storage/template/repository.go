package template

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

var templateColumns = []string{
	"id",
	"name",
	"room_id",
	"room_name",
	"weekdays",
	"periods",
	"start_date",
	"end_date",
	"priority",
	"category",
	"enabled",
	"created_by",
	"created_at",
	"updated_at",
}

// Repository репозиторий еженедельных шаблонов
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория шаблонов
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает новый шаблон
func (r *Repository) Create(ctx context.Context, tmpl *domain.WeeklyTemplate) (*domain.WeeklyTemplate, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("weekly_templates").
		Columns(
			"name",
			"room_id",
			"room_name",
			"weekdays",
			"periods",
			"start_date",
			"end_date",
			"priority",
			"category",
			"enabled",
			"created_by",
		).
		Values(
			tmpl.Name,
			tmpl.RoomID,
			tmpl.RoomName,
			weekdaysToArray(tmpl.Weekdays),
			pq.StringArray(tmpl.Periods),
			tmpl.StartDate,
			tmpl.EndDate,
			tmpl.Priority,
			tmpl.Category,
			tmpl.Enabled,
			tmpl.CreatedBy,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&tmpl.ID, &createdAt, &updatedAt)
	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	tmpl.CreatedAt = createdAt.Time
	tmpl.UpdatedAt = updatedAt.Time
	return tmpl, nil
}

// GetByID получает шаблон по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.WeeklyTemplate, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(templateColumns...).
		From("weekly_templates").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	tmpl, err := r.scanTemplate(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrTemplateNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan template: %v", ErrScanRow, err)
	}

	return tmpl, nil
}

// List получает шаблоны с фильтрацией по включенности, приоритету и аудитории.
// Порядок: по приоритету (critical → high → normal), затем по ID — это
// порядок применения при массовом применении.
func (r *Repository) List(ctx context.Context, filter domain.TemplateFilter) ([]*domain.WeeklyTemplate, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(templateColumns...).
		From("weekly_templates")

	if filter.Enabled != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"enabled": *filter.Enabled})
	}
	if filter.Priority != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"priority": *filter.Priority})
	}
	if filter.RoomID != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"room_id": *filter.RoomID})
	}

	query, args, err := selectBuilder.
		OrderBy("CASE priority WHEN 'critical' THEN 0 WHEN 'high' THEN 1 ELSE 2 END ASC", "id ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: List - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: List - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return r.scanTemplates(rows)
}

// Update обновляет шаблон
func (r *Repository) Update(ctx context.Context, tmpl *domain.WeeklyTemplate) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("weekly_templates").
		Set("name", tmpl.Name).
		Set("room_id", tmpl.RoomID).
		Set("room_name", tmpl.RoomName).
		Set("weekdays", weekdaysToArray(tmpl.Weekdays)).
		Set("periods", pq.StringArray(tmpl.Periods)).
		Set("start_date", tmpl.StartDate).
		Set("end_date", tmpl.EndDate).
		Set("priority", tmpl.Priority).
		Set("category", tmpl.Category).
		Set("enabled", tmpl.Enabled).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": tmpl.ID}).
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
		return ErrTemplateNotFound
	}

	return nil
}

// Delete удаляет шаблон. Слоты и бронирования, порожденные шаблоном,
// не затрагиваются — их снимает отдельная операция очистки.
func (r *Repository) Delete(ctx context.Context, id int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("weekly_templates").
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
		return ErrTemplateNotFound
	}

	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func (r *Repository) scanTemplate(row rowScanner) (*domain.WeeklyTemplate, error) {
	var tmpl domain.WeeklyTemplate
	var weekdays pq.Int64Array
	var periods pq.StringArray
	var endDate sql.NullTime
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&tmpl.ID,
		&tmpl.Name,
		&tmpl.RoomID,
		&tmpl.RoomName,
		&weekdays,
		&periods,
		&tmpl.StartDate,
		&endDate,
		&tmpl.Priority,
		&tmpl.Category,
		&tmpl.Enabled,
		&tmpl.CreatedBy,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	tmpl.Weekdays = arrayToWeekdays(weekdays)
	tmpl.Periods = []string(periods)
	if endDate.Valid {
		tmpl.EndDate = &endDate.Time
	}
	tmpl.CreatedAt = createdAt.Time
	tmpl.UpdatedAt = updatedAt.Time
	return &tmpl, nil
}

// scanTemplates сканирует результаты запроса в слайс шаблонов
func (r *Repository) scanTemplates(rows *sql.Rows) ([]*domain.WeeklyTemplate, error) {
	templates := make([]*domain.WeeklyTemplate, 0)

	for rows.Next() {
		tmpl, err := r.scanTemplate(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: scanTemplates - scan row: %v", ErrScanRow, err)
		}
		templates = append(templates, tmpl)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanTemplates - rows error: %v", ErrScanRow, err)
	}

	return templates, nil
}

// weekdaysToArray конвертирует дни недели в массив для записи в БД
func weekdaysToArray(weekdays []time.Weekday) pq.Int64Array {
	arr := make(pq.Int64Array, len(weekdays))
	for i, d := range weekdays {
		arr[i] = int64(d)
	}
	return arr
}

// arrayToWeekdays конвертирует массив из БД в дни недели
func arrayToWeekdays(arr pq.Int64Array) []time.Weekday {
	weekdays := make([]time.Weekday, len(arr))
	for i, v := range arr {
		weekdays[i] = time.Weekday(v)
	}
	return weekdays
}
