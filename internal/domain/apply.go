package domain

import "time"

// ApplyMode режим применения шаблона
type ApplyMode string

const (
	// ApplyModeLock в ячейки проставляются заглушки (template_lock)
	ApplyModeLock ApplyMode = "lock"

	// ApplyModeMaterialize в ячейках создаются настоящие бронирования,
	// дальше живущие независимо от шаблона
	ApplyModeMaterialize ApplyMode = "materialize"
)

// IsValidApplyMode проверяет допустимость режима применения
func IsValidApplyMode(m ApplyMode) bool {
	return m == ApplyModeLock || m == ApplyModeMaterialize
}

// ConflictAction действие, принятое при разрешении конфликта
type ConflictAction string

const (
	// ConflictOverridden существующее бронирование удалено, ячейка занята шаблоном
	ConflictOverridden ConflictAction = "overridden"

	// ConflictRelocated существующее бронирование перенесено в другую
	// аудиторию, ячейка занята шаблоном
	ConflictRelocated ConflictAction = "relocated"

	// ConflictSkipped шаблон уступил существующему бронированию
	ConflictSkipped ConflictAction = "skipped"
)

// OccupantSnapshot снимок бронирования, занимавшего ячейку на момент конфликта
type OccupantSnapshot struct {
	ReservationID int64
	Title         string
	OwnerName     string
	CreatedBy     int64
}

// ConflictInfo запись о конфликте шаблона с существующим бронированием
// и принятом решении; используется для аудита и предпросмотра (dry run)
type ConflictInfo struct {
	Date     time.Time
	RoomID   int64
	RoomName string
	Period   string

	Existing OccupantSnapshot

	TemplateID   int64
	TemplateName string
	Priority     Priority

	Action ConflictAction

	// RelocatedToRoomID заполнен для Action == ConflictRelocated
	RelocatedToRoomID *int64
}

// ApplyError ошибка обработки одной ячейки (дата, шаблон, период);
// массовое применение накапливает такие ошибки и продолжает работу
type ApplyError struct {
	Date         time.Time
	RoomID       int64
	Period       string
	TemplateID   int64
	TemplateName string
	Message      string
}

// BulkApplyResult агрегированный результат массового применения шаблонов
type BulkApplyResult struct {
	Applied    int // занятых ячеек (включая занятые после override/relocate)
	Overridden int // вытесненных бронирований
	Relocated  int // перенесенных бронирований
	Skipped    int // ячеек, уступленных существующим бронированиям

	Conflicts []ConflictInfo
	Errors    []ApplyError
}

// Merge добавляет результат одной ячейки/шаблона к агрегату
func (r *BulkApplyResult) Merge(other BulkApplyResult) {
	r.Applied += other.Applied
	r.Overridden += other.Overridden
	r.Relocated += other.Relocated
	r.Skipped += other.Skipped
	r.Conflicts = append(r.Conflicts, other.Conflicts...)
	r.Errors = append(r.Errors, other.Errors...)
}
