package apply_templates

import (
	"time"

	"github.com/m04kA/SRS-RoomReservationService/internal/domain"
)

// Request модель запроса на массовое применение шаблонов
type Request struct {
	UserID int64 // ID администратора

	From time.Time // Начало диапазона дат (включительно)
	To   time.Time // Конец диапазона дат (включительно)

	Mode string // Режим применения: lock | materialize

	// DryRun классифицировать конфликты без записи, для предпросмотра
	DryRun bool
	// ForceOverride вытеснять занятые ячейки независимо от приоритета шаблона
	ForceOverride bool
	// Priority применять только шаблоны одного приоритета (nil = все)
	Priority *string
}

// Response итог массового применения
type Response struct {
	Applied    int
	Overridden int
	Relocated  int
	Skipped    int
	Conflicts  []domain.ConflictInfo
	Errors     []domain.ApplyError
}
