package models

import (
	"time"

	"github.com/m04kA/SRS-RoomReservationService/internal/domain"
	"github.com/m04kA/SRS-RoomReservationService/pkg/types"
)

// CreateParams параметры создания бронирования.
// Periods — уже нормализованный упорядоченный набор атомарных токенов;
// нормализация выражения периодов выполняется на границе (в use case).
type CreateParams struct {
	RoomID      int64
	RoomName    string
	Title       string
	OwnerName   string
	Date        time.Time
	Periods     []string
	StartTime   types.TimeString
	EndTime     types.TimeString
	PeriodLabel string

	// TemplateID заполняется при материализации шаблона
	TemplateID *int64

	CreatedBy int64
}

// MoveParams параметры переноса бронирования в другую аудиторию
// и/или на другой набор периодов
type MoveParams struct {
	ReservationID int64

	NewRoomID      int64
	NewRoomName    string
	NewPeriods     []string
	NewStartTime   types.TimeString
	NewEndTime     types.TimeString
	NewPeriodLabel string
}

// Occupant снимок занятости одной ячейки
type Occupant struct {
	Kind domain.SlotKind

	// Reservation заполнен для Kind == SlotKindReservation (живое бронирование)
	Reservation *domain.Reservation

	// TemplateID заполнен для слотов, порожденных шаблоном
	TemplateID *int64
}

// IsLock возвращает true, если ячейку занимает заглушка шаблона
func (o *Occupant) IsLock() bool {
	return o.Kind == domain.SlotKindTemplateLock
}

// CleanupResult результат очистки следов шаблона
type CleanupResult struct {
	LocksRemoved        int64
	ReservationsRemoved int64
}
