package move_reservation

import (
	"time"

	"github.com/m04kA/SRS-RoomReservationService/pkg/types"
)

// Request модель запроса на перенос бронирования.
// Нулевой NewRoomID означает "оставить текущую аудиторию",
// пустой PeriodExpr — "оставить текущие периоды".
type Request struct {
	UserID        int64  // ID пользователя, выполняющего перенос
	ReservationID int64  // ID переносимого бронирования
	NewRoomID     int64  // ID целевой аудитории (0 — без изменения)
	PeriodExpr    string // Новое выражение периодов ("" — без изменения)
}

// Response модель ответа с обновленным бронированием
type Response struct {
	ID          int64
	RoomID      int64
	RoomName    string
	Title       string
	OwnerName   string
	Date        time.Time
	Periods     []string
	PeriodLabel string
	StartTime   types.TimeString
	EndTime     types.TimeString
	CreatedBy   int64
	CreatedAt   time.Time
}
