package get_room_reservations

import (
	"context"

	"github.com/m04kA/SRS-RoomReservationService/internal/domain"
)

// ReservationEngine интерфейс движка бронирований
type ReservationEngine interface {
	ListByRoomDate(ctx context.Context, filter domain.RoomDayFilter) ([]*domain.Reservation, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
