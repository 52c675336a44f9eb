package get_reservation

import (
	"context"

	"github.com/m04kA/SRS-RoomReservationService/internal/domain"
)

// ReservationEngine интерфейс движка бронирований
type ReservationEngine interface {
	GetByID(ctx context.Context, id int64) (*domain.Reservation, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
