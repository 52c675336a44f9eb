package get_room_reservations

import (
	"context"
	"time"

	getRoomReservations "github.com/m04kA/SRS-RoomReservationService/internal/usecase/get_room_reservations"
)

type GetRoomReservationsUseCase interface {
	Execute(ctx context.Context, roomID int64, date time.Time) (*getRoomReservations.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
