package move_reservation

import (
	"context"

	moveReservation "github.com/m04kA/SRS-RoomReservationService/internal/usecase/move_reservation"
)

type MoveReservationUseCase interface {
	Execute(ctx context.Context, req *moveReservation.Request) (*moveReservation.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
