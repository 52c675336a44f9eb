package get_reservation

import (
	"context"

	getReservation "github.com/m04kA/SRS-RoomReservationService/internal/usecase/get_reservation"
)

type GetReservationUseCase interface {
	Execute(ctx context.Context, id int64) (*getReservation.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
