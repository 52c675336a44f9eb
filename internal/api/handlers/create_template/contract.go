package create_template

import (
	"context"

	createTemplate "github.com/m04kA/SRS-RoomReservationService/internal/usecase/create_template"
)

type CreateTemplateUseCase interface {
	Execute(ctx context.Context, req *createTemplate.Request) (*createTemplate.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
