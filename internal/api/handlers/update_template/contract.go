package update_template

import (
	"context"

	updateTemplate "github.com/m04kA/SRS-RoomReservationService/internal/usecase/update_template"
)

type UpdateTemplateUseCase interface {
	Execute(ctx context.Context, req *updateTemplate.Request) (*updateTemplate.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
