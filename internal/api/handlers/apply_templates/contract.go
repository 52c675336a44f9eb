package apply_templates

import (
	"context"

	applyTemplates "github.com/m04kA/SRS-RoomReservationService/internal/usecase/apply_templates"
)

type ApplyTemplatesUseCase interface {
	Execute(ctx context.Context, req *applyTemplates.Request) (*applyTemplates.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
