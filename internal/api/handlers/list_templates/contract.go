package list_templates

import (
	"context"

	listTemplates "github.com/m04kA/SRS-RoomReservationService/internal/usecase/list_templates"
)

type ListTemplatesUseCase interface {
	Execute(ctx context.Context, req *listTemplates.Request) (*listTemplates.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
