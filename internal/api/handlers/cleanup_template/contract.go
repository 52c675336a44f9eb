package cleanup_template

import (
	"context"

	cleanupTemplate "github.com/m04kA/SRS-RoomReservationService/internal/usecase/cleanup_template"
)

type CleanupTemplateUseCase interface {
	Execute(ctx context.Context, req *cleanupTemplate.Request) (*cleanupTemplate.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
