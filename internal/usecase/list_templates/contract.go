package list_templates

import (
	"context"

	"github.com/m04kA/SRS-RoomReservationService/internal/domain"
)

// TemplateService интерфейс сервиса шаблонов
type TemplateService interface {
	List(ctx context.Context, filter domain.TemplateFilter) ([]*domain.WeeklyTemplate, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
