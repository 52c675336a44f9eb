package templates

import (
	"context"

	"github.com/m04kA/SRS-RoomReservationService/internal/domain"
)

// TemplateRepository интерфейс хранилища недельных шаблонов
type TemplateRepository interface {
	Create(ctx context.Context, tmpl *domain.WeeklyTemplate) (*domain.WeeklyTemplate, error)
	GetByID(ctx context.Context, id int64) (*domain.WeeklyTemplate, error)
	List(ctx context.Context, filter domain.TemplateFilter) ([]*domain.WeeklyTemplate, error)
	Update(ctx context.Context, tmpl *domain.WeeklyTemplate) error
	Delete(ctx context.Context, id int64) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...any)
	Warn(format string, v ...any)
	Error(format string, v ...any)
}
